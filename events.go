/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package msgbox

// Event tags the callback invocations delivered by the run loop.
type Event uint8

const (
	// EventListening reports a successful bind of a listener connection.
	EventListening Event = iota
	// EventConnectionReady reports the first observation of a remote peer.
	EventConnectionReady
	// EventConnectionClosed reports a close frame received from the peer.
	EventConnectionClosed
	// EventConnectionLost reports a fatal socket failure tearing the connection down.
	EventConnectionLost
	// EventMessage carries a one-way payload.
	EventMessage
	// EventRequest carries a request payload expecting a reply.
	EventRequest
	// EventReply carries the payload answering a request.
	EventReply
	// EventError carries a human-readable failure message.
	EventError
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventListening:
		return "listening"
	case EventConnectionReady:
		return "connection_ready"
	case EventConnectionClosed:
		return "connection_closed"
	case EventConnectionLost:
		return "connection_lost"
	case EventMessage:
		return "message"
	case EventRequest:
		return "request"
	case EventReply:
		return "reply"
	case EventError:
		return "error"
	}

	return "unknown event"
}
