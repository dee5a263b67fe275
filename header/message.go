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

package header

// MessageType is the kind of frame carried by a datagram.
// The numeric values are part of the wire protocol and must not be reordered.
type MessageType uint16

const (
	// MessageOneWay is a fire-and-forget message expecting no reply.
	MessageOneWay MessageType = iota
	// MessageRequest expects a matching MessageReply carrying the same correlation id.
	MessageRequest
	// MessageReply answers a MessageRequest, echoing its correlation id with the reply flag set.
	MessageReply
	// MessageHeartbeat refreshes the peer last-seen status without any user-visible event.
	MessageHeartbeat
	// MessageClose carries a zero payload and triggers the teardown of the receiving connection.
	MessageClose
)

// String returns the protocol name of the message type, or an empty string
// for a value outside the enumeration.
func (m MessageType) String() string {
	switch m {
	case MessageOneWay:
		return "one_way"
	case MessageRequest:
		return "request"
	case MessageReply:
		return "reply"
	case MessageHeartbeat:
		return "heartbeat"
	case MessageClose:
		return "close"
	}

	return ""
}

// IsValid reports whether the message type is part of the protocol enumeration.
// Any other value received on the wire is a protocol violation and the frame is dropped.
func (m MessageType) IsValid() bool {
	return m <= MessageClose
}
