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

// Package msgbox is an event-driven message-box runtime: applications exchange
// discrete framed messages over datagram sockets without writing socket code.
//
// A program registers listeners and outbound connections identified by URL-style
// addresses (udp://10.0.0.1:4040), supplies a callback for each, and drives the
// run loop by calling RunLoop repeatedly. The runtime delivers Listening,
// ConnectionReady, Message, Request, Reply, ConnectionClosed and Error events to
// the registered callback with a payload buffer.
//
// The runtime is single-threaded and cooperative: callbacks only ever run from
// inside RunLoop, on the caller's goroutine, and may themselves call back into
// the runtime. Events enqueued from inside a callback are delivered on the next
// tick.
package msgbox

import (
	"net"
	"time"

	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"
	libptc "github.com/nabbar/golib/network/protocol"

	hckcfg "github.com/nabbar/msgbox/config"
	libdat "github.com/nabbar/msgbox/data"
	hckhdr "github.com/nabbar/msgbox/header"
)

const (
	// DefaultBufferSize is the receive allocation for one inbound datagram,
	// frame header included.
	DefaultBufferSize = 32 * 1024

	// MaxPayloadSize is the largest payload fitting one datagram with the
	// default buffer: the receive buffer minus the frame header.
	MaxPayloadSize = DefaultBufferSize - hckhdr.Size
)

// Role distinguishes the two ways a Connection comes to life.
type Role uint8

const (
	// RoleListener is a bound datagram socket accepting packets from any peer.
	RoleListener Role = iota
	// RoleInitiator is a connected datagram socket bound to one remote peer.
	RoleInitiator
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleListener:
		return "listener"
	case RoleInitiator:
		return "initiator"
	}

	return "unknown role"
}

// Conn is the runtime's per-endpoint state object bundling a socket, a remote
// identity, a callback and an opaque user context. The registry exclusively
// owns it; callbacks hold a transient borrow during their invocation.
type Conn interface {
	// Network returns the transport kind of the connection.
	Network() libptc.NetworkProtocol

	// Role returns how the connection was created.
	Role() Role

	// Local returns the bound local address of the connection socket.
	Local() (net.IP, uint16)

	// Remote returns the remote endpoint. On a listener it reflects the source
	// of the most recent inbound packet.
	Remote() (net.IP, uint16)

	// Context returns the opaque user context given at registration. For a
	// Reply event routed through Get, it is the dedicated reply context.
	Context() any

	// IsClosed reports whether the connection has been torn down. Sending on a
	// closed connection fails.
	IsClosed() bool
}

// FuncEvent is the callback registered with each Listen or Connect call.
//
// For an Error event the payload carries a human-readable message. The callback
// must not retain the payload past its return unless it copies the bytes.
type FuncEvent func(c Conn, e Event, d libdat.Data)

// MsgBox is one message-box runtime instance. It owns the connection registry,
// the peer-status map and the deferred callback queue; Shutdown releases all
// three. All operations are driven from the goroutine calling RunLoop.
type MsgBox interface {
	// RegisterFuncLogger sets the logger used for failures with no attributable
	// connection. Those are never delivered as user events.
	RegisterFuncLogger(fct liblog.FuncLog)

	// Listen parses the address, binds a datagram socket and registers the
	// connection. On success a Listening event is enqueued; any failure
	// enqueues an Error event and discards the partial registration.
	Listen(uri string, ctx any, fct FuncEvent) (Conn, liberr.Error)

	// Connect parses the address, connects a datagram socket and registers the
	// connection. A ConnectionReady event is enqueued through the first-seen
	// path; any failure enqueues an Error event and discards the registration.
	Connect(uri string, ctx any, fct FuncEvent) (Conn, liberr.Error)

	// Send writes a one-way frame. The header is encoded in place in front of
	// the payload view; the payload stays owned by the caller.
	Send(c Conn, d libdat.Data) liberr.Error

	// Get sends a request frame carrying a freshly drawn correlation id and
	// records the given reply context; the matching inbound Reply event is
	// delivered with that context. It returns the drawn id.
	Get(c Conn, d libdat.Data, replyCtx any) (uint16, liberr.Error)

	// Reply answers the most recent Request received on the connection,
	// echoing its correlation id with the reply flag set.
	Reply(c Conn, d libdat.Data) liberr.Error

	// Disconnect sends a zero-payload close frame, then tears the connection
	// down without waiting for the peer. A listener that has not seen any peer
	// yet has no remote to address, so it is torn down without a frame.
	Disconnect(c Conn) liberr.Error

	// Unlisten tears down a listener connection. No frame is sent. Events
	// already queued for the listener are still delivered on the next tick.
	Unlisten(c Conn) liberr.Error

	// RunLoop performs one dispatcher tick: wait for socket readiness up to
	// the timeout, read inbound frames, then drain the deferred callback
	// queue in FIFO order. This is the only place user callbacks run.
	RunLoop(timeout time.Duration) liberr.Error

	// OpenConnections returns the number of live registered connections.
	OpenConnections() int64

	// Shutdown closes every socket and releases the registry, the peer-status
	// map and the deferred queue. Pending events are discarded unseen.
	Shutdown()
}

// New returns an empty runtime with default sizing.
func New() MsgBox {
	return NewWithConfig(hckcfg.Config{})
}

// NewWithConfig returns an empty runtime tuned by the given config.
func NewWithConfig(cfg hckcfg.Config) MsgBox {
	o := newMsgBox()
	o.bs.Store(cfg.GetBufferSize())
	return o
}
