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

import (
	"net"
	"time"

	liberr "github.com/nabbar/golib/errors"

	libdat "github.com/nabbar/msgbox/data"
	hckhdr "github.com/nabbar/msgbox/header"
	hcksts "github.com/nabbar/msgbox/status"

	"golang.org/x/sys/unix"
)

// RunLoop performs one dispatcher tick.
//
// The tick first sweeps the connections marked dead since the previous tick,
// then waits for readiness on every registered socket up to the timeout, reads
// the pending frames, and finally swaps the deferred queue and drains the saved
// generation. Callbacks therefore run strictly after all socket work of the
// tick, and anything they enqueue is delivered on the next tick.
func (o *mbx) RunLoop(timeout time.Duration) liberr.Error {
	o.sm.Lock()

	if o.sd {
		o.sm.Unlock()
		return ErrorInstanceShutdown.Error(nil)
	}

	o.dp = true
	o.sm.Unlock()

	defer func() {
		o.sm.Lock()
		o.dp = false
		o.sm.Unlock()
	}()

	o.sweep()

	o.sm.Lock()
	fds := o.fp
	cns := o.cs
	o.sm.Unlock()

	n, err := unix.Poll(fds, int(timeout.Milliseconds()))

	switch {
	case err != nil:
		// a failed wait has no attributable connection: log, do not dispatch
		if !sockErrTransient(err) {
			o.logError("waiting for socket readiness", err)
		}
	case n > 0:
		for i := range fds {
			if fds[i].Revents != 0 {
				o.read(cns[i], fds[i].Revents)
			}
		}
	}

	for _, p := range o.qu.Swap() {
		o.deliver(p)
	}

	return nil
}

// read handles one ready socket: peek the frame header, then consume the
// datagram and dispatch on the message type.
func (o *mbx) read(c *conn, rev int16) {
	if c.ded || c.cls {
		return
	}

	if rev&unix.POLLNVAL != 0 {
		c.ded = true
		o.enqueue(c, EventConnectionLost, libdat.Data{}, ownConn, c)
		return
	}

	if rev&(unix.POLLIN|unix.POLLERR|unix.POLLHUP) == 0 {
		return
	}

	var hb [hckhdr.Size]byte

	hn, err := sockPeek(c.fd, hb[:])
	if err != nil {
		o.readFail(c, err)
		return
	}

	hdr, herr := hckhdr.Decode(hb[:hn])

	// the datagram boundary was preserved by the peek; consume it now
	buf := make([]byte, o.bs.Load())

	n, sip, spt, err := sockRecv(c.fd, buf)
	if err != nil {
		o.readFail(c, err)
		return
	}

	if sip == nil {
		// connected sockets may omit the source endpoint
		sip, spt = c.rip, c.rpt
	}

	switch {
	case herr != nil:
		// runt datagram, cannot carry a header: skip the packet
		o.logDebug("dropping runt datagram on " + c.rol.String() + " socket")

	case !hdr.Type.IsValid():
		o.logDebug("dropping frame with message type outside the protocol enumeration")

	case hdr.NumPackets > 1:
		o.logDebug("dropping multi-packet message: reassembly not supported")

	case hdr.Type == hckhdr.MessageHeartbeat:
		o.ps.Touch(hcksts.NewKey(sip, spt, c.prt))

	case hdr.Type == hckhdr.MessageClose:
		c.rip, c.rpt = sip, spt
		c.ded = true
		o.ps.Delete(hcksts.NewKey(sip, spt, c.prt))
		o.enqueue(c, EventConnectionClosed, libdat.Data{}, ownConn, c)

	default:
		o.inbound(c, hdr, buf[:n], sip, spt)
	}
}

// readFail sorts a receive failure: readiness races retry silently, reachability
// errors report without teardown, anything else discards the connection.
func (o *mbx) readFail(c *conn, err error) {
	switch {
	case sockErrTransient(err):
	case err == unix.ECONNREFUSED || err == unix.EHOSTUNREACH || err == unix.ENETUNREACH:
		o.enqueueError(c, ErrorSocketRecv.Error(err))
	default:
		c.ded = true
		o.enqueue(c, EventConnectionLost, libdat.New(ErrorSocketRecv.Error(err).Error()), ownConn, c)
	}
}

// inbound handles a one_way, request or reply frame: overwrite the remote
// endpoint with the datagram source, run the first-seen check, then enqueue
// the data event with the payload view pointing past the header.
func (o *mbx) inbound(c *conn, hdr hckhdr.Header, frame []byte, sip net.IP, spt uint16) {
	c.rip, c.rpt = sip, spt

	if o.ps.Observe(hcksts.NewKey(sip, spt, c.prt)) {
		// a first-seen peer always yields connection_ready ahead of its data event
		o.enqueue(c, EventConnectionReady, libdat.Data{}, ownNone, nil)
	}

	d := libdat.Wrap(frame)

	switch hdr.Type {
	case hckhdr.MessageOneWay:
		o.enqueue(c, EventMessage, d, ownBuffer, nil)

	case hckhdr.MessageRequest:
		c.lrq = hckhdr.Correlation(hdr.ReplyID)
		o.enqueue(c, EventRequest, d, ownBuffer, nil)

	case hckhdr.MessageReply:
		tgt := Conn(c)

		if hckhdr.IsReply(hdr.ReplyID) {
			o.sm.Lock()
			if rtx, ok := o.rc[hckhdr.Correlation(hdr.ReplyID)]; ok {
				delete(o.rc, hckhdr.Correlation(hdr.ReplyID))
				tgt = &replyConn{conn: c, rtx: rtx}
			}
			o.sm.Unlock()
		}

		o.enqueue(tgt, EventReply, d, ownBuffer, nil)
	}
}

// deliver invokes one queued callback, then releases the recorded owned
// resource exactly once.
func (o *mbx) deliver(p pending) {
	cn := resolve(p.c)

	if cn != nil && cn.fct != nil {
		cn.fct(p.c, p.e, p.d)
	}

	switch p.o {
	case ownBuffer:
		p.d.Release()
	case ownConn:
		if p.t != nil {
			o.teardown(p.t)
		}
	case ownNone:
	}
}

// Shutdown releases the connection registry, the peer-status map and the
// deferred queue. Queued events are discarded without running callbacks; their
// owned resources are released all the same.
func (o *mbx) Shutdown() {
	o.sm.Lock()

	if o.sd {
		o.sm.Unlock()
		return
	}

	o.sd = true

	for _, c := range o.cs {
		if !c.cls {
			sockClose(c.fd)
			c.fd = -1
			c.cls = true
			c.ded = true
		}
	}

	o.fp = nil
	o.cs = nil
	o.rc = make(map[uint16]any)
	o.sm.Unlock()

	o.ps.Clean()

	for _, p := range o.qu.Swap() {
		switch p.o {
		case ownBuffer:
			p.d.Release()
		case ownConn:
			if p.t != nil && p.t.fd >= 0 {
				sockClose(p.t.fd)
				p.t.fd = -1
				p.t.cls = true
			}
		}
	}
}
