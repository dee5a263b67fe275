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
	liberr "github.com/nabbar/golib/errors"
	libptc "github.com/nabbar/golib/network/protocol"

	libadr "github.com/nabbar/msgbox/address"
	libdat "github.com/nabbar/msgbox/data"
	hckhdr "github.com/nabbar/msgbox/header"
	hcksts "github.com/nabbar/msgbox/status"
)

// resolve extracts the registry-owned connection behind a public Conn view.
func resolve(c Conn) *conn {
	switch v := c.(type) {
	case *replyConn:
		return v.conn
	case *conn:
		return v
	}

	return nil
}

func (o *mbx) isShutdown() bool {
	o.sm.Lock()
	defer o.sm.Unlock()

	return o.sd
}

func (o *mbx) isDispatching() bool {
	o.sm.Lock()
	defer o.sm.Unlock()

	return o.dp
}

func (o *mbx) Listen(uri string, uctx any, fct FuncEvent) (Conn, liberr.Error) {
	return o.open(uri, uctx, fct, RoleListener)
}

func (o *mbx) Connect(uri string, uctx any, fct FuncEvent) (Conn, liberr.Error) {
	return o.open(uri, uctx, fct, RoleInitiator)
}

// open is the shared listen/connect path: parse, create the socket, register,
// then bind or connect. Any failure enqueues an Error event on the nascent
// connection and unwinds the partial registration.
func (o *mbx) open(uri string, uctx any, fct FuncEvent, rol Role) (Conn, liberr.Error) {
	if fct == nil {
		return nil, ErrorParamEmpty.Error(nil)
	}

	if o.isShutdown() {
		return nil, ErrorInstanceShutdown.Error(nil)
	}

	c := &conn{
		rol: rol,
		fd:  -1,
		usr: uctx,
		fct: fct,
	}

	adr, err := libadr.Parse(uri)
	if err != nil {
		o.enqueueError(c, err)
		return c, err
	}

	c.prt = adr.Network

	if adr.Network != libptc.NetworkUDP {
		// stream transports parse but have no framing support yet
		err = ErrorStreamUnsupported.Error(nil)
		o.enqueueError(c, err)
		return c, err
	}

	if rol == RoleInitiator && adr.IsWildcard() {
		err = ErrorParamInvalid.Error(nil)
		o.enqueueError(c, err)
		return c, err
	}

	fd, e := sockNew()
	if e != nil {
		err = ErrorSocketCreate.Error(e)
		o.enqueueError(c, err)
		return c, err
	}

	c.fd = fd
	o.register(c)

	if rol == RoleListener {
		if e = sockBind(fd, adr.IP, adr.Port); e != nil {
			o.removeLast()
			sockClose(fd)
			c.fd = -1
			c.cls = true

			err = ErrorSocketBind.Error(e)
			o.enqueueError(c, err)
			return c, err
		}

		o.enqueue(c, EventListening, libdat.Data{}, ownNone, nil)
		return c, nil
	}

	if e = sockConnect(fd, adr.IP, adr.Port); e != nil {
		o.removeLast()
		sockClose(fd)
		c.fd = -1
		c.cls = true

		err = ErrorSocketConnect.Error(e)
		o.enqueueError(c, err)
		return c, err
	}

	c.rip = adr.IP
	c.rpt = adr.Port

	// first-seen path for the outgoing peer
	if o.ps.Observe(hcksts.NewKey(c.rip, c.rpt, c.prt)) {
		o.enqueue(c, EventConnectionReady, libdat.Data{}, ownNone, nil)
	}

	return c, nil
}

func (o *mbx) Send(c Conn, d libdat.Data) liberr.Error {
	return o.write(c, d, hckhdr.Header{
		Type:       hckhdr.MessageOneWay,
		NumPackets: 1,
		PacketID:   0,
		ReplyID:    hckhdr.SentinelReplyID,
	})
}

func (o *mbx) Get(c Conn, d libdat.Data, replyCtx any) (uint16, liberr.Error) {
	cn := resolve(c)
	if cn == nil {
		return 0, ErrorParamEmpty.Error(nil)
	}

	rid := o.ct.Next()

	err := o.write(c, d, hckhdr.Header{
		Type:       hckhdr.MessageRequest,
		NumPackets: 1,
		PacketID:   0,
		ReplyID:    rid,
	})
	if err != nil {
		return 0, err
	}

	o.sm.Lock()
	o.rc[rid] = replyCtx
	o.sm.Unlock()

	return rid, nil
}

func (o *mbx) Reply(c Conn, d libdat.Data) liberr.Error {
	cn := resolve(c)
	if cn == nil {
		return ErrorParamEmpty.Error(nil)
	}

	if cn.lrq == 0 {
		return ErrorConnMissingRequest.Error(nil)
	}

	return o.write(c, d, hckhdr.Header{
		Type:       hckhdr.MessageReply,
		NumPackets: 1,
		PacketID:   0,
		ReplyID:    hckhdr.ReplyTo(cn.lrq),
	})
}

// write encodes the header in place in front of the payload view, then sends
// the frame on the connection socket. The payload stays owned by the caller.
func (o *mbx) write(c Conn, d libdat.Data, hdr hckhdr.Header) liberr.Error {
	cn := resolve(c)
	if cn == nil {
		return ErrorParamEmpty.Error(nil)
	}

	if o.isShutdown() {
		return ErrorInstanceShutdown.Error(nil)
	}

	if cn.cls {
		err := ErrorConnClosed.Error(nil)
		o.enqueueError(cn, err)
		return err
	}

	if d.IsNull() {
		err := ErrorParamEmpty.Error(nil)
		o.enqueueError(cn, err)
		return err
	}

	if d.Len() > o.bs.Load()-hckhdr.Size {
		err := ErrorPayloadTooLarge.Error(nil)
		o.enqueueError(cn, err)
		return err
	}

	if err := hdr.Encode(d.Frame()); err != nil {
		return err
	}

	var e error

	if cn.rol == RoleListener {
		if cn.rip == nil {
			err := ErrorParamInvalid.Error(nil)
			o.enqueueError(cn, err)
			return err
		}

		e = sockSendTo(cn.fd, d.Frame(), cn.rip, cn.rpt)
	} else {
		e = sockSend(cn.fd, d.Frame())
	}

	if e != nil {
		err := ErrorSocketSend.Error(e)
		o.enqueueError(cn, err)
		return err
	}

	return nil
}

func (o *mbx) Disconnect(c Conn) liberr.Error {
	cn := resolve(c)
	if cn == nil {
		return ErrorParamEmpty.Error(nil)
	}

	if cn.cls {
		return ErrorConnClosed.Error(nil)
	}

	// best-effort zero-payload close frame, then immediate teardown
	if cn.rip != nil || cn.rol == RoleInitiator {
		f := libdat.NewSpace(0)
		h := hckhdr.Header{
			Type:       hckhdr.MessageClose,
			NumPackets: 1,
		}

		if err := h.Encode(f.Frame()); err == nil {
			if cn.rol == RoleListener {
				_ = sockSendTo(cn.fd, f.Frame(), cn.rip, cn.rpt)
			} else {
				_ = sockSend(cn.fd, f.Frame())
			}
		}
	}

	o.teardown(cn)

	if !o.isDispatching() {
		o.sweep()
	}

	return nil
}

func (o *mbx) Unlisten(c Conn) liberr.Error {
	cn := resolve(c)
	if cn == nil {
		return ErrorParamEmpty.Error(nil)
	}

	if cn.rol != RoleListener {
		return ErrorParamInvalid.Error(nil)
	}

	if cn.cls {
		return ErrorConnClosed.Error(nil)
	}

	o.teardown(cn)

	if !o.isDispatching() {
		o.sweep()
	}

	return nil
}
