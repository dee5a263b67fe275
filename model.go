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
	"sync"

	libatm "github.com/nabbar/golib/atomic"
	liblog "github.com/nabbar/golib/logger"
	loglvl "github.com/nabbar/golib/logger/level"
	libptc "github.com/nabbar/golib/network/protocol"

	libdat "github.com/nabbar/msgbox/data"
	hckhdr "github.com/nabbar/msgbox/header"
	hckque "github.com/nabbar/msgbox/queue"
	hcksts "github.com/nabbar/msgbox/status"

	"golang.org/x/sys/unix"
)

// conn is the registry-owned connection state. It is only ever mutated from
// the run-loop goroutine.
type conn struct {
	prt libptc.NetworkProtocol
	rol Role
	fd  int
	rip net.IP
	rpt uint16
	lrq uint16 // correlation id of the last request frame received
	usr any
	fct FuncEvent
	ded bool // marked for sweep, entry must not be shifted mid-tick
	cls bool // socket torn down, sends fail
}

func (o *conn) Network() libptc.NetworkProtocol {
	return o.prt
}

func (o *conn) Role() Role {
	return o.rol
}

func (o *conn) Local() (net.IP, uint16) {
	if o.fd < 0 {
		return nil, 0
	}

	return sockLocal(o.fd)
}

func (o *conn) Remote() (net.IP, uint16) {
	return o.rip, o.rpt
}

func (o *conn) Context() any {
	return o.usr
}

func (o *conn) IsClosed() bool {
	return o.cls
}

// replyConn presents a connection with the dedicated context recorded by Get,
// so a Reply event reaches the caller with its own correlation context.
type replyConn struct {
	*conn
	rtx any
}

func (o *replyConn) Context() any {
	return o.rtx
}

// ownKind tags who releases the resource attached to a pending event once the
// callback has returned.
type ownKind uint8

const (
	ownNone ownKind = iota
	ownBuffer
	ownConn
)

// pending is one queued callback invocation.
type pending struct {
	c Conn
	e Event
	d libdat.Data
	o ownKind
	t *conn // teardown target when o == ownConn
}

type mbx struct {
	sm sync.Mutex
	fp []unix.PollFd // poll descriptors, index-aligned with cs
	cs []*conn
	ps hcksts.Registry
	qu hckque.FIFO[pending]
	ct hckhdr.Counter
	rc map[uint16]any // correlation id of an in-flight Get -> reply context
	lg libatm.Value[liblog.FuncLog]
	bs libatm.Value[int]
	dp bool // inside a dispatcher tick
	sd bool
}

func newMsgBox() *mbx {
	o := &mbx{
		ps: hcksts.New(),
		qu: hckque.New[pending](),
		ct: hckhdr.NewCounter(),
		rc: make(map[uint16]any),
		lg: libatm.NewValue[liblog.FuncLog](),
		bs: libatm.NewValue[int](),
	}

	o.bs.Store(DefaultBufferSize)

	return o
}

func (o *mbx) RegisterFuncLogger(fct liblog.FuncLog) {
	o.lg.Store(fct)
}

// logError reports a failure with no attributable connection. Never a user event.
func (o *mbx) logError(msg string, err error) {
	fct := o.lg.Load()
	if fct == nil {
		return
	}

	if l := fct(); l != nil {
		if err != nil {
			l.LogDetails(loglvl.ErrorLevel, msg, nil, []error{err}, nil)
		} else {
			l.Error(msg, nil)
		}
	}
}

func (o *mbx) logDebug(msg string) {
	fct := o.lg.Load()
	if fct == nil {
		return
	}

	if l := fct(); l != nil {
		l.Debug(msg, nil)
	}
}

// enqueue appends a pending event. Events pushed while the dispatcher drains
// land in the next generation and deliver on the next tick.
func (o *mbx) enqueue(c Conn, e Event, d libdat.Data, own ownKind, tear *conn) {
	o.qu.Push(pending{
		c: c,
		e: e,
		d: d,
		o: own,
		t: tear,
	})
}

// enqueueError turns an operational failure into a deferred Error event whose
// payload is the human-readable message.
func (o *mbx) enqueueError(c Conn, err error) {
	o.enqueue(c, EventError, libdat.New(err.Error()), ownBuffer, nil)
}

// register appends the poll descriptor and the connection atomically with
// respect to dispatch, keeping both sequences index-aligned.
func (o *mbx) register(c *conn) {
	o.sm.Lock()
	defer o.sm.Unlock()

	o.fp = append(o.fp, unix.PollFd{
		Fd:     int32(c.fd),
		Events: unix.POLLIN,
	})
	o.cs = append(o.cs, c)
}

// removeLast unwinds the most recent registration after a failed bind or
// connect.
func (o *mbx) removeLast() {
	o.sm.Lock()
	defer o.sm.Unlock()

	if n := len(o.cs); n > 0 {
		o.fp = o.fp[:n-1]
		o.cs = o.cs[:n-1]
	}
}

// sweep drops the connections marked dead since the last tick. Entries are
// never shifted while the dispatcher iterates; the runloop calls this between
// ticks only.
func (o *mbx) sweep() {
	o.sm.Lock()
	defer o.sm.Unlock()

	var (
		nf []unix.PollFd
		nc []*conn
	)

	for i, c := range o.cs {
		if c.ded {
			continue
		}

		nf = append(nf, o.fp[i])
		nc = append(nc, c)
	}

	o.fp = nf
	o.cs = nc
}

// teardown closes the socket and evicts the peer entry of the connection. The
// registry slot stays in place until the next sweep.
func (o *mbx) teardown(c *conn) {
	if c.cls {
		return
	}

	c.ded = true
	c.cls = true

	if c.rip != nil {
		o.ps.Delete(hcksts.NewKey(c.rip, c.rpt, c.prt))
	}

	sockClose(c.fd)
	c.fd = -1
}

func (o *mbx) OpenConnections() int64 {
	o.sm.Lock()
	defer o.sm.Unlock()

	var n int64

	for _, c := range o.cs {
		if !c.ded {
			n++
		}
	}

	return n
}
