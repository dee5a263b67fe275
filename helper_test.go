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

package msgbox_test

import (
	"fmt"
	"net"
	"time"

	. "github.com/onsi/gomega"

	libmbx "github.com/nabbar/msgbox"
	libdat "github.com/nabbar/msgbox/data"
)

// recEvent is one recorded callback invocation. The payload bytes are copied
// since the callback must not retain the buffer past its return.
type recEvent struct {
	conn libmbx.Conn
	evt  libmbx.Event
	data string
	uctx any
}

// recorder collects the events delivered to one callback.
type recorder struct {
	events []recEvent
}

func newRecorder() *recorder {
	return &recorder{}
}

func (r *recorder) cb(c libmbx.Conn, e libmbx.Event, d libdat.Data) {
	r.events = append(r.events, recEvent{
		conn: c,
		evt:  e,
		data: d.String(),
		uctx: c.Context(),
	})
}

// names returns the recorded event names in delivery order.
func (r *recorder) names() []string {
	res := make([]string, 0, len(r.events))

	for _, e := range r.events {
		res = append(res, e.evt.String())
	}

	return res
}

// count returns how many times the given event was delivered.
func (r *recorder) count(evt libmbx.Event) int {
	var n int

	for _, e := range r.events {
		if e.evt == evt {
			n++
		}
	}

	return n
}

// getFreePort reserves a free UDP port on the loopback interface.
func getFreePort() uint16 {
	c, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	Expect(err).ToNot(HaveOccurred())

	p := uint16(c.LocalAddr().(*net.UDPAddr).Port)
	_ = c.Close()

	return p
}

func listenURI(port uint16) string {
	return fmt.Sprintf("udp://*:%d", port)
}

func connectURI(port uint16) string {
	return fmt.Sprintf("udp://127.0.0.1:%d", port)
}

// tickUntil drives the run loop until the recorder holds at least n events or
// the deadline expires.
func tickUntil(box libmbx.MsgBox, r *recorder, n int, max time.Duration) {
	dl := time.Now().Add(max)

	for len(r.events) < n && time.Now().Before(dl) {
		Expect(box.RunLoop(10 * time.Millisecond)).To(BeNil())
	}
}

// tick runs a fixed number of loop iterations regardless of delivery.
func tick(box libmbx.MsgBox, n int) {
	for i := 0; i < n; i++ {
		Expect(box.RunLoop(10 * time.Millisecond)).To(BeNil())
	}
}
