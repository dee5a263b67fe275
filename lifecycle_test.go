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
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libmbx "github.com/nabbar/msgbox"
	libdat "github.com/nabbar/msgbox/data"
)

var _ = Describe("MsgBox Lifecycle", func() {
	var box libmbx.MsgBox

	BeforeEach(func() {
		box = libmbx.New()
	})

	AfterEach(func() {
		box.Shutdown()
	})

	Describe("Registration bookkeeping", func() {
		It("should count live connections", func() {
			port := getFreePort()
			lr := newRecorder()

			lc, err := box.Listen(listenURI(port), nil, lr.cb)
			Expect(err).To(BeNil())
			Expect(box.OpenConnections()).To(Equal(int64(1)))

			Expect(box.Unlisten(lc)).To(BeNil())
			Expect(box.OpenConnections()).To(Equal(int64(0)))
		})

		It("should keep nothing registered after a failed bind", func() {
			port := getFreePort()
			r1 := newRecorder()
			r2 := newRecorder()

			_, err := box.Listen(listenURI(port), nil, r1.cb)
			Expect(err).To(BeNil())

			// binding the same port twice fails and unwinds the registration
			_, err = box.Listen(listenURI(port), nil, r2.cb)
			Expect(err).To(HaveOccurred())
			Expect(err.IsCode(libmbx.ErrorSocketBind)).To(BeTrue())
			Expect(box.OpenConnections()).To(Equal(int64(1)))

			tick(box, 2)
			Expect(r2.count(libmbx.EventError)).To(Equal(1))
			Expect(r2.count(libmbx.EventListening)).To(Equal(0))
		})

		It("should refuse unlisten on an initiator", func() {
			port := getFreePort()
			cr := newRecorder()

			cc, err := box.Connect(connectURI(port), nil, cr.cb)
			Expect(err).To(BeNil())

			err = box.Unlisten(cc)
			Expect(err).To(HaveOccurred())
			Expect(err.IsCode(libmbx.ErrorParamInvalid)).To(BeTrue())
		})

		It("should refuse registration without a callback", func() {
			_, err := box.Listen(listenURI(getFreePort()), nil, nil)
			Expect(err).To(HaveOccurred())
			Expect(err.IsCode(libmbx.ErrorParamEmpty)).To(BeTrue())
		})
	})

	Describe("Send misuse", func() {
		It("should refuse a null payload", func() {
			port := getFreePort()
			cr := newRecorder()

			cc, err := box.Connect(connectURI(port), nil, cr.cb)
			Expect(err).To(BeNil())

			var d libdat.Data
			err = box.Send(cc, d)
			Expect(err).To(HaveOccurred())
			Expect(err.IsCode(libmbx.ErrorParamEmpty)).To(BeTrue())
		})

		It("should refuse a nil connection", func() {
			d := libdat.New("x")
			err := box.Send(nil, d)
			Expect(err).To(HaveOccurred())
		})

		It("should refuse a payload larger than one datagram", func() {
			port := getFreePort()
			cr := newRecorder()

			cc, err := box.Connect(connectURI(port), nil, cr.cb)
			Expect(err).To(BeNil())

			d := libdat.NewSpace(libmbx.MaxPayloadSize + 1)
			err = box.Send(cc, d)
			Expect(err).To(HaveOccurred())
			Expect(err.IsCode(libmbx.ErrorPayloadTooLarge)).To(BeTrue())
		})

		It("should keep the payload owned by the caller after a send", func() {
			port := getFreePort()
			cr := newRecorder()

			cc, err := box.Connect(connectURI(port), nil, cr.cb)
			Expect(err).To(BeNil())

			d := libdat.New("still mine")
			Expect(box.Send(cc, d)).To(BeNil())
			Expect(d.String()).To(Equal("still mine"))
			d.Release()
		})
	})

	Describe("Shutdown", func() {
		It("should release everything and refuse further ticks", func() {
			port := getFreePort()
			lr := newRecorder()

			_, err := box.Listen(listenURI(port), nil, lr.cb)
			Expect(err).To(BeNil())

			box.Shutdown()

			Expect(box.OpenConnections()).To(Equal(int64(0)))

			err = box.RunLoop(10 * time.Millisecond)
			Expect(err).To(HaveOccurred())
			Expect(err.IsCode(libmbx.ErrorInstanceShutdown)).To(BeTrue())
		})

		It("should refuse registrations after shutdown", func() {
			box.Shutdown()

			lr := newRecorder()
			_, err := box.Listen(listenURI(getFreePort()), nil, lr.cb)
			Expect(err).To(HaveOccurred())
			Expect(err.IsCode(libmbx.ErrorInstanceShutdown)).To(BeTrue())
		})

		It("should discard queued events without running callbacks", func() {
			port := getFreePort()
			lr := newRecorder()

			_, err := box.Listen(listenURI(port), nil, lr.cb)
			Expect(err).To(BeNil())

			// the listening event is still queued when shutdown runs
			box.Shutdown()
			Expect(lr.events).To(BeEmpty())
		})
	})
})
