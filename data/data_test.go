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

package data_test

import (
	libdat "github.com/nabbar/msgbox/data"
	hckhdr "github.com/nabbar/msgbox/header"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Data Buffer", func() {
	Describe("New", func() {
		It("should round trip a string payload", func() {
			d := libdat.New("hi")
			Expect(d.String()).To(Equal("hi"))
			Expect(d.Len()).To(Equal(2))
		})

		It("should handle an empty string", func() {
			d := libdat.New("")
			Expect(d.Len()).To(Equal(0))
			Expect(d.IsNull()).To(BeFalse())
		})
	})

	Describe("NewSpace", func() {
		It("should expose exactly the requested payload length", func() {
			d := libdat.NewSpace(128)
			Expect(d.Len()).To(Equal(128))
			Expect(len(d.Bytes())).To(Equal(128))
		})

		It("should reserve the header prefix in the backing allocation", func() {
			d := libdat.NewSpace(16)
			Expect(len(d.Frame())).To(Equal(16 + hckhdr.Size))
		})

		It("should return the null sentinel for a negative size", func() {
			d := libdat.NewSpace(-1)
			Expect(d.IsNull()).To(BeTrue())
			Expect(d.Len()).To(Equal(0))
		})
	})

	Describe("Header prefix", func() {
		It("should be writable without disturbing the payload view", func() {
			d := libdat.New("payload")

			h := hckhdr.Header{
				Type:       hckhdr.MessageOneWay,
				NumPackets: 1,
				ReplyID:    hckhdr.SentinelReplyID,
			}
			Expect(h.Encode(d.Frame())).To(BeNil())

			Expect(d.String()).To(Equal("payload"))

			got, err := hckhdr.Decode(d.Frame())
			Expect(err).To(BeNil())
			Expect(got).To(Equal(h))
		})

		It("should keep the payload view advanced by the header size", func() {
			d := libdat.NewSpace(4)
			copy(d.Bytes(), "abcd")

			Expect(string(d.Frame()[hckhdr.Size:])).To(Equal("abcd"))
		})
	})

	Describe("Wrap", func() {
		It("should take ownership of a complete frame", func() {
			frame := make([]byte, hckhdr.Size+3)
			copy(frame[hckhdr.Size:], "xyz")

			d := libdat.Wrap(frame)
			Expect(d.Len()).To(Equal(3))
			Expect(d.String()).To(Equal("xyz"))
		})

		It("should reject a frame shorter than the header", func() {
			d := libdat.Wrap(make([]byte, hckhdr.Size-1))
			Expect(d.IsNull()).To(BeTrue())
		})
	})

	Describe("Null sentinel", func() {
		It("should carry no allocation", func() {
			var d libdat.Data
			Expect(d.IsNull()).To(BeTrue())
			Expect(d.Bytes()).To(BeNil())
			Expect(d.Len()).To(Equal(0))
			Expect(d.Frame()).To(BeNil())
		})
	})

	Describe("Release", func() {
		It("should reset the buffer to the null sentinel", func() {
			d := libdat.New("gone")
			d.Release()
			Expect(d.IsNull()).To(BeTrue())
		})
	})
})
