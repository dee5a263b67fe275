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

package header_test

import (
	"encoding/binary"

	. "github.com/nabbar/msgbox/header"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Frame Header Codec", func() {
	Describe("Encode", func() {
		It("should write all four fields big-endian", func() {
			h := Header{
				Type:       MessageRequest,
				NumPackets: 1,
				PacketID:   0,
				ReplyID:    0x1234,
			}

			buf := make([]byte, Size)
			Expect(h.Encode(buf)).To(BeNil())

			Expect(binary.BigEndian.Uint16(buf[0:2])).To(Equal(uint16(MessageRequest)))
			Expect(binary.BigEndian.Uint16(buf[2:4])).To(Equal(uint16(1)))
			Expect(binary.BigEndian.Uint16(buf[4:6])).To(Equal(uint16(0)))
			Expect(binary.BigEndian.Uint16(buf[6:8])).To(Equal(uint16(0x1234)))
		})

		It("should reject a buffer shorter than the header", func() {
			h := Header{Type: MessageOneWay}
			Expect(h.Encode(make([]byte, Size-1))).To(HaveOccurred())
		})

		It("should only touch the first eight bytes of a larger buffer", func() {
			buf := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xAA, 0xBB}
			h := Header{Type: MessageClose, NumPackets: 1}

			Expect(h.Encode(buf)).To(BeNil())
			Expect(buf[8]).To(Equal(byte(0xAA)))
			Expect(buf[9]).To(Equal(byte(0xBB)))
		})
	})

	Describe("Decode", func() {
		It("should reject a buffer shorter than the header", func() {
			_, err := Decode(make([]byte, Size-1))
			Expect(err).To(HaveOccurred())
		})

		It("should decode a heartbeat frame", func() {
			buf := []byte{0x00, 0x03, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01}

			h, err := Decode(buf)
			Expect(err).To(BeNil())
			Expect(h.Type).To(Equal(MessageHeartbeat))
			Expect(h.NumPackets).To(Equal(uint16(1)))
			Expect(h.PacketID).To(Equal(uint16(0)))
			Expect(h.ReplyID).To(Equal(SentinelReplyID))
		})
	})

	Describe("Round trip", func() {
		It("should be the identity over the enumerated field domains", func() {
			types := []MessageType{MessageOneWay, MessageRequest, MessageReply, MessageHeartbeat, MessageClose}

			for _, mt := range types {
				src := Header{
					Type:       mt,
					NumPackets: 1,
					PacketID:   0,
					ReplyID:    0x7FFE,
				}

				buf := make([]byte, Size)
				Expect(src.Encode(buf)).To(BeNil())

				dst, err := Decode(buf)
				Expect(err).To(BeNil())
				Expect(dst).To(Equal(src), "failed for type %s", mt.String())
			}
		})

		It("should preserve the reply flag", func() {
			src := Header{Type: MessageReply, NumPackets: 1, ReplyID: ReplyTo(42)}

			buf := make([]byte, Size)
			Expect(src.Encode(buf)).To(BeNil())

			dst, err := Decode(buf)
			Expect(err).To(BeNil())
			Expect(IsReply(dst.ReplyID)).To(BeTrue())
			Expect(Correlation(dst.ReplyID)).To(Equal(uint16(42)))
		})
	})

	Describe("MessageType", func() {
		It("should name every protocol value", func() {
			tests := map[MessageType]string{
				MessageOneWay:    "one_way",
				MessageRequest:   "request",
				MessageReply:     "reply",
				MessageHeartbeat: "heartbeat",
				MessageClose:     "close",
			}

			for mt, exp := range tests {
				Expect(mt.String()).To(Equal(exp))
			}
		})

		It("should return an empty string outside the enumeration", func() {
			Expect(MessageType(5).String()).To(Equal(""))
			Expect(MessageType(255).String()).To(Equal(""))
		})

		It("should validate only the enumerated values", func() {
			Expect(MessageOneWay.IsValid()).To(BeTrue())
			Expect(MessageClose.IsValid()).To(BeTrue())
			Expect(MessageType(5).IsValid()).To(BeFalse())
		})
	})

	Describe("Reply id helpers", func() {
		It("should set and strip the high bit", func() {
			Expect(ReplyTo(1)).To(Equal(uint16(0x8001)))
			Expect(IsReply(0x8001)).To(BeTrue())
			Expect(IsReply(1)).To(BeFalse())
			Expect(Correlation(0x8001)).To(Equal(uint16(1)))
		})
	})
})
