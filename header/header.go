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

// Package header implements the fixed 8-byte frame header shared by every datagram
// of the msgbox wire protocol, together with the correlation id arithmetic used to
// pair requests with replies.
//
// The header layout, all fields 16-bit big-endian:
//
//	offset 0: message type (one_way=0, request=1, reply=2, heartbeat=3, close=4)
//	offset 2: total packets in the logical message
//	offset 4: 0-based packet index within the logical message
//	offset 6: reply id (15-bit correlation id, high bit marks a reply)
package header

import (
	"encoding/binary"

	liberr "github.com/nabbar/golib/errors"
)

const (
	// Size is the encoded length of a frame header in bytes.
	Size = 8

	// ReplyFlag is the high bit of the reply id, distinguishing a reply
	// from the request it answers.
	ReplyFlag uint16 = 0x8000

	// MaxCorrelation bounds the 15-bit correlation id space.
	MaxCorrelation uint16 = 0x7FFF

	// SentinelReplyID is carried by one_way and heartbeat frames.
	// Receivers must not correlate it.
	SentinelReplyID uint16 = 1
)

// Header is the decoded form of the 8-byte frame header.
type Header struct {
	Type       MessageType
	NumPackets uint16
	PacketID   uint16
	ReplyID    uint16
}

// Encode writes the header into the first Size bytes of dst in network byte order.
func (h Header) Encode(dst []byte) liberr.Error {
	if len(dst) < Size {
		return ErrorBufferSize.Error(nil)
	}

	binary.BigEndian.PutUint16(dst[0:2], uint16(h.Type))
	binary.BigEndian.PutUint16(dst[2:4], h.NumPackets)
	binary.BigEndian.PutUint16(dst[4:6], h.PacketID)
	binary.BigEndian.PutUint16(dst[6:8], h.ReplyID)

	return nil
}

// Decode reads a header from the first Size bytes of src.
// The message type is not validated here; callers gate on Header.Type.IsValid
// so that a violation can be handled on their own error path.
func Decode(src []byte) (Header, liberr.Error) {
	if len(src) < Size {
		return Header{}, ErrorBufferSize.Error(nil)
	}

	return Header{
		Type:       MessageType(binary.BigEndian.Uint16(src[0:2])),
		NumPackets: binary.BigEndian.Uint16(src[2:4]),
		PacketID:   binary.BigEndian.Uint16(src[4:6]),
		ReplyID:    binary.BigEndian.Uint16(src[6:8]),
	}, nil
}

// IsReply reports whether the given reply id carries the reply flag.
func IsReply(id uint16) bool {
	return id&ReplyFlag != 0
}

// Correlation strips the reply flag and returns the 15-bit correlation id.
func Correlation(id uint16) uint16 {
	return id & MaxCorrelation
}

// ReplyTo builds the reply id answering the given request id: same correlation
// id with the reply flag set.
func ReplyTo(id uint16) uint16 {
	return (id & MaxCorrelation) | ReplyFlag
}
