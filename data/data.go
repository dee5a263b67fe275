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

// Package data implements the payload buffer handed to callbacks and to the send path.
//
// Every buffer reserves header.Size bytes in front of the user-visible payload, so a
// sender can write the frame header in place without reallocating. The payload view
// returned by Bytes always starts header.Size bytes into the backing allocation and
// its length excludes the header.
package data

import (
	hckhdr "github.com/nabbar/msgbox/header"
)

// Data is a payload view over a header-prefixed allocation.
// The zero value is the null sentinel: nil bytes, zero length, no allocation.
type Data struct {
	raw []byte
}

// New allocates a buffer whose payload holds the given string.
func New(s string) Data {
	d := NewSpace(len(s))
	copy(d.Bytes(), s)
	return d
}

// NewSpace allocates a buffer with an n-byte payload and the reserved header prefix.
// A negative size yields the null sentinel.
func NewSpace(n int) Data {
	if n < 0 {
		return Data{}
	}

	return Data{
		raw: make([]byte, hckhdr.Size+n),
	}
}

// Wrap takes ownership of a complete inbound frame, header prefix included.
// A frame shorter than the header yields the null sentinel.
func Wrap(frame []byte) Data {
	if len(frame) < hckhdr.Size {
		return Data{}
	}

	return Data{
		raw: frame,
	}
}

// Len returns the payload length, excluding the header prefix.
func (d Data) Len() int {
	if d.raw == nil {
		return 0
	}

	return len(d.raw) - hckhdr.Size
}

// Bytes returns the user-visible payload view, or nil for the null sentinel.
func (d Data) Bytes() []byte {
	if d.raw == nil {
		return nil
	}

	return d.raw[hckhdr.Size:]
}

// Frame returns the whole backing allocation, header prefix included.
// The send path encodes the frame header into the first header.Size bytes.
func (d Data) Frame() []byte {
	return d.raw
}

// IsNull reports whether the buffer is the null sentinel carrying no allocation.
func (d Data) IsNull() bool {
	return d.raw == nil
}

// String returns the payload as a string.
func (d Data) String() string {
	return string(d.Bytes())
}

// Release drops the reference to the backing allocation and resets the buffer
// to the null sentinel. Accessing a view obtained before Release is a misuse.
func (d *Data) Release() {
	d.raw = nil
}
