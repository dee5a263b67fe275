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

package header

import (
	"sync/atomic"
)

// Counter allocates request correlation ids.
//
// Ids advance monotonically in [1, MaxCorrelation), wrapping back to 1 after
// exhaustion. Zero is never drawn and the reply flag is never set, so any id
// returned by Next can be carried as-is in a request header.
type Counter interface {
	// Next draws the next correlation id.
	Next() uint16
	// Last returns the most recently drawn id, or zero if none was drawn yet.
	Last() uint16
}

// NewCounter returns a Counter starting before the first legal id, so the
// first call to Next yields 1.
func NewCounter() Counter {
	return &cnt{}
}

type cnt struct {
	v atomic.Uint32
}

func (o *cnt) Next() uint16 {
	for {
		cur := o.v.Load()
		nxt := cur + 1

		if nxt >= uint32(MaxCorrelation) {
			nxt = 1
		}

		if o.v.CompareAndSwap(cur, nxt) {
			return uint16(nxt)
		}
	}
}

func (o *cnt) Last() uint16 {
	return uint16(o.v.Load())
}
