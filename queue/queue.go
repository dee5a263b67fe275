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

// Package queue provides the deferred FIFO drained once per run-loop tick.
//
// The dispatcher swaps the queue for a fresh one before draining, so enqueues made
// from inside a callback land in the next generation and are delivered on the next
// tick. This keeps per-tick work bounded and gives strict generational separation.
package queue

import (
	"sync"
)

// FIFO is an append-only queue drained by generation swap.
type FIFO[T any] interface {
	// Push appends an item to the current generation.
	Push(item T)
	// Swap replaces the current generation with a fresh empty one and returns
	// the drained items in enqueue order.
	Swap() []T
	// Len returns the number of items in the current generation.
	Len() int
}

// New returns an empty FIFO.
func New[T any]() FIFO[T] {
	return &fifo[T]{}
}

type fifo[T any] struct {
	sm sync.Mutex
	sl []T
}

func (o *fifo[T]) Push(item T) {
	o.sm.Lock()
	defer o.sm.Unlock()

	o.sl = append(o.sl, item)
}

func (o *fifo[T]) Swap() []T {
	o.sm.Lock()
	defer o.sm.Unlock()

	res := o.sl
	o.sl = nil

	return res
}

func (o *fifo[T]) Len() int {
	o.sm.Lock()
	defer o.sm.Unlock()

	return len(o.sl)
}
