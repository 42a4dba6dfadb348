/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
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
 */

// Package queue provides the lock-free queues used by the runtime.
package queue

import (
	"sync"
	"sync/atomic"
)

// mpscNode defines a node of the MPSC queue.
type mpscNode[T any] struct {
	next atomic.Pointer[mpscNode[T]]
	data T
}

// MPSC is an unbounded, lock-free Multi-Producer-Single-Consumer queue.
//
// Many goroutines may call Push concurrently, but exactly one goroutine must
// call Pop. FIFO ordering is preserved per producer, and across producers the
// ordering is the linearization order of the tail swaps.
type MPSC[T any] struct {
	head atomic.Pointer[mpscNode[T]] // consumer only
	tail atomic.Pointer[mpscNode[T]] // producers only
	pool sync.Pool
}

// NewMPSC creates and initializes an MPSC queue. The queue starts with a
// dummy node so that producers can append by swapping the tail and linking
// through the previous node.
func NewMPSC[T any]() *MPSC[T] {
	q := &MPSC[T]{
		pool: sync.Pool{New: func() any { return new(mpscNode[T]) }},
	}
	dummy := q.pool.Get().(*mpscNode[T])
	dummy.next.Store(nil)
	q.head.Store(dummy)
	q.tail.Store(dummy)
	return q
}

// Push places the given value at the tail of the queue. It never blocks and
// is safe for concurrent calls by multiple producers.
func (q *MPSC[T]) Push(value T) {
	n := q.pool.Get().(*mpscNode[T])
	n.next.Store(nil)
	n.data = value

	prev := q.tail.Swap(n)
	prev.next.Store(n)
}

// Pop removes and returns the value at the head of the queue. The second
// return value is false when the queue is empty. Must be called by a single
// consumer goroutine.
func (q *MPSC[T]) Pop() (T, bool) {
	var zero T
	head := q.head.Load()
	next := head.next.Load()
	if next == nil {
		return zero, false
	}

	q.head.Store(next)
	value := next.data
	next.data = zero

	head.next.Store(nil)
	q.pool.Put(head)
	return value, true
}

// IsEmpty returns true when the queue holds no values. This is an O(1) check
// and safe under concurrent producers.
func (q *MPSC[T]) IsEmpty() bool {
	return q.head.Load().next.Load() == nil
}

// Len returns a best-effort snapshot of the number of values in the queue.
// It performs an O(n) traversal and is intended for diagnostics.
func (q *MPSC[T]) Len() int64 {
	var count int64
	n := q.head.Load().next.Load()
	for n != nil {
		count++
		n = n.next.Load()
	}
	return count
}
