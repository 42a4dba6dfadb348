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

package actor

import (
	gods "github.com/Workiva/go-datastructures/queue"

	"github.com/tochemey/rotor/internal/queue"
)

// Inbox is the contract of a supervisor's inbound message queue.
//
// Implementations MUST be safe for multiple concurrent producers calling
// Enqueue; the supervisor consumes from a single pump, so Dequeue is
// single-consumer. FIFO ordering per producer is required.
type Inbox interface {
	// Enqueue pushes a message into the inbox. It returns an error when the
	// message cannot be queued; BoundedInbox blocks while full and returns
	// an error once disposed.
	Enqueue(msg *Message) error
	// Dequeue fetches the front message, nil when the inbox is empty.
	Dequeue() *Message
	// IsEmpty reports whether the inbox currently has no messages.
	IsEmpty() bool
	// Len returns a snapshot of the number of queued messages.
	Len() int64
	// Dispose releases any resources held by the implementation.
	Dispose()
}

// unboundedInbox is the default inbox: a lock-free unbounded MPSC queue.
type unboundedInbox struct {
	underlying *queue.MPSC[*Message]
}

// enforce compilation error
var _ Inbox = (*unboundedInbox)(nil)

func newUnboundedInbox() *unboundedInbox {
	return &unboundedInbox{underlying: queue.NewMPSC[*Message]()}
}

func (i *unboundedInbox) Enqueue(msg *Message) error {
	i.underlying.Push(msg)
	return nil
}

func (i *unboundedInbox) Dequeue() *Message {
	msg, ok := i.underlying.Pop()
	if !ok {
		return nil
	}
	return msg
}

func (i *unboundedInbox) IsEmpty() bool { return i.underlying.IsEmpty() }
func (i *unboundedInbox) Len() int64    { return i.underlying.Len() }
func (i *unboundedInbox) Dispose()      {}

// BoundedInbox is a bounded, blocking MPSC inbox backed by a ring buffer.
// When the inbox reaches capacity, Enqueue blocks until space becomes
// available or the inbox is disposed. Use it when strict backpressure on
// producers is wanted.
type BoundedInbox struct {
	underlying *gods.RingBuffer
}

// enforce compilation error
var _ Inbox = (*BoundedInbox)(nil)

// NewBoundedInbox creates a bounded inbox with the given capacity. Capacity
// must be a positive integer.
func NewBoundedInbox(capacity int) *BoundedInbox {
	return &BoundedInbox{underlying: gods.NewRingBuffer(uint64(capacity))}
}

// Enqueue inserts a message, blocking while the inbox is full. It returns an
// error when the inbox has been disposed.
func (i *BoundedInbox) Enqueue(msg *Message) error {
	return i.underlying.Put(msg)
}

// Dequeue removes and returns the front message, nil when empty.
func (i *BoundedInbox) Dequeue() *Message {
	if i.underlying.Len() > 0 {
		item, _ := i.underlying.Get()
		if msg, ok := item.(*Message); ok {
			return msg
		}
	}
	return nil
}

// IsEmpty reports whether the inbox currently has no messages.
func (i *BoundedInbox) IsEmpty() bool {
	return i.underlying.Len() == 0
}

// Len returns the current number of queued messages.
func (i *BoundedInbox) Len() int64 {
	return int64(i.underlying.Len())
}

// Dispose releases the ring buffer and unblocks its waiters.
func (i *BoundedInbox) Dispose() {
	i.underlying.Dispose()
}
