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
	"reflect"

	gerrors "github.com/tochemey/rotor/errors"
)

// Message is the envelope carrying a typed payload to a destination address.
// The payload type is immutable after construction; it is the key under which
// handlers are looked up in the destination's subscription table.
type Message struct {
	to      *Address
	payload any
}

// NewMessage creates a message carrying the given payload to the given
// address.
func NewMessage(to *Address, payload any) *Message {
	return &Message{to: to, payload: payload}
}

// To returns the destination address of the message.
func (m *Message) To() *Address {
	return m.to
}

// Payload returns the payload carried by the message.
func (m *Message) Payload() any {
	return m.payload
}

// PayloadType returns the reflect type of the payload. It is the dispatch key
// in the subscription tables.
func (m *Message) PayloadType() reflect.Type {
	return reflect.TypeOf(m.payload)
}

// IsRequest reports whether the message carries a request envelope.
func (m *Message) IsRequest() bool {
	_, ok := m.payload.(requestEnvelope)
	return ok
}

// IsResponse reports whether the message carries a response envelope.
func (m *Message) IsResponse() bool {
	_, ok := m.payload.(responseEnvelope)
	return ok
}

// Send delivers the given payload to the address by enqueueing it on the
// owning supervisor's inbound queue. It is safe to call from any goroutine;
// ordering is guaranteed per (caller goroutine, destination address) pair.
func Send(to *Address, payload any) {
	if to == nil {
		panic(gerrors.NewErrProtocolViolation("send to nil address"))
	}
	to.owner.post(NewMessage(to, payload))
}

// Deliver enqueues an already built message on the destination's owning
// supervisor.
func Deliver(m *Message) {
	m.to.owner.post(m)
}

// Request is the envelope wrapping a request payload. It carries a request id
// unique to the sender's supervisor and the address responses are delivered
// to. Handlers subscribe to the instantiated envelope type, so each request
// payload type gets its own handler list.
type Request[T any] struct {
	id      uint64
	replyTo *Address
	payload T
}

// ID returns the request correlation id.
func (r *Request[T]) ID() uint64 {
	return r.id
}

// ReplyTo returns the address the response must be delivered to.
func (r *Request[T]) ReplyTo() *Address {
	return r.replyTo
}

// Payload returns the request payload.
func (r *Request[T]) Payload() T {
	return r.payload
}

func (r *Request[T]) requestID() uint64 {
	return r.id
}

func (r *Request[T]) replyAddress() *Address {
	return r.replyTo
}

// Response is the envelope wrapping a response payload. A response carries
// the id of the request it answers and, for synthetic responses, the error
// that terminated the request.
type Response[T any] struct {
	id      uint64
	err     error
	payload T
}

// ID returns the id of the request this response answers.
func (r *Response[T]) ID() uint64 {
	return r.id
}

// Err returns the error carried by a synthetic or failed response, nil
// otherwise.
func (r *Response[T]) Err() error {
	return r.err
}

// Payload returns the response payload. It is the zero value when Err is
// set.
func (r *Response[T]) Payload() T {
	return r.payload
}

func (r *Response[T]) requestID() uint64 {
	return r.id
}

func (r *Response[T]) responseError() error {
	return r.err
}

// requestEnvelope is satisfied by every Request instantiation.
type requestEnvelope interface {
	requestID() uint64
	replyAddress() *Address
}

// responseEnvelope is satisfied by every Response instantiation. Supervisors
// use it to correlate incoming responses with their request registry without
// knowing the concrete payload type.
type responseEnvelope interface {
	requestID() uint64
	responseError() error
}
