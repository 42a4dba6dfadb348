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
	"time"

	"github.com/tochemey/rotor/executor"
)

// pendingRequest is a slot of the request registry: the expected response
// envelope type, the reply address, the timer armed on the supervisor's
// executor and the synthesizer building the error response when the request
// terminates without one.
type pendingRequest struct {
	expected   reflect.Type
	replyTo    *Address
	timer      executor.TimerHandle
	synthesize func(error) *Message
}

// requestRegistry correlates outgoing requests with pending response slots.
// There is one registry per supervisor; it is only touched from the
// supervisor's pump. Request ids are unique per registry and monotonically
// increasing.
type requestRegistry struct {
	seq     uint64
	entries map[uint64]*pendingRequest
}

func newRequestRegistry() *requestRegistry {
	return &requestRegistry{
		entries: make(map[uint64]*pendingRequest),
	}
}

func (r *requestRegistry) nextID() uint64 {
	r.seq++
	return r.seq
}

func (r *requestRegistry) register(id uint64, entry *pendingRequest) {
	r.entries[id] = entry
}

// remove takes the entry for the given id out of the registry.
func (r *requestRegistry) remove(id uint64) (*pendingRequest, bool) {
	entry, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
	}
	return entry, ok
}

// drain empties the registry and returns the removed entries.
func (r *requestRegistry) drain() map[uint64]*pendingRequest {
	entries := r.entries
	r.entries = make(map[uint64]*pendingRequest)
	return entries
}

// Ask sends a request of payload type T expecting a response of payload type
// R. A fresh request id is registered in the sender's supervisor registry
// together with a timer; the outcome is delivered to the sender's primary
// address as a normal *Response[R] message carrying either the responder's
// payload, the responder's error, or a timeout error when the timer fires
// first. At most one response per request id is ever delivered; late
// responses are dropped.
//
// Must be called on the sender's supervisor executor. The response payload
// type cannot be inferred; call as Ask[*Ping, *Pong](...).
func Ask[T, R any](sender *Actor, to *Address, payload T, timeout time.Duration) uint64 {
	sv := sender.owner
	replyTo := sender.Address()
	id := sv.requests.nextID()

	entry := &pendingRequest{
		expected: reflect.TypeFor[*Response[R]](),
		replyTo:  replyTo,
		synthesize: func(err error) *Message {
			return NewMessage(replyTo, &Response[R]{id: id, err: err})
		},
	}
	sv.requests.register(id, entry)
	entry.timer = sv.executor.ScheduleTimer(timeout, func() {
		sv.expireRequest(id)
	})

	Send(to, &Request[T]{id: id, replyTo: replyTo, payload: payload})
	return id
}

// Reply answers the given request with a response payload. The response is
// delivered to the request's reply address and correlated through the
// request id.
func Reply[T, R any](req *Request[T], payload R) {
	Send(req.replyTo, &Response[R]{id: req.id, payload: payload})
}

// ReplyErr answers the given request with an error. The response payload
// type cannot be inferred; call as ReplyErr[*Ping, *Pong](req, err).
func ReplyErr[T, R any](req *Request[T], err error) {
	Send(req.replyTo, &Response[R]{id: req.id, err: err})
}
