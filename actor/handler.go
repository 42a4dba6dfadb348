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

	"github.com/tochemey/rotor/errors"
)

// Handler binds an actor, the payload type it accepts and an invocation
// target. A handler is invoked exactly once per delivered message whose
// payload type matches; invoking it on any other payload type is a
// programming error.
type Handler struct {
	owner   *Actor
	accepts reflect.Type
	target  func(*Message)
}

// On subscribes a typed callback of the given actor to the given address and
// returns the handler bound to it. The handler is invoked on the actor's
// supervisor for every message delivered to the address whose payload type is
// T. Must be called on the owning supervisor's executor, typically from an
// initializer or a plugin activation.
func On[T any](owner *Actor, addr *Address, fn func(*Message, T)) *Handler {
	h := &Handler{
		owner:   owner,
		accepts: reflect.TypeFor[T](),
		target: func(m *Message) {
			fn(m, m.payload.(T))
		},
	}
	owner.owner.subscribePoint(Point{Handler: h, Address: addr})
	return h
}

// Owner returns the actor the handler is bound to.
func (h *Handler) Owner() *Actor {
	return h.owner
}

// Accepts returns the payload type the handler accepts.
func (h *Handler) Accepts() reflect.Type {
	return h.accepts
}

// Invoke runs the handler on the given message. The message payload type must
// match the accepted type.
func (h *Handler) Invoke(m *Message) {
	if m.PayloadType() != h.accepts {
		panic(errors.NewErrProtocolViolation(
			"handler accepting %s invoked with payload %s", h.accepts, m.PayloadType()))
	}
	h.target(m)
}
