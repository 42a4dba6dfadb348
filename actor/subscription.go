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
)

// Point is the unit of subscription and unsubscription: a handler bound to an
// address.
type Point struct {
	Handler *Handler
	Address *Address
}

// subscriptions is the per-supervisor subscription table: for each owned
// address, a map from payload type to the list of handlers, in insertion
// order. It is only touched from the owning supervisor's pump.
type subscriptions struct {
	rows map[*Address]map[reflect.Type][]*Handler
}

func newSubscriptions() *subscriptions {
	return &subscriptions{
		rows: make(map[*Address]map[reflect.Type][]*Handler),
	}
}

// subscribe adds the point to the table. Duplicate points are idempotent; the
// return value reports whether the point was actually added.
func (s *subscriptions) subscribe(p Point) bool {
	row := s.rows[p.Address]
	if row == nil {
		row = make(map[reflect.Type][]*Handler)
		s.rows[p.Address] = row
	}
	accepts := p.Handler.accepts
	for _, h := range row[accepts] {
		if h == p.Handler {
			return false
		}
	}
	row[accepts] = append(row[accepts], p.Handler)
	return true
}

// unsubscribe removes the point from the table. When the handler list becomes
// empty the map entry is removed, and when an address has no handler lists
// left its row is removed. Unsubscribing an absent point is a no-op.
func (s *subscriptions) unsubscribe(p Point) bool {
	row := s.rows[p.Address]
	if row == nil {
		return false
	}
	accepts := p.Handler.accepts
	handlers := row[accepts]
	for i, h := range handlers {
		if h == p.Handler {
			row[accepts] = append(handlers[:i], handlers[i+1:]...)
			if len(row[accepts]) == 0 {
				delete(row, accepts)
			}
			if len(row) == 0 {
				delete(s.rows, p.Address)
			}
			return true
		}
	}
	return false
}

// handlers returns a snapshot of the handler list for the given address and
// payload type. Mutations during dispatch take effect on the next dispatched
// message.
func (s *subscriptions) handlers(addr *Address, payloadType reflect.Type) []*Handler {
	row := s.rows[addr]
	if row == nil {
		return nil
	}
	handlers := row[payloadType]
	if len(handlers) == 0 {
		return nil
	}
	snapshot := make([]*Handler, len(handlers))
	copy(snapshot, handlers)
	return snapshot
}

// isEmpty reports whether the table holds no subscription at all.
func (s *subscriptions) isEmpty() bool {
	return len(s.rows) == 0
}
