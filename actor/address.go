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
	"github.com/google/uuid"
)

// Address is an opaque identity owned by a Supervisor and used as the
// destination of messages. Address equality is pointer identity; the uuid is
// carried for logging and diagnostics only. An address identity is stable for
// its whole lifetime.
type Address struct {
	id    string
	owner *Supervisor
}

// newAddress creates an address bound to the given supervisor. Addresses are
// only created through Supervisor.CreateAddress.
func newAddress(owner *Supervisor) *Address {
	return &Address{
		id:    uuid.NewString(),
		owner: owner,
	}
}

// ID returns the unique identifier of the address.
func (a *Address) ID() string {
	return a.id
}

// Supervisor returns the supervisor owning the address.
func (a *Address) Supervisor() *Supervisor {
	return a.owner
}

// String returns the canonical string representation of the address formatted
// as `rotor://<id>`.
func (a *Address) String() string {
	return "rotor://" + a.id
}
