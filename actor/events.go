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

import "time"

const (
	// TopicLifecycle is the event stream topic actor lifecycle events are
	// published to.
	TopicLifecycle = "actors-lifecycle"
	// TopicDeadletter is the event stream topic undeliverable messages are
	// published to.
	TopicDeadletter = "deadletters"
)

// Deadletter is published when a message could not be delivered: no handler
// subscribed, supervisor shut down, or inbox failure.
type Deadletter struct {
	to      *Address
	payload any
	reason  string
	at      time.Time
}

// NewDeadletter creates a Deadletter event stamped with the current UTC
// time.
func NewDeadletter(msg *Message, reason string) *Deadletter {
	return &Deadletter{
		to:      msg.To(),
		payload: msg.Payload(),
		reason:  reason,
		at:      time.Now().UTC(),
	}
}

// To returns the destination address of the undelivered message.
func (d *Deadletter) To() *Address { return d.to }

// Payload returns the payload of the undelivered message.
func (d *Deadletter) Payload() any { return d.payload }

// Reason returns why the message was dead-lettered.
func (d *Deadletter) Reason() string { return d.reason }

// At returns the time the message was dead-lettered.
func (d *Deadletter) At() time.Time { return d.at }

// ActorInitialized is published when an actor confirms its initialization.
type ActorInitialized struct {
	address *Address
	at      time.Time
}

func newActorInitialized(a *Actor) *ActorInitialized {
	return &ActorInitialized{address: a.Address(), at: time.Now().UTC()}
}

// Address returns the actor's primary address.
func (e *ActorInitialized) Address() *Address { return e.address }

// At returns the time the actor initialized.
func (e *ActorInitialized) At() time.Time { return e.at }

// ActorStarted is published when an actor becomes operational.
type ActorStarted struct {
	address *Address
	at      time.Time
}

func newActorStarted(a *Actor) *ActorStarted {
	return &ActorStarted{address: a.Address(), at: time.Now().UTC()}
}

// Address returns the actor's primary address.
func (e *ActorStarted) Address() *Address { return e.address }

// At returns the time the actor started.
func (e *ActorStarted) At() time.Time { return e.at }

// ActorStopped is published when an actor reaches its terminal state.
type ActorStopped struct {
	address *Address
	at      time.Time
}

func newActorStopped(a *Actor) *ActorStopped {
	return &ActorStopped{address: a.Address(), at: time.Now().UTC()}
}

// Address returns the actor's primary address.
func (e *ActorStopped) Address() *Address { return e.address }

// At returns the time the actor stopped.
func (e *ActorStopped) At() time.Time { return e.at }
