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

// initializeActor is the request payload a supervisor sends to an actor to
// ask for its initialization. The confirmation is the response.
type initializeActor struct {
	addr *Address
}

// initializeConfirmation is the response payload confirming a successful
// initialization.
type initializeConfirmation struct{}

// startActor is sent from a supervisor to an initialized actor as the start
// trigger.
type startActor struct {
	addr *Address
}

// createActor is sent to a supervisor when an externally constructed actor is
// handed over for adoption.
type createActor struct {
	actor *Actor
	// timeout caps the actor initialization; when exceeded the actor is
	// asked to shut down.
	timeout time.Duration
}

// shutdownTrigger asks an actor's supervisor to initiate the shutdown
// procedure for the actor identified by the address.
type shutdownTrigger struct {
	addr *Address
}

// shutdownActor is the request payload a supervisor sends to an actor to ask
// for its shutdown.
type shutdownActor struct {
	addr *Address
}

// shutdownConfirmation is the response payload confirming a completed
// shutdown.
type shutdownConfirmation struct{}

// handlerCall wraps an original message together with a handler living on the
// receiving supervisor. It is how a supervisor forwards the delivery of a
// message to a foreign handler.
type handlerCall struct {
	original *Message
	handler  *Handler
}

// externalSubscription is forwarded to the supervisor owning the target
// address to record a subscription whose handler lives on another supervisor.
type externalSubscription struct {
	point Point
}

// subscriptionConfirmation is sent to the subscribing actor once its point
// has been recorded in the target address's table.
type subscriptionConfirmation struct {
	point Point
}

// externalUnsubscription is forwarded to the supervisor owning the target
// address to remove a foreign subscription.
type externalUnsubscription struct {
	point Point
}

// commitUnsubscription is the reply of the address-owning supervisor to an
// external unsubscription, sent to the handler's supervisor so it can
// finalize the local bookkeeping.
type commitUnsubscription struct {
	point Point
}

// unsubscriptionConfirmation tells the subscribing actor that its handler is
// no longer subscribed to the point's address. The optional callback is
// invoked by the owning supervisor in the deterministic post-dispatch step,
// after the point has been removed and every handler has run; it is how the
// subscriber learns that its unsubscribe has fully propagated.
type unsubscriptionConfirmation struct {
	point    Point
	callback func()
}

// StateRequest is the request payload asking a supervisor for the lifecycle
// state of one of its actors, identified by its primary address.
type StateRequest struct {
	Subject *Address
}

// StateResponse carries the lifecycle state of the asked actor.
type StateResponse struct {
	State State
}

// RegisterService is the request payload binding a unique service name to a
// service address in a registry.
type RegisterService struct {
	Name    string
	Service *Address
}

// RegistrationAck is the response payload of a successful registration.
type RegistrationAck struct{}

// DiscoverService is the request payload looking a service up by name in a
// registry.
type DiscoverService struct {
	Name string
}

// ServiceFound is the response payload of a successful discovery.
type ServiceFound struct {
	Service *Address
}

// DeregisterService removes a single service name from a registry.
type DeregisterService struct {
	Name string
}

// DeregistrationNotify removes every name bound to the given service address
// from a registry.
type DeregistrationNotify struct {
	Service *Address
}

// LinkRequest is reserved for the linking protocol; its semantics are
// deferred.
type LinkRequest struct {
	Client *Address
}

// LinkResponse is reserved for the linking protocol; its semantics are
// deferred.
type LinkResponse struct{}

// UnlinkNotify is reserved for the linking protocol; its semantics are
// deferred.
type UnlinkNotify struct {
	Client *Address
}

// UnlinkRequest is reserved for the linking protocol; its semantics are
// deferred.
type UnlinkRequest struct {
	Server *Address
}
