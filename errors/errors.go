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

// Package errors defines the sentinel errors shared across the runtime
// packages.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestTimeout indicates that a request timed out while waiting for
	// a response. It is carried by the synthetic response delivered to the
	// reply address when the request timer fires.
	ErrRequestTimeout = errors.New("request timed out")

	// ErrRequestCanceled indicates that a pending request was aborted because
	// its owning supervisor shut down before a response arrived.
	ErrRequestCanceled = errors.New("request canceled")

	// ErrInitFailure is returned when an actor fails to initialize, typically
	// because one of its plugins failed to activate.
	ErrInitFailure = errors.New("actor initialization failed")

	// ErrUnknownService is returned by the registry when a discovery request
	// names a service that has not been registered.
	ErrUnknownService = errors.New("unknown service")

	// ErrDuplicateService is returned by the registry when registering a
	// service name that is already present.
	ErrDuplicateService = errors.New("duplicate service")

	// ErrActorNotLinkable is reserved for the linking protocol: it is the
	// reply to a link request sent to a target that does not permit linking.
	ErrActorNotLinkable = errors.New("actor is not linkable")

	// ErrDead indicates that a message was posted to a supervisor that has
	// already shut down.
	ErrDead = errors.New("supervisor is not alive")

	// ErrActorNotFound indicates that the asked actor is not hosted by the
	// supervisor.
	ErrActorNotFound = errors.New("actor not found")

	// ErrShutdownTimeout indicates a graceful shutdown exceeded its
	// configured wall-time budget.
	ErrShutdownTimeout = errors.New("shutdown timed out")

	// ErrInboxFull reports that a bounded supervisor inbox has reached its
	// capacity. No inbox in this module returns it: BoundedInbox blocks
	// while full.
	ErrInboxFull = errors.New("inbox is full")

	// ErrExecutorRequired is returned when a supervisor is constructed
	// without an executor.
	ErrExecutorRequired = errors.New("an executor is required")

	// ErrShutdownTimeoutRequired is returned when a supervisor is constructed
	// without a shutdown timeout.
	ErrShutdownTimeoutRequired = errors.New("a shutdown timeout is required")

	// ErrSupervisorRequired is returned when an actor is constructed without
	// a supervisor.
	ErrSupervisorRequired = errors.New("a supervisor is required")

	// ErrInvalidTimeout is returned when a timeout value is less than or
	// equal to zero.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrSchedulerNotStarted is returned when attempting to schedule a
	// message before the scheduler has started.
	ErrSchedulerNotStarted = errors.New("scheduler has not started")

	// ErrProtocolViolation marks assertion-class failures: handler type
	// mismatches, responses for registered ids with the wrong payload type,
	// forwarded handler calls landing on the wrong supervisor, or plugins
	// still deactivating at actor destruction. These are bugs, not expected
	// conditions, and the runtime panics with this error wrapped.
	ErrProtocolViolation = errors.New("protocol violation")
)

// NewErrUnknownService formats an ErrUnknownService with the service name.
func NewErrUnknownService(name string) error {
	return fmt.Errorf("service=(%s) %w", name, ErrUnknownService)
}

// NewErrDuplicateService formats an ErrDuplicateService with the service name.
func NewErrDuplicateService(name string) error {
	return fmt.Errorf("service=(%s) %w", name, ErrDuplicateService)
}

// NewErrInitFailure wraps a base error with ErrInitFailure to indicate a
// startup failure.
func NewErrInitFailure(err error) error {
	return errors.Join(ErrInitFailure, err)
}

// NewErrProtocolViolation formats an ErrProtocolViolation with additional
// context. The returned error is meant to be panicked with.
func NewErrProtocolViolation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrProtocolViolation, fmt.Sprintf(format, args...))
}
