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

// State represents the lifecycle state of an actor. States are totally
// ordered; an actor's state only moves forward, though intermediate states
// may be skipped.
type State int32

const (
	// StateNew is the state of a constructed actor that has not been adopted
	// by its supervisor yet.
	StateNew State = iota
	// StateInitializing is entered on receipt of an initialize request; the
	// actor is draining its init plugin chain.
	StateInitializing
	// StateInitialized is entered once the init plugin chain is empty and
	// the initialize request has been confirmed.
	StateInitialized
	// StateOperational is entered on receipt of a start trigger.
	StateOperational
	// StateShuttingDown is entered on receipt of a shutdown request or on an
	// unrecoverable initialization failure.
	StateShuttingDown
	// StateShutDown is the terminal state.
	StateShutDown
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateInitializing:
		return "INITIALIZING"
	case StateInitialized:
		return "INITIALIZED"
	case StateOperational:
		return "OPERATIONAL"
	case StateShuttingDown:
		return "SHUTTING_DOWN"
	case StateShutDown:
		return "SHUT_DOWN"
	default:
		return "UNKNOWN"
	}
}
