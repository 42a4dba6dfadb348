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

// Package actor implements a message-passing actor runtime: actors
// communicate only through asynchronous messages delivered to addresses
// owned by supervisors.
//
// A Supervisor owns an inbound queue pumped serially on its executor, the
// subscription tables of the addresses it created, a request registry with
// timers, and a set of child actors. Actors are constructed externally,
// adopted through Spawn and driven through a lifecycle state machine (NEW,
// INITIALIZING, INITIALIZED, OPERATIONAL, SHUTTING_DOWN, SHUT_DOWN) by an
// ordered plugin chain that can pause and resume each phase.
//
// Handlers bind a typed callback to an actor; subscribing one to an address
// owned by another supervisor goes through a two-party protocol, and
// messages dispatched to such handlers are forwarded to their supervisor
// wrapped in a routing envelope. Requests correlate with responses through
// per-supervisor ids and timers; failures arrive as synthetic error
// responses, never as out-of-band panics.
package actor
