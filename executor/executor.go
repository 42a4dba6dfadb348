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

// Package executor defines the single-threaded execution contract supervisors
// are bound to, together with a goroutine-backed implementation. A supervisor
// pumps its inbound queue as tasks posted on its executor, so every executor
// implementation must run its tasks serially, in post order.
package executor

import (
	"context"
	"time"
)

// TimerHandle identifies a timer armed on an Executor. Handles are unique
// per executor instance.
type TimerHandle uint64

// Executor schedules callables on a single-threaded context.
//
// Contract:
//   - Post schedules a callable; callables run serially in post order.
//   - ScheduleTimer arms a one-shot timer whose callable is posted on the
//     executor when the duration elapses.
//   - CancelTimer disarms a timer; it returns false when the timer already
//     fired or is unknown.
//   - RunUntilIdle blocks the caller until every posted callable has run.
//     Outstanding timers do not count as work.
//   - Shutdown drains pending callables, cancels outstanding timers and
//     releases the executor's resources.
type Executor interface {
	// Post schedules the given callable on this executor's single-thread
	// context. Safe for concurrent callers.
	Post(fn func())
	// ScheduleTimer arms a one-shot timer. When the duration elapses the
	// callable is posted on the executor.
	ScheduleTimer(d time.Duration, fn func()) TimerHandle
	// CancelTimer disarms the given timer. It returns true when the timer
	// was still pending.
	CancelTimer(handle TimerHandle) bool
	// RunUntilIdle blocks until all posted callables have run.
	RunUntilIdle()
	// Shutdown drains the executor and releases its resources. No callable
	// posted after Shutdown returns will run.
	Shutdown(ctx context.Context) error
}
