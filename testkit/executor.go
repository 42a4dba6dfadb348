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

// Package testkit provides a deterministic executor with a virtual clock.
// Tests drive supervisors by draining tasks explicitly and advancing time by
// hand, which turns timer-dependent scenarios into exact ones.
package testkit

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tochemey/rotor/executor"
)

// virtualTimer is a timer armed on the virtual clock.
type virtualTimer struct {
	handle executor.TimerHandle
	due    time.Duration
	fn     func()
}

// Executor is a deterministic, manually driven executor. Post enqueues
// without running; RunUntilIdle drains the queue on the calling goroutine;
// AdvanceTime moves the virtual clock and fires due timers in deadline order.
//
// The zero value is not usable; create instances with New.
type Executor struct {
	mu     sync.Mutex
	tasks  []func()
	timers []*virtualTimer
	seq    executor.TimerHandle
	now    time.Duration
}

// enforce compilation error
var _ executor.Executor = (*Executor)(nil)

// New creates a deterministic Executor with the virtual clock at zero.
func New() *Executor {
	return &Executor{}
}

// Post enqueues the callable. It does not run until RunUntilIdle or
// AdvanceTime is called.
func (e *Executor) Post(fn func()) {
	e.mu.Lock()
	e.tasks = append(e.tasks, fn)
	e.mu.Unlock()
}

// ScheduleTimer arms a timer on the virtual clock.
func (e *Executor) ScheduleTimer(d time.Duration, fn func()) executor.TimerHandle {
	e.mu.Lock()
	e.seq++
	handle := e.seq
	e.timers = append(e.timers, &virtualTimer{handle: handle, due: e.now + d, fn: fn})
	e.mu.Unlock()
	return handle
}

// CancelTimer disarms the given timer. It returns true when the timer was
// still pending.
func (e *Executor) CancelTimer(handle executor.TimerHandle) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, timer := range e.timers {
		if timer.handle == handle {
			e.timers = append(e.timers[:i], e.timers[i+1:]...)
			return true
		}
	}
	return false
}

// RunUntilIdle runs queued tasks on the calling goroutine until the queue is
// empty, including tasks enqueued while draining.
func (e *Executor) RunUntilIdle() {
	for {
		e.mu.Lock()
		if len(e.tasks) == 0 {
			e.mu.Unlock()
			return
		}
		fn := e.tasks[0]
		e.tasks = e.tasks[1:]
		e.mu.Unlock()
		fn()
	}
}

// AdvanceTime moves the virtual clock forward by d. Timers due within the
// window fire in deadline order (insertion order on ties), each followed by a
// full drain, so cascading work settles before the next timer fires.
func (e *Executor) AdvanceTime(d time.Duration) {
	e.mu.Lock()
	target := e.now + d
	e.mu.Unlock()

	for {
		e.RunUntilIdle()

		e.mu.Lock()
		timer := e.nextDueTimer(target)
		if timer == nil {
			e.now = target
			e.mu.Unlock()
			e.RunUntilIdle()
			return
		}
		e.now = timer.due
		e.mu.Unlock()
		timer.fn()
	}
}

// Now returns the current virtual time.
func (e *Executor) Now() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now
}

// PendingTimers returns the number of timers currently armed.
func (e *Executor) PendingTimers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.timers)
}

// Idle reports whether the task queue is empty.
func (e *Executor) Idle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tasks) == 0
}

// Shutdown clears pending tasks and timers.
func (e *Executor) Shutdown(_ context.Context) error {
	e.mu.Lock()
	e.tasks = nil
	e.timers = nil
	e.mu.Unlock()
	return nil
}

// nextDueTimer removes and returns the earliest timer due at or before
// target, or nil. Must be called with the mutex held.
func (e *Executor) nextDueTimer(target time.Duration) *virtualTimer {
	if len(e.timers) == 0 {
		return nil
	}
	sort.SliceStable(e.timers, func(i, j int) bool {
		if e.timers[i].due != e.timers[j].due {
			return e.timers[i].due < e.timers[j].due
		}
		return e.timers[i].handle < e.timers[j].handle
	})
	if e.timers[0].due > target {
		return nil
	}
	timer := e.timers[0]
	e.timers = e.timers[1:]
	return timer
}

// Drain drives a set of executors until all of them are simultaneously idle.
// Use it when supervisors on different executors exchange messages.
func Drain(execs ...*Executor) {
	for {
		idle := true
		for _, e := range execs {
			if !e.Idle() {
				e.RunUntilIdle()
				idle = false
			}
		}
		if idle {
			return
		}
	}
}
