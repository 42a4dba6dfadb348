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

package executor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/tochemey/rotor/internal/queue"
)

// Goroutine is an Executor backed by a single long-lived goroutine draining a
// lock-free MPSC queue. Timers are armed with the wall clock and their
// callables re-enter through Post, so they run on the executor goroutine like
// any other task.
type Goroutine struct {
	tasks   *queue.MPSC[func()]
	wake    chan struct{}
	stop    chan struct{}
	done    chan struct{}
	stopped *atomic.Bool

	pending int64
	idleMu  sync.Mutex
	idle    *sync.Cond

	timersMu sync.Mutex
	timers   map[TimerHandle]*time.Timer
	seq      *atomic.Uint64
}

// enforce compilation error
var _ Executor = (*Goroutine)(nil)

// NewGoroutine creates a Goroutine executor and starts its run loop.
func NewGoroutine() *Goroutine {
	g := &Goroutine{
		tasks:   queue.NewMPSC[func()](),
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		stopped: atomic.NewBool(false),
		timers:  make(map[TimerHandle]*time.Timer),
		seq:     atomic.NewUint64(0),
	}
	g.idle = sync.NewCond(&g.idleMu)
	go g.run()
	return g
}

// Post schedules the given callable. Callables posted after Shutdown are
// dropped.
func (g *Goroutine) Post(fn func()) {
	if g.stopped.Load() {
		return
	}

	g.idleMu.Lock()
	g.pending++
	g.idleMu.Unlock()

	g.tasks.Push(fn)
	select {
	case g.wake <- struct{}{}:
	default:
	}
}

// ScheduleTimer arms a one-shot timer that posts the callable when the
// duration elapses.
func (g *Goroutine) ScheduleTimer(d time.Duration, fn func()) TimerHandle {
	handle := TimerHandle(g.seq.Inc())
	g.timersMu.Lock()
	g.timers[handle] = time.AfterFunc(d, func() {
		if g.removeTimer(handle) {
			g.Post(fn)
		}
	})
	g.timersMu.Unlock()
	return handle
}

// CancelTimer disarms the given timer. It returns true when the timer was
// still pending.
func (g *Goroutine) CancelTimer(handle TimerHandle) bool {
	g.timersMu.Lock()
	timer, ok := g.timers[handle]
	if ok {
		delete(g.timers, handle)
		timer.Stop()
	}
	g.timersMu.Unlock()
	return ok
}

// RunUntilIdle blocks until every posted callable has run. Outstanding timers
// do not count as work.
func (g *Goroutine) RunUntilIdle() {
	g.idleMu.Lock()
	for g.pending != 0 {
		g.idle.Wait()
	}
	g.idleMu.Unlock()
}

// Shutdown drains pending callables, cancels outstanding timers and stops the
// run loop. It returns the context error when the context expires first.
func (g *Goroutine) Shutdown(ctx context.Context) error {
	if !g.stopped.CompareAndSwap(false, true) {
		<-g.done
		return nil
	}

	g.timersMu.Lock()
	for handle, timer := range g.timers {
		timer.Stop()
		delete(g.timers, handle)
	}
	g.timersMu.Unlock()

	close(g.stop)
	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Goroutine) run() {
	defer close(g.done)
	for {
		g.drain()
		select {
		case <-g.wake:
		case <-g.stop:
			g.drain()
			return
		}
	}
}

func (g *Goroutine) drain() {
	for {
		fn, ok := g.tasks.Pop()
		if !ok {
			return
		}
		fn()

		g.idleMu.Lock()
		g.pending--
		if g.pending == 0 {
			g.idle.Broadcast()
		}
		g.idleMu.Unlock()
	}
}

func (g *Goroutine) removeTimer(handle TimerHandle) bool {
	g.timersMu.Lock()
	_, ok := g.timers[handle]
	delete(g.timers, handle)
	g.timersMu.Unlock()
	return ok
}
