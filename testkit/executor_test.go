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

package testkit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostDoesNotRunUntilDrained(t *testing.T) {
	e := New()

	var ran bool
	e.Post(func() { ran = true })
	require.False(t, ran)

	e.RunUntilIdle()
	assert.True(t, ran)
}

func TestRunUntilIdleIncludesCascades(t *testing.T) {
	e := New()

	var order []int
	e.Post(func() {
		order = append(order, 1)
		e.Post(func() { order = append(order, 2) })
	})
	e.RunUntilIdle()
	assert.Equal(t, []int{1, 2}, order)
}

func TestAdvanceTimeFiresDueTimersInOrder(t *testing.T) {
	e := New()

	var order []string
	e.ScheduleTimer(30*time.Millisecond, func() { order = append(order, "late") })
	e.ScheduleTimer(10*time.Millisecond, func() { order = append(order, "early") })

	e.AdvanceTime(20 * time.Millisecond)
	require.Equal(t, []string{"early"}, order)
	require.Equal(t, 1, e.PendingTimers())

	e.AdvanceTime(20 * time.Millisecond)
	assert.Equal(t, []string{"early", "late"}, order)
	assert.Zero(t, e.PendingTimers())
	assert.Equal(t, 40*time.Millisecond, e.Now())
}

func TestCancelTimer(t *testing.T) {
	e := New()

	var fired bool
	handle := e.ScheduleTimer(time.Millisecond, func() { fired = true })
	require.True(t, e.CancelTimer(handle))
	require.False(t, e.CancelTimer(handle))

	e.AdvanceTime(time.Second)
	assert.False(t, fired)
}

func TestDrainSettlesCrossPosts(t *testing.T) {
	e1 := New()
	e2 := New()

	var pongs int
	var serve func(count int)
	serve = func(count int) {
		if count == 0 {
			return
		}
		e2.Post(func() {
			pongs++
			e1.Post(func() { serve(count - 1) })
		})
	}
	e1.Post(func() { serve(3) })

	Drain(e1, e2)
	assert.Equal(t, 3, pongs)
}

func TestShutdownClearsWork(t *testing.T) {
	e := New()
	e.Post(func() {})
	e.ScheduleTimer(time.Second, func() {})

	require.NoError(t, e.Shutdown(context.Background()))
	assert.True(t, e.Idle())
	assert.Zero(t, e.PendingTimers())
}
