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
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/rotor/log"
	"github.com/tochemey/rotor/testkit"
)

func TestSubscribeIsIdempotent(t *testing.T) {
	subs := newSubscriptions()
	h := &Handler{accepts: reflect.TypeFor[*testEvent]()}
	addr := &Address{id: "addr"}
	point := Point{Handler: h, Address: addr}

	require.True(t, subs.subscribe(point))
	require.False(t, subs.subscribe(point))
	assert.Len(t, subs.handlers(addr, h.accepts), 1)
}

func TestSubscribeUnsubscribeRoundTrip(t *testing.T) {
	subs := newSubscriptions()
	h := &Handler{accepts: reflect.TypeFor[*testEvent]()}
	addr := &Address{id: "addr"}
	point := Point{Handler: h, Address: addr}

	subs.subscribe(point)
	subs.unsubscribe(point)

	// the table is left exactly as it was: the empty row is removed
	assert.True(t, subs.isEmpty())

	// unsubscribing twice leaves the table unchanged
	assert.False(t, subs.unsubscribe(point))
	assert.True(t, subs.isEmpty())
}

func TestDispatchInSubscriptionOrder(t *testing.T) {
	sv, exec := newTestSupervisor(t)

	var order []string
	a := spawnTestActor(t, sv, exec, WithInitializer(func(a *Actor) {
		On(a, a.Address(), func(*Message, *testEvent) {
			order = append(order, "first")
		})
		On(a, a.Address(), func(*Message, *testEvent) {
			order = append(order, "second")
		})
	}))

	Send(a.Address(), &testEvent{})
	exec.RunUntilIdle()
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	sv, exec := newTestSupervisor(t)

	var count int
	var handler *Handler
	a := spawnTestActor(t, sv, exec, WithInitializer(func(a *Actor) {
		handler = On(a, a.Address(), func(*Message, *testEvent) {
			count++
		})
	}))

	Send(a.Address(), &testEvent{})
	exec.RunUntilIdle()
	require.Equal(t, 1, count)

	exec.Post(func() {
		a.Unsubscribe(handler, a.Address())
	})
	exec.RunUntilIdle()

	Send(a.Address(), &testEvent{})
	exec.RunUntilIdle()
	assert.Equal(t, 1, count)
}

func TestUnsubscriptionCallbackFiresAfterRemoval(t *testing.T) {
	sv, exec := newTestSupervisor(t)

	var handler *Handler
	a := spawnTestActor(t, sv, exec, WithInitializer(func(a *Actor) {
		handler = On(a, a.Address(), func(*Message, *testEvent) {})
	}))

	var fired bool
	exec.Post(func() {
		a.UnsubscribeWithCallback(handler, a.Address(), func() {
			// by the time the callback runs the point is gone from the table
			fired = true
			assert.Nil(t, sv.subs.handlers(a.Address(), reflect.TypeFor[*testEvent]()))
		})
	})
	exec.RunUntilIdle()
	assert.True(t, fired)
}

func TestForeignSubscription(t *testing.T) {
	exec1 := testkit.New()
	s1, err := NewSupervisor(
		WithExecutor(exec1),
		WithShutdownTimeout(time.Second),
		WithLogger(log.DiscardLogger))
	require.NoError(t, err)
	s1.Start()
	exec1.RunUntilIdle()

	exec2 := testkit.New()
	s2, err := NewSupervisor(
		WithExecutor(exec2),
		WithShutdownTimeout(time.Second),
		WithLogger(log.DiscardLogger))
	require.NoError(t, err)
	s2.Start()
	exec2.RunUntilIdle()

	a1, err := New(WithSupervisor(s1))
	require.NoError(t, err)
	s1.Spawn(a1)
	exec1.RunUntilIdle()
	require.Equal(t, StateOperational, a1.State())

	// a1 subscribes one of its handlers to an address owned by s2
	x := s2.CreateAddress()
	var received []*testEvent
	var handler *Handler
	exec1.Post(func() {
		handler = On(a1, x, func(_ *Message, event *testEvent) {
			received = append(received, event)
		})
	})
	testkit.Drain(exec1, exec2)

	// s2 recorded the point in x's table
	require.Len(t, s2.subs.handlers(x, reflect.TypeFor[*testEvent]()), 1)

	// a send to x lands on s2, which forwards the delivery to s1
	Send(x, &testEvent{value: 42})
	testkit.Drain(exec2, exec1)

	require.Len(t, received, 1)
	assert.Equal(t, 42, received[0].value)

	// foreign unsubscription removes the point on s2 and confirms back
	exec1.Post(func() {
		a1.Unsubscribe(handler, x)
	})
	testkit.Drain(exec1, exec2)

	assert.Nil(t, s2.subs.handlers(x, reflect.TypeFor[*testEvent]()))

	Send(x, &testEvent{value: 43})
	testkit.Drain(exec2, exec1)
	assert.Len(t, received, 1)
}
