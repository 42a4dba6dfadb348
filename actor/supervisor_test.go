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
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/rotor/errors"
	"github.com/tochemey/rotor/executor"
	"github.com/tochemey/rotor/log"
	"github.com/tochemey/rotor/testkit"
)

func TestSupervisorRequiresExecutor(t *testing.T) {
	sv, err := NewSupervisor(WithShutdownTimeout(time.Second))
	require.Nil(t, sv)
	assert.ErrorIs(t, err, gerrors.ErrExecutorRequired)
}

func TestSupervisorRequiresShutdownTimeout(t *testing.T) {
	sv, err := NewSupervisor(WithExecutor(testkit.New()))
	require.Nil(t, sv)
	assert.ErrorIs(t, err, gerrors.ErrShutdownTimeoutRequired)
}

func TestSupervisorSelfLifecycle(t *testing.T) {
	sv, exec := newTestSupervisor(t)

	sv.Actor.Shutdown()
	exec.RunUntilIdle()

	require.Equal(t, StateShutDown, sv.State())
	assert.True(t, sv.inbox.IsEmpty())
	assert.Zero(t, exec.PendingTimers())

	select {
	case <-sv.Done():
	default:
		t.Fatal("expected the supervisor done channel to be closed")
	}
}

func TestCascadedShutdown(t *testing.T) {
	sv, exec := newTestSupervisor(t)

	sub := sv.Events().AddSubscriber()
	sv.Events().Subscribe(sub, TopicLifecycle)

	a := spawnTestActor(t, sv, exec)
	b := spawnTestActor(t, sv, exec)

	sv.Actor.Shutdown()
	exec.RunUntilIdle()

	require.Equal(t, StateShutDown, a.State())
	require.Equal(t, StateShutDown, b.State())
	require.Equal(t, StateShutDown, sv.State())
	assert.Empty(t, sv.Children())

	// both children stop before the supervisor does
	var stops []*Address
	for _, event := range drainEvents(sub.Iterator()) {
		if stopped, ok := event.(*ActorStopped); ok {
			stops = append(stops, stopped.Address())
		}
	}
	require.Len(t, stops, 3)
	assert.Equal(t, sv.Address(), stops[2])

	// after SHUT_DOWN the inbound queue is empty and every timer is gone
	assert.True(t, sv.inbox.IsEmpty())
	assert.Zero(t, exec.PendingTimers())
}

func TestChildSupervisor(t *testing.T) {
	parentExec := testkit.New()
	parent, err := NewSupervisor(
		WithExecutor(parentExec),
		WithShutdownTimeout(time.Second),
		WithLogger(log.DiscardLogger))
	require.NoError(t, err)
	parent.Start()
	parentExec.RunUntilIdle()
	require.Equal(t, StateOperational, parent.State())

	childExec := testkit.New()
	child, err := NewSupervisor(
		WithExecutor(childExec),
		WithShutdownTimeout(time.Second),
		WithParent(parent),
		WithLogger(log.DiscardLogger))
	require.NoError(t, err)

	child.Start()
	testkit.Drain(parentExec, childExec)

	require.Equal(t, StateOperational, child.State())
	require.Len(t, parent.Children(), 1)
	assert.Same(t, parent, child.Parent())
	// the child shares its parent's event stream
	assert.Same(t, parent.Events(), child.Events())

	// shutting the parent down cascades across executors
	parent.Actor.Shutdown()
	testkit.Drain(parentExec, childExec)

	require.Equal(t, StateShutDown, child.State())
	require.Equal(t, StateShutDown, parent.State())
	assert.Empty(t, parent.Children())
}

func TestDeadletterOnUnhandledMessage(t *testing.T) {
	sv, exec := newTestSupervisor(t)

	sub := sv.Events().AddSubscriber()
	sv.Events().Subscribe(sub, TopicDeadletter)

	orphan := sv.CreateAddress()
	Send(orphan, &testEvent{value: 7})
	exec.RunUntilIdle()

	events := drainEvents(sub.Iterator())
	require.Len(t, events, 1)
	deadletter := events[0].(*Deadletter)
	assert.Equal(t, orphan, deadletter.To())
	assert.Equal(t, &testEvent{value: 7}, deadletter.Payload())
	assert.NotEmpty(t, deadletter.Reason())
}

func TestPostAfterShutdownIsDeadlettered(t *testing.T) {
	sv, exec := newTestSupervisor(t)
	addr := sv.Address()

	sv.Actor.Shutdown()
	exec.RunUntilIdle()
	require.Equal(t, StateShutDown, sv.State())

	sub := sv.Events().AddSubscriber()
	sv.Events().Subscribe(sub, TopicDeadletter)

	Send(addr, &ping{})
	exec.RunUntilIdle()

	events := drainEvents(sub.Iterator())
	require.Len(t, events, 1)
	assert.Equal(t, gerrors.ErrDead.Error(), events[0].(*Deadletter).Reason())
}

func TestSendOrderingPerAddress(t *testing.T) {
	sv, exec := newTestSupervisor(t)

	var received []int
	a := spawnTestActor(t, sv, exec, WithInitializer(func(a *Actor) {
		On(a, a.Address(), func(_ *Message, event *testEvent) {
			received = append(received, event.value)
		})
	}))

	for i := range 10 {
		Send(a.Address(), &testEvent{value: i})
	}
	exec.RunUntilIdle()

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, received)
}

func TestSupervisorOnGoroutineExecutor(t *testing.T) {
	exec := executor.NewGoroutine()
	defer func() {
		require.NoError(t, exec.Shutdown(context.Background()))
	}()

	sv, err := NewSupervisor(
		WithExecutor(exec),
		WithShutdownTimeout(2*time.Second),
		WithLogger(log.DiscardLogger))
	require.NoError(t, err)

	sv.Start()
	require.Eventually(t, func() bool {
		return sv.State() == StateOperational
	}, time.Second, 5*time.Millisecond)

	a, err := New(WithSupervisor(sv))
	require.NoError(t, err)
	sv.Spawn(a)
	require.Eventually(t, func() bool {
		return a.State() == StateOperational
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, sv.Stop(context.Background()))
	assert.Equal(t, StateShutDown, sv.State())
	assert.Equal(t, StateShutDown, a.State())
}

func TestBoundedInbox(t *testing.T) {
	exec := testkit.New()
	sv, err := NewSupervisor(
		WithExecutor(exec),
		WithShutdownTimeout(time.Second),
		WithBoundedInbox(64),
		WithLogger(log.DiscardLogger))
	require.NoError(t, err)

	sv.Start()
	exec.RunUntilIdle()
	require.Equal(t, StateOperational, sv.State())

	var received int
	spawnTestActorWithHandler := spawnTestActor(t, sv, exec, WithInitializer(func(a *Actor) {
		On(a, a.Address(), func(*Message, *ping) {
			received++
		})
	}))

	Send(spawnTestActorWithHandler.Address(), &ping{})
	exec.RunUntilIdle()
	assert.Equal(t, 1, received)
}
