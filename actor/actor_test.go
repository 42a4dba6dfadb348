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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/rotor/errors"
)

func TestActorRequiresSupervisor(t *testing.T) {
	a, err := New()
	require.Nil(t, a)
	assert.ErrorIs(t, err, gerrors.ErrSupervisorRequired)
}

func TestActorInvalidTimeouts(t *testing.T) {
	sv, _ := newTestSupervisor(t)
	a, err := New(WithSupervisor(sv), WithInitTimeout(0))
	require.Nil(t, a)
	assert.ErrorIs(t, err, gerrors.ErrInvalidTimeout)
}

func TestSingleActorLifecycle(t *testing.T) {
	sv, exec := newTestSupervisor(t)

	sub := sv.Events().AddSubscriber()
	sv.Events().Subscribe(sub, TopicLifecycle)

	a, err := New(WithSupervisor(sv))
	require.NoError(t, err)
	require.Equal(t, StateNew, a.State())

	sv.Spawn(a)
	exec.RunUntilIdle()

	require.Equal(t, StateOperational, a.State())
	require.NotNil(t, a.Address())
	require.Len(t, sv.Children(), 1)

	a.Shutdown()
	exec.RunUntilIdle()

	require.Equal(t, StateShutDown, a.State())
	assert.Empty(t, sv.Children())

	// the event stream observed the full lifecycle in order
	var sequence []string
	for _, event := range drainEvents(sub.Iterator()) {
		switch event.(type) {
		case *ActorInitialized:
			sequence = append(sequence, "initialized")
		case *ActorStarted:
			sequence = append(sequence, "started")
		case *ActorStopped:
			sequence = append(sequence, "stopped")
		}
	}
	assert.Equal(t, []string{"initialized", "started", "stopped"}, sequence)
}

func TestStartHookRunsWhenOperational(t *testing.T) {
	sv, exec := newTestSupervisor(t)

	var observed State
	spawnTestActor(t, sv, exec, WithStartHook(func(a *Actor) {
		observed = a.State()
	}))
	assert.Equal(t, StateOperational, observed)
}

func TestPluginBlocksInit(t *testing.T) {
	sv, exec := newTestSupervisor(t)

	blocking := newBlockingInitPlugin()
	a, err := New(
		WithSupervisor(sv),
		WithInitTimeout(time.Minute),
		WithPlugins(blocking))
	require.NoError(t, err)

	sv.Spawn(a)
	exec.RunUntilIdle()

	// the actor is stuck in INITIALIZING until the external signal fires
	require.Equal(t, StateInitializing, a.State())

	exec.Post(blocking.unblock)
	exec.RunUntilIdle()

	require.Equal(t, StateOperational, a.State())
}

func TestPluginActivationFailure(t *testing.T) {
	sv, exec := newTestSupervisor(t)

	a, err := New(WithSupervisor(sv), WithPlugins(newFailingPlugin()))
	require.NoError(t, err)

	sv.Spawn(a)
	exec.RunUntilIdle()

	// the actor never reaches OPERATIONAL and the supervisor disowns it
	require.Equal(t, StateShutDown, a.State())
	assert.Empty(t, sv.Children())
}

func TestInitTimeoutEscalatesToShutdown(t *testing.T) {
	sv, exec := newTestSupervisor(t)

	blocking := newBlockingInitPlugin()
	a, err := New(
		WithSupervisor(sv),
		WithInitTimeout(100*time.Millisecond),
		WithPlugins(blocking))
	require.NoError(t, err)

	sv.Spawn(a)
	exec.RunUntilIdle()
	require.Equal(t, StateInitializing, a.State())

	// the init timer fires and the supervisor asks the actor to shut down
	exec.AdvanceTime(100 * time.Millisecond)

	require.Equal(t, StateShutDown, a.State())
	assert.Empty(t, sv.Children())
}

func TestStateQuery(t *testing.T) {
	sv, exec := newTestSupervisor(t)

	var responses []*Response[*StateResponse]
	asker := spawnTestActor(t, sv, exec, WithInitializer(func(a *Actor) {
		On(a, a.Address(), func(_ *Message, resp *Response[*StateResponse]) {
			responses = append(responses, resp)
		})
	}))

	subject := spawnTestActor(t, sv, exec)

	exec.Post(func() {
		Ask[*StateRequest, *StateResponse](asker, sv.Address(), &StateRequest{Subject: subject.Address()}, time.Second)
	})
	exec.RunUntilIdle()

	require.Len(t, responses, 1)
	require.NoError(t, responses[0].Err())
	assert.Equal(t, StateOperational, responses[0].Payload().State)

	// an unknown subject yields an error response
	unknown := sv.CreateAddress()
	exec.Post(func() {
		Ask[*StateRequest, *StateResponse](asker, sv.Address(), &StateRequest{Subject: unknown}, time.Second)
	})
	exec.RunUntilIdle()

	require.Len(t, responses, 2)
	assert.ErrorIs(t, responses[1].Err(), gerrors.ErrActorNotFound)
}

func TestHandlerTypeMismatchIsFatal(t *testing.T) {
	sv, exec := newTestSupervisor(t)

	var handler *Handler
	a := spawnTestActor(t, sv, exec, WithInitializer(func(a *Actor) {
		handler = On(a, a.Address(), func(*Message, *ping) {})
	}))
	require.NotNil(t, handler)

	assert.Panics(t, func() {
		handler.Invoke(NewMessage(a.Address(), &pong{}))
	})
}

func TestStateRegressionIsFatal(t *testing.T) {
	sv, exec := newTestSupervisor(t)
	a := spawnTestActor(t, sv, exec)

	assert.Panics(t, func() {
		a.setState(StateNew)
	})
}

func TestStateStringValues(t *testing.T) {
	assert.Equal(t, "NEW", StateNew.String())
	assert.Equal(t, "INITIALIZING", StateInitializing.String())
	assert.Equal(t, "INITIALIZED", StateInitialized.String())
	assert.Equal(t, "OPERATIONAL", StateOperational.String())
	assert.Equal(t, "SHUTTING_DOWN", StateShuttingDown.String())
	assert.Equal(t, "SHUT_DOWN", StateShutDown.String())
	assert.Equal(t, "UNKNOWN", State(42).String())
}
