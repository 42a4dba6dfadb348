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
	"github.com/tochemey/rotor/testkit"
)

func TestRequestResponseRoundTrip(t *testing.T) {
	sv, exec := newTestSupervisor(t)

	responder := spawnTestActor(t, sv, exec, WithInitializer(func(a *Actor) {
		On(a, a.Address(), func(_ *Message, req *Request[*ping]) {
			Reply(req, &pong{})
		})
	}))

	var responses []*Response[*pong]
	asker := spawnTestActor(t, sv, exec, WithInitializer(func(a *Actor) {
		On(a, a.Address(), func(_ *Message, resp *Response[*pong]) {
			responses = append(responses, resp)
		})
	}))

	exec.Post(func() {
		Ask[*ping, *pong](asker, responder.Address(), &ping{}, time.Second)
	})
	exec.RunUntilIdle()

	require.Len(t, responses, 1)
	require.NoError(t, responses[0].Err())
	require.NotNil(t, responses[0].Payload())

	// the registry entry is gone and its timer cancelled
	assert.Empty(t, sv.requests.entries)
	assert.Zero(t, exec.PendingTimers())
}

func TestRequestTimeout(t *testing.T) {
	sv, exec := newTestSupervisor(t)

	var responses []*Response[*pong]
	asker := spawnTestActor(t, sv, exec, WithInitializer(func(a *Actor) {
		On(a, a.Address(), func(_ *Message, resp *Response[*pong]) {
			responses = append(responses, resp)
		})
	}))

	// the destination has no handler for the request, so nothing ever replies
	dead := sv.CreateAddress()

	var id uint64
	exec.Post(func() {
		id = Ask[*ping, *pong](asker, dead, &ping{}, 50*time.Millisecond)
	})
	exec.RunUntilIdle()
	require.Empty(t, responses)

	// the timer fires and a synthetic timeout response arrives
	exec.AdvanceTime(50 * time.Millisecond)
	require.Len(t, responses, 1)
	assert.ErrorIs(t, responses[0].Err(), gerrors.ErrRequestTimeout)

	// a real response with the same id shows up too late and is dropped
	Send(asker.Address(), &Response[*pong]{id: id, payload: &pong{}})
	exec.RunUntilIdle()
	assert.Len(t, responses, 1)
}

func TestRequestIDsAreMonotonic(t *testing.T) {
	registry := newRequestRegistry()
	first := registry.nextID()
	second := registry.nextID()
	assert.Greater(t, second, first)
}

func TestErrorReply(t *testing.T) {
	sv, exec := newTestSupervisor(t)

	responder := spawnTestActor(t, sv, exec, WithInitializer(func(a *Actor) {
		On(a, a.Address(), func(_ *Message, req *Request[*ping]) {
			ReplyErr[*ping, *pong](req, gerrors.ErrActorNotLinkable)
		})
	}))

	var responses []*Response[*pong]
	asker := spawnTestActor(t, sv, exec, WithInitializer(func(a *Actor) {
		On(a, a.Address(), func(_ *Message, resp *Response[*pong]) {
			responses = append(responses, resp)
		})
	}))

	exec.Post(func() {
		Ask[*ping, *pong](asker, responder.Address(), &ping{}, time.Second)
	})
	exec.RunUntilIdle()

	require.Len(t, responses, 1)
	assert.ErrorIs(t, responses[0].Err(), gerrors.ErrActorNotLinkable)
}

func TestCrossSupervisorRequest(t *testing.T) {
	sv1, exec1 := newTestSupervisor(t)
	sv2, exec2 := newTestSupervisor(t)

	responder, err := New(WithSupervisor(sv2), WithInitializer(func(a *Actor) {
		On(a, a.Address(), func(_ *Message, req *Request[*ping]) {
			Reply(req, &pong{})
		})
	}))
	require.NoError(t, err)
	sv2.Spawn(responder)
	exec2.RunUntilIdle()
	require.Equal(t, StateOperational, responder.State())

	var responses []*Response[*pong]
	asker := spawnTestActor(t, sv1, exec1, WithInitializer(func(a *Actor) {
		On(a, a.Address(), func(_ *Message, resp *Response[*pong]) {
			responses = append(responses, resp)
		})
	}))

	exec1.Post(func() {
		Ask[*ping, *pong](asker, responder.Address(), &ping{}, time.Second)
	})
	// the request crosses to sv2 and the response crosses back
	testkit.Drain(exec1, exec2)

	require.Len(t, responses, 1)
	require.NoError(t, responses[0].Err())
}
