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

	"github.com/stretchr/testify/require"

	"github.com/tochemey/rotor/log"
	"github.com/tochemey/rotor/testkit"
)

// test payloads
type ping struct{}
type pong struct{}

type testEvent struct {
	value int
}

// newTestSupervisor creates a started, operational supervisor driven by a
// deterministic executor.
func newTestSupervisor(t *testing.T) (*Supervisor, *testkit.Executor) {
	t.Helper()
	exec := testkit.New()
	sv, err := NewSupervisor(
		WithExecutor(exec),
		WithShutdownTimeout(time.Second),
		WithLogger(log.DiscardLogger))
	require.NoError(t, err)

	sv.Start()
	exec.RunUntilIdle()
	require.Equal(t, StateOperational, sv.State())
	return sv, exec
}

// spawnTestActor spawns an actor on the supervisor and drains until it is
// operational.
func spawnTestActor(t *testing.T, sv *Supervisor, exec *testkit.Executor, opts ...Option) *Actor {
	t.Helper()
	opts = append([]Option{WithSupervisor(sv)}, opts...)
	a, err := New(opts...)
	require.NoError(t, err)

	sv.Spawn(a)
	exec.RunUntilIdle()
	require.Equal(t, StateOperational, a.State())
	return a
}

// blockingInitPlugin blocks the init chain until an external signal flips it.
type blockingInitPlugin struct {
	BasePlugin
	ready bool
}

func newBlockingInitPlugin() *blockingInitPlugin {
	return &blockingInitPlugin{BasePlugin: NewBasePlugin("blockingInit")}
}

func (p *blockingInitPlugin) Activate(a *Actor) {
	p.bind(a)
	a.InstallPlugin(p, InitSlot)
	p.maybeCommit()
}

func (p *blockingInitPlugin) HandleInit(*Message) bool {
	return p.ready
}

// unblock must run on the owning supervisor's executor.
func (p *blockingInitPlugin) unblock() {
	p.ready = true
	p.actor.InitContinue()
}

// failingPlugin refuses to activate.
type failingPlugin struct {
	BasePlugin
}

func newFailingPlugin() *failingPlugin {
	return &failingPlugin{BasePlugin: NewBasePlugin("failing")}
}

func (p *failingPlugin) Activate(a *Actor) {
	p.bind(a)
	a.CommitPluginActivation(p.Identity(), false)
}

// drainEvents collects the buffered events of a subscriber iterator in
// publication order.
func drainEvents(iter chan any) []any {
	events := make([]any, 0)
	for event := range iter {
		events = append(events, event)
	}
	return events
}
