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
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/rotor/errors"
	"github.com/tochemey/rotor/log"
)

// Actor is the runtime core of an actor: it owns the addresses, the plugin
// chain and the lifecycle state machine. Actors are constructed externally
// with New and adopted by their supervisor through Spawn; from that point on
// their state is only touched from the owning supervisor's pump.
type Actor struct {
	owner     *Supervisor
	addresses []*Address

	plugins []Plugin
	slots   [numSlots][]Plugin

	activating   mapset.Set[string]
	deactivating mapset.Set[string]

	state *atomic.Int32

	// pendingInit holds the in-flight initialize request message, nil
	// outside the init phase. pendingShutdown is its shutdown counterpart; a
	// root supervisor shuts down with none.
	pendingInit     *Message
	pendingShutdown *Message
	initFailure     error

	initializer func(*Actor)
	startHook   func(*Actor)
	finalizer   func()

	config *actorConfig
	logger log.Logger
}

// New constructs an actor from the given options. The actor starts in the
// NEW state with the default plugin chain (address maker, lifetime,
// init/shutdown, starter) followed by the configured plugins; it processes
// nothing until its supervisor adopts it via Spawn.
func New(opts ...Option) (*Actor, error) {
	config := newActorConfig(opts...)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	chain := []Plugin{
		newAddressMakerPlugin(),
		newLifetimePlugin(),
		newInitShutdownPlugin(),
		newStarterPlugin(),
	}
	chain = append(chain, config.plugins...)

	return newActor(config.supervisor, config, chain), nil
}

// newActor wires an actor onto its owning supervisor with the given plugin
// chain. Every plugin identity starts in the activating set.
func newActor(owner *Supervisor, config *actorConfig, chain []Plugin) *Actor {
	a := &Actor{
		owner:        owner,
		plugins:      chain,
		activating:   mapset.NewThreadUnsafeSet[string](),
		deactivating: mapset.NewThreadUnsafeSet[string](),
		state:        atomic.NewInt32(int32(StateNew)),
		initializer:  config.initializer,
		startHook:    config.startHook,
		config:       config,
		logger:       owner.logger,
	}
	for _, plugin := range chain {
		a.activating.Add(plugin.Identity())
	}
	return a
}

// Address returns the actor's primary address, nil until the address maker
// plugin has run.
func (a *Actor) Address() *Address {
	if len(a.addresses) == 0 {
		return nil
	}
	return a.addresses[0]
}

// NewAddress creates an additional address owned by the actor. Must be called
// on the owning supervisor's executor.
func (a *Actor) NewAddress() *Address {
	addr := a.owner.CreateAddress()
	a.addresses = append(a.addresses, addr)
	return addr
}

// Supervisor returns the supervisor the actor is affine to.
func (a *Actor) Supervisor() *Supervisor {
	return a.owner
}

// State returns the current lifecycle state. Safe to read from any
// goroutine.
func (a *Actor) State() State {
	return State(a.state.Load())
}

// Shutdown asks the actor's supervisor to initiate the actor's shutdown
// procedure. It returns immediately; track progress through State or the
// supervisor's event stream.
func (a *Actor) Shutdown() {
	Send(a.owner.Address(), &shutdownTrigger{addr: a.Address()})
}

// Unsubscribe removes the subscription point (h, addr). Unsubscribing an
// absent point is idempotent and confirms immediately.
func (a *Actor) Unsubscribe(h *Handler, addr *Address) {
	a.owner.unsubscribePoint(Point{Handler: h, Address: addr}, nil)
}

// UnsubscribeWithCallback removes the subscription point (h, addr) and
// invokes the callback once the unsubscription has fully propagated, that is
// after the confirmation message has been delivered and the point removed
// from the table. The callback is only supported for points on addresses
// owned by the actor's own supervisor.
func (a *Actor) UnsubscribeWithCallback(h *Handler, addr *Address, callback func()) {
	a.owner.unsubscribePoint(Point{Handler: h, Address: addr}, callback)
}

// InstallPlugin registers the plugin into the given slot. Plugins call this
// during activation.
func (a *Actor) InstallPlugin(p Plugin, slot Slot) {
	a.slots[slot] = append(a.slots[slot], p)
}

// UninstallPlugin removes the plugin from the given slot.
func (a *Actor) UninstallPlugin(p Plugin, slot Slot) {
	for i, installed := range a.slots[slot] {
		if installed == p {
			a.slots[slot] = append(a.slots[slot][:i], a.slots[slot][i+1:]...)
			return
		}
	}
}

// CommitPluginActivation acknowledges a plugin activation. On success the
// plugin identity leaves the activating set; once the set empties a blocked
// init chain is re-driven. On failure the actor rolls back: its pending
// initialize request (if any) is answered with an init failure and the actor
// transitions to SHUTTING_DOWN without ever reaching OPERATIONAL.
//
// Must be invoked on the owning supervisor's executor.
func (a *Actor) CommitPluginActivation(identity string, success bool) {
	if !success {
		a.initFailure = fmt.Errorf("plugin=(%s) activation failed", identity)
		a.logger.Warnf("plugin=(%s) failed to activate, shutting down actor %s", identity, a.Address())
		a.failInit()
		return
	}

	a.activating.Remove(identity)
	if a.activating.IsEmpty() && a.State() == StateInitializing && a.pendingInit != nil {
		a.initContinue()
	}
}

// CommitPluginDeactivation acknowledges a plugin deactivation. Once the
// deactivating set empties a pending shutdown is re-driven so it can
// finalize.
//
// Must be invoked on the owning supervisor's executor.
func (a *Actor) CommitPluginDeactivation(identity string) {
	a.deactivating.Remove(identity)
	if a.deactivating.IsEmpty() && a.State() == StateShuttingDown {
		a.shutdownContinue()
	}
}

// InitContinue re-drives the init chain after an external event unblocked a
// plugin. Must be invoked on the owning supervisor's executor.
func (a *Actor) InitContinue() {
	a.initContinue()
}

// ShutdownContinue re-drives the shutdown chain after an external event
// unblocked a plugin. Must be invoked on the owning supervisor's executor.
func (a *Actor) ShutdownContinue() {
	a.shutdownContinue()
}

// doInitialize activates the plugin chain in order. Runs on the owning
// supervisor's executor when the actor is adopted.
func (a *Actor) doInitialize() {
	for _, plugin := range a.plugins {
		plugin.Activate(a)
	}
}

// deactivatePlugins begins the rollback of every active plugin, in reverse
// chain order. Each plugin identity is inserted into the deactivating set
// before its Deactivate runs, so synchronous commits are accounted for.
func (a *Actor) deactivatePlugins() {
	for i := len(a.plugins) - 1; i >= 0; i-- {
		plugin := a.plugins[i]
		if !plugin.Active() {
			continue
		}
		a.deactivating.Add(plugin.Identity())
		plugin.Deactivate()
	}
}

// initStart moves the actor into INITIALIZING.
func (a *Actor) initStart() {
	a.setState(StateInitializing)
}

// initContinue drains the init plugin chain from the front. Each plugin
// returning true is popped; the first plugin returning false blocks the
// chain until an external event re-triggers the drain. When the chain
// empties the init finishes.
func (a *Actor) initContinue() {
	if a.State() != StateInitializing {
		return
	}
	for len(a.slots[InitSlot]) > 0 {
		plugin := a.slots[InitSlot][0]
		if plugin.HandleInit(a.pendingInit) {
			a.slots[InitSlot] = a.slots[InitSlot][1:]
			continue
		}
		break
	}
	if len(a.slots[InitSlot]) == 0 {
		a.initFinish()
	}
}

// initFinish confirms the pending initialize request and moves the actor
// into INITIALIZED.
func (a *Actor) initFinish() {
	if a.pendingInit != nil {
		req := a.pendingInit.Payload().(*Request[*initializeActor])
		Reply(req, &initializeConfirmation{})
		a.pendingInit = nil
	}
	a.setState(StateInitialized)
	a.owner.publishEvent(newActorInitialized(a))
}

// failInit answers the pending initialize request (if any) with an init
// failure and begins the shutdown rollback.
func (a *Actor) failInit() {
	if a.pendingInit != nil {
		req := a.pendingInit.Payload().(*Request[*initializeActor])
		ReplyErr[*initializeActor, *initializeConfirmation](req, gerrors.NewErrInitFailure(a.initFailure))
		a.pendingInit = nil
	}
	a.beginShutdown()
}

// beginShutdown drives the actor into SHUTTING_DOWN: plugin deactivation
// starts, then the shutdown chain is drained. A pending shutdown request, if
// one exists, must have been recorded before the call.
func (a *Actor) beginShutdown() {
	if a.State() >= StateShuttingDown {
		return
	}
	a.shutdownStart()

	// a shutdown overtaking a pending init answers it before tearing down
	if a.pendingInit != nil {
		req := a.pendingInit.Payload().(*Request[*initializeActor])
		ReplyErr[*initializeActor, *initializeConfirmation](req, gerrors.NewErrInitFailure(gerrors.ErrRequestCanceled))
		a.pendingInit = nil
	}

	a.deactivatePlugins()
	a.shutdownContinue()
}

// shutdownStart moves the actor into SHUTTING_DOWN.
func (a *Actor) shutdownStart() {
	a.setState(StateShuttingDown)
}

// shutdownContinue drains the shutdown plugin chain from the back, so
// shutdown unwinds in the reverse order of init completion. The shutdown
// finalizes once the chain is empty and every plugin has acknowledged its
// deactivation.
func (a *Actor) shutdownContinue() {
	if a.State() != StateShuttingDown {
		return
	}
	for len(a.slots[ShutdownSlot]) > 0 {
		last := len(a.slots[ShutdownSlot]) - 1
		plugin := a.slots[ShutdownSlot][last]
		if plugin.HandleShutdown(a.pendingShutdown) {
			a.slots[ShutdownSlot] = a.slots[ShutdownSlot][:last]
			continue
		}
		break
	}
	if len(a.slots[ShutdownSlot]) == 0 && a.deactivating.IsEmpty() {
		a.shutdownFinish()
	}
}

// shutdownFinish confirms the pending shutdown request (a root supervisor
// has none) and moves the actor into the terminal SHUT_DOWN state.
func (a *Actor) shutdownFinish() {
	if a.State() == StateShutDown {
		return
	}
	if !a.deactivating.IsEmpty() {
		panic(gerrors.NewErrProtocolViolation(
			"actor %s finished shutdown with plugins still deactivating: %v",
			a.Address(), a.deactivating.ToSlice()))
	}

	if a.pendingShutdown != nil {
		req := a.pendingShutdown.Payload().(*Request[*shutdownActor])
		Reply(req, &shutdownConfirmation{})
		a.pendingShutdown = nil
	}

	a.setState(StateShutDown)
	a.owner.publishEvent(newActorStopped(a))

	if a.finalizer != nil {
		a.finalizer()
	}
}

// onStart moves an initialized actor into OPERATIONAL and runs the
// configured start hook.
func (a *Actor) onStart() {
	if a.State() != StateInitialized {
		return
	}
	a.setState(StateOperational)
	a.owner.publishEvent(newActorStarted(a))
	if a.startHook != nil {
		a.startHook(a)
	}
}

// poll iterates the slot's plugin list in reverse insertion order. IGNORED
// moves to the next (earlier) plugin, CONSUMED stops the iteration, FINISHED
// removes the plugin from the slot and continues. The iteration tolerates
// in-place removal.
func (a *Actor) poll(slot Slot, msg *Message, fn func(Plugin, *Message) ProcessingResult) {
	for i := len(a.slots[slot]) - 1; i >= 0; i-- {
		if i >= len(a.slots[slot]) {
			i = len(a.slots[slot]) - 1
			if i < 0 {
				return
			}
		}
		plugin := a.slots[slot][i]
		switch fn(plugin, msg) {
		case Ignored:
		case Consumed:
			return
		case Finished:
			a.slots[slot] = append(a.slots[slot][:i], a.slots[slot][i+1:]...)
		}
	}
}

// failureReason describes why the actor cannot initialize.
func (a *Actor) failureReason() error {
	if a.initFailure != nil {
		return gerrors.NewErrInitFailure(a.initFailure)
	}
	return gerrors.NewErrInitFailure(gerrors.ErrRequestCanceled)
}

// setState advances the lifecycle state. Regressions are protocol
// violations.
func (a *Actor) setState(next State) {
	current := State(a.state.Load())
	if next < current {
		panic(gerrors.NewErrProtocolViolation(
			"actor %s state regression %s -> %s", a.Address(), current, next))
	}
	a.state.Store(int32(next))
}
