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
	mapset "github.com/deckarep/golang-set/v2"
)

// ProcessingResult is the outcome of polling a plugin with a subscription or
// unsubscription message.
type ProcessingResult int

const (
	// Ignored means the plugin did not handle the message; polling continues
	// with the next plugin.
	Ignored ProcessingResult = iota
	// Consumed means the plugin handled the message; polling stops.
	Consumed
	// Finished means the plugin handled the message and is done with the
	// slot; it is removed from the slot and polling continues.
	Finished
)

// Slot identifies one of the four per-actor active plugin lists.
type Slot int

const (
	// InitSlot holds the plugins participating in the init chain. The chain
	// is drained from the front.
	InitSlot Slot = iota
	// ShutdownSlot holds the plugins participating in the shutdown chain.
	// The chain is drained from the back, so shutdown unwinds in the reverse
	// order of init completion.
	ShutdownSlot
	// SubscriptionSlot holds the plugins routing subscription confirmations.
	SubscriptionSlot
	// UnsubscriptionSlot holds the plugins routing unsubscription
	// confirmations.
	UnsubscriptionSlot

	numSlots = 4
)

// Plugin is a lifecycle fragment of an actor. Plugins are activated in chain
// order when the actor is adopted by its supervisor and deactivated in
// reverse order when it shuts down. During activation a plugin registers
// itself into zero or more slots; the actor polls the slots to drive its
// lifecycle phases.
//
// Activation and deactivation are asynchronous: a plugin acknowledges them by
// calling CommitPluginActivation respectively CommitPluginDeactivation on its
// actor once its prerequisites are met. Both callbacks must be invoked on the
// owning supervisor's executor; a plugin doing work on another goroutine must
// re-enter by posting a message or scheduling onto the supervisor.
type Plugin interface {
	// Identity returns the stable identity of the plugin. Identities must be
	// unique within an actor's plugin chain.
	Identity() string
	// Active reports whether the plugin is activated and not yet
	// deactivated.
	Active() bool
	// Activate sets the plugin up on the given actor: subscriptions,
	// slot registrations, resource acquisition.
	Activate(a *Actor)
	// Deactivate begins the plugin teardown.
	Deactivate()
	// HandleInit is polled while the plugin sits at the front of the init
	// chain. Returning true removes the plugin from the chain and lets the
	// drain continue; returning false blocks initialization until an
	// external event re-triggers the drain.
	HandleInit(req *Message) bool
	// HandleShutdown is polled while the plugin sits at the back of the
	// shutdown chain; semantics are symmetric to HandleInit.
	HandleShutdown(req *Message) bool
	// HandleSubscription participates in routing subscription
	// confirmations.
	HandleSubscription(msg *Message) ProcessingResult
	// HandleUnsubscription participates in routing unsubscription
	// confirmations.
	HandleUnsubscription(msg *Message) ProcessingResult
}

// BasePlugin provides the default plugin behavior: it binds to the actor,
// tracks the subscription points made during activation and commits the
// activation once every point has been confirmed. Concrete plugins embed it
// and override what they need.
type BasePlugin struct {
	id        string
	actor     *Actor
	active    bool
	committed bool
	pending   mapset.Set[Point]
}

// NewBasePlugin creates a BasePlugin with the given identity.
func NewBasePlugin(id string) BasePlugin {
	return BasePlugin{
		id:      id,
		pending: mapset.NewThreadUnsafeSet[Point](),
	}
}

// Identity returns the plugin identity.
func (p *BasePlugin) Identity() string {
	return p.id
}

// Active reports whether the plugin is activated and not yet deactivated.
func (p *BasePlugin) Active() bool {
	return p.active
}

// Actor returns the actor the plugin is bound to, nil before activation.
func (p *BasePlugin) Actor() *Actor {
	return p.actor
}

// Activate binds the plugin to the actor and commits the activation
// immediately. Plugins that subscribe handlers or need asynchronous setup
// override this method.
func (p *BasePlugin) Activate(a *Actor) {
	p.bind(a)
	p.maybeCommit()
}

// Deactivate marks the plugin inactive and commits the deactivation
// immediately.
func (p *BasePlugin) Deactivate() {
	p.active = false
	p.actor.CommitPluginDeactivation(p.id)
}

// HandleInit lets the init chain continue by default.
func (p *BasePlugin) HandleInit(*Message) bool {
	return true
}

// HandleShutdown lets the shutdown chain continue by default.
func (p *BasePlugin) HandleShutdown(*Message) bool {
	return true
}

// HandleSubscription resolves the confirmed point against the points awaited
// since activation. Once the last awaited point confirms, the plugin commits
// its activation and leaves the subscription slot.
func (p *BasePlugin) HandleSubscription(msg *Message) ProcessingResult {
	conf := msg.Payload().(*subscriptionConfirmation)
	if !p.pending.Contains(conf.point) {
		return Ignored
	}
	p.pending.Remove(conf.point)
	if p.pending.IsEmpty() && !p.committed {
		p.committed = true
		p.actor.CommitPluginActivation(p.id, true)
		return Finished
	}
	return Ignored
}

// HandleUnsubscription ignores unsubscription confirmations by default.
func (p *BasePlugin) HandleUnsubscription(*Message) ProcessingResult {
	return Ignored
}

// bind attaches the plugin to the actor and marks it active.
func (p *BasePlugin) bind(a *Actor) {
	p.actor = a
	p.active = true
}

// await records a point whose confirmation gates the plugin activation.
func (p *BasePlugin) await(h *Handler, addr *Address) {
	p.pending.Add(Point{Handler: h, Address: addr})
}

// maybeCommit commits the activation when nothing is awaited.
func (p *BasePlugin) maybeCommit() {
	if p.pending.IsEmpty() && !p.committed {
		p.committed = true
		p.actor.CommitPluginActivation(p.id, true)
	}
}
