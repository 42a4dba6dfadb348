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

// identities of the default plugins
const (
	addressMakerIdentity = "addressMaker"
	lifetimeIdentity     = "lifetime"
	initShutdownIdentity = "initShutdown"
	starterIdentity      = "starter"
	childManagerIdentity = "childManager"
)

// interface guards
var (
	_ Plugin = (*addressMakerPlugin)(nil)
	_ Plugin = (*initShutdownPlugin)(nil)
	_ Plugin = (*starterPlugin)(nil)
	_ Plugin = (*lifetimePlugin)(nil)
)

// addressMakerPlugin creates the actor's primary address during activation.
type addressMakerPlugin struct {
	BasePlugin
}

func newAddressMakerPlugin() *addressMakerPlugin {
	return &addressMakerPlugin{BasePlugin: NewBasePlugin(addressMakerIdentity)}
}

// Activate creates the primary address on the owning supervisor.
func (p *addressMakerPlugin) Activate(a *Actor) {
	p.bind(a)
	a.addresses = append(a.addresses, a.owner.CreateAddress())
	p.maybeCommit()
}

// initShutdownPlugin subscribes the initialize and shutdown request handlers
// and gates the init chain on the completion of plugin activation.
type initShutdownPlugin struct {
	BasePlugin
}

func newInitShutdownPlugin() *initShutdownPlugin {
	return &initShutdownPlugin{BasePlugin: NewBasePlugin(initShutdownIdentity)}
}

func (p *initShutdownPlugin) Activate(a *Actor) {
	p.bind(a)
	addr := a.Address()
	p.await(On(a, addr, p.onInitRequest), addr)
	p.await(On(a, addr, p.onShutdownRequest), addr)
	a.InstallPlugin(p, InitSlot)
	a.InstallPlugin(p, ShutdownSlot)
	a.InstallPlugin(p, SubscriptionSlot)
}

// HandleInit blocks the init chain until every plugin has acknowledged its
// activation.
func (p *initShutdownPlugin) HandleInit(*Message) bool {
	return p.actor.activating.IsEmpty()
}

func (p *initShutdownPlugin) onInitRequest(m *Message, req *Request[*initializeActor]) {
	a := p.actor
	switch {
	case a.initFailure != nil || a.State() >= StateShuttingDown:
		ReplyErr[*initializeActor, *initializeConfirmation](req, a.failureReason())
	case a.State() >= StateInitialized:
		Reply(req, &initializeConfirmation{})
	default:
		a.pendingInit = m
		a.initStart()
		if a.initializer != nil {
			a.initializer(a)
		}
		a.initContinue()
	}
}

func (p *initShutdownPlugin) onShutdownRequest(m *Message, req *Request[*shutdownActor]) {
	a := p.actor
	switch {
	case a.State() == StateShutDown:
		Reply(req, &shutdownConfirmation{})
	case a.State() == StateShuttingDown:
		if a.pendingShutdown == nil {
			a.pendingShutdown = m
			return
		}
		// a shutdown is already being confirmed to someone else
		Reply(req, &shutdownConfirmation{})
	default:
		a.pendingShutdown = m
		a.beginShutdown()
	}
}

// starterPlugin subscribes the start trigger handler.
type starterPlugin struct {
	BasePlugin
}

func newStarterPlugin() *starterPlugin {
	return &starterPlugin{BasePlugin: NewBasePlugin(starterIdentity)}
}

func (p *starterPlugin) Activate(a *Actor) {
	p.bind(a)
	addr := a.Address()
	p.await(On(a, addr, p.onStartTrigger), addr)
	a.InstallPlugin(p, SubscriptionSlot)
}

func (p *starterPlugin) onStartTrigger(*Message, *startActor) {
	p.actor.onStart()
}

// lifetimePlugin owns the actor's subscription bookkeeping. It records every
// confirmed point in subscription order, routes the confirmation traffic to
// the other plugins, and at shutdown unsubscribes every remaining point in
// reverse order, blocking the shutdown chain until the drain completes.
type lifetimePlugin struct {
	BasePlugin
	points       []Point
	draining     bool
	deactivating bool
}

func newLifetimePlugin() *lifetimePlugin {
	return &lifetimePlugin{BasePlugin: NewBasePlugin(lifetimeIdentity)}
}

func (p *lifetimePlugin) Activate(a *Actor) {
	p.bind(a)
	addr := a.Address()
	// the unsubscription handler is subscribed first so that the reverse
	// drain removes it last: every other point's confirmation still finds it
	// in the table
	p.await(On(a, addr, p.onUnsubscriptionMsg), addr)
	p.await(On(a, addr, p.onSubscriptionMsg), addr)
	a.InstallPlugin(p, SubscriptionSlot)
	a.InstallPlugin(p, UnsubscriptionSlot)
	a.InstallPlugin(p, ShutdownSlot)
}

// onSubscriptionMsg is the handler target for subscription confirmations: it
// polls the subscription slot.
func (p *lifetimePlugin) onSubscriptionMsg(m *Message, _ *subscriptionConfirmation) {
	p.actor.poll(SubscriptionSlot, m, func(plugin Plugin, msg *Message) ProcessingResult {
		return plugin.HandleSubscription(msg)
	})
}

// onUnsubscriptionMsg is the handler target for unsubscription
// confirmations: it polls the unsubscription slot.
func (p *lifetimePlugin) onUnsubscriptionMsg(m *Message, _ *unsubscriptionConfirmation) {
	p.actor.poll(UnsubscriptionSlot, m, func(plugin Plugin, msg *Message) ProcessingResult {
		return plugin.HandleUnsubscription(msg)
	})
}

// HandleSubscription records every confirmed point and resolves the ones
// gating this plugin's own activation. The plugin never leaves the slot: it
// keeps recording for the whole actor lifetime.
func (p *lifetimePlugin) HandleSubscription(msg *Message) ProcessingResult {
	conf := msg.Payload().(*subscriptionConfirmation)
	p.record(conf.point)
	if p.pending.Contains(conf.point) {
		p.pending.Remove(conf.point)
		p.maybeCommit()
	}
	return Ignored
}

// HandleUnsubscription drops the confirmed point. When the last point goes,
// a pending deactivation commits and a blocked shutdown chain is re-driven.
func (p *lifetimePlugin) HandleUnsubscription(msg *Message) ProcessingResult {
	conf := msg.Payload().(*unsubscriptionConfirmation)
	p.remove(conf.point)
	if len(p.points) == 0 {
		if p.deactivating {
			p.finishDeactivation()
		}
		if p.actor.State() == StateShuttingDown {
			p.actor.shutdownContinue()
		}
	}
	return Ignored
}

// HandleShutdown starts the unsubscription drain on first poll and blocks
// the chain until every point is confirmed gone.
func (p *lifetimePlugin) HandleShutdown(*Message) bool {
	if !p.draining {
		p.draining = true
		for i := len(p.points) - 1; i >= 0; i-- {
			p.actor.owner.unsubscribePoint(p.points[i], nil)
		}
	}
	return len(p.points) == 0
}

// Deactivate defers its commit until the unsubscription drain completes.
func (p *lifetimePlugin) Deactivate() {
	p.deactivating = true
	if len(p.points) == 0 {
		p.finishDeactivation()
	}
}

func (p *lifetimePlugin) finishDeactivation() {
	p.deactivating = false
	p.active = false
	p.actor.CommitPluginDeactivation(p.id)
}

func (p *lifetimePlugin) record(pt Point) {
	for _, existing := range p.points {
		if existing == pt {
			return
		}
	}
	p.points = append(p.points, pt)
}

func (p *lifetimePlugin) remove(pt Point) {
	for i, existing := range p.points {
		if existing == pt {
			p.points = append(p.points[:i], p.points[i+1:]...)
			return
		}
	}
}
