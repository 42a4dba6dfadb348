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
	gerrors "github.com/tochemey/rotor/errors"
)

// enforce compilation error
var _ Plugin = (*childManagerPlugin)(nil)

// childManagerPlugin is installed on supervisors only. It adopts externally
// constructed actors, drives their initialization with a timeout, serves
// state queries, and cascades the supervisor shutdown to every child before
// letting the supervisor's own shutdown chain proceed.
type childManagerPlugin struct {
	BasePlugin
	sv               *Supervisor
	pendingInits     map[uint64]*Actor
	pendingShutdowns map[uint64]*Actor
	cascade          bool
}

func newChildManagerPlugin(sv *Supervisor) *childManagerPlugin {
	return &childManagerPlugin{
		BasePlugin:       NewBasePlugin(childManagerIdentity),
		sv:               sv,
		pendingInits:     make(map[uint64]*Actor),
		pendingShutdowns: make(map[uint64]*Actor),
	}
}

func (p *childManagerPlugin) Activate(a *Actor) {
	p.bind(a)
	addr := a.Address()
	p.await(On(a, addr, p.onCreateActor), addr)
	p.await(On(a, addr, p.onShutdownTrigger), addr)
	p.await(On(a, addr, p.onInitResponse), addr)
	p.await(On(a, addr, p.onShutdownResponse), addr)
	p.await(On(a, addr, p.onStateRequest), addr)
	a.InstallPlugin(p, SubscriptionSlot)
	a.InstallPlugin(p, ShutdownSlot)
}

// onCreateActor adopts the actor: it joins the child set, its plugin chain
// activates, and an initialize request is sent with the configured timeout
// armed. An adoptee pumped by another supervisor (a child supervisor)
// activates on its own executor to preserve state affinity.
func (p *childManagerPlugin) onCreateActor(_ *Message, c *createActor) {
	adoptee := c.actor
	if adoptee != p.sv.Actor {
		p.sv.children.Add(adoptee)
	}

	if adoptee.owner == p.sv {
		adoptee.doInitialize()
		p.initiateInit(adoptee, c)
		return
	}

	adoptee.owner.executor.Post(func() {
		adoptee.doInitialize()
		p.sv.executor.Post(func() {
			p.initiateInit(adoptee, c)
		})
	})
}

func (p *childManagerPlugin) initiateInit(adoptee *Actor, c *createActor) {
	id := Ask[*initializeActor, *initializeConfirmation](
		p.actor, adoptee.Address(), &initializeActor{addr: adoptee.Address()}, c.timeout)
	p.pendingInits[id] = adoptee
}

// onInitResponse resolves a pending child initialization. On success the
// start trigger is sent; on failure (including timeout) the child is asked
// to shut down, and a failed self-initialization shuts the supervisor down.
func (p *childManagerPlugin) onInitResponse(_ *Message, resp *Response[*initializeConfirmation]) {
	adoptee, ok := p.pendingInits[resp.ID()]
	if !ok {
		p.sv.logger.Warnf("supervisor %s received an unexpected init response id=(%d)", p.actor.Address(), resp.ID())
		return
	}
	delete(p.pendingInits, resp.ID())

	if err := resp.Err(); err != nil {
		p.sv.logger.Warnf("actor %s failed to initialize: %v", adoptee.Address(), err)
		if adoptee == p.sv.Actor {
			p.actor.beginShutdown()
			return
		}
		p.shutdownChild(adoptee)
		return
	}

	Send(adoptee.Address(), &startActor{addr: adoptee.Address()})
}

// onShutdownTrigger routes a shutdown trigger either to the supervisor
// itself or to the child owning the target address.
func (p *childManagerPlugin) onShutdownTrigger(_ *Message, t *shutdownTrigger) {
	if t.addr == p.actor.Address() {
		p.actor.beginShutdown()
		return
	}

	if child := p.childByAddress(t.addr); child != nil {
		p.shutdownChild(child)
		return
	}
	p.sv.logger.Warnf("supervisor %s received a shutdown trigger for unknown address %s", p.actor.Address(), t.addr)
}

// shutdownChild sends the child a shutdown request with its stop timeout
// armed. Children already being stopped are left alone.
func (p *childManagerPlugin) shutdownChild(child *Actor) {
	for _, stopping := range p.pendingShutdowns {
		if stopping == child {
			return
		}
	}
	id := Ask[*shutdownActor, *shutdownConfirmation](
		p.actor, child.Address(), &shutdownActor{addr: child.Address()}, child.config.shutdownTimeout)
	p.pendingShutdowns[id] = child
}

// onShutdownResponse resolves a pending child shutdown. A timeout escalates:
// the child is removed from the child set regardless, so the supervisor's
// own shutdown is never held hostage.
func (p *childManagerPlugin) onShutdownResponse(_ *Message, resp *Response[*shutdownConfirmation]) {
	child, ok := p.pendingShutdowns[resp.ID()]
	if !ok {
		p.sv.logger.Warnf("supervisor %s received an unexpected shutdown response id=(%d)", p.actor.Address(), resp.ID())
		return
	}
	delete(p.pendingShutdowns, resp.ID())

	if err := resp.Err(); err != nil {
		p.sv.logger.Warnf("actor %s did not confirm shutdown: %v", child.Address(), err)
	}

	p.sv.children.Remove(child)
	if p.actor.State() == StateShuttingDown && p.sv.children.IsEmpty() {
		p.actor.shutdownContinue()
	}
}

// onStateRequest serves lifecycle state queries for the supervisor itself
// and its children.
func (p *childManagerPlugin) onStateRequest(_ *Message, req *Request[*StateRequest]) {
	subject := req.Payload().Subject
	if subject == p.actor.Address() {
		Reply(req, &StateResponse{State: p.actor.State()})
		return
	}
	if child := p.childByAddress(subject); child != nil {
		Reply(req, &StateResponse{State: child.State()})
		return
	}
	ReplyErr[*StateRequest, *StateResponse](req, gerrors.ErrActorNotFound)
}

// HandleShutdown fans the shutdown out to every child on first poll and
// blocks the chain until the child set empties.
func (p *childManagerPlugin) HandleShutdown(*Message) bool {
	if !p.cascade {
		p.cascade = true
		for _, child := range p.sv.children.ToSlice() {
			p.shutdownChild(child)
		}
	}
	return p.sv.children.IsEmpty()
}

func (p *childManagerPlugin) childByAddress(addr *Address) *Actor {
	for _, child := range p.sv.children.ToSlice() {
		if child.Address() == addr {
			return child
		}
	}
	return nil
}
