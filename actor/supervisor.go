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
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/rotor/errors"
	"github.com/tochemey/rotor/eventstream"
	"github.com/tochemey/rotor/executor"
	"github.com/tochemey/rotor/log"
)

// pump states
const (
	idle int32 = iota
	busy
)

// Supervisor is a root-of-tree actor: it owns an inbound message queue, the
// subscription tables of every address it created, the request registry and
// a set of child actors. A supervisor pumps its queue serially on the
// executor it is bound to; no two pumps of the same supervisor ever run
// concurrently. Actor state is only ever touched from the owning
// supervisor's pump.
type Supervisor struct {
	*Actor

	executor executor.Executor
	inbox    Inbox
	subs     *subscriptions
	requests *requestRegistry
	children mapset.Set[*Actor]
	manager  *childManagerPlugin
	parent   *Supervisor

	events eventstream.Stream
	logger log.Logger

	processing *atomic.Int32
	stopped    chan struct{}
}

// NewSupervisor creates a supervisor from the given options. An executor and
// a shutdown timeout are required. When a parent is configured the new
// supervisor behaves as a child actor of the parent: Start hands it over for
// adoption instead of self-initializing.
func NewSupervisor(opts ...SupervisorOption) (*Supervisor, error) {
	config := newSupervisorConfig(opts...)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	sv := &Supervisor{
		executor:   config.executor,
		inbox:      config.inbox,
		subs:       newSubscriptions(),
		requests:   newRequestRegistry(),
		children:   mapset.NewThreadUnsafeSet[*Actor](),
		parent:     config.parent,
		events:     config.events,
		logger:     config.logger,
		processing: atomic.NewInt32(idle),
		stopped:    make(chan struct{}),
	}
	if sv.events == nil {
		if sv.parent != nil {
			sv.events = sv.parent.events
		} else {
			sv.events = eventstream.New()
		}
	}

	sv.manager = newChildManagerPlugin(sv)
	chain := []Plugin{
		newAddressMakerPlugin(),
		newLifetimePlugin(),
		newInitShutdownPlugin(),
		newStarterPlugin(),
		sv.manager,
	}

	cfg := newActorConfig(
		WithInitTimeout(config.initTimeout),
		WithStopTimeout(config.shutdownTimeout))
	sv.Actor = newActor(sv, cfg, chain)
	sv.Actor.finalizer = sv.finalize
	return sv, nil
}

// Start brings the supervisor to life. A root supervisor initializes itself
// on its executor; a child supervisor is handed over to its parent for
// adoption and follows the regular child lifecycle.
func (sv *Supervisor) Start() {
	if sv.parent != nil {
		sv.parent.Spawn(sv.Actor)
		return
	}
	sv.executor.Post(func() {
		sv.doInitialize()
		sv.manager.initiateInit(sv.Actor, &createActor{actor: sv.Actor, timeout: sv.config.initTimeout})
	})
}

// Spawn hands an externally constructed actor over to the supervisor for
// adoption. The supervisor takes ownership, adds the actor to its child set
// and sends it an initialize request with the actor's configured init
// timeout armed.
func (sv *Supervisor) Spawn(a *Actor) {
	Send(sv.Address(), &createActor{actor: a, timeout: a.config.initTimeout})
}

// Stop asks the supervisor to shut down and waits for the shutdown to
// complete, the context to expire, or the shutdown timeout plus a one-second
// grace period to elapse, whichever comes first.
func (sv *Supervisor) Stop(ctx context.Context) error {
	if sv.Address() == nil {
		return gerrors.ErrDead
	}
	sv.Actor.Shutdown()

	// the cascade itself runs on shutdown-timeout timers, so the wait gets a
	// grace period on top
	deadline := time.NewTimer(sv.config.shutdownTimeout + time.Second)
	defer deadline.Stop()

	select {
	case <-sv.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-deadline.C:
		return gerrors.ErrShutdownTimeout
	}
}

// Done is closed once the supervisor reaches SHUT_DOWN.
func (sv *Supervisor) Done() <-chan struct{} {
	return sv.stopped
}

// CreateAddress creates a new address owned by this supervisor.
func (sv *Supervisor) CreateAddress() *Address {
	return newAddress(sv)
}

// Parent returns the parent supervisor, nil for a root.
func (sv *Supervisor) Parent() *Supervisor {
	return sv.parent
}

// Children returns a snapshot of the supervisor's child actors.
func (sv *Supervisor) Children() []*Actor {
	return sv.children.ToSlice()
}

// Events returns the event stream lifecycle events and deadletters are
// published to.
func (sv *Supervisor) Events() eventstream.Stream {
	return sv.events
}

// Logger returns the supervisor logger.
func (sv *Supervisor) Logger() log.Logger {
	return sv.logger
}

// post enqueues a message on the inbound queue and schedules a pump. It is
// the only supervisor entry point that may run on a foreign goroutine.
func (sv *Supervisor) post(msg *Message) {
	if sv.State() == StateShutDown {
		sv.publishDeadletter(msg, gerrors.ErrDead.Error())
		return
	}
	if err := sv.inbox.Enqueue(msg); err != nil {
		sv.logger.Warnf("supervisor %s failed to enqueue: %v", sv.Address(), err)
		sv.publishDeadletter(msg, err.Error())
		return
	}
	sv.schedulePump()
}

// schedulePump posts a pump on the executor unless one is already running or
// scheduled.
func (sv *Supervisor) schedulePump() {
	if sv.processing.CompareAndSwap(idle, busy) {
		sv.executor.Post(sv.pump)
	}
}

// pump drains the inbound queue serially. When the queue looks empty the
// pump flips back to idle and re-checks, so messages enqueued during the
// transition are never stranded.
func (sv *Supervisor) pump() {
	for {
		for {
			msg := sv.inbox.Dequeue()
			if msg == nil {
				break
			}
			sv.dispatch(msg)
		}

		sv.processing.Store(idle)
		if !sv.inbox.IsEmpty() && sv.processing.CompareAndSwap(idle, busy) {
			continue
		}
		return
	}
}

// dispatch routes one message:
//
//  1. messages for an address owned by another supervisor are posted to that
//     supervisor's queue;
//  2. routing envelopes (forwarded handler calls, the foreign subscription
//     protocol) are handled by the supervisor itself;
//  3. responses are correlated against the request registry, cancelling the
//     timer; responses without a registered id are dropped;
//  4. everything else fans out to the handlers subscribed to (address,
//     payload type), in insertion order. Handlers living on another
//     supervisor receive the message wrapped in a forwarding envelope.
func (sv *Supervisor) dispatch(msg *Message) {
	if msg.To().owner != sv {
		msg.To().owner.post(msg)
		return
	}

	switch payload := msg.Payload().(type) {
	case *handlerCall:
		if payload.handler.owner.owner != sv {
			panic(gerrors.NewErrProtocolViolation(
				"forwarded handler call for %s landed on supervisor %s",
				payload.handler.owner.Address(), sv.Address()))
		}
		payload.handler.Invoke(payload.original)
		return

	case *externalSubscription:
		sv.subs.subscribe(payload.point)
		Send(payload.point.Handler.owner.Address(), &subscriptionConfirmation{point: payload.point})
		return

	case *externalUnsubscription:
		sv.subs.unsubscribe(payload.point)
		Send(payload.point.Handler.owner.owner.Address(), &commitUnsubscription{point: payload.point})
		return

	case *commitUnsubscription:
		Send(payload.point.Handler.owner.Address(), &unsubscriptionConfirmation{point: payload.point})
		return
	}

	if resp, ok := msg.Payload().(responseEnvelope); ok {
		if !sv.resolveRequest(resp.requestID(), msg) {
			sv.logger.Debugf("supervisor %s dropping response id=(%d)", sv.Address(), resp.requestID())
			return
		}
	}

	sv.deliver(msg)
}

// deliver fans a message out to its local handlers and runs the
// deterministic post-dispatch step.
func (sv *Supervisor) deliver(msg *Message) {
	handlers := sv.subs.handlers(msg.To(), msg.PayloadType())
	if len(handlers) == 0 {
		sv.publishDeadletter(msg, "no handler subscribed")
	}

	for _, h := range handlers {
		if h.owner.owner == sv {
			h.Invoke(msg)
			continue
		}
		foreign := h.owner.owner
		foreign.post(NewMessage(foreign.Address(), &handlerCall{original: msg, handler: h}))
	}

	// post-dispatch: unsubscription confirmations finalize the table removal
	// and fire the completion callback once every handler has run
	if conf, ok := msg.Payload().(*unsubscriptionConfirmation); ok {
		if conf.point.Address.owner == sv {
			sv.subs.unsubscribe(conf.point)
		}
		if conf.callback != nil {
			conf.callback()
		}
	}
}

// resolveRequest removes the registry entry for the given id and cancels its
// timer. It returns false when no entry exists, in which case the response
// must be dropped. A registered id answered with the wrong response type is
// a protocol violation.
func (sv *Supervisor) resolveRequest(id uint64, msg *Message) bool {
	entry, ok := sv.requests.remove(id)
	if !ok {
		return false
	}
	sv.executor.CancelTimer(entry.timer)
	if msg.PayloadType() != entry.expected {
		panic(gerrors.NewErrProtocolViolation(
			"response for request id=(%d) carries %s, expected %s",
			id, msg.PayloadType(), entry.expected))
	}
	return true
}

// expireRequest fires when a request timer elapses: the registry entry is
// removed and a synthetic timeout response is delivered to the reply
// address. Runs on the supervisor's executor.
func (sv *Supervisor) expireRequest(id uint64) {
	entry, ok := sv.requests.remove(id)
	if !ok {
		return
	}
	sv.deliver(entry.synthesize(gerrors.ErrRequestTimeout))
}

// subscribePoint records a subscription point. A point on an address owned
// by this supervisor is recorded synchronously and confirmed by message; a
// point on a foreign address goes through the external subscription
// protocol.
func (sv *Supervisor) subscribePoint(p Point) {
	if p.Address.owner == sv {
		sv.subs.subscribe(p)
		Send(p.Handler.owner.Address(), &subscriptionConfirmation{point: p})
		return
	}
	Send(p.Address, &externalSubscription{point: p})
}

// unsubscribePoint removes a subscription point. The local case confirms to
// the handler's owning actor; the foreign case goes through the external
// unsubscription protocol, which does not carry completion callbacks.
func (sv *Supervisor) unsubscribePoint(p Point, callback func()) {
	if p.Address.owner == sv {
		Send(p.Handler.owner.Address(), &unsubscriptionConfirmation{point: p, callback: callback})
		return
	}
	if callback != nil {
		panic(gerrors.NewErrProtocolViolation(
			"completion callback on foreign unsubscription of %s", p.Address))
	}
	Send(p.Address, &externalUnsubscription{point: p})
}

// finalize runs when the supervisor's own shutdown finishes: pending
// requests are synthesized with a cancellation error and their timers
// cancelled, the inbound queue is drained to deadletters, and waiters are
// released.
func (sv *Supervisor) finalize() {
	for _, entry := range sv.requests.drain() {
		sv.executor.CancelTimer(entry.timer)
		sv.deliver(entry.synthesize(gerrors.ErrRequestCanceled))
	}

	for {
		msg := sv.inbox.Dequeue()
		if msg == nil {
			break
		}
		sv.publishDeadletter(msg, gerrors.ErrDead.Error())
	}
	sv.inbox.Dispose()

	sv.logger.Infof("supervisor %s shut down", sv.Address())
	close(sv.stopped)
}

// publishEvent publishes a lifecycle event.
func (sv *Supervisor) publishEvent(event any) {
	sv.events.Publish(TopicLifecycle, event)
}

// publishDeadletter publishes an undeliverable message.
func (sv *Supervisor) publishDeadletter(msg *Message, reason string) {
	sv.events.Publish(TopicDeadletter, NewDeadletter(msg, reason))
}

// String returns a printable description of the supervisor.
func (sv *Supervisor) String() string {
	return fmt.Sprintf("Supervisor(%s)", sv.Address())
}
