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

// Registry is the name directory actor: it maps unique service names to
// service addresses and answers discovery requests. All access goes through
// messages, so the registry can live on any supervisor and be shared across
// supervisors.
type Registry struct {
	actor    *Actor
	services map[string]*Address
	names    map[*Address][]string
}

// NewRegistry constructs a registry actor on the given supervisor. The
// returned registry must be spawned like any actor:
//
//	reg, _ := actor.NewRegistry(sv)
//	sv.Spawn(reg.Actor())
func NewRegistry(sv *Supervisor, opts ...Option) (*Registry, error) {
	r := &Registry{
		services: make(map[string]*Address),
		names:    make(map[*Address][]string),
	}

	opts = append(opts, WithSupervisor(sv), WithInitializer(func(a *Actor) {
		addr := a.Address()
		On(a, addr, r.onRegister)
		On(a, addr, r.onDiscover)
		On(a, addr, r.onDeregisterService)
		On(a, addr, r.onDeregistrationNotify)
	}))

	a, err := New(opts...)
	if err != nil {
		return nil, err
	}
	r.actor = a
	return r, nil
}

// Actor returns the underlying actor.
func (r *Registry) Actor() *Actor {
	return r.actor
}

// Address returns the registry's primary address, nil before the registry is
// spawned.
func (r *Registry) Address() *Address {
	return r.actor.Address()
}

func (r *Registry) onRegister(_ *Message, req *Request[*RegisterService]) {
	name := req.Payload().Name
	service := req.Payload().Service
	if _, exists := r.services[name]; exists {
		ReplyErr[*RegisterService, *RegistrationAck](req, gerrors.NewErrDuplicateService(name))
		return
	}
	r.services[name] = service
	r.names[service] = append(r.names[service], name)
	Reply(req, &RegistrationAck{})
}

func (r *Registry) onDiscover(_ *Message, req *Request[*DiscoverService]) {
	name := req.Payload().Name
	service, ok := r.services[name]
	if !ok {
		ReplyErr[*DiscoverService, *ServiceFound](req, gerrors.NewErrUnknownService(name))
		return
	}
	Reply(req, &ServiceFound{Service: service})
}

func (r *Registry) onDeregisterService(_ *Message, p *DeregisterService) {
	service, ok := r.services[p.Name]
	if !ok {
		return
	}
	delete(r.services, p.Name)
	r.dropName(service, p.Name)
}

func (r *Registry) onDeregistrationNotify(_ *Message, p *DeregistrationNotify) {
	for _, name := range r.names[p.Service] {
		delete(r.services, name)
	}
	delete(r.names, p.Service)
}

func (r *Registry) dropName(service *Address, name string) {
	names := r.names[service]
	for i, n := range names {
		if n == name {
			r.names[service] = append(names[:i], names[i+1:]...)
			break
		}
	}
	if len(r.names[service]) == 0 {
		delete(r.names, service)
	}
}
