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
	"time"

	gerrors "github.com/tochemey/rotor/errors"
)

// UnlinkPolicy selects the behavior of a linked server actor when it shuts
// down while clients are still linked. Reserved for the linking protocol.
type UnlinkPolicy int

const (
	// UnlinkPolicyLetClientKnow notifies linked clients and waits for their
	// unlink acknowledgement within the unlink timeout.
	UnlinkPolicyLetClientKnow UnlinkPolicy = iota
	// UnlinkPolicyForce drops the links without waiting for clients.
	UnlinkPolicyForce
)

const (
	// DefaultInitTimeout caps the initialization of an actor unless
	// configured otherwise.
	DefaultInitTimeout = time.Second
	// DefaultShutdownTimeout caps the graceful shutdown of an actor unless
	// configured otherwise.
	DefaultShutdownTimeout = 2 * time.Second
)

// actorConfig carries the construction options of an actor.
type actorConfig struct {
	supervisor      *Supervisor
	initTimeout     time.Duration
	shutdownTimeout time.Duration
	unlinkTimeout   time.Duration
	unlinkPolicy    UnlinkPolicy
	plugins         []Plugin
	initializer     func(*Actor)
	startHook       func(*Actor)
}

func newActorConfig(opts ...Option) *actorConfig {
	config := &actorConfig{
		initTimeout:     DefaultInitTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		unlinkTimeout:   DefaultShutdownTimeout,
		unlinkPolicy:    UnlinkPolicyLetClientKnow,
	}
	for _, opt := range opts {
		opt.Apply(config)
	}
	return config
}

// Validate checks the required options.
func (c *actorConfig) Validate() error {
	if c.supervisor == nil {
		return gerrors.ErrSupervisorRequired
	}
	if c.initTimeout <= 0 || c.shutdownTimeout <= 0 {
		return gerrors.ErrInvalidTimeout
	}
	return nil
}

// Option is the interface that applies a configuration option to an actor
// under construction.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(config *actorConfig)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*actorConfig)

// Apply applies the options to the config
func (f OptionFunc) Apply(c *actorConfig) {
	f(c)
}

// WithSupervisor sets the supervisor the actor is affine to. Required.
func WithSupervisor(sv *Supervisor) Option {
	return OptionFunc(func(c *actorConfig) {
		c.supervisor = sv
	})
}

// WithInitTimeout caps the actor initialization. When exceeded the
// supervisor asks the actor to shut down.
func WithInitTimeout(timeout time.Duration) Option {
	return OptionFunc(func(c *actorConfig) {
		c.initTimeout = timeout
	})
}

// WithStopTimeout caps the graceful shutdown of the actor.
func WithStopTimeout(timeout time.Duration) Option {
	return OptionFunc(func(c *actorConfig) {
		c.shutdownTimeout = timeout
	})
}

// WithUnlinkTimeout sets the unlink timeout. Reserved for the linking
// protocol.
func WithUnlinkTimeout(timeout time.Duration) Option {
	return OptionFunc(func(c *actorConfig) {
		c.unlinkTimeout = timeout
	})
}

// WithUnlinkPolicy sets the unlink policy. Reserved for the linking
// protocol.
func WithUnlinkPolicy(policy UnlinkPolicy) Option {
	return OptionFunc(func(c *actorConfig) {
		c.unlinkPolicy = policy
	})
}

// WithPlugins appends the given plugins to the actor's default plugin chain,
// in order. The actor owns the plugins for its whole lifetime.
func WithPlugins(plugins ...Plugin) Option {
	return OptionFunc(func(c *actorConfig) {
		c.plugins = append(c.plugins, plugins...)
	})
}

// WithInitializer sets a hook invoked on the supervisor's executor when the
// actor starts initializing, before the init chain drains. This is where
// user handlers are typically subscribed.
func WithInitializer(fn func(*Actor)) Option {
	return OptionFunc(func(c *actorConfig) {
		c.initializer = fn
	})
}

// WithStartHook sets a hook invoked on the supervisor's executor when the
// actor becomes operational.
func WithStartHook(fn func(*Actor)) Option {
	return OptionFunc(func(c *actorConfig) {
		c.startHook = fn
	})
}
