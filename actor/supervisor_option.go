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
	"github.com/tochemey/rotor/eventstream"
	"github.com/tochemey/rotor/executor"
	"github.com/tochemey/rotor/log"
)

// supervisorConfig carries the construction options of a supervisor.
type supervisorConfig struct {
	executor        executor.Executor
	shutdownTimeout time.Duration
	initTimeout     time.Duration
	parent          *Supervisor
	logger          log.Logger
	events          eventstream.Stream
	inbox           Inbox
}

func newSupervisorConfig(opts ...SupervisorOption) *supervisorConfig {
	config := &supervisorConfig{
		initTimeout: DefaultInitTimeout,
		logger:      log.DefaultLogger,
		inbox:       newUnboundedInbox(),
	}
	for _, opt := range opts {
		opt.Apply(config)
	}
	return config
}

// Validate checks the required options.
func (c *supervisorConfig) Validate() error {
	if c.executor == nil {
		return gerrors.ErrExecutorRequired
	}
	if c.shutdownTimeout <= 0 {
		return gerrors.ErrShutdownTimeoutRequired
	}
	if c.initTimeout <= 0 {
		return gerrors.ErrInvalidTimeout
	}
	return nil
}

// SupervisorOption is the interface that applies a configuration option to a
// supervisor under construction.
type SupervisorOption interface {
	// Apply sets the SupervisorOption value of a config.
	Apply(config *supervisorConfig)
}

// enforce compilation error
var _ SupervisorOption = SupervisorOptionFunc(nil)

// SupervisorOptionFunc implements the SupervisorOption interface.
type SupervisorOptionFunc func(*supervisorConfig)

// Apply applies the options to the config
func (f SupervisorOptionFunc) Apply(c *supervisorConfig) {
	f(c)
}

// WithExecutor binds the supervisor to the given executor. Required.
func WithExecutor(exec executor.Executor) SupervisorOption {
	return SupervisorOptionFunc(func(c *supervisorConfig) {
		c.executor = exec
	})
}

// WithShutdownTimeout caps the graceful shutdown wall time of the supervisor
// before escalation. Required.
func WithShutdownTimeout(timeout time.Duration) SupervisorOption {
	return SupervisorOptionFunc(func(c *supervisorConfig) {
		c.shutdownTimeout = timeout
	})
}

// WithParent makes the new supervisor behave as a child actor of the given
// parent.
func WithParent(parent *Supervisor) SupervisorOption {
	return SupervisorOptionFunc(func(c *supervisorConfig) {
		c.parent = parent
	})
}

// WithSelfInitTimeout caps the supervisor's own initialization.
func WithSelfInitTimeout(timeout time.Duration) SupervisorOption {
	return SupervisorOptionFunc(func(c *supervisorConfig) {
		c.initTimeout = timeout
	})
}

// WithLogger sets the supervisor logger.
func WithLogger(logger log.Logger) SupervisorOption {
	return SupervisorOptionFunc(func(c *supervisorConfig) {
		c.logger = logger
	})
}

// WithEventStream sets the stream lifecycle events and deadletters are
// published to. A child supervisor inherits its parent's stream by default.
func WithEventStream(stream eventstream.Stream) SupervisorOption {
	return SupervisorOptionFunc(func(c *supervisorConfig) {
		c.events = stream
	})
}

// WithBoundedInbox replaces the default unbounded inbox with a bounded one
// of the given capacity, putting blocking backpressure on producers.
func WithBoundedInbox(capacity int) SupervisorOption {
	return SupervisorOptionFunc(func(c *supervisorConfig) {
		c.inbox = NewBoundedInbox(capacity)
	})
}

// WithInbox sets a custom inbox implementation.
func WithInbox(inbox Inbox) SupervisorOption {
	return SupervisorOptionFunc(func(c *supervisorConfig) {
		c.inbox = inbox
	})
}
