// File: eventloop/options.go
// Package eventloop defines functional options for loop construction.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package eventloop

import (
	"github.com/rs/zerolog"

	"github.com/momentics/hioload-reactor/api"
)

// Option customizes event loop construction.
type Option func(*EventLoop)

// WithLogger attaches a structured logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(l *EventLoop) {
		l.log = log
	}
}

// WithDeregisterErrorHook observes failures of the defensive deregistration
// the loop performs on already-closed channels. Those failures are
// best-effort cleanup and never propagate; the hook keeps them from
// disappearing silently.
func WithDeregisterErrorHook(hook func(api.Channel, error)) Option {
	return func(l *EventLoop) {
		l.deregHook = hook
	}
}

// WithWaitBatchSize overrides the readiness batch capacity per wait cycle.
func WithWaitBatchSize(n int) Option {
	return func(l *EventLoop) {
		if n > 0 {
			l.batch = make([]api.ReadyEvent, n)
		}
	}
}
