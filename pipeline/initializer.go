// File: pipeline/initializer.go
// Package pipeline implements the one-shot channel initializer.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pipeline

import (
	"github.com/momentics/hioload-reactor/api"
)

// Initializer configures a channel's pipeline on the first registration
// event and then removes itself, so configuration runs exactly once and no
// later event is ever intercepted. Removal is guaranteed even when the
// callback fails; the failure still propagates to the caller of
// FireChannelRegistered.
type Initializer struct {
	Base
	fn func(api.Channel) error
}

// NewInitializer wraps a pipeline configuration callback.
func NewInitializer(fn func(api.Channel) error) *Initializer {
	return &Initializer{fn: fn}
}

// ChannelRegistered runs the callback, detaches the initializer and then
// propagates the registration event to the handlers the callback installed.
func (i *Initializer) ChannelRegistered(ctx *Context) error {
	err := func() error {
		defer ctx.Remove()
		return i.fn(ctx.Channel())
	}()
	if err != nil {
		return err
	}
	// The removed context keeps its links, so the event continues with
	// whatever follows the initializer's old position.
	return ctx.FireChannelRegistered()
}
