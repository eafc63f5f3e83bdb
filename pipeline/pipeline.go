// File: pipeline/pipeline.go
// Package pipeline implements the ordered handler chain for a channel.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Inbound events (channel registered, writability changed) travel head to
// tail; outbound requests (read, flush) travel tail to head and terminate
// in the Invoker that binds the pipeline to its channel and loop.

package pipeline

import (
	"github.com/momentics/hioload-reactor/api"
)

// Invoker receives outbound requests that reached the head of the pipeline.
// It is typically backed by the channel and its event loop.
type Invoker interface {
	// InvokeRead asks the loop to pull more inbound data.
	InvokeRead()

	// InvokeFlush asks the loop to write out buffered outbound data.
	InvokeFlush()
}

// Handler is the capability interface of a pipeline participant: one method
// per event kind. Embed Base to inherit pass-through behavior and override
// only the events of interest.
type Handler interface {
	// ChannelRegistered is the inbound registration event. Errors
	// propagate to the caller of FireChannelRegistered.
	ChannelRegistered(ctx *Context) error

	// ChannelWritabilityChanged is the inbound flow-control notification.
	ChannelWritabilityChanged(ctx *Context, writable bool)

	// Read intercepts an outbound read request travelling head-ward.
	Read(ctx *Context)

	// Flush intercepts an outbound flush request travelling head-ward.
	Flush(ctx *Context)

	// HandlerRemoved fires after the handler was unlinked from the chain.
	HandlerRemoved(ctx *Context)
}

// Base is the embeddable pass-through handler.
type Base struct{}

func (Base) ChannelRegistered(ctx *Context) error { return ctx.FireChannelRegistered() }

func (Base) ChannelWritabilityChanged(ctx *Context, writable bool) {
	ctx.FireChannelWritabilityChanged(writable)
}

func (Base) Read(ctx *Context)  { ctx.Read() }
func (Base) Flush(ctx *Context) { ctx.Flush() }

func (Base) HandlerRemoved(*Context) {}

// Context is a handler's position in the chain. A removed context keeps its
// own links so lifecycle callbacks can still issue requests through the
// surviving neighbors.
type Context struct {
	name    string
	handler Handler
	prev    *Context
	next    *Context
	pipe    *Pipeline
	removed bool
}

// Name returns the registration name of the handler.
func (c *Context) Name() string { return c.name }

// Pipeline returns the owning pipeline.
func (c *Context) Pipeline() *Pipeline { return c.pipe }

// Channel returns the channel this pipeline belongs to.
func (c *Context) Channel() api.Channel { return c.pipe.channel }

// FireChannelRegistered propagates the registration event to the next
// handler toward the tail.
func (c *Context) FireChannelRegistered() error {
	n := c.next
	return n.handler.ChannelRegistered(n)
}

// FireChannelWritabilityChanged propagates the writability notification to
// the next handler toward the tail.
func (c *Context) FireChannelWritabilityChanged(writable bool) {
	n := c.next
	n.handler.ChannelWritabilityChanged(n, writable)
}

// Read forwards an outbound read request to the previous handler toward the
// head.
func (c *Context) Read() {
	p := c.prev
	p.handler.Read(p)
}

// Flush forwards an outbound flush request to the previous handler toward
// the head.
func (c *Context) Flush() {
	p := c.prev
	p.handler.Flush(p)
}

// Remove unlinks this context's handler from the pipeline.
func (c *Context) Remove() { c.pipe.remove(c) }

// Pipeline is the ordered handler chain of one channel, delimited by head
// and tail sentinels.
type Pipeline struct {
	channel api.Channel
	invoker Invoker
	head    *Context
	tail    *Context
}

// New creates an empty pipeline bound to ch and its outbound invoker.
func New(ch api.Channel, invoker Invoker) *Pipeline {
	p := &Pipeline{channel: ch, invoker: invoker}
	p.head = &Context{name: "HEAD", pipe: p, handler: headOps{}}
	p.tail = &Context{name: "TAIL", pipe: p, handler: tailOps{}}
	p.head.next = p.tail
	p.tail.prev = p.head
	return p
}

// Channel returns the channel this pipeline belongs to.
func (p *Pipeline) Channel() api.Channel { return p.channel }

// AddLast appends a handler just before the tail sentinel.
func (p *Pipeline) AddLast(name string, h Handler) *Context {
	ctx := &Context{name: name, handler: h, pipe: p}
	prev := p.tail.prev
	ctx.prev = prev
	ctx.next = p.tail
	prev.next = ctx
	p.tail.prev = ctx
	return ctx
}

// Remove unlinks the first occurrence of h. Reports whether it was found.
func (p *Pipeline) Remove(h Handler) bool {
	for ctx := p.head.next; ctx != p.tail; ctx = ctx.next {
		if ctx.handler == h {
			p.remove(ctx)
			return true
		}
	}
	return false
}

func (p *Pipeline) remove(ctx *Context) {
	if ctx.removed || ctx == p.head || ctx == p.tail {
		return
	}
	ctx.removed = true
	ctx.prev.next = ctx.next
	ctx.next.prev = ctx.prev
	ctx.handler.HandlerRemoved(ctx)
}

// FireChannelRegistered dispatches the registration event from the head.
func (p *Pipeline) FireChannelRegistered() error {
	return p.head.FireChannelRegistered()
}

// FireChannelWritabilityChanged dispatches a writability notification from
// the head.
func (p *Pipeline) FireChannelWritabilityChanged(writable bool) {
	p.head.FireChannelWritabilityChanged(writable)
}

// Read issues an outbound read request from the tail.
func (p *Pipeline) Read() { p.tail.Read() }

// Flush issues an outbound flush request from the tail.
func (p *Pipeline) Flush() { p.tail.Flush() }

// headOps terminates outbound requests in the invoker.
type headOps struct{ Base }

func (headOps) Read(ctx *Context)  { ctx.pipe.invoker.InvokeRead() }
func (headOps) Flush(ctx *Context) { ctx.pipe.invoker.InvokeFlush() }

// tailOps discards inbound events that no handler consumed.
type tailOps struct{ Base }

func (tailOps) ChannelRegistered(*Context) error         { return nil }
func (tailOps) ChannelWritabilityChanged(*Context, bool) {}
