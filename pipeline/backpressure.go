// File: pipeline/backpressure.go
// Package pipeline implements the two-state flow-control handler.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Backpressure is the sole flow-control boundary between the transport's
// outbound buffer and the inbound read trigger: while the downstream cannot
// absorb writes, upstream read requests are suppressed and coalesced into a
// single pending flag, then replayed exactly once when writability returns.

package pipeline

// Backpressure throttles upstream reads based on downstream writability.
// Per-channel and stateful; owned by the loop goroutine like the rest of
// the pipeline.
type Backpressure struct {
	Base

	// readPending is set only while writable is false: a read arrived
	// while blocked and is owed exactly one replay.
	readPending bool
	writable    bool
}

// NewBackpressure returns a handler in the flowing state.
func NewBackpressure() *Backpressure {
	return &Backpressure{writable: true}
}

// Read forwards the request while flowing and coalesces it into the
// pending flag while blocked.
func (b *Backpressure) Read(ctx *Context) {
	if b.writable {
		ctx.Read()
		return
	}
	b.readPending = true
}

// ChannelWritabilityChanged updates the flow state, honors suppressed read
// demand once, flushes buffered output on the transition to blocked, and
// always re-propagates the notification tail-ward.
func (b *Backpressure) ChannelWritabilityChanged(ctx *Context, writable bool) {
	b.writable = writable
	if writable {
		if b.readPending {
			b.readPending = false
			ctx.Read()
		}
	} else {
		// Drain what is already queued while further reads stay off.
		ctx.Flush()
	}
	ctx.FireChannelWritabilityChanged(writable)
}

// HandlerRemoved issues one final read when demand is still pending, so a
// consumer waiting on it is not silently starved by channel teardown.
func (b *Backpressure) HandlerRemoved(ctx *Context) {
	if b.readPending {
		b.readPending = false
		ctx.Read()
	}
}
