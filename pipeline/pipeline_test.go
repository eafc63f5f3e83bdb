// Copyright 2026 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// pipeline_test.go — traversal and removal semantics of the handler chain.
package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-reactor/fake"
	"github.com/momentics/hioload-reactor/pipeline"
)

type traceHandler struct {
	pipeline.Base
	name  string
	trace *[]string
}

func (h *traceHandler) ChannelRegistered(ctx *pipeline.Context) error {
	*h.trace = append(*h.trace, h.name)
	return ctx.FireChannelRegistered()
}

func (h *traceHandler) Read(ctx *pipeline.Context) {
	*h.trace = append(*h.trace, h.name+":read")
	ctx.Read()
}

func TestPipeline_InboundHeadToTailOutboundTailToHead(t *testing.T) {
	inv := &fake.Invoker{}
	ch := &fake.Channel{FD: 3, Open: true}
	p := pipeline.New(ch, inv)

	var trace []string
	p.AddLast("a", &traceHandler{name: "a", trace: &trace})
	p.AddLast("b", &traceHandler{name: "b", trace: &trace})

	require.NoError(t, p.FireChannelRegistered())
	assert.Equal(t, []string{"a", "b"}, trace, "inbound events run head to tail")

	trace = nil
	p.Read()
	assert.Equal(t, []string{"b:read", "a:read"}, trace, "outbound requests run tail to head")
	assert.Equal(t, 1, inv.Reads, "the request terminates in the invoker")
}

func TestPipeline_OutboundReachesInvokerThroughEmptyChain(t *testing.T) {
	inv := &fake.Invoker{}
	p := pipeline.New(&fake.Channel{FD: 3, Open: true}, inv)

	p.Read()
	p.Flush()
	assert.Equal(t, 1, inv.Reads)
	assert.Equal(t, 1, inv.Flushes)
}

func TestPipeline_RemoveUnlinksHandler(t *testing.T) {
	p := pipeline.New(&fake.Channel{FD: 3, Open: true}, &fake.Invoker{})

	var trace []string
	a := &traceHandler{name: "a", trace: &trace}
	p.AddLast("a", a)

	require.True(t, p.Remove(a))
	require.False(t, p.Remove(a), "second removal is a no-op")

	require.NoError(t, p.FireChannelRegistered())
	assert.Empty(t, trace)
}

func TestPipeline_ChannelAccessor(t *testing.T) {
	ch := &fake.Channel{FD: 3, Open: true}
	p := pipeline.New(ch, &fake.Invoker{})
	assert.Same(t, ch, p.Channel().(*fake.Channel))
}
