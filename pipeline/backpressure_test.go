// Copyright 2026 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// backpressure_test.go — flow-control protocol of the Backpressure handler.
package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-reactor/fake"
	"github.com/momentics/hioload-reactor/pipeline"
)

// writabilityRecorder observes notifications propagated past the
// backpressure handler.
type writabilityRecorder struct {
	pipeline.Base
	events []bool
}

func (r *writabilityRecorder) ChannelWritabilityChanged(ctx *pipeline.Context, writable bool) {
	r.events = append(r.events, writable)
	ctx.FireChannelWritabilityChanged(writable)
}

func newBackpressurePipeline() (*pipeline.Pipeline, *pipeline.Backpressure, *writabilityRecorder, *fake.Invoker) {
	inv := &fake.Invoker{}
	p := pipeline.New(&fake.Channel{FD: 1, Open: true}, inv)
	bp := pipeline.NewBackpressure()
	rec := &writabilityRecorder{}
	p.AddLast("backpressure", bp)
	p.AddLast("recorder", rec)
	return p, bp, rec, inv
}

func TestBackpressure_FlowingForwardsReads(t *testing.T) {
	p, _, _, inv := newBackpressurePipeline()

	p.Read()
	p.Read()
	assert.Equal(t, 2, inv.Reads)
	assert.Equal(t, 0, inv.Flushes)
}

func TestBackpressure_BlockedReadsCoalesce(t *testing.T) {
	p, _, _, inv := newBackpressurePipeline()

	p.FireChannelWritabilityChanged(false)
	for i := 0; i < 5; i++ {
		p.Read()
	}
	require.Equal(t, 0, inv.Reads, "reads must be suppressed while blocked")

	p.FireChannelWritabilityChanged(true)
	assert.Equal(t, 1, inv.Reads, "suppressed demand is honored exactly once")

	// No replay on later toggles without new demand.
	p.FireChannelWritabilityChanged(false)
	p.FireChannelWritabilityChanged(true)
	assert.Equal(t, 1, inv.Reads)
}

func TestBackpressure_BlockTriggersSingleFlush(t *testing.T) {
	p, _, _, inv := newBackpressurePipeline()

	p.FireChannelWritabilityChanged(false)
	assert.Equal(t, 1, inv.Flushes)

	p.FireChannelWritabilityChanged(true)
	assert.Equal(t, 1, inv.Flushes, "unblocking must not flush")

	p.FireChannelWritabilityChanged(false)
	assert.Equal(t, 2, inv.Flushes)
}

func TestBackpressure_UnblockWithoutPendingIssuesNoRead(t *testing.T) {
	p, _, _, inv := newBackpressurePipeline()

	p.FireChannelWritabilityChanged(false)
	p.FireChannelWritabilityChanged(true)
	assert.Equal(t, 0, inv.Reads)
}

func TestBackpressure_NotificationsAlwaysPropagate(t *testing.T) {
	p, _, rec, _ := newBackpressurePipeline()

	p.FireChannelWritabilityChanged(false)
	p.Read()
	p.FireChannelWritabilityChanged(true)
	p.FireChannelWritabilityChanged(false)

	assert.Equal(t, []bool{false, true, false}, rec.events,
		"every notification propagates exactly once regardless of state transition")
}

func TestBackpressure_RemovalReplaysPendingRead(t *testing.T) {
	p, bp, _, inv := newBackpressurePipeline()

	p.FireChannelWritabilityChanged(false)
	p.Read()
	require.Equal(t, 0, inv.Reads)

	require.True(t, p.Remove(bp))
	assert.Equal(t, 1, inv.Reads, "pending demand must not be starved by teardown")
}

func TestBackpressure_RemovalWithoutPendingIsSilent(t *testing.T) {
	p, bp, _, inv := newBackpressurePipeline()

	require.True(t, p.Remove(bp))
	assert.Equal(t, 0, inv.Reads)
}
