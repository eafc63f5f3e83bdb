// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package pipeline implements the per-channel handler chain subset the
// reactor core depends on: ordered handler contexts, inbound event and
// outbound request traversal, the backpressure flow-control handler and the
// one-shot pipeline initializer. Pipelines are owned by the channel's event
// loop goroutine and are not safe for concurrent use.
package pipeline
