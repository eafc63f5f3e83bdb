// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package eventloop implements the single-threaded reactor at the heart of
// hioload-reactor: one readiness multiplexer, one owning goroutine, a
// flush-then-read dispatch cycle and a deferred task queue drained to
// exhaustion after every readiness batch.
//
// Every mutating method asserts loop affinity and panics on violation —
// correctness of channel and queue state depends on single-goroutine
// ownership, and tolerating a cross-goroutine call would mask a data race.
// The one sanctioned cross-goroutine entry point is Submit, which hands a
// task over through a mutex-guarded ingress slice and wakes the blocked
// multiplexer wait.
package eventloop
