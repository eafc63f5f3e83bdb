// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package concurrency holds the single-threaded building blocks of the event
// loop: the deferred task queue and goroutine identity capture.
package concurrency
