// File: api/channel.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Channel contract consumed by the event loop. A channel is one registered,
// stateful I/O endpoint owned by exactly one event loop for its lifetime.

package api

// Channel abstracts a single registered I/O endpoint.
//
// FlushFromLoop and ReadFromLoop perform the actual non-blocking I/O and may
// flip the open state; they must only be invoked from the owning loop
// goroutine. I/O errors are reported through the channel's own pipeline —
// the returned error exists for observability, and the loop reacts solely to
// the IsOpen transition.
type Channel interface {
	// Fd returns the underlying OS-level descriptor or handle.
	Fd() uintptr

	// Interest returns the readiness bits the multiplexer should watch.
	Interest() Interest

	// IsOpen reports whether the channel is still usable.
	IsOpen() bool

	// FlushFromLoop writes out buffered outbound data.
	FlushFromLoop() error

	// ReadFromLoop pulls inbound data from the socket.
	ReadFromLoop() error
}
