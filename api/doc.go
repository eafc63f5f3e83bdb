// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package api defines the platform-neutral contracts of the hioload-reactor
// core: channels, readiness multiplexing and the library error taxonomy.
// Implementations live in the topic packages (poller, eventloop, pipeline).
package api
