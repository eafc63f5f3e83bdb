// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package poller provides readiness multiplexer implementations behind the
// api.Poller contract: epoll on Linux, a stub elsewhere.
package poller
