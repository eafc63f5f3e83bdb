//go:build !linux
// +build !linux

// File: poller/poller_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package poller

import (
	"github.com/momentics/hioload-reactor/api"
)

// New returns an error for unsupported platforms.
func New() (api.Poller, error) {
	return nil, api.NewError(api.ErrCodeNotSupported, "poller: this platform is not supported")
}
