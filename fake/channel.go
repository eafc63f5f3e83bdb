// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: Apache-2.0

package fake

import (
	"github.com/momentics/hioload-reactor/api"
)

// Channel records the loop-side I/O calls made against it. FlushFn and
// ReadFn, when set, run after the call is recorded and may flip Open or
// deregister the channel, mimicking transport behavior.
type Channel struct {
	FD          uintptr
	Open        bool
	InterestSet api.Interest

	Calls   []string
	FlushFn func(*Channel) error
	ReadFn  func(*Channel) error
}

func (c *Channel) Fd() uintptr { return c.FD }

func (c *Channel) Interest() api.Interest { return c.InterestSet }

func (c *Channel) IsOpen() bool { return c.Open }

func (c *Channel) FlushFromLoop() error {
	c.Calls = append(c.Calls, "flush")
	if c.FlushFn != nil {
		return c.FlushFn(c)
	}
	return nil
}

func (c *Channel) ReadFromLoop() error {
	c.Calls = append(c.Calls, "read")
	if c.ReadFn != nil {
		return c.ReadFn(c)
	}
	return nil
}
