// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: Apache-2.0

// Package fake provides test doubles for the reactor core: a scripted
// readiness multiplexer, a recording channel and a recording invoker.
package fake

import (
	"errors"
	"sync/atomic"

	"github.com/momentics/hioload-reactor/api"
)

// ErrExhausted is returned by Poller.Wait once every scripted batch has
// been consumed, giving tests a deterministic way out of Run.
var ErrExhausted = errors.New("fake: poller batches exhausted")

// Poller replays scripted readiness batches and records registrations.
type Poller struct {
	Batches [][]api.ReadyEvent

	Registered  map[uintptr]api.Interest
	Deregisters []uintptr

	// Error injection for registration paths.
	RegisterErr   error
	DeregisterErr error

	Wakeups int32
	Closed  bool
}

// NewPoller returns a poller that will replay the given batches in order.
func NewPoller(batches ...[]api.ReadyEvent) *Poller {
	return &Poller{
		Batches:    batches,
		Registered: make(map[uintptr]api.Interest),
	}
}

func (p *Poller) Register(fd uintptr, interest api.Interest, _ any) error {
	if p.RegisterErr != nil {
		return p.RegisterErr
	}
	p.Registered[fd] = interest
	return nil
}

func (p *Poller) Reregister(fd uintptr, interest api.Interest, _ any) error {
	p.Registered[fd] = interest
	return nil
}

func (p *Poller) Deregister(fd uintptr) error {
	p.Deregisters = append(p.Deregisters, fd)
	delete(p.Registered, fd)
	return p.DeregisterErr
}

func (p *Poller) Wait(events []api.ReadyEvent) (int, error) {
	if len(p.Batches) == 0 {
		return 0, ErrExhausted
	}
	batch := p.Batches[0]
	p.Batches = p.Batches[1:]
	n := copy(events, batch)
	return n, nil
}

func (p *Poller) Wakeup() error {
	atomic.AddInt32(&p.Wakeups, 1)
	return nil
}

func (p *Poller) Close() error {
	p.Closed = true
	return nil
}
