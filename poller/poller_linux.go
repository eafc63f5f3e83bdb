//go:build linux
// +build linux

// File: poller/poller_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7)-based readiness multiplexer. Level-triggered: the event loop
// reregisters channels whenever their interest set changes, so edge semantics
// are neither needed nor wanted here. An eventfd doubles as the cross-thread
// wake-up channel and is drained transparently inside Wait.

package poller

import (
	"encoding/binary"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-reactor/api"
)

type epollPoller struct {
	epfd   int
	wakeFd int

	// attachments maps a registered fd back to its opaque attachment.
	// Mutated only from the owning loop goroutine, like every Poller
	// method except Wakeup.
	attachments map[uintptr]any
}

// New constructs the platform multiplexer for Linux.
func New() (api.Poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, api.NewError(api.ErrCodeInternal, "poller: epoll create").WithCause(err)
	}
	wakeFd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		_ = unix.Close(epfd)
		return nil, api.NewError(api.ErrCodeInternal, "poller: eventfd").WithCause(err)
	}
	p := &epollPoller{
		epfd:        epfd,
		wakeFd:      wakeFd,
		attachments: make(map[uintptr]any),
	}
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(wakeFd)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, wakeFd, &ev); err != nil {
		_ = unix.Close(wakeFd)
		_ = unix.Close(epfd)
		return nil, api.NewError(api.ErrCodeInternal, "poller: register wake fd").
			WithContext("fd", wakeFd).WithCause(err)
	}
	return p, nil
}

// interestToEpoll maps the portable interest bits onto epoll event bits.
// Connect readiness surfaces as writability on poll-based backends.
func interestToEpoll(interest api.Interest) uint32 {
	var events uint32
	if interest.Has(api.InterestRead) {
		events |= unix.EPOLLIN
	}
	if interest&(api.InterestWrite|api.InterestConnect) != 0 {
		events |= unix.EPOLLOUT
	}
	return events
}

// Register adds fd to the epoll watch set.
func (p *epollPoller) Register(fd uintptr, interest api.Interest, attachment any) error {
	if _, ok := p.attachments[fd]; ok {
		return api.ErrAlreadyRegistered
	}
	ev := unix.EpollEvent{Events: interestToEpoll(interest), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, int(fd), &ev); err != nil {
		return api.NewError(api.ErrCodeInternal, "poller: epoll ctl add").
			WithContext("fd", fd).WithCause(err)
	}
	p.attachments[fd] = attachment
	return nil
}

// Reregister replaces the interest set and attachment of a watched fd.
func (p *epollPoller) Reregister(fd uintptr, interest api.Interest, attachment any) error {
	if _, ok := p.attachments[fd]; !ok {
		return api.ErrNotRegistered
	}
	ev := unix.EpollEvent{Events: interestToEpoll(interest), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, int(fd), &ev); err != nil {
		return api.NewError(api.ErrCodeInternal, "poller: epoll ctl mod").
			WithContext("fd", fd).WithCause(err)
	}
	p.attachments[fd] = attachment
	return nil
}

// Deregister removes fd from the epoll watch set.
func (p *epollPoller) Deregister(fd uintptr) error {
	if _, ok := p.attachments[fd]; !ok {
		return api.ErrNotRegistered
	}
	delete(p.attachments, fd)
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, int(fd), nil); err != nil {
		return api.NewError(api.ErrCodeInternal, "poller: epoll ctl del").
			WithContext("fd", fd).WithCause(err)
	}
	return nil
}

// Wait blocks until readiness events arrive and fills the result into events.
// EINTR and pure wake-ups yield n == 0 without error.
func (p *epollPoller) Wait(events []api.ReadyEvent) (int, error) {
	raw := make([]unix.EpollEvent, len(events))
	n, err := unix.EpollWait(p.epfd, raw, -1)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, api.NewError(api.ErrCodeInternal, "poller: epoll wait").WithCause(err)
	}
	out := 0
	for i := 0; i < n; i++ {
		fd := uintptr(raw[i].Fd)
		if int(fd) == p.wakeFd {
			p.drainWake()
			continue
		}
		attachment, ok := p.attachments[fd]
		if !ok {
			// Raced with a deregistration in the same cycle.
			continue
		}
		events[out] = api.ReadyEvent{
			Attachment: attachment,
			// Error and hang-up conditions are reported as readability
			// so the channel's read path observes EOF and closes.
			Readable: raw[i].Events&(unix.EPOLLIN|unix.EPOLLERR|unix.EPOLLHUP) != 0,
			Writable: raw[i].Events&unix.EPOLLOUT != 0,
		}
		out++
	}
	return out, nil
}

// Wakeup unblocks a concurrent Wait. Safe from any goroutine: an eventfd
// write is atomic and the counter coalesces pending wake-ups.
func (p *epollPoller) Wakeup() error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)
	if _, err := unix.Write(p.wakeFd, buf[:]); err != nil && err != unix.EAGAIN {
		return api.NewError(api.ErrCodeInternal, "poller: wakeup").WithCause(err)
	}
	return nil
}

// drainWake resets the eventfd counter so level-triggered epoll stops
// reporting it.
func (p *epollPoller) drainWake() {
	var buf [8]byte
	_, _ = unix.Read(p.wakeFd, buf[:])
}

// Close releases the epoll instance and the wake fd.
func (p *epollPoller) Close() error {
	werr := unix.Close(p.wakeFd)
	if err := unix.Close(p.epfd); err != nil {
		return err
	}
	return werr
}
