// File: api/poller.go
// Author: momentics <momentics@gmail.com>
//
// Defines the abstract interface for OS readiness multiplexers
// (epoll, kqueue, IOCP-style backends) consumed by the event loop.

package api

// Interest is a bitmask of readiness kinds a channel wants reported.
type Interest uint32

const (
	// InterestRead requests readability notifications.
	InterestRead Interest = 1 << iota
	// InterestWrite requests writability notifications.
	InterestWrite
	// InterestConnect requests connect-completion notifications.
	// Poll-based backends surface this as writability.
	InterestConnect
)

// Has reports whether every bit of o is set in i.
func (i Interest) Has(o Interest) bool { return i&o == o }

// ReadyEvent is one readiness notification returned by a Poller wait cycle.
// Attachment is the opaque value supplied at registration time and must
// resolve back to the originating channel.
type ReadyEvent struct {
	Attachment any
	Readable   bool
	Writable   bool
}

// Poller is a readiness multiplexer. Register, Reregister, Deregister and
// Wait must only be called from the goroutine that owns the event loop;
// Wakeup is the single cross-goroutine entry point and unblocks a pending
// Wait.
type Poller interface {
	// Register adds fd to the watch set with the given interest bits.
	Register(fd uintptr, interest Interest, attachment any) error

	// Reregister replaces the interest bits and attachment of an fd
	// already in the watch set. Used whenever a channel's interest
	// set changes.
	Reregister(fd uintptr, interest Interest, attachment any) error

	// Deregister removes fd from the watch set.
	Deregister(fd uintptr) error

	// Wait blocks until at least one readiness event is available and
	// fills events. Returns the number of events written. A wake-up
	// delivered via Wakeup may yield n == 0.
	Wait(events []ReadyEvent) (int, error)

	// Wakeup unblocks a concurrent Wait. Safe from any goroutine.
	Wakeup() error

	// Close releases the backend. Pending and future Wait calls fail.
	Close() error
}
