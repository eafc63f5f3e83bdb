// File: eventloop/eventloop.go
// Package eventloop implements the single-threaded reactor core.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package eventloop

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/momentics/hioload-reactor/api"
	"github.com/momentics/hioload-reactor/internal/concurrency"
	"github.com/momentics/hioload-reactor/poller"
)

// Task is a zero-argument deferred action executed on the loop goroutine.
type Task func()

const defaultWaitBatch = 128

// EventLoop is a single-threaded reactor. It owns exactly one readiness
// multiplexer, is bound to the goroutine that constructed it, and is the
// sole component allowed to mutate channel registration state or invoke
// channel I/O.
type EventLoop struct {
	poller api.Poller

	// owner is the ID of the constructing goroutine, fixed for the
	// loop's lifetime.
	owner uint64

	tasks      *concurrency.TaskQueue
	registered map[uintptr]api.Channel
	batch      []api.ReadyEvent

	// ingress is the cross-goroutine submission path: guarded by
	// ingressMu, spliced into the task queue at the head of the next
	// drain. Everything else on this struct is loop-goroutine-only.
	ingressMu sync.Mutex
	ingress   []Task

	closed atomic.Bool

	log       zerolog.Logger
	deregHook func(api.Channel, error)
}

// New constructs a loop around the platform multiplexer. The constructing
// goroutine becomes the owner: it is the only goroutine permitted to call
// Run and the mutating methods.
func New(opts ...Option) (*EventLoop, error) {
	p, err := poller.New()
	if err != nil {
		return nil, err
	}
	return NewWithPoller(p, opts...), nil
}

// NewWithPoller constructs a loop around an externally supplied multiplexer.
func NewWithPoller(p api.Poller, opts ...Option) *EventLoop {
	l := &EventLoop{
		poller:     p,
		owner:      concurrency.GoroutineID(),
		tasks:      concurrency.NewTaskQueue(),
		registered: make(map[uintptr]api.Channel),
		batch:      make([]api.ReadyEvent, defaultWaitBatch),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// InEventLoop reports whether the calling goroutine owns this loop. This is
// the single synchronization primitive the design relies on.
func (l *EventLoop) InEventLoop() bool {
	return concurrency.GoroutineID() == l.owner
}

func (l *EventLoop) assertInLoop(op string) {
	if !l.InEventLoop() {
		panic("reactor: " + op + " called off the event-loop goroutine")
	}
}

// Register adds the channel to the multiplexer watch set with its current
// interest bits, keyed by the channel itself as attachment.
func (l *EventLoop) Register(ch api.Channel) error {
	l.assertInLoop("Register")
	if l.closed.Load() {
		return api.ErrLoopClosed
	}
	if err := l.poller.Register(ch.Fd(), ch.Interest(), ch); err != nil {
		return err
	}
	l.registered[ch.Fd()] = ch
	return nil
}

// Deregister removes the channel from the multiplexer watch set.
func (l *EventLoop) Deregister(ch api.Channel) error {
	l.assertInLoop("Deregister")
	if l.closed.Load() {
		return api.ErrLoopClosed
	}
	delete(l.registered, ch.Fd())
	return l.poller.Deregister(ch.Fd())
}

// Reregister refreshes the channel's interest bits with the multiplexer.
// Called whenever the interest set changes, e.g. after backpressure
// toggles write interest.
func (l *EventLoop) Reregister(ch api.Channel) error {
	l.assertInLoop("Reregister")
	if l.closed.Load() {
		return api.ErrLoopClosed
	}
	return l.poller.Reregister(ch.Fd(), ch.Interest(), ch)
}

// Execute appends a task for execution after the current readiness batch.
// Loop-goroutine-only; cross-goroutine callers use Submit.
func (l *EventLoop) Execute(task Task) {
	l.assertInLoop("Execute")
	l.tasks.Push(concurrency.Task(task))
}

// Submit hands a task over from any goroutine and wakes the blocked
// multiplexer wait. Submitted tasks join the FIFO queue ahead of the next
// drain, in submission order.
func (l *EventLoop) Submit(task Task) error {
	if l.closed.Load() {
		return api.ErrLoopClosed
	}
	l.ingressMu.Lock()
	l.ingress = append(l.ingress, task)
	l.ingressMu.Unlock()
	return l.poller.Wakeup()
}

// Run is the reactor main loop. It blocks on the multiplexer, dispatches
// each readiness batch channel by channel (flush before read, openness
// re-checked after every step) and then drains the task queue to
// exhaustion. It returns nil after Close and an error only when the
// multiplexer wait fails.
func (l *EventLoop) Run() error {
	l.assertInLoop("Run")
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for {
		if l.closed.Load() {
			return nil
		}
		n, err := l.poller.Wait(l.batch)
		if err != nil {
			if l.closed.Load() {
				return nil
			}
			return fmt.Errorf("reactor: wait: %w", err)
		}
		for i := 0; i < n; i++ {
			l.processEvent(l.batch[i])
		}
		l.drainTasks()
	}
}

// processEvent dispatches one readiness event to its channel.
func (l *EventLoop) processEvent(ev api.ReadyEvent) {
	ch, ok := ev.Attachment.(api.Channel)
	if !ok {
		panic(fmt.Sprintf("reactor: readiness attachment %T does not resolve to a channel", ev.Attachment))
	}
	if !ch.IsOpen() {
		l.defensiveDeregister(ch)
		return
	}
	if ev.Writable {
		if err := ch.FlushFromLoop(); err != nil {
			l.log.Debug().Err(err).Uint64("fd", uint64(ch.Fd())).Msg("flush from loop")
		}
		if !ch.IsOpen() {
			// The flush closed the channel; skip the read step.
			l.assertConsistent(ch)
			return
		}
	}
	if ev.Readable {
		if err := ch.ReadFromLoop(); err != nil {
			l.log.Debug().Err(err).Uint64("fd", uint64(ch.Fd())).Msg("read from loop")
		}
	}
	l.assertConsistent(ch)
}

// assertConsistent fails fast when a channel is open but unregistered or
// closed but still registered. Either state means a lifecycle invariant
// was broken somewhere in channel code.
func (l *EventLoop) assertConsistent(ch api.Channel) {
	_, reg := l.registered[ch.Fd()]
	if ch.IsOpen() != reg {
		panic(fmt.Sprintf("reactor: channel fd=%d inconsistent: open=%t registered=%t",
			ch.Fd(), ch.IsOpen(), reg))
	}
}

// defensiveDeregister evicts an already-closed channel from the watch set.
// Best-effort: the error is surfaced through the logger and the optional
// hook but never propagated.
func (l *EventLoop) defensiveDeregister(ch api.Channel) {
	delete(l.registered, ch.Fd())
	if err := l.poller.Deregister(ch.Fd()); err != nil {
		l.log.Warn().Err(err).Uint64("fd", uint64(ch.Fd())).Msg("defensive deregister of closed channel")
		if l.deregHook != nil {
			l.deregHook(ch, err)
		}
	}
}

// drainTasks splices cross-goroutine submissions into the FIFO queue and
// runs it dry. Tasks appended during the drain still run before it ends.
func (l *EventLoop) drainTasks() {
	l.ingressMu.Lock()
	external := l.ingress
	l.ingress = nil
	l.ingressMu.Unlock()
	for _, task := range external {
		l.tasks.Push(concurrency.Task(task))
	}
	l.tasks.Drain()
}

// Close releases the multiplexer. The loop must not be run again. Close is
// not synchronized against a concurrently blocked Run on another goroutine;
// call it from a loop task or after Run has returned.
func (l *EventLoop) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return api.ErrLoopClosed
	}
	// Nudge a wait that is about to block so it observes the flag.
	_ = l.poller.Wakeup()
	return l.poller.Close()
}
