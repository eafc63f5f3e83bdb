// File: eventloop/schedule.go
// Author: momentics <momentics@gmail.com>
//
// Bridges deferred tasks into futures. A package-level generic function
// because Go methods cannot introduce type parameters.

package eventloop

import (
	"github.com/momentics/hioload-reactor/future"
)

// Schedule defers a value-producing task onto the loop and returns a future
// resolved with its outcome. The future is handed back immediately, before
// the task runs; resolution happens on the loop goroutine during the next
// task drain. Loop-goroutine-only, like Execute.
func Schedule[T any](l *EventLoop, task func() (T, error)) *future.Future[T] {
	p := future.New[T]()
	l.Execute(func() {
		v, err := task()
		if err != nil {
			p.Fail(err)
			return
		}
		p.Succeed(v)
	})
	return p.Future()
}
