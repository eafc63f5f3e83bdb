// File: internal/concurrency/taskqueue.go
// Package concurrency provides the deferred-work queue for the event loop.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unbounded FIFO over eapache/queue. Not safe for concurrent use: the owning
// loop goroutine is the only mutator, which is the whole synchronization
// model of the reactor.

package concurrency

import "github.com/eapache/queue"

// Task is a unit of deferred work executed on the loop goroutine.
type Task func()

// TaskQueue is an unbounded FIFO of deferred tasks.
type TaskQueue struct {
	q *queue.Queue
}

// NewTaskQueue creates an empty task queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{q: queue.New()}
}

// Push appends a task.
func (t *TaskQueue) Push(task Task) {
	t.q.Add(task)
}

// Len returns the number of pending tasks.
func (t *TaskQueue) Len() int {
	return t.q.Length()
}

// Drain removes and runs tasks one at a time until the queue is empty.
// The length is re-read after every task, so work appended by a running
// task is still executed before Drain returns.
func (t *TaskQueue) Drain() {
	for t.q.Length() > 0 {
		task := t.q.Remove().(Task)
		task()
	}
}
