// File: internal/concurrency/gid.go
// Author: momentics <momentics@gmail.com>
//
// Goroutine identity capture for loop-affinity assertions. Parses the
// "goroutine N" header of the runtime stack; the ID is stable for the
// lifetime of a goroutine.

package concurrency

import "runtime"

// GoroutineID returns the numeric ID of the calling goroutine.
func GoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] < '0' || buf[i] > '9' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}
