// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: Apache-2.0

package fake

// Invoker counts outbound requests that reached the pipeline head.
type Invoker struct {
	Reads   int
	Flushes int
}

func (i *Invoker) InvokeRead() { i.Reads++ }
func (i *Invoker) InvokeFlush() { i.Flushes++ }
