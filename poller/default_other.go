//go:build !unix && !windows

// File: poller/default_other.go
// Author: momentics <momentics@gmail.com>
//
// Stub for platforms with neither poll(2) nor a handle wait.

package poller

import "github.com/momentics/hioload-poll/api"

// New returns a waiter that always fails with api.ErrNotSupported.
func New(...Option) api.Waiter {
	return api.WaiterFunc(func(fds []api.PollFD, _ int) (int, error) {
		api.ClearRevents(fds)
		return 0, api.ErrNotSupported
	})
}
