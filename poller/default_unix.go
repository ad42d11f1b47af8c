//go:build unix

package poller

import "github.com/momentics/hioload-poll/api"

// New returns the preferred waiter for the platform: poll(2) on unix.
func New(opts ...Option) api.Waiter {
	return NewNative(opts...)
}
