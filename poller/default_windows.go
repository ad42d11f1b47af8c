//go:build windows

package poller

import (
	"time"

	"github.com/momentics/hioload-poll/api"
)

// New returns the preferred waiter for the platform: poll emulated over
// WaitForMultipleObjects on windows.
func New(opts ...Option) api.Waiter {
	base := []Option{WithSleep(func(d time.Duration) {
		sleepAlertable(uint32(d / time.Millisecond))
	})}
	return NewEmulated(MultipleObjects{}, append(base, opts...)...)
}
