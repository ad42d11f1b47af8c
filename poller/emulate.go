// File: poller/emulate.go
// Author: momentics <momentics@gmail.com>
//
// Portable wait primitive built from a multi-handle blocking wait.

package poller

import (
	"time"

	"github.com/joeycumines/logiface"

	"github.com/momentics/hioload-poll/api"
)

// invalidHandle mirrors INVALID_HANDLE_VALUE / INVALID_SOCKET.
const invalidHandle = ^uintptr(0)

// HandleWaiter blocks on a set of abstract handles. It is the only platform
// service Emulated needs.
type HandleWaiter interface {
	// MaxHandles is the largest number of handles WaitAny accepts.
	MaxHandles() int

	// WaitAny blocks until one handle fires or timeout (ms, negative for
	// infinite) elapses. It returns the index of the fired handle in handles,
	// or a negative index on timeout.
	WaitAny(handles []uintptr, timeout int) (int, error)
}

// Emulated implements api.Waiter over a HandleWaiter. Readiness is coarse: a
// fired handle sets Revents to the requested Events of every record that
// uses it, as readable and writable cannot be told apart.
type Emulated struct {
	hw      HandleWaiter
	logger  *logiface.Logger[logiface.Event]
	sleep   func(time.Duration)
	handles []uintptr
}

// NewEmulated returns a waiter that emulates poll on top of hw.
func NewEmulated(hw HandleWaiter, opts ...Option) *Emulated {
	cfg := resolveOptions(opts)
	return &Emulated{
		hw:     hw,
		logger: cfg.logger,
		sleep:  cfg.sleep,
	}
}

// Wait implements api.Waiter.
func (e *Emulated) Wait(fds []api.PollFD, timeout int) (int, error) {
	limit := e.hw.MaxHandles()
	if len(fds) > limit {
		return 0, api.ErrInvalidArgument.
			WithContext("nfds", len(fds)).
			WithContext("max", limit)
	}
	if timeout < 0 {
		timeout = api.Infinite
	}

	api.ClearRevents(fds)
	handles := e.collect(fds, limit)

	var (
		n   int
		err error
	)
	if len(handles) > 1 {
		// catch anything that is already signalled without blocking
		n, err = e.pollRest(handles, fds, 0)
		if err == nil && n == 0 && timeout != 0 {
			n, err = e.pollRest(handles, fds, timeout)
		}
	} else {
		n, err = e.pollRest(handles, fds, timeout)
	}

	if err != nil {
		api.ClearRevents(fds)
		e.logger.Debug().
			Err(err).
			Int("handles", len(handles)).
			Int("timeout", timeout).
			Log("handle wait failed")
		return 0, api.ErrIOFailure.Wrap(err)
	}
	if n == 0 {
		return 0, nil
	}
	// several records may share a handle, count records rather than handles
	return countReady(fds), nil
}

func countReady(fds []api.PollFD) int {
	n := 0
	for i := range fds {
		if fds[i].Revents != 0 {
			n++
		}
	}
	return n
}

// collect returns the distinct usable handles of fds, at most limit of them.
// The returned slice is reused between calls.
func (e *Emulated) collect(fds []api.PollFD, limit int) []uintptr {
	handles := e.handles[:0]
outer:
	for _, f := range fds {
		if f.Fd == 0 || f.Fd == invalidHandle {
			continue
		}
		for _, h := range handles {
			if h == f.Fd {
				continue outer
			}
		}
		if len(handles) == limit {
			break
		}
		handles = append(handles, f.Fd)
	}
	e.handles = handles
	return handles
}

// pollRest waits on handles. Under a zero timeout every fired handle is
// peeled off and the remainder probed again, so several handles that are
// already signalled are all reported by one call.
func (e *Emulated) pollRest(handles []uintptr, fds []api.PollFD, timeout int) (int, error) {
	if len(handles) == 0 {
		if timeout == api.Infinite {
			return 0, errNothingToWait
		}
		e.sleep(time.Duration(timeout) * time.Millisecond)
		return 0, nil
	}

	work := make([]uintptr, len(handles))
	copy(work, handles)

	fired := 0
	for len(work) > 0 {
		idx, err := e.hw.WaitAny(work, timeout)
		if err != nil {
			return 0, err
		}
		if idx < 0 {
			break
		}
		if idx >= len(work) {
			return 0, errBadIndex
		}
		markFired(fds, work[idx])
		fired++

		if timeout != 0 {
			break
		}
		work = append(work[:idx], work[idx+1:]...)
	}
	return fired, nil
}

// markFired reports every record using handle as ready for what it asked.
func markFired(fds []api.PollFD, handle uintptr) {
	for i := range fds {
		if fds[i].Fd == handle {
			fds[i].Revents = fds[i].Events
		}
	}
}

type emulateError string

func (e emulateError) Error() string { return string(e) }

const (
	errNothingToWait emulateError = "no handle to wait on and no timeout"
	errBadIndex      emulateError = "handle waiter reported an out of range index"
)
