//go:build unix

// File: poller/native_unix.go
// Author: momentics <momentics@gmail.com>
//
// poll(2) wait primitive.

package poller

import (
	"errors"

	"github.com/joeycumines/logiface"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-poll/api"
)

// Native waits with poll(2). It keeps a scratch buffer between calls and is
// therefore not safe for concurrent use.
type Native struct {
	buf    []unix.PollFd
	logger *logiface.Logger[logiface.Event]
}

// NewNative returns a poll(2) backed waiter.
func NewNative(opts ...Option) *Native {
	cfg := resolveOptions(opts)
	return &Native{logger: cfg.logger}
}

// Wait implements api.Waiter.
func (n *Native) Wait(fds []api.PollFD, timeout int) (int, error) {
	if timeout < 0 {
		timeout = -1
	}
	if cap(n.buf) < len(fds) {
		n.buf = make([]unix.PollFd, len(fds))
	}
	buf := n.buf[:len(fds)]
	for i := range fds {
		buf[i] = unix.PollFd{
			Fd:     int32(fds[i].Fd),
			Events: int16(fds[i].Events),
		}
	}

	ready, err := unix.Poll(buf, timeout)
	if err != nil {
		api.ClearRevents(fds)
		if errors.Is(err, unix.EINTR) {
			// interrupted by a signal, reported like a timeout
			return 0, nil
		}
		n.logger.Debug().
			Err(err).
			Int("nfds", len(fds)).
			Log("poll failed")
		if errors.Is(err, unix.EINVAL) {
			return 0, api.ErrInvalidArgument.Wrap(err).WithContext("nfds", len(fds))
		}
		return 0, api.ErrIOFailure.Wrap(err)
	}

	for i := range fds {
		fds[i].Revents = api.Events(buf[i].Revents)
	}
	return ready, nil
}
