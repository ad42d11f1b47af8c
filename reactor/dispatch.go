// File: reactor/dispatch.go
// Author: momentics <momentics@gmail.com>
//
// Dispatch cycle: one wait, then a walk over the ready records that
// tolerates callbacks mutating the context.

package reactor

import (
	"context"

	"github.com/momentics/hioload-poll/api"
)

// Metric keys written when a MetricsRegistry is configured.
const (
	MetricDispatchCalls    = "reactor.dispatch.calls"
	MetricDispatchFired    = "reactor.dispatch.fired"
	MetricDispatchTimeouts = "reactor.dispatch.timeouts"
	MetricDispatchErrors   = "reactor.dispatch.errors"
	MetricAttached         = "reactor.attached"
	MetricCapacity         = "reactor.capacity"
)

// Dispatch waits up to timeout milliseconds (api.Infinite, or any negative
// value, to wait without limit) and invokes the callback of every attached
// event that fired.
//
// An empty context returns 0 immediately without waiting. A wait failure is
// returned as is and no callback runs. Otherwise the result is the number of
// ready records that were not processed, 0 when every one was handled.
func (c *Context) Dispatch(timeout int) (int, error) {
	if c.inCycle {
		return 0, api.ErrReentrantDispatch
	}
	if c.used == 0 {
		return 0, nil
	}
	c.count(MetricDispatchCalls, 1)

	rc, err := c.waiter.Wait(c.fds[:c.used], timeout)
	if err != nil {
		c.count(MetricDispatchErrors, 1)
		c.logger.Debug().
			Err(err).
			Int("used", c.used).
			Int("timeout", timeout).
			Log("wait failed")
		return 0, err
	}
	if rc <= 0 {
		c.count(MetricDispatchTimeouts, 1)
		return 0, nil
	}
	c.count(MetricDispatchFired, int64(rc))

	c.inCycle = true
	defer func() { c.inCycle = false }()

	for i := 0; i < c.used && rc > 0; {
		if c.fds[i].Revents == 0 {
			i++
			continue
		}

		e := c.events[i]
		fd := c.fds[i].Fd
		revents := c.fds[i].Revents

		c.lowMoved = c.used
		res := e.invoke(fd, revents)
		rc--

		// e may have moved or left; wherever it is, it has been handled
		if a := e.attachment(); a != nil && a.ctx == c {
			c.fds[a.idx].Revents = 0
		}

		if res == Removed {
			// the record at i, or at an earlier index filled by a
			// swap-removal, may belong to an event not visited yet
			if c.lowMoved < i {
				i = c.lowMoved
			}
			continue
		}
		i++
	}

	return rc, nil
}

// Run calls Dispatch with timeout until ctx is done, a dispatch fails or no
// event is left attached. ctx is only checked between dispatches, a wait in
// progress is not interrupted.
func (c *Context) Run(ctx context.Context, timeout int) error {
	for c.used > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := c.Dispatch(timeout); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) count(key string, delta int64) {
	if c.metrics != nil {
		c.metrics.Add(key, delta)
	}
}
