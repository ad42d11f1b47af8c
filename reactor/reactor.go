// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Poll context: the attached events and the raw records handed to the
// wait primitive, kept as two parallel sequences.

package reactor

import (
	"github.com/joeycumines/logiface"

	"github.com/momentics/hioload-poll/api"
	"github.com/momentics/hioload-poll/control"
)

// DefaultChunkSize is the growth granularity used when none is given.
const DefaultChunkSize = 5

// Context owns the set of attached events.
//
// For every i < used, events[i] is attached here at index i and fds[i]
// carries its descriptor and requested mask. Capacity moves in steps of chunk
// and never exceeds used by more than one chunk between calls.
type Context struct {
	events  []*Event
	fds     []api.PollFD
	used    int
	chunk   int
	waiter  api.Waiter
	alloc   Allocator
	logger  *logiface.Logger[logiface.Event]
	metrics *control.MetricsRegistry
	inCycle bool
	// lowMoved is the lowest index a swap-removal wrote to since the last
	// reset; the dispatch and teardown walks rewind to it.
	lowMoved int
}

// NewContext creates an empty context growing by chunk entries at a time.
// A chunk of zero or less selects DefaultChunkSize.
func NewContext(chunk int, opts ...Option) *Context {
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	cfg := resolveOptions(opts)
	return &Context{
		chunk:   chunk,
		waiter:  cfg.waiter,
		alloc:   cfg.allocator,
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}
}

// Len returns the number of attached events.
func (c *Context) Len() int { return c.used }

// Cap returns the allocated capacity of both sequences.
func (c *Context) Cap() int { return len(c.events) }

// ChunkSize returns the capacity growth and shrink step.
func (c *Context) ChunkSize() int { return c.chunk }

// Snapshot returns the attached events in their current order.
func (c *Context) Snapshot() []*Event {
	out := make([]*Event, c.used)
	copy(out, c.events[:c.used])
	return out
}

// Attach adds e to the context. It fails with api.ErrAlreadyAttached if e
// already belongs to a context, and with api.ErrOutOfMemory if the
// sequences could not grow; neither failure changes any state.
func (c *Context) Attach(e *Event) error {
	if e.Context() != nil {
		c.logger.Debug().
			Uint64("fd", uint64(e.FD())).
			Log("attach rejected: already attached")
		return api.ErrAlreadyAttached.WithContext("fd", e.FD())
	}

	if c.used == len(c.events) {
		if err := c.resize(len(c.events) + c.chunk); err != nil {
			return err
		}
	}

	fd := e.FD()
	idx := c.used
	c.used++
	c.events[idx] = e
	c.fds[idx] = api.PollFD{Fd: fd, Events: e.events}
	e.slot = &attached{ctx: c, idx: idx}

	c.gauge()
	return nil
}

// Detach removes e from the context, restoring its own descriptor. The last
// attached event is moved into the vacated index, so order is not preserved.
// It reports false, doing nothing, if e is not attached to c.
func (c *Context) Detach(e *Event) bool {
	a := e.attachment()
	if a == nil || a.ctx != c {
		return false
	}

	i := a.idx
	e.slot = detached{fd: c.fds[i].Fd}

	c.used--
	last := c.used
	if i != last {
		c.fds[i] = c.fds[last]
		c.events[i] = c.events[last]
		c.events[i].attachment().idx = i
		if i < c.lowMoved {
			c.lowMoved = i
		}
	}
	c.events[last] = nil
	c.fds[last] = api.PollFD{}

	if len(c.events)-c.used >= c.chunk {
		if err := c.resize(len(c.events) - c.chunk); err != nil {
			c.logger.Warning().
				Err(err).
				Int("capacity", len(c.events)).
				Log("shrink failed, keeping capacity")
		}
	}

	c.gauge()
	return true
}

// Close detaches every event. Each attached event is first notified once
// through its callback with api.EventErr so its owner can release it;
// callbacks are expected to detach their event and return Removed. Events
// still attached after that are detached forcibly. Close never fails.
// Attaching new events from those callbacks is not allowed.
func (c *Context) Close() {
	notified := make(map[*Event]struct{}, c.used)
	for i := 0; i < c.used; {
		e := c.events[i]
		if _, ok := notified[e]; ok {
			i++
			continue
		}
		notified[e] = struct{}{}

		c.lowMoved = c.used
		if e.invoke(c.fds[i].Fd, api.EventErr) == Removed {
			// index i may now hold an event not yet notified
			if c.lowMoved < i {
				i = c.lowMoved
			}
			continue
		}
		i++
	}

	if c.used > 0 {
		c.logger.Warning().
			Int("remaining", c.used).
			Log("events still attached after teardown, detaching")
		for c.used > 0 {
			c.Detach(c.events[c.used-1])
		}
	}

	c.events = nil
	c.fds = nil
	c.gauge()
}

// resize reallocates both sequences to n entries. Nothing is committed unless
// both allocations succeed.
func (c *Context) resize(n int) error {
	events, err := c.alloc.Events(c.events, n)
	if err != nil {
		return c.resizeFailed(n, err)
	}
	fds, err := c.alloc.Records(c.fds, n)
	if err != nil {
		// events is dropped, the previous sequence is still in place
		return c.resizeFailed(n, err)
	}

	c.logger.Debug().
		Int("from", len(c.events)).
		Int("to", n).
		Int("used", c.used).
		Log("resized poll context")

	c.events = events
	c.fds = fds
	return nil
}

func (c *Context) resizeFailed(n int, err error) error {
	c.logger.Debug().
		Err(err).
		Int("from", len(c.events)).
		Int("to", n).
		Log("resize failed")
	return api.ErrOutOfMemory.Wrap(err).WithContext("capacity", n)
}

func (c *Context) gauge() {
	if c.metrics == nil {
		return
	}
	c.metrics.Set(MetricAttached, c.used)
	c.metrics.Set(MetricCapacity, len(c.events))
}
