// File: reactor/event.go
// Author: momentics <momentics@gmail.com>
//
// A single watched descriptor.

package reactor

import "github.com/momentics/hioload-poll/api"

// Result tells the dispatch loop what a callback did to its context.
type Result int

const (
	// Consumed means the attached set is unchanged; the event was handled.
	Consumed Result = iota
	// Removed means the callback detached one or more events, possibly the
	// one it was invoked for.
	Removed
)

func (r Result) String() string {
	if r == Removed {
		return "removed"
	}
	return "consumed"
}

// Callback is invoked with the fired event, its descriptor, the returned
// events and the callback data.
type Callback func(e *Event, fd uintptr, revents api.Events, data any) Result

// slot is where an event lives: either its own descriptor field or a
// position inside a context. Exactly one of the two is meaningful.
type slot interface{ isSlot() }

type detached struct {
	fd uintptr
}

type attached struct {
	ctx *Context
	idx int
}

func (detached) isSlot()  {}
func (*attached) isSlot() {}

// Event is a descriptor watched for readiness. It belongs to its creator;
// a Context only references it while attached.
type Event struct {
	slot   slot
	events api.Events
	cb     Callback
	data   any
}

// NewEvent creates a detached event.
func NewEvent(fd uintptr, events api.Events, cb Callback, data any) *Event {
	return &Event{
		slot:   detached{fd: fd},
		events: events,
		cb:     cb,
		data:   data,
	}
}

// Free releases the callback and data. The event must have been detached
// first; freeing an attached event panics.
func (e *Event) Free() {
	if e.attachment() != nil {
		panic("reactor: Free called on an attached event")
	}
	e.cb = nil
	e.data = nil
}

// Context returns the owning context, or nil when detached.
func (e *Event) Context() *Context {
	if a := e.attachment(); a != nil {
		return a.ctx
	}
	return nil
}

// Events returns the requested event mask.
func (e *Event) Events() api.Events {
	return e.events
}

// SetEvents replaces the requested mask, mirroring it into the owning
// context. A wait already in progress is not affected.
func (e *Event) SetEvents(events api.Events) {
	e.events = events
	if a := e.attachment(); a != nil {
		a.ctx.fds[a.idx].Events = events
	}
}

// AddEvents adds bits to the requested mask.
func (e *Event) AddEvents(events api.Events) {
	e.SetEvents(e.events | events)
}

// RemoveEvents clears bits from the requested mask.
func (e *Event) RemoveEvents(events api.Events) {
	e.SetEvents(e.events &^ events)
}

// FD returns the watched descriptor.
func (e *Event) FD() uintptr {
	switch s := e.slot.(type) {
	case *attached:
		return s.ctx.fds[s.idx].Fd
	case detached:
		return s.fd
	}
	return 0
}

// SetCallback replaces the callback and its data together. A nil cb leaves
// both untouched.
func (e *Event) SetCallback(cb Callback, data any) {
	if cb == nil {
		return
	}
	e.cb = cb
	e.data = data
}

func (e *Event) attachment() *attached {
	a, _ := e.slot.(*attached)
	return a
}

// invoke runs the callback. Events without a callback are consumed.
func (e *Event) invoke(fd uintptr, revents api.Events) Result {
	if e.cb == nil {
		return Consumed
	}
	return e.cb(e, fd, revents, e.data)
}
