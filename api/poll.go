// Package api
// Author: momentics
//
// Readiness records and the wait primitive contract shared by the reactor and
// its platform pollers.

package api

import "strings"

// Infinite is the timeout that blocks until at least one descriptor is ready.
// Any negative timeout is treated the same way.
const Infinite = -1

// Events is a readiness bitmask. Bit values follow the host poll(2) (or
// WSAPoll) conventions, see events_unix.go and events_other.go.
type Events int16

// Has reports whether any bit of mask is set.
func (e Events) Has(mask Events) bool { return e&mask != 0 }

func (e Events) String() string {
	if e == 0 {
		return "none"
	}
	var parts []string
	for _, n := range eventNames {
		if e&n.bit == n.bit && n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "|")
}

var eventNames = []struct {
	bit  Events
	name string
}{
	{EventIn, "in"},
	{EventPri, "pri"},
	{EventOut, "out"},
	{EventErr, "err"},
	{EventHup, "hup"},
	{EventNval, "nval"},
}

// PollFD is one raw (descriptor, requested, returned) record consumed by a
// Waiter.
type PollFD struct {
	Fd      uintptr
	Events  Events
	Revents Events
}

// Waiter blocks until at least one record is ready or the timeout (ms)
// elapses. It writes Revents for every record that fired, leaves the others
// empty and returns the number of ready records, 0 on timeout.
//
// Failures are *Error values: ErrInvalidArgument when len(fds) exceeds what
// the backend can wait on, ErrIOFailure when the wait itself failed (all
// Revents are cleared first).
type Waiter interface {
	Wait(fds []PollFD, timeout int) (int, error)
}

// WaiterFunc adapts a plain function to Waiter.
type WaiterFunc func(fds []PollFD, timeout int) (int, error)

// Wait calls f.
func (f WaiterFunc) Wait(fds []PollFD, timeout int) (int, error) { return f(fds, timeout) }

// ClearRevents zeroes the returned events of every record.
func ClearRevents(fds []PollFD) {
	for i := range fds {
		fds[i].Revents = 0
	}
}
