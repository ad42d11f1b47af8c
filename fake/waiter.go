// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake wait primitives for testing.
// Provides predictable, controllable readiness for the reactor and poller.

package fake

import (
	"github.com/eapache/queue"

	"github.com/momentics/hioload-poll/api"
)

// Round is one scripted outcome of Waiter.Wait.
type Round struct {
	// Ready maps a descriptor to the events it reports.
	Ready map[uintptr]api.Events
	// Err, when set, makes the wait fail.
	Err error
	// Before runs before the outcome is applied, e.g. to detach events.
	Before func()
}

// Waiter is a fake api.Waiter that replays scripted rounds in order and
// reports a timeout once the script is exhausted.
type Waiter struct {
	rounds   *queue.Queue
	Calls    int
	Timeouts []int
	// Seen holds a copy of the records passed to every call.
	Seen [][]api.PollFD
}

// NewWaiter creates an empty fake waiter.
func NewWaiter() *Waiter {
	return &Waiter{rounds: queue.New()}
}

// Push appends a round to the script.
func (w *Waiter) Push(r Round) *Waiter {
	w.rounds.Add(r)
	return w
}

// Ready appends a round in which only fd fires with ev.
func (w *Waiter) Ready(fd uintptr, ev api.Events) *Waiter {
	return w.Push(Round{Ready: map[uintptr]api.Events{fd: ev}})
}

// Fail appends a failing round.
func (w *Waiter) Fail(err error) *Waiter {
	return w.Push(Round{Err: err})
}

// Pending is the number of rounds not yet replayed.
func (w *Waiter) Pending() int {
	return w.rounds.Length()
}

// Wait implements api.Waiter.
func (w *Waiter) Wait(fds []api.PollFD, timeout int) (int, error) {
	w.Calls++
	w.Timeouts = append(w.Timeouts, timeout)
	seen := make([]api.PollFD, len(fds))
	copy(seen, fds)
	w.Seen = append(w.Seen, seen)

	api.ClearRevents(fds)
	if w.rounds.Length() == 0 {
		return 0, nil
	}
	r := w.rounds.Remove().(Round)
	if r.Before != nil {
		r.Before()
	}
	if r.Err != nil {
		return 0, r.Err
	}
	n := 0
	for i := range fds {
		if ev, ok := r.Ready[fds[i].Fd]; ok && ev != 0 {
			fds[i].Revents = ev
			n++
		}
	}
	return n, nil
}
