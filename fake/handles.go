// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake multi-handle wait, shaped like WaitForMultipleObjects.

package fake

import (
	"github.com/eapache/queue"
)

// HandleWaiter reports the lowest-indexed signalled handle, like
// WaitForMultipleObjects with bWaitAll set to FALSE. Failures can be queued
// and are returned by the next calls in order.
type HandleWaiter struct {
	Max       int
	signalled map[uintptr]bool
	failures  *queue.Queue

	// Calls holds a copy of the handle set of every call.
	Calls    [][]uintptr
	Timeouts []int
}

// NewHandleWaiter creates a waiter accepting at most max handles.
func NewHandleWaiter(max int) *HandleWaiter {
	return &HandleWaiter{
		Max:       max,
		signalled: make(map[uintptr]bool),
		failures:  queue.New(),
	}
}

// Signal marks handles as signalled until Reset.
func (h *HandleWaiter) Signal(handles ...uintptr) *HandleWaiter {
	for _, x := range handles {
		h.signalled[x] = true
	}
	return h
}

// Reset clears every signalled handle.
func (h *HandleWaiter) Reset() {
	h.signalled = make(map[uintptr]bool)
}

// Fail queues an error for a future call.
func (h *HandleWaiter) Fail(err error) *HandleWaiter {
	h.failures.Add(err)
	return h
}

// MaxHandles implements poller.HandleWaiter.
func (h *HandleWaiter) MaxHandles() int { return h.Max }

// WaitAny implements poller.HandleWaiter. It never blocks.
func (h *HandleWaiter) WaitAny(handles []uintptr, timeout int) (int, error) {
	set := make([]uintptr, len(handles))
	copy(set, handles)
	h.Calls = append(h.Calls, set)
	h.Timeouts = append(h.Timeouts, timeout)

	if h.failures.Length() > 0 {
		return -1, h.failures.Remove().(error)
	}
	for i, x := range handles {
		if h.signalled[x] {
			return i, nil
		}
	}
	return -1, nil
}
