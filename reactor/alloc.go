// File: reactor/alloc.go
// Author: momentics <momentics@gmail.com>
//
// Backing storage for the parallel sequences of a Context.

package reactor

import "github.com/momentics/hioload-poll/api"

// Allocator provides backing storage of exactly n entries for a context,
// preserving the first min(len(old), n) entries of old. An error means the
// storage could not be obtained; old must remain usable.
type Allocator interface {
	Events(old []*Event, n int) ([]*Event, error)
	Records(old []api.PollFD, n int) ([]api.PollFD, error)
}

// HeapAllocator allocates from the Go heap and never fails.
type HeapAllocator struct{}

// Events implements Allocator.
func (HeapAllocator) Events(old []*Event, n int) ([]*Event, error) {
	out := make([]*Event, n)
	copy(out, old)
	return out, nil
}

// Records implements Allocator.
func (HeapAllocator) Records(old []api.PollFD, n int) ([]api.PollFD, error) {
	out := make([]api.PollFD, n)
	copy(out, old)
	return out, nil
}
