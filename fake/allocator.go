// Package fake
// Author: momentics <momentics@gmail.com>
//
// Allocator that fails on demand, for out-of-memory paths.

package fake

import (
	"errors"

	"github.com/momentics/hioload-poll/api"
	"github.com/momentics/hioload-poll/reactor"
)

// ErrAllocation is returned by Allocator when failing.
var ErrAllocation = errors.New("fake: allocation refused")

// Allocator implements reactor.Allocator on the heap. FailEvents and
// FailRecords make the matching call fail, FailAbove makes any request for
// more than that many entries fail when positive.
type Allocator struct {
	FailEvents  bool
	FailRecords bool
	FailAbove   int

	// Calls counts every request, failed or not.
	Calls int
	// Sizes holds the requested size of every call.
	Sizes []int
}

var _ reactor.Allocator = (*Allocator)(nil)

func (a *Allocator) refuse(n int) bool {
	a.Calls++
	a.Sizes = append(a.Sizes, n)
	return a.FailAbove > 0 && n > a.FailAbove
}

// Events implements reactor.Allocator.
func (a *Allocator) Events(old []*reactor.Event, n int) ([]*reactor.Event, error) {
	if a.refuse(n) || a.FailEvents {
		return nil, ErrAllocation
	}
	return reactor.HeapAllocator{}.Events(old, n)
}

// Records implements reactor.Allocator.
func (a *Allocator) Records(old []api.PollFD, n int) ([]api.PollFD, error) {
	if a.refuse(n) || a.FailRecords {
		return nil, ErrAllocation
	}
	return reactor.HeapAllocator{}.Records(old, n)
}
