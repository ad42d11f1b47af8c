package reactor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-poll/api"
)

var idleWaiter = api.WaiterFunc(func(fds []api.PollFD, _ int) (int, error) {
	api.ClearRevents(fds)
	return 0, nil
})

// checkInvariants verifies the bookkeeping that every public operation must
// leave intact.
func checkInvariants(t *testing.T, c *Context) {
	t.Helper()
	require.Len(t, c.fds, len(c.events), "parallel sequences differ in length")
	require.LessOrEqual(t, c.used, len(c.events))
	require.Less(t, len(c.events)-c.used, c.chunk, "slack reached one chunk")
	for i := 0; i < c.used; i++ {
		e := c.events[i]
		require.NotNil(t, e, "nil event at %d", i)
		a := e.attachment()
		require.NotNil(t, a, "event at %d is not attached", i)
		require.Same(t, c, a.ctx)
		require.Equal(t, i, a.idx)
		require.Equal(t, e.events, c.fds[i].Events)
	}
	for i := c.used; i < len(c.events); i++ {
		require.Nil(t, c.events[i], "stale event at %d", i)
	}
}

func TestContext_invariantsUnderRandomOps(t *testing.T) {
	for _, chunk := range []int{1, 2, 3, 5} {
		rng := rand.New(rand.NewSource(int64(chunk)))
		c := NewContext(chunk, WithWaiter(idleWaiter))
		checkInvariants(t, c)

		pool := make([]*Event, 16)
		for i := range pool {
			pool[i] = NewEvent(uintptr(100+i), api.EventIn, nil, nil)
		}

		for step := 0; step < 500; step++ {
			e := pool[rng.Intn(len(pool))]
			if e.Context() == nil {
				require.NoError(t, c.Attach(e))
			} else {
				require.True(t, c.Detach(e))
			}
			checkInvariants(t, c)
		}

		for i, e := range pool {
			require.Equal(t, uintptr(100+i), e.FD(), "descriptor changed")
		}
	}
}

func TestContext_chunkTwoGrowShrink(t *testing.T) {
	c := NewContext(2, WithWaiter(idleWaiter))
	require.Equal(t, 0, c.Cap())

	e10 := NewEvent(10, api.EventIn, nil, nil)
	e11 := NewEvent(11, api.EventIn, nil, nil)
	e12 := NewEvent(12, api.EventIn, nil, nil)

	require.NoError(t, c.Attach(e10))
	require.Equal(t, 2, c.Cap())
	require.NoError(t, c.Attach(e11))
	require.Equal(t, 2, c.Cap())
	require.NoError(t, c.Attach(e12))
	require.Equal(t, 4, c.Cap())
	require.Equal(t, 3, c.Len())
	checkInvariants(t, c)

	require.True(t, c.Detach(e11))
	require.Equal(t, 2, c.Len())
	require.Equal(t, 2, c.Cap())
	require.Same(t, e12, c.events[1])
	require.Equal(t, uintptr(12), c.fds[1].Fd)
	require.Equal(t, 1, e12.attachment().idx)
	require.Equal(t, uintptr(11), e11.FD())
	checkInvariants(t, c)
}

func TestContext_attachClearsRevents(t *testing.T) {
	c := NewContext(1, WithWaiter(idleWaiter))
	a := NewEvent(3, api.EventIn, nil, nil)
	require.NoError(t, c.Attach(a))
	c.fds[0].Revents = api.EventIn
	require.True(t, c.Detach(a))

	b := NewEvent(4, api.EventOut, nil, nil)
	require.NoError(t, c.Attach(b))
	require.Equal(t, api.PollFD{Fd: 4, Events: api.EventOut}, c.fds[0])
}

func TestEvent_setEventsMirrorsRecord(t *testing.T) {
	c := NewContext(0, WithWaiter(idleWaiter))
	e := NewEvent(7, api.EventIn, nil, nil)
	require.NoError(t, c.Attach(e))

	e.AddEvents(api.EventOut)
	require.Equal(t, api.EventIn|api.EventOut, c.fds[0].Events)
	e.RemoveEvents(api.EventIn)
	require.Equal(t, api.EventOut, c.fds[0].Events)
	checkInvariants(t, c)
}

func TestDispatch_detachingLaterEventsDuringWalk(t *testing.T) {
	// callbacks detach arbitrary other events; every fired event still
	// attached when reached must be invoked exactly once
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		calls := make(map[uintptr]int)
		var victims map[uintptr]bool

		c := NewContext(2, WithWaiter(api.WaiterFunc(func(fds []api.PollFD, _ int) (int, error) {
			for i := range fds {
				fds[i].Revents = fds[i].Events
			}
			return len(fds), nil
		})))

		events := make([]*Event, 8)
		cb := func(e *Event, fd uintptr, _ api.Events, _ any) Result {
			calls[fd]++
			removed := false
			for _, other := range events {
				if other.Context() == c && rng.Intn(3) == 0 {
					victims[other.FD()] = true
					c.Detach(other)
					removed = true
				}
			}
			if removed {
				return Removed
			}
			return Consumed
		}
		for i := range events {
			events[i] = NewEvent(uintptr(20+i), api.EventIn, cb, nil)
			require.NoError(t, c.Attach(events[i]))
		}

		victims = make(map[uintptr]bool)
		_, err := c.Dispatch(0)
		require.NoError(t, err)
		checkInvariants(t, c)

		for _, e := range events {
			fd := e.FD()
			require.LessOrEqual(t, calls[fd], 1, "seed %d fd %d invoked twice", seed, fd)
			if !victims[fd] {
				require.Equal(t, 1, calls[fd], "seed %d fd %d skipped", seed, fd)
			}
		}
	}
}
