//go:build unix

package poller_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-poll/api"
	"github.com/momentics/hioload-poll/poller"
)

func pipe(t *testing.T) (r, w int) {
	t.Helper()
	var p [2]int
	require.NoError(t, unix.Pipe(p[:]))
	t.Cleanup(func() {
		_ = unix.Close(p[0])
		_ = unix.Close(p[1])
	})
	return p[0], p[1]
}

func TestNative_onlyReadyDescriptorReported(t *testing.T) {
	r1, w1 := pipe(t)
	r2, _ := pipe(t)
	r3, _ := pipe(t)

	_, err := unix.Write(w1, []byte("x"))
	require.NoError(t, err)

	fds := []api.PollFD{
		{Fd: uintptr(r2), Events: api.EventIn},
		{Fd: uintptr(r1), Events: api.EventIn},
		{Fd: uintptr(r3), Events: api.EventIn},
	}
	n, err := poller.NewNative().Wait(fds, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, fds[1].Revents.Has(api.EventIn))
	assert.Zero(t, fds[0].Revents)
	assert.Zero(t, fds[2].Revents)
}

func TestNative_timeout(t *testing.T) {
	r, _ := pipe(t)
	fds := []api.PollFD{{Fd: uintptr(r), Events: api.EventIn, Revents: api.EventErr}}

	n, err := poller.NewNative().Wait(fds, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Zero(t, fds[0].Revents)
}

func TestNative_writableAndReadable(t *testing.T) {
	r, w := pipe(t)
	_, err := unix.Write(w, []byte("x"))
	require.NoError(t, err)

	fds := []api.PollFD{
		{Fd: uintptr(r), Events: api.EventIn},
		{Fd: uintptr(w), Events: api.EventOut},
	}
	n, err := poller.NewNative().Wait(fds, api.Infinite)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, api.EventIn, fds[0].Revents)
	assert.Equal(t, api.EventOut, fds[1].Revents)
}

func TestNative_closedDescriptor(t *testing.T) {
	var p [2]int
	require.NoError(t, unix.Pipe(p[:]))
	require.NoError(t, unix.Close(p[0]))
	require.NoError(t, unix.Close(p[1]))

	fds := []api.PollFD{{Fd: uintptr(p[0]), Events: api.EventIn}}
	n, err := poller.NewNative().Wait(fds, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, fds[0].Revents.Has(api.EventNval))
}

func TestNative_bufferReuse(t *testing.T) {
	r, w := pipe(t)
	nw := poller.NewNative()

	for _, fds := range [][]api.PollFD{
		{{Fd: uintptr(r), Events: api.EventIn}, {Fd: uintptr(w), Events: api.EventOut}},
		{{Fd: uintptr(w), Events: api.EventOut}},
	} {
		n, err := nw.Wait(fds, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, api.EventOut, fds[len(fds)-1].Revents)
	}
}
