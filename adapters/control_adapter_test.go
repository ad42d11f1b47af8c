package adapters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-poll/adapters"
	"github.com/momentics/hioload-poll/api"
	"github.com/momentics/hioload-poll/control"
	"github.com/momentics/hioload-poll/fake"
	"github.com/momentics/hioload-poll/reactor"
)

func TestControlAdapterBasic(t *testing.T) {
	ctrl := adapters.NewControlAdapter()
	assert.Empty(t, ctrl.GetConfig())

	require.NoError(t, ctrl.SetConfig(map[string]any{"k": 1}))
	assert.Equal(t, 1, ctrl.GetConfig()["k"])

	called := false
	ctrl.OnReload(func() { called = true })
	require.NoError(t, ctrl.SetConfig(map[string]any{"x": 2}))
	assert.True(t, called, "reload hook not called")

	ctrl.SetMetric("m", 7)
	stats := ctrl.Stats()
	assert.Equal(t, 7, stats["m"])
	assert.Contains(t, stats, "debug.platform.cpus")
}

func TestControlAdapter_applyConfig(t *testing.T) {
	ctrl := adapters.NewControlAdapter()
	require.NoError(t, ctrl.ApplyConfig(control.Config{ChunkSize: 4, TimeoutMs: 20, LogLevel: "debug"}))
	assert.Equal(t, 4, ctrl.Config().ChunkSize)

	err := ctrl.ApplyConfig(control.Config{ChunkSize: -1})
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
	assert.Equal(t, 4, ctrl.Config().ChunkSize)
}

func TestControlAdapter_watchContext(t *testing.T) {
	ctrl := adapters.NewControlAdapter()
	w := fake.NewWaiter().Ready(1, api.EventIn)
	c := reactor.NewContext(2, reactor.WithWaiter(w), reactor.WithMetrics(ctrl.Metrics()))
	ctrl.Watch("ctx", c)

	for fd := uintptr(1); fd <= 3; fd++ {
		require.NoError(t, c.Attach(reactor.NewEvent(fd, api.EventIn, nil, nil)))
	}
	_, err := c.Dispatch(0)
	require.NoError(t, err)

	stats := ctrl.Stats()
	assert.Equal(t, map[string]int{"used": 3, "allocated": 4, "chunk": 2}, stats["debug.ctx"])
	assert.Equal(t, int64(1), stats[reactor.MetricDispatchCalls])
	assert.Equal(t, 3, stats[reactor.MetricAttached])

	ctrl.Unwatch("ctx")
	assert.NotContains(t, ctrl.Stats(), "debug.ctx")
}
