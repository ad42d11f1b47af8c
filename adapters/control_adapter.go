// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Control adapter implementing api.Control on top of the control package
// registries, with probes for live poll contexts.

package adapters

import (
	"github.com/momentics/hioload-poll/api"
	"github.com/momentics/hioload-poll/control"
	"github.com/momentics/hioload-poll/reactor"
)

// ControlAdapter bundles config, metrics and debug probes.
type ControlAdapter struct {
	config  *control.ConfigStore
	metrics *control.MetricsRegistry
	debug   *control.DebugProbes
}

var _ api.Control = (*ControlAdapter)(nil)

// NewControlAdapter returns an adapter with the platform probes registered.
func NewControlAdapter() *ControlAdapter {
	adapter := &ControlAdapter{
		config:  control.NewConfigStore(),
		metrics: control.NewMetricsRegistry(),
		debug:   control.NewDebugProbes(),
	}
	control.RegisterPlatformProbes(adapter.debug)
	return adapter
}

func (c *ControlAdapter) GetConfig() map[string]any {
	return c.config.GetSnapshot()
}

func (c *ControlAdapter) SetConfig(cfg map[string]any) error {
	c.config.SetConfig(cfg)
	return nil
}

// ApplyConfig validates cfg and stores it.
func (c *ControlAdapter) ApplyConfig(cfg control.Config) error {
	if err := cfg.Validate(); err != nil {
		return api.ErrInvalidArgument.Wrap(err)
	}
	c.config.Apply(cfg)
	return nil
}

// Config returns the typed view of the stored configuration.
func (c *ControlAdapter) Config() control.Config {
	return c.config.Config()
}

// Stats merges metrics with probe output, the latter under a "debug." prefix.
func (c *ControlAdapter) Stats() map[string]any {
	stats := c.metrics.GetSnapshot()
	debugStats := c.debug.DumpState()
	combined := make(map[string]any, len(stats)+len(debugStats))
	for k, v := range stats {
		combined[k] = v
	}
	for k, v := range debugStats {
		combined["debug."+k] = v
	}
	return combined
}

func (c *ControlAdapter) OnReload(fn func()) {
	c.config.OnReload(fn)
	control.RegisterReloadHook(fn)
}

func (c *ControlAdapter) SetMetric(key string, value any) {
	c.metrics.Set(key, value)
}

func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}

// Metrics returns the registry to pass to reactor.WithMetrics.
func (c *ControlAdapter) Metrics() *control.MetricsRegistry {
	return c.metrics
}

// Watch registers a probe reporting the occupancy of ctx. The probe reads
// the context without locking, so it must only be dumped from the goroutine
// driving ctx, or while that goroutine is idle.
func (c *ControlAdapter) Watch(name string, ctx *reactor.Context) {
	c.debug.RegisterProbe(name, func() any {
		return map[string]int{
			"used":      ctx.Len(),
			"allocated": ctx.Cap(),
			"chunk":     ctx.ChunkSize(),
		}
	})
}

// Unwatch removes a probe registered with Watch.
func (c *ControlAdapter) Unwatch(name string) {
	c.debug.UnregisterProbe(name)
}
