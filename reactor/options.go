// File: reactor/options.go
// Author: momentics <momentics@gmail.com>
//
// Functional options for Context creation.

package reactor

import (
	"github.com/joeycumines/logiface"

	"github.com/momentics/hioload-poll/api"
	"github.com/momentics/hioload-poll/control"
	"github.com/momentics/hioload-poll/poller"
)

// contextOptions holds configuration for Context creation.
type contextOptions struct {
	waiter    api.Waiter
	logger    *logiface.Logger[logiface.Event]
	allocator Allocator
	metrics   *control.MetricsRegistry
}

// Option configures a Context.
type Option interface {
	applyContext(*contextOptions)
}

type optionImpl struct {
	applyFunc func(*contextOptions)
}

func (o *optionImpl) applyContext(opts *contextOptions) {
	o.applyFunc(opts)
}

// WithWaiter sets the wait primitive. Defaults to poller.New.
func WithWaiter(w api.Waiter) Option {
	return &optionImpl{func(opts *contextOptions) {
		opts.waiter = w
	}}
}

// WithLogger sets the structured logger. Logging is disabled by default.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *contextOptions) {
		opts.logger = logger
	}}
}

// WithAllocator replaces the backing storage allocator.
func WithAllocator(a Allocator) Option {
	return &optionImpl{func(opts *contextOptions) {
		opts.allocator = a
	}}
}

// WithMetrics records dispatch counters and occupancy into m.
func WithMetrics(m *control.MetricsRegistry) Option {
	return &optionImpl{func(opts *contextOptions) {
		opts.metrics = m
	}}
}

func resolveOptions(opts []Option) *contextOptions {
	cfg := &contextOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyContext(cfg)
	}
	if cfg.allocator == nil {
		cfg.allocator = HeapAllocator{}
	}
	if cfg.waiter == nil {
		cfg.waiter = poller.New(poller.WithLogger(cfg.logger))
	}
	return cfg
}
