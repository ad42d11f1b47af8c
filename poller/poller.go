// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package poller implements the wait primitive behind the reactor: block until
// at least one of N descriptors is ready or a timeout elapses.
//
// Two strategies exist. Native delegates to poll(2) on unix platforms.
// Emulated builds the same contract from a multi-handle blocking wait (see
// HandleWaiter), which is what Windows provides through
// WaitForMultipleObjects. New picks the right one for the build platform.
package poller

import (
	"time"

	"github.com/joeycumines/logiface"
)

// options holds configuration shared by the waiter implementations.
type options struct {
	logger *logiface.Logger[logiface.Event]
	sleep  func(time.Duration)
}

// Option configures a waiter created by this package.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) { f(o) }

// WithLogger sets the structured logger. A nil logger disables logging.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return optionFunc(func(o *options) {
		o.logger = logger
	})
}

// WithSleep replaces the function used by Emulated to honour a finite
// timeout when there is no handle to wait on.
func WithSleep(fn func(time.Duration)) Option {
	return optionFunc(func(o *options) {
		if fn != nil {
			o.sleep = fn
		}
	})
}

func resolveOptions(opts []Option) *options {
	cfg := &options{sleep: time.Sleep}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(cfg)
	}
	return cfg
}
