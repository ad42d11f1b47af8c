// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor multiplexes readiness of many descriptors behind a single
// blocking wait and dispatches per-descriptor callbacks.
//
// An Event is one watched descriptor with its requested mask and callback. A
// Context owns the ordered set of attached events plus the mirrored raw
// records handed to the wait primitive (see package poller). Dispatch waits
// once and invokes the callback of every event that fired.
//
// # Mutation during dispatch
//
// Callbacks may attach and detach events, including the one being visited.
// Removal is swap-removal, so the order of attached events is not stable. A
// callback that detached anything must return Removed; the dispatch loop then
// revisits the same index, which may now hold a different event, instead of
// skipping it. Any other outcome is reported as Consumed.
//
// # Concurrency
//
// A Context is not safe for concurrent use. Dispatch must not be called from
// within one of its own callbacks.
package reactor
