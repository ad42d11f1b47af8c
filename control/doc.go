// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, runtime metrics and debug introspection for hioload-poll.
//
// Provides concurrent-safe state handling primitives including:
//   - YAML configuration loading with defaults
//   - Snapshot config reads and reload observers
//   - Counters and gauges fed by the reactor
//   - Debug probe registration and state export
//
// This package is cross-platform and build-tag-partitioned as needed.
package control
