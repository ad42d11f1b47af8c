// Package api
// Author: momentics
//
// Live introspection of reactor state.

package api

// Debug exposes runtime introspection.
type Debug interface {
	// DumpState emits a snapshot of all probes.
	DumpState() map[string]any

	// RegisterProbe registers or replaces a named probe.
	RegisterProbe(name string, fn func() any)
}
