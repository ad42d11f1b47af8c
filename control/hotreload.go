// control/hotreload.go
// Manages global hot-reload hooks for config changes.
// TriggerHotReloadSync exists for deterministic test notification.

package control

import "sync"

var (
	reloadMu    sync.Mutex
	reloadHooks []func()
)

// RegisterReloadHook adds a new component reload listener.
func RegisterReloadHook(fn func()) {
	reloadMu.Lock()
	defer reloadMu.Unlock()
	reloadHooks = append(reloadHooks, fn)
}

// TriggerHotReload dispatches all reload hooks asynchronously.
func TriggerHotReload() {
	for _, fn := range hooks() {
		go fn()
	}
}

// TriggerHotReloadSync invokes all reload hooks synchronously.
func TriggerHotReloadSync() {
	for _, fn := range hooks() {
		fn()
	}
}

func hooks() []func() {
	reloadMu.Lock()
	defer reloadMu.Unlock()
	out := make([]func(), len(reloadHooks))
	copy(out, reloadHooks)
	return out
}
