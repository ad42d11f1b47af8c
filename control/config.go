// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Reactor configuration: YAML loading, defaults, and a thread-safe store
// with reload propagation.

package control

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/joeycumines/logiface"
	"gopkg.in/yaml.v3"
)

// Config keys used by ConfigStore.Apply.
const (
	KeyChunkSize = "reactor.chunk_size"
	KeyTimeoutMs = "reactor.timeout_ms"
	KeyLogLevel  = "log.level"
)

// Config is the tunable part of a reactor setup.
type Config struct {
	// ChunkSize is the capacity step of a poll context, 0 for the default.
	ChunkSize int `yaml:"chunk_size"`
	// TimeoutMs bounds each dispatch; negative waits without limit.
	TimeoutMs int `yaml:"timeout_ms"`
	// LogLevel is one of trace, debug, info, notice, warning, error, disabled.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when nothing is provided.
func DefaultConfig() Config {
	return Config{
		ChunkSize: 0,
		TimeoutMs: 1000,
		LogLevel:  "info",
	}
}

// LoadConfig decodes YAML from r on top of DefaultConfig. Unknown fields are
// rejected. An empty document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("control: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if c.ChunkSize < 0 {
		return fmt.Errorf("control: chunk_size must not be negative, got %d", c.ChunkSize)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level, LevelInformational if invalid.
func (c Config) Level() logiface.Level {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return logiface.LevelInformational
	}
	return lvl
}

// ParseLevel maps a level name to a logiface level. The empty string is info.
func ParseLevel(s string) (logiface.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return logiface.LevelTrace, nil
	case "debug":
		return logiface.LevelDebug, nil
	case "", "info", "informational":
		return logiface.LevelInformational, nil
	case "notice":
		return logiface.LevelNotice, nil
	case "warn", "warning":
		return logiface.LevelWarning, nil
	case "err", "error":
		return logiface.LevelError, nil
	case "off", "disabled":
		return logiface.LevelDisabled, nil
	}
	return 0, fmt.Errorf("control: unknown log level %q", s)
}

// ConfigStore is a dynamic key/value map with snapshot and listener support.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func()
}

// NewConfigStore initializes a new config store with empty data.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config:    make(map[string]any),
		listeners: make([]func(), 0),
	}
}

// GetSnapshot returns a copy of all config values.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		out[k] = v
	}
	return out
}

// SetConfig merges new values and notifies listeners, synchronously and
// outside the lock.
func (cs *ConfigStore) SetConfig(newCfg map[string]any) {
	cs.mu.Lock()
	for k, v := range newCfg {
		cs.config[k] = v
	}
	listeners := make([]func(), len(cs.listeners))
	copy(listeners, cs.listeners)
	cs.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Apply stores every field of cfg under its Key* name.
func (cs *ConfigStore) Apply(cfg Config) {
	cs.SetConfig(map[string]any{
		KeyChunkSize: cfg.ChunkSize,
		KeyTimeoutMs: cfg.TimeoutMs,
		KeyLogLevel:  cfg.LogLevel,
	})
}

// Config rebuilds a Config from the stored keys, defaults filling the gaps.
func (cs *ConfigStore) Config() Config {
	cfg := DefaultConfig()
	snap := cs.GetSnapshot()
	if v, ok := snap[KeyChunkSize].(int); ok {
		cfg.ChunkSize = v
	}
	if v, ok := snap[KeyTimeoutMs].(int); ok {
		cfg.TimeoutMs = v
	}
	if v, ok := snap[KeyLogLevel].(string); ok {
		cfg.LogLevel = v
	}
	return cfg
}

// OnReload registers a listener hook called on config changes.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}
