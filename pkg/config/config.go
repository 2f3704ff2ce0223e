// Package config loads cursync's layered configuration: embedded
// defaults, then the repository's .cursync.toml, then CURSYNC_*
// environment variables.
package config

import (
	"time"
)

// Config is the fully merged cursync configuration.
type Config struct {
	Resources ResourcesConfig `koanf:"resources" toml:"resources"`
	Target    TargetConfig    `koanf:"target" toml:"target"`
	Rules     RulesConfig     `koanf:"rules" toml:"rules"`
	Sync      SyncConfig      `koanf:"sync" toml:"sync"`
}

// ResourcesConfig describes where the resource tree lives, relative to
// the repository root.
type ResourcesConfig struct {
	Dir string `koanf:"dir" toml:"dir"`
}

// TargetConfig describes where links are created, relative to the
// repository root.
type TargetConfig struct {
	Dir string `koanf:"dir" toml:"dir"`
}

// RulesConfig controls rule discovery.
type RulesConfig struct {
	// Extension is the rule file extension, including the dot.
	Extension string `koanf:"extension" toml:"extension"`

	// Pattern is the doublestar pattern matched against paths relative
	// to a category directory.
	Pattern string `koanf:"pattern" toml:"pattern"`

	// Categories is the default category filter; empty means all.
	Categories []string `koanf:"categories" toml:"categories"`
}

// SyncConfig controls sync behavior.
type SyncConfig struct {
	// WatchDebounceMs coalesces filesystem events in watch mode.
	WatchDebounceMs int `koanf:"watch_debounce_ms" toml:"watch_debounce_ms"`
}

// WatchDebounce returns the watch debounce as a duration.
func (c SyncConfig) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMs) * time.Millisecond
}

// Default returns the built-in configuration, the same values as the
// embedded defaults file.
func Default() *Config {
	return &Config{
		Resources: ResourcesConfig{Dir: "resources"},
		Target:    TargetConfig{Dir: ".cursor"},
		Rules: RulesConfig{
			Extension:  ".mdc",
			Pattern:    "**/*.mdc",
			Categories: []string{},
		},
		Sync: SyncConfig{WatchDebounceMs: 300},
	}
}
