package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/satlink-planner/core"
)

// Config is the planner's run configuration, loaded from an optional
// YAML file. Scenario data lives in its own JSON document; this file
// only tunes how the planner runs.
type Config struct {
	// TransitionBufferMinutes overrides the ±15 minute transition
	// guard applied by the transport evaluators. Unset keeps the
	// default; an explicit zero disables the guard.
	TransitionBufferMinutes *int `yaml:"transition_buffer_minutes"`

	// DebounceMillis is the quiet period for coalescing recomputes in
	// serve mode.
	DebounceMillis int `yaml:"debounce_millis"`

	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
}

func defaultConfig() Config {
	cfg := Config{
		DebounceMillis: 500,
	}
	cfg.Metrics.Addr = ":9090"
	return cfg
}

// LoadConfig reads the YAML config at path, layering it over the
// defaults. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	if cfg.TransitionBufferMinutes != nil && *cfg.TransitionBufferMinutes < 0 {
		return cfg, fmt.Errorf("config %q: transition_buffer_minutes must not be negative", path)
	}
	if cfg.DebounceMillis < 0 {
		return cfg, fmt.Errorf("config %q: debounce_millis must not be negative", path)
	}
	return cfg, nil
}

// TransitionBuffer returns the configured guard as a duration, or the
// engine default when the key is unset.
func (c Config) TransitionBuffer() time.Duration {
	if c.TransitionBufferMinutes == nil {
		return core.DefaultTransitionBuffer
	}
	return time.Duration(*c.TransitionBufferMinutes) * time.Minute
}

// Debounce returns the configured quiet period as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}
