// Package config defines service configuration structures and loading hooks.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory hand queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of evaluation workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxShowcaseLimit caps GET /showcase?limit.
	MaxShowcaseLimit int `koanf:"max_showcase_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8080",
		QueueSize:        100_000,
		WorkerCount:      runtime.NumCPU() * 10,
		DedupeSize:       500_000,
		MaxShowcaseLimit: 100,
	}
}
