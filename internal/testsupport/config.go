// Package testsupport provides shared helpers for package tests: temp-dir
// backed configs and fixture files.
package testsupport

import (
	"path/filepath"
	"testing"

	"karasub/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.PresetsDir = filepath.Join(base, "presets")
	cfg.Logging.Format = "json"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithMaxWords overrides the chunker's word budget on the test config.
func WithMaxWords(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Chunk.MaxWords = n
	}
}
