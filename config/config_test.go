// ABOUTME: Tests for configuration loading and defaults
package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("KINDLING_DB_PATH", "")
	t.Setenv("KINDLING_CACHE_DIR", "")
	t.Setenv("KINDLING_DEBUG", "")

	cfg := Load()
	assert.Equal(t, "kindling.db", filepath.Base(cfg.DBPath))
	assert.Contains(t, cfg.DBPath, AppName)
	assert.Contains(t, cfg.CacheDir, AppName)
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("KINDLING_DB_PATH", "/tmp/custom.db")
	t.Setenv("KINDLING_CACHE_DIR", "/tmp/custom-cache")
	t.Setenv("KINDLING_DEBUG", "true")

	cfg := Load()
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, "/tmp/custom-cache", cfg.CacheDir)
	assert.True(t, cfg.Debug)
}

func TestLoadRejectsBadDebugValue(t *testing.T) {
	t.Setenv("KINDLING_DEBUG", "definitely")

	cfg := Load()
	assert.False(t, cfg.Debug)
}
