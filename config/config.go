// ABOUTME: Runtime configuration from .env files and environment variables
// ABOUTME: Defaults resolve under XDG data paths like the rest of the tool
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// AppName is the directory name used under XDG data paths.
const AppName = "kindling"

// Config holds the resolved runtime settings.
type Config struct {
	// DBPath is the sqlite database file location.
	DBPath string

	// CacheDir holds the badger snapshot store.
	CacheDir string

	// Debug switches zap to development logging.
	Debug bool
}

// Load reads an optional .env file, then environment variables, then fills
// XDG-based defaults. A missing .env is not an error.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:   os.Getenv("KINDLING_DB_PATH"),
		CacheDir: os.Getenv("KINDLING_CACHE_DIR"),
	}
	if v := os.Getenv("KINDLING_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		cfg.Debug = err == nil && debug
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(xdg.DataHome, AppName, "kindling.db")
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = filepath.Join(xdg.CacheHome, AppName, "snapshots")
	}
	return cfg
}
