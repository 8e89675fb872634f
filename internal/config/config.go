package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds process-wide settings.
type Config struct {
	DBPath         string
	Workers        int
	StandardOffset time.Duration
	ExtendedOffset time.Duration
	LogCalls       bool
	EditAttempts   int
	CacheSize      int
}

// Default returns a Config with sensible defaults. DBPath falls back to
// ./timecard.db when the home directory cannot be resolved.
func Default() Config {
	dbPath := "timecard.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".timecard", "timecard.db")
	}
	return Config{
		DBPath:         dbPath,
		Workers:        4,
		StandardOffset: 2 * time.Hour,
		ExtendedOffset: 3 * time.Hour,
		LogCalls:       false,
		EditAttempts:   5,
		CacheSize:      10_000,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset or invalid values.
func Load() Config {
	cfg := Default()

	if v := os.Getenv("TIMECARD_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TIMECARD_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("TIMECARD_STANDARD_OFFSET_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && validOffsetMin(n) {
			cfg.StandardOffset = time.Duration(n) * time.Minute
		}
	}
	if v := os.Getenv("TIMECARD_EXTENDED_OFFSET_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && validOffsetMin(n) {
			cfg.ExtendedOffset = time.Duration(n) * time.Minute
		}
	}
	if v := os.Getenv("TIMECARD_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TIMECARD_EDIT_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.EditAttempts = n
		}
	}
	if v := os.Getenv("TIMECARD_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheSize = n
		}
	}

	return cfg
}

func validOffsetMin(n int) bool {
	return n >= -14*60 && n <= 14*60
}
