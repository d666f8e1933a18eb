// Package config loads Yardstick settings from the environment.
//
// Values come from YARDSTICK_* environment variables, optionally seeded
// from a .env file. Missing or unparsable numbers fall back to defaults;
// Validate rejects values that are present but nonsensical.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/HendryAvila/yardstick/internal/logging"
)

// Environment variable names.
const (
	EnvDataDir       = "YARDSTICK_DATA_DIR"
	EnvLogLevel      = "YARDSTICK_LOG_LEVEL"
	EnvLogFormat     = "YARDSTICK_LOG_FORMAT"
	EnvHistoryLimit  = "YARDSTICK_HISTORY_LIMIT"
	EnvCacheSize     = "YARDSTICK_CACHE_SIZE"
	EnvBatchParallel = "YARDSTICK_BATCH_PARALLEL"
)

// Defaults.
const (
	DefaultLogLevel      = "info"
	DefaultLogFormat     = logging.FormatConsole
	DefaultHistoryLimit  = 10
	DefaultCacheSize     = 256
	DefaultBatchParallel = 4
)

// Config holds every runtime setting.
type Config struct {
	// DataDir is the directory holding history.db.
	DataDir   string
	LogLevel  string
	LogFormat string
	// HistoryLimit is the default number of entries listed.
	HistoryLimit int
	// CacheSize bounds the evaluation cache; 0 disables it.
	CacheSize     int
	BatchParallel int
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:       filepath.Join(home, ".yardstick"),
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
		HistoryLimit:  DefaultHistoryLimit,
		CacheSize:     DefaultCacheSize,
		BatchParallel: DefaultBatchParallel,
	}
}

// Load reads the optional .env files (missing files are ignored) and
// then builds a Config from the process environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: loading %s: %w", f, err)
		}
	}

	cfg := FromEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv builds a Config using getenv for lookups.
func FromEnv(getenv func(string) string) Config {
	cfg := Default()

	if v := strings.TrimSpace(getenv(EnvDataDir)); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvLogFormat)); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	cfg.HistoryLimit = intOrDefault(getenv(EnvHistoryLimit), cfg.HistoryLimit)
	cfg.CacheSize = intOrDefault(getenv(EnvCacheSize), cfg.CacheSize)
	cfg.BatchParallel = intOrDefault(getenv(EnvBatchParallel), cfg.BatchParallel)

	return cfg
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config: %s must not be empty", EnvDataDir)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %s: %w", EnvLogLevel, err)
	}
	if c.LogFormat != logging.FormatConsole && c.LogFormat != logging.FormatJSON {
		return fmt.Errorf("config: %s must be %q or %q, got %q", EnvLogFormat, logging.FormatConsole, logging.FormatJSON, c.LogFormat)
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("config: %s must be at least 1, got %d", EnvHistoryLimit, c.HistoryLimit)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("config: %s must not be negative, got %d", EnvCacheSize, c.CacheSize)
	}
	if c.BatchParallel < 1 {
		return fmt.Errorf("config: %s must be at least 1, got %d", EnvBatchParallel, c.BatchParallel)
	}
	return nil
}

func intOrDefault(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
