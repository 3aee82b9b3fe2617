// Package config provides configuration management for the leapscope
// CLI. Values merge from defaults, a YAML config file, LEAPSCOPE_*
// environment variables, and command-line flags, in that order.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Config holds all leapscope configuration options.
type Config struct {
	// DataDir anchors all derived paths; defaults to ~/.leapscope.
	DataDir string `koanf:"data_dir"`
	// WatchFile is the chart feed file; defaults to <data_dir>/current.json.
	WatchFile string `koanf:"watch_file"`
	// StateFile is the query-log database; defaults to <data_dir>/state.db.
	StateFile string `koanf:"state_file"`
	// Verbose forces debug logging regardless of log.level.
	Verbose bool `koanf:"verbose"`

	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
	UI       UIConfig       `koanf:"ui"`
	Watch    WatchConfig    `koanf:"watch"`
	History  HistoryConfig  `koanf:"history"`
	Data     DataConfig     `koanf:"data"`
}

// DatabaseConfig selects the drill-down target.
type DatabaseConfig struct {
	// DSN is the duckdb connection string; "md:" targets MotherDuck,
	// a path or ":memory:" opens a local database.
	DSN string `koanf:"dsn"`
	// Attach is an optional statement run once after connecting.
	Attach string `koanf:"attach"`
}

// LogConfig controls the file-backed logger. The terminal belongs to
// the dashboard, so logs never go to stdout.
type LogConfig struct {
	Level string `koanf:"level"`
	File  string `koanf:"file"`
}

// UIConfig holds dashboard tuning knobs.
type UIConfig struct {
	// TickInterval drives animations; the default is 100ms.
	TickInterval time.Duration `koanf:"tick_interval"`
}

// WatchConfig tunes feed-file watching.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
	Settle   time.Duration `koanf:"settle"`
}

// HistoryConfig covers the snapshot listing.
type HistoryConfig struct {
	// Dir defaults to <data_dir>/history.
	Dir   string `koanf:"dir"`
	Limit int    `koanf:"limit"`
}

// DataConfig covers payload normalization.
type DataConfig struct {
	MaxRows int `koanf:"max_rows"`
}

// LogLevel parses the configured level, honoring Verbose.
func (c *Config) LogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultDataDir returns ~/.leapscope, falling back to a relative
// directory when the home directory cannot be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".leapscope"
	}
	return filepath.Join(home, ".leapscope")
}
