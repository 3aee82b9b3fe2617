package config

import "fmt"

// Validate checks the merged configuration before anything runs with it.
func Validate(cfg *Config) error {
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn must not be empty")
	}
	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", cfg.Log.Level)
	}
	if cfg.Data.MaxRows <= 0 {
		return fmt.Errorf("data.max_rows must be positive, got %d", cfg.Data.MaxRows)
	}
	if cfg.History.Limit <= 0 {
		return fmt.Errorf("history.limit must be positive, got %d", cfg.History.Limit)
	}
	if cfg.UI.TickInterval <= 0 {
		return fmt.Errorf("ui.tick_interval must be positive, got %s", cfg.UI.TickInterval)
	}
	if cfg.Watch.Debounce <= 0 || cfg.Watch.Settle < 0 {
		return fmt.Errorf("watch.debounce must be positive and watch.settle non-negative")
	}
	return nil
}
