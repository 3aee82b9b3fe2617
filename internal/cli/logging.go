package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leapscope/internal/cli/config"
)

// newLogger opens the configured log file and builds the process logger.
// The handle stays open for the life of the process; the OS reclaims it
// on exit.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	logDir := filepath.Dir(cfg.Log.File)
	if logDir != "." && logDir != "" {
		if err := os.MkdirAll(logDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", cfg.Log.File, err)
	}

	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	})), nil
}
