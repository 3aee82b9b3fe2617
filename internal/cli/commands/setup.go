// Package commands implements the leapscope subcommands.
package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapscope/internal/cli/config"
	"github.com/leapstack-labs/leapscope/internal/db"
	"github.com/leapstack-labs/leapscope/internal/state"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Executor *db.Executor
	State    *state.Store
}

// NewCommandContext creates a CommandContext with a live query executor.
// Returns the context and a cleanup function that must be called
// (typically via defer). Executed queries land in the same query log the
// dashboard writes to.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	st, err := state.Open(cfg.StateFile, logger)
	if err != nil {
		return nil, nil, err
	}

	exec := db.NewExecutor(db.Config{
		DSN:      cfg.Database.DSN,
		Attach:   cfg.Database.Attach,
		Recorder: st,
		Logger:   logger,
	})

	cleanup := func() {
		_ = exec.Close()
		_ = st.Close()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Executor: exec,
		State:    st,
	}, cleanup, nil
}

// NewCommandContextWithoutExecutor creates a CommandContext without
// opening any database. Useful for commands that only touch files.
func NewCommandContextWithoutExecutor(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    getConfig(),
		Logger: config.GetLogger(cmd.Context()),
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	dataDir := getEnvOrDefault("LEAPSCOPE_DATA_DIR", config.DefaultDataDir())

	cfg := &config.Config{
		DataDir:   dataDir,
		WatchFile: getEnvOrDefault("LEAPSCOPE_WATCH_FILE", filepath.Join(dataDir, "current.json")),
		StateFile: getEnvOrDefault("LEAPSCOPE_STATE_FILE", filepath.Join(dataDir, "state.db")),
		Verbose:   os.Getenv("LEAPSCOPE_VERBOSE") == "true",
	}
	cfg.Database.DSN = getEnvOrDefault("LEAPSCOPE_DATABASE_DSN", "md:")
	cfg.Database.Attach = os.Getenv("LEAPSCOPE_DATABASE_ATTACH")
	cfg.Log.Level = getEnvOrDefault("LEAPSCOPE_LOG_LEVEL", "info")
	cfg.Log.File = filepath.Join(dataDir, "leapscope.log")
	cfg.History.Dir = getEnvOrDefault("LEAPSCOPE_HISTORY_DIR", filepath.Join(dataDir, "history"))
	cfg.History.Limit = 20
	cfg.Data.MaxRows = 50
	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
