package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/leapscope/internal/cli/config"
	"github.com/leapstack-labs/leapscope/internal/db"
	"github.com/leapstack-labs/leapscope/internal/history"
	"github.com/leapstack-labs/leapscope/internal/state"
	"github.com/leapstack-labs/leapscope/internal/tui"
	"github.com/leapstack-labs/leapscope/internal/watcher"
)

// runDashboard wires the dashboard's collaborators from config and runs
// it until the user quits or a signal arrives.
func runDashboard(ctx context.Context) error {
	cfg := GetConfig(ctx)
	logger := config.GetLogger(ctx)

	st, err := state.Open(cfg.StateFile, logger)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	exec := db.NewExecutor(db.Config{
		DSN:      cfg.Database.DSN,
		Attach:   cfg.Database.Attach,
		Recorder: st,
		Logger:   logger,
	})
	defer func() { _ = exec.Close() }()

	feed := watcher.New(watcher.Config{
		Path:     cfg.WatchFile,
		Debounce: cfg.Watch.Debounce,
		Settle:   cfg.Watch.Settle,
		MaxRows:  cfg.Data.MaxRows,
		Logger:   logger,
	})

	hist := history.NewStore(history.Config{
		Dir:     cfg.History.Dir,
		Limit:   cfg.History.Limit,
		MaxRows: cfg.Data.MaxRows,
		Logger:  logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle interrupt signals. Ctrl+C inside the dashboard arrives as a
	// key event; this covers SIGTERM and signals sent from outside.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("signal received, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.Info("dashboard starting",
		"watch_file", cfg.WatchFile,
		"database", cfg.Database.DSN,
		"history_dir", cfg.History.Dir)

	return tui.Run(ctx, tui.Deps{
		Executor: exec,
		History:  hist,
		Feed:     feed,
		Tick:     cfg.UI.TickInterval,
		Logger:   logger,
	})
}
