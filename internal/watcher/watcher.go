// Package watcher follows the chart feed file and delivers parsed
// payloads to the UI. Producers rewrite the file whole, so events are
// debounced and given a short settle window before the file is read.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/leapscope/internal/chart"
)

const (
	defaultDebounce = 100 * time.Millisecond
	defaultSettle   = 50 * time.Millisecond
)

// Config configures a Watcher.
type Config struct {
	// Path is the feed file. Its parent directory is created when
	// missing so producers always have a target.
	Path string
	// Debounce coalesces event bursts; zero means 100ms.
	Debounce time.Duration
	// Settle is the pause between the last event and the read, giving
	// the producer time to finish writing; zero means 50ms.
	Settle time.Duration
	// MaxRows is the load-time row cap; zero means chart.DefaultMaxRows.
	MaxRows int
	Logger  *slog.Logger
}

// Watcher loads the feed file and watches it for rewrites.
type Watcher struct {
	path     string
	debounce time.Duration
	settle   time.Duration
	maxRows  int
	logger   *slog.Logger
}

// New creates a watcher for the configured path.
func New(cfg Config) *Watcher {
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	settle := cfg.Settle
	if settle <= 0 {
		settle = defaultSettle
	}
	maxRows := cfg.MaxRows
	if maxRows <= 0 {
		maxRows = chart.DefaultMaxRows
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		path:     cfg.Path,
		debounce: debounce,
		settle:   settle,
		maxRows:  maxRows,
		logger:   logger,
	}
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

// Load reads and normalizes the feed file once.
func (w *Watcher) Load() (*chart.Data, error) {
	raw, err := os.ReadFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed file: %w", err)
	}
	d, err := chart.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed file: %w", err)
	}
	d.Normalize(w.maxRows)
	return d, nil
}

// Clear removes the feed file. Used by the UI's clear action; a missing
// file is not an error.
func (w *Watcher) Clear() error {
	if err := os.Remove(w.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove feed file: %w", err)
	}
	return nil
}

// Watch delivers payloads to send until the context is canceled. An
// initial load is attempted immediately; afterwards the parent directory
// is watched and rewrites of the feed file trigger a debounced reload.
// Unreadable or partially-written payloads are dropped, keeping whatever
// the UI already shows.
func (w *Watcher) Watch(ctx context.Context, send func(*chart.Data)) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create watch directory: %w", err)
	}

	if d, err := w.Load(); err == nil {
		send(d)
	} else {
		w.logger.Debug("no initial payload", "path", w.path, "error", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Info("watching feed file", "path", w.path)

	name := filepath.Base(w.path)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				time.Sleep(w.settle)
				d, err := w.Load()
				if err != nil {
					w.logger.Debug("dropping unreadable payload", "path", w.path, "error", err)
					return
				}
				w.logger.Debug("feed updated", "path", w.path, "rows", len(d.Rows))
				send(d)
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}
