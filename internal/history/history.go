// Package history lists and loads past chart snapshots. Snapshots are
// plain payload files dropped into the history directory by the
// producing process; this package only ever reads or deletes them.
package history

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapscope/internal/chart"
)

// DefaultLimit caps how many entries List returns.
const DefaultLimit = 20

// Entry is one snapshot in the history listing.
type Entry struct {
	Path      string
	Title     string
	Timestamp int64
	RowCount  int
	ChartType string
}

// Config configures a Store.
type Config struct {
	// Dir is the snapshot directory. A missing directory is an empty
	// history, not an error.
	Dir string
	// Limit caps List results; zero means DefaultLimit.
	Limit int
	// MaxRows is the row cap applied when loading a snapshot; zero means
	// chart.DefaultMaxRows.
	MaxRows int
	Logger  *slog.Logger
}

// Store reads the snapshot directory.
type Store struct {
	dir     string
	limit   int
	maxRows int
	logger  *slog.Logger
}

// NewStore creates a store over the configured directory.
func NewStore(cfg Config) *Store {
	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	maxRows := cfg.MaxRows
	if maxRows <= 0 {
		maxRows = chart.DefaultMaxRows
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{dir: cfg.Dir, limit: limit, maxRows: maxRows, logger: logger}
}

// List returns snapshot entries newest first, capped at the configured
// limit. Files that fail to parse are skipped, so one bad snapshot never
// hides the rest.
func (s *Store) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history directory: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, de.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			s.logger.Debug("skipping unreadable snapshot", "path", path, "error", err)
			continue
		}
		d, err := chart.Decode(raw)
		if err != nil {
			s.logger.Debug("skipping malformed snapshot", "path", path, "error", err)
			continue
		}
		ts := d.Timestamp
		if ts == 0 {
			if info, err := de.Info(); err == nil {
				ts = info.ModTime().UnixMilli()
			}
		}
		entries = append(entries, Entry{
			Path:      path,
			Title:     d.Title,
			Timestamp: ts,
			RowCount:  len(d.Rows),
			ChartType: string(d.Kind()),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Timestamp != entries[j].Timestamp {
			return entries[i].Timestamp > entries[j].Timestamp
		}
		return entries[i].Path < entries[j].Path
	})
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	return entries, nil
}

// Load reads one snapshot fully, applying the same normalization a live
// update gets.
func (s *Store) Load(path string) (*chart.Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	d, err := chart.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	d.Normalize(s.maxRows)
	return d, nil
}

// Delete removes one snapshot file.
func (s *Store) Delete(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Clear removes every snapshot file in the directory.
func (s *Store) Clear() error {
	dirEntries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read history directory: %w", err)
	}
	var errs []error
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, de.Name())); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
