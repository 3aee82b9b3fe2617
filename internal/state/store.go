// Package state persists the drill-down query log in a local SQLite
// database. The schema is owned by embedded goose migrations.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // sqlite driver
)

// QueryRecord is one executed drill-down query.
type QueryRecord struct {
	ID         string
	Query      string
	Status     string // "ok" or "error"
	Error      string
	DurationMS int64
	RowCount   int
	ExecutedAt time.Time
}

// Store wraps the SQLite connection.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating when needed) the state database at path and runs
// pending migrations.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	// SQLite is single-writer; one pooled connection avoids lock churn
	// and keeps :memory: databases coherent in tests.
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordQuery logs one execution outcome. It satisfies the executor's
// recorder hook, so it never fails the caller; write errors only land in
// the log.
func (s *Store) RecordQuery(ctx context.Context, query string, took time.Duration, rowCount int, execErr error) {
	status := "ok"
	errText := ""
	if execErr != nil {
		status = "error"
		errText = execErr.Error()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO query_log (id, query, status, error, duration_ms, row_count, executed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), query, status, errText,
		took.Milliseconds(), rowCount, time.Now().UnixMilli())
	if err != nil {
		s.logger.Warn("failed to record query", "error", err)
	}
}

// RecentQueries returns the latest records, newest first.
func (s *Store) RecentQueries(ctx context.Context, limit int) ([]QueryRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, status, error, duration_ms, row_count, executed_at
		FROM query_log
		ORDER BY executed_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []QueryRecord
	for rows.Next() {
		var r QueryRecord
		var errText sql.NullString
		var executedAt int64
		if err := rows.Scan(&r.ID, &r.Query, &r.Status, &errText, &r.DurationMS, &r.RowCount, &executedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.Error = errText.String
		r.ExecutedAt = time.UnixMilli(executedAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}
