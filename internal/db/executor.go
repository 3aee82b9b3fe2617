// Package db runs drill-down queries against DuckDB, either a local
// database file or MotherDuck via the md: DSN. The connection is opened
// lazily on the first query and reused for the life of the process.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/leapstack-labs/leapscope/internal/chart"
)

// ErrNoToken is returned when the DSN targets MotherDuck but no token
// is present in the environment. The text is shown verbatim in the UI.
var ErrNoToken = errors.New("MotherDuck not connected: set the MOTHERDUCK_TOKEN environment variable")

// Recorder receives the outcome of every executed query. Implementations
// must not block; failures are the recorder's problem, not the caller's.
type Recorder interface {
	RecordQuery(ctx context.Context, query string, took time.Duration, rowCount int, execErr error)
}

// Config configures an Executor.
type Config struct {
	// DSN is the duckdb connection string. Empty means "md:" (MotherDuck);
	// a file path or ":memory:" opens a local database.
	DSN string
	// Attach is an optional statement executed once after connecting,
	// typically an ATTACH for a local database file.
	Attach string
	// Recorder, when set, is notified after every Execute.
	Recorder Recorder
	Logger   *slog.Logger
}

// Executor owns the single lazily-opened DuckDB connection.
type Executor struct {
	cfg    Config
	logger *slog.Logger

	mu        sync.Mutex
	db        *sql.DB
	connected bool
}

// NewExecutor creates an executor; no connection is attempted until the
// first Execute.
func NewExecutor(cfg Config) *Executor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{cfg: cfg, logger: logger}
}

// Execute runs one query and decodes the full result grid. The outcome
// is reported to the recorder whether or not the query succeeded.
func (e *Executor) Execute(ctx context.Context, query string) (*chart.ExplainData, error) {
	start := time.Now()
	result, err := e.execute(ctx, query)
	took := time.Since(start)

	rowCount := 0
	if result != nil {
		rowCount = len(result.Rows)
	}
	if e.cfg.Recorder != nil {
		e.cfg.Recorder.RecordQuery(ctx, query, took, rowCount, err)
	}
	if err != nil {
		e.logger.Warn("query failed", "took", took, "error", err)
		return nil, err
	}
	e.logger.Debug("query executed", "took", took, "rows", rowCount)
	return result, nil
}

func (e *Executor) execute(ctx context.Context, query string) (*chart.ExplainData, error) {
	if err := e.ensureConnected(ctx); err != nil {
		return nil, err
	}
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectRows(rows)
}

// ensureConnected opens the connection on first use. Later calls are a
// mutex acquire and a flag check.
func (e *Executor) ensureConnected(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.connected {
		return nil
	}

	dsn := e.cfg.DSN
	if dsn == "" {
		dsn = "md:"
	}
	if strings.HasPrefix(dsn, "md:") && os.Getenv("MOTHERDUCK_TOKEN") == "" {
		return ErrNoToken
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}
	if e.cfg.Attach != "" {
		if _, err := db.ExecContext(ctx, e.cfg.Attach); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to attach database: %w", err)
		}
	}

	e.db = db
	e.connected = true
	e.logger.Info("database connected", "dsn", redactDSN(dsn))
	return nil
}

// Close shuts the connection down; safe to call without one.
func (e *Executor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	e.connected = false
	return err
}

// collectRows scans an entire result set into the cell universe the
// chart model uses (nil, bool, float64, string).
func collectRows(rows *sql.Rows) (*chart.ExplainData, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	result := &chart.ExplainData{Columns: cols}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make([]any, len(cols))
		for i, v := range values {
			row[i] = decodeValue(v)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return result, nil
}

// redactDSN keeps tokens embedded in md: DSNs out of the log.
func redactDSN(dsn string) string {
	if i := strings.Index(dsn, "motherduck_token="); i >= 0 {
		return dsn[:i] + "motherduck_token=***"
	}
	return dsn
}
