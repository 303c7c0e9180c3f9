package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Journal is the run history store.
type Journal struct {
	db   *sql.DB
	path string
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Open creates or opens the journal at path and applies pending migrations.
func Open(path string) (*Journal, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("journal path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	if err := applyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db, path: path}, nil
}

// Path returns the database file location.
func (j *Journal) Path() string { return j.path }

// Close releases the database handle.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record stores run and its outputs. An empty ID is filled with a new one.
func (j *Journal) Record(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("nil run")
	}
	if strings.TrimSpace(run.Source) == "" {
		return errors.New("run source required")
	}
	if run.ID == "" {
		run.ID = NewRunID()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = run.StartedAt
	}
	if run.Status == "" {
		run.Status = StatusSucceeded
	}

	return retryOnBusy(ctx, func() error {
		tx, err := j.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin record tx: %w", err)
		}
		defer func() {
			_ = tx.Rollback()
		}()

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (id, source, mode, format, status, error_kind, error_message, started_at, finished_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, run.Source, run.Mode, run.Format, string(run.Status), run.ErrorKind, run.ErrorMessage,
			formatTime(run.StartedAt), formatTime(run.FinishedAt),
		); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}
		for _, out := range run.Outputs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO run_outputs (run_id, stream_index, path, mode, format, suffix, missing, bytes)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				run.ID, out.StreamIndex, out.Path, out.Mode, out.Format, out.Suffix, out.Missing, out.Bytes,
			); err != nil {
				return fmt.Errorf("insert output %d: %w", out.StreamIndex, err)
			}
		}
		return tx.Commit()
	})
}

// List returns runs newest first.
func (j *Journal) List(ctx context.Context, filter Filter) ([]Run, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	query := `SELECT id, source, mode, format, status, error_kind, error_message, started_at, finished_at FROM runs`
	var args []any
	if source := strings.TrimSpace(filter.Source); source != "" {
		query += ` WHERE source = ?`
		args = append(args, source)
	}
	query += ` ORDER BY started_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	var runs []Run
	for rows.Next() {
		var (
			run               Run
			status            string
			started, finished string
		)
		if err := rows.Scan(&run.ID, &run.Source, &run.Mode, &run.Format, &status, &run.ErrorKind, &run.ErrorMessage, &started, &finished); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Status = Status(status)
		run.StartedAt = parseTime(started)
		run.FinishedAt = parseTime(finished)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	_ = rows.Close()

	for i := range runs {
		outputs, err := j.outputs(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Outputs = outputs
	}
	return runs, nil
}

func (j *Journal) outputs(ctx context.Context, runID string) ([]Output, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT stream_index, path, mode, format, suffix, missing, bytes FROM run_outputs WHERE run_id = ? ORDER BY stream_index`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query outputs: %w", err)
	}
	defer rows.Close()
	var outputs []Output
	for rows.Next() {
		var out Output
		if err := rows.Scan(&out.StreamIndex, &out.Path, &out.Mode, &out.Format, &out.Suffix, &out.Missing, &out.Bytes); err != nil {
			return nil, fmt.Errorf("scan output: %w", err)
		}
		outputs = append(outputs, out)
	}
	return outputs, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay = min(delay*2, busyRetryMaxBackoff)
	}
	return lastErr
}
