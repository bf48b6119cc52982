package stats

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; the history is disposable, so users delete the database rather
// than migrate.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match
// the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Result is one row of encode history.
type Result struct {
	ID             int64
	RunID          string
	RecordedAt     time.Time
	Filename       string
	OriginalSize   int64
	NewSize        int64
	Ratio          float64
	ElapsedSeconds float64
	Command        string
	Success        bool
}

// Store manages encode history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the stats database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure stats directory: %w", err)
		}
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

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to start over)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Add appends one result row. RecordedAt defaults to now and Ratio is
// derived from the sizes when unset.
func (s *Store) Add(ctx context.Context, result Result) (*Result, error) {
	if result.RecordedAt.IsZero() {
		result.RecordedAt = time.Now().UTC()
	}
	if result.Ratio == 0 && result.OriginalSize > 0 {
		result.Ratio = float64(result.NewSize) / float64(result.OriginalSize)
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO encode_results (
            run_id, recorded_at, filename, original_size, new_size,
            ratio, elapsed_seconds, command, success
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.RunID,
		result.RecordedAt.UTC().Format(time.RFC3339Nano),
		result.Filename,
		result.OriginalSize,
		result.NewSize,
		result.Ratio,
		result.ElapsedSeconds,
		result.Command,
		boolToInt(result.Success),
	)
	if err != nil {
		return nil, fmt.Errorf("insert result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	result.ID = id
	return &result, nil
}

const resultColumns = "id, run_id, recorded_at, filename, original_size, new_size, ratio, elapsed_seconds, command, success"

// List returns history rows ordered oldest first. A zero limit returns
// everything.
func (s *Store) List(ctx context.Context, limit int) ([]*Result, error) {
	query := `SELECT ` + resultColumns + ` FROM encode_results ORDER BY recorded_at, id`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var results []*Result
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// ListRun returns the rows recorded under one batch run.
func (s *Store) ListRun(ctx context.Context, runID string) ([]*Result, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+resultColumns+` FROM encode_results WHERE run_id = ? ORDER BY recorded_at, id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list run results: %w", err)
	}
	defer rows.Close()

	var results []*Result
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// Summary aggregates history totals for display.
type Summary struct {
	Total         int
	Succeeded     int
	Failed        int
	OriginalBytes int64
	NewBytes      int64
	ElapsedSecs   float64
}

// Summarize computes totals over the whole history.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1),
               COALESCE(SUM(success), 0),
               COALESCE(SUM(CASE WHEN success = 1 THEN original_size ELSE 0 END), 0),
               COALESCE(SUM(CASE WHEN success = 1 THEN new_size ELSE 0 END), 0),
               COALESCE(SUM(elapsed_seconds), 0)
        FROM encode_results`)

	var summary Summary
	if err := row.Scan(&summary.Total, &summary.Succeeded, &summary.OriginalBytes, &summary.NewBytes, &summary.ElapsedSecs); err != nil {
		return Summary{}, fmt.Errorf("summarize results: %w", err)
	}
	summary.Failed = summary.Total - summary.Succeeded
	return summary, nil
}

func scanResult(scanner interface{ Scan(dest ...any) error }) (*Result, error) {
	var (
		result      Result
		recordedRaw string
		success     int64
	)
	if err := scanner.Scan(
		&result.ID,
		&result.RunID,
		&recordedRaw,
		&result.Filename,
		&result.OriginalSize,
		&result.NewSize,
		&result.Ratio,
		&result.ElapsedSeconds,
		&result.Command,
		&success,
	); err != nil {
		return nil, err
	}
	result.Success = success != 0
	if recorded, err := time.Parse(time.RFC3339Nano, recordedRaw); err == nil {
		result.RecordedAt = recorded
	}
	return &result, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
