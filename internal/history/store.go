// Package history persists a journal of archive runs so an operator can
// answer "what did the last run do, and when" without digging through
// backup directories.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages run-history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Entry is one site's outcome within one run. Error is empty for a clean
// run; a non-empty value records the per-site fatal error text.
type Entry struct {
	RunID          string
	Site           string
	Mode           string
	RanAt          time.Time
	UpcomingBefore int
	PastBefore     int
	Archived       int
	Remaining      int
	PastAfter      int
	Warnings       int
	Error          string
}

// Open initializes or connects to the history database and applies
// migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
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

// Record inserts one journal row.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            run_id, site, mode, ran_at,
            upcoming_before, past_before, archived, remaining, past_after,
            warnings, error
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.Site,
		entry.Mode,
		entry.RanAt.UTC().Format(time.RFC3339),
		entry.UpcomingBefore,
		entry.PastBefore,
		entry.Archived,
		entry.Remaining,
		entry.PastAfter,
		entry.Warnings,
		entry.Error,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns the newest entries first, optionally filtered by site.
// Limit caps the result size; values below one fall back to 20.
func (s *Store) Recent(ctx context.Context, limit int, site string) ([]Entry, error) {
	if limit < 1 {
		limit = 20
	}

	query := `SELECT run_id, site, mode, ran_at,
        upcoming_before, past_before, archived, remaining, past_after,
        warnings, error
        FROM runs`
	args := []any{}
	if site != "" {
		query += " WHERE site = ?"
		args = append(args, site)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var ranAt string
		if err := rows.Scan(
			&entry.RunID, &entry.Site, &entry.Mode, &ranAt,
			&entry.UpcomingBefore, &entry.PastBefore, &entry.Archived,
			&entry.Remaining, &entry.PastAfter,
			&entry.Warnings, &entry.Error,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339, ranAt); parseErr == nil {
			entry.RanAt = parsed
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return entries, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}
