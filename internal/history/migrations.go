package history

import (
	"context"
	"fmt"
)

type migration struct {
	version string
	sql     string
}

var migrations = []migration{
	{
		version: "0001_runs",
		sql: `CREATE TABLE IF NOT EXISTS runs (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            run_id TEXT NOT NULL,
            site TEXT NOT NULL,
            mode TEXT NOT NULL,
            ran_at TEXT NOT NULL,
            upcoming_before INTEGER NOT NULL,
            past_before INTEGER NOT NULL,
            archived INTEGER NOT NULL,
            remaining INTEGER NOT NULL,
            past_after INTEGER NOT NULL,
            warnings INTEGER NOT NULL DEFAULT 0,
            error TEXT NOT NULL DEFAULT ''
        )`,
	},
	{
		version: "0002_runs_site_index",
		sql:     `CREATE INDEX IF NOT EXISTS idx_runs_site ON runs(site)`,
	},
}

func (s *Store) applyMigrations(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)"); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var count int
		row := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = ?", m.version)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("scan migration version: %w", err)
		}
		if count > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("record migration %s: %w", m.version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	return nil
}
