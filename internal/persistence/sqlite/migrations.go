package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations holds the ordered schema steps. Each entry runs at most once;
// applied versions are tracked in schema_migrations.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS members (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		nickname TEXT NOT NULL UNIQUE,
		avatar_url TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS places (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		thumbnail_url TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS schedules (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS attendees (
		id TEXT PRIMARY KEY,
		schedule_id TEXT NOT NULL REFERENCES schedules(id) ON DELETE CASCADE,
		member_id TEXT NOT NULL REFERENCES members(id),
		role TEXT NOT NULL CHECK (role IN ('AUTHOR', 'GUEST')),
		permission TEXT NOT NULL CHECK (permission IN ('READ', 'CHAT', 'EDIT', 'ALL')),
		created_at TEXT NOT NULL,
		UNIQUE (schedule_id, member_id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_attendees_single_author
		ON attendees(schedule_id) WHERE role = 'AUTHOR'`,
	`CREATE TABLE IF NOT EXISTS routes (
		id TEXT PRIMARY KEY,
		schedule_id TEXT NOT NULL REFERENCES schedules(id) ON DELETE CASCADE,
		place_id TEXT NOT NULL REFERENCES places(id),
		route_order INTEGER NOT NULL CHECK (route_order > 0),
		UNIQUE (schedule_id, route_order)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_routes_schedule ON routes(schedule_id)`,
	`CREATE INDEX IF NOT EXISTS idx_attendees_schedule ON attendees(schedule_id)`,
}

// Migrate applies all pending schema migrations.
func (cp *ConnectionPool) Migrate(ctx context.Context) error {
	if _, err := cp.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		return fmt.Errorf("sqlite: failed to create migration table: %w", err)
	}

	for version, statement := range migrations {
		applied, err := cp.migrationApplied(ctx, version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		err = cp.WithTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, statement); err != nil {
				return fmt.Errorf("sqlite: migration %d failed: %w", version, err)
			}
			if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
				return fmt.Errorf("sqlite: failed to record migration %d: %w", version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (cp *ConnectionPool) migrationApplied(ctx context.Context, version int) (bool, error) {
	var count int
	err := cp.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("sqlite: failed to query migration state: %w", err)
	}
	return count > 0, nil
}
