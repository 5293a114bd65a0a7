package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is re-run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS packages (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority    TEXT NOT NULL CHECK (priority IN ('High', 'Medium', 'Low')),
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		supervisor  TEXT NOT NULL DEFAULT '',
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id                TEXT PRIMARY KEY,
		package_id        TEXT NOT NULL REFERENCES packages(id) ON DELETE CASCADE,
		title             TEXT NOT NULL,
		tag               TEXT NOT NULL,
		priority          TEXT NOT NULL CHECK (priority IN ('High', 'Medium', 'Low')),
		assignee          TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL DEFAULT 'Not Started'
		                  CHECK (status IN ('Not Started', 'In Progress', 'Completed', 'On Hold')),
		deadline          TEXT NOT NULL,
		planned_end_date  TEXT NOT NULL,
		start_time        TEXT,
		end_time          TEXT,
		remark            TEXT NOT NULL DEFAULT '',
		status_updated_at TEXT,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS hold_events (
		activity_id TEXT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		seq         INTEGER NOT NULL,
		reason      TEXT NOT NULL,
		remarks     TEXT NOT NULL DEFAULT '',
		start_time  TEXT NOT NULL,
		end_time    TEXT,
		PRIMARY KEY (activity_id, seq)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activities_package ON activities(package_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_lineage ON activities(package_id, tag, deadline)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_status ON activities(status)`,
	`CREATE INDEX IF NOT EXISTS idx_hold_events_reason ON hold_events(reason)`,
}
