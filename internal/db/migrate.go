package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent, so the
// whole list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS templates (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		duration_min INTEGER NOT NULL CHECK(duration_min > 0),
		category     TEXT NOT NULL DEFAULT '',
		priority     TEXT NOT NULL DEFAULT 'medium'
		             CHECK(priority IN ('high','medium','low')),
		color        TEXT NOT NULL DEFAULT '',
		is_default   INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS events (
		id                 TEXT PRIMARY KEY,
		title              TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		start_at           TEXT NOT NULL,
		end_at             TEXT NOT NULL,
		all_day            INTEGER NOT NULL DEFAULT 0,
		recur_type         TEXT NOT NULL DEFAULT 'none'
		                   CHECK(recur_type IN ('none','daily','weekly','monthly')),
		weekly_days        TEXT NOT NULL DEFAULT '',
		monthly_day        INTEGER NOT NULL DEFAULT 0
		                   CHECK(monthly_day BETWEEN 0 AND 31),
		fixed              INTEGER NOT NULL DEFAULT 0,
		category           TEXT NOT NULL DEFAULT '',
		priority           TEXT NOT NULL DEFAULT 'medium'
		                   CHECK(priority IN ('high','medium','low')),
		color              TEXT NOT NULL DEFAULT '',
		notifications      INTEGER NOT NULL DEFAULT 0,
		source_template_id TEXT,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_at)`,
	`CREATE INDEX IF NOT EXISTS idx_events_source_template ON events(source_template_id)`,

	`CREATE TABLE IF NOT EXISTS event_exclusions (
		event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		day      TEXT NOT NULL,
		PRIMARY KEY (event_id, day)
	)`,

	`CREATE TABLE IF NOT EXISTS todos (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		due_at       TEXT NOT NULL,
		recur_type   TEXT NOT NULL DEFAULT 'none'
		             CHECK(recur_type IN ('none','daily','weekly','monthly')),
		weekly_days  TEXT NOT NULL DEFAULT '',
		monthly_day  INTEGER NOT NULL DEFAULT 0
		             CHECK(monthly_day BETWEEN 0 AND 31),
		priority     TEXT NOT NULL DEFAULT 'medium'
		             CHECK(priority IN ('high','medium','low')),
		category     TEXT NOT NULL DEFAULT '',
		completed_at TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_todos_due ON todos(due_at)`,

	`CREATE TABLE IF NOT EXISTS settings (
		id               TEXT PRIMARY KEY DEFAULT 'default',
		chronotype       TEXT NOT NULL DEFAULT 'morning'
		                 CHECK(chronotype IN ('morning','evening')),
		work_session_min INTEGER NOT NULL DEFAULT 50,
		break_min        INTEGER NOT NULL DEFAULT 10,
		wake_time        TEXT NOT NULL DEFAULT '07:00',
		sleep_time       TEXT NOT NULL DEFAULT '23:00'
	)`,

	`INSERT OR IGNORE INTO settings (id) VALUES ('default')`,

	`CREATE TABLE IF NOT EXISTS concentration_scores (
		hour  INTEGER PRIMARY KEY CHECK(hour BETWEEN 0 AND 23),
		score REAL NOT NULL CHECK(score BETWEEN 0 AND 1)
	)`,

	`CREATE TABLE IF NOT EXISTS duration_learnings (
		task_name        TEXT PRIMARY KEY,
		average_duration REAL NOT NULL,
		sample_size      INTEGER NOT NULL DEFAULT 0,
		accuracy         REAL NOT NULL DEFAULT 0
	)`,

	// Default templates are reference data: listed, never scheduled.
	`INSERT OR IGNORE INTO templates (id, name, duration_min, category, priority, color, is_default, created_at)
		VALUES ('default-sleep', 'Sleep', 480, 'life', 'low', '#928374', 1, '2025-01-01T00:00:00Z')`,
	`INSERT OR IGNORE INTO templates (id, name, duration_min, category, priority, color, is_default, created_at)
		VALUES ('default-meal', 'Meal', 45, 'life', 'medium', '#d79921', 1, '2025-01-01T00:00:00Z')`,
	`INSERT OR IGNORE INTO templates (id, name, duration_min, category, priority, color, is_default, created_at)
		VALUES ('default-commute', 'Commute', 30, 'life', 'low', '#689d6a', 1, '2025-01-01T00:00:00Z')`,

	`ALTER TABLE events ADD COLUMN location TEXT NOT NULL DEFAULT ''`,
}
