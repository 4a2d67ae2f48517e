package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// schema is portable between SQLite and Postgres. Dates are YYYY-MM-DD text,
// instants are RFC3339 text in UTC.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS profile (
		id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		role TEXT NOT NULL,
		timezone TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS coach_profile (
		coach_id TEXT PRIMARY KEY,
		hourly_rate DOUBLE PRECISION,
		is_ta BOOLEAN NOT NULL DEFAULT FALSE,
		legacy_tier TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS coach_tier_assignment (
		coach_id TEXT NOT NULL,
		tier TEXT NOT NULL,
		PRIMARY KEY (coach_id, tier)
	)`,
	`CREATE TABLE IF NOT EXISTS class (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		class_type TEXT NOT NULL DEFAULT '',
		coach_id TEXT NOT NULL,
		day TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		timezone TEXT NOT NULL DEFAULT '',
		term_start TEXT NOT NULL DEFAULT '',
		term_end TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_class_coach ON class(coach_id)`,
	`CREATE TABLE IF NOT EXISTS check_in (
		id TEXT PRIMARY KEY,
		coach_id TEXT NOT NULL,
		class_id TEXT NOT NULL,
		session_date TEXT NOT NULL,
		checked_in_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_check_in_meeting ON check_in(coach_id, class_id, session_date)`,
	`CREATE INDEX IF NOT EXISTS idx_check_in_session_date ON check_in(session_date)`,
	`CREATE TABLE IF NOT EXISTS private_session (
		id TEXT PRIMARY KEY,
		coach_id TEXT NOT NULL,
		student_id TEXT NOT NULL,
		requested_date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		timezone TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		price DOUBLE PRECISION,
		completed_at TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_private_session_status_date ON private_session(status, requested_date)`,
	`CREATE TABLE IF NOT EXISTS term (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS calendar_event (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		type TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL DEFAULT '',
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_calendar_event_start ON calendar_event(start_date)`,
}

// InitDB initializes the database schema.
// PRE: db is a valid database connection for dialect
// POST: All tables exist; on SQLite, WAL mode and foreign keys are enabled
func InitDB(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if dialect == DialectSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '('); i > 0 {
		return strings.TrimSpace(stmt[:i])
	}
	return stmt
}
