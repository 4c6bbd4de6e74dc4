package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables. Dependent collections deliberately carry no FOREIGN KEY
	// on programme_id: referential cleanup is done by cascade delete in the
	// delete-programme operation, not by the database.
	schema := `
	CREATE TABLE IF NOT EXISTS programme (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT,
		is_recurring INTEGER NOT NULL DEFAULT 0,
		frequency TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		coordinator TEXT NOT NULL DEFAULT '',
		capacity INTEGER NOT NULL DEFAULT 0,
		current_attendees INTEGER NOT NULL DEFAULT 0,
		attendees TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS programme_attendance (
		id TEXT PRIMARY KEY,
		programme_id TEXT NOT NULL,
		member_id TEXT NOT NULL,
		date TEXT NOT NULL,
		is_present INTEGER NOT NULL,
		notes TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_attendance_programme ON programme_attendance(programme_id);

	CREATE TABLE IF NOT EXISTS programme_resource (
		id TEXT PRIMARY KEY,
		programme_id TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL,
		unit TEXT NOT NULL DEFAULT '',
		cost REAL NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_resource_programme ON programme_resource(programme_id);

	CREATE TABLE IF NOT EXISTS programme_reminder (
		id TEXT PRIMARY KEY,
		programme_id TEXT NOT NULL,
		message TEXT NOT NULL,
		recipient TEXT NOT NULL DEFAULT '',
		remind_at TEXT NOT NULL,
		status TEXT NOT NULL,
		sent_at TEXT,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reminder_programme ON programme_reminder(programme_id);

	CREATE TABLE IF NOT EXISTS programme_kpi (
		id TEXT PRIMARY KEY,
		programme_id TEXT NOT NULL,
		name TEXT NOT NULL,
		target REAL NOT NULL,
		current REAL NOT NULL DEFAULT 0,
		unit TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_kpi_programme ON programme_kpi(programme_id);

	CREATE TABLE IF NOT EXISTS programme_feedback (
		id TEXT PRIMARY KEY,
		programme_id TEXT NOT NULL,
		member_id TEXT NOT NULL,
		rating INTEGER NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		submitted_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_feedback_programme ON programme_feedback(programme_id);

	CREATE TABLE IF NOT EXISTS programme_template (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT '',
		capacity INTEGER NOT NULL DEFAULT 0,
		location TEXT NOT NULL DEFAULT '',
		is_recurring INTEGER NOT NULL DEFAULT 0,
		frequency TEXT NOT NULL DEFAULT '',
		resources TEXT NOT NULL DEFAULT '[]',
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS programme_category (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS programme_tag (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS programme_tag_link (
		programme_id TEXT NOT NULL,
		tag_id TEXT NOT NULL,
		PRIMARY KEY (programme_id, tag_id)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
