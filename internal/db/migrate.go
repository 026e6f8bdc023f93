package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs the full migration list. Every statement is executed on
// every boot: CREATE IF NOT EXISTS no-ops on existing tables, and ALTER
// TABLE statements that already applied fail with "duplicate column name"
// and are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		contact_name TEXT NOT NULL DEFAULT '',
		email        TEXT NOT NULL DEFAULT '',
		phone        TEXT NOT NULL DEFAULT '',
		archived_at  TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		client_id   TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		short_id    TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','on_hold','done','archived')),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS stages (
		id          INTEGER PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		order_index INTEGER NOT NULL,
		is_default  INTEGER NOT NULL DEFAULT 0,
		is_final    INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS stage_target_columns (
		stage_id    INTEGER NOT NULL REFERENCES stages(id) ON DELETE CASCADE,
		column_name TEXT NOT NULL
		            CHECK(column_name IN ('nesting_date','machining_date','assembly_date','delivery_date')),
		color       TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (stage_id, column_name)
	)`,

	`CREATE TABLE IF NOT EXISTS lead_time_rules (
		id            INTEGER PRIMARY KEY,
		from_stage_id INTEGER NOT NULL REFERENCES stages(id) ON DELETE CASCADE,
		to_stage_id   INTEGER NOT NULL REFERENCES stages(id) ON DELETE CASCADE,
		days          INTEGER NOT NULL CHECK(days >= 0),
		direction     TEXT NOT NULL DEFAULT 'before'
		              CHECK(direction IN ('before','after')),
		is_active     INTEGER NOT NULL DEFAULT 1,
		CHECK(from_stage_id != to_stage_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_lead_time_rules_pair ON lead_time_rules(from_stage_id, to_stage_id)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		id   INTEGER PRIMARY KEY,
		date TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS jobs (
		id             TEXT PRIMARY KEY,
		project_id     TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name           TEXT NOT NULL,
		drawing_number TEXT NOT NULL DEFAULT '',
		quantity       INTEGER NOT NULL DEFAULT 1 CHECK(quantity > 0),
		stage_id       INTEGER NOT NULL REFERENCES stages(id),
		nesting_date   TEXT,
		machining_date TEXT,
		assembly_date  TEXT,
		delivery_date  TEXT,
		archived_at    TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_jobs_project ON jobs(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_stage ON jobs(stage_id)`,

	`CREATE TABLE IF NOT EXISTS grid_prefs (
		view       TEXT PRIMARY KEY,
		columns    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// Add display_name to stages
	`ALTER TABLE stages ADD COLUMN display_name TEXT NOT NULL DEFAULT ''`,

	// Add notes to jobs
	`ALTER TABLE jobs ADD COLUMN notes TEXT NOT NULL DEFAULT ''`,

	// Add is_public to holidays (company closures vs public holidays)
	`ALTER TABLE holidays ADD COLUMN is_public INTEGER NOT NULL DEFAULT 1`,
}
