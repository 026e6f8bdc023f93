package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_LegacySchema simulates upgrading a database
// created before the display_name, notes and is_public columns existed.
// Data inserted under the old schema must survive, and the new columns
// must appear with their defaults.
func TestMigrate_UpgradePath_LegacySchema(t *testing.T) {
	legacyDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { legacyDB.Close() })

	_, err = legacyDB.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	legacyStatements := []string{
		`CREATE TABLE stages (
			id          INTEGER PRIMARY KEY,
			name        TEXT NOT NULL UNIQUE,
			order_index INTEGER NOT NULL,
			is_default  INTEGER NOT NULL DEFAULT 0,
			is_final    INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE holidays (
			id   INTEGER PRIMARY KEY,
			date TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE clients (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			contact_name TEXT NOT NULL DEFAULT '',
			email        TEXT NOT NULL DEFAULT '',
			phone        TEXT NOT NULL DEFAULT '',
			archived_at  TEXT,
			created_at   TEXT NOT NULL,
			updated_at   TEXT NOT NULL
		)`,
		`CREATE TABLE projects (
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
		`CREATE TABLE jobs (
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
	}
	for _, stmt := range legacyStatements {
		_, err = legacyDB.Exec(stmt)
		require.NoError(t, err)
	}

	_, err = legacyDB.Exec(`INSERT INTO stages (id, name, order_index, is_default, is_final) VALUES (1, 'nesting', 0, 1, 1)`)
	require.NoError(t, err)
	_, err = legacyDB.Exec(`INSERT INTO holidays (date, name) VALUES ('2026-12-25', 'Christmas Day')`)
	require.NoError(t, err)
	_, err = legacyDB.Exec(`INSERT INTO clients (id, name, created_at, updated_at)
		VALUES ('c1', 'Acme', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = legacyDB.Exec(`INSERT INTO projects (id, client_id, short_id, name, created_at, updated_at)
		VALUES ('p1', 'c1', 'ACM01', 'Gate', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = legacyDB.Exec(`INSERT INTO jobs (id, project_id, name, stage_id, created_at, updated_at)
		VALUES ('j1', 'p1', 'Bracket', 1, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(legacyDB))

	// New columns exist with defaults and old data survives.
	var displayName string
	err = legacyDB.QueryRow(`SELECT display_name FROM stages WHERE id = 1`).Scan(&displayName)
	require.NoError(t, err)
	assert.Equal(t, "", displayName)

	var isPublic int
	err = legacyDB.QueryRow(`SELECT is_public FROM holidays WHERE date = '2026-12-25'`).Scan(&isPublic)
	require.NoError(t, err)
	assert.Equal(t, 1, isPublic)

	var notes, name string
	err = legacyDB.QueryRow(`SELECT notes, name FROM jobs WHERE id = 'j1'`).Scan(&notes, &name)
	require.NoError(t, err)
	assert.Equal(t, "", notes)
	assert.Equal(t, "Bracket", name)

	// Migrate must remain idempotent on the upgraded database.
	require.NoError(t, Migrate(legacyDB))
}
