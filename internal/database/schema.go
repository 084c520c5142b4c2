package database

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Every entity is normalized into typed
// columns; the disposal snapshot is the single JSON text column because it
// preserves whatever shape the folder had at disposal time.
const schema = `
CREATE TABLE IF NOT EXISTS departments (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL UNIQUE,
    active     INTEGER NOT NULL DEFAULT 1,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS folders (
    id               TEXT PRIMARY KEY,
    file_code        TEXT NOT NULL,
    subject          TEXT NOT NULL,
    category         TEXT NOT NULL,
    department_id    TEXT NOT NULL REFERENCES departments(id),
    retention_code   TEXT NOT NULL,
    retention_period INTEGER NOT NULL,
    file_year        INTEGER NOT NULL,
    file_count       INTEGER NOT NULL,
    folder_type      TEXT NOT NULL,
    storage_type     TEXT NOT NULL CHECK (storage_type IN ('cell', 'stand')),
    unit             INTEGER,
    face             INTEGER,
    section          INTEGER,
    shelf            INTEGER,
    stand            INTEGER,
    stand_shelf      INTEGER,
    status           TEXT NOT NULL DEFAULT 'archived'
                     CHECK (status IN ('archived', 'checked_out', 'disposed')),
    pdf_path         TEXT,
    excel_path       TEXT,
    notes            TEXT NOT NULL DEFAULT '',
    created_at       DATETIME NOT NULL,
    updated_at       DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_folders_status ON folders(status);
CREATE INDEX IF NOT EXISTS idx_folders_category ON folders(category);
CREATE INDEX IF NOT EXISTS idx_folders_file_year ON folders(file_year);

CREATE TABLE IF NOT EXISTS checkouts (
    id                  TEXT PRIMARY KEY,
    folder_id           TEXT NOT NULL REFERENCES folders(id) ON DELETE CASCADE,
    type                TEXT NOT NULL CHECK (type IN ('full', 'partial')),
    description         TEXT NOT NULL DEFAULT '',
    person_name         TEXT NOT NULL,
    person_surname      TEXT NOT NULL,
    phone               TEXT NOT NULL DEFAULT '',
    reason              TEXT NOT NULL DEFAULT '',
    checkout_date       DATETIME NOT NULL,
    planned_return_date DATETIME NOT NULL,
    actual_return_date  DATETIME,
    status              TEXT NOT NULL DEFAULT 'checked_out'
                        CHECK (status IN ('checked_out', 'returned'))
);

-- At most one open checkout per folder.
CREATE UNIQUE INDEX IF NOT EXISTS idx_checkouts_open
    ON checkouts(folder_id) WHERE status = 'checked_out';

CREATE TABLE IF NOT EXISTS disposals (
    id              TEXT PRIMARY KEY,
    folder_id       TEXT NOT NULL REFERENCES folders(id) ON DELETE CASCADE,
    reason          TEXT NOT NULL DEFAULT '',
    disposed_at     DATETIME NOT NULL,
    folder_snapshot TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS logs (
    id        TEXT PRIMARY KEY,
    timestamp DATETIME NOT NULL,
    type      TEXT NOT NULL,
    folder_id TEXT,
    details   TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_logs_timestamp ON logs(timestamp);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
