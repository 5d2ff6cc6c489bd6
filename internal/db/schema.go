package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. lost_items and found_items share one
// column layout; archives and donations carry the same descriptive columns
// plus their lifecycle bookkeeping. Lifecycle ids are AUTOINCREMENT so an id
// that left a table is never handed to a different item.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'operator' CHECK (role IN ('admin', 'operator')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS lost_items (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    name             TEXT NOT NULL,
    category         TEXT NOT NULL,
    floor            TEXT NOT NULL,
    location         TEXT NOT NULL,
    description      TEXT NOT NULL DEFAULT '',
    item_date        TEXT NOT NULL,
    item_time        TEXT NOT NULL,
    person_name      TEXT NOT NULL,
    occupation       TEXT NOT NULL,
    contact_number   TEXT NOT NULL,
    contact_email    TEXT NOT NULL,
    photo_url        TEXT NOT NULL DEFAULT '',
    status           TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending')),
    state_changed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS found_items (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    name             TEXT NOT NULL,
    category         TEXT NOT NULL,
    floor            TEXT NOT NULL,
    location         TEXT NOT NULL,
    description      TEXT NOT NULL DEFAULT '',
    item_date        TEXT NOT NULL,
    item_time        TEXT NOT NULL,
    person_name      TEXT NOT NULL,
    occupation       TEXT NOT NULL,
    contact_number   TEXT NOT NULL,
    contact_email    TEXT NOT NULL,
    photo_url        TEXT NOT NULL DEFAULT '',
    status           TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending')),
    state_changed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS archives (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    name           TEXT NOT NULL,
    category       TEXT NOT NULL,
    floor          TEXT NOT NULL,
    location       TEXT NOT NULL,
    description    TEXT NOT NULL DEFAULT '',
    item_date      TEXT NOT NULL,
    item_time      TEXT NOT NULL,
    person_name    TEXT NOT NULL,
    occupation     TEXT NOT NULL,
    contact_number TEXT NOT NULL,
    contact_email  TEXT NOT NULL,
    photo_url      TEXT NOT NULL DEFAULT '',
    archive_reason TEXT NOT NULL CHECK (archive_reason IN ('expired', 'unsolved')),
    source_table   TEXT NOT NULL CHECK (source_table IN ('lost', 'found')),
    original_id    INTEGER,
    archived_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS donations (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    name           TEXT NOT NULL,
    category       TEXT NOT NULL,
    floor          TEXT NOT NULL,
    location       TEXT NOT NULL,
    description    TEXT NOT NULL DEFAULT '',
    item_date      TEXT NOT NULL,
    item_time      TEXT NOT NULL,
    person_name    TEXT NOT NULL,
    occupation     TEXT NOT NULL,
    contact_number TEXT NOT NULL,
    contact_email  TEXT NOT NULL,
    photo_url      TEXT NOT NULL DEFAULT '',
    archive_id     INTEGER NOT NULL UNIQUE,
    archive_reason TEXT NOT NULL DEFAULT 'donate' CHECK (archive_reason = 'donate'),
    source_table   TEXT NOT NULL CHECK (source_table IN ('lost', 'found')),
    original_id    INTEGER,
    donated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS solved_items (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    lost_id       INTEGER NOT NULL UNIQUE,
    found_id      INTEGER NOT NULL UNIQUE,
    name          TEXT NOT NULL,
    category      TEXT NOT NULL,
    photo_url     TEXT NOT NULL DEFAULT '',
    resolved_date DATETIME NOT NULL,
    claimed_by    TEXT NOT NULL DEFAULT '',
    is_claimed    INTEGER NOT NULL DEFAULT 0 CHECK (is_claimed IN (0, 1)),
    claimed_date  DATETIME
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
