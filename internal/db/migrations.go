package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: listing indexes for the dashboard views.
	`CREATE INDEX IF NOT EXISTS idx_lost_items_date ON lost_items(item_date DESC, item_time DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_found_items_date ON found_items(item_date DESC, item_time DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_archives_reason ON archives(archive_reason, archived_at DESC)`,
	// Migration 2: claimed filter on the solved view.
	`CREATE INDEX IF NOT EXISTS idx_solved_items_claimed ON solved_items(is_claimed, resolved_date DESC)`,
}

// Migrate ensures the schema and runs the migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}
	if err := rebuildWithAutoincrement(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}

// lifecycleTables are rebuilt by rebuildWithAutoincrement, in this order.
var lifecycleTables = []string{"lost_items", "found_items", "archives", "donations", "solved_items"}

// idFloors lists, per table, every column that still refers to one of its
// ids. A rebuilt table's sequence starts above all of them.
var idFloors = map[string]string{
	"lost_items": `SELECT MAX(
		(SELECT COALESCE(MAX(id), 0) FROM lost_items),
		(SELECT COALESCE(MAX(lost_id), 0) FROM solved_items),
		(SELECT COALESCE(MAX(original_id), 0) FROM archives WHERE source_table = 'lost'),
		(SELECT COALESCE(MAX(original_id), 0) FROM donations WHERE source_table = 'lost'))`,
	"found_items": `SELECT MAX(
		(SELECT COALESCE(MAX(id), 0) FROM found_items),
		(SELECT COALESCE(MAX(found_id), 0) FROM solved_items),
		(SELECT COALESCE(MAX(original_id), 0) FROM archives WHERE source_table = 'found'),
		(SELECT COALESCE(MAX(original_id), 0) FROM donations WHERE source_table = 'found'))`,
	"archives": `SELECT MAX(
		(SELECT COALESCE(MAX(id), 0) FROM archives),
		(SELECT COALESCE(MAX(archive_id), 0) FROM donations))`,
	"donations":    `SELECT COALESCE(MAX(id), 0) FROM donations`,
	"solved_items": `SELECT COALESCE(MAX(id), 0) FROM solved_items`,
}

// rebuildWithAutoincrement upgrades databases created before the lifecycle
// ids were AUTOINCREMENT. SQLite cannot alter a primary key in place, so each
// old table is renamed, recreated from schema, copied and dropped.
func rebuildWithAutoincrement(db *sql.DB) error {
	var stale []string
	for _, name := range lifecycleTables {
		var ddl string
		err := db.QueryRow(`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&ddl)
		if err != nil {
			return fmt.Errorf("reading %s definition: %w", name, err)
		}
		if !strings.Contains(strings.ToUpper(ddl), "AUTOINCREMENT") {
			stale = append(stale, name)
		}
	}
	if len(stale) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning rebuild: %w", err)
	}
	defer tx.Rollback()

	for _, name := range stale {
		if _, err := tx.Exec(`ALTER TABLE ` + name + ` RENAME TO ` + name + `_old`); err != nil {
			return fmt.Errorf("renaming %s: %w", name, err)
		}
	}
	if _, err := tx.Exec(schema); err != nil {
		return fmt.Errorf("recreating schema: %w", err)
	}
	for _, name := range stale {
		if _, err := tx.Exec(`INSERT INTO ` + name + ` SELECT * FROM ` + name + `_old`); err != nil {
			return fmt.Errorf("copying %s: %w", name, err)
		}
		if _, err := tx.Exec(`DROP TABLE ` + name + `_old`); err != nil {
			return fmt.Errorf("dropping old %s: %w", name, err)
		}
	}
	for _, name := range stale {
		var floor int64
		if err := tx.QueryRow(idFloors[name]).Scan(&floor); err != nil {
			return fmt.Errorf("computing %s id floor: %w", name, err)
		}
		if _, err := tx.Exec(`DELETE FROM sqlite_sequence WHERE name = ?`, name); err != nil {
			return fmt.Errorf("resetting %s sequence: %w", name, err)
		}
		if _, err := tx.Exec(`INSERT INTO sqlite_sequence (name, seq) VALUES (?, ?)`, name, floor); err != nil {
			return fmt.Errorf("seeding %s sequence: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing rebuild: %w", err)
	}
	return nil
}
