package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestDSNCarriesPragmasAndTxLock(t *testing.T) {
	dsn := DSN("/tmp/x.sqlite3")
	if !strings.HasPrefix(dsn, "file:/tmp/x.sqlite3?") {
		t.Fatalf("unexpected dsn prefix: %s", dsn)
	}
	for _, want := range []string{"_txlock=immediate", "busy_timeout%285000%29", "foreign_keys%281%29"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("dsn %q missing %q", dsn, want)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	database := NewTestDB(t)

	if err := Migrate(database); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	var n int
	err := database.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'
		 AND name IN ('lost_items', 'found_items', 'archives', 'donations', 'solved_items')`,
	).Scan(&n)
	if err != nil {
		t.Fatalf("counting tables: %v", err)
	}
	if n != 5 {
		t.Errorf("expected 5 lifecycle tables, got %d", n)
	}
}

func TestArchiveReasonConstraint(t *testing.T) {
	database := NewTestDB(t)

	_, err := database.Exec(`INSERT INTO archives
		(name, category, floor, location, item_date, item_time, person_name, occupation,
		 contact_number, contact_email, archive_reason, source_table)
		VALUES ('x', 'Keys', '18th Floor', 'Lobby', '2025-01-01', '10:00', 'A', 'Student',
		        '0917', 'a@b.co', 'donate', 'found')`)
	if err == nil {
		t.Error("expected CHECK constraint to reject donate reason in archives")
	}
}

const insertLost = `INSERT INTO lost_items
	(name, category, floor, location, item_date, item_time, person_name, occupation,
	 contact_number, contact_email)
	VALUES ('Wallet', 'Wallet', '18th Floor', 'Lobby', '2026-01-01', '10:00', 'A', 'Student',
	        '0917', 'a@b.co')`

func TestIDsAreNeverReused(t *testing.T) {
	database := NewTestDB(t)

	res, err := database.Exec(insertLost)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	first, _ := res.LastInsertId()
	if _, err := database.Exec(`DELETE FROM lost_items WHERE id = ?`, first); err != nil {
		t.Fatalf("delete: %v", err)
	}

	res, err = database.Exec(insertLost)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	second, _ := res.LastInsertId()
	if second <= first {
		t.Errorf("id %d reused after delete (got %d)", first, second)
	}
}

func TestMigrateRebuildsLegacyTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.sqlite3")
	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	legacy := strings.ReplaceAll(schema, "INTEGER PRIMARY KEY AUTOINCREMENT", "INTEGER PRIMARY KEY")
	if _, err := database.Exec(legacy); err != nil {
		t.Fatalf("creating legacy schema: %v", err)
	}
	if _, err := database.Exec(insertLost); err != nil {
		t.Fatalf("insert: %v", err)
	}
	// Lost item 7 was matched earlier; its id must not come back.
	if _, err := database.Exec(`INSERT INTO solved_items
		(lost_id, found_id, name, category, resolved_date) VALUES (7, 3, 'Keys', 'Keys', '2026-01-02 10:00:00')`); err != nil {
		t.Fatalf("insert solved: %v", err)
	}

	if err := Migrate(database); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	for _, name := range lifecycleTables {
		var ddl string
		if err := database.QueryRow(`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&ddl); err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if !strings.Contains(ddl, "AUTOINCREMENT") {
			t.Errorf("%s not rebuilt: %s", name, ddl)
		}
	}

	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM lost_items WHERE name = 'Wallet'`).Scan(&n); err != nil || n != 1 {
		t.Fatalf("expected the legacy row to survive, got %d (%v)", n, err)
	}

	res, err := database.Exec(insertLost)
	if err != nil {
		t.Fatalf("insert after rebuild: %v", err)
	}
	id, _ := res.LastInsertId()
	if id <= 7 {
		t.Errorf("expected id above the matched lost id 7, got %d", id)
	}

	// A second run finds nothing to rebuild.
	if err := Migrate(database); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}
