// Package store is the lifecycle store: the only code that moves a record
// between the lost, found, archives, donations and solved_items tables.
//
// Primitives (InsertActive, RemoveActive, InsertArchive, ...) take a Querier so
// they compose inside a transaction. Moves (ArchiveActive, RestoreArchive,
// DonateArchive, MatchItems, MarkClaimed) wrap the primitives in one write
// transaction each; a move either commits completely or leaves every record
// where it was.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Source names the holding area RemoveFromArchiveOrDonation deletes from.
type Source string

// Holding areas for archived records.
const (
	SourceArchive  Source = "archive"
	SourceDonation Source = "donation"
)

// detailCols lists the descriptive columns in model.Details order.
const detailCols = `name, category, floor, location, description, item_date, item_time,
	person_name, occupation, contact_number, contact_email, photo_url`

const detailPlaceholders = `?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?`

func detailArgs(d model.Details) []any {
	return []any{
		d.Name, d.Category, d.Floor, d.Location, d.Description, d.ItemDate, d.ItemTime,
		d.PersonName, d.Occupation, d.ContactNumber, d.ContactEmail, d.PhotoURL,
	}
}

func detailDest(d *model.Details) []any {
	return []any{
		&d.Name, &d.Category, &d.Floor, &d.Location, &d.Description, &d.ItemDate, &d.ItemTime,
		&d.PersonName, &d.Occupation, &d.ContactNumber, &d.ContactEmail, &d.PhotoURL,
	}
}

// tableName maps an active table to its SQL name. The mapping is exhaustive;
// anything else is rejected before it reaches a query string.
func tableName(t model.Table) (string, error) {
	switch t {
	case model.TableLost:
		return "lost_items", nil
	case model.TableFound:
		return "found_items", nil
	default:
		return "", model.NewValidationError(fmt.Sprintf("unknown table %q", string(t)), "table")
	}
}

// withTx runs fn inside a write transaction and commits if fn succeeds.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// classify keeps lifecycle error kinds intact and marks everything else as a
// store failure.
func classify(op string, id int64, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, model.ErrValidation) || errors.Is(err, model.ErrNotFound) ||
		errors.Is(err, model.ErrConflict) || errors.Is(err, model.ErrStore) {
		return err
	}
	return model.StoreFailure(op, id, err)
}

// requireOneRow turns a zero-row conditional write into a NotFound.
func requireOneRow(res sql.Result, op string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return model.NotFound(op, id)
	}
	return nil
}
