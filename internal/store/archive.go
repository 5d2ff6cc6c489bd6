package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

const archiveCols = `id, ` + detailCols + `, archive_reason, source_table, original_id, archived_at`

// InsertArchive inserts an archive record. originalID is nil for items that
// never had an active-table id (archived at intake).
func InsertArchive(ctx context.Context, q Querier, d model.Details, reason model.Reason, source model.Table, originalID *int64, at time.Time) (int64, error) {
	if reason != model.ReasonExpired && reason != model.ReasonUnsolved {
		return 0, model.NewValidationError(fmt.Sprintf("unknown archive reason %q", string(reason)), "reason")
	}
	if !source.Valid() {
		return 0, model.NewValidationError(fmt.Sprintf("unknown table %q", string(source)), "source_table")
	}

	result, err := q.ExecContext(ctx,
		`INSERT INTO archives (`+detailCols+`, archive_reason, source_table, original_id, archived_at)
		 VALUES (`+detailPlaceholders+`, ?, ?, ?, ?)`,
		append(detailArgs(d), string(reason), string(source), originalID, at.UTC())...,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting archive: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting archive id: %w", err)
	}
	return id, nil
}

// GetArchive returns an archive record by ID, or nil if absent.
func GetArchive(ctx context.Context, q Querier, id int64) (*model.ArchiveRecord, error) {
	a := &model.ArchiveRecord{}
	err := q.QueryRowContext(ctx,
		`SELECT `+archiveCols+` FROM archives WHERE id = ?`, id,
	).Scan(archiveDest(a)...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting archive: %w", err)
	}
	return a, nil
}

// ListArchive returns archive records, newest first, optionally filtered by reason.
func ListArchive(ctx context.Context, q Querier, reason model.Reason) (_ []model.ArchiveRecord, err error) {
	defer func() { err = classify("list archive", 0, err) }()

	query := `SELECT ` + archiveCols + ` FROM archives`
	var args []any
	if reason != "" {
		query += ` WHERE archive_reason = ?`
		args = append(args, string(reason))
	}
	query += ` ORDER BY archived_at DESC, id DESC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing archives: %w", err)
	}
	defer rows.Close()

	var records []model.ArchiveRecord
	for rows.Next() {
		var a model.ArchiveRecord
		if err := rows.Scan(archiveDest(&a)...); err != nil {
			return nil, fmt.Errorf("scanning archive: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

func archiveDest(a *model.ArchiveRecord) []any {
	dest := append([]any{&a.ID}, detailDest(&a.Details)...)
	return append(dest, &a.Reason, &a.SourceTable, &a.OriginalID, &a.ArchivedAt)
}

// RemoveFromArchiveOrDonation deletes a record from the archive or the
// donation table. Returns NotFound if it is gone.
func RemoveFromArchiveOrDonation(ctx context.Context, q Querier, id int64, source Source) error {
	var table string
	switch source {
	case SourceArchive:
		table = "archives"
	case SourceDonation:
		table = "donations"
	default:
		return model.NewValidationError(fmt.Sprintf("unknown source %q", string(source)), "source")
	}

	result, err := q.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	return requireOneRow(result, "remove "+string(source), id)
}

// CreateArchived stores a record straight into the archive without an active
// table id. Used by intake for stale found items.
func CreateArchived(ctx context.Context, db *sql.DB, d model.Details, reason model.Reason, source model.Table, at time.Time) (*model.ArchiveRecord, error) {
	const op = "archive at intake"

	id, err := InsertArchive(ctx, db, d, reason, source, nil, at)
	if err != nil {
		return nil, classify(op, 0, err)
	}

	a, err := GetArchive(ctx, db, id)
	if err != nil {
		return nil, classify(op, id, err)
	}
	if a == nil {
		return nil, model.NotFound(op, id)
	}
	return a, nil
}

// ArchiveActive moves a pending record from table into the archive, keeping
// its id as original_id. The reason must match the table: found items expire,
// lost reports go unsolved.
func ArchiveActive(ctx context.Context, db *sql.DB, table model.Table, id int64, reason model.Reason, at time.Time) (*model.ArchiveRecord, error) {
	op := "archive " + string(table)

	if !table.Valid() {
		return nil, model.NewValidationError(fmt.Sprintf("unknown table %q", string(table)), "table")
	}
	if want := model.ArchiveReasonFor(table); reason != want {
		return nil, model.NewValidationError(
			fmt.Sprintf("%s items can only be archived as %q", table, want), "reason")
	}

	var archived *model.ArchiveRecord
	err := withTx(ctx, db, func(tx *sql.Tx) error {
		item, err := GetActive(ctx, tx, table, id)
		if err != nil {
			return err
		}
		if item == nil {
			return model.NotFound(op, id)
		}

		originalID := item.ID
		archiveID, err := InsertArchive(ctx, tx, item.Details, reason, table, &originalID, at)
		if err != nil {
			return err
		}
		if err := RemoveActive(ctx, tx, table, id); err != nil {
			return err
		}

		archived, err = GetArchive(ctx, tx, archiveID)
		return err
	})
	if err != nil {
		return nil, classify(op, id, err)
	}
	return archived, nil
}

// RestoreArchive moves an archive record back into the active table its
// reason maps to, with status pending. Returns NotFound if the record already
// left the archive (restored or donated).
func RestoreArchive(ctx context.Context, db *sql.DB, archiveID int64, at time.Time) (*model.Item, error) {
	const op = "restore"

	var restored *model.Item
	err := withTx(ctx, db, func(tx *sql.Tx) error {
		a, err := GetArchive(ctx, tx, archiveID)
		if err != nil {
			return err
		}
		if a == nil {
			return model.NotFound(op, archiveID)
		}

		dest, err := a.Reason.Destination()
		if err != nil {
			return err
		}
		if a.SourceTable != dest {
			return fmt.Errorf("archive %d: source table %q does not match reason %q", archiveID, a.SourceTable, a.Reason)
		}

		// Records archived from an active table come back under their old id.
		var id int64
		if a.OriginalID != nil {
			id, err = ReinsertActive(ctx, tx, dest, *a.OriginalID, a.Details, at)
		} else {
			id, err = InsertActive(ctx, tx, dest, a.Details, at)
		}
		if err != nil {
			return err
		}
		if err := RemoveFromArchiveOrDonation(ctx, tx, archiveID, SourceArchive); err != nil {
			return err
		}

		restored, err = GetActive(ctx, tx, dest, id)
		return err
	})
	if err != nil {
		return nil, classify(op, archiveID, err)
	}
	return restored, nil
}
