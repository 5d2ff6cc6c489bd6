package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

const donationCols = `id, ` + detailCols + `, archive_id, archive_reason, source_table, original_id, donated_at`

// InsertDonation converts archive records into donation records and returns
// the new ids in input order.
func InsertDonation(ctx context.Context, q Querier, records []model.ArchiveRecord, at time.Time) ([]int64, error) {
	ids := make([]int64, 0, len(records))
	for _, a := range records {
		result, err := q.ExecContext(ctx,
			`INSERT INTO donations (`+detailCols+`, archive_id, archive_reason, source_table, original_id, donated_at)
			 VALUES (`+detailPlaceholders+`, ?, ?, ?, ?, ?)`,
			append(detailArgs(a.Details), a.ID, string(model.ReasonDonate), string(a.SourceTable), a.OriginalID, at.UTC())...,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting donation for archive %d: %w", a.ID, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("getting donation id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetDonation returns a donation record by ID, or nil if absent.
func GetDonation(ctx context.Context, q Querier, id int64) (*model.DonationRecord, error) {
	d := &model.DonationRecord{}
	err := q.QueryRowContext(ctx,
		`SELECT `+donationCols+` FROM donations WHERE id = ?`, id,
	).Scan(donationDest(d)...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting donation: %w", err)
	}
	return d, nil
}

// ListDonations returns donation records, most recently donated first.
func ListDonations(ctx context.Context, q Querier) (_ []model.DonationRecord, err error) {
	defer func() { err = classify("list donations", 0, err) }()

	rows, err := q.QueryContext(ctx,
		`SELECT `+donationCols+` FROM donations ORDER BY donated_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing donations: %w", err)
	}
	defer rows.Close()

	var records []model.DonationRecord
	for rows.Next() {
		var d model.DonationRecord
		if err := rows.Scan(donationDest(&d)...); err != nil {
			return nil, fmt.Errorf("scanning donation: %w", err)
		}
		records = append(records, d)
	}
	return records, rows.Err()
}

func donationDest(d *model.DonationRecord) []any {
	dest := append([]any{&d.ID}, detailDest(&d.Details)...)
	return append(dest, &d.ArchiveID, &d.Reason, &d.SourceTable, &d.OriginalID, &d.DonatedAt)
}

// DonateArchive converts one archive record into a donation record and
// removes it from the archive in a single transaction.
func DonateArchive(ctx context.Context, db *sql.DB, archiveID int64, at time.Time) (*model.DonationRecord, error) {
	const op = "donate"

	var donated *model.DonationRecord
	err := withTx(ctx, db, func(tx *sql.Tx) error {
		a, err := GetArchive(ctx, tx, archiveID)
		if err != nil {
			return err
		}
		if a == nil {
			return model.NotFound(op, archiveID)
		}
		if a.Reason != model.ReasonExpired && a.Reason != model.ReasonUnsolved {
			return model.Conflict(op, archiveID, string(a.Reason))
		}

		ids, err := InsertDonation(ctx, tx, []model.ArchiveRecord{*a}, at)
		if err != nil {
			return err
		}
		if err := RemoveFromArchiveOrDonation(ctx, tx, archiveID, SourceArchive); err != nil {
			return err
		}

		donated, err = GetDonation(ctx, tx, ids[0])
		return err
	})
	if err != nil {
		return nil, classify(op, archiveID, err)
	}
	return donated, nil
}

// PurgeDonation permanently removes a donation record once the item has been
// handed over.
func PurgeDonation(ctx context.Context, db *sql.DB, id int64) error {
	return classify("purge donation", id, RemoveFromArchiveOrDonation(ctx, db, id, SourceDonation))
}
