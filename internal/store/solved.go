package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

const solvedCols = `id, lost_id, found_id, name, category, photo_url, resolved_date,
	claimed_by, is_claimed, claimed_date`

func scanSolved(s rowScanner) (*model.SolvedRecord, error) {
	r := &model.SolvedRecord{}
	var claimedDate sql.NullTime
	if err := s.Scan(&r.ID, &r.LostID, &r.FoundID, &r.Name, &r.Category, &r.PhotoURL,
		&r.ResolvedDate, &r.ClaimedBy, &r.IsClaimed, &claimedDate); err != nil {
		return nil, err
	}
	if claimedDate.Valid {
		t := claimedDate.Time
		r.ClaimedDate = &t
	}
	return r, nil
}

// GetSolved returns a solved record by ID, or nil if absent.
func GetSolved(ctx context.Context, q Querier, id int64) (*model.SolvedRecord, error) {
	r, err := scanSolved(q.QueryRowContext(ctx,
		`SELECT `+solvedCols+` FROM solved_items WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting solved item: %w", err)
	}
	return r, nil
}

// ListSolved returns solved records, most recently resolved first. A nil
// claimed lists both claimed and unclaimed records.
func ListSolved(ctx context.Context, q Querier, claimed *bool) (_ []model.SolvedRecord, err error) {
	defer func() { err = classify("list solved", 0, err) }()

	query := `SELECT ` + solvedCols + ` FROM solved_items`
	var args []any
	if claimed != nil {
		query += ` WHERE is_claimed = ?`
		args = append(args, *claimed)
	}
	query += ` ORDER BY resolved_date DESC, id DESC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing solved items: %w", err)
	}
	defer rows.Close()

	var records []model.SolvedRecord
	for rows.Next() {
		r, err := scanSolved(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning solved item: %w", err)
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

// CountSolved returns the number of solved records.
func CountSolved(ctx context.Context, q Querier) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM solved_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting solved items: %w", err)
	}
	return n, nil
}

// MatchItems pairs a pending lost report with a pending found item. Both
// records leave their active tables and exactly one solved record is created,
// or nothing changes. claimedBy defaults to the person who reported the loss.
func MatchItems(ctx context.Context, db *sql.DB, lostID, foundID int64, claimedBy string, at time.Time) (*model.SolvedRecord, error) {
	const op = "match"

	var solved *model.SolvedRecord
	err := withTx(ctx, db, func(tx *sql.Tx) error {
		lost, err := GetActive(ctx, tx, model.TableLost, lostID)
		if err != nil {
			return err
		}
		if lost == nil {
			return staleReference(op, lostID, model.TableLost)
		}
		found, err := GetActive(ctx, tx, model.TableFound, foundID)
		if err != nil {
			return err
		}
		if found == nil {
			return staleReference(op, foundID, model.TableFound)
		}

		if claimedBy == "" {
			claimedBy = lost.PersonName
		}
		photo := found.PhotoURL
		if photo == "" {
			photo = lost.PhotoURL
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO solved_items (lost_id, found_id, name, category, photo_url, resolved_date, claimed_by, is_claimed)
			 VALUES (?, ?, ?, ?, ?, ?, ?, 0)`,
			lostID, foundID, lost.Name, lost.Category, photo, at.UTC(), claimedBy,
		)
		if err != nil {
			return fmt.Errorf("inserting solved item: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting solved item id: %w", err)
		}

		if err := RemoveActive(ctx, tx, model.TableLost, lostID); err != nil {
			return err
		}
		if err := RemoveActive(ctx, tx, model.TableFound, foundID); err != nil {
			return err
		}

		solved, err = GetSolved(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, classify(op, lostID, err)
	}
	return solved, nil
}

func staleReference(op string, id int64, table model.Table) error {
	return &model.TransitionError{
		Kind: model.ErrNotFound,
		Op:   op,
		ID:   id,
		Err:  fmt.Errorf("stale reference: %s item %d no longer pending", table, id),
	}
}

// MarkClaimed records that the owner retrieved a solved item. The claim is
// one-way: claiming an already claimed record is a Conflict.
func MarkClaimed(ctx context.Context, db *sql.DB, id int64, claimedBy string, at time.Time) (*model.SolvedRecord, error) {
	const op = "claim"

	var claimed *model.SolvedRecord
	err := withTx(ctx, db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE solved_items
			 SET is_claimed = 1, claimed_date = ?,
			     claimed_by = CASE WHEN ? = '' THEN claimed_by ELSE ? END
			 WHERE id = ? AND is_claimed = 0`,
			at.UTC(), claimedBy, claimedBy, id,
		)
		if err != nil {
			return fmt.Errorf("claiming solved item: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("getting rows affected: %w", err)
		}

		claimed, err = GetSolved(ctx, tx, id)
		if err != nil {
			return err
		}
		if claimed == nil {
			return model.NotFound(op, id)
		}
		if n == 0 {
			return model.Conflict(op, id, "claimed")
		}
		return nil
	})
	if err != nil {
		return nil, classify(op, id, err)
	}
	return claimed, nil
}
