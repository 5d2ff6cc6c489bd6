package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

// InsertActive inserts a pending record into table and returns its id.
func InsertActive(ctx context.Context, q Querier, table model.Table, d model.Details, at time.Time) (int64, error) {
	return insertActive(ctx, q, table, nil, d, at)
}

// ReinsertActive inserts a pending record under a previously issued id.
// Ids are never reused, so the id is free unless the record is still active.
func ReinsertActive(ctx context.Context, q Querier, table model.Table, id int64, d model.Details, at time.Time) (int64, error) {
	return insertActive(ctx, q, table, &id, d, at)
}

func insertActive(ctx context.Context, q Querier, table model.Table, id *int64, d model.Details, at time.Time) (int64, error) {
	name, err := tableName(table)
	if err != nil {
		return 0, err
	}

	result, err := q.ExecContext(ctx,
		`INSERT INTO `+name+` (id, `+detailCols+`, status, state_changed_at)
		 VALUES (?, `+detailPlaceholders+`, ?, ?)`,
		append(append([]any{id}, detailArgs(d)...), model.StatusPending, at.UTC())...,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting into %s: %w", name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting %s id: %w", name, err)
	}
	return id, nil
}

// RemoveActive deletes a pending record. Returns NotFound if it is gone.
func RemoveActive(ctx context.Context, q Querier, table model.Table, id int64) error {
	name, err := tableName(table)
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx,
		`DELETE FROM `+name+` WHERE id = ? AND status = ?`, id, model.StatusPending,
	)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", name, err)
	}
	return requireOneRow(result, "remove "+string(table), id)
}

// GetActive returns a record from an active table, or nil if absent.
func GetActive(ctx context.Context, q Querier, table model.Table, id int64) (*model.Item, error) {
	name, err := tableName(table)
	if err != nil {
		return nil, err
	}

	item := &model.Item{Table: table}
	dest := append([]any{&item.ID}, detailDest(&item.Details)...)
	dest = append(dest, &item.Status, &item.StateChangedAt)

	err = q.QueryRowContext(ctx,
		`SELECT id, `+detailCols+`, status, state_changed_at FROM `+name+` WHERE id = ?`, id,
	).Scan(dest...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s item: %w", name, err)
	}
	return item, nil
}

// ListActive returns the records in table with the given status, newest
// item date first. An empty status lists everything.
func ListActive(ctx context.Context, q Querier, table model.Table, status string) (_ []model.Item, err error) {
	defer func() { err = classify("list "+string(table), 0, err) }()

	name, err := tableName(table)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, ` + detailCols + `, status, state_changed_at FROM ` + name
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY item_date DESC, item_time DESC, id DESC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", name, err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item := model.Item{Table: table}
		dest := append([]any{&item.ID}, detailDest(&item.Details)...)
		dest = append(dest, &item.Status, &item.StateChangedAt)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning %s item: %w", name, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CountActive counts the records in table with the given status.
func CountActive(ctx context.Context, q Querier, table model.Table, status string) (int, error) {
	name, err := tableName(table)
	if err != nil {
		return 0, err
	}

	var n int
	err = q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+name+` WHERE status = ?`, status,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", name, err)
	}
	return n, nil
}

// CreateActive inserts a pending record and returns it as stored.
func CreateActive(ctx context.Context, db *sql.DB, table model.Table, d model.Details, at time.Time) (*model.Item, error) {
	id, err := InsertActive(ctx, db, table, d, at)
	if err != nil {
		return nil, classify("create "+string(table), 0, err)
	}

	item, err := GetActive(ctx, db, table, id)
	if err != nil {
		return nil, classify("create "+string(table), id, err)
	}
	if item == nil {
		return nil, model.NotFound("create "+string(table), id)
	}
	return item, nil
}

// DeleteActive permanently removes a pending record.
func DeleteActive(ctx context.Context, db *sql.DB, table model.Table, id int64) error {
	return classify("delete "+string(table), id, RemoveActive(ctx, db, table, id))
}

// ListStaleFound returns pending found records whose item date is on or
// before cutoff (YYYY-MM-DD).
func ListStaleFound(ctx context.Context, q Querier, cutoff string) ([]model.Item, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, `+detailCols+`, status, state_changed_at FROM found_items
		 WHERE status = ? AND item_date <= ?
		 ORDER BY id`, model.StatusPending, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("listing stale found items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item := model.Item{Table: model.TableFound}
		dest := append([]any{&item.ID}, detailDest(&item.Details)...)
		dest = append(dest, &item.Status, &item.StateChangedAt)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning found item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
