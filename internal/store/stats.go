package store

import (
	"context"
	"database/sql"

	"golang.org/x/sync/errgroup"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

// SummaryStats counts pending active records and solved records. The three
// counts run concurrently on separate pooled connections.
func SummaryStats(ctx context.Context, db *sql.DB) (model.Stats, error) {
	var lost, found, solved int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lost, err = CountActive(gctx, db, model.TableLost, model.StatusPending)
		return err
	})
	g.Go(func() error {
		var err error
		found, err = CountActive(gctx, db, model.TableFound, model.StatusPending)
		return err
	})
	g.Go(func() error {
		var err error
		solved, err = CountSolved(gctx, db)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Stats{}, classify("stats", 0, err)
	}

	pending := lost + found
	return model.Stats{
		Pending:    pending,
		Resolved:   solved,
		TotalItems: pending + solved,
	}, nil
}
