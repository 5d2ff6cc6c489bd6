package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/intake"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/metrics"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/store"
)

// SweepReport summarizes one sweep.
type SweepReport struct {
	Expired      int       `json:"expired"`
	Unsolved     int       `json:"unsolved"`
	Skipped      int       `json:"skipped"`
	TokensPurged int64     `json:"tokensPurged"`
	StaleCutoff  string    `json:"staleCutoff"`
	CompletedAt  time.Time `json:"completedAt"`
}

// Sweep archives pending found items whose date has gone stale (expired) and
// pending lost reports untouched for longer than the lost-after window
// (unsolved). Items moved by someone else mid-sweep are skipped.
func (s *Service) Sweep(ctx context.Context) (rep SweepReport, err error) {
	done := s.track("sweep")
	defer func() {
		done(err)
		metrics.AddSwept(model.ReasonExpired, rep.Expired)
		metrics.AddSwept(model.ReasonUnsolved, rep.Unsolved)
	}()

	now := s.now()
	rep.StaleCutoff = intake.StaleCutoff(now, s.loc)

	found, err := store.ListStaleFound(ctx, s.db, rep.StaleCutoff)
	if err != nil {
		return rep, model.StoreFailure("sweep", 0, err)
	}
	for _, item := range found {
		moved, err := s.sweepOne(ctx, model.TableFound, item.ID, now)
		if err != nil {
			return rep, err
		}
		if moved {
			rep.Expired++
		} else {
			rep.Skipped++
		}
	}

	if s.lostAfter > 0 {
		lost, err := store.ListActive(ctx, s.db, model.TableLost, model.StatusPending)
		if err != nil {
			return rep, model.StoreFailure("sweep", 0, err)
		}
		threshold := now.Add(-s.lostAfter)
		for _, item := range lost {
			if item.StateChangedAt.After(threshold) {
				continue
			}
			moved, err := s.sweepOne(ctx, model.TableLost, item.ID, now)
			if err != nil {
				return rep, err
			}
			if moved {
				rep.Unsolved++
			} else {
				rep.Skipped++
			}
		}
	}

	rep.TokensPurged, err = store.PurgeExpiredTokens(ctx, s.db, now)
	if err != nil {
		return rep, model.StoreFailure("sweep", 0, err)
	}
	if err := store.RecordSweep(ctx, s.db, now); err != nil {
		return rep, model.StoreFailure("sweep", 0, err)
	}
	rep.CompletedAt = now
	return rep, nil
}

func (s *Service) sweepOne(ctx context.Context, table model.Table, id int64, now time.Time) (bool, error) {
	_, err := store.ArchiveActive(ctx, s.db, table, id, model.ArchiveReasonFor(table), now)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, model.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// LastSweep returns when the last sweep completed, or the zero time.
func (s *Service) LastSweep(ctx context.Context) (time.Time, error) {
	return store.LastSweep(ctx, s.db)
}

// RunSweeper sweeps once immediately and then every interval until ctx is
// cancelled. Sweep errors are logged and do not stop the loop.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if rep, err := s.Sweep(ctx); err == nil && rep.Expired+rep.Unsolved > 0 {
			s.log.Info("sweep archived items", "expired", rep.Expired, "unsolved", rep.Unsolved)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
