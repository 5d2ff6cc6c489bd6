package lifecycle

import (
	"context"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/intake"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/store"
)

// FoundResult reports where a found-item submission landed.
type FoundResult struct {
	Archived bool                 `json:"archived"`
	ID       int64                `json:"id"`
	Item     *model.Item          `json:"item,omitempty"`
	Archive  *model.ArchiveRecord `json:"archive,omitempty"`
}

// CreateFoundItem validates a found-item submission and stores it. Items
// dated on or before the stale cutoff go straight to the archive as expired.
func (s *Service) CreateFoundItem(ctx context.Context, sub intake.Submission) (res FoundResult, err error) {
	done := s.track("create found", "name", sub.ItemName, "date", sub.Date)
	defer func() { done(err) }()

	d, err := s.prepare(sub)
	if err != nil {
		return FoundResult{}, err
	}

	now := s.now()
	if intake.IsStale(d.ItemDate, now, s.loc) {
		a, err := store.CreateArchived(ctx, s.db, d, model.ReasonExpired, model.TableFound, now)
		if err != nil {
			return FoundResult{}, err
		}
		return FoundResult{Archived: true, ID: a.ID, Archive: a}, nil
	}

	item, err := store.CreateActive(ctx, s.db, model.TableFound, d, now)
	if err != nil {
		return FoundResult{}, err
	}
	return FoundResult{ID: item.ID, Item: item}, nil
}

// CreateLostItem validates a lost report and stores it as pending. Lost
// reports never go stale at intake.
func (s *Service) CreateLostItem(ctx context.Context, sub intake.Submission) (item *model.Item, err error) {
	done := s.track("create lost", "name", sub.ItemName, "date", sub.Date)
	defer func() { done(err) }()

	d, err := s.prepare(sub)
	if err != nil {
		return nil, err
	}
	return store.CreateActive(ctx, s.db, model.TableLost, d, s.now())
}

func (s *Service) prepare(sub intake.Submission) (model.Details, error) {
	d, err := intake.Prepare(sub)
	if err != nil {
		return model.Details{}, err
	}
	if d.ItemDate > s.today() {
		return model.Details{}, model.NewValidationError("date cannot be in the future", "date")
	}
	return d, nil
}
