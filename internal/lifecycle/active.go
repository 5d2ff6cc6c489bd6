package lifecycle

import (
	"context"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/store"
)

// ListActive lists the records in an active table. An empty status means
// pending.
func (s *Service) ListActive(ctx context.Context, table model.Table, status string) ([]model.Item, error) {
	if status == "" {
		status = model.StatusPending
	}
	if status != model.StatusPending {
		return nil, model.NewValidationError("unknown status "+status, "status")
	}
	return store.ListActive(ctx, s.db, table, status)
}

// DeleteActive permanently removes a pending record, e.g. a spam report.
func (s *Service) DeleteActive(ctx context.Context, table model.Table, id int64) (err error) {
	done := s.track("delete", "table", table, "id", id)
	defer func() { done(err) }()

	return store.DeleteActive(ctx, s.db, table, id)
}
