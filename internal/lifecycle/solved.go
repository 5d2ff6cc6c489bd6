package lifecycle

import (
	"context"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/store"
)

// MatchItems confirms that a lost report and a found item describe the same
// object. Both leave their active tables and one solved record is created, or
// nothing changes and the error names the stale reference.
func (s *Service) MatchItems(ctx context.Context, lostID, foundID int64, claimedBy string) (rec *model.SolvedRecord, err error) {
	done := s.track("match", "lost_id", lostID, "found_id", foundID)
	defer func() { done(err) }()

	if lostID <= 0 || foundID <= 0 {
		return nil, model.NewValidationError("lostId and foundId are required", "lostId", "foundId")
	}
	return store.MatchItems(ctx, s.db, lostID, foundID, claimedBy, s.now())
}

// MarkClaimed records that the owner picked up a solved item. Claiming twice
// is a Conflict; there is no unclaim.
func (s *Service) MarkClaimed(ctx context.Context, solvedID int64, claimedBy string) (rec *model.SolvedRecord, err error) {
	done := s.track("claim", "solved_id", solvedID)
	defer func() { done(err) }()

	return store.MarkClaimed(ctx, s.db, solvedID, claimedBy, s.now())
}

// ListSolved lists solved records. A nil claimed lists all of them.
func (s *Service) ListSolved(ctx context.Context, claimed *bool) ([]model.SolvedRecord, error) {
	return store.ListSolved(ctx, s.db, claimed)
}
