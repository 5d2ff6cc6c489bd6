package lifecycle

import (
	"context"
	"errors"
	"slices"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/store"
)

// Archive moves a pending record into the archive. Found items may only be
// archived as expired and lost reports only as unsolved, so a later restore
// always returns the record to the table it came from.
func (s *Service) Archive(ctx context.Context, table model.Table, id int64, reason model.Reason) (a *model.ArchiveRecord, err error) {
	done := s.track("archive", "table", table, "id", id, "reason", reason)
	defer func() { done(err) }()

	return store.ArchiveActive(ctx, s.db, table, id, reason, s.now())
}

// ListArchive lists archive records, optionally only those with reason.
func (s *Service) ListArchive(ctx context.Context, reason model.Reason) ([]model.ArchiveRecord, error) {
	if reason != "" && reason != model.ReasonExpired && reason != model.ReasonUnsolved {
		return nil, model.NewValidationError("unknown archive reason "+string(reason), "reason")
	}
	return store.ListArchive(ctx, s.db, reason)
}

// Restore returns an archive record to its active table as pending. A record
// that already left the archive yields NotFound; callers should re-fetch.
func (s *Service) Restore(ctx context.Context, archiveID int64) (item *model.Item, err error) {
	done := s.track("restore", "archive_id", archiveID)
	defer func() { done(err) }()

	return store.RestoreArchive(ctx, s.db, archiveID, s.now())
}

// RestoreDonation always fails: donation is terminal. The error is NotFound
// when the donation record does not exist.
func (s *Service) RestoreDonation(ctx context.Context, donationID int64) (err error) {
	done := s.track("restore donation", "donation_id", donationID)
	defer func() { done(err) }()

	d, err := store.GetDonation(ctx, s.db, donationID)
	if err != nil {
		return model.StoreFailure("restore donation", donationID, err)
	}
	if d == nil {
		return model.NotFound("restore donation", donationID)
	}
	return model.Conflict("restore donation", donationID, string(model.ReasonDonate))
}

// DonationResult reports the outcome of a bulk donation.
type DonationResult struct {
	Donated []model.DonationRecord `json:"donated"`
	Skipped []int64                `json:"skipped"`
}

// DonateBatch converts each archive record in ids to a donation record. Each
// conversion is atomic on its own; ids no longer in the archive are skipped.
// A store failure stops the batch and returns what was donated so far.
func (s *Service) DonateBatch(ctx context.Context, ids []int64) (res DonationResult, err error) {
	done := s.track("donate", "count", len(ids))
	defer func() { done(err) }()

	if len(ids) == 0 {
		return DonationResult{}, model.NewValidationError("select at least one item", "ids")
	}

	res = DonationResult{Donated: []model.DonationRecord{}, Skipped: []int64{}}
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		d, err := store.DonateArchive(ctx, s.db, id, s.now())
		switch {
		case err == nil:
			res.Donated = append(res.Donated, *d)
		case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrConflict):
			s.log.Warn("donate skipped", "archive_id", id, "reason", err.Error())
			res.Skipped = append(res.Skipped, id)
		default:
			return res, err
		}
	}
	slices.Sort(res.Skipped)
	return res, nil
}

// ListDonations lists donation records.
func (s *Service) ListDonations(ctx context.Context) ([]model.DonationRecord, error) {
	return store.ListDonations(ctx, s.db)
}

// PurgeDonation removes a donation record once the item has been handed over.
func (s *Service) PurgeDonation(ctx context.Context, id int64) (err error) {
	done := s.track("purge donation", "donation_id", id)
	defer func() { done(err) }()

	return store.PurgeDonation(ctx, s.db, id)
}
