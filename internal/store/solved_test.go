package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/db"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

func TestMatchItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	lostDetails := sampleDetails("Blue umbrella", "2026-06-01")
	foundDetails := sampleDetails("Umbrella", "2026-06-02")
	foundDetails.PhotoURL = "/api/photos/u.jpg"
	foundDetails.PersonName = "Guard"

	lost, _ := CreateActive(ctx, database, model.TableLost, lostDetails, testNow)
	found, _ := CreateActive(ctx, database, model.TableFound, foundDetails, testNow)

	s, err := MatchItems(ctx, database, lost.ID, found.ID, "", testNow)
	if err != nil {
		t.Fatalf("MatchItems: %v", err)
	}
	if s.LostID != lost.ID || s.FoundID != found.ID {
		t.Errorf("expected ids %d/%d, got %d/%d", lost.ID, found.ID, s.LostID, s.FoundID)
	}
	if s.Name != "Blue umbrella" {
		t.Errorf("expected name from lost report, got %q", s.Name)
	}
	if s.PhotoURL != "/api/photos/u.jpg" {
		t.Errorf("expected photo from found item, got %q", s.PhotoURL)
	}
	if s.ClaimedBy != "Juan Dela Cruz" {
		t.Errorf("expected claimant to default to the reporter, got %q", s.ClaimedBy)
	}
	if s.IsClaimed || s.ClaimedDate != nil {
		t.Error("new solved record must be unclaimed")
	}
	if !s.ResolvedDate.Equal(testNow) {
		t.Errorf("expected resolved date %v, got %v", testNow, s.ResolvedDate)
	}

	if got, _ := GetActive(ctx, database, model.TableLost, lost.ID); got != nil {
		t.Error("lost report still active after match")
	}
	if got, _ := GetActive(ctx, database, model.TableFound, found.ID); got != nil {
		t.Error("found item still active after match")
	}
}

func TestMatchStaleReferenceLeavesNothing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	lost, _ := CreateActive(ctx, database, model.TableLost, sampleDetails("Phone", "2026-06-01"), testNow)
	found, _ := CreateActive(ctx, database, model.TableFound, sampleDetails("Phone", "2026-06-02"), testNow)
	DeleteActive(ctx, database, model.TableFound, found.ID)

	_, err := MatchItems(ctx, database, lost.ID, found.ID, "", testNow)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if got, _ := GetActive(ctx, database, model.TableLost, lost.ID); got == nil {
		t.Error("failed match removed the lost report")
	}
	if n, _ := CountSolved(ctx, database); n != 0 {
		t.Errorf("expected no solved records, got %d", n)
	}
}

func TestMatchSameItemTwice(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	lost, _ := CreateActive(ctx, database, model.TableLost, sampleDetails("Bag", "2026-06-01"), testNow)
	found, _ := CreateActive(ctx, database, model.TableFound, sampleDetails("Bag", "2026-06-02"), testNow)
	found2, _ := CreateActive(ctx, database, model.TableFound, sampleDetails("Bag", "2026-06-03"), testNow)

	if _, err := MatchItems(ctx, database, lost.ID, found.ID, "Ana", testNow); err != nil {
		t.Fatalf("MatchItems: %v", err)
	}
	if _, err := MatchItems(ctx, database, lost.ID, found2.ID, "Ana", testNow); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected not found for already matched lost report, got %v", err)
	}
	if got, _ := GetActive(ctx, database, model.TableFound, found2.ID); got == nil {
		t.Error("failed match removed the second found item")
	}
}

func TestMarkClaimed(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	lost, _ := CreateActive(ctx, database, model.TableLost, sampleDetails("Watch", "2026-06-01"), testNow)
	found, _ := CreateActive(ctx, database, model.TableFound, sampleDetails("Watch", "2026-06-02"), testNow)
	s, _ := MatchItems(ctx, database, lost.ID, found.ID, "", testNow)

	claimAt := testNow.Add(48 * time.Hour)
	claimed, err := MarkClaimed(ctx, database, s.ID, "", claimAt)
	if err != nil {
		t.Fatalf("MarkClaimed: %v", err)
	}
	if !claimed.IsClaimed {
		t.Error("expected is_claimed true")
	}
	if claimed.ClaimedDate == nil || !claimed.ClaimedDate.Equal(claimAt) {
		t.Errorf("expected claimed date %v, got %v", claimAt, claimed.ClaimedDate)
	}
	if claimed.ClaimedBy != "Juan Dela Cruz" {
		t.Errorf("empty claimant should keep the recorded one, got %q", claimed.ClaimedBy)
	}

	_, err = MarkClaimed(ctx, database, s.ID, "Someone else", claimAt.Add(time.Hour))
	if !errors.Is(err, model.ErrConflict) {
		t.Fatalf("expected conflict on second claim, got %v", err)
	}
	if state := model.StateOf(err); state != "claimed" {
		t.Errorf("expected state 'claimed', got %q", state)
	}

	got, _ := GetSolved(ctx, database, s.ID)
	if !got.IsClaimed || got.ClaimedBy != "Juan Dela Cruz" {
		t.Errorf("rejected claim changed the record: %+v", got)
	}

	_, err = MarkClaimed(ctx, database, 9999, "", claimAt)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected not found for missing record, got %v", err)
	}
}

func TestListSolvedFilter(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		lost, _ := CreateActive(ctx, database, model.TableLost, sampleDetails("Item", "2026-06-01"), testNow)
		found, _ := CreateActive(ctx, database, model.TableFound, sampleDetails("Item", "2026-06-01"), testNow)
		s, _ := MatchItems(ctx, database, lost.ID, found.ID, "", testNow.Add(time.Duration(i)*time.Hour))
		ids = append(ids, s.ID)
	}
	MarkClaimed(ctx, database, ids[0], "", testNow)

	all, _ := ListSolved(ctx, database, nil)
	if len(all) != 3 {
		t.Fatalf("expected 3 solved records, got %d", len(all))
	}
	if all[0].ID != ids[2] {
		t.Errorf("expected most recently resolved first, got id %d", all[0].ID)
	}

	yes, no := true, false
	claimed, _ := ListSolved(ctx, database, &yes)
	if len(claimed) != 1 || claimed[0].ID != ids[0] {
		t.Errorf("expected only record %d claimed, got %+v", ids[0], claimed)
	}
	unclaimed, _ := ListSolved(ctx, database, &no)
	if len(unclaimed) != 2 {
		t.Errorf("expected 2 unclaimed records, got %d", len(unclaimed))
	}
}

func TestMatchedIDsNotReissued(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	lost, _ := CreateActive(ctx, database, model.TableLost, sampleDetails("Wallet", "2026-06-01"), testNow)
	found, _ := CreateActive(ctx, database, model.TableFound, sampleDetails("Wallet", "2026-06-02"), testNow)
	if _, err := MatchItems(ctx, database, lost.ID, found.ID, "", testNow); err != nil {
		t.Fatalf("MatchItems: %v", err)
	}

	lost2, _ := CreateActive(ctx, database, model.TableLost, sampleDetails("Keys", "2026-06-03"), testNow)
	found2, _ := CreateActive(ctx, database, model.TableFound, sampleDetails("Keys", "2026-06-04"), testNow)
	if lost2.ID == lost.ID || found2.ID == found.ID {
		t.Fatalf("ids reissued after match: lost %d->%d, found %d->%d", lost.ID, lost2.ID, found.ID, found2.ID)
	}

	s, err := MatchItems(ctx, database, lost2.ID, found2.ID, "", testNow)
	if err != nil {
		t.Fatalf("second MatchItems: %v", err)
	}
	if s.Name != "Keys" {
		t.Errorf("expected second match for Keys, got %q", s.Name)
	}
}
