package store

import (
	"context"
	"errors"
	"testing"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/db"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

func TestDonateArchive(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateActive(ctx, database, model.TableLost, sampleDetails("Notebook", "2025-01-01"), testNow)
	a, _ := ArchiveActive(ctx, database, model.TableLost, item.ID, model.ReasonUnsolved, testNow)

	d, err := DonateArchive(ctx, database, a.ID, testNow)
	if err != nil {
		t.Fatalf("DonateArchive: %v", err)
	}
	if d.Reason != model.ReasonDonate {
		t.Errorf("expected reason donate, got %q", d.Reason)
	}
	if d.ArchiveID != a.ID {
		t.Errorf("expected archive id %d, got %d", a.ID, d.ArchiveID)
	}
	if d.SourceTable != model.TableLost {
		t.Errorf("expected source lost, got %q", d.SourceTable)
	}
	if d.Details != a.Details {
		t.Errorf("details changed on donation")
	}

	if got, _ := GetArchive(ctx, database, a.ID); got != nil {
		t.Error("donated record still in archive")
	}

	_, err = DonateArchive(ctx, database, a.ID, testNow)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected not found on second donation, got %v", err)
	}
	_, err = RestoreArchive(ctx, database, a.ID, testNow)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected restore of a donated archive id to be not found, got %v", err)
	}

	donations, _ := ListDonations(ctx, database)
	if len(donations) != 1 {
		t.Errorf("expected 1 donation, got %d", len(donations))
	}
}

func TestPurgeDonation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a, _ := CreateArchived(ctx, database, sampleDetails("Cap", "2024-01-01"), model.ReasonExpired, model.TableFound, testNow)
	d, _ := DonateArchive(ctx, database, a.ID, testNow)

	if err := PurgeDonation(ctx, database, d.ID); err != nil {
		t.Fatalf("PurgeDonation: %v", err)
	}
	if err := PurgeDonation(ctx, database, d.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected not found on second purge, got %v", err)
	}
}
