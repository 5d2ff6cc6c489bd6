package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/db"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

var testNow = time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

func sampleDetails(name, date string) model.Details {
	return model.Details{
		Name:          name,
		Category:      "Electronics",
		Floor:         "2nd Floor",
		Location:      "Room 201",
		Description:   "black case",
		ItemDate:      date,
		ItemTime:      "14:30",
		PersonName:    "Juan Dela Cruz",
		Occupation:    "Student",
		ContactNumber: "09171234567",
		ContactEmail:  "juan@example.com",
	}
}

func TestCreateAndGetActive(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	d := sampleDetails("Umbrella", "2026-06-10")
	item, err := CreateActive(ctx, database, model.TableFound, d, testNow)
	if err != nil {
		t.Fatalf("CreateActive: %v", err)
	}
	if item.Status != model.StatusPending {
		t.Errorf("expected status pending, got %q", item.Status)
	}
	if item.Table != model.TableFound {
		t.Errorf("expected table found, got %q", item.Table)
	}
	if item.Details != d {
		t.Errorf("details changed on insert: got %+v", item.Details)
	}
	if !item.StateChangedAt.Equal(testNow) {
		t.Errorf("expected state_changed_at %v, got %v", testNow, item.StateChangedAt)
	}

	missing, err := GetActive(ctx, database, model.TableLost, item.ID)
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if missing != nil {
		t.Error("found item should not be visible in the lost table")
	}
}

func TestUnknownTableRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := CreateActive(ctx, database, model.Table("solved"), sampleDetails("x", "2026-06-10"), testNow)
	if !errors.Is(err, model.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestListActiveOrder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateActive(ctx, database, model.TableLost, sampleDetails("older", "2026-06-01"), testNow)
	CreateActive(ctx, database, model.TableLost, sampleDetails("newest", "2026-06-12"), testNow)
	CreateActive(ctx, database, model.TableLost, sampleDetails("middle", "2026-06-05"), testNow)

	items, err := ListActive(ctx, database, model.TableLost, model.StatusPending)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	want := []string{"newest", "middle", "older"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, items[i].Name)
		}
	}
}

func TestDeleteActive(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateActive(ctx, database, model.TableFound, sampleDetails("Wallet", "2026-06-10"), testNow)

	if err := DeleteActive(ctx, database, model.TableFound, item.ID); err != nil {
		t.Fatalf("DeleteActive: %v", err)
	}
	err := DeleteActive(ctx, database, model.TableFound, item.ID)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
}

func TestListStaleFound(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateActive(ctx, database, model.TableFound, sampleDetails("stale", "2025-06-15"), testNow)
	CreateActive(ctx, database, model.TableFound, sampleDetails("fresh", "2025-06-16"), testNow)
	CreateActive(ctx, database, model.TableLost, sampleDetails("lost", "2020-01-01"), testNow)

	items, err := ListStaleFound(ctx, database, "2025-06-15")
	if err != nil {
		t.Fatalf("ListStaleFound: %v", err)
	}
	if len(items) != 1 || items[0].Name != "stale" {
		t.Errorf("expected only the stale found item, got %+v", items)
	}
}
