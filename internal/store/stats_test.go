package store

import (
	"context"
	"testing"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/db"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

func TestSummaryStats(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	stats, err := SummaryStats(ctx, database)
	if err != nil {
		t.Fatalf("SummaryStats: %v", err)
	}
	if stats != (model.Stats{}) {
		t.Errorf("expected zero stats on empty database, got %+v", stats)
	}

	lost, _ := CreateActive(ctx, database, model.TableLost, sampleDetails("A", "2026-06-01"), testNow)
	found, _ := CreateActive(ctx, database, model.TableFound, sampleDetails("A", "2026-06-01"), testNow)
	CreateActive(ctx, database, model.TableLost, sampleDetails("B", "2026-06-01"), testNow)
	CreateActive(ctx, database, model.TableFound, sampleDetails("C", "2026-06-01"), testNow)
	CreateActive(ctx, database, model.TableFound, sampleDetails("D", "2026-06-01"), testNow)
	MatchItems(ctx, database, lost.ID, found.ID, "", testNow)
	CreateArchived(ctx, database, sampleDetails("E", "2020-01-01"), model.ReasonExpired, model.TableFound, testNow)

	stats, err = SummaryStats(ctx, database)
	if err != nil {
		t.Fatalf("SummaryStats: %v", err)
	}
	want := model.Stats{Pending: 3, Resolved: 1, TotalItems: 4}
	if stats != want {
		t.Errorf("expected %+v, got %+v", want, stats)
	}
}
