package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"grocery-planner/internal/deals"
)

func snapshot(week, source string, fetchedAt time.Time) deals.FetchResult {
	return deals.FetchResult{
		Deals: []deals.DealItem{
			deals.Normalize(deals.DealItem{IngredientName: "Eggs", StoreID: "store-001", OriginalPrice: 3.99, SalePrice: 2.99}),
		},
		FetchedAt:  fetchedAt,
		StoreCount: 1,
		Source:     source,
		WeekOf:     week,
	}
}

func TestDealSnapshotStore(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewDealSnapshotStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create DealSnapshotStore: %v", err)
	}

	base := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)

	t.Run("CheckExists-False", func(t *testing.T) {
		if store.Exists("2026-W42", deals.SourceFlyer) {
			t.Error("Expected snapshot to not exist, but it does")
		}
	})

	t.Run("LatestEmpty", func(t *testing.T) {
		latest, err := store.Latest()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if latest != nil {
			t.Errorf("Expected no snapshot, got %+v", latest)
		}
	})

	t.Run("Save", func(t *testing.T) {
		if err := store.Save(snapshot("2026-W42", deals.SourceFlyer, base)); err != nil {
			t.Fatalf("Failed to save snapshot: %v", err)
		}

		filePath := filepath.Join(tempDir, "deals_2026-W42_flyer.json")
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			t.Errorf("Expected file '%s' to be created, but it wasn't", filePath)
		}
		if !store.Exists("2026-W42", deals.SourceFlyer) {
			t.Error("Expected snapshot to exist after save")
		}
	})

	t.Run("SaveRequiresWeekAndSource", func(t *testing.T) {
		if err := store.Save(deals.FetchResult{Source: deals.SourceFlyer}); err == nil {
			t.Error("Expected an error for a snapshot without a week")
		}
	})

	t.Run("Load", func(t *testing.T) {
		res, err := store.Load("2026-W42", deals.SourceFlyer)
		if err != nil {
			t.Fatalf("Failed to load snapshot: %v", err)
		}
		if len(res.Deals) != 1 || res.Deals[0].IngredientID != "eggs" {
			t.Errorf("Expected the eggs deal to round trip, got %+v", res.Deals)
		}
		if !res.FetchedAt.Equal(base) {
			t.Errorf("Expected fetched at %v, got %v", base, res.FetchedAt)
		}
	})

	t.Run("Latest", func(t *testing.T) {
		if err := store.Save(snapshot("2026-W41", deals.SourceFlyer, base.Add(time.Hour))); err != nil {
			t.Fatal(err)
		}
		if err := store.Save(snapshot("2026-W42", deals.SourceUser, base.Add(2*time.Hour))); err != nil {
			t.Fatal(err)
		}

		latest, err := store.Latest()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if latest == nil || latest.WeekOf != "2026-W42" || latest.Source != deals.SourceUser {
			t.Errorf("Expected the newest 2026-W42 user snapshot, got %+v", latest)
		}
	})

	t.Run("RemoveOlderThan", func(t *testing.T) {
		removed, err := store.RemoveOlderThan("2026-W42")
		if err != nil {
			t.Fatalf("Failed to remove old snapshots: %v", err)
		}
		if removed != 1 {
			t.Errorf("Expected 1 snapshot removed, got %d", removed)
		}
		if store.Exists("2026-W41", deals.SourceFlyer) {
			t.Error("Expected the 2026-W41 snapshot to be gone")
		}
		if !store.Exists("2026-W42", deals.SourceFlyer) {
			t.Error("Expected the 2026-W42 snapshot to remain")
		}
	})
}
