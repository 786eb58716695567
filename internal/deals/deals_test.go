package deals

import (
	"context"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIngredientID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Chicken Breast", "chicken-breast"},
		{"  Eggs ", "eggs"},
		{"Salt & Pepper", "salt-pepper"},
		{"Jalapeño Peppers", "jalapeno-peppers"},
		{"2% Milk", "2-milk"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := IngredientID(tt.name); got != tt.want {
			t.Errorf("IngredientID(%q): expected '%s', got '%s'", tt.name, tt.want, got)
		}
	}
}

func TestISOWeekStart(t *testing.T) {
	// 2026-W01 starts on Monday 2025-12-29.
	got := ISOWeekStart(2026, 1)
	want := time.Date(2025, time.December, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if y, w := ISOWeekStart(2026, 42).ISOWeek(); y != 2026 || w != 42 {
		t.Errorf("Expected 2026-W42 round trip, got %d-W%d", y, w)
	}
}

func TestGenerateStoreDeals(t *testing.T) {
	a := GenerateStoreDeals("store-001", "FreshMart", 2026, 42)
	b := GenerateStoreDeals("store-001", "FreshMart", 2026, 42)

	t.Run("Deterministic", func(t *testing.T) {
		if len(a) != len(b) {
			t.Fatalf("Expected equal lengths, got %d and %d", len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("Deal %d differs between runs: %+v vs %+v", i, a[i], b[i])
			}
		}
	})

	t.Run("Bounds", func(t *testing.T) {
		if len(a) < 8 || len(a) > 12 {
			t.Errorf("Expected 8-12 deals, got %d", len(a))
		}
		for _, d := range a {
			if d.SalePrice > d.OriginalPrice {
				t.Errorf("Deal %s: sale %.2f above original %.2f", d.ID, d.SalePrice, d.OriginalPrice)
			}
			if d.DiscountPercentage < 10 || d.DiscountPercentage > 60 {
				t.Errorf("Deal %s: discount %d out of range", d.ID, d.DiscountPercentage)
			}
			if d.IngredientID != IngredientID(d.IngredientName) {
				t.Errorf("Deal %s: ingredient id '%s' not derived from name", d.ID, d.IngredientID)
			}
			if d.ValidUntil.Sub(d.ValidFrom) != 7*24*time.Hour-time.Second {
				t.Errorf("Deal %s: expected a one week validity window", d.ID)
			}
		}
	})

	t.Run("VariesByWeek", func(t *testing.T) {
		other := GenerateStoreDeals("store-001", "FreshMart", 2026, 43)
		same := len(other) == len(a)
		for i := 0; same && i < len(a); i++ {
			same = a[i].IngredientID == other[i].IngredientID && a[i].SalePrice == other[i].SalePrice
		}
		if same {
			t.Error("Expected a different deal set for a different week")
		}
	})
}

func TestStore(t *testing.T) {
	now := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)

	t.Run("SyntheticByDefault", func(t *testing.T) {
		s := NewStore(fixedClock(now))
		if s.HasUserDeals() {
			t.Fatal("Expected no user deals on a new store")
		}
		if len(s.All()) == 0 {
			t.Fatal("Expected synthetic deals")
		}
		for _, d := range s.Active([]string{"store-002"}) {
			if d.StoreID != "store-002" {
				t.Errorf("Expected only store-002 deals, got %s", d.StoreID)
			}
		}
	})

	t.Run("UserDealsReplaceSynthetic", func(t *testing.T) {
		s := NewStore(fixedClock(now))
		s.SetUserDeals([]DealItem{
			{IngredientName: "Chicken Breast", StoreID: "store-001", OriginalPrice: 8.49, SalePrice: 5.99},
		})

		all := s.All()
		if len(all) != 1 {
			t.Fatalf("Expected exactly 1 deal after SetUserDeals, got %d", len(all))
		}
		d := all[0]
		if d.IngredientID != "chicken-breast" {
			t.Errorf("Expected derived ingredient id 'chicken-breast', got '%s'", d.IngredientID)
		}
		if d.DiscountPercentage != 29 {
			t.Errorf("Expected derived discount 29, got %d", d.DiscountPercentage)
		}
		if d.StoreName != "FreshMart" {
			t.Errorf("Expected store name 'FreshMart', got '%s'", d.StoreName)
		}

		s.ClearUserDeals()
		if s.HasUserDeals() || len(s.All()) <= 1 {
			t.Error("Expected synthetic deals after clearing user deals")
		}
	})

	t.Run("BestDealPicksLowestSalePrice", func(t *testing.T) {
		s := NewStore(fixedClock(now))
		s.SetUserDeals([]DealItem{
			{IngredientName: "Eggs", StoreID: "store-001", OriginalPrice: 3.99, SalePrice: 2.99},
			{IngredientName: "Eggs", StoreID: "store-002", OriginalPrice: 3.99, SalePrice: 2.49},
		})

		d, ok := s.BestDeal("eggs", nil)
		if !ok || d.StoreID != "store-002" {
			t.Errorf("Expected store-002 deal, got %+v (ok=%v)", d, ok)
		}
		d, ok = s.BestDeal("Eggs", []string{"store-001"})
		if !ok || d.StoreID != "store-001" {
			t.Errorf("Expected store-001 deal when restricted, got %+v (ok=%v)", d, ok)
		}
		if _, ok := s.BestDeal("Eggs", []string{"store-005"}); ok {
			t.Error("Expected no deal outside the selected stores")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := DealItem{IngredientName: "Milk", StoreID: "store-001", OriginalPrice: 3.49, SalePrice: 2.99}
	if err := Validate(valid); err != nil {
		t.Errorf("Expected valid deal, got %v", err)
	}

	overpriced := valid
	overpriced.SalePrice = 4.00
	if err := Validate(overpriced); err == nil {
		t.Error("Expected an error for a sale price above the original")
	}

	if err := Validate(DealItem{StoreID: "store-001", OriginalPrice: 1}); err == nil {
		t.Error("Expected an error for a missing ingredient name")
	}
}

func TestSyntheticFetcher(t *testing.T) {
	now := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)
	f := NewSyntheticFetcher(fixedClock(now))

	res, err := f.FetchDeals(context.Background(), []string{"store-001", "store-003"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.Source != SourceSynthetic {
		t.Errorf("Expected source '%s', got '%s'", SourceSynthetic, res.Source)
	}
	if res.StoreCount != 2 {
		t.Errorf("Expected 2 stores, got %d", res.StoreCount)
	}
	if res.WeekOf != "2026-W42" {
		t.Errorf("Expected week '2026-W42', got '%s'", res.WeekOf)
	}
	for _, d := range res.Deals {
		if d.StoreID != "store-001" && d.StoreID != "store-003" {
			t.Errorf("Unexpected store %s in result", d.StoreID)
		}
	}
}
