package deals

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"

	"grocery-planner/internal/store"
)

type dealTemplate struct {
	name     string
	category string
	price    float64
	quantity string
}

var templates = []dealTemplate{
	{"Chicken Breast", "Meat", 8.49, "per lb"},
	{"Ground Beef", "Meat", 5.99, "per lb"},
	{"Turkey Breast", "Meat", 8.99, "per lb"},
	{"Bacon", "Meat", 5.99, "12 oz pack"},
	{"Salmon Fillet", "Seafood", 9.99, "per lb"},
	{"Shrimp", "Seafood", 9.99, "per lb"},
	{"Eggs", "Dairy", 3.99, "dozen"},
	{"Milk", "Dairy", 3.49, "gallon"},
	{"Cheddar Cheese", "Dairy", 4.49, "8 oz block"},
	{"Parmesan Cheese", "Dairy", 4.99, "wedge"},
	{"Butter", "Dairy", 4.99, "1 lb"},
	{"Greek Yogurt", "Dairy", 5.49, "32 oz tub"},
	{"Bread", "Bakery", 3.29, "loaf"},
	{"Tortillas", "Bakery", 2.99, "10 pack"},
	{"Rice", "Pantry", 2.99, "2 lb bag"},
	{"Pasta", "Pantry", 1.49, "1 lb box"},
	{"Oats", "Pantry", 3.49, "canister"},
	{"Black Beans", "Pantry", 0.89, "15 oz can"},
	{"Olive Oil", "Pantry", 8.99, "500 ml bottle"},
	{"Tomatoes", "Produce", 1.99, "per lb"},
	{"Onions", "Produce", 0.99, "per lb"},
	{"Garlic", "Produce", 0.50, "head"},
	{"Bell Peppers", "Produce", 0.99, "each"},
	{"Spinach", "Produce", 2.99, "10 oz bag"},
	{"Broccoli", "Produce", 1.99, "per lb"},
	{"Potatoes", "Produce", 0.99, "per lb"},
	{"Carrots", "Produce", 0.99, "per lb"},
	{"Lettuce", "Produce", 1.99, "head"},
	{"Bananas", "Produce", 0.25, "each"},
	{"Berries", "Produce", 3.99, "pint"},
	{"Avocado", "Produce", 1.25, "each"},
	{"Lemon", "Produce", 0.60, "each"},
	{"Asparagus", "Produce", 2.99, "bunch"},
	{"Tofu", "Produce", 2.29, "14 oz block"},
}

// ISOWeekStart returns Monday 00:00 UTC of the given ISO year and week.
func ISOWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, -offset+(week-1)*7)
}

// WeekLabel formats an ISO week as e.g. "2026-W42".
func WeekLabel(year, week int) string {
	return fmt.Sprintf("%d-W%02d", year, week)
}

// GenerateStoreDeals deterministically produces a store's deals for an ISO week.
// The same (storeID, year, week) always yields the same deals.
func GenerateStoreDeals(storeID, storeName string, year, week int) []DealItem {
	h := fnv.New64a()
	h.Write([]byte(storeID))
	rng := rand.New(rand.NewPCG(h.Sum64(), uint64(year)*100+uint64(week)))

	validFrom := ISOWeekStart(year, week)
	validUntil := validFrom.AddDate(0, 0, 7).Add(-time.Second)

	count := 8 + rng.IntN(5)
	picks := rng.Perm(len(templates))[:count]

	out := make([]DealItem, 0, count)
	for _, idx := range picks {
		t := templates[idx]

		// Shelf prices drift up to 10% either way between stores.
		original := round2(t.price * (0.9 + rng.Float64()*0.2))
		discount := 10 + rng.IntN(41)
		flash := rng.IntN(100) < 15
		if flash {
			discount = min(discount+10, 60)
		}
		sale := round2(original * (1 - float64(discount)/100))

		id := IngredientID(t.name)
		out = append(out, DealItem{
			ID:                 fmt.Sprintf("%s-%d-w%02d-%s", storeID, year, week, id),
			IngredientID:       id,
			IngredientName:     t.name,
			StoreID:            storeID,
			StoreName:          storeName,
			OriginalPrice:      original,
			SalePrice:          sale,
			DiscountPercentage: discount,
			ValidFrom:          validFrom,
			ValidUntil:         validUntil,
			Quantity:           t.quantity,
			IsFlashSale:        flash,
			Category:           t.category,
		})
	}
	return out
}

// GenerateWeekDeals produces synthetic deals for every store in the directory.
func GenerateWeekDeals(year, week int) []DealItem {
	var out []DealItem
	for _, s := range store.All() {
		out = append(out, GenerateStoreDeals(s.ID, s.Name, year, week)...)
	}
	return out
}

// SyntheticFetcher serves generated deals through the Fetcher interface.
type SyntheticFetcher struct {
	now func() time.Time
}

// NewSyntheticFetcher creates a fetcher that reads the week from now.
func NewSyntheticFetcher(now func() time.Time) *SyntheticFetcher {
	if now == nil {
		now = time.Now
	}
	return &SyntheticFetcher{now: now}
}

// FetchDeals generates this week's deals for the requested stores, or all stores when none are given.
func (f *SyntheticFetcher) FetchDeals(_ context.Context, storeIDs []string) (FetchResult, error) {
	now := f.now()
	year, week := now.ISOWeek()
	if len(storeIDs) == 0 {
		storeIDs = store.IDs()
	}

	var all []DealItem
	for _, id := range storeIDs {
		all = append(all, GenerateStoreDeals(id, store.DisplayName(id), year, week)...)
	}

	return FetchResult{
		Deals:      all,
		FetchedAt:  now,
		StoreCount: len(storeIDs),
		Source:     SourceSynthetic,
		WeekOf:     WeekLabel(year, week),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
