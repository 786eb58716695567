package deals

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"grocery-planner/internal/store"
)

var validate = validator.New()

// Fetcher retrieves the current deals for a set of stores.
type Fetcher interface {
	FetchDeals(ctx context.Context, storeIDs []string) (FetchResult, error)
}

// Store holds the effective deal set. User or fetched deals, once set,
// replace the synthetic deals entirely; they are never merged.
type Store struct {
	mu            sync.RWMutex
	now           func() time.Time
	synthetic     []DealItem
	syntheticWeek string
	user          []DealItem
}

// NewStore creates a Store whose synthetic deals follow the week of now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{now: now}
}

// SetUserDeals replaces the effective deal set. An empty slice reverts to synthetic deals.
func (s *Store) SetUserDeals(deals []DealItem) {
	normalized := make([]DealItem, 0, len(deals))
	for _, d := range deals {
		normalized = append(normalized, Normalize(d))
	}

	s.mu.Lock()
	s.user = normalized
	s.mu.Unlock()
}

// ClearUserDeals drops user deals so synthetic deals apply again.
func (s *Store) ClearUserDeals() {
	s.SetUserDeals(nil)
}

// HasUserDeals reports whether user deals currently override synthetic ones.
func (s *Store) HasUserDeals() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.user) > 0
}

// Regenerate rebuilds the synthetic deals for the current week.
func (s *Store) Regenerate() {
	year, week := s.now().ISOWeek()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.synthetic = GenerateWeekDeals(year, week)
	s.syntheticWeek = WeekLabel(year, week)
}

// All returns the effective deal set.
func (s *Store) All() []DealItem {
	year, week := s.now().ISOWeek()
	label := WeekLabel(year, week)

	s.mu.RLock()
	if len(s.user) > 0 {
		out := slices.Clone(s.user)
		s.mu.RUnlock()
		return out
	}
	stale := s.syntheticWeek != label
	s.mu.RUnlock()

	if stale {
		s.Regenerate()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.synthetic)
}

// Active returns the effective deals restricted to storeIDs. No store ids means every store.
func (s *Store) Active(storeIDs []string) []DealItem {
	return ForStores(s.All(), storeIDs)
}

// BestDeal finds the cheapest deal for an ingredient within storeIDs.
func (s *Store) BestDeal(ingredientName string, storeIDs []string) (DealItem, bool) {
	d, ok := BestByIngredient(s.Active(storeIDs))[IngredientID(ingredientName)]
	return d, ok
}

// ForStores filters deals down to storeIDs. No store ids keeps everything.
func ForStores(deals []DealItem, storeIDs []string) []DealItem {
	if len(storeIDs) == 0 {
		return slices.Clone(deals)
	}
	out := []DealItem{}
	for _, d := range deals {
		if slices.Contains(storeIDs, d.StoreID) {
			out = append(out, d)
		}
	}
	return out
}

// BestByIngredient indexes deals by ingredient id, keeping the lowest sale price.
// Equal prices keep the deal seen first.
func BestByIngredient(deals []DealItem) map[string]DealItem {
	best := make(map[string]DealItem, len(deals))
	for _, d := range deals {
		id := d.IngredientID
		if id == "" {
			id = IngredientID(d.IngredientName)
		}
		if cur, ok := best[id]; !ok || d.SalePrice < cur.SalePrice {
			best[id] = d
		}
	}
	return best
}

// Normalize fills in the derived fields of a user-entered deal.
func Normalize(d DealItem) DealItem {
	if d.IngredientID == "" {
		d.IngredientID = IngredientID(d.IngredientName)
	}
	if d.StoreName == "" {
		d.StoreName = store.DisplayName(d.StoreID)
	}
	if d.DiscountPercentage == 0 && d.OriginalPrice > 0 && d.SalePrice < d.OriginalPrice {
		d.DiscountPercentage = int(math.Round(100 * (d.OriginalPrice - d.SalePrice) / d.OriginalPrice))
	}
	if d.ID == "" {
		d.ID = d.StoreID + "-" + d.IngredientID
	}
	return d
}

// Validate checks a user-entered deal.
func Validate(d DealItem) error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("invalid deal for %q: %w", d.IngredientName, err)
	}
	if d.SalePrice > d.OriginalPrice {
		return fmt.Errorf("invalid deal for %q: sale price %.2f exceeds original price %.2f", d.IngredientName, d.SalePrice, d.OriginalPrice)
	}
	return nil
}
