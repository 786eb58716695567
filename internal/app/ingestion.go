package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"grocery-planner/internal/deals"
	"grocery-planner/internal/recipe"
)

// snapshotRetentionWeeks is how many past weeks of deal snapshots are kept.
const snapshotRetentionWeeks = 4

// FetchDeals pulls this week's deals, snapshots them and makes them the
// effective deal set. Synthetic results leave the generated deals in place.
func (a *App) FetchDeals(ctx context.Context, storeIDs []string) (deals.FetchResult, error) {
	res, err := a.fetcher.FetchDeals(ctx, storeIDs)
	if err != nil {
		return res, fmt.Errorf("failed to fetch deals: %w", err)
	}
	log.Printf("Fetched %d deals from %d stores (%s, %s)", len(res.Deals), res.StoreCount, res.Source, res.WeekOf)

	if err := a.snapshots.Save(res); err != nil {
		log.Printf("Warning: failed to save deal snapshot: %v", err)
	}
	a.pruneSnapshots()

	if res.Source != deals.SourceSynthetic {
		a.dealStore.SetUserDeals(res.Deals)
	}
	return res, nil
}

// SetUserDeals validates user-entered deals and replaces the effective deal set with them.
// Invalid deals reject the whole set.
func (a *App) SetUserDeals(items []deals.DealItem) (deals.FetchResult, error) {
	normalized := make([]deals.DealItem, 0, len(items))
	for i, d := range items {
		d = deals.Normalize(d)
		if err := deals.Validate(d); err != nil {
			return deals.FetchResult{}, fmt.Errorf("deal %d: %w", i, err)
		}
		normalized = append(normalized, d)
	}

	now := a.now()
	year, week := now.ISOWeek()
	stores := map[string]bool{}
	for _, d := range normalized {
		stores[d.StoreID] = true
	}
	res := deals.FetchResult{
		Deals:      normalized,
		FetchedAt:  now,
		StoreCount: len(stores),
		Source:     deals.SourceUser,
		WeekOf:     deals.WeekLabel(year, week),
	}

	a.dealStore.SetUserDeals(normalized)
	if len(normalized) == 0 {
		a.saveClearedMarker()
		return res, nil
	}
	if err := a.snapshots.Save(res); err != nil {
		log.Printf("Warning: failed to save deal snapshot: %v", err)
	}
	return res, nil
}

// ClearUserDeals reverts to the generated deals.
func (a *App) ClearUserDeals() {
	a.dealStore.ClearUserDeals()
	a.saveClearedMarker()
}

// saveClearedMarker records an empty synthetic snapshot for the current week
// so RestoreDeals does not bring back deals the user cleared.
func (a *App) saveClearedMarker() {
	now := a.now()
	year, week := now.ISOWeek()
	marker := deals.FetchResult{
		FetchedAt: now,
		Source:    deals.SourceSynthetic,
		WeekOf:    deals.WeekLabel(year, week),
	}
	if err := a.snapshots.Save(marker); err != nil {
		log.Printf("Warning: failed to save deal snapshot: %v", err)
	}
}

// RestoreDeals loads the newest snapshot of the current week into the deal store.
// It reports whether a snapshot was applied.
func (a *App) RestoreDeals() (bool, error) {
	latest, err := a.snapshots.Latest()
	if err != nil {
		return false, fmt.Errorf("failed to load latest deal snapshot: %w", err)
	}

	year, week := a.now().ISOWeek()
	if latest == nil || latest.WeekOf != deals.WeekLabel(year, week) || latest.Source == deals.SourceSynthetic {
		return false, nil
	}

	a.dealStore.SetUserDeals(latest.Deals)
	log.Printf("Restored %d %s deals for %s", len(latest.Deals), latest.Source, latest.WeekOf)
	return true, nil
}

func (a *App) pruneSnapshots() {
	year, week := a.now().AddDate(0, 0, -7*snapshotRetentionWeeks).ISOWeek()
	removed, err := a.snapshots.RemoveOlderThan(deals.WeekLabel(year, week))
	if err != nil {
		log.Printf("Warning: failed to remove old deal snapshots: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Removed %d old deal snapshots", removed)
	}
}

// ImportRecipes reads a JSON array of recipes from path and stores the valid
// ones. The catalog picks them up on the next start.
func (a *App) ImportRecipes(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read recipe file: %w", err)
	}

	var recipes []recipe.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return 0, fmt.Errorf("failed to unmarshal recipes: %w", err)
	}

	saved := 0
	for _, rec := range recipes {
		if err := a.recipeRepo.Save(ctx, rec); err != nil {
			log.Printf("Warning: Skipping recipe '%s': %v", rec.Name, err)
			continue
		}
		saved++
	}
	log.Printf("Imported %d of %d recipes from %s", saved, len(recipes), path)
	return saved, nil
}

// SeedRecipes stores the built-in recipes that are not in the database yet.
func (a *App) SeedRecipes(ctx context.Context) (int, error) {
	seeded := 0
	for _, rec := range recipe.DefaultRecipes() {
		existing, err := a.recipeRepo.Get(ctx, rec.ID)
		if err != nil {
			return seeded, err
		}
		if existing != nil {
			continue
		}
		if err := a.recipeRepo.Save(ctx, rec); err != nil {
			return seeded, fmt.Errorf("failed to seed recipe %s: %w", rec.ID, err)
		}
		seeded++
	}
	return seeded, nil
}
