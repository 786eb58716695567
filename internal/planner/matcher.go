package planner

import (
	"sort"

	"grocery-planner/internal/deals"
	"grocery-planner/internal/mealplan"
	"grocery-planner/internal/preferences"
	"grocery-planner/internal/recipe"
)

// DealMatch is a recipe with at least one ingredient on sale.
type DealMatch struct {
	Recipe         recipe.Recipe    `json:"recipe"`
	MatchedDeals   []deals.DealItem `json:"matched_deals"`
	NormalCost     float64          `json:"normal_cost"`
	DiscountedCost float64          `json:"discounted_cost"`
	TotalSavings   float64          `json:"total_savings"`
}

// MatchDeals prices every eligible recipe against the active deals and returns
// the ones that use at least one deal, most savings first.
//
// Ingredients match a deal when their derived ingredient id is equal to the
// deal's. If several deals match, the lowest sale price is used.
func MatchDeals(recipes []recipe.Recipe, active []deals.DealItem, prefs preferences.UserPreferences) []DealMatch {
	best := deals.BestByIngredient(active)

	out := []DealMatch{}
	for _, r := range FilterEligible(recipes, prefs) {
		m := DealMatch{Recipe: r}
		for _, ing := range r.Ingredients {
			d, ok := best[deals.IngredientID(ing.Name)]
			if !ok {
				m.NormalCost += ing.Price()
				m.DiscountedCost += ing.Price()
				continue
			}
			m.NormalCost += d.OriginalPrice
			m.DiscountedCost += d.SalePrice
			m.TotalSavings += d.OriginalPrice - d.SalePrice
			m.MatchedDeals = append(m.MatchedDeals, d)
		}
		if len(m.MatchedDeals) == 0 {
			continue
		}
		m.NormalCost = mealplan.Round2(m.NormalCost)
		m.DiscountedCost = mealplan.Round2(m.DiscountedCost)
		m.TotalSavings = mealplan.Round2(m.TotalSavings)
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSavings > out[j].TotalSavings
	})
	return out
}
