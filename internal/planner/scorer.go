package planner

import (
	"sort"
	"strings"

	"grocery-planner/internal/preferences"
	"grocery-planner/internal/recipe"
)

// TopN is how many of the best-scoring recipes a slot picks from at random.
const TopN = 3

// Score weights.
const (
	dealSavingsWeight   = 10.0
	reuseBonus          = 5.0
	quickMealBonus      = 10.0
	quickMealMaxMinutes = 30
	healthyBonus        = 5.0
	comfortFoodBonus    = 8.0
	breakfastMatchBonus = 15.0
	lunchMatchBonus     = 10.0
	dinnerMatchBonus    = 10.0
)

// SlotContext is what the scorer knows when filling one meal slot.
type SlotContext struct {
	MealType      recipe.MealType
	Prefs         preferences.UserPreferences
	Matches       map[string]DealMatch // keyed by recipe id
	Used          map[string]int       // lowercase ingredient name -> times used this week
	PreferDeals   bool
	MaximizeReuse bool
}

// ScoredRecipe pairs a recipe with its score for a slot.
type ScoredRecipe struct {
	Recipe recipe.Recipe
	Score  float64
}

// SlotPool narrows the eligible recipes to those allowed in a slot.
// Breakfast only draws from Breakfast and Dessert recipes.
func SlotPool(eligible []recipe.Recipe, mealType recipe.MealType) []recipe.Recipe {
	if mealType != recipe.MealBreakfast {
		return eligible
	}
	out := []recipe.Recipe{}
	for _, r := range eligible {
		if r.Category == recipe.CategoryBreakfast || r.Category == recipe.CategoryDessert {
			out = append(out, r)
		}
	}
	return out
}

// ScoreRecipe adds up the deal, reuse, preference and category bonuses for r.
func ScoreRecipe(r recipe.Recipe, sc SlotContext) float64 {
	var score float64

	if sc.PreferDeals {
		if m, ok := sc.Matches[r.ID]; ok {
			score += dealSavingsWeight * m.TotalSavings
		}
	}

	if sc.MaximizeReuse {
		for _, ing := range r.Ingredients {
			if sc.Used[strings.ToLower(ing.Name)] > 0 {
				score += reuseBonus
			}
		}
	}

	if sc.Prefs.HasMealPreference(preferences.PrefQuickMeals) && r.TotalTime() <= quickMealMaxMinutes {
		score += quickMealBonus
	}
	if sc.Prefs.HasMealPreference(preferences.PrefHealthy) && (r.HasTag("healthy") || r.HasTag("low-calorie")) {
		score += healthyBonus
	}
	if sc.Prefs.HasMealPreference(preferences.PrefComfortFood) && (r.HasTag("comfort-food") || r.HasTag("classic")) {
		score += comfortFoodBonus
	}

	switch {
	case sc.MealType == recipe.MealBreakfast && r.Category == recipe.CategoryBreakfast:
		score += breakfastMatchBonus
	case sc.MealType == recipe.MealDinner && r.Category == recipe.CategoryDinner:
		score += dinnerMatchBonus
	case sc.MealType == recipe.MealLunch && r.Category == recipe.CategoryLunch:
		score += lunchMatchBonus
	}

	return score
}

// RankCandidates scores every recipe in pool, best first. Equal scores keep pool order.
func RankCandidates(pool []recipe.Recipe, sc SlotContext) []ScoredRecipe {
	ranked := make([]ScoredRecipe, 0, len(pool))
	for _, r := range pool {
		ranked = append(ranked, ScoredRecipe{Recipe: r, Score: ScoreRecipe(r, sc)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// TopCandidates returns at most n of the ranked recipes.
func TopCandidates(ranked []ScoredRecipe, n int) []ScoredRecipe {
	if len(ranked) < n {
		return ranked
	}
	return ranked[:n]
}
