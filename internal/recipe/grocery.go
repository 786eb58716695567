package recipe

import (
	"math"
	"slices"
	"strings"
)

// GroceryItem is an ingredient aggregated across several recipes at their native servings.
type GroceryItem struct {
	Name           string             `json:"name"`
	Amount         float64            `json:"amount"`
	Unit           string             `json:"unit"`
	Category       IngredientCategory `json:"category"`
	EstimatedPrice float64            `json:"estimated_price"`
	FromRecipes    []string           `json:"from_recipes"`
}

// GenerateGroceryList merges the ingredients of recipes by name and unit.
// Items keep the order in which they were first seen.
func GenerateGroceryList(recipes []Recipe) []GroceryItem {
	items := []GroceryItem{}
	index := make(map[string]int)

	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			key := strings.ToLower(ing.Name) + "-" + ing.Unit
			idx, ok := index[key]
			if !ok {
				index[key] = len(items)
				items = append(items, GroceryItem{
					Name:     ing.Name,
					Unit:     ing.Unit,
					Category: ing.Category,
				})
				idx = len(items) - 1
			}

			item := &items[idx]
			item.Amount += ing.Amount
			if ing.EstimatedPrice != nil {
				item.EstimatedPrice = math.Round((item.EstimatedPrice+*ing.EstimatedPrice)*100) / 100
			}
			if !slices.Contains(item.FromRecipes, r.Name) {
				item.FromRecipes = append(item.FromRecipes, r.Name)
			}
		}
	}
	return items
}
