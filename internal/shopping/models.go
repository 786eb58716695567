package shopping

import (
	"time"

	"grocery-planner/internal/recipe"
)

// SmartShoppingItem is one ingredient+unit pair aggregated over a whole plan,
// priced at the store where it is cheapest.
type SmartShoppingItem struct {
	IngredientID   string                    `json:"ingredient_id"`
	IngredientName string                    `json:"ingredient_name"`
	Amount         float64                   `json:"amount"`
	Unit           string                    `json:"unit"`
	Category       recipe.IngredientCategory `json:"category"`
	RecipeNames    []string                  `json:"recipe_names"`
	BestStore      string                    `json:"best_store"`
	BestPrice      float64                   `json:"best_price"`
	NormalPrice    float64                   `json:"normal_price"`
	Savings        float64                   `json:"savings"`
	IsOnSale       bool                      `json:"is_on_sale"`
	Aisle          string                    `json:"aisle"`
}

// StoreShoppingList is the part of the list bought at a single store.
type StoreShoppingList struct {
	StoreID      string              `json:"store_id"`
	StoreName    string              `json:"store_name"`
	Items        []SmartShoppingItem `json:"items"`
	TotalCost    float64             `json:"total_cost"`
	TotalSavings float64             `json:"total_savings"`
	ItemCount    int                 `json:"item_count"`
}

// SmartShoppingList is the full weekly list split by store.
type SmartShoppingList struct {
	Stores            []StoreShoppingList `json:"stores"`
	TotalCost         float64             `json:"total_cost"`
	TotalSavings      float64             `json:"total_savings"`
	SavingsPercentage int                 `json:"savings_percentage"`
	TotalItems        int                 `json:"total_items"`
}

// Items flattens the list in store order.
func (l SmartShoppingList) Items() []SmartShoppingItem {
	var out []SmartShoppingItem
	for _, s := range l.Stores {
		out = append(out, s.Items...)
	}
	return out
}

// ShoppingList is a persisted shopping list for a meal plan.
type ShoppingList struct {
	ID         int64             `json:"id"`
	UserID     string            `json:"user_id"`
	MealPlanID string            `json:"meal_plan_id"`
	List       SmartShoppingList `json:"list"`
	CreatedAt  time.Time         `json:"created_at"`
}

var aisles = map[recipe.IngredientCategory]string{
	recipe.IngredientProduce: "Produce",
	recipe.IngredientMeat:    "Meat Counter",
	recipe.IngredientSeafood: "Seafood Counter",
	recipe.IngredientDairy:   "Dairy & Eggs",
	recipe.IngredientPantry:  "Pantry & Dry Goods",
	recipe.IngredientFrozen:  "Frozen Foods",
	recipe.IngredientBakery:  "Bakery",
	recipe.IngredientSpices:  "Spices & Baking",
}

// Aisle names the store section an ingredient category is shelved in.
func Aisle(c recipe.IngredientCategory) string {
	if a, ok := aisles[c]; ok {
		return a
	}
	return "General"
}
