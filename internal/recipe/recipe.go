package recipe

import (
	"math"
	"strings"
)

// DefaultIngredientPrice is charged for an ingredient that carries no price estimate.
const DefaultIngredientPrice = 2.0

// Category is the catalog section a recipe is listed under.
type Category string

const (
	CategoryBreakfast Category = "Breakfast"
	CategoryLunch     Category = "Lunch"
	CategoryDinner    Category = "Dinner"
	CategorySnack     Category = "Snack"
	CategoryDessert   Category = "Dessert"
)

// MealType is the slot of the day a recipe is meant for.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Difficulty of preparing a recipe.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// IngredientCategory is the grocery department an ingredient belongs to.
type IngredientCategory string

const (
	IngredientProduce IngredientCategory = "Produce"
	IngredientMeat    IngredientCategory = "Meat"
	IngredientSeafood IngredientCategory = "Seafood"
	IngredientDairy   IngredientCategory = "Dairy"
	IngredientPantry  IngredientCategory = "Pantry"
	IngredientFrozen  IngredientCategory = "Frozen"
	IngredientBakery  IngredientCategory = "Bakery"
	IngredientSpices  IngredientCategory = "Spices"
)

// Ingredient is a single line of a recipe's ingredient list.
type Ingredient struct {
	Name           string             `json:"name" validate:"required"`
	Amount         float64            `json:"amount" validate:"gt=0"`
	Unit           string             `json:"unit"`
	Category       IngredientCategory `json:"category" validate:"oneof=Produce Meat Seafood Dairy Pantry Frozen Bakery Spices"`
	EstimatedPrice *float64           `json:"estimated_price,omitempty" validate:"omitempty,gte=0"`
	Notes          string             `json:"notes,omitempty"`
}

// Price returns the ingredient's estimated price, or DefaultIngredientPrice when unknown.
func (i Ingredient) Price() float64 {
	if i.EstimatedPrice == nil {
		return DefaultIngredientPrice
	}
	return *i.EstimatedPrice
}

// Recipe is an immutable catalog entry.
type Recipe struct {
	ID            string       `json:"id" validate:"required"`
	Name          string       `json:"name" validate:"required"`
	Description   string       `json:"description"`
	Category      Category     `json:"category" validate:"oneof=Breakfast Lunch Dinner Snack Dessert"`
	MealType      MealType     `json:"meal_type" validate:"oneof=breakfast lunch dinner snack"`
	PrepTime      int          `json:"prep_time" validate:"gte=0"`
	CookTime      int          `json:"cook_time" validate:"gte=0"`
	Servings      int          `json:"servings" validate:"gt=0"`
	Difficulty    Difficulty   `json:"difficulty" validate:"oneof=Easy Medium Hard"`
	Ingredients   []Ingredient `json:"ingredients" validate:"min=1,dive"`
	Instructions  []string     `json:"instructions" validate:"min=1,dive,required"`
	Tags          []string     `json:"tags" validate:"min=1"`
	EstimatedCost *float64     `json:"estimated_cost,omitempty" validate:"omitempty,gte=0"`
}

// TotalTime is prep plus cook time in minutes.
func (r Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// HasTag reports whether the recipe carries the tag, ignoring case.
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// TotalCost sums the explicit price estimates of a recipe's ingredients.
// Ingredients without an estimate contribute nothing.
func TotalCost(r Recipe) float64 {
	var total float64
	for _, ing := range r.Ingredients {
		if ing.EstimatedPrice != nil {
			total += *ing.EstimatedPrice
		}
	}
	return math.Round(total*100) / 100
}

func price(v float64) *float64 {
	return &v
}
