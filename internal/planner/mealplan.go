package planner

import (
	"time"

	"grocery-planner/internal/mealplan"
	"grocery-planner/internal/shopping"
)

// DefaultPlanDays is the length of a plan when none is requested.
const DefaultPlanDays = 7

// Options tune a single plan generation.
type Options struct {
	PlanDays                int
	StartDate               time.Time // zero means today
	PreferDeals             bool
	MaximizeIngredientReuse bool
}

// DefaultOptions plans a week from today, favouring deals and shared ingredients.
func DefaultOptions() Options {
	return Options{
		PlanDays:                DefaultPlanDays,
		PreferDeals:             true,
		MaximizeIngredientReuse: true,
	}
}

// WeeklySummary aggregates a finished plan.
type WeeklySummary struct {
	TotalMeals            int     `json:"total_meals"`
	MealsUsingDeals       int     `json:"meals_using_deals"`
	DealPercentage        int     `json:"deal_percentage"`
	TotalCost             float64 `json:"total_cost"`
	TotalSavings          float64 `json:"total_savings"`
	TotalTime             int     `json:"total_time"`
	AverageCostPerMeal    float64 `json:"average_cost_per_meal"`
	AverageSavingsPerMeal float64 `json:"average_savings_per_meal"`
	AverageTimePerMeal    int     `json:"average_time_per_meal"`
	IngredientsReused     int     `json:"ingredients_reused"`
	UniqueIngredients     int     `json:"unique_ingredients"`
	ShoppingCost          float64 `json:"shopping_cost"`
	ShoppingSavings       float64 `json:"shopping_savings"`
}

// WeeklyMealPlan is a generated plan with its shopping list.
type WeeklyMealPlan struct {
	ID            string                     `json:"id"`
	UserID        string                     `json:"user_id,omitempty"`
	CreatedAt     time.Time                  `json:"created_at"`
	WeekStartDate time.Time                  `json:"week_start_date"`
	Days          []mealplan.DailyPlan       `json:"days"`
	Summary       WeeklySummary              `json:"summary"`
	ShoppingList  shopping.SmartShoppingList `json:"shopping_list"`
}
