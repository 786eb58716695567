package mealplan

import (
	"math"
	"time"

	"grocery-planner/internal/recipe"
)

// PlannedMeal is one recipe scheduled for a meal slot, scaled to the household.
type PlannedMeal struct {
	ID            string          `json:"id"`
	DayOfWeek     int             `json:"day_of_week"`
	MealType      recipe.MealType `json:"meal_type"`
	Recipe        recipe.Recipe   `json:"recipe"`
	Servings      int             `json:"servings"`
	EstimatedCost float64         `json:"estimated_cost"`
	EstimatedTime int             `json:"estimated_time"`
	UsesDeals     bool            `json:"uses_deals"`
	DealSavings   float64         `json:"deal_savings"`
}

// ScaleFactor is target servings over the recipe's native servings.
func (m PlannedMeal) ScaleFactor() float64 {
	if m.Recipe.Servings <= 0 {
		return 1
	}
	return float64(m.Servings) / float64(m.Recipe.Servings)
}

// DailyPlan holds up to three meals for one calendar day.
type DailyPlan struct {
	Date         time.Time     `json:"date"`
	DayName      string        `json:"day_name"`
	Meals        []PlannedMeal `json:"meals"`
	TotalCost    float64       `json:"total_cost"`
	TotalTime    int           `json:"total_time"`
	TotalSavings float64       `json:"total_savings"`
}

// NewDailyPlan builds a day and sums its meal totals.
func NewDailyPlan(date time.Time, meals []PlannedMeal) DailyPlan {
	if meals == nil {
		meals = []PlannedMeal{}
	}
	d := DailyPlan{
		Date:    date,
		DayName: date.Weekday().String(),
		Meals:   meals,
	}
	for _, m := range meals {
		d.TotalCost += m.EstimatedCost
		d.TotalTime += m.EstimatedTime
		d.TotalSavings += m.DealSavings
	}
	d.TotalCost = Round2(d.TotalCost)
	d.TotalSavings = Round2(d.TotalSavings)
	return d
}

// Round2 rounds a money amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundUp1 rounds a quantity up to one decimal place. Float noise below
// 1e-9 is ignored so 0.1+0.2 stays 0.3.
func RoundUp1(v float64) float64 {
	return math.Ceil(v*10-1e-9) / 10
}
