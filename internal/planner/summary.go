package planner

import (
	"math"

	"grocery-planner/internal/mealplan"
	"grocery-planner/internal/shopping"
)

// CalculateSummary totals a finished plan. used maps lowercase ingredient
// names to how many selected recipes used them.
func CalculateSummary(days []mealplan.DailyPlan, used map[string]int, list shopping.SmartShoppingList) WeeklySummary {
	var s WeeklySummary
	for _, d := range days {
		for _, m := range d.Meals {
			s.TotalMeals++
			if m.UsesDeals {
				s.MealsUsingDeals++
			}
			s.TotalCost += m.EstimatedCost
			s.TotalSavings += m.DealSavings
			s.TotalTime += m.EstimatedTime
		}
	}
	s.TotalCost = mealplan.Round2(s.TotalCost)
	s.TotalSavings = mealplan.Round2(s.TotalSavings)

	if s.TotalMeals > 0 {
		s.DealPercentage = int(math.Round(100 * float64(s.MealsUsingDeals) / float64(s.TotalMeals)))
		s.AverageCostPerMeal = mealplan.Round2(s.TotalCost / float64(s.TotalMeals))
		s.AverageSavingsPerMeal = mealplan.Round2(s.TotalSavings / float64(s.TotalMeals))
		s.AverageTimePerMeal = int(math.Round(float64(s.TotalTime) / float64(s.TotalMeals)))
	}

	s.UniqueIngredients = len(used)
	for _, n := range used {
		if n > 1 {
			s.IngredientsReused++
		}
	}

	s.ShoppingCost = list.TotalCost
	s.ShoppingSavings = list.TotalSavings
	return s
}
