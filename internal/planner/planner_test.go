package planner

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"grocery-planner/internal/deals"
	"grocery-planner/internal/mealplan"
	"grocery-planner/internal/preferences"
	"grocery-planner/internal/recipe"
	"grocery-planner/internal/shopping"
)

func price(v float64) *float64 { return &v }

var testNow = time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

var (
	chickenRice = recipe.Recipe{
		ID: "t-chicken", Name: "Chicken and Rice", Category: recipe.CategoryDinner, MealType: recipe.MealDinner,
		PrepTime: 10, CookTime: 20, Servings: 2, Difficulty: recipe.DifficultyEasy,
		Ingredients: []recipe.Ingredient{
			{Name: "Chicken Breast", Amount: 1, Unit: "lb", Category: recipe.IngredientMeat, EstimatedPrice: price(8.49)},
			{Name: "Rice", Amount: 1, Unit: "cup", Category: recipe.IngredientPantry, EstimatedPrice: price(0.60)},
		},
		Tags: []string{"healthy"},
	}
	salad = recipe.Recipe{
		ID: "t-salad", Name: "Garden Salad", Category: recipe.CategoryLunch, MealType: recipe.MealLunch,
		PrepTime: 10, CookTime: 0, Servings: 2, Difficulty: recipe.DifficultyEasy,
		Ingredients: []recipe.Ingredient{
			{Name: "Lettuce", Amount: 1, Unit: "head", Category: recipe.IngredientProduce, EstimatedPrice: price(1.99)},
			{Name: "Tomatoes", Amount: 2, Unit: "whole", Category: recipe.IngredientProduce},
		},
		Tags: []string{"healthy", "vegetarian", "low-calorie"},
	}
	stew = recipe.Recipe{
		ID: "t-stew", Name: "Beef Stew", Category: recipe.CategoryDinner, MealType: recipe.MealDinner,
		PrepTime: 20, CookTime: 25, Servings: 4, Difficulty: recipe.DifficultyMedium,
		Ingredients: []recipe.Ingredient{
			{Name: "Ground Beef", Amount: 1, Unit: "lb", Category: recipe.IngredientMeat, EstimatedPrice: price(5.99)},
			{Name: "Potatoes", Amount: 2, Unit: "lb", Category: recipe.IngredientProduce, EstimatedPrice: price(1.98)},
		},
		Tags: []string{"comfort-food"},
	}
	roast = recipe.Recipe{
		ID: "t-roast", Name: "Slow Roast Vegetables", Category: recipe.CategoryDinner, MealType: recipe.MealDinner,
		PrepTime: 20, CookTime: 180, Servings: 4, Difficulty: recipe.DifficultyHard,
		Ingredients: []recipe.Ingredient{
			{Name: "Carrots", Amount: 2, Unit: "lb", Category: recipe.IngredientProduce, EstimatedPrice: price(1.98)},
		},
		Tags: []string{"classic"},
	}
	pancakes = recipe.Recipe{
		ID: "t-pancakes", Name: "Pancakes", Category: recipe.CategoryBreakfast, MealType: recipe.MealBreakfast,
		PrepTime: 5, CookTime: 15, Servings: 4, Difficulty: recipe.DifficultyEasy,
		Ingredients: []recipe.Ingredient{
			{Name: "Eggs", Amount: 2, Unit: "large", Category: recipe.IngredientDairy, EstimatedPrice: price(0.66)},
			{Name: "Milk", Amount: 1, Unit: "cup", Category: recipe.IngredientDairy, EstimatedPrice: price(0.22)},
		},
		Tags: []string{"classic", "comfort-food"},
	}
)

func newTestPlanner(recipes []recipe.Recipe, userDeals []deals.DealItem, seed uint64) *Planner {
	store := deals.NewStore(clock)
	store.SetUserDeals(userDeals)
	p := NewPlanner(recipe.NewCatalog(recipes), store, shopping.NewBuilder(store, ""), rand.New(rand.NewPCG(seed, seed)))
	p.now = clock
	return p
}

func chickenDeal(storeID string) deals.DealItem {
	return deals.DealItem{IngredientName: "Chicken Breast", StoreID: storeID, OriginalPrice: 8.49, SalePrice: 5.99}
}

func family() preferences.Household {
	return preferences.Household{Members: []preferences.HouseholdMember{
		{Type: preferences.MemberAdult}, {Type: preferences.MemberAdult}, {Type: preferences.MemberChild},
	}}
}

func TestGenerateWeeklyPlanDealMatching(t *testing.T) {
	p := newTestPlanner([]recipe.Recipe{chickenRice}, []deals.DealItem{chickenDeal("store-001")}, 1)
	prefs := preferences.UserPreferences{
		ID:             "user-1",
		SelectedStores: []string{"store-001"},
		Household:      family(),
	}

	opts := DefaultOptions()
	opts.PlanDays = 1
	opts.StartDate = time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC)
	plan := p.GenerateWeeklyPlan(prefs, opts)

	if len(plan.Days) != 1 {
		t.Fatalf("Expected 1 day, got %d", len(plan.Days))
	}
	meals := plan.Days[0].Meals
	// The only recipe is a dinner, so breakfast has nothing to draw from.
	if len(meals) != 2 {
		t.Fatalf("Expected lunch and dinner only, got %d meals", len(meals))
	}
	if meals[0].MealType != recipe.MealLunch || meals[1].MealType != recipe.MealDinner {
		t.Errorf("Expected lunch then dinner, got %s then %s", meals[0].MealType, meals[1].MealType)
	}

	for _, m := range meals {
		if !m.UsesDeals {
			t.Errorf("Expected %s to use deals", m.MealType)
		}
		if m.Servings != 3 {
			t.Errorf("Expected 3 servings, got %d", m.Servings)
		}
		// (8.49 - 5.99) scaled by 3/2.
		if m.DealSavings != 3.75 {
			t.Errorf("Expected deal savings 3.75, got %v", m.DealSavings)
		}
		if m.EstimatedTime != 30 {
			t.Errorf("Expected estimated time 30, got %d", m.EstimatedTime)
		}
		if m.DayOfWeek != int(time.Monday) {
			t.Errorf("Expected Monday, got %d", m.DayOfWeek)
		}
		if m.ID == "" {
			t.Error("Expected a meal id")
		}
	}

	if plan.UserID != "user-1" {
		t.Errorf("Expected user 'user-1', got '%s'", plan.UserID)
	}
	if plan.Summary.TotalMeals != 2 || plan.Summary.DealPercentage != 100 {
		t.Errorf("Expected 2 meals all on deal, got %+v", plan.Summary)
	}
	if plan.ShoppingList.TotalItems != 2 {
		t.Errorf("Expected 2 shopping items, got %d", plan.ShoppingList.TotalItems)
	}
}

func TestGenerateWeeklyPlanIgnoresUnselectedStores(t *testing.T) {
	p := newTestPlanner([]recipe.Recipe{chickenRice}, []deals.DealItem{chickenDeal("store-002")}, 1)
	prefs := preferences.UserPreferences{SelectedStores: []string{"store-001"}, Household: family()}

	opts := DefaultOptions()
	opts.PlanDays = 2
	plan := p.GenerateWeeklyPlan(prefs, opts)

	for _, d := range plan.Days {
		for _, m := range d.Meals {
			if m.UsesDeals || m.DealSavings != 0 {
				t.Errorf("Expected no deals outside the selected store, got %+v", m)
			}
		}
	}
	if plan.Summary.DealPercentage != 0 {
		t.Errorf("Expected deal percentage 0, got %d", plan.Summary.DealPercentage)
	}
}

func TestGenerateWeeklyPlanDefaults(t *testing.T) {
	p := newTestPlanner(recipe.DefaultRecipes(), nil, 7)
	prefs := preferences.UserPreferences{
		Household:      family(),
		DietaryContext: preferences.DietaryContext{CookingSkill: preferences.SkillAdvanced, TimePerMeal: preferences.TimeModerate},
	}

	plan := p.GenerateWeeklyPlan(prefs, Options{})

	if len(plan.Days) != DefaultPlanDays {
		t.Fatalf("Expected %d days, got %d", DefaultPlanDays, len(plan.Days))
	}
	wantStart := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	if !plan.WeekStartDate.Equal(wantStart) {
		t.Errorf("Expected start %v, got %v", wantStart, plan.WeekStartDate)
	}

	total := 0
	for i, d := range plan.Days {
		if !d.Date.Equal(wantStart.AddDate(0, 0, i)) {
			t.Errorf("Day %d: expected date %v, got %v", i, wantStart.AddDate(0, 0, i), d.Date)
		}
		if len(d.Meals) != 3 {
			t.Errorf("Day %d: expected 3 meals, got %d", i, len(d.Meals))
		}
		for _, m := range d.Meals {
			if m.DayOfWeek != int(d.Date.Weekday()) {
				t.Errorf("Day %d: meal day %d does not match %s", i, m.DayOfWeek, d.DayName)
			}
			if m.MealType == recipe.MealBreakfast &&
				m.Recipe.Category != recipe.CategoryBreakfast && m.Recipe.Category != recipe.CategoryDessert {
				t.Errorf("Day %d: breakfast drew %s from category %s", i, m.Recipe.Name, m.Recipe.Category)
			}
			if m.EstimatedTime > 60 {
				t.Errorf("Day %d: %s takes %d minutes, over the moderate budget", i, m.Recipe.Name, m.EstimatedTime)
			}
		}
		total += len(d.Meals)
	}
	if plan.Summary.TotalMeals != total {
		t.Errorf("Expected summary to count %d meals, got %d", total, plan.Summary.TotalMeals)
	}
	if plan.Summary.UniqueIngredients == 0 {
		t.Error("Expected ingredient usage to be tracked")
	}
	if plan.Summary.DealPercentage == 0 {
		t.Error("Expected synthetic deals to match at least one meal")
	}
	if len(plan.ShoppingList.Stores) == 0 {
		t.Error("Expected a shopping list")
	}
}

func TestGenerateWeeklyPlanSeeded(t *testing.T) {
	prefs := preferences.UserPreferences{
		Household:      family(),
		DietaryContext: preferences.DietaryContext{CookingSkill: preferences.SkillAdvanced, TimePerMeal: preferences.TimeFlexible},
	}
	opts := DefaultOptions()
	opts.StartDate = time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC)

	recipeIDs := func(plan WeeklyMealPlan) []string {
		var ids []string
		for _, d := range plan.Days {
			for _, m := range d.Meals {
				ids = append(ids, m.Recipe.ID)
			}
		}
		return ids
	}

	a := recipeIDs(newTestPlanner(recipe.DefaultRecipes(), nil, 42).GenerateWeeklyPlan(prefs, opts))
	b := recipeIDs(newTestPlanner(recipe.DefaultRecipes(), nil, 42).GenerateWeeklyPlan(prefs, opts))

	if strings.Join(a, ",") != strings.Join(b, ",") {
		t.Errorf("Expected identical selections for the same seed\nfirst:  %v\nsecond: %v", a, b)
	}
}

func TestGenerateWeeklyPlanVegetarian(t *testing.T) {
	p := newTestPlanner(recipe.DefaultRecipes(), nil, 3)
	prefs := preferences.UserPreferences{
		Household: family(),
		DietaryContext: preferences.DietaryContext{
			Restrictions: []string{preferences.RestrictionVegetarian},
			CookingSkill: preferences.SkillBeginner,
			TimePerMeal:  preferences.TimeFlexible,
		},
	}

	plan := p.GenerateWeeklyPlan(prefs, DefaultOptions())
	for _, d := range plan.Days {
		for _, m := range d.Meals {
			if m.Recipe.Difficulty == recipe.DifficultyHard {
				t.Errorf("Expected no hard recipes for a beginner, got %s", m.Recipe.Name)
			}
			for _, ing := range m.Recipe.Ingredients {
				if ing.Category == recipe.IngredientMeat || ing.Category == recipe.IngredientSeafood {
					t.Errorf("Expected a vegetarian plan, %s uses %s", m.Recipe.Name, ing.Name)
				}
			}
		}
	}
}

func TestGenerateWeeklyPlanEmptyCatalog(t *testing.T) {
	p := newTestPlanner(nil, nil, 1)
	plan := p.GenerateWeeklyPlan(preferences.UserPreferences{}, DefaultOptions())

	if len(plan.Days) != DefaultPlanDays {
		t.Fatalf("Expected %d days, got %d", DefaultPlanDays, len(plan.Days))
	}
	for _, d := range plan.Days {
		if len(d.Meals) != 0 {
			t.Errorf("Expected no meals, got %d", len(d.Meals))
		}
	}
	if plan.Summary.TotalMeals != 0 || plan.Summary.AverageCostPerMeal != 0 || plan.Summary.DealPercentage != 0 {
		t.Errorf("Expected a zero summary, got %+v", plan.Summary)
	}
}

func TestSelectMealPicksFromTopCandidates(t *testing.T) {
	p := newTestPlanner(nil, nil, 9)
	pool := []recipe.Recipe{chickenRice, stew, salad, pancakes}
	sc := SlotContext{MealType: recipe.MealDinner}

	top := TopCandidates(RankCandidates(pool, sc), TopN)
	allowed := map[string]bool{}
	for _, c := range top {
		allowed[c.Recipe.ID] = true
	}

	for i := 0; i < 50; i++ {
		r, ok := p.selectMeal(pool, sc)
		if !ok {
			t.Fatal("Expected a selection")
		}
		if !allowed[r.ID] {
			t.Fatalf("Selected %s outside the top %d", r.ID, TopN)
		}
	}

	if _, ok := p.selectMeal(nil, sc); ok {
		t.Error("Expected no selection from an empty pool")
	}
}

func TestCalculateSummary(t *testing.T) {
	day := mealplan.NewDailyPlan(testNow, []mealplan.PlannedMeal{
		{EstimatedCost: 4.00, EstimatedTime: 20, UsesDeals: true, DealSavings: 1.50},
		{EstimatedCost: 6.00, EstimatedTime: 40, UsesDeals: true, DealSavings: 0.50},
		{EstimatedCost: 2.00, EstimatedTime: 30},
	})
	used := map[string]int{"eggs": 2, "rice": 1, "milk": 3}
	list := shopping.SmartShoppingList{TotalCost: 11.5, TotalSavings: 2}

	s := CalculateSummary([]mealplan.DailyPlan{day}, used, list)

	if s.TotalMeals != 3 || s.MealsUsingDeals != 2 {
		t.Errorf("Expected 3 meals with 2 on deal, got %d and %d", s.TotalMeals, s.MealsUsingDeals)
	}
	if s.DealPercentage != 67 {
		t.Errorf("Expected deal percentage 67, got %d", s.DealPercentage)
	}
	if s.TotalCost != 12 || s.AverageCostPerMeal != 4 {
		t.Errorf("Expected total 12 and average 4, got %v and %v", s.TotalCost, s.AverageCostPerMeal)
	}
	if s.TotalSavings != 2 {
		t.Errorf("Expected savings 2, got %v", s.TotalSavings)
	}
	if s.AverageTimePerMeal != 30 {
		t.Errorf("Expected average time 30, got %d", s.AverageTimePerMeal)
	}
	if s.IngredientsReused != 2 || s.UniqueIngredients != 3 {
		t.Errorf("Expected 2 reused of 3 unique, got %d of %d", s.IngredientsReused, s.UniqueIngredients)
	}
	if s.ShoppingCost != 11.5 {
		t.Errorf("Expected shopping cost 11.5, got %v", s.ShoppingCost)
	}

	empty := CalculateSummary(nil, map[string]int{}, shopping.SmartShoppingList{})
	if empty.AverageCostPerMeal != 0 || empty.DealPercentage != 0 {
		t.Errorf("Expected zero averages without meals, got %+v", empty)
	}
}
