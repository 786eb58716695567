package planner

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"grocery-planner/internal/deals"
	"grocery-planner/internal/mealplan"
	"grocery-planner/internal/preferences"
	"grocery-planner/internal/recipe"
	"grocery-planner/internal/shopping"
)

// slotOrder is the order slots are filled in each day. Dinner goes first so
// its ingredients count towards reuse for lunch and breakfast.
var slotOrder = []recipe.MealType{recipe.MealDinner, recipe.MealLunch, recipe.MealBreakfast}

// Planner generates weekly meal plans from the recipe catalog and current deals.
type Planner struct {
	catalog *recipe.Catalog
	deals   *deals.Store
	builder *shopping.Builder
	now     func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPlanner creates a new Planner. A nil rng is seeded from the clock.
func NewPlanner(catalog *recipe.Catalog, dealStore *deals.Store, builder *shopping.Builder, rng *rand.Rand) *Planner {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>32))
	}
	return &Planner{
		catalog: catalog,
		deals:   dealStore,
		builder: builder,
		now:     time.Now,
		rng:     rng,
	}
}

// GenerateWeeklyPlan fills breakfast, lunch and dinner for each day of the plan.
// Slots with no eligible recipe are left empty.
func (p *Planner) GenerateWeeklyPlan(prefs preferences.UserPreferences, opts Options) WeeklyMealPlan {
	if opts.PlanDays <= 0 {
		opts.PlanDays = DefaultPlanDays
	}
	start := opts.StartDate
	if start.IsZero() {
		now := p.now()
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	eligible := FilterEligible(p.catalog.All(), prefs)
	active := p.deals.Active(prefs.SelectedStores)
	best := deals.BestByIngredient(active)

	matches := map[string]DealMatch{}
	for _, m := range MatchDeals(eligible, active, prefs) {
		matches[m.Recipe.ID] = m
	}

	servings := preferences.ServingsNeeded(prefs.Household)
	used := map[string]int{}

	days := make([]mealplan.DailyPlan, 0, opts.PlanDays)
	for i := 0; i < opts.PlanDays; i++ {
		date := start.AddDate(0, 0, i)
		chosen := map[recipe.MealType]mealplan.PlannedMeal{}

		for _, mt := range slotOrder {
			r, ok := p.selectMeal(eligible, SlotContext{
				MealType:      mt,
				Prefs:         prefs,
				Matches:       matches,
				Used:          used,
				PreferDeals:   opts.PreferDeals,
				MaximizeReuse: opts.MaximizeIngredientReuse,
			})
			if !ok {
				continue
			}
			chosen[mt] = buildMeal(r, mt, date, servings, best)
			for _, ing := range r.Ingredients {
				used[strings.ToLower(ing.Name)]++
			}
		}

		var meals []mealplan.PlannedMeal
		for _, mt := range []recipe.MealType{recipe.MealBreakfast, recipe.MealLunch, recipe.MealDinner} {
			if m, ok := chosen[mt]; ok {
				meals = append(meals, m)
			}
		}
		days = append(days, mealplan.NewDailyPlan(date, meals))
	}

	list := p.builder.Build(days, prefs)
	return WeeklyMealPlan{
		ID:            uuid.NewString(),
		UserID:        prefs.ID,
		CreatedAt:     p.now(),
		WeekStartDate: start,
		Days:          days,
		Summary:       CalculateSummary(days, used, list),
		ShoppingList:  list,
	}
}

// selectMeal picks one of the top scoring recipes for a slot at random.
func (p *Planner) selectMeal(eligible []recipe.Recipe, sc SlotContext) (recipe.Recipe, bool) {
	top := TopCandidates(RankCandidates(SlotPool(eligible, sc.MealType), sc), TopN)
	if len(top) == 0 {
		return recipe.Recipe{}, false
	}

	p.mu.Lock()
	idx := p.rng.IntN(len(top))
	p.mu.Unlock()

	return top[idx].Recipe, true
}

// buildMeal scales a recipe to the household and prices it against the best deals.
func buildMeal(r recipe.Recipe, mt recipe.MealType, date time.Time, servings int, best map[string]deals.DealItem) mealplan.PlannedMeal {
	scale := 1.0
	if r.Servings > 0 {
		scale = float64(servings) / float64(r.Servings)
	}

	var normal, discounted float64
	usesDeals := false
	for _, ing := range r.Ingredients {
		if d, ok := best[deals.IngredientID(ing.Name)]; ok {
			normal += d.OriginalPrice * scale
			discounted += d.SalePrice * scale
			usesDeals = true
			continue
		}
		normal += ing.Price() * scale
		discounted += ing.Price() * scale
	}

	return mealplan.PlannedMeal{
		ID:            uuid.NewString(),
		DayOfWeek:     int(date.Weekday()),
		MealType:      mt,
		Recipe:        r,
		Servings:      servings,
		EstimatedCost: mealplan.Round2(discounted),
		EstimatedTime: r.TotalTime(),
		UsesDeals:     usesDeals,
		DealSavings:   mealplan.Round2(normal - discounted),
	}
}
