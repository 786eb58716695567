package preferences

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
)

// MemberType groups household members by how much they eat.
type MemberType string

const (
	MemberAdult   MemberType = "adult"
	MemberTeen    MemberType = "teen"
	MemberChild   MemberType = "child"
	MemberToddler MemberType = "toddler"
)

// ServingWeight is the share of an adult serving a member type eats.
var ServingWeight = map[MemberType]float64{
	MemberAdult:   1.0,
	MemberTeen:    1.0,
	MemberChild:   0.65,
	MemberToddler: 0.35,
}

// TimePerMeal is how long a user is willing to spend on a meal.
type TimePerMeal string

const (
	TimeQuick    TimePerMeal = "quick"
	TimeModerate TimePerMeal = "moderate"
	TimeFlexible TimePerMeal = "flexible"
)

var maxMinutes = map[TimePerMeal]int{
	TimeQuick:    30,
	TimeModerate: 60,
	TimeFlexible: 180,
}

// Cooking skill levels.
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// Meal preferences that influence scoring.
const (
	PrefQuickMeals     = "quick-meals"
	PrefHealthy        = "healthy"
	PrefComfortFood    = "comfort-food"
	PrefBudgetFriendly = "budget-friendly"
	PrefFamilyFriendly = "family-friendly"
	PrefInternational  = "international"
)

// RestrictionVegetarian is the dietary restriction enforced on ingredients.
const RestrictionVegetarian = "Vegetarian"

// HouseholdMember is one person the plan cooks for.
type HouseholdMember struct {
	Name string     `json:"name,omitempty"`
	Type MemberType `json:"type" validate:"oneof=adult teen child toddler"`
}

// Household is everyone eating from the plan.
type Household struct {
	Members []HouseholdMember `json:"members" validate:"dive"`
}

// DietaryContext collects what and how the household can cook.
type DietaryContext struct {
	Allergies    []string    `json:"allergies"`
	Restrictions []string    `json:"restrictions"`
	BudgetLevel  string      `json:"budget_level" validate:"omitempty,oneof=low medium high"`
	CookingSkill string      `json:"cooking_skill" validate:"omitempty,oneof=beginner intermediate advanced"`
	TimePerMeal  TimePerMeal `json:"time_per_meal" validate:"omitempty,oneof=quick moderate flexible"`
}

// UserPreferences is everything the planner needs to know about a user.
type UserPreferences struct {
	ID              string         `json:"id"`
	Location        string         `json:"location"`
	SelectedStores  []string       `json:"selected_stores"`
	Household       Household      `json:"household"`
	DietaryContext  DietaryContext `json:"dietary_context"`
	MealPreferences []string       `json:"meal_preferences" validate:"dive,oneof=quick-meals healthy comfort-food budget-friendly family-friendly international"`
	AutoSearchDeals bool           `json:"auto_search_deals"`
}

// MaxMinutes maps a time tier to a minute budget. Unknown tiers get the moderate budget.
func MaxMinutes(t TimePerMeal) int {
	if m, ok := maxMinutes[t]; ok {
		return m
	}
	return maxMinutes[TimeModerate]
}

// ServingsNeeded rounds the household's weighted serving count up.
// An empty household still needs one serving.
func ServingsNeeded(h Household) int {
	var total float64
	for _, m := range h.Members {
		total += ServingWeight[m.Type]
	}
	servings := int(math.Ceil(total))
	if servings < 1 {
		return 1
	}
	return servings
}

// HasMealPreference reports whether pref was selected.
func (p UserPreferences) HasMealPreference(pref string) bool {
	return slices.Contains(p.MealPreferences, pref)
}

// HasRestriction reports whether a dietary restriction was selected.
func (p UserPreferences) HasRestriction(r string) bool {
	return slices.Contains(p.DietaryContext.Restrictions, r)
}

var validate = validator.New()

// Validate checks preferences against the allowed enums.
func Validate(p UserPreferences) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid preferences: %w", err)
	}
	return nil
}

// LoadFile reads and validates preferences stored as JSON.
func LoadFile(path string) (UserPreferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return UserPreferences{}, fmt.Errorf("failed to read preferences file: %w", err)
	}

	var p UserPreferences
	if err := json.Unmarshal(data, &p); err != nil {
		return UserPreferences{}, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	if err := Validate(p); err != nil {
		return UserPreferences{}, err
	}
	return p, nil
}
