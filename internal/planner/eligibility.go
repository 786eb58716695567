package planner

import (
	"grocery-planner/internal/preferences"
	"grocery-planner/internal/recipe"
)

// FilterEligible returns the recipes a user can cook given their time budget,
// skill level and vegetarian restriction. The input slice is not modified.
//
// Allergies and other restrictions are not enforced here.
func FilterEligible(recipes []recipe.Recipe, prefs preferences.UserPreferences) []recipe.Recipe {
	maxMinutes := preferences.MaxMinutes(prefs.DietaryContext.TimePerMeal)
	skill := prefs.DietaryContext.CookingSkill
	vegetarian := prefs.HasRestriction(preferences.RestrictionVegetarian)

	out := []recipe.Recipe{}
	for _, r := range recipes {
		if r.TotalTime() > maxMinutes {
			continue
		}
		if r.Difficulty == recipe.DifficultyHard &&
			(skill == preferences.SkillBeginner || skill == preferences.SkillIntermediate) {
			continue
		}
		if vegetarian && hasMeat(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func hasMeat(r recipe.Recipe) bool {
	for _, ing := range r.Ingredients {
		if ing.Category == recipe.IngredientMeat || ing.Category == recipe.IngredientSeafood {
			return true
		}
	}
	return false
}
