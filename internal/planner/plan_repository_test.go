package planner

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"grocery-planner/internal/database"
	"grocery-planner/internal/preferences"
	"grocery-planner/internal/recipe"
)

func TestPlanRepository(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "plans.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := NewPlanRepository(db.SQL)
	p := newTestPlanner([]recipe.Recipe{chickenRice, salad, pancakes}, nil, 5)

	opts := DefaultOptions()
	opts.PlanDays = 3
	first := p.GenerateWeeklyPlan(preferences.UserPreferences{ID: "user-1"}, opts)
	second := p.GenerateWeeklyPlan(preferences.UserPreferences{ID: "user-1"}, opts)
	second.CreatedAt = first.CreatedAt.Add(time.Hour)

	for _, plan := range []WeeklyMealPlan{first, second} {
		if err := repo.Save(ctx, "user-1", plan); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	t.Run("Get", func(t *testing.T) {
		got, err := repo.Get(ctx, first.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got == nil {
			t.Fatal("Expected a stored plan")
		}
		if got.Plan.ID != first.ID || len(got.Plan.Days) != 3 {
			t.Errorf("Expected plan %s with 3 days, got %s with %d", first.ID, got.Plan.ID, len(got.Plan.Days))
		}
		if got.Plan.Summary.TotalMeals != first.Summary.TotalMeals {
			t.Errorf("Expected %d meals, got %d", first.Summary.TotalMeals, got.Plan.Summary.TotalMeals)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		got, err := repo.Get(ctx, "does-not-exist")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got != nil {
			t.Error("Expected nil for a missing plan")
		}
	})

	t.Run("ListRecent", func(t *testing.T) {
		plans, err := repo.ListRecentByUserID(ctx, "user-1", 1)
		if err != nil {
			t.Fatalf("ListRecentByUserID failed: %v", err)
		}
		if len(plans) != 1 {
			t.Fatalf("Expected 1 plan, got %d", len(plans))
		}
		if plans[0].ID != second.ID {
			t.Errorf("Expected most recent plan %s, got %s", second.ID, plans[0].ID)
		}

		others, err := repo.ListRecentByUserID(ctx, "user-2", 5)
		if err != nil {
			t.Fatalf("ListRecentByUserID failed: %v", err)
		}
		if len(others) != 0 {
			t.Errorf("Expected no plans for another user, got %d", len(others))
		}
	})
}
