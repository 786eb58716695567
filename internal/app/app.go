package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"grocery-planner/internal/config"
	"grocery-planner/internal/deals"
	"grocery-planner/internal/ghost"
	"grocery-planner/internal/metrics"
	"grocery-planner/internal/newsletter"
	"grocery-planner/internal/planner"
	"grocery-planner/internal/preferences"
	"grocery-planner/internal/recipe"
	"grocery-planner/internal/shopping"
	"grocery-planner/internal/storage"
)

// DefaultUserID owns plans generated without an explicit user.
const DefaultUserID = "default_user"

// App holds the application's dependencies.
type App struct {
	cfg          *config.Config
	catalog      *recipe.Catalog
	dealStore    *deals.Store
	fetcher      deals.Fetcher
	snapshots    *storage.DealSnapshotStore
	mealPlanner  *planner.Planner
	planRepo     *planner.PlanRepository
	shoppingRepo *shopping.Repository
	recipeRepo   *recipe.Repository
	prefsRepo    *preferences.Repository
	metricsStore *metrics.Store
	writer       *newsletter.Writer
	now          func() time.Time
}

// NewApp creates and initializes a new App instance.
func NewApp(
	cfg *config.Config,
	catalog *recipe.Catalog,
	dealStore *deals.Store,
	fetcher deals.Fetcher,
	snapshots *storage.DealSnapshotStore,
	mealPlanner *planner.Planner,
	planRepo *planner.PlanRepository,
	shoppingRepo *shopping.Repository,
	recipeRepo *recipe.Repository,
	prefsRepo *preferences.Repository,
	metricsStore *metrics.Store,
	writer *newsletter.Writer,
) *App {
	return &App{
		cfg:          cfg,
		catalog:      catalog,
		dealStore:    dealStore,
		fetcher:      fetcher,
		snapshots:    snapshots,
		mealPlanner:  mealPlanner,
		planRepo:     planRepo,
		shoppingRepo: shoppingRepo,
		recipeRepo:   recipeRepo,
		prefsRepo:    prefsRepo,
		metricsStore: metricsStore,
		writer:       writer,
		now:          time.Now,
	}
}

// LoadCatalog merges the stored recipes over the built-in ones.
func LoadCatalog(ctx context.Context, repo *recipe.Repository) (*recipe.Catalog, error) {
	stored, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored recipes: %w", err)
	}
	return recipe.NewCatalog(recipe.DefaultRecipes(), stored), nil
}

// Catalog returns the recipe catalog plans are drawn from.
func (a *App) Catalog() *recipe.Catalog {
	return a.catalog
}

// Deals returns the effective deal store.
func (a *App) Deals() *deals.Store {
	return a.dealStore
}

// DefaultPreferences reads the preferences file, falling back to a two-adult
// household shopping at the default store when the file is missing.
func (a *App) DefaultPreferences() (preferences.UserPreferences, error) {
	if a.cfg.PreferencesPath != "" {
		p, err := preferences.LoadFile(a.cfg.PreferencesPath)
		if err == nil {
			if p.ID == "" {
				p.ID = DefaultUserID
			}
			return p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return preferences.UserPreferences{}, err
		}
	}

	return preferences.UserPreferences{
		ID:             DefaultUserID,
		SelectedStores: []string{a.cfg.DefaultStoreID},
		Household: preferences.Household{Members: []preferences.HouseholdMember{
			{Type: preferences.MemberAdult},
			{Type: preferences.MemberAdult},
		}},
		DietaryContext: preferences.DietaryContext{
			CookingSkill: preferences.SkillIntermediate,
			TimePerMeal:  preferences.TimeModerate,
		},
		AutoSearchDeals: true,
	}, nil
}

// PreferencesFor returns the stored preferences of a user, or the default
// preferences under the user's id when none are stored.
func (a *App) PreferencesFor(ctx context.Context, userID string) (preferences.UserPreferences, error) {
	stored, err := a.prefsRepo.Get(ctx, userID)
	if err != nil {
		return preferences.UserPreferences{}, err
	}
	if stored != nil {
		return *stored, nil
	}

	p, err := a.DefaultPreferences()
	if err != nil {
		return preferences.UserPreferences{}, err
	}
	p.ID = userID
	return p, nil
}

// SavePreferences stores a user's preferences.
func (a *App) SavePreferences(ctx context.Context, p preferences.UserPreferences) error {
	return a.prefsRepo.Save(ctx, p)
}

// PlanOptions returns the default options with the configured plan length.
func (a *App) PlanOptions() planner.Options {
	opts := planner.DefaultOptions()
	if a.cfg.PlanDays > 0 {
		opts.PlanDays = a.cfg.PlanDays
	}
	return opts
}

// GeneratePlan builds a weekly plan, stores it with its shopping list and records metrics.
func (a *App) GeneratePlan(ctx context.Context, prefs preferences.UserPreferences, opts planner.Options) (planner.WeeklyMealPlan, error) {
	if err := preferences.Validate(prefs); err != nil {
		return planner.WeeklyMealPlan{}, err
	}
	userID := prefs.ID
	if userID == "" {
		userID = DefaultUserID
	}

	start := a.now()
	plan := a.mealPlanner.GenerateWeeklyPlan(prefs, opts)
	plan.UserID = userID
	latency := a.now().Sub(start)

	if err := a.planRepo.Save(ctx, userID, plan); err != nil {
		return plan, fmt.Errorf("failed to save meal plan: %w", err)
	}
	if _, err := a.shoppingRepo.Save(ctx, userID, plan.ID, plan.ShoppingList); err != nil {
		return plan, fmt.Errorf("failed to save shopping list: %w", err)
	}

	if err := a.metricsStore.RecordPlan(ctx, metrics.PlanMetric{
		PlanID:         plan.ID,
		PlanDays:       len(plan.Days),
		TotalMeals:     plan.Summary.TotalMeals,
		DealPercentage: plan.Summary.DealPercentage,
		TotalCost:      plan.Summary.TotalCost,
		TotalSavings:   plan.Summary.TotalSavings,
		LatencyMS:      latency.Milliseconds(),
	}); err != nil {
		log.Printf("Warning: failed to record plan metrics for %s: %v", plan.ID, err)
	}

	log.Printf("Generated plan %s for %s: %d meals, %d%% on deals, $%.2f saved",
		plan.ID, userID, plan.Summary.TotalMeals, plan.Summary.DealPercentage, plan.Summary.TotalSavings)
	return plan, nil
}

// GetPlan loads a stored plan. It returns nil when the plan does not exist.
func (a *App) GetPlan(ctx context.Context, id string) (*planner.StoredPlan, error) {
	return a.planRepo.Get(ctx, id)
}

// RecentPlans lists a user's latest plans.
func (a *App) RecentPlans(ctx context.Context, userID string, limit int) ([]planner.StoredPlan, error) {
	return a.planRepo.ListRecentByUserID(ctx, userID, limit)
}

// LatestPlan returns the user's newest plan or nil.
func (a *App) LatestPlan(ctx context.Context, userID string) (*planner.StoredPlan, error) {
	plans, err := a.planRepo.ListRecentByUserID(ctx, userID, 1)
	if err != nil || len(plans) == 0 {
		return nil, err
	}
	return &plans[0], nil
}

// ShoppingList loads the stored shopping list of a plan. It returns nil when none exists.
func (a *App) ShoppingList(ctx context.Context, planID string) (*shopping.ShoppingList, error) {
	return a.shoppingRepo.GetByMealPlanID(ctx, planID)
}

// WriteNewsletter writes the savings newsletter for plan and, when publish is
// set and Ghost is configured, posts it as a draft.
func (a *App) WriteNewsletter(ctx context.Context, plan planner.WeeklyMealPlan, publish bool) (newsletter.Newsletter, *ghost.Post, error) {
	n, meta := a.writer.Write(ctx, plan)
	if err := a.metricsStore.RecordMeta(ctx, meta); err != nil {
		log.Printf("Warning: failed to record metrics for %s: %v", meta.AgentName, err)
	}

	if !publish || !a.cfg.GhostEnabled() {
		return n, nil, nil
	}
	post, err := a.writer.Publish(ctx, n, false)
	if err != nil {
		return n, nil, err
	}
	return n, post, nil
}

// Usage reports daily metrics for the last days.
func (a *App) Usage(ctx context.Context, days int) ([]metrics.DailyUsage, error) {
	return a.metricsStore.GetDailyUsage(ctx, days)
}

// MetricsCleanup removes metrics older than days.
func (a *App) MetricsCleanup(ctx context.Context, days int) (int64, error) {
	return a.metricsStore.Cleanup(ctx, days)
}

// Health reports runtime statistics and the size of the data directories.
func (a *App) Health() metrics.SysHealth {
	paths := []string{filepath.Dir(a.cfg.DatabasePath)}
	if a.cfg.DealSnapshotPath != "" && !strings.HasPrefix(a.cfg.DealSnapshotPath, paths[0]+string(filepath.Separator)) {
		paths = append(paths, a.cfg.DealSnapshotPath)
	}
	return metrics.GetSysHealth(paths...)
}
