package app

import (
	"context"
	"fmt"
	"log"

	"grocery-planner/internal/clipper"
	"grocery-planner/internal/config"
	"grocery-planner/internal/database"
	"grocery-planner/internal/deals"
	"grocery-planner/internal/ghost"
	"grocery-planner/internal/llm"
	"grocery-planner/internal/metrics"
	"grocery-planner/internal/newsletter"
	"grocery-planner/internal/planner"
	"grocery-planner/internal/preferences"
	"grocery-planner/internal/recipe"
	"grocery-planner/internal/shopping"
	"grocery-planner/internal/storage"
)

// Setup opens the database and wires every collaborator from cfg.
// The returned cleanup closes the database and the LLM client.
func Setup(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	textGen, err := llm.NewTextGenerator(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	cleanup := func() {
		if c, ok := textGen.(llm.Closer); ok {
			if err := c.Close(); err != nil {
				log.Printf("Warning: failed to close LLM client: %v", err)
			}
		}
		if err := db.Close(); err != nil {
			log.Printf("Warning: failed to close database: %v", err)
		}
	}

	snapshots, err := storage.NewDealSnapshotStore(cfg.DealSnapshotPath)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to initialize deal snapshots: %w", err)
	}

	recipeRepo := recipe.NewRepository(db.SQL)
	catalog, err := LoadCatalog(ctx, recipeRepo)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	var fetcher deals.Fetcher = deals.NewSyntheticFetcher(nil)
	if cfg.FlyerURLTemplate != "" {
		fetcher = clipper.NewFlyerFetcher(cfg.FlyerURLTemplate, nil)
	}

	var publisher ghost.Publisher
	if cfg.GhostEnabled() {
		publisher = ghost.NewClient(cfg.GhostURL, cfg.GhostAdminKey)
	}

	dealStore := deals.NewStore(nil)
	builder := shopping.NewBuilder(dealStore, cfg.DefaultStoreID)
	mealPlanner := planner.NewPlanner(catalog, dealStore, builder, nil)

	a := NewApp(
		cfg,
		catalog,
		dealStore,
		fetcher,
		snapshots,
		mealPlanner,
		planner.NewPlanRepository(db.SQL),
		shopping.NewRepository(db.SQL),
		recipeRepo,
		preferences.NewRepository(db.SQL),
		metrics.NewStore(db.SQL),
		newsletter.NewWriter(textGen, publisher),
	)

	restored, err := a.RestoreDeals()
	if err != nil {
		log.Printf("Warning: failed to restore deal snapshot: %v", err)
	} else if restored {
		log.Printf("Restored this week's deals from snapshot")
	}

	log.Printf("Loaded %d recipes, LLM provider %s, deal source %T", catalog.Len(), cfg.LLMProvider, fetcher)
	return a, cleanup, nil
}
