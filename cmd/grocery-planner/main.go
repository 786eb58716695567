package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"grocery-planner/internal/api"
	"grocery-planner/internal/app"
	"grocery-planner/internal/config"
	"grocery-planner/internal/planner"
	"grocery-planner/internal/shopping"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	application, cleanup, err := app.Setup(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer cleanup()

	switch os.Args[1] {
	case "plan":
		planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
		days := planCmd.Int("days", cfg.PlanDays, "Number of days to plan (1-14)")
		start := planCmd.String("start", "", "First day of the plan (YYYY-MM-DD), default today")
		noDeals := planCmd.Bool("no-deals", false, "Ignore deals when scoring recipes")
		asJSON := planCmd.Bool("json", false, "Print the plan as JSON")
		writeNewsletter := planCmd.Bool("newsletter", false, "Write the savings newsletter")
		publish := planCmd.Bool("publish", false, "Post the newsletter to Ghost as a draft")
		planCmd.Parse(os.Args[2:])

		if err := runPlan(ctx, application, *days, *start, !*noDeals, *asJSON, *writeNewsletter, *publish); err != nil {
			cleanup()
			log.Fatalf("Plan failed: %v", err)
		}
	case "fetch-deals":
		fetchCmd := flag.NewFlagSet("fetch-deals", flag.ExitOnError)
		stores := fetchCmd.String("stores", "", "Comma separated store ids, default all")
		fetchCmd.Parse(os.Args[2:])

		res, err := application.FetchDeals(ctx, splitIDs(*stores))
		if err != nil {
			cleanup()
			log.Fatalf("Deal fetch failed: %v", err)
		}
		fmt.Printf("Fetched %d deals from %d stores (%s, week %s).\n", len(res.Deals), res.StoreCount, res.Source, res.WeekOf)
	case "seed-recipes":
		seedCmd := flag.NewFlagSet("seed-recipes", flag.ExitOnError)
		file := seedCmd.String("file", "", "JSON file with extra recipes to import")
		seedCmd.Parse(os.Args[2:])

		n, err := application.SeedRecipes(ctx)
		if err != nil {
			cleanup()
			log.Fatalf("Seeding failed: %v", err)
		}
		fmt.Printf("Seeded %d built-in recipes.\n", n)

		if *file != "" {
			n, err := application.ImportRecipes(ctx, *file)
			if err != nil {
				cleanup()
				log.Fatalf("Import failed: %v", err)
			}
			fmt.Printf("Imported %d recipes from %s.\n", n, *file)
		}
	case "serve":
		serve(application, cfg.Port)
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := application.MetricsCleanup(ctx, *days)
		if err != nil {
			cleanup()
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		cleanup()
		os.Exit(1)
	}
}

func runPlan(ctx context.Context, a *app.App, days int, start string, preferDeals, asJSON, writeNewsletter, publish bool) error {
	prefs, err := a.DefaultPreferences()
	if err != nil {
		return err
	}

	opts := a.PlanOptions()
	opts.PlanDays = days
	opts.PreferDeals = preferDeals
	if start != "" {
		t, err := time.ParseInLocation("2006-01-02", start, time.Local)
		if err != nil {
			return fmt.Errorf("invalid -start %q: %w", start, err)
		}
		opts.StartDate = t
	}

	plan, err := a.GeneratePlan(ctx, prefs, opts)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plan); err != nil {
			return err
		}
	} else {
		printPlan(plan)
	}

	if !writeNewsletter && !publish {
		return nil
	}
	n, post, err := a.WriteNewsletter(ctx, plan, publish)
	if err != nil {
		return err
	}
	fmt.Printf("\n%s\n\n%s\n", n.Subject, n.Body)
	if post != nil {
		fmt.Printf("\nDraft created: %s\n", post.URL)
	}
	return nil
}

func printPlan(plan planner.WeeklyMealPlan) {
	fmt.Printf("Meal plan %s (from %s)\n\n", plan.ID, plan.WeekStartDate.Format("Mon Jan 2, 2006"))
	for _, day := range plan.Days {
		fmt.Printf("%s\n", day.DayName)
		for _, m := range day.Meals {
			deal := ""
			if m.UsesDeals {
				deal = fmt.Sprintf("  [deal, save $%.2f]", m.DealSavings)
			}
			fmt.Printf("  %-10s %-32s $%6.2f %4d min%s\n", m.MealType, m.Recipe.Name, m.EstimatedCost, m.EstimatedTime, deal)
		}
	}

	s := plan.Summary
	fmt.Printf("\n%d meals, %d%% on deals. Cost $%.2f, saved $%.2f, %d min cooking.\n",
		s.TotalMeals, s.DealPercentage, s.TotalCost, s.TotalSavings, s.TotalTime)
	printShoppingList(plan.ShoppingList)
}

func printShoppingList(list shopping.SmartShoppingList) {
	fmt.Printf("\nShopping list (%d items)\n", list.TotalItems)
	for _, st := range list.Stores {
		fmt.Printf("\n%s: $%.2f, saving $%.2f\n", st.StoreName, st.TotalCost, st.TotalSavings)
		for _, item := range st.Items {
			sale := ""
			if item.IsOnSale {
				sale = fmt.Sprintf("  (was $%.2f)", item.NormalPrice)
			}
			fmt.Printf("  %-24s %6g %-8s $%6.2f%s\n", item.IngredientName, item.Amount, item.Unit, item.BestPrice, sale)
		}
	}
	fmt.Printf("\nTotal $%.2f, saved $%.2f (%d%%)\n", list.TotalCost, list.TotalSavings, list.SavingsPercentage)
}

func serve(a *app.App, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: api.NewRouter(a),
	}

	go func() {
		log.Printf("API server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}

func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func printUsage() {
	fmt.Println("Usage: grocery-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan               Generate a meal plan and shopping list")
	fmt.Println("  fetch-deals        Fetch this week's deals and snapshot them")
	fmt.Println("  seed-recipes       Store the built-in recipes, optionally importing a file")
	fmt.Println("  serve              Run the HTTP API")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
