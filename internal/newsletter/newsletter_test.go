package newsletter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"grocery-planner/internal/ghost"
	"grocery-planner/internal/llm"
	"grocery-planner/internal/mealplan"
	"grocery-planner/internal/planner"
	"grocery-planner/internal/recipe"
	"grocery-planner/internal/shared"
	"grocery-planner/internal/shopping"
)

// MockTextGenerator returns a canned response and records the prompt.
type MockTextGenerator struct {
	Content    string
	Err        error
	LastPrompt string
}

func (m *MockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.LastPrompt = prompt
	if m.Err != nil {
		return llm.ContentResponse{}, m.Err
	}
	return llm.ContentResponse{
		Content: m.Content,
		Usage:   shared.TokenUsage{PromptTokens: 120, CompletionTokens: 40, TotalTokens: 160, Model: "mock"},
	}, nil
}

type mockPublisher struct {
	title   string
	html    string
	publish bool
	err     error
}

func (m *mockPublisher) CreatePost(ctx context.Context, title, html string, publish bool) (*ghost.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.title, m.html, m.publish = title, html, publish
	return &ghost.Post{ID: "post-1", Title: title, Status: "draft"}, nil
}

func testPlan() planner.WeeklyMealPlan {
	start := time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC)
	stew := recipe.Recipe{ID: "stew", Name: "Beef Stew"}
	day := mealplan.NewDailyPlan(start, []mealplan.PlannedMeal{
		{MealType: recipe.MealDinner, Recipe: stew, EstimatedCost: 12.5},
		{MealType: recipe.MealLunch, Recipe: recipe.Recipe{Name: "Salad"}, EstimatedCost: 4},
	})

	return planner.WeeklyMealPlan{
		ID:            "plan-1",
		WeekStartDate: start,
		Days:          []mealplan.DailyPlan{day},
		Summary: planner.WeeklySummary{
			TotalMeals:     2,
			DealPercentage: 50,
			TotalCost:      16.5,
			TotalSavings:   3.25,
		},
		ShoppingList: shopping.SmartShoppingList{
			Stores: []shopping.StoreShoppingList{
				{
					StoreID:   "store-002",
					StoreName: "Corner Market",
					Items: []shopping.SmartShoppingItem{
						{IngredientName: "Beef", BestPrice: 9, NormalPrice: 12, Savings: 3, IsOnSale: true},
						{IngredientName: "Carrot", BestPrice: 1, NormalPrice: 1},
						{IngredientName: "Onion", BestPrice: 0.75, NormalPrice: 1, Savings: 0.25, IsOnSale: true},
					},
					TotalCost: 10.75,
					ItemCount: 3,
				},
			},
			TotalCost:    10.75,
			TotalSavings: 3.25,
			TotalItems:   3,
		},
	}
}

func TestWriter_Write(t *testing.T) {
	plan := testPlan()

	t.Run("UsesLLMResponse", func(t *testing.T) {
		gen := &MockTextGenerator{Content: `{"subject": "Save big on stew week", "body": "One\n\nTwo"}`}
		w := NewWriter(gen, nil)

		n, meta := w.Write(context.Background(), plan)
		if !n.Generated {
			t.Error("Expected newsletter to be marked as generated")
		}
		if n.Subject != "Save big on stew week" {
			t.Errorf("Expected LLM subject, got '%s'", n.Subject)
		}
		if meta.AgentName != AgentName || meta.Usage.TotalTokens != 160 {
			t.Errorf("Expected usage to be recorded, got %+v", meta)
		}

		for _, want := range []string{"2026-W42", "Beef at Corner Market: $9.00 instead of $12.00", "Beef Stew", "Corner Market: 3 items"} {
			if !strings.Contains(gen.LastPrompt, want) {
				t.Errorf("Expected prompt to contain %q", want)
			}
		}
		if strings.Contains(gen.LastPrompt, "Salad") {
			t.Error("Expected only dinners to be featured")
		}
	})

	t.Run("FallbackOnError", func(t *testing.T) {
		w := NewWriter(&MockTextGenerator{Err: errors.New("quota exceeded")}, nil)
		n, _ := w.Write(context.Background(), plan)
		if n.Generated {
			t.Error("Expected fallback newsletter")
		}
		if n.Subject != Fallback(plan).Subject {
			t.Errorf("Expected fallback subject, got '%s'", n.Subject)
		}
	})

	t.Run("FallbackOnBadJSON", func(t *testing.T) {
		w := NewWriter(&MockTextGenerator{Content: "Here is your newsletter!"}, nil)
		n, meta := w.Write(context.Background(), plan)
		if n.Generated {
			t.Error("Expected fallback newsletter")
		}
		if meta.Usage.PromptTokens != 120 {
			t.Errorf("Expected usage to be kept for a bad response, got %+v", meta.Usage)
		}
	})

	t.Run("NoGenerator", func(t *testing.T) {
		n, meta := NewWriter(nil, nil).Write(context.Background(), plan)
		if n.Generated || !meta.Usage.IsZero() {
			t.Errorf("Expected plain fallback without usage, got %+v / %+v", n, meta)
		}
	})
}

func TestFallback(t *testing.T) {
	n := Fallback(testPlan())

	if n.Subject != "Week of 2026-W42: save $3.25 on 2 meals" {
		t.Errorf("Unexpected subject '%s'", n.Subject)
	}
	if !strings.Contains(n.Body, "50% of them use a store deal") {
		t.Errorf("Expected deal percentage in body, got:\n%s", n.Body)
	}

	beef := strings.Index(n.Body, "- Beef at Corner Market")
	onion := strings.Index(n.Body, "- Onion at Corner Market")
	if beef < 0 || onion < 0 || beef > onion {
		t.Errorf("Expected deals ordered by savings, got:\n%s", n.Body)
	}
	if strings.Contains(n.Body, "Carrot") {
		t.Error("Expected items not on sale to be left out of the deals")
	}
}

func TestRenderHTML(t *testing.T) {
	got := RenderHTML(Newsletter{Body: "Fish & chips\n\n\n\nline one\nline two"})
	want := "<p>Fish &amp; chips</p><p>line one<br>line two</p>"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestWriter_Publish(t *testing.T) {
	n := Newsletter{Subject: "Weekly deals", Body: "Hello"}

	t.Run("Success", func(t *testing.T) {
		pub := &mockPublisher{}
		post, err := NewWriter(nil, pub).Publish(context.Background(), n, true)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if post.ID != "post-1" || pub.title != "Weekly deals" || pub.html != "<p>Hello</p>" || !pub.publish {
			t.Errorf("Unexpected post %+v / publisher %+v", post, pub)
		}
	})

	t.Run("NotConfigured", func(t *testing.T) {
		if _, err := NewWriter(nil, nil).Publish(context.Background(), n, false); err == nil {
			t.Error("Expected an error without a publisher")
		}
	})

	t.Run("PublisherError", func(t *testing.T) {
		pub := &mockPublisher{err: errors.New("401")}
		if _, err := NewWriter(nil, pub).Publish(context.Background(), n, false); err == nil {
			t.Error("Expected the publisher error to be returned")
		}
	})
}
