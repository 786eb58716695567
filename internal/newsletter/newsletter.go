package newsletter

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"sort"
	"strings"
	"text/template"
	"time"

	"grocery-planner/internal/deals"
	"grocery-planner/internal/ghost"
	"grocery-planner/internal/llm"
	"grocery-planner/internal/planner"
	"grocery-planner/internal/recipe"
	"grocery-planner/internal/shared"
	"grocery-planner/internal/shopping"
)

//go:embed newsletter_prompt.md
var newsletterPrompt string

// AgentName identifies newsletter calls in the usage metrics.
const AgentName = "Newsletter"

const topDealCount = 5

// Newsletter is the weekly savings summary sent to a household.
type Newsletter struct {
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Generated bool   `json:"generated"` // written by the LLM rather than the template
}

type promptData struct {
	WeekOf          string
	TotalMeals      int
	DealPercentage  int
	TotalCost       float64
	TotalSavings    float64
	TotalItems      int
	ShoppingCost    float64
	ShoppingSavings float64
	TopDeals        []topDeal
	Stores          []shopping.StoreShoppingList
	Dinners         []string
}

type topDeal struct {
	shopping.SmartShoppingItem
	StoreName string
}

// Writer produces newsletters for generated plans.
type Writer struct {
	textGen   llm.TextGenerator
	publisher ghost.Publisher
}

// NewWriter creates a Writer. Either dependency may be nil: without a text
// generator the fallback template is used, without a publisher Publish fails.
func NewWriter(textGen llm.TextGenerator, publisher ghost.Publisher) *Writer {
	return &Writer{textGen: textGen, publisher: publisher}
}

// Write asks the LLM for a newsletter about plan and falls back to the
// template when no LLM is configured or its answer cannot be used.
func (w *Writer) Write(ctx context.Context, plan planner.WeeklyMealPlan) (Newsletter, shared.AgentMeta) {
	meta := shared.AgentMeta{AgentName: AgentName}
	if w.textGen == nil {
		return Fallback(plan), meta
	}

	start := time.Now()
	prompt, err := buildPrompt(newPromptData(plan))
	if err != nil {
		log.Printf("Warning: Failed to build newsletter prompt: %v", err)
		return Fallback(plan), meta
	}

	resp, err := w.textGen.GenerateContent(ctx, prompt)
	meta.Latency = time.Since(start)
	if err != nil {
		log.Printf("Warning: Newsletter generation failed, using fallback: %v", err)
		return Fallback(plan), meta
	}
	meta.Usage = resp.Usage

	var n Newsletter
	if err := json.Unmarshal([]byte(resp.Content), &n); err != nil || n.Subject == "" || n.Body == "" {
		log.Printf("Warning: Unusable newsletter response, using fallback: %v. Response: %s", err, resp.Content)
		return Fallback(plan), meta
	}
	n.Generated = true
	return n, meta
}

// Publish posts the newsletter to Ghost.
func (w *Writer) Publish(ctx context.Context, n Newsletter, publish bool) (*ghost.Post, error) {
	if w.publisher == nil {
		return nil, fmt.Errorf("newsletter publishing is not configured")
	}
	post, err := w.publisher.CreatePost(ctx, n.Subject, RenderHTML(n), publish)
	if err != nil {
		return nil, fmt.Errorf("failed to publish newsletter: %w", err)
	}
	return post, nil
}

// Fallback writes a plain newsletter from the plan numbers alone.
func Fallback(plan planner.WeeklyMealPlan) Newsletter {
	data := newPromptData(plan)
	s := plan.Summary

	var b strings.Builder
	fmt.Fprintf(&b, "This week's plan has %d meals and %d%% of them use a store deal. ", s.TotalMeals, s.DealPercentage)
	fmt.Fprintf(&b, "Meals come to about $%.2f and deals save you $%.2f.", s.TotalCost, s.TotalSavings)

	if len(data.TopDeals) > 0 {
		b.WriteString("\n\nBest deals:")
		for _, d := range data.TopDeals {
			fmt.Fprintf(&b, "\n- %s at %s: $%.2f (save $%.2f)", d.IngredientName, d.StoreName, d.BestPrice, d.Savings)
		}
	}

	if len(data.Stores) > 0 {
		b.WriteString("\n\nWhere to shop:")
		for _, st := range data.Stores {
			fmt.Fprintf(&b, "\n- %s: %d items, $%.2f", st.StoreName, st.ItemCount, st.TotalCost)
		}
	}

	return Newsletter{
		Subject: fmt.Sprintf("Week of %s: save $%.2f on %d meals", data.WeekOf, s.TotalSavings, s.TotalMeals),
		Body:    b.String(),
	}
}

// RenderHTML turns the body's paragraphs into escaped HTML paragraphs.
func RenderHTML(n Newsletter) string {
	var sb strings.Builder
	for _, para := range strings.Split(n.Body, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(strings.ReplaceAll(html.EscapeString(para), "\n", "<br>"))
		sb.WriteString("</p>")
	}
	return sb.String()
}

func newPromptData(plan planner.WeeklyMealPlan) promptData {
	year, week := plan.WeekStartDate.ISOWeek()
	data := promptData{
		WeekOf:          deals.WeekLabel(year, week),
		TotalMeals:      plan.Summary.TotalMeals,
		DealPercentage:  plan.Summary.DealPercentage,
		TotalCost:       plan.Summary.TotalCost,
		TotalSavings:    plan.Summary.TotalSavings,
		TotalItems:      plan.ShoppingList.TotalItems,
		ShoppingCost:    plan.ShoppingList.TotalCost,
		ShoppingSavings: plan.ShoppingList.TotalSavings,
		Stores:          plan.ShoppingList.Stores,
	}

	for _, st := range plan.ShoppingList.Stores {
		for _, it := range st.Items {
			if it.IsOnSale {
				data.TopDeals = append(data.TopDeals, topDeal{SmartShoppingItem: it, StoreName: st.StoreName})
			}
		}
	}
	sort.SliceStable(data.TopDeals, func(i, j int) bool {
		return data.TopDeals[i].Savings > data.TopDeals[j].Savings
	})
	if len(data.TopDeals) > topDealCount {
		data.TopDeals = data.TopDeals[:topDealCount]
	}

	seen := map[string]bool{}
	for _, d := range plan.Days {
		for _, m := range d.Meals {
			if m.MealType == recipe.MealDinner && !seen[m.Recipe.Name] {
				seen[m.Recipe.Name] = true
				data.Dinners = append(data.Dinners, m.Recipe.Name)
			}
		}
	}
	return data
}

func buildPrompt(data promptData) (string, error) {
	tmpl, err := template.New("newsletter").Parse(newsletterPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
