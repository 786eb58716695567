package telegram

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"grocery-planner/internal/deals"
	"grocery-planner/internal/metrics"
	"grocery-planner/internal/planner"
	"grocery-planner/internal/shopping"
	"grocery-planner/internal/store"
)

// Telegram rejects messages over 4096 characters.
const maxMessageLen = 4000

const helpText = `🛒 *Grocery Planner*

/plan [days] - plan meals around this week's deals
/list - shopping list of your latest plan
/deals - top deals at your stores
/stores [id,id] - show or choose your stores`

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// escapeMarkdown escapes the characters legacy Telegram Markdown treats as markup.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func truncate(s string) string {
	if len(s) <= maxMessageLen {
		return s
	}
	cut := maxMessageLen
	for cut > 0 && !strings.HasPrefix(s[cut:], "\n") {
		cut--
	}
	if cut == 0 {
		cut = maxMessageLen
	}
	return s[:cut] + "\n…"
}

func formatPlanMarkdown(plan planner.WeeklyMealPlan) string {
	title := cases.Title(language.English)

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 *Meal Plan* (from %s)\n\n", plan.WeekStartDate.Format("Mon Jan 2"))

	for _, day := range plan.Days {
		fmt.Fprintf(&sb, "*%s*\n", day.DayName)
		for _, m := range day.Meals {
			fmt.Fprintf(&sb, "• %s: %s ($%.2f, %d min)", title.String(string(m.MealType)),
				escapeMarkdown(m.Recipe.Name), m.EstimatedCost, m.EstimatedTime)
			if m.UsesDeals {
				sb.WriteString(" 🏷")
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	s := plan.Summary
	fmt.Fprintf(&sb, "💰 *Total:* $%.2f, saved $%.2f\n", s.TotalCost, s.TotalSavings)
	fmt.Fprintf(&sb, "🏷 %d of %d meals use a deal (%d%%)\n", s.MealsUsingDeals, s.TotalMeals, s.DealPercentage)
	fmt.Fprintf(&sb, "⏱ *Total Prep:* %d mins", s.TotalTime)
	return truncate(sb.String())
}

func formatShoppingListMarkdown(list shopping.SmartShoppingList) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n")

	if list.TotalItems == 0 {
		sb.WriteString("\n_Nothing to buy._")
		return sb.String()
	}

	for _, st := range list.Stores {
		fmt.Fprintf(&sb, "\n*%s* (%d items, $%.2f)\n", escapeMarkdown(st.StoreName), st.ItemCount, st.TotalCost)
		for _, item := range st.Items {
			fmt.Fprintf(&sb, "• %s: %g %s, $%.2f", escapeMarkdown(item.IngredientName), item.Amount,
				escapeMarkdown(item.Unit), item.BestPrice)
			if item.IsOnSale {
				fmt.Fprintf(&sb, " (save $%.2f)", item.Savings)
			}
			sb.WriteString("\n")
		}
	}

	fmt.Fprintf(&sb, "\n💰 *Total:* $%.2f, saved $%.2f (%d%%)", list.TotalCost, list.TotalSavings, list.SavingsPercentage)
	return truncate(sb.String())
}

// formatDealsMarkdown lists the deals with the biggest discounts first.
func formatDealsMarkdown(items []deals.DealItem, limit int) string {
	if len(items) == 0 {
		return "🏷 No deals at your stores this week."
	}

	sorted := slices.Clone(items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].DiscountPercentage != sorted[j].DiscountPercentage {
			return sorted[i].DiscountPercentage > sorted[j].DiscountPercentage
		}
		return sorted[i].Savings() > sorted[j].Savings()
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏷 *Top Deals* (%d of %d)\n\n", len(sorted), len(items))
	for _, d := range sorted {
		fmt.Fprintf(&sb, "• %s at %s: $%.2f, was $%.2f (-%d%%)", escapeMarkdown(d.IngredientName),
			escapeMarkdown(d.StoreName), d.SalePrice, d.OriginalPrice, d.DiscountPercentage)
		if d.IsFlashSale {
			sb.WriteString(" ⚡")
		}
		sb.WriteString("\n")
	}
	return truncate(sb.String())
}

func formatStoresMarkdown(selected []string) string {
	var sb strings.Builder
	sb.WriteString("🏪 *Stores*\n\n")
	for _, s := range store.All() {
		mark := "▫️"
		if slices.Contains(selected, s.ID) {
			mark = "✅"
		}
		fmt.Fprintf(&sb, "%s `%s` %s, %s\n", mark, s.ID, escapeMarkdown(s.Name), escapeMarkdown(s.City))
	}
	sb.WriteString("\nChoose with /stores store-001,store-002")
	return sb.String()
}

func formatUsageMarkdown(usage []metrics.DailyUsage, health metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		fmt.Fprintf(&sb, "• *%s*: %d plans, $%.2f saved, %d tokens (%d execs)\n", d.Date,
			d.PlansGenerated, d.TotalSavings, d.TotalPrompt+d.TotalCompletion, d.TotalExecution)
	}

	sb.WriteString("\n🧠 *System Health*\n")
	fmt.Fprintf(&sb, "• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB)
	fmt.Fprintf(&sb, "• Goroutines: %d\n", health.Goroutines)
	fmt.Fprintf(&sb, "• Disk Data: %s in %d files\n", health.DataDiskSize, health.DataFiles)
	return sb.String()
}
