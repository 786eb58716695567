package shopping

import (
	"math"
	"slices"
	"sort"
	"strings"

	"grocery-planner/internal/deals"
	"grocery-planner/internal/mealplan"
	"grocery-planner/internal/preferences"
	"grocery-planner/internal/recipe"
	"grocery-planner/internal/store"
)

// DealSource provides the deals active in a set of stores.
type DealSource interface {
	Active(storeIDs []string) []deals.DealItem
}

// Builder turns finished meal plans into per-store shopping lists.
type Builder struct {
	deals           DealSource
	fallbackStoreID string
}

// NewBuilder creates a Builder. Items without a deal go to the user's first
// selected store, or to fallbackStoreID when none is selected.
func NewBuilder(src DealSource, fallbackStoreID string) *Builder {
	if fallbackStoreID == "" {
		fallbackStoreID = store.FallbackStoreID
	}
	return &Builder{deals: src, fallbackStoreID: fallbackStoreID}
}

// Build aggregates the plan against the deals active in the user's stores.
func (b *Builder) Build(days []mealplan.DailyPlan, prefs preferences.UserPreferences) SmartShoppingList {
	return GenerateShoppingList(days, prefs, b.deals.Active(prefs.SelectedStores), b.fallbackStoreID)
}

type aggregate struct {
	name     string
	unit     string
	category recipe.IngredientCategory
	amount   float64
	price    float64
	recipes  []string
}

// GenerateShoppingList merges every planned ingredient by name and unit,
// resolves the cheapest store for each and groups the result by store.
// It does not depend on anything but its inputs.
func GenerateShoppingList(days []mealplan.DailyPlan, prefs preferences.UserPreferences, active []deals.DealItem, fallbackStoreID string) SmartShoppingList {
	var order []string
	aggs := map[string]*aggregate{}

	for _, day := range days {
		for _, meal := range day.Meals {
			factor := meal.ScaleFactor()
			for _, ing := range meal.Recipe.Ingredients {
				key := strings.ToLower(ing.Name) + "-" + ing.Unit
				a, ok := aggs[key]
				if !ok {
					a = &aggregate{name: ing.Name, unit: ing.Unit, category: ing.Category}
					aggs[key] = a
					order = append(order, key)
				}
				a.amount += ing.Amount * factor
				a.price += ing.Price() * factor
				if !slices.Contains(a.recipes, meal.Recipe.Name) {
					a.recipes = append(a.recipes, meal.Recipe.Name)
				}
			}
		}
	}

	defaultStore := fallbackStoreID
	if len(prefs.SelectedStores) > 0 {
		defaultStore = prefs.SelectedStores[0]
	}
	best := deals.BestByIngredient(deals.ForStores(active, prefs.SelectedStores))

	byStore := map[string][]SmartShoppingItem{}
	for _, key := range order {
		a := aggs[key]
		it := SmartShoppingItem{
			IngredientID:   deals.IngredientID(a.name),
			IngredientName: a.name,
			Unit:           a.unit,
			Category:       a.category,
			RecipeNames:    a.recipes,
			Aisle:          Aisle(a.category),
			BestStore:      defaultStore,
			BestPrice:      a.price,
			NormalPrice:    a.price,
		}

		if d, ok := best[it.IngredientID]; ok {
			it.BestStore = d.StoreID
			it.BestPrice = d.SalePrice * a.amount
			it.NormalPrice = d.OriginalPrice * a.amount
			it.IsOnSale = true
		}

		it.Amount = mealplan.RoundUp1(a.amount)
		it.BestPrice = mealplan.Round2(it.BestPrice)
		it.NormalPrice = mealplan.Round2(it.NormalPrice)
		it.Savings = mealplan.Round2(it.NormalPrice - it.BestPrice)

		byStore[it.BestStore] = append(byStore[it.BestStore], it)
	}

	list := SmartShoppingList{Stores: []StoreShoppingList{}}
	for storeID, items := range byStore {
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Category != items[j].Category {
				return items[i].Category < items[j].Category
			}
			return items[i].IngredientName < items[j].IngredientName
		})

		sl := StoreShoppingList{
			StoreID:   storeID,
			StoreName: store.DisplayName(storeID),
			Items:     items,
			ItemCount: len(items),
		}
		for _, it := range items {
			sl.TotalCost += it.BestPrice
			sl.TotalSavings += it.Savings
		}
		sl.TotalCost = mealplan.Round2(sl.TotalCost)
		sl.TotalSavings = mealplan.Round2(sl.TotalSavings)
		list.Stores = append(list.Stores, sl)
	}

	sort.Slice(list.Stores, func(i, j int) bool {
		if list.Stores[i].ItemCount != list.Stores[j].ItemCount {
			return list.Stores[i].ItemCount > list.Stores[j].ItemCount
		}
		return list.Stores[i].StoreID < list.Stores[j].StoreID
	})

	for _, s := range list.Stores {
		list.TotalCost += s.TotalCost
		list.TotalSavings += s.TotalSavings
		list.TotalItems += s.ItemCount
	}
	list.TotalCost = mealplan.Round2(list.TotalCost)
	list.TotalSavings = mealplan.Round2(list.TotalSavings)
	if denom := list.TotalCost + list.TotalSavings; denom > 0 {
		list.SavingsPercentage = int(math.Round(100 * list.TotalSavings / denom))
	}
	return list
}
