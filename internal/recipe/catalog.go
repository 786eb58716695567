package recipe

import "strings"

// Catalog is a read-only collection of recipes with lookup helpers.
type Catalog struct {
	recipes []Recipe
	byID    map[string]int
}

// NewCatalog builds a catalog. Later recipes with a duplicate id replace earlier ones.
func NewCatalog(recipes ...[]Recipe) *Catalog {
	c := &Catalog{byID: make(map[string]int)}
	for _, set := range recipes {
		for _, r := range set {
			if idx, ok := c.byID[r.ID]; ok {
				c.recipes[idx] = r
				continue
			}
			c.byID[r.ID] = len(c.recipes)
			c.recipes = append(c.recipes, r)
		}
	}
	return c
}

// All returns every recipe in catalog order.
func (c *Catalog) All() []Recipe {
	out := make([]Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// Len is the number of recipes in the catalog.
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// ByID returns the recipe with the given id.
func (c *Catalog) ByID(id string) (Recipe, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Recipe{}, false
	}
	return c.recipes[idx], true
}

// ByCategory returns the recipes listed under category.
func (c *Catalog) ByCategory(category Category) []Recipe {
	return c.filter(func(r Recipe) bool { return r.Category == category })
}

// ByMealType returns the recipes intended for a meal slot.
func (c *Catalog) ByMealType(mealType MealType) []Recipe {
	return c.filter(func(r Recipe) bool { return r.MealType == mealType })
}

// ByTag returns the recipes carrying tag.
func (c *Catalog) ByTag(tag string) []Recipe {
	return c.filter(func(r Recipe) bool { return r.HasTag(tag) })
}

// Quick returns recipes whose total time fits within maxMinutes.
// A budget of zero or less matches nothing.
func (c *Catalog) Quick(maxMinutes int) []Recipe {
	if maxMinutes <= 0 {
		return []Recipe{}
	}
	return c.filter(func(r Recipe) bool { return r.TotalTime() <= maxMinutes })
}

// Budget returns recipes whose estimated cost is at most maxCost.
// Recipes without an estimated cost count as costing nothing.
func (c *Catalog) Budget(maxCost float64) []Recipe {
	return c.filter(func(r Recipe) bool {
		var cost float64
		if r.EstimatedCost != nil {
			cost = *r.EstimatedCost
		}
		return cost <= maxCost
	})
}

// Search matches query against name, description, tags and ingredient names.
func (c *Catalog) Search(query string) []Recipe {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}
	return c.filter(func(r Recipe) bool {
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Description), q) {
			return true
		}
		for _, t := range r.Tags {
			if strings.Contains(strings.ToLower(t), q) {
				return true
			}
		}
		for _, i := range r.Ingredients {
			if strings.Contains(strings.ToLower(i.Name), q) {
				return true
			}
		}
		return false
	})
}

func (c *Catalog) filter(keep func(Recipe) bool) []Recipe {
	out := []Recipe{}
	for _, r := range c.recipes {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
