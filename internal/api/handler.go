package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"grocery-planner/internal/app"
	"grocery-planner/internal/deals"
	"grocery-planner/internal/preferences"
	"grocery-planner/internal/recipe"
	"grocery-planner/internal/store"
)

const defaultPlanListLimit = 5

// Handler serves the HTTP API on top of the application.
type Handler struct {
	app *app.App
}

// NewHandler creates a Handler.
func NewHandler(a *app.App) *Handler {
	return &Handler{app: a}
}

// PlanRequest is the body of POST /plans. Every field is optional.
type PlanRequest struct {
	UserID                  string                       `json:"user_id"`
	Preferences             *preferences.UserPreferences `json:"preferences"`
	PlanDays                int                          `json:"plan_days" binding:"omitempty,min=1,max=14"`
	StartDate               string                       `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	PreferDeals             *bool                        `json:"prefer_deals"`
	MaximizeIngredientReuse *bool                        `json:"maximize_ingredient_reuse"`
	Newsletter              bool                         `json:"newsletter"`
	Publish                 bool                         `json:"publish"`
}

// FetchRequest is the body of POST /deals/fetch.
type FetchRequest struct {
	StoreIDs []string `json:"store_ids"`
}

//
// POST /plans
//

func (h *Handler) GeneratePlan() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlanRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		var prefs preferences.UserPreferences
		switch {
		case req.Preferences != nil:
			prefs = *req.Preferences
		case req.UserID != "":
			p, err := h.app.PreferencesFor(c.Request.Context(), req.UserID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			prefs = p
		default:
			p, err := h.app.DefaultPreferences()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			prefs = p
		}

		opts := h.app.PlanOptions()
		if req.PlanDays > 0 {
			opts.PlanDays = req.PlanDays
		}
		if req.StartDate != "" {
			start, err := time.Parse("2006-01-02", req.StartDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
				return
			}
			opts.StartDate = start
		}
		if req.PreferDeals != nil {
			opts.PreferDeals = *req.PreferDeals
		}
		if req.MaximizeIngredientReuse != nil {
			opts.MaximizeIngredientReuse = *req.MaximizeIngredientReuse
		}

		if err := preferences.Validate(prefs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		plan, err := h.app.GeneratePlan(c.Request.Context(), prefs, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if !req.Newsletter {
			c.JSON(http.StatusCreated, plan)
			return
		}

		n, post, err := h.app.WriteNewsletter(c.Request.Context(), plan, req.Publish)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "plan": plan, "newsletter": n})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"plan": plan, "newsletter": n, "post": post})
	}
}

//
// GET /plans/:id
//

func (h *Handler) GetPlan() gin.HandlerFunc {
	return func(c *gin.Context) {
		stored, err := h.app.GetPlan(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if stored == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		c.JSON(http.StatusOK, stored.Plan)
	}
}

//
// GET /plans/:id/shopping-list
//

func (h *Handler) GetShoppingList() gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := h.app.ShoppingList(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if list == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "shopping list not found"})
			return
		}
		c.JSON(http.StatusOK, list.List)
	}
}

//
// GET /users/:userID/plans?limit=N
//

func (h *Handler) ListPlans() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultPlanListLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
			limit = n
		}

		plans, err := h.app.RecentPlans(c.Request.Context(), c.Param("userID"), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(plans))
		for _, p := range plans {
			out = append(out, gin.H{
				"id":              p.ID,
				"week_start_date": p.WeekStartDate,
				"created_at":      p.CreatedAt,
				"summary":         p.Plan.Summary,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

//
// GET /users/:userID/preferences
//

func (h *Handler) GetPreferences() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := h.app.PreferencesFor(c.Request.Context(), c.Param("userID"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

//
// PUT /users/:userID/preferences
//

func (h *Handler) SavePreferences() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p preferences.UserPreferences
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		p.ID = c.Param("userID")

		if err := preferences.Validate(p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := h.app.SavePreferences(c.Request.Context(), p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

//
// GET /deals?stores=a,b
//

func (h *Handler) GetDeals() gin.HandlerFunc {
	return func(c *gin.Context) {
		active := h.app.Deals().Active(splitList(c.Query("stores")))
		c.JSON(http.StatusOK, gin.H{
			"deals":      active,
			"count":      len(active),
			"user_deals": h.app.Deals().HasUserDeals(),
		})
	}
}

//
// POST /deals
//

func (h *Handler) SetDeals() gin.HandlerFunc {
	return func(c *gin.Context) {
		var items []deals.DealItem
		if err := c.ShouldBindJSON(&items); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		res, err := h.app.SetUserDeals(items)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

//
// DELETE /deals
//

func (h *Handler) ClearDeals() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.app.ClearUserDeals()
		c.JSON(http.StatusOK, gin.H{"message": "user deals cleared"})
	}
}

//
// POST /deals/fetch
//

func (h *Handler) FetchDeals() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FetchRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		res, err := h.app.FetchDeals(c.Request.Context(), req.StoreIDs)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"source":      res.Source,
			"week_of":     res.WeekOf,
			"store_count": res.StoreCount,
			"deal_count":  len(res.Deals),
			"fetched_at":  res.FetchedAt,
		})
	}
}

//
// GET /stores, GET /stores/:id
//

func (h *Handler) ListStores() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.All())
	}
}

func (h *Handler) GetStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := store.GetStoreByID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

//
// GET /recipes?category=&meal_type=&tag=
//

func (h *Handler) ListRecipes() gin.HandlerFunc {
	return func(c *gin.Context) {
		catalog := h.app.Catalog()
		var recipes []recipe.Recipe
		switch {
		case c.Query("category") != "":
			recipes = catalog.ByCategory(recipe.Category(c.Query("category")))
		case c.Query("meal_type") != "":
			recipes = catalog.ByMealType(recipe.MealType(c.Query("meal_type")))
		case c.Query("tag") != "":
			recipes = catalog.ByTag(c.Query("tag"))
		default:
			recipes = catalog.All()
		}
		c.JSON(http.StatusOK, recipes)
	}
}

//
// GET /recipes/quick?max=30
//

func (h *Handler) QuickRecipes() gin.HandlerFunc {
	return func(c *gin.Context) {
		maxMinutes, err := strconv.Atoi(c.DefaultQuery("max", "30"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max"})
			return
		}
		c.JSON(http.StatusOK, h.app.Catalog().Quick(maxMinutes))
	}
}

//
// GET /recipes/budget?max=10
//

func (h *Handler) BudgetRecipes() gin.HandlerFunc {
	return func(c *gin.Context) {
		maxCost, err := strconv.ParseFloat(c.DefaultQuery("max", "10"), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max"})
			return
		}
		c.JSON(http.StatusOK, h.app.Catalog().Budget(maxCost))
	}
}

//
// GET /recipes/search?q=
//

func (h *Handler) SearchRecipes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, h.app.Catalog().Search(c.Query("q")))
	}
}

//
// GET /recipes/grocery-list?ids=a,b
//

func (h *Handler) GroceryList() gin.HandlerFunc {
	return func(c *gin.Context) {
		var recipes []recipe.Recipe
		for _, id := range splitList(c.Query("ids")) {
			r, ok := h.app.Catalog().ByID(id)
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found: " + id})
				return
			}
			recipes = append(recipes, r)
		}
		c.JSON(http.StatusOK, recipe.GenerateGroceryList(recipes))
	}
}

//
// GET /recipes/:id
//

func (h *Handler) GetRecipe() gin.HandlerFunc {
	return func(c *gin.Context) {
		r, ok := h.app.Catalog().ByID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"recipe": r, "total_cost": recipe.TotalCost(r)})
	}
}

//
// GET /health/system
//

func (h *Handler) SystemHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, h.app.Health())
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
