package api

import (
	"github.com/gin-gonic/gin"

	"grocery-planner/internal/app"
)

// NewRouter registers every route on a new gin engine.
func NewRouter(a *app.App) *gin.Engine {
	r := gin.Default()
	h := NewHandler(a)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/health/system", h.SystemHealth())

	plans := r.Group("/plans")
	{
		plans.POST("", h.GeneratePlan())
		plans.GET("/:id", h.GetPlan())
		plans.GET("/:id/shopping-list", h.GetShoppingList())
	}

	users := r.Group("/users/:userID")
	{
		users.GET("/plans", h.ListPlans())
		users.GET("/preferences", h.GetPreferences())
		users.PUT("/preferences", h.SavePreferences())
	}

	dealRoutes := r.Group("/deals")
	{
		dealRoutes.GET("", h.GetDeals())
		dealRoutes.POST("", h.SetDeals())
		dealRoutes.DELETE("", h.ClearDeals())
		dealRoutes.POST("/fetch", h.FetchDeals())
	}

	r.GET("/stores", h.ListStores())
	r.GET("/stores/:id", h.GetStore())

	recipes := r.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes())
		recipes.GET("/quick", h.QuickRecipes())
		recipes.GET("/budget", h.BudgetRecipes())
		recipes.GET("/search", h.SearchRecipes())
		recipes.GET("/grocery-list", h.GroceryList())
		recipes.GET("/:id", h.GetRecipe())
	}

	return r
}
