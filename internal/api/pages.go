package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mise-app/backend/internal/service"
)

// PageHandler serves the full-page views.
type PageHandler struct {
	recipes *service.RecipeService
	logger  *zap.Logger
}

// NewPageHandler creates a new PageHandler instance
func NewPageHandler(recipes *service.RecipeService, logger *zap.Logger) *PageHandler {
	return &PageHandler{recipes: recipes, logger: logger}
}

// Home serves the recording shell.
func (h *PageHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"ActivePage": "home"})
}

// Cookbook serves the full cookbook page, recipes ordered by name.
func (h *PageHandler) Cookbook(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}
	c.HTML(http.StatusOK, "cookbook.html", gin.H{
		"Recipes":    recipes,
		"ActivePage": "cookbook",
	})
}

// Ingredients aggregates every line item across the cookbook into per-unit
// totals.
func (h *PageHandler) Ingredients(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}
	c.HTML(http.StatusOK, "ingredients.html", gin.H{
		"Ingredients": service.AggregateIngredients(recipes),
		"ActivePage":  "ingredients",
	})
}
