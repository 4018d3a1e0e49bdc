package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mise-app/backend/internal/model"
	"github.com/mise-app/backend/internal/service"
)

// RecipeHandler serves recipe CRUD, rendering HTML fragments. Every mutation
// re-fetches and re-renders the authoritative cookbook list; the database is
// the only source of truth.
type RecipeHandler struct {
	recipes *service.RecipeService
	logger  *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipes *service.RecipeService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, logger: logger}
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	recipe, ok := bindRecipe(c)
	if !ok {
		return
	}

	if _, err := h.recipes.CreateRecipe(c.Request.Context(), recipe); err != nil {
		h.logger.Error("failed to create recipe", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	h.renderCookbookList(c)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.HTML(http.StatusOK, "recipe_card.html", gin.H{"Recipe": recipe})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	recipe, ok := bindRecipe(c)
	if !ok {
		return
	}

	if _, err := h.recipes.UpdateRecipe(c.Request.Context(), id, recipe); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		h.logger.Error("failed to update recipe", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	h.renderCookbookList(c)
}

// DeleteRecipe removes a recipe; the schema nulls out any transcript link.
// An empty 200 body lets the frontend drop the element in place.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		h.logger.Error("failed to delete recipe", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	c.Status(http.StatusOK)
}

func (h *RecipeHandler) renderCookbookList(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}
	c.HTML(http.StatusOK, "cookbook_list.html", gin.H{"Recipes": recipes})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return uuid.Nil, false
	}
	return id, true
}

// bindRecipe accepts either a JSON body or the cookbook form's parallel
// item_* arrays. On failure it writes the 400 response itself.
func bindRecipe(c *gin.Context) (*model.Recipe, bool) {
	if strings.Contains(c.ContentType(), "application/json") {
		var payload RecipePayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, false
		}
		items := payload.Items
		if items == nil {
			items = model.RecipeItems{}
		}
		return &model.Recipe{
			Name:       payload.RecipeName,
			Provenance: payload.Provenance,
			Items:      items,
			ChefNotes:  model.JSONBStringArray(payload.ChefNotes),
		}, true
	}

	name := strings.TrimSpace(c.PostForm("recipe_name"))
	if name == "" || len(name) > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_name must be between 1 and 100 characters"})
		return nil, false
	}

	itemNames := c.PostFormArray("item_name")
	itemQuantities := c.PostFormArray("item_quantity")
	itemUnits := c.PostFormArray("item_unit")

	items := model.RecipeItems{}
	for i, itemName := range itemNames {
		if strings.TrimSpace(itemName) == "" {
			continue
		}
		item := model.RecipeItem{ItemName: itemName}
		if i < len(itemQuantities) {
			item.Quantity = model.Quantity(itemQuantities[i])
		}
		if i < len(itemUnits) {
			item.Unit = itemUnits[i]
		}
		items = append(items, item)
	}

	return &model.Recipe{
		Name:       name,
		Provenance: c.PostForm("provenance"),
		Items:      items,
		ChefNotes:  model.JSONBStringArray(c.PostFormArray("chef_note")),
	}, true
}
