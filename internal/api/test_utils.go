package api

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mise-app/backend/internal/service"
	"github.com/mise-app/backend/internal/testhelpers"
)

// MockStructurer implements service.RecipeStructurer for handler tests
type MockStructurer struct {
	mock.Mock
}

func (m *MockStructurer) StructureTranscript(ctx context.Context, transcript string) (string, error) {
	args := m.Called(ctx, transcript)
	return args.String(0), args.Error(1)
}

// setupTestRouter builds the real route table on top of an in-memory
// database, with the structuring service mocked out.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *MockStructurer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	logger := zap.NewNop()
	structurer := new(MockStructurer)

	recipeService := service.NewRecipeService(db)
	transcriptService := service.NewTranscriptService(db, structurer, logger)

	engine := gin.New()
	engine.LoadHTMLGlob("../../templates/*.html")

	pages := NewPageHandler(recipeService, logger)
	recipes := NewRecipeHandler(recipeService, logger)
	transcripts := NewTranscriptHandler(transcriptService, logger)

	engine.GET("/", pages.Home)
	engine.GET("/cookbook", pages.Cookbook)
	engine.GET("/ingredients", pages.Ingredients)
	engine.POST("/transcripts", transcripts.CreateTranscript)
	engine.POST("/transcripts/:id/generate-recipe", transcripts.GenerateRecipe)
	engine.POST("/recipes", recipes.CreateRecipe)
	engine.GET("/recipes/:id", recipes.GetRecipe)
	engine.PUT("/recipes/:id", recipes.UpdateRecipe)
	engine.POST("/recipes/:id", recipes.UpdateRecipe)
	engine.DELETE("/recipes/:id", recipes.DeleteRecipe)

	return engine, db, structurer
}
