package router

import (
	"github.com/gin-gonic/gin"

	"github.com/mise-app/backend/internal/api"
	"github.com/mise-app/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	pages *api.PageHandler,
	recipes *api.RecipeHandler,
	transcripts *api.TranscriptHandler,
	transcribe *api.TranscribeHandler,
	generationLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())
	router.LoadHTMLGlob("templates/*.html")
	router.Static("/static", "./static")

	// Full pages
	router.GET("/", pages.Home)
	router.GET("/cookbook", pages.Cookbook)
	router.GET("/ingredients", pages.Ingredients)

	// Dictation workflow
	router.POST("/transcripts", transcripts.CreateTranscript)
	router.POST("/transcripts/:id/generate-recipe", generationLimiter.Middleware(), transcripts.GenerateRecipe)

	// Recipe CRUD; HTML forms cannot send PUT, so POST maps to update too.
	router.POST("/recipes", recipes.CreateRecipe)
	router.GET("/recipes/:id", recipes.GetRecipe)
	router.PUT("/recipes/:id", recipes.UpdateRecipe)
	router.POST("/recipes/:id", recipes.UpdateRecipe)
	router.DELETE("/recipes/:id", recipes.DeleteRecipe)

	// Live transcription
	router.GET("/ws/transcribe_streaming", transcribe.Stream)

	return router
}
