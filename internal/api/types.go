package api

import "github.com/mise-app/backend/internal/model"

// CreateTranscriptRequest is the body posted when audio capture completes.
type CreateTranscriptRequest struct {
	FullText string `json:"full_text" binding:"required"`
}

// RecipePayload is the JSON body for creating or updating a recipe. The same
// fields arrive as parallel arrays when the cookbook form posts directly.
type RecipePayload struct {
	RecipeName string            `json:"recipe_name" binding:"required,min=1,max=100"`
	Provenance string            `json:"provenance"`
	Items      model.RecipeItems `json:"items"`
	ChefNotes  []string          `json:"chef_notes"`
}
