package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mise-app/backend/internal/model"
)

// TranscriptService owns dictated transcripts and the recipe-generation
// workflow.
type TranscriptService struct {
	db         *gorm.DB
	structurer RecipeStructurer
	logger     *zap.Logger
}

// NewTranscriptService creates a new TranscriptService instance
func NewTranscriptService(db *gorm.DB, structurer RecipeStructurer, logger *zap.Logger) *TranscriptService {
	return &TranscriptService{
		db:         db,
		structurer: structurer,
		logger:     logger,
	}
}

// CreateTranscript stores freshly dictated text in pending state.
func (s *TranscriptService) CreateTranscript(ctx context.Context, fullText string) (*model.Transcript, error) {
	transcript := &model.Transcript{
		FullText: fullText,
		Status:   model.TranscriptStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(transcript).Error; err != nil {
		return nil, err
	}
	return transcript, nil
}

// GetTranscript retrieves a transcript by ID
func (s *TranscriptService) GetTranscript(ctx context.Context, id uuid.UUID) (*model.Transcript, error) {
	var transcript model.Transcript
	if err := s.db.WithContext(ctx).First(&transcript, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &transcript, nil
}

// GenerateRecipe runs the transcript → model → recipe workflow: the stored
// text is replaced with the corrected text, the structuring service output is
// parsed, and the new recipe plus the transcript update commit in one
// transaction.
func (s *TranscriptService) GenerateRecipe(ctx context.Context, transcriptID uuid.UUID, correctedText string) (*model.Recipe, error) {
	var transcript model.Transcript
	if err := s.db.WithContext(ctx).First(&transcript, "id = ?", transcriptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	raw, err := s.structurer.StructureTranscript(ctx, correctedText)
	if err != nil {
		s.logger.Error("structuring service call failed",
			zap.String("transcript_id", transcriptID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	generated, err := ParseRecipeJSON(raw)
	if err != nil {
		return nil, err
	}

	recipe := recipeFromGenerated(generated)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		transcript.FullText = correctedText
		transcript.Status = model.TranscriptStatusProcessed
		transcript.RecipeID = &recipe.ID
		return tx.Save(&transcript).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("recipe generated from transcript",
		zap.String("transcript_id", transcriptID.String()),
		zap.String("recipe_id", recipe.ID.String()),
	)
	return recipe, nil
}

func recipeFromGenerated(generated *GeneratedRecipe) *model.Recipe {
	name := strings.TrimSpace(generated.RecipeName)
	if name == "" {
		name = "Untitled Recipe"
	}
	items := generated.Items
	if items == nil {
		items = model.RecipeItems{}
	}
	notes := generated.ChefNotes
	if notes == nil {
		notes = model.JSONBStringArray{}
	}
	return &model.Recipe{
		Name:       name,
		Provenance: strings.TrimSpace(generated.Provenance),
		Items:      items,
		ChefNotes:  notes,
	}
}
