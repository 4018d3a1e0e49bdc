package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mise-app/backend/internal/model"
	"github.com/mise-app/backend/internal/testhelpers"
)

// MockStructurer implements RecipeStructurer for testing
type MockStructurer struct {
	mock.Mock
}

func (m *MockStructurer) StructureTranscript(ctx context.Context, transcript string) (string, error) {
	args := m.Called(ctx, transcript)
	return args.String(0), args.Error(1)
}

func setupTranscriptService(t *testing.T) (*TranscriptService, *MockStructurer) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	structurer := new(MockStructurer)
	return NewTranscriptService(db, structurer, zap.NewNop()), structurer
}

func TestCreateTranscriptStartsPending(t *testing.T) {
	svc, _ := setupTranscriptService(t)

	transcript, err := svc.CreateTranscript(context.Background(), "two eggs, whisked")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, transcript.ID)
	assert.Equal(t, model.TranscriptStatusPending, transcript.Status)
	assert.Nil(t, transcript.RecipeID)
}

func TestGenerateRecipeNotFound(t *testing.T) {
	svc, structurer := setupTranscriptService(t)

	_, err := svc.GenerateRecipe(context.Background(), uuid.New(), "whatever")
	assert.ErrorIs(t, err, ErrNotFound)
	structurer.AssertNotCalled(t, "StructureTranscript")
}

func TestGenerateRecipeSuccess(t *testing.T) {
	svc, structurer := setupTranscriptService(t)
	ctx := context.Background()

	transcript, err := svc.CreateTranscript(ctx, "rough dictation")
	require.NoError(t, err)

	structurer.On("StructureTranscript", mock.Anything, "two eggs and butter").Return(
		`{"recipe_name":"Omelette","provenance":"Julia","chef_notes":["low heat"],"items":[{"itemName":"Egg","quantity":2,"unit":"count"}]}`,
		nil,
	)

	recipe, err := svc.GenerateRecipe(ctx, transcript.ID, "two eggs and butter")
	require.NoError(t, err)
	assert.Equal(t, "Omelette", recipe.Name)
	assert.Equal(t, "Julia", recipe.Provenance)
	require.Len(t, recipe.Items, 1)
	assert.Equal(t, "Egg", recipe.Items[0].ItemName)

	// the transcript update is part of the same commit
	updated, err := svc.GetTranscript(ctx, transcript.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TranscriptStatusProcessed, updated.Status)
	assert.Equal(t, "two eggs and butter", updated.FullText)
	require.NotNil(t, updated.RecipeID)
	assert.Equal(t, recipe.ID, *updated.RecipeID)
}

func TestGenerateRecipeDefaultsMissingFields(t *testing.T) {
	svc, structurer := setupTranscriptService(t)
	ctx := context.Background()

	transcript, err := svc.CreateTranscript(ctx, "mumbling")
	require.NoError(t, err)

	structurer.On("StructureTranscript", mock.Anything, mock.Anything).Return(`{}`, nil)

	recipe, err := svc.GenerateRecipe(ctx, transcript.ID, "mumbling")
	require.NoError(t, err)
	assert.Equal(t, "Untitled Recipe", recipe.Name)
	assert.Empty(t, recipe.Provenance)
	assert.NotNil(t, recipe.Items)
	assert.Empty(t, recipe.Items)
}

func TestGenerateRecipeUpstreamFailure(t *testing.T) {
	svc, structurer := setupTranscriptService(t)
	ctx := context.Background()

	transcript, err := svc.CreateTranscript(ctx, "original text")
	require.NoError(t, err)

	structurer.On("StructureTranscript", mock.Anything, mock.Anything).Return("", assert.AnError)

	_, err = svc.GenerateRecipe(ctx, transcript.ID, "corrected text")
	assert.ErrorIs(t, err, ErrServiceUnavailable)

	// nothing was committed
	unchanged, err := svc.GetTranscript(ctx, transcript.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TranscriptStatusPending, unchanged.Status)
	assert.Equal(t, "original text", unchanged.FullText)
	assert.Nil(t, unchanged.RecipeID)
}

func TestGenerateRecipeInvalidStructure(t *testing.T) {
	svc, structurer := setupTranscriptService(t)
	ctx := context.Background()

	transcript, err := svc.CreateTranscript(ctx, "original text")
	require.NoError(t, err)

	structurer.On("StructureTranscript", mock.Anything, mock.Anything).Return(
		"I'm sorry, I can't help with that.", nil,
	)

	_, err = svc.GenerateRecipe(ctx, transcript.ID, "corrected text")
	assert.ErrorIs(t, err, ErrInvalidStructure)

	unchanged, err := svc.GetTranscript(ctx, transcript.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TranscriptStatusPending, unchanged.Status)
	assert.Nil(t, unchanged.RecipeID)
}
