package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mise-app/backend/internal/service"
)

// TranscriptHandler serves transcript capture and the generation workflow.
type TranscriptHandler struct {
	transcripts *service.TranscriptService
	logger      *zap.Logger
}

// NewTranscriptHandler creates a new TranscriptHandler instance
func NewTranscriptHandler(transcripts *service.TranscriptService, logger *zap.Logger) *TranscriptHandler {
	return &TranscriptHandler{transcripts: transcripts, logger: logger}
}

// CreateTranscript saves freshly dictated text and returns the editor
// fragment so the user can correct it before structuring.
func (h *TranscriptHandler) CreateTranscript(c *gin.Context) {
	var req CreateTranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transcript, err := h.transcripts.CreateTranscript(c.Request.Context(), req.FullText)
	if err != nil {
		h.logger.Error("failed to save transcript", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save transcript"})
		return
	}

	c.HTML(http.StatusOK, "transcript_editor.html", gin.H{"Transcript": transcript})
}

// GenerateRecipe takes the corrected transcript text, runs the structuring
// workflow and returns the new recipe card.
func (h *TranscriptHandler) GenerateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transcript id"})
		return
	}

	text := strings.TrimSpace(c.PostForm("transcript_text"))
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transcript_text is required"})
		return
	}

	recipe, err := h.transcripts.GenerateRecipe(c.Request.Context(), id, text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transcript not found"})
		case errors.Is(err, service.ErrInvalidStructure):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "The structuring service returned an invalid recipe structure"})
		case errors.Is(err, service.ErrServiceUnavailable):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "The structuring service failed to respond"})
		default:
			h.logger.Error("recipe generation failed", zap.String("transcript_id", id.String()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recipe"})
		}
		return
	}

	c.HTML(http.StatusOK, "recipe_card.html", gin.H{"Recipe": recipe})
}
