package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mise-app/backend/config"
	"github.com/mise-app/backend/internal/model"
)

// GeneratedRecipe is the structure the model is instructed to return for a
// dictated transcript.
type GeneratedRecipe struct {
	RecipeName string                 `json:"recipe_name"`
	Provenance string                 `json:"provenance"`
	ChefNotes  model.JSONBStringArray `json:"chef_notes"`
	Items      model.RecipeItems      `json:"items"`
}

// RecipeStructurer turns free-form transcript text into raw model output.
type RecipeStructurer interface {
	StructureTranscript(ctx context.Context, transcript string) (string, error)
}

// LLMService calls a chat-completions API to structure transcripts.
type LLMService struct {
	apiKey string
	apiURL string
	client *http.Client
	logger *zap.Logger
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg *config.Config, logger *zap.Logger) (*LLMService, error) {
	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("structuring service API key is not configured")
	}

	return &LLMService{
		apiKey: cfg.LLMAPIKey,
		apiURL: cfg.LLMAPIURL,
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat-completions request
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

const structuringInstruction = `You are an expert kitchen assistant. Your task is to analyze a chef's transcribed dictation and structure it into a specific JSON format.
Your entire response MUST be a single, valid JSON object and nothing else.
Populate the following fields: "recipe_name", "provenance", "chef_notes" (a list of strings), and "items" (a list of objects with "itemName", "quantity", and "unit").
If any detail is missing, use a reasonable default like null for strings or an empty list [].`

// StructureTranscript sends the transcript to the model and returns its raw
// text output. Low temperature keeps the structuring deterministic.
func (s *LLMService) StructureTranscript(ctx context.Context, transcript string) (string, error) {
	reqBody := Request{
		Model: "deepseek-chat",
		Messages: []Message{
			{Role: "system", Content: structuringInstruction},
			{Role: "user", Content: transcript},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.1,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("structuring API request failed",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return "", fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Choices[0].Message.Content, nil
}

// Models like to wrap JSON in a fenced code block even when told not to.
var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*\\})\\s*```")

// ParseRecipeJSON extracts the recipe object from raw model output. It
// prefers a fenced code block, then falls back to parsing the whole string.
// Failures surface as ErrInvalidStructure, never a panic.
func ParseRecipeJSON(raw string) (*GeneratedRecipe, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrInvalidStructure
	}

	payload := raw
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		payload = m[1]
	}

	var recipe GeneratedRecipe
	if err := json.Unmarshal([]byte(payload), &recipe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	return &recipe, nil
}
