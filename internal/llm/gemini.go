package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// geminiClient implements the Client interface using the Gemini SDK.
type geminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// newGeminiClient creates a new Gemini client.
func newGeminiClient(ctx context.Context, cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	if cfg.Temperature > 0 {
		temp := float32(cfg.Temperature)
		model.Temperature = &temp
	}
	if cfg.MaxTokens > 0 {
		maxTokens := int32(cfg.MaxTokens)
		model.MaxOutputTokens = &maxTokens
	}

	return &geminiClient{client: client, model: model}, nil
}

// ExtractTransaction sends the message to Gemini and decodes the response.
func (c *geminiClient) ExtractTransaction(ctx context.Context, messageText string) (ExtractionResponse, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(extractionPrompt(messageText)))
	if err != nil {
		return ExtractionResponse{}, fmt.Errorf("gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ExtractionResponse{}, fmt.Errorf("no content in gemini response")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return ExtractionResponse{}, fmt.Errorf("unexpected part type in gemini response")
	}

	return decodeExtraction(string(text))
}
