package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiTranslator translates through the Gemini API
type GeminiTranslator struct {
	model  string
	client *genai.Client
}

// NewGeminiTranslator creates a Gemini backed translator
func NewGeminiTranslator(ctx context.Context, apiKey, model string) (*GeminiTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not found")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTranslator{model: model, client: client}, nil
}

// Translate translates text from one language code to another
func (g *GeminiTranslator) Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.3),
		SystemInstruction: genai.NewContentFromText(
			"You are a translation engine. Respond with only the translation, nothing else.",
			genai.RoleUser,
		),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(text, sourceCode, targetCode)), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	translation := strings.TrimSpace(resp.Text())
	if translation == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return translation, nil
}

// Name returns the backend name
func (g *GeminiTranslator) Name() string {
	return "gemini"
}

// Degraded is always false for a networked backend
func (g *GeminiTranslator) Degraded() bool {
	return false
}
