package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/travelspeak/internal/language"
)

// OpenAITranslator translates through the OpenAI chat completion API
type OpenAITranslator struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAITranslator creates a new translator instance
func NewOpenAITranslator(apiKey, model string) (*OpenAITranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found")
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAITranslator{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClient(apiKey),
	}, nil
}

// Translate translates text from one language code to another
func (t *OpenAITranslator) Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a translation engine. Respond with only the translation, nothing else.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(text, sourceCode, targetCode),
			},
		},
		MaxTokens:   1024,
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	translation := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translation == "" {
		return "", fmt.Errorf("empty translation returned")
	}
	return translation, nil
}

// Name returns the backend name
func (t *OpenAITranslator) Name() string {
	return "openai"
}

// Degraded is always false for a networked backend
func (t *OpenAITranslator) Degraded() bool {
	return false
}

// buildPrompt is shared by all model-backed translators.
func buildPrompt(text, sourceCode, targetCode string) string {
	return fmt.Sprintf("Translate the following text from %s to %s:\n\n%s",
		languageLabel(sourceCode), languageLabel(targetCode), text)
}

func languageLabel(code string) string {
	if l, ok := language.ByCode(code); ok {
		return fmt.Sprintf("%s (%s)", l.Name, l.Code)
	}
	return code
}
