package audio

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider interface for OpenAI TTS
type OpenAIProvider struct {
	client *openai.Client
	config *Config
	player Player
}

// NewOpenAIProvider creates a new OpenAI TTS provider playing through player
func NewOpenAIProvider(config *Config, player Player) (*OpenAIProvider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if player == nil {
		player = NewBeepPlayer(config.Volume)
	}

	return &OpenAIProvider{
		client: openai.NewClient(config.OpenAIKey),
		config: config,
		player: player,
	}, nil
}

// Request builds the speech request for text
func (p *OpenAIProvider) Request(text string) openai.CreateSpeechRequest {
	return openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          strings.TrimSpace(text),
		Voice:          openai.SpeechVoice(p.config.OpenAIVoice),
		Speed:          p.config.OpenAISpeed,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}
}

// Speak synthesizes text with OpenAI and plays the result
func (p *OpenAIProvider) Speak(ctx context.Context, text string) error {
	if err := ValidateText(text); err != nil {
		return err
	}

	response, err := p.client.CreateSpeech(ctx, p.Request(text))
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "does not have access to model") {
			return fmt.Errorf("OpenAI TTS API error: %w\nNote: The %s model requires access. Try tts-1 instead", err, p.config.OpenAIModel)
		}
		return fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	return p.player.Play(ctx, response)
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is configured and the player can
// open its output device
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}

	// A test request would cost credits, a key is all we check for.
	if device, ok := p.player.(Initializer); ok {
		if err := device.Init(); err != nil {
			return fmt.Errorf("no audio output device: %w", err)
		}
	}
	return nil
}
