// Package audio reads translated text aloud.
package audio

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// Speak synthesizes text and blocks until playback has finished
	Speak(ctx context.Context, text string) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for audio providers
type Config struct {
	Provider string  // Provider name: "openai", "espeak" or "none"
	Volume   float64 // 0.0 to 1.0

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice string  // "alloy", "ash", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer"
	OpenAISpeed float64 // 0.25 to 4.0

	// espeak-ng settings, Voice empty means the first installed voice
	ESpeak *ESpeakConfig
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:    "openai",
		Volume:      0.9,
		OpenAIModel: "tts-1",
		OpenAIVoice: "alloy",
		OpenAISpeed: 0.75,
		ESpeak:      DefaultConfig(),
	}
}

// NewProvider creates the appropriate audio provider based on configuration.
// The openai provider falls back to espeak-ng when it is installed.
func NewProvider(config *Config, logger *zap.SugaredLogger) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	switch config.Provider {
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		primary, err := NewOpenAIProvider(config, NewBeepPlayer(config.Volume))
		if err != nil {
			return nil, err
		}
		if fallback, err := NewESpeakProvider(config.ESpeak); err == nil {
			return NewProviderWithFallback(primary, fallback, logger), nil
		}
		return primary, nil

	case "espeak", "espeak-ng":
		return NewESpeakProvider(config.ESpeak)

	case "none":
		return nil, fmt.Errorf("speech output disabled by configuration")

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", config.Provider)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
	logger   *zap.SugaredLogger

	// set by IsAvailable when only the fallback works
	primaryDown bool
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider, logger *zap.SugaredLogger) Provider {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Speak tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Speak(ctx context.Context, text string) error {
	if p.primaryDown {
		return p.fallback.Speak(ctx, text)
	}
	err := p.primary.Speak(ctx, text)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		p.logger.Warnw("Primary speech provider failed, falling back",
			"primary", p.primary.Name(), "fallback", p.fallback.Name(), "error", err)
		return p.fallback.Speak(ctx, text)
	}
	return nil
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available. When only the
// fallback is, later Speak calls go straight to it.
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		p.primaryDown = false
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		p.logger.Warnw("Primary speech provider unavailable, using fallback",
			"primary", p.primary.Name(), "fallback", p.fallback.Name(), "error", primaryErr)
		p.primaryDown = true
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
