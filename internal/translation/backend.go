package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrBackendUnavailable is returned when no backend at all was provided.
var ErrBackendUnavailable = errors.New("no translation backend available")

// ErrEmptyText is returned for blank requests, they never reach a backend.
var ErrEmptyText = errors.New("text to translate is empty")

// Backend translates text between two language codes.
type Backend interface {
	// Translate returns the translation of text from sourceCode to targetCode
	Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error)

	// Name returns the backend name
	Name() string

	// Degraded reports whether results come from the offline phrase table
	Degraded() bool
}

// Request is one translation asked for by the user.
type Request struct {
	Text   string
	Source string
	Target string
}

// Result is the outcome of a successful request.
type Result struct {
	Text     string
	Backend  string
	Degraded bool
}

// Error wraps any failure of a backend so callers can tell translation
// failures apart from validation problems.
type Error struct {
	Backend string
	Err     error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Do validates req and runs it through b.
func Do(ctx context.Context, b Backend, req Request) (Result, error) {
	if b == nil {
		return Result{}, ErrBackendUnavailable
	}
	if strings.TrimSpace(req.Text) == "" {
		return Result{}, ErrEmptyText
	}

	text, err := b.Translate(ctx, req.Text, req.Source, req.Target)
	if err != nil {
		return Result{}, &Error{Backend: b.Name(), Err: err}
	}

	return Result{
		Text:     text,
		Backend:  b.Name(),
		Degraded: b.Degraded(),
	}, nil
}

// Config selects and configures the networked backend.
type Config struct {
	Provider    string // "openai", "gemini" or "fallback"
	OpenAIKey   string
	OpenAIModel string
	GeminiKey   string
	GeminiModel string
	CacheTTL    int // seconds, 0 disables the cache
}

// DefaultConfig returns the default backend configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:    "openai",
		OpenAIModel: "gpt-4o-mini",
		GeminiModel: "gemini-2.0-flash",
		CacheTTL:    3600,
	}
}

// NewBackend constructs the networked backend named by config, wrapped in a
// circuit breaker and, when enabled, a cache. It fails when the backend
// cannot be initialized, callers then fall back to NewFallback.
func NewBackend(ctx context.Context, config *Config) (Backend, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var (
		backend Backend
		err     error
	)

	switch config.Provider {
	case "openai":
		backend, err = NewOpenAITranslator(config.OpenAIKey, config.OpenAIModel)
	case "gemini":
		backend, err = NewGeminiTranslator(ctx, config.GeminiKey, config.GeminiModel)
	case "fallback", "offline":
		return nil, fmt.Errorf("networked translation disabled by configuration")
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}
	if err != nil {
		return nil, err
	}

	backend = WithBreaker(backend)
	if config.CacheTTL > 0 {
		backend = WithCache(backend, NewTranslationCache(config.CacheTTL))
	}
	return backend, nil
}
