// Package capability records which external services could be initialized
// at startup. Each service is either Available with a usable handle or
// Unavailable with the reason it failed.
package capability

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"codeberg.org/snonux/travelspeak/internal/audio"
	"codeberg.org/snonux/travelspeak/internal/speech"
	"codeberg.org/snonux/travelspeak/internal/translation"
)

// Service is the probe result for one external service
type Service[T any] struct {
	handle T
	err    error
	ok     bool
}

// Available wraps a working handle
func Available[T any](handle T) Service[T] {
	return Service[T]{handle: handle, ok: true}
}

// Unavailable records why a service could not be used
func Unavailable[T any](err error) Service[T] {
	if err == nil {
		err = fmt.Errorf("unknown error")
	}
	return Service[T]{err: err}
}

// Get returns the handle and whether the service is available
func (s Service[T]) Get() (T, bool) {
	return s.handle, s.ok
}

// OK reports whether the service is available
func (s Service[T]) OK() bool {
	return s.ok
}

// Err returns the reason the service is unavailable, nil otherwise
func (s Service[T]) Err() error {
	return s.err
}

// SpeechInput is the microphone plus recognizer pair used for recording
type SpeechInput struct {
	Microphone speech.Microphone
	Recognizer speech.Recognizer
}

// Capabilities holds the probe result of every service
type Capabilities struct {
	SpeechInput  Service[SpeechInput]
	SpeechOutput Service[audio.Provider]
	Translator   Service[translation.Backend]
}

// Backend returns the networked backend when available, else fallback
func (c *Capabilities) Backend(fallback translation.Backend) translation.Backend {
	if b, ok := c.Translator.Get(); ok {
		return b
	}
	return fallback
}

// Summary lists the unavailable services, one bullet each. It is empty when
// everything is available.
func (c *Capabilities) Summary() string {
	var lines []string
	add := func(name string, err error) {
		if err != nil {
			lines = append(lines, fmt.Sprintf("• %s unavailable: %v", name, err))
		}
	}
	add("Speech recognition", c.SpeechInput.Err())
	add("Text-to-speech", c.SpeechOutput.Err())
	add("Online translation", c.Translator.Err())

	if len(lines) == 0 {
		return ""
	}
	return "Some features are limited:\n" + strings.Join(lines, "\n")
}

// Close releases held devices
func (c *Capabilities) Close() error {
	if in, ok := c.SpeechInput.Get(); ok && in.Microphone != nil {
		return in.Microphone.Close()
	}
	return nil
}

// Config selects the services to probe
type Config struct {
	SpeechInput string // "whisper" or "none"
	OpenAIKey   string
	SampleRate  int
	Audio       *audio.Config
	Translation *translation.Config
}

// Probe initializes every service independently. A failing service never
// prevents the others from being probed.
func Probe(ctx context.Context, config *Config, logger *zap.SugaredLogger) *Capabilities {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	c := &Capabilities{
		SpeechInput:  probeSpeechInput(config),
		SpeechOutput: probeSpeechOutput(config, logger),
		Translator:   probeTranslator(ctx, config),
	}

	for name, err := range map[string]error{
		"speech input":  c.SpeechInput.Err(),
		"speech output": c.SpeechOutput.Err(),
		"translation":   c.Translator.Err(),
	} {
		if err != nil {
			logger.Infow("Service unavailable", "service", name, "reason", err)
		}
	}
	return c
}

func probeSpeechInput(config *Config) Service[SpeechInput] {
	if config.SpeechInput == "none" {
		return Unavailable[SpeechInput](fmt.Errorf("disabled by configuration"))
	}

	recognizer, err := speech.NewWhisperRecognizer(config.OpenAIKey)
	if err != nil {
		return Unavailable[SpeechInput](err)
	}
	mic, err := speech.OpenMalgoMicrophone(config.SampleRate)
	if err != nil {
		return Unavailable[SpeechInput](err)
	}
	return Available(SpeechInput{Microphone: mic, Recognizer: recognizer})
}

func probeSpeechOutput(config *Config, logger *zap.SugaredLogger) Service[audio.Provider] {
	provider, err := audio.NewProvider(config.Audio, logger)
	if err != nil {
		return Unavailable[audio.Provider](err)
	}
	if err := provider.IsAvailable(); err != nil {
		return Unavailable[audio.Provider](err)
	}
	return Available(provider)
}

func probeTranslator(ctx context.Context, config *Config) Service[translation.Backend] {
	backend, err := translation.NewBackend(ctx, config.Translation)
	if err != nil {
		return Unavailable[translation.Backend](err)
	}
	return Available(backend)
}
