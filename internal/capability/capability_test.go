package capability

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codeberg.org/snonux/travelspeak/internal/audio"
	"codeberg.org/snonux/travelspeak/internal/translation"
)

func TestService(t *testing.T) {
	ok := Available(42)
	if v, good := ok.Get(); !good || v != 42 || ok.Err() != nil || !ok.OK() {
		t.Errorf("Available(42) = %+v", ok)
	}

	cause := errors.New("no microphone")
	bad := Unavailable[int](cause)
	if v, good := bad.Get(); good || v != 0 || !errors.Is(bad.Err(), cause) {
		t.Errorf("Unavailable() = %+v", bad)
	}

	if Unavailable[string](nil).Err() == nil {
		t.Error("Unavailable(nil) must still carry a reason")
	}
}

func TestSummary(t *testing.T) {
	c := &Capabilities{
		SpeechInput:  Unavailable[SpeechInput](errors.New("no microphone")),
		SpeechOutput: Unavailable[audio.Provider](errors.New("espeak-ng missing")),
		Translator:   Available[translation.Backend](nil),
	}

	summary := c.Summary()
	if !strings.Contains(summary, "• Speech recognition unavailable: no microphone") {
		t.Errorf("Summary missing speech input line:\n%s", summary)
	}
	if !strings.Contains(summary, "• Text-to-speech unavailable: espeak-ng missing") {
		t.Errorf("Summary missing speech output line:\n%s", summary)
	}
	if strings.Contains(summary, "translation") {
		t.Errorf("Summary lists an available service:\n%s", summary)
	}

	all := &Capabilities{
		SpeechInput:  Available(SpeechInput{}),
		SpeechOutput: Available[audio.Provider](nil),
		Translator:   Available[translation.Backend](nil),
	}
	if all.Summary() != "" {
		t.Errorf("Summary should be empty, got %q", all.Summary())
	}
}

func TestBackend(t *testing.T) {
	fallback, err := translation.NewFallback()
	if err != nil {
		t.Fatal(err)
	}

	c := &Capabilities{Translator: Unavailable[translation.Backend](errors.New("no key"))}
	if c.Backend(fallback) != fallback {
		t.Error("Expected the fallback backend")
	}
}

func TestProbe_NothingConfigured(t *testing.T) {
	c := Probe(context.Background(), &Config{
		SpeechInput: "none",
		Audio:       &audio.Config{Provider: "none"},
		Translation: &translation.Config{Provider: "fallback"},
	}, nil)

	if c.SpeechInput.OK() || c.SpeechOutput.OK() || c.Translator.OK() {
		t.Errorf("Expected every service unavailable: %+v", c)
	}
	if strings.Count(c.Summary(), "•") != 3 {
		t.Errorf("Expected three bullets:\n%s", c.Summary())
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestProbe_TranslatorIndependentOfSpeech(t *testing.T) {
	c := Probe(context.Background(), &Config{
		SpeechInput: "whisper", // no key, so unavailable
		Audio:       &audio.Config{Provider: "none"},
		Translation: &translation.Config{Provider: "openai", OpenAIKey: "test-key", CacheTTL: 60},
	}, nil)

	if c.SpeechInput.OK() {
		t.Error("Speech input should be unavailable without a key")
	}
	b, ok := c.Translator.Get()
	if !ok || b.Name() != "openai" {
		t.Errorf("Translator should be available, err = %v", c.Translator.Err())
	}
}
