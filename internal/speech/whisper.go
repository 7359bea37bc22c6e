package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/travelspeak/internal/language"
)

// WhisperRecognizer transcribes utterances with the OpenAI transcription API
type WhisperRecognizer struct {
	client *openai.Client
	model  string
}

// NewWhisperRecognizer creates a recognizer using apiKey
func NewWhisperRecognizer(apiKey string) (*WhisperRecognizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found")
	}
	return &WhisperRecognizer{
		client: openai.NewClient(apiKey),
		model:  openai.Whisper1,
	}, nil
}

// Recognize uploads u as a WAV file and returns the transcript
func (w *WhisperRecognizer) Recognize(ctx context.Context, u *Utterance, languageCode string) (string, error) {
	if u == nil || len(u.Samples) == 0 {
		return "", ErrNoSpeechDetected
	}

	// The WAV encoder needs to seek back to patch the header sizes.
	tmp, err := os.CreateTemp("", "travelspeak-*.wav")
	if err != nil {
		return "", &ServiceError{Op: "recognize", Err: err}
	}
	defer os.Remove(tmp.Name())

	if err := u.WriteWAV(tmp); err != nil {
		_ = tmp.Close()
		return "", &ServiceError{Op: "recognize", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return "", &ServiceError{Op: "recognize", Err: err}
	}

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: tmp.Name(),
		Language: whisperLanguage(languageCode),
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", &ServiceError{Op: "recognize", Err: fmt.Errorf("OpenAI API error: %w", err)}
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrNoSpeechDetected
	}
	return text, nil
}

// whisperLanguage maps a catalog code to the ISO-639-1 code the API takes.
func whisperLanguage(code string) string {
	if l, ok := language.ByCode(code); ok {
		return l.BaseCode()
	}
	return ""
}
