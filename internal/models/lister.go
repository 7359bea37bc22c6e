package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// Catalog groups model IDs by what travelspeak uses them for
type Catalog struct {
	Transcription []string
	Speech        []string
	Chat          []string
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// ListAvailableModels prints the models usable for recognition, speech and
// translation to w
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .travelspeak.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		ids = append(ids, model.ID)
	}
	Categorize(ids).Print(w)
	return nil
}

// Categorize sorts model IDs into the catalog. IDs matching no category
// are dropped.
func Categorize(ids []string) Catalog {
	var c Catalog
	for _, id := range ids {
		switch {
		case strings.Contains(id, "whisper") || strings.Contains(id, "transcribe"):
			c.Transcription = append(c.Transcription, id)
		case strings.Contains(id, "tts"):
			c.Speech = append(c.Speech, id)
		case strings.Contains(id, "audio") || strings.Contains(id, "realtime"):
			// Streaming models, not used
		case strings.Contains(id, "gpt") || strings.Contains(id, "chat"):
			c.Chat = append(c.Chat, id)
		}
	}

	sort.Strings(c.Transcription)
	sort.Strings(c.Speech)
	sort.Strings(c.Chat)
	return c
}

// Print writes the catalog in sections
func (c Catalog) Print(w io.Writer) {
	fmt.Fprintln(w, "Available OpenAI Models:")
	printSection(w, "Speech Recognition Models:", "No transcription models found", c.Transcription)
	printSection(w, "Text-to-Speech (TTS) Models:", "No TTS models found", c.Speech)

	fmt.Fprintln(w, "\nChat/Translation Models:")
	if len(c.Chat) > 10 {
		// Show only relevant models
		relevant := []string{}
		for _, model := range c.Chat {
			if strings.Contains(model, "gpt-4") || strings.Contains(model, "gpt-3.5") {
				relevant = append(relevant, model)
			}
		}
		for _, model := range relevant {
			fmt.Fprintf(w, "  %s\n", model)
		}
		fmt.Fprintf(w, "  ... and %d more models\n", len(c.Chat)-len(relevant))
		return
	}
	for _, model := range c.Chat {
		fmt.Fprintf(w, "  %s\n", model)
	}
}

func printSection(w io.Writer, title, empty string, ids []string) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(ids) == 0 {
		fmt.Fprintf(w, "  %s\n", empty)
		return
	}
	for _, id := range ids {
		fmt.Fprintf(w, "  %s\n", id)
	}
}
