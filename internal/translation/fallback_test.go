package translation

import (
	"context"
	"testing"
)

func TestFallback_Translate(t *testing.T) {
	f, err := NewFallback()
	if err != nil {
		t.Fatalf("NewFallback failed: %v", err)
	}

	tests := []struct {
		text, src, tgt, want string
	}{
		{"hello", "en", "es", "hola"},
		{"  Hello ", "en", "es", "hola"},
		{"THANK YOU", "en", "fr", "merci"},
		{"please", "en", "fr", "s'il vous plaît"},
		{"goodbye", "en", "de", "auf wiedersehen"},
		{"water", "en", "it", "acqua"},
		{"hello", "en-us", "es", "hola"},
		{"banana", "en", "es", Unavailable + "banana"},
		{"hello", "en", "ja", Unavailable + "hello"},
		{"hola", "es", "en", Unavailable + "hola"},
		{"", "en", "es", Unavailable},
	}

	for _, tt := range tests {
		t.Run(tt.text+"_"+tt.tgt, func(t *testing.T) {
			got, err := f.Translate(context.Background(), tt.text, tt.src, tt.tgt)
			if err != nil {
				t.Fatalf("Fallback must never fail, got %v", err)
			}
			if got != tt.want {
				t.Errorf("Translate(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestFallback_EveryPhrase(t *testing.T) {
	f, err := NewFallback()
	if err != nil {
		t.Fatal(err)
	}

	phrases := f.Phrases("en")
	if len(phrases) != 10 {
		t.Fatalf("Expected 10 phrases, got %d", len(phrases))
	}

	for _, phrase := range phrases {
		for _, tgt := range []string{"es", "fr", "de", "it"} {
			got, _ := f.Translate(context.Background(), phrase, "en", tgt)
			if got == "" || got == Unavailable+phrase {
				t.Errorf("Missing %s translation of %q", tgt, phrase)
			}
		}
	}

	if !f.Degraded() || f.Name() != "fallback" {
		t.Error("Fallback must report itself as degraded")
	}
}

func TestParsePhraseTable(t *testing.T) {
	table, err := ParsePhraseTable("[en.\"Good Night\"]\nes = \"buenas noches\"\n")
	if err != nil {
		t.Fatal(err)
	}
	if table["en"]["good night"]["es"] != "buenas noches" {
		t.Errorf("Phrase keys should be lowercased: %v", table)
	}

	if _, err := ParsePhraseTable("[en"); err == nil {
		t.Error("Expected error for malformed table")
	}
}
