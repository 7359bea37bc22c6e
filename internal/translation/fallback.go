package translation

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Unavailable prefixes the input text when the phrase table has no entry.
const Unavailable = "[Translation not available] "

//go:embed phrases.toml
var phrasesTOML string

// PhraseTable maps source code -> lowercased phrase -> target code -> text
type PhraseTable map[string]map[string]map[string]string

// Fallback translates from a small built-in phrase table. It never fails.
type Fallback struct {
	table PhraseTable
}

// NewFallback creates the offline backend from the embedded phrase table
func NewFallback() (*Fallback, error) {
	table, err := ParsePhraseTable(phrasesTOML)
	if err != nil {
		return nil, err
	}
	return &Fallback{table: table}, nil
}

// ParsePhraseTable decodes a TOML phrase table. Phrase keys are lowercased.
func ParsePhraseTable(data string) (PhraseTable, error) {
	var raw PhraseTable
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse phrase table: %w", err)
	}

	table := make(PhraseTable, len(raw))
	for src, phrases := range raw {
		table[src] = make(map[string]map[string]string, len(phrases))
		for phrase, targets := range phrases {
			table[src][strings.ToLower(strings.TrimSpace(phrase))] = targets
		}
	}
	return table, nil
}

// Translate looks up the lowercased, trimmed text. Region suffixes on the
// codes are ignored.
func (f *Fallback) Translate(_ context.Context, text, sourceCode, targetCode string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(text))
	if phrases, ok := f.table[baseCode(sourceCode)]; ok {
		if targets, ok := phrases[key]; ok {
			if out, ok := targets[baseCode(targetCode)]; ok {
				return out, nil
			}
		}
	}
	return Unavailable + text, nil
}

// Phrases returns the known phrases for a source code.
func (f *Fallback) Phrases(sourceCode string) []string {
	phrases := make([]string, 0, len(f.table[baseCode(sourceCode)]))
	for phrase := range f.table[baseCode(sourceCode)] {
		phrases = append(phrases, phrase)
	}
	return phrases
}

// Name returns the backend name
func (f *Fallback) Name() string {
	return "fallback"
}

// Degraded is always true for the phrase table
func (f *Fallback) Degraded() bool {
	return true
}

func baseCode(code string) string {
	code = strings.ToLower(code)
	if i := strings.IndexByte(code, '-'); i > 0 {
		return code[:i]
	}
	return code
}
