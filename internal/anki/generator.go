package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/travelspeak/internal/history"
	"codeberg.org/snonux/travelspeak/internal/language"
	"codeberg.org/snonux/travelspeak/internal/translation"
)

// Card represents a single phrase flashcard
type Card struct {
	Front          string // The original phrase
	Back           string // Its translation
	SourceLanguage string // Language display name of Front
	TargetLanguage string // Language display name of Back
	Notes          string // Optional notes
}

// Tags returns the Anki tags of the card, e.g. "travelspeak en_es"
func (c Card) Tags() string {
	tags := []string{"travelspeak"}
	src, srcOK := language.Resolve(c.SourceLanguage)
	tgt, tgtOK := language.Resolve(c.TargetLanguage)
	if srcOK && tgtOK {
		tags = append(tags, src.BaseCode()+"_"+tgt.BaseCode())
	}
	return strings.Join(tags, " ")
}

// CardFromEntry turns a history entry into a card. Entries which only hold
// the phrase book's "not available" marker make no sense to learn from.
func CardFromEntry(e history.Entry) (Card, bool) {
	if strings.TrimSpace(e.Original) == "" || strings.HasPrefix(e.Translated, translation.Unavailable) {
		return Card{}, false
	}
	return Card{
		Front:          e.Original,
		Back:           e.Translated,
		SourceLanguage: e.SourceLanguage,
		TargetLanguage: e.TargetLanguage,
		Notes:          fmt.Sprintf("%s → %s, %s", e.SourceLanguage, e.TargetLanguage, e.Timestamp.Format("2006-01-02")),
	}, true
}

// GeneratorOptions configures the deck export
type GeneratorOptions struct {
	OutputPath     string // Output file path
	DeckName       string // Deck name inside the .apkg
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "travelspeak_phrases.csv",
		DeckName:       "TravelSpeak Phrases",
		IncludeHeaders: true,
	}
}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
	seen    map[string]bool
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
		seen:    make(map[string]bool),
	}
}

// AddCard adds a card to the deck. A card with the same phrase and
// languages as an earlier one is dropped.
func (g *Generator) AddCard(card Card) bool {
	key := card.SourceLanguage + "\x00" + card.TargetLanguage + "\x00" + card.Front
	if g.seen[key] {
		return false
	}
	g.seen[key] = true
	g.cards = append(g.cards, card)
	return true
}

// AddEntries adds a card per usable history entry and returns how many were
// added and skipped
func (g *Generator) AddEntries(entries []history.Entry) (added, skipped int) {
	for _, e := range entries {
		card, ok := CardFromEntry(e)
		if ok && g.AddCard(card) {
			added++
			continue
		}
		skipped++
	}
	return added, skipped
}

// GetCards returns the cards of the deck
func (g *Generator) GetCards() []Card {
	return g.cards
}

// Generate writes the deck in the format implied by the output path:
// .apkg writes an Anki package, everything else CSV.
func (g *Generator) Generate() error {
	if len(g.cards) == 0 {
		return fmt.Errorf("no cards to export")
	}
	if strings.EqualFold(filepath.Ext(g.options.OutputPath), ".apkg") {
		return g.GenerateAPKG(g.options.OutputPath, g.options.DeckName)
	}
	return g.GenerateCSV()
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders {
		if err := writer.Write([]string{"Front", "Back", "Notes", "Tags"}); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		record := []string{card.Front, card.Back, card.Notes, card.Tags()}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return nil
}

// GenerateAPKG creates an Anki package (.apkg) holding the deck
func (g *Generator) GenerateAPKG(outputPath, deckName string) error {
	apkg := NewAPKGGenerator(deckName)
	for _, card := range g.cards {
		apkg.AddCard(card)
	}
	return apkg.GenerateAPKG(outputPath)
}

// Stats returns the number of cards per "source → target" pair
func (g *Generator) Stats() (totalCards int, pairs map[string]int) {
	pairs = make(map[string]int)
	for _, card := range g.cards {
		pairs[card.SourceLanguage+" → "+card.TargetLanguage]++
	}
	return len(g.cards), pairs
}
