package anki

import (
	"archive/zip"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"

	"codeberg.org/snonux/travelspeak/internal/testutil"
)

func TestNewAPKGGenerator(t *testing.T) {
	gen := NewAPKGGenerator("Test Deck")

	if gen.deckName != "Test Deck" {
		t.Errorf("Expected deck name 'Test Deck', got '%s'", gen.deckName)
	}
	if gen.modelID == gen.deckID {
		t.Error("Expected distinct deck and model IDs")
	}
	if len(gen.cards) != 0 {
		t.Errorf("Expected empty cards slice, got %d cards", len(gen.cards))
	}
}

func TestGenerateAPKG(t *testing.T) {
	output := filepath.Join(t.TempDir(), "phrases.apkg")
	gen := NewGenerator(&GeneratorOptions{OutputPath: output, DeckName: "Trip"})
	gen.AddCard(Card{
		Front:          "where is the station",
		Back:           "où est la gare",
		SourceLanguage: "English",
		TargetLanguage: "French",
	})

	if err := gen.Generate(); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	testutil.AssertFileExists(t, output)

	reader, err := zip.OpenReader(output)
	if err != nil {
		t.Fatalf("Failed to open APKG as zip: %v", err)
	}
	defer reader.Close()

	names := make(map[string]bool)
	for _, file := range reader.File {
		names[file.Name] = true
	}
	for _, name := range []string{"collection.anki2", "media"} {
		if !names[name] {
			t.Errorf("Required file '%s' not found in APKG", name)
		}
	}
}

func TestCreateDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.anki2")

	gen := NewAPKGGenerator("Test Deck")
	gen.AddCard(Card{
		Front:          "two coffees <please>",
		Back:           "dos cafés, por favor",
		SourceLanguage: "English",
		TargetLanguage: "Spanish",
		Notes:          "café",
	})
	gen.AddCard(Card{Front: "hello", Back: "hola", SourceLanguage: "English", TargetLanguage: "Spanish"})

	if err := gen.createDatabase(dbPath); err != nil {
		t.Fatalf("createDatabase() error = %v", err)
	}

	db, err := sqlx.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	var notes, cards int
	if err := db.Get(&notes, "SELECT COUNT(*) FROM notes"); err != nil {
		t.Fatal(err)
	}
	if err := db.Get(&cards, "SELECT COUNT(*) FROM cards"); err != nil {
		t.Fatal(err)
	}
	if notes != 2 || cards != 4 {
		t.Errorf("Got %d notes and %d cards, want 2 and 4", notes, cards)
	}

	var note struct {
		Flds string `db:"flds"`
		Tags string `db:"tags"`
	}
	if err := db.Get(&note, "SELECT flds, tags FROM notes ORDER BY id LIMIT 1"); err != nil {
		t.Fatal(err)
	}
	fields := strings.Split(note.Flds, "\x1f")
	if len(fields) != 4 {
		t.Fatalf("Expected 4 fields, got %d", len(fields))
	}
	if fields[0] != "two coffees &lt;please&gt;" {
		t.Errorf("Phrase field = %q, want HTML escaped", fields[0])
	}
	if fields[2] != "English → Spanish" {
		t.Errorf("Languages field = %q", fields[2])
	}
	if strings.TrimSpace(note.Tags) != "travelspeak en_es" {
		t.Errorf("Tags = %q", note.Tags)
	}
}

func TestFieldChecksum(t *testing.T) {
	// First 8 hex digits of sha1("hello") are aaf4c61d
	if got := fieldChecksum("hello"); got != 0xaaf4c61d {
		t.Errorf("fieldChecksum(hello) = %x, want aaf4c61d", got)
	}
}
