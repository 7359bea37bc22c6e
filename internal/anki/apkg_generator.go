package anki

import (
	"archive/zip"
	"crypto/sha1"
	_ "embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var collectionSchema string

// APKGGenerator creates Anki package files (.apkg)
type APKGGenerator struct {
	deckName string
	deckID   int64
	modelID  int64
	cards    []Card
}

// NewAPKGGenerator creates a new APKG generator
func NewAPKGGenerator(deckName string) *APKGGenerator {
	// Generate IDs based on timestamp to ensure uniqueness
	now := time.Now().UnixMilli()
	return &APKGGenerator{
		deckName: deckName,
		deckID:   now,
		modelID:  now + 1,
		cards:    make([]Card, 0),
	}
}

// AddCard adds a card to the generator
func (g *APKGGenerator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// GenerateAPKG creates an .apkg file
func (g *APKGGenerator) GenerateAPKG(outputPath string) error {
	// Create temporary directory for building the package
	tempDir, err := os.MkdirTemp("", "anki_export_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// Phrase cards carry no media, Anki still expects the mapping
	if err := os.WriteFile(filepath.Join(tempDir, "media"), []byte("{}"), 0644); err != nil {
		return fmt.Errorf("failed to create media mapping: %w", err)
	}

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := g.createDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	// Create the .apkg zip file
	if err := g.createZipPackage(tempDir, outputPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}

	return nil
}

// createDatabase creates the Anki SQLite database
func (g *APKGGenerator) createDatabase(dbPath string) error {
	db, err := sqlx.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	// Create tables
	if err := g.createTables(db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	// Insert collection metadata
	if err := g.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}

	// Insert notes and cards
	if err := g.insertNotesAndCards(db); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}

	return nil
}

// createTables creates the tables of an Anki 2.1 collection
func (g *APKGGenerator) createTables(db *sqlx.DB) error {
	if _, err := db.Exec(collectionSchema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// deckConfig describes a deck. The *Today arrays are [day, count] stats.
func deckConfig(id int64, name, desc string, now int64) map[string]interface{} {
	return map[string]interface{}{
		"id":               id,
		"name":             name,
		"mod":              now,
		"desc":             desc,
		"collapsed":        false,
		"dyn":              0,
		"conf":             1,
		"usn":              0,
		"newToday":         []int{0, 0},
		"revToday":         []int{0, 0},
		"lrnToday":         []int{0, 0},
		"timeToday":        []int{0, 0},
		"browserCollapsed": false,
		"extendNew":        10,
		"extendRev":        50,
	}
}

// deckOptions are the scheduling options shared by both decks
func deckOptions(now int64) map[string]interface{} {
	return map[string]interface{}{
		"id":   1,
		"name": "Default",
		"dyn":  0,
		"new": map[string]interface{}{
			"delays":        []int{1, 10},
			"ints":          []int{1, 4, 7},
			"initialFactor": 2500,
			"perDay":        20,
			"order":         1,
			"bury":          true,
			"separate":      true,
		},
		"lapse": map[string]interface{}{
			"delays":      []int{10},
			"mult":        0,
			"minInt":      1,
			"leechFails":  8,
			"leechAction": 0,
		},
		"rev": map[string]interface{}{
			"perDay":   100,
			"ease4":    1.3,
			"fuzz":     0.05,
			"maxIvl":   36500,
			"ivlFct":   1,
			"bury":     true,
			"minSpace": 1,
		},
		"timer":    0,
		"maxTaken": 60,
		"usn":      0,
		"mod":      now,
		"autoplay": true,
		"replayq":  true,
	}
}

// insertCollection inserts the collection metadata row
func (g *APKGGenerator) insertCollection(db *sqlx.DB) error {
	now := time.Now().Unix()
	deckKey := fmt.Sprintf("%d", g.deckID)
	modelKey := fmt.Sprintf("%d", g.modelID)

	columns := map[string]interface{}{
		"conf": map[string]interface{}{
			"nextPos":       1,
			"estTimes":      true,
			"activeDecks":   []int64{g.deckID},
			"sortType":      "noteFld",
			"sortBackwards": false,
			"addToCur":      true,
			"curDeck":       g.deckID,
			"newSpread":     0,
			"dueCounts":     true,
			"collapseTime":  1200,
			"timeLim":       0,
			"schedVer":      1,
			"curModel":      modelKey,
			"dayLearnFirst": false,
		},
		"models": map[string]interface{}{
			modelKey: g.createNoteTypeConfig(),
		},
		"decks": map[string]interface{}{
			"1":     deckConfig(1, "Default", "", now),
			deckKey: deckConfig(g.deckID, g.deckName, "Travel phrases translated with TravelSpeak", now),
		},
		"dconf": map[string]interface{}{
			"1": deckOptions(now),
		},
	}

	encoded := make(map[string]string, len(columns))
	for name, value := range columns {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", name, err)
		}
		encoded[name] = string(data)
	}

	_, err := db.Exec(`INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		1,        // id
		now,      // crt
		now*1000, // mod
		now*1000, // scm
		11,       // ver (schema version)
		0,        // dty
		0,        // usn
		0,        // ls
		encoded["conf"],
		encoded["models"],
		encoded["decks"],
		encoded["dconf"],
		"{}", // tags
	)
	return err
}

// createNoteTypeConfig creates the note type configuration
func (g *APKGGenerator) createNoteTypeConfig() map[string]interface{} {
	return map[string]interface{}{
		"id":    g.modelID,
		"name":  "TravelSpeak Phrase (Basic + Reverse)",
		"type":  0,
		"mod":   time.Now().Unix(),
		"usn":   -1,
		"sortf": 0,
		"did":   g.deckID,
		"req":   [][]interface{}{[]interface{}{0, "all", []int{0}}, []interface{}{1, "all", []int{1}}},
		"vers":  []int{},
		"tags":  []string{},
		"latexPre": `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}`,
		"latexPost": `\end{document}`,
		"flds": []map[string]interface{}{
			noteField("Phrase", 0, 20),
			noteField("Translation", 1, 20),
			noteField("Languages", 2, 14),
			noteField("Notes", 3, 16),
		},
		"tmpls": []map[string]interface{}{
			{
				"name":  "Forward",
				"ord":   0,
				"qfmt":  g.getFrontTemplate(),
				"afmt":  g.getBackTemplate(),
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
			{
				"name":  "Reverse",
				"ord":   1,
				"qfmt":  g.getReverseFrontTemplate(),
				"afmt":  g.getReverseBackTemplate(),
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
		},
		"css": g.getCSS(),
	}
}

func noteField(name string, ord, size int) map[string]interface{} {
	return map[string]interface{}{
		"name":   name,
		"ord":    ord,
		"sticky": false,
		"rtl":    false,
		"font":   "Arial",
		"size":   size,
		"media":  []string{},
	}
}

// getFrontTemplate returns the question template
func (g *APKGGenerator) getFrontTemplate() string {
	return `<div class="front">
<div class="languages">{{Languages}}</div>
<div class="phrase">{{Phrase}}</div>
</div>`
}

// getBackTemplate returns the answer template
func (g *APKGGenerator) getBackTemplate() string {
	return `{{FrontSide}}

<hr id="answer">

<div class="back">
<div class="translation">{{Translation}}</div>
{{#Notes}}
<div class="notes">{{Notes}}</div>
{{/Notes}}
</div>`
}

// getReverseFrontTemplate returns the question template for the reverse card
func (g *APKGGenerator) getReverseFrontTemplate() string {
	return `<div class="front">
<div class="languages">{{Languages}}</div>
<div class="translation">{{Translation}}</div>
</div>`
}

// getReverseBackTemplate returns the answer template for the reverse card
func (g *APKGGenerator) getReverseBackTemplate() string {
	return `{{FrontSide}}

<hr id="answer">

<div class="back">
<div class="phrase">{{Phrase}}</div>
{{#Notes}}
<div class="notes">{{Notes}}</div>
{{/Notes}}
</div>`
}

// getCSS returns the card styling
func (g *APKGGenerator) getCSS() string {
	return `.card {
  font-family: Arial, sans-serif;
  font-size: 20px;
  text-align: center;
  color: #333;
  background-color: white;
}

.front, .back {
  padding: 20px;
}

.languages {
  font-size: 14px;
  color: #95a5a6;
}

.phrase {
  font-size: 28px;
  font-weight: bold;
  color: #2c3e50;
  margin: 20px 0;
}

.translation {
  font-size: 32px;
  font-weight: bold;
  color: #2980b9;
  margin: 20px 0;
}

.notes {
  font-size: 16px;
  color: #7f8c8d;
  margin-top: 20px;
  font-style: italic;
}

hr#answer {
  margin: 30px 0;
  border: 0;
  border-top: 1px solid #ecf0f1;
}`
}

// insertNotesAndCards inserts a note per card plus its forward and
// reverse card
func (g *APKGGenerator) insertNotesAndCards(db *sqlx.DB) error {
	now := time.Now()

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, card := range g.cards {
		// Leave space for 2 cards per note
		noteID := now.UnixMilli() + int64(i*3)

		// Join fields with field separator (ASCII 31)
		fields := strings.Join([]string{
			html.EscapeString(card.Front),
			html.EscapeString(card.Back),
			html.EscapeString(card.SourceLanguage + " → " + card.TargetLanguage),
			html.EscapeString(card.Notes),
		}, "\x1f")

		_, err := tx.Exec(`INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			noteID,                    // id
			uuid.NewString(),          // guid
			g.modelID,                 // mid
			now.Unix(),                // mod
			-1,                        // usn
			" "+card.Tags()+" ",       // tags
			fields,                    // flds
			card.Front,                // sfld (sort field)
			fieldChecksum(card.Front), // csum
			0,                         // flags
			"",                        // data
		)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		// ord 0 is the forward template, ord 1 the reverse one
		for ord := int64(0); ord < 2; ord++ {
			_, err = tx.Exec(`INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				noteID+1+ord, // id
				noteID,       // nid
				g.deckID,     // did
				ord,          // ord
				now.Unix(),   // mod
				-1,           // usn
				0,            // type (0=new)
				0,            // queue (0=new)
				noteID+ord,   // due (position of a new card)
				0,            // ivl
				0,            // factor
				0,            // reps
				0,            // lapses
				0,            // left
				0,            // odue
				0,            // odid
				0,            // flags
				"",           // data
			)
			if err != nil {
				return fmt.Errorf("failed to insert card %d of note %d: %w", ord, i, err)
			}
		}
	}

	return tx.Commit()
}

// fieldChecksum is Anki's duplicate check: the first 8 hex digits of the
// SHA1 of the sort field, as an integer.
func fieldChecksum(field string) int64 {
	sum := sha1.Sum([]byte(field))
	return int64(binary.BigEndian.Uint32(sum[:4]))
}

// createZipPackage zips the collection and the media mapping into the .apkg
func (g *APKGGenerator) createZipPackage(tempDir, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	archive := zip.NewWriter(zipFile)
	for _, name := range []string{"collection.anki2", "media"} {
		if err := addToZip(archive, filepath.Join(tempDir, name), name); err != nil {
			return fmt.Errorf("failed to add %s: %w", name, err)
		}
	}
	if err := archive.Close(); err != nil {
		return err
	}
	return zipFile.Close()
}

func addToZip(archive *zip.Writer, path, name string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer, err := archive.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(writer, file)
	return err
}
