package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// PhraseEntry is one line of a phrase file
type PhraseEntry struct {
	Text string
	// Translation is set when the file already provides one; such entries
	// are not sent to the translation backend.
	Translation string
}

// NeedsTranslation reports whether the entry still has to be translated
func (e PhraseEntry) NeedsTranslation() bool {
	return e.Translation == ""
}

// ReadPhraseFile reads phrases from a file, one per line.
// Supports formats:
// - Phrase only: "where is the station" (will be translated)
// - With translation: "thank you = gracias" (kept as given)
// Blank lines and lines starting with '#' are ignored.
func ReadPhraseFile(filename string) ([]PhraseEntry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read phrase file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads phrase entries from r
func Parse(r io.Reader) ([]PhraseEntry, error) {
	var entries []PhraseEntry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		text, translation, found := strings.Cut(line, "=")
		if !found {
			entries = append(entries, PhraseEntry{Text: line})
			continue
		}

		text = strings.TrimSpace(text)
		translation = strings.TrimSpace(translation)
		if text == "" {
			// Nothing to translate from
			continue
		}
		entries = append(entries, PhraseEntry{Text: text, Translation: translation})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse phrase file: %w", err)
	}

	return entries, nil
}
