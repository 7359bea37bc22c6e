// Package export writes a translation to a timestamped text file.
package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileName returns translation_YYYYMMDD_HHMMSS.txt for t
func FileName(t time.Time) string {
	return "translation_" + t.Format("20060102_150405") + ".txt"
}

// Format renders the file body
func Format(sourceLanguage, targetLanguage, original, translated string) string {
	return fmt.Sprintf("Original (%s):\n%s\n\nTranslation (%s):\n%s\n",
		sourceLanguage, original, targetLanguage, translated)
}

// Write saves the translation into dir and returns the file name it used.
// Existing files are kept, a second export within the same second gets a
// numbered name such as translation_20240709_080305_2.txt.
func Write(dir string, now time.Time, sourceLanguage, targetLanguage, original, translated string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	content := []byte(Format(sourceLanguage, targetLanguage, original, translated))
	base := FileName(now)
	for n := 1; ; n++ {
		name := base
		if n > 1 {
			name = fmt.Sprintf("%s_%d.txt", strings.TrimSuffix(base, ".txt"), n)
		}

		f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to write export file: %w", err)
		}

		_, err = f.Write(content)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return "", fmt.Errorf("failed to write export file: %w", err)
		}
		return name, nil
	}
}
