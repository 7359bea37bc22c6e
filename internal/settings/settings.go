// Package settings persists the selected language pair between runs.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/travelspeak/internal/language"
)

// Settings is the persisted language selection
type Settings struct {
	SourceLanguage string `yaml:"source_language"`
	TargetLanguage string `yaml:"target_language"`
}

// Defaults returns English to Spanish
func Defaults() Settings {
	return Settings{
		SourceLanguage: language.DefaultSource,
		TargetLanguage: language.DefaultTarget,
	}
}

// DefaultPath returns ~/.local/state/travelspeak/settings.yaml
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "travelspeak_settings.yaml"
	}
	return filepath.Join(home, ".local", "state", "travelspeak", "settings.yaml")
}

// File reads and writes Settings at a fixed path. Neither operation ever
// reports a failure to the caller.
type File struct {
	path   string
	logger *zap.SugaredLogger
}

// NewFile creates a settings file handle; an empty path means DefaultPath
func NewFile(path string, logger *zap.SugaredLogger) *File {
	if path == "" {
		path = DefaultPath()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &File{path: path, logger: logger}
}

// Path returns the file location
func (f *File) Path() string {
	return f.path
}

// Load returns the stored settings, or the defaults when the file is
// missing or unreadable. A language name not in the catalog is replaced by
// its default.
func (f *File) Load() Settings {
	s, err := read(f.path)
	if err != nil {
		f.logger.Debugw("Using default settings", "path", f.path, "error", err)
		return Defaults()
	}

	defaults := Defaults()
	if _, ok := language.ByName(s.SourceLanguage); !ok {
		s.SourceLanguage = defaults.SourceLanguage
	}
	if _, ok := language.ByName(s.TargetLanguage); !ok {
		s.TargetLanguage = defaults.TargetLanguage
	}
	return s
}

// Save writes s, ignoring failures
func (f *File) Save(s Settings) {
	if err := write(f.path, s); err != nil {
		f.logger.Debugw("Failed to save settings", "path", f.path, "error", err)
	}
}

func read(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return s, nil
}

func write(path string, s Settings) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
