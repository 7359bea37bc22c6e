package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestCreateRootCommand(t *testing.T) {
	resetViper(t)
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	if cmd.Use != "travelspeak" {
		t.Errorf("Expected Use to be 'travelspeak', got %s", cmd.Use)
	}
	if !strings.Contains(cmd.Short, "Travel Translator") {
		t.Errorf("Expected Short description to contain 'Travel Translator'")
	}

	persistent := []string{
		"config", "log-level", "log-file",
		"provider", "openai-model", "gemini-model", "cache-ttl",
		"speech-input", "speech-output", "tts-model", "openai-voice", "volume",
		"history-db", "settings", "export-dir",
	}
	for _, name := range persistent {
		t.Run("flag_"+name, func(t *testing.T) {
			if cmd.PersistentFlags().Lookup(name) == nil {
				t.Errorf("Expected persistent flag %s to exist", name)
			}
		})
	}

	for _, name := range []string{"list-models", "archive"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected flag %s to exist", name)
		}
	}
}

func TestCreateTranslateCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateTranslateCommand(flags)

	if cmd.Use != "translate [text]" {
		t.Errorf("Unexpected Use %q", cmd.Use)
	}

	for _, name := range []string{"from", "to", "batch", "copy", "speak", "export"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected flag %s to exist", name)
		}
	}

	if err := cmd.ParseFlags([]string{"--from", "auto", "--to", "fr", "--copy"}); err != nil {
		t.Fatal(err)
	}
	if flags.From != "auto" || flags.To != "fr" || !flags.Copy || flags.Speak {
		t.Errorf("Parsed flags = %+v", flags)
	}

	if err := cmd.Args(cmd, []string{"one", "two"}); err == nil {
		t.Error("Expected error for two arguments")
	}
}

func TestCreateDeckCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateDeckCommand(flags)

	if cmd.Use != "deck OUTPUT" {
		t.Errorf("Unexpected Use %q", cmd.Use)
	}
	if err := cmd.Args(cmd, nil); err == nil {
		t.Error("Expected error without an output file")
	}
	if err := cmd.Args(cmd, []string{"phrases.apkg"}); err != nil {
		t.Errorf("Unexpected error for one argument: %v", err)
	}

	if flags.DeckName != "TravelSpeak Phrases" {
		t.Errorf("Default deck name = %q", flags.DeckName)
	}
	if err := cmd.ParseFlags([]string{"--deck-name", "Lisbon"}); err != nil {
		t.Fatal(err)
	}
	if flags.DeckName != "Lisbon" {
		t.Errorf("DeckName = %q, want Lisbon", flags.DeckName)
	}
}

func TestSubcommands(t *testing.T) {
	tests := []struct {
		cmd *cobra.Command
		use string
	}{
		{CreateLanguagesCommand(), "languages"},
		{CreateProbeCommand(), "probe"},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			if tt.cmd.Use != tt.use {
				t.Errorf("Use = %q, want %q", tt.cmd.Use, tt.use)
			}
			if err := tt.cmd.Args(tt.cmd, []string{"extra"}); err == nil {
				t.Error("Expected error for extra argument")
			}
		})
	}
}

func TestSetupFlags(t *testing.T) {
	resetViper(t)
	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	defaults := map[string]string{
		"settings":      filepath.Join(StateDir(), "settings.yaml"),
		"export-dir":    filepath.Join(StateDir(), "exports"),
		"provider":      "openai",
		"speech-output": "openai",
		"cache-ttl":     "3600",
		"history-db":    "",
	}
	for name, want := range defaults {
		var flag *pflag.Flag
		if flag = cmd.PersistentFlags().Lookup(name); flag == nil {
			t.Errorf("%s flag not found", name)
			continue
		}
		if flag.DefValue != want {
			t.Errorf("Default of %s = %q, want %q", name, flag.DefValue, want)
		}
	}

	home, _ := os.UserHomeDir()
	if StateDir() != filepath.Join(home, ".local", "state", "travelspeak") {
		t.Errorf("StateDir() = %s", StateDir())
	}
}

func TestInitConfig(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
	}{
		{
			name: "with config file",
			setupFunc: func(t *testing.T) string {
				cfgPath := filepath.Join(t.TempDir(), "test-config.yaml")
				content := `translation:
  provider: gemini
  cache_ttl: 120
openai_key: test-key
`
				if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
		},
		{
			name: "without config file",
			setupFunc: func(t *testing.T) string {
				t.Setenv("HOME", t.TempDir())
				return ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)

			cfgPath := tt.setupFunc(t)
			InitConfig(cfgPath)

			t.Setenv("TRAVELSPEAK_TEST_VAR", "test-value")
			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}

			if cfgPath != "" {
				if viper.GetString("translation.provider") != "gemini" || viper.GetInt("translation.cache_ttl") != 120 {
					t.Error("Config file values not loaded")
				}
			}
		})
	}
}

func TestGetOpenAIKey(t *testing.T) {
	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{"from environment", "env-test-key", "config-test-key", "env-test-key"},
		{"from config when no env", "", "config-test-key", "config-test-key"},
		{"empty when neither set", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv("OPENAI_API_KEY", tt.envKey)

			if tt.configKey != "" {
				viper.Set("openai_key", tt.configKey)
			}

			if got := GetOpenAIKey(); got != tt.expected {
				t.Errorf("GetOpenAIKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetGeminiKey(t *testing.T) {
	tests := []struct {
		name      string
		gemini    string
		google    string
		configKey string
		expected  string
	}{
		{"gemini env first", "gemini-key", "google-key", "config-key", "gemini-key"},
		{"google env second", "", "google-key", "config-key", "google-key"},
		{"config last", "", "", "config-key", "config-key"},
		{"empty when nothing set", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv("GEMINI_API_KEY", tt.gemini)
			t.Setenv("GOOGLE_API_KEY", tt.google)

			if tt.configKey != "" {
				viper.Set("gemini_key", tt.configKey)
			}

			if got := GetGeminiKey(); got != tt.expected {
				t.Errorf("GetGeminiKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBindFlagsToViper(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	cmd.PersistentFlags().Set("provider", "gemini")
	cmd.PersistentFlags().Set("history-db", "/test/history.db")
	cmd.PersistentFlags().Set("volume", "0.5")

	tests := []struct {
		key  string
		want string
	}{
		{"translation.provider", "gemini"},
		{"history.database", "/test/history.db"},
		{"speech.volume", "0.5"},
		{"speech.openai_voice", "alloy"},
	}
	for _, tt := range tests {
		if got := viper.GetString(tt.key); got != tt.want {
			t.Errorf("viper %s = %q, want %q", tt.key, got, tt.want)
		}
	}
}
