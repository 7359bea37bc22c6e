package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/travelspeak/internal"
)

// StateDir is where travelspeak keeps its files unless configured otherwise
func StateDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "travelspeak")
}

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "travelspeak",
		Short: "Speech-enabled Travel Translator",
		Long: `travelspeak translates typed or spoken phrases between 70 languages.

It recognizes speech with OpenAI Whisper, translates with OpenAI or Gemini
and reads translations aloud. Without network services it falls back to a
small built-in phrase book.

Examples:
  travelspeak                                  # Launch interactive GUI (default)
  travelspeak translate --to French "hello"    # Translate one phrase
  travelspeak translate --batch phrases.txt    # Translate phrases from file
  travelspeak languages                        # List supported languages
  travelspeak deck phrases.apkg                # Export history as an Anki deck
  travelspeak --archive                        # Archive exported translations`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

// CreateTranslateCommand creates the translate subcommand
func CreateTranslateCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text from the command line",
		Long: `Translate a phrase, or every phrase of a batch file, and print the result.

The source language may be "auto" to detect it from the text.`,
		Args: cobra.MaximumNArgs(1),
	}

	cmd.Flags().StringVar(&flags.From, "from", "", "Source language name or code, or auto (default: last used)")
	cmd.Flags().StringVar(&flags.To, "to", "", "Target language name or code (default: last used)")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate phrases from file (one per line)")
	cmd.Flags().BoolVar(&flags.Copy, "copy", false, "Copy the translation to the clipboard")
	cmd.Flags().BoolVar(&flags.Speak, "speak", false, "Read the translation aloud")
	cmd.Flags().BoolVar(&flags.Export, "export", false, "Save the translation to the export directory")

	return cmd
}

// CreateDeckCommand creates the deck subcommand
func CreateDeckCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck OUTPUT",
		Short: "Export the translation history as an Anki deck",
		Long: `Export every translation of the history database as flashcards.

An OUTPUT ending in .apkg is written as an Anki package, anything else as a
CSV file for Anki's import dialog. Phrases the built-in phrase book could not
translate are left out.`,
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name inside the Anki package")

	return cmd
}

// CreateLanguagesCommand creates the languages subcommand
func CreateLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
	}
}

// CreateProbeCommand creates the probe subcommand
func CreateProbeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check which speech and translation services are available",
		Args:  cobra.NoArgs,
	}
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	stateDir := StateDir()

	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.travelspeak.yaml)")
	pf.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	pf.StringVar(&flags.LogFile, "log-file", "", "Write logs to file instead of stderr")

	// Translation flags
	pf.StringVar(&flags.Provider, "provider", flags.Provider, "Translation backend: openai, gemini or fallback")
	pf.StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model used for translation")
	pf.StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model used for translation")
	pf.IntVar(&flags.CacheTTL, "cache-ttl", flags.CacheTTL, "Seconds to cache translations (0 disables the cache)")

	// Speech flags
	pf.StringVar(&flags.SpeechInput, "speech-input", flags.SpeechInput, "Speech recognition: whisper or none")
	pf.StringVar(&flags.SpeechOutput, "speech-output", flags.SpeechOutput, "Speech output: openai, espeak or none")
	pf.StringVar(&flags.TTSModel, "tts-model", flags.TTSModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	pf.StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, coral, echo, fable, onyx, nova, sage, shimmer")
	pf.Float64Var(&flags.Volume, "volume", flags.Volume, "Speech volume (0.0 to 1.0)")

	// Storage flags
	pf.StringVar(&flags.HistoryDB, "history-db", "", "Keep history in this SQLite database (default: in memory)")
	pf.StringVar(&flags.SettingsFile, "settings", filepath.Join(stateDir, "settings.yaml"), "Settings file")
	pf.StringVar(&flags.ExportDir, "export-dir", filepath.Join(stateDir, "exports"), "Export directory")

	// Local flags
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the export directory into the archive and exit")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	viper.BindPFlag("translation.provider", pf.Lookup("provider"))
	viper.BindPFlag("translation.openai_model", pf.Lookup("openai-model"))
	viper.BindPFlag("translation.gemini_model", pf.Lookup("gemini-model"))
	viper.BindPFlag("translation.cache_ttl", pf.Lookup("cache-ttl"))
	viper.BindPFlag("speech.input", pf.Lookup("speech-input"))
	viper.BindPFlag("speech.output", pf.Lookup("speech-output"))
	viper.BindPFlag("speech.tts_model", pf.Lookup("tts-model"))
	viper.BindPFlag("speech.openai_voice", pf.Lookup("openai-voice"))
	viper.BindPFlag("speech.volume", pf.Lookup("volume"))
	viper.BindPFlag("history.database", pf.Lookup("history-db"))
	viper.BindPFlag("settings.file", pf.Lookup("settings"))
	viper.BindPFlag("export.directory", pf.Lookup("export-dir"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("log.file", pf.Lookup("log-file"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".travelspeak" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".travelspeak")
	}

	// Environment variables
	viper.SetEnvPrefix("TRAVELSPEAK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}
	return viper.GetString("gemini_key")
}
