package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"codeberg.org/snonux/travelspeak/internal/anki"
	"codeberg.org/snonux/travelspeak/internal/archive"
	"codeberg.org/snonux/travelspeak/internal/batch"
	"codeberg.org/snonux/travelspeak/internal/capability"
	"codeberg.org/snonux/travelspeak/internal/cli"
	"codeberg.org/snonux/travelspeak/internal/gui"
	"codeberg.org/snonux/travelspeak/internal/history"
	"codeberg.org/snonux/travelspeak/internal/language"
	"codeberg.org/snonux/travelspeak/internal/logging"
	"codeberg.org/snonux/travelspeak/internal/models"
	"codeberg.org/snonux/travelspeak/internal/session"
	"codeberg.org/snonux/travelspeak/internal/settings"
	"codeberg.org/snonux/travelspeak/internal/translation"
)

// ErrReported marks errors that were already shown to the user
var ErrReported = errors.New("error already reported")

// ProbeFunc initializes the external services
type ProbeFunc func(ctx context.Context, config *capability.Config, logger *zap.SugaredLogger) *capability.Capabilities

// Processor runs the travelspeak operations
type Processor struct {
	flags     *cli.Flags
	logger    *zap.SugaredLogger
	probe     ProbeFunc
	clipboard func(string) error
}

// NewProcessor creates a processor logging as configured
func NewProcessor(flags *cli.Flags) (*Processor, error) {
	logger, err := logging.New(
		stringSetting("log.level", flags.LogLevel),
		stringSetting("log.file", flags.LogFile),
	)
	if err != nil {
		return nil, err
	}

	return &Processor{
		flags:     flags,
		logger:    logger,
		probe:     capability.Probe,
		clipboard: clipboard.WriteAll,
	}, nil
}

// Close flushes the logger
func (p *Processor) Close() {
	_ = p.logger.Sync()
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	ctx := context.Background()

	caps := p.probe(ctx, p.serviceConfig(true, true), p.logger)
	defer caps.Close()

	store, err := p.openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	fallback, err := translation.NewFallback()
	if err != nil {
		return err
	}

	app, err := gui.New(&gui.Config{
		Capabilities: caps,
		Fallback:     fallback,
		History:      store,
		Settings:     p.settingsFile(),
		ExportDir:    p.exportDir(),
		Logger:       p.logger,
	})
	if err != nil {
		return err
	}
	app.Run()

	return nil
}

// ListLanguages prints the language catalog
func (p *Processor) ListLanguages() {
	for _, l := range language.All() {
		fmt.Printf("%-24s %s\n", l.Name, l.Code)
	}
}

// Probe prints which services are available
func (p *Processor) Probe(ctx context.Context) error {
	caps := p.probe(ctx, p.serviceConfig(true, true), p.logger)
	defer caps.Close()

	printService("Speech recognition", caps.SpeechInput.Err())
	printService("Text-to-speech", caps.SpeechOutput.Err())
	printService("Online translation", caps.Translator.Err())

	if caps.Translator.OK() {
		b, _ := caps.Translator.Get()
		fmt.Printf("\nTranslating with: %s\n", b.Name())
	} else {
		fmt.Printf("\nTranslating with: built-in phrase book (limited)\n")
	}
	return nil
}

func printService(name string, err error) {
	if err != nil {
		fmt.Printf("%-20s unavailable: %v\n", name+":", err)
		return
	}
	fmt.Printf("%-20s available\n", name+":")
}

// ListModels prints the OpenAI models usable with the configured key
func (p *Processor) ListModels(ctx context.Context) error {
	return models.NewLister(cli.GetOpenAIKey()).ListAvailableModels(ctx, os.Stdout)
}

// TranslateOne translates text and prints the result
func (p *Processor) TranslateOne(ctx context.Context, text string) error {
	run, err := p.start(ctx)
	if err != nil {
		return err
	}
	defer run.close()

	s := run.session
	if err := p.applyLanguages(s, text); err != nil {
		return err
	}

	s.SetInput(text)
	if err := s.Translate(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrReported, err)
	}
	fmt.Println(s.Output())

	if p.flags.Copy {
		if err := s.Copy(p.clipboard); err != nil {
			return fmt.Errorf("%w: %w", ErrReported, err)
		}
	}
	if p.flags.Speak {
		if err := run.speak(); err != nil {
			return err
		}
	}
	if p.flags.Export {
		if _, err := s.Export(); err != nil {
			return fmt.Errorf("%w: %w", ErrReported, err)
		}
	}
	return nil
}

// ProcessBatch translates every phrase of the batch file
func (p *Processor) ProcessBatch(ctx context.Context) error {
	entries, err := batch.ReadPhraseFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	run, err := p.start(ctx)
	if err != nil {
		return err
	}
	defer run.close()
	s := run.session

	if err := p.applyLanguages(s, ""); err != nil {
		return err
	}

	// Track statistics
	translatedCount := 0
	skippedCount := 0
	errorCount := 0
	var outputs []string

	for i, entry := range entries {
		fmt.Printf("\nTranslating %d/%d: %s\n", i+1, len(entries), entry.Text)

		if !entry.NeedsTranslation() {
			fmt.Printf("  Using provided translation: %s\n", entry.Translation)
			outputs = append(outputs, entry.Translation)
			skippedCount++
			continue
		}

		if p.autoDetect() {
			s.SetInput(entry.Text)
			if _, err := s.DetectSourceLanguage(); err != nil {
				errorCount++
				continue
			}
		}

		s.SetInput(entry.Text)
		if err := s.Translate(ctx); err != nil {
			errorCount++
			continue
		}
		fmt.Printf("  %s → %s: %s\n", s.Source().Name, s.Target().Name, s.Output())
		outputs = append(outputs, s.Output())
		translatedCount++

		if p.flags.Speak {
			if err := run.speak(); err != nil {
				p.logger.Debugw("Speaking failed", "phrase", entry.Text, "error", err)
			}
		}
		if p.flags.Export {
			if _, err := s.Export(); err != nil {
				p.logger.Debugw("Export failed", "phrase", entry.Text, "error", err)
			}
		}
	}

	if p.flags.Copy && len(outputs) > 0 {
		if err := p.clipboard(strings.Join(outputs, "\n")); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to copy translations: %v\n", err)
		}
	}

	// Print summary
	fmt.Printf("\n=== Batch Translation Summary ===\n")
	fmt.Printf("Total phrases: %d\n", len(entries))
	fmt.Printf("Translated: %d\n", translatedCount)
	fmt.Printf("Skipped (translation provided): %d\n", skippedCount)
	if errorCount > 0 {
		fmt.Printf("Errors: %d\n", errorCount)
	}
	fmt.Printf("=================================\n")

	return nil
}

// ArchiveExports moves the export directory into the archive
func (p *Processor) ArchiveExports() error {
	path, err := archive.ArchiveExports(p.exportDir())
	if err != nil {
		return err
	}
	fmt.Printf("Export directory archived to: %s\n", path)
	return nil
}

// ExportDeck writes the translation history as an Anki deck to output
func (p *Processor) ExportDeck(output string) error {
	if stringSetting("history.database", p.flags.HistoryDB) == "" {
		return fmt.Errorf("no history database configured: pass --history-db or set history.database")
	}

	store, err := p.openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	gen := anki.NewGenerator(&anki.GeneratorOptions{
		OutputPath:     output,
		DeckName:       p.flags.DeckName,
		IncludeHeaders: true,
	})
	added, skipped := gen.AddEntries(store.All())
	p.logger.Debugw("Collected deck cards", "added", added, "skipped", skipped)

	if err := gen.Generate(); err != nil {
		return err
	}

	_, pairs := gen.Stats()
	fmt.Printf("Exported %d cards to %s\n", added, output)
	names := make([]string, 0, len(pairs))
	for pair := range pairs {
		names = append(names, pair)
	}
	sort.Strings(names)
	for _, pair := range names {
		fmt.Printf("  %s: %d\n", pair, pairs[pair])
	}
	if skipped > 0 {
		fmt.Printf("Skipped %d duplicate or untranslated entries\n", skipped)
	}
	return nil
}

func (p *Processor) autoDetect() bool {
	return strings.EqualFold(p.flags.From, "auto")
}

// applyLanguages applies --from and --to. With --from auto and text, the
// source language is detected from text.
func (p *Processor) applyLanguages(s *session.Session, text string) error {
	switch {
	case p.autoDetect():
		if text != "" {
			s.SetInput(text)
			if _, err := s.DetectSourceLanguage(); err != nil {
				return fmt.Errorf("%w: %w", ErrReported, err)
			}
		}
	case p.flags.From != "":
		if err := s.SetSourceLanguage(p.flags.From); err != nil {
			return err
		}
	}

	if p.flags.To != "" {
		if err := s.SetTargetLanguage(p.flags.To); err != nil {
			return err
		}
	}
	return nil
}

// cliRun is a session driven by a session.Loop on the calling goroutine
type cliRun struct {
	session *session.Session
	loop    *session.Loop
	caps    *capability.Capabilities
	store   history.Store
}

func (p *Processor) start(ctx context.Context) (*cliRun, error) {
	caps := p.probe(ctx, p.serviceConfig(false, p.flags.Speak), p.logger)
	if p.flags.Speak && !caps.SpeechOutput.OK() {
		fmt.Fprintf(os.Stderr, "Warning: Text-to-speech unavailable: %v\n", caps.SpeechOutput.Err())
	}
	if !caps.Translator.OK() {
		fmt.Fprintf(os.Stderr, "Warning: Online translation unavailable, using the built-in phrase book: %v\n",
			caps.Translator.Err())
	}

	store, err := p.openHistory()
	if err != nil {
		caps.Close()
		return nil, err
	}

	fallback, err := translation.NewFallback()
	if err != nil {
		caps.Close()
		store.Close()
		return nil, err
	}

	loop := session.NewLoop(0)
	opts := session.Options{
		Backend:   caps.Backend(fallback),
		History:   store,
		Settings:  p.settingsFile(),
		ExportDir: p.exportDir(),
		Post:      loop.Post,
		Callbacks: cliCallbacks(),
		Logger:    p.logger,
	}
	if speaker, ok := caps.SpeechOutput.Get(); ok {
		opts.Speaker = speaker
	}

	s, err := session.New(opts)
	if err != nil {
		caps.Close()
		store.Close()
		return nil, err
	}

	return &cliRun{session: s, loop: loop, caps: caps, store: store}, nil
}

// speak reads the output aloud and waits until it is done
func (r *cliRun) speak() error {
	r.session.Speak()
	r.session.Wait()
	r.loop.RunPending()

	if r.session.Status() == session.StatusError {
		return ErrReported
	}
	return nil
}

func (r *cliRun) close() {
	r.session.Close()
	r.session.Wait()
	r.loop.RunPending()
	r.store.Close()
	r.caps.Close()
}

func cliCallbacks() session.Callbacks {
	return session.Callbacks{
		OnWarning: func(message string) {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", message)
		},
		OnError: func(message string) {
			fmt.Fprintln(os.Stderr, message)
		},
		OnInfo: func(message string) {
			fmt.Println(message)
		},
	}
}

func (p *Processor) openHistory() (history.Store, error) {
	path := stringSetting("history.database", p.flags.HistoryDB)
	if path == "" {
		return history.NewMemoryStore(), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return history.OpenSQLStore(path)
}

func (p *Processor) settingsFile() *settings.File {
	return settings.NewFile(stringSetting("settings.file", p.flags.SettingsFile), p.logger)
}

func (p *Processor) exportDir() string {
	return stringSetting("export.directory", p.flags.ExportDir)
}
