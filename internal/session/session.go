package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/travelspeak/internal"
	"codeberg.org/snonux/travelspeak/internal/audio"
	"codeberg.org/snonux/travelspeak/internal/history"
	"codeberg.org/snonux/travelspeak/internal/language"
	"codeberg.org/snonux/travelspeak/internal/settings"
	"codeberg.org/snonux/travelspeak/internal/speech"
	"codeberg.org/snonux/travelspeak/internal/translation"
)

// User facing messages
const (
	StatusReady            = "Ready"
	StatusTranslating      = "Translating..."
	StatusComplete         = "Translation complete"
	StatusCompleteLimited  = "Translation complete (limited functionality)"
	StatusListening        = "Listening..."
	StatusSpeaking         = "Speaking..."
	StatusCopied           = "Copied to clipboard"
	StatusHistoryCleared   = "History cleared"
	StatusError            = "Error occurred"
	WarnEmptyInput         = "Please enter text to translate or use speech recognition."
	WarnNothingToSpeak     = "No translation to speak."
	WarnNothingToCopy      = "No translation to copy."
	WarnNothingToSave      = "No translation to save."
	WarnNothingToDetect    = "Please enter some text to detect its language."
	WarnDetectFailed       = "Could not detect the input language."
	MsgSpeechInputMissing  = "Speech recognition is not available."
	MsgSpeechOutputMissing = "Text-to-speech is not available."
	translationErrorPrefix = "Translation error: "
	recognitionErrorPrefix = "Speech recognition error: "
	synthesisErrorPrefix   = "TTS error: "
	saveErrorPrefix        = "Save error: "
	historyErrorPrefix     = "History error: "
	clipboardErrorPrefix   = "Clipboard error: "
)

var (
	// ErrEmptyInput is returned when an operation needs text and there is none.
	ErrEmptyInput = errors.New("nothing to process")

	// ErrUnknownLanguage is returned for names outside the catalog.
	ErrUnknownLanguage = errors.New("unknown language")
)

// Callbacks notify the presentation layer. Every callback runs on the
// owning goroutine; nil callbacks are skipped.
type Callbacks struct {
	OnStatus           func(status string)
	OnWarning          func(message string)
	OnError            func(message string)
	OnInfo             func(message string)
	OnInputChanged     func(text string)
	OnOutputChanged    func(text string)
	OnLanguagesChanged func(source, target language.Language)
	OnHistoryChanged   func(entries []history.Entry)
	OnRecordingChanged func(recording bool)
}

// Options configure a Session. Backend and Post are required; a nil
// Microphone, Recognizer or Speaker disables the matching feature.
type Options struct {
	Backend    translation.Backend
	History    history.Store
	Settings   *settings.File
	Microphone speech.Microphone
	Recognizer speech.Recognizer
	Speaker    audio.Provider
	Capture    *speech.CaptureOptions
	ExportDir  string
	Post       Poster
	Callbacks  Callbacks
	Logger     *zap.SugaredLogger
	Now        func() time.Time
}

// Session is the state of one translator window
type Session struct {
	backend  translation.Backend
	history  history.Store
	settings *settings.File
	mic      speech.Microphone
	rec      speech.Recognizer
	speaker  audio.Provider
	capOpts  speech.CaptureOptions
	export   string
	post     Poster
	cb       Callbacks
	logger   *zap.SugaredLogger
	now      func() time.Time

	source    language.Language
	target    language.Language
	input     string
	output    string
	recording bool
	status    string

	// capture stays set until the capture goroutine has reported back, so
	// at most one loop runs even while a stop is pending.
	capture     *captureTask
	translating bool

	// sourceCode mirrors source.Code for the capture goroutine.
	sourceCode atomic.Value
	speakMu    sync.Mutex
	workers    sync.WaitGroup
}

// New creates a session, restoring the language pair from settings
func New(opts Options) (*Session, error) {
	if opts.Backend == nil {
		return nil, translation.ErrBackendUnavailable
	}
	if opts.Post == nil {
		return nil, fmt.Errorf("session needs a poster")
	}

	s := &Session{
		backend:  opts.Backend,
		history:  opts.History,
		settings: opts.Settings,
		mic:      opts.Microphone,
		rec:      opts.Recognizer,
		speaker:  opts.Speaker,
		capOpts:  speech.DefaultCaptureOptions(),
		export:   opts.ExportDir,
		post:     opts.Post,
		cb:       opts.Callbacks,
		logger:   opts.Logger,
		now:      opts.Now,
		status:   StatusReady,
	}
	if s.history == nil {
		s.history = history.NewMemoryStore()
	}
	if opts.Capture != nil {
		s.capOpts = *opts.Capture
	}
	if s.logger == nil {
		s.logger = zap.NewNop().Sugar()
	}
	if s.now == nil {
		s.now = time.Now
	}

	stored := settings.Defaults()
	if s.settings != nil {
		stored = s.settings.Load()
	}
	s.source, _ = language.ByName(stored.SourceLanguage)
	s.target, _ = language.ByName(stored.TargetLanguage)
	s.sourceCode.Store(s.source.Code)

	return s, nil
}

// SetCallbacks replaces the presentation callbacks
func (s *Session) SetCallbacks(cb Callbacks) {
	s.cb = cb
}

// Source returns the selected source language
func (s *Session) Source() language.Language { return s.source }

// Target returns the selected target language
func (s *Session) Target() language.Language { return s.target }

// Input returns the input buffer
func (s *Session) Input() string { return s.input }

// Output returns the last translation
func (s *Session) Output() string { return s.output }

// Status returns the last status message
func (s *Session) Status() string { return s.status }

// IsRecording reports whether recording is switched on
func (s *Session) IsRecording() bool { return s.recording }

// Backend returns the installed translation backend
func (s *Session) Backend() translation.Backend { return s.backend }

// CanRecord reports whether speech input is available
func (s *Session) CanRecord() bool { return s.mic != nil && s.rec != nil }

// CanSpeak reports whether speech output is available
func (s *Session) CanSpeak() bool { return s.speaker != nil }

// SetSourceLanguage selects the source language by name or code
func (s *Session) SetSourceLanguage(name string) error {
	l, ok := language.Resolve(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLanguage, name)
	}
	s.setLanguages(l, s.target)
	return nil
}

// SetTargetLanguage selects the target language by name or code
func (s *Session) SetTargetLanguage(name string) error {
	l, ok := language.Resolve(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLanguage, name)
	}
	s.setLanguages(s.source, l)
	return nil
}

// SwapLanguages exchanges source and target. Input and output are kept.
func (s *Session) SwapLanguages() {
	s.setLanguages(s.target, s.source)
}

// DetectSourceLanguage sets the source language from the input text
func (s *Session) DetectSourceLanguage() (language.Language, error) {
	if strings.TrimSpace(s.input) == "" {
		s.warn(WarnNothingToDetect)
		return language.Language{}, ErrEmptyInput
	}

	l, ok := language.Detect(s.input)
	if !ok {
		s.warn(WarnDetectFailed)
		return language.Language{}, fmt.Errorf("%w: detection not reliable", ErrUnknownLanguage)
	}
	s.setLanguages(l, s.target)
	s.setStatus("Detected " + l.Name)
	return l, nil
}

func (s *Session) setLanguages(source, target language.Language) {
	s.source, s.target = source, target
	s.sourceCode.Store(source.Code)
	if s.cb.OnLanguagesChanged != nil {
		s.cb.OnLanguagesChanged(source, target)
	}
}

// SetInput replaces the input buffer. It does not notify OnInputChanged,
// the caller already shows the text.
func (s *Session) SetInput(text string) {
	s.input = text
}

// ClearInput empties the input buffer
func (s *Session) ClearInput() {
	s.setInput("")
}

func (s *Session) setInput(text string) {
	s.input = text
	if s.cb.OnInputChanged != nil {
		s.cb.OnInputChanged(text)
	}
}

func (s *Session) setOutput(text string) {
	s.output = text
	if s.cb.OnOutputChanged != nil {
		s.cb.OnOutputChanged(text)
	}
}

// Copy hands the output to write, a clipboard writer of the presentation
func (s *Session) Copy(write func(string) error) error {
	text := strings.TrimSpace(s.output)
	if text == "" {
		s.warn(WarnNothingToCopy)
		return ErrEmptyInput
	}
	if err := write(text); err != nil {
		s.fail(clipboardErrorPrefix + err.Error())
		return err
	}
	s.setStatus(StatusCopied)
	return nil
}

// Close stops recording and saves the language pair
func (s *Session) Close() {
	s.StopRecording()
	if s.settings != nil {
		s.settings.Save(settings.Settings{
			SourceLanguage: s.source.Name,
			TargetLanguage: s.target.Name,
		})
	}
}

// Wait blocks until every background task has posted its result. It must
// not be called on a GUI event loop.
func (s *Session) Wait() {
	s.workers.Wait()
}

func (s *Session) setStatus(status string) {
	s.status = status
	if s.cb.OnStatus != nil {
		s.cb.OnStatus(status)
	}
}

func (s *Session) warn(message string) {
	s.logger.Debugw("Validation warning", "message", message)
	if s.cb.OnWarning != nil {
		s.cb.OnWarning(message)
	}
}

func (s *Session) fail(message string) {
	s.logger.Errorw("Operation failed", "message", message)
	s.setStatus(StatusError)
	if s.cb.OnError != nil {
		s.cb.OnError(message)
	}
}

func (s *Session) info(message string) {
	if s.cb.OnInfo != nil {
		s.cb.OnInfo(message)
	}
}

// background runs fn on a new goroutine tracked by Wait
func (s *Session) background(fn func()) {
	s.workers.Add(1)
	go func() {
		defer s.workers.Done()
		fn()
	}()
}

func appendRecognized(input, text string) string {
	return internal.JoinWords(input, text)
}
