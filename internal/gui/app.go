package gui

import (
	"context"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"go.uber.org/zap"

	"codeberg.org/snonux/travelspeak/internal"
	"codeberg.org/snonux/travelspeak/internal/capability"
	"codeberg.org/snonux/travelspeak/internal/history"
	"codeberg.org/snonux/travelspeak/internal/language"
	"codeberg.org/snonux/travelspeak/internal/session"
	"codeberg.org/snonux/travelspeak/internal/settings"
	"codeberg.org/snonux/travelspeak/internal/translation"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	sourceSelect *widget.Select
	targetSelect *widget.Select
	inputEntry   *InputEntry
	outputEntry  *widget.Entry
	statusLabel  *widget.Label
	historyList  *widget.List

	// Action buttons
	swapButton         *ttwidget.Button
	detectButton       *ttwidget.Button
	recordButton       *ttwidget.Button
	clearButton        *ttwidget.Button
	translateButton    *ttwidget.Button
	speakButton        *ttwidget.Button
	copyButton         *ttwidget.Button
	saveButton         *ttwidget.Button
	clearHistoryButton *ttwidget.Button
	helpButton         *ttwidget.Button

	session *session.Session
	entries []history.Entry

	// syncing is set while selections are updated from the session, so the
	// select callbacks do not echo the change back.
	syncing bool

	config *Config
	logger *zap.SugaredLogger
	ctx    context.Context
	cancel context.CancelFunc
}

// Config holds GUI application configuration
type Config struct {
	Capabilities *capability.Capabilities
	// Fallback translates when no online backend is available
	Fallback  translation.Backend
	History   history.Store
	Settings  *settings.File
	ExportDir string
	Logger    *zap.SugaredLogger
	// Post defaults to fyne.Do
	Post session.Poster
}

// New creates a new GUI application
func New(config *Config) (*Application, error) {
	myApp := app.NewWithID("org.codeberg.snonux.travelspeak")
	return newApplication(myApp, config)
}

func newApplication(fyneApp fyne.App, config *Config) (*Application, error) {
	if config == nil || config.Capabilities == nil {
		return nil, errors.New("gui needs probed capabilities")
	}
	if config.Post == nil {
		config.Post = fyne.Do
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &Application{
		app:    fyneApp,
		config: config,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	caps := config.Capabilities
	opts := session.Options{
		Backend:   caps.Backend(config.Fallback),
		History:   config.History,
		Settings:  config.Settings,
		ExportDir: config.ExportDir,
		Post:      config.Post,
		Callbacks: a.callbacks(),
		Logger:    logger,
	}
	if in, ok := caps.SpeechInput.Get(); ok {
		opts.Microphone = in.Microphone
		opts.Recognizer = in.Recognizer
	}
	if speaker, ok := caps.SpeechOutput.Get(); ok {
		opts.Speaker = speaker
	}

	s, err := session.New(opts)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	a.session = s
	a.entries = s.History()

	a.setupUI()
	a.setupKeyboardShortcuts()
	a.window.SetCloseIntercept(a.onClose)

	return a, nil
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("TravelSpeak v%s - Universal Language Translator", internal.Version))
	a.window.Resize(fyne.NewSize(900, 700))

	// Language selection
	a.sourceSelect = newLanguageSelect(func(name string) {
		if !a.syncing {
			a.session.SetSourceLanguage(name)
		}
	})
	a.targetSelect = newLanguageSelect(func(name string) {
		if !a.syncing {
			a.session.SetTargetLanguage(name)
		}
	})
	a.syncLanguages(a.session.Source(), a.session.Target())

	a.swapButton = ttwidget.NewButtonWithIcon("", theme.ViewRefreshIcon(), a.session.SwapLanguages)
	a.detectButton = ttwidget.NewButtonWithIcon("", theme.SearchIcon(), a.onDetect)

	languageRow := container.NewBorder(nil, nil, nil,
		container.NewHBox(a.swapButton, a.detectButton),
		container.NewGridWithColumns(4,
			widget.NewLabel("From:"), a.sourceSelect,
			widget.NewLabel("To:"), a.targetSelect,
		),
	)

	// Input section
	a.inputEntry = NewInputEntry()
	a.inputEntry.SetPlaceHolder("Type or record text to translate...")
	a.inputEntry.Wrapping = fyne.TextWrapWord
	a.inputEntry.SetMinRowsVisible(5)
	a.inputEntry.OnChanged = a.session.SetInput
	a.inputEntry.SetOnSubmit(a.onTranslate)
	a.inputEntry.SetOnEscape(func() { a.window.Canvas().Unfocus() })

	a.recordButton = ttwidget.NewButtonWithIcon("Start Recording", theme.MediaRecordIcon(), a.session.ToggleRecording)
	a.clearButton = ttwidget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), a.session.ClearInput)
	a.translateButton = ttwidget.NewButtonWithIcon("Translate", theme.ConfirmIcon(), a.onTranslate)
	a.translateButton.Importance = widget.HighImportance
	a.statusLabel = widget.NewLabel(a.session.Status())

	if !a.session.CanRecord() {
		a.recordButton.Disable()
	}

	controlRow := container.NewHBox(
		a.recordButton, a.clearButton, a.translateButton,
		layout.NewSpacer(), a.statusLabel,
	)

	// Output section
	a.outputEntry = widget.NewMultiLineEntry()
	a.outputEntry.Wrapping = fyne.TextWrapWord
	a.outputEntry.SetMinRowsVisible(5)

	a.speakButton = ttwidget.NewButtonWithIcon("Speak", theme.VolumeUpIcon(), a.session.Speak)
	a.copyButton = ttwidget.NewButtonWithIcon("Copy", theme.ContentCopyIcon(), a.onCopy)
	a.saveButton = ttwidget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), a.onSave)
	if !a.session.CanSpeak() {
		a.speakButton.Disable()
	}

	outputRow := container.NewHBox(a.speakButton, a.copyButton, a.saveButton)

	// History section
	a.historyList = newHistoryList(func() []history.Entry { return a.entries }, a.onRecall)
	a.clearHistoryButton = ttwidget.NewButtonWithIcon("Clear History", theme.DeleteIcon(), a.onClearHistory)
	a.helpButton = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)

	historySection := container.NewBorder(
		container.NewHBox(widget.NewLabel("Translation History"), layout.NewSpacer(), a.clearHistoryButton, a.helpButton),
		nil, nil, nil,
		a.historyList,
	)

	top := container.NewVBox(
		languageRow,
		widget.NewLabel("Input Text:"),
		a.inputEntry,
		controlRow,
		widget.NewSeparator(),
		widget.NewLabel("Translation:"),
		a.outputEntry,
		outputRow,
		widget.NewSeparator(),
	)
	content := container.NewBorder(top, nil, nil, nil, historySection)

	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()
}

func (a *Application) setupTooltips() {
	a.swapButton.SetToolTip("Swap languages (w)")
	a.detectButton.SetToolTip("Detect input language (d)")
	a.recordButton.SetToolTip("Start or stop speech recognition (r)")
	a.clearButton.SetToolTip("Clear input (l)")
	a.translateButton.SetToolTip("Translate (t or Ctrl+Enter)")
	a.speakButton.SetToolTip("Read translation aloud (s)")
	a.copyButton.SetToolTip("Copy translation (c)")
	a.saveButton.SetToolTip("Save translation to file (x)")
	a.clearHistoryButton.SetToolTip("Clear translation history")
	a.helpButton.SetToolTip("Show hotkeys (h)")
}

// Run shows the window, reports unavailable services and blocks until the
// application quits
func (a *Application) Run() {
	if summary := a.config.Capabilities.Summary(); summary != "" {
		dialog.ShowInformation("Service Status", summary, a.window)
	}
	a.window.ShowAndRun()
}

func (a *Application) callbacks() session.Callbacks {
	return session.Callbacks{
		OnStatus: func(status string) {
			a.statusLabel.SetText(status)
		},
		OnWarning: func(message string) {
			dialog.ShowInformation("Warning", message, a.window)
		},
		OnError: func(message string) {
			dialog.ShowError(errors.New(message), a.window)
		},
		OnInfo: func(message string) {
			dialog.ShowInformation("Success", message, a.window)
		},
		OnInputChanged: func(text string) {
			a.inputEntry.SetText(text)
		},
		OnOutputChanged: func(text string) {
			a.outputEntry.SetText(text)
		},
		OnLanguagesChanged: a.syncLanguages,
		OnHistoryChanged: func(entries []history.Entry) {
			a.entries = entries
			a.historyList.Refresh()
			if len(entries) > 0 {
				a.historyList.ScrollToBottom()
			}
		},
		OnRecordingChanged: func(recording bool) {
			if recording {
				a.recordButton.SetText("Stop Recording")
				a.recordButton.SetIcon(theme.MediaStopIcon())
				return
			}
			a.recordButton.SetText("Start Recording")
			a.recordButton.SetIcon(theme.MediaRecordIcon())
		},
	}
}

func (a *Application) syncLanguages(source, target language.Language) {
	a.syncing = true
	defer func() { a.syncing = false }()

	a.sourceSelect.SetSelected(source.Name)
	a.targetSelect.SetSelected(target.Name)
}

func (a *Application) onTranslate() {
	a.session.TranslateAsync(a.ctx)
}

func (a *Application) onDetect() {
	if _, err := a.session.DetectSourceLanguage(); err != nil {
		a.logger.Debugw("Language detection failed", "error", err)
	}
}

func (a *Application) onCopy() {
	a.session.Copy(func(text string) error {
		a.window.Clipboard().SetContent(text)
		return nil
	})
}

func (a *Application) onSave() {
	if _, err := a.session.Export(); err != nil {
		a.logger.Debugw("Export failed", "error", err)
	}
}

func (a *Application) onRecall(index int) {
	if err := a.session.Recall(index); err != nil {
		dialog.ShowError(err, a.window)
	}
}

func (a *Application) onClearHistory() {
	dialog.ShowConfirm("Clear History", "Remove all translations from the history?", func(ok bool) {
		if ok {
			a.session.ClearHistory()
		}
	}, a.window)
}

// onClose stops recording, saves the settings and quits
func (a *Application) onClose() {
	a.session.Close()
	a.cancel()
	a.window.Close()
}
