package gui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"codeberg.org/snonux/travelspeak/internal/audio"
	"codeberg.org/snonux/travelspeak/internal/capability"
	"codeberg.org/snonux/travelspeak/internal/session"
	"codeberg.org/snonux/travelspeak/internal/settings"
	"codeberg.org/snonux/travelspeak/internal/testutil"
	"codeberg.org/snonux/travelspeak/internal/translation"
)

func newTestApplication(t *testing.T, backend translation.Backend) (*Application, *session.Loop) {
	t.Helper()

	fyneApp := test.NewApp()
	t.Cleanup(fyneApp.Quit)

	caps := &capability.Capabilities{
		SpeechInput:  capability.Unavailable[capability.SpeechInput](errors.New("no microphone")),
		SpeechOutput: capability.Unavailable[audio.Provider](errors.New("no speaker")),
		Translator:   capability.Available(backend),
	}
	loop := session.NewLoop(10)

	a, err := newApplication(fyneApp, &Config{
		Capabilities: caps,
		Settings:     settings.NewFile(filepath.Join(t.TempDir(), "settings.yaml"), nil),
		ExportDir:    t.TempDir(),
		Post:         loop.Post,
	})
	if err != nil {
		t.Fatalf("newApplication failed: %v", err)
	}
	return a, loop
}

func TestNewApplication_RequiresCapabilities(t *testing.T) {
	fyneApp := test.NewApp()
	defer fyneApp.Quit()

	if _, err := newApplication(fyneApp, &Config{}); err == nil {
		t.Error("Expected error without capabilities")
	}
}

func TestNewApplication_InitialState(t *testing.T) {
	a, _ := newTestApplication(t, &testutil.MockTranslator{})

	if a.sourceSelect.Selected != "English" || a.targetSelect.Selected != "Spanish" {
		t.Errorf("Selected %s/%s", a.sourceSelect.Selected, a.targetSelect.Selected)
	}
	if !a.recordButton.Disabled() || !a.speakButton.Disabled() {
		t.Error("Speech buttons should be disabled without speech services")
	}
	if a.statusLabel.Text != session.StatusReady {
		t.Errorf("Status label = %q", a.statusLabel.Text)
	}
	if len(a.sourceSelect.Options) != 70 {
		t.Errorf("Language select has %d options, want 70", len(a.sourceSelect.Options))
	}
}

func TestSwapButton(t *testing.T) {
	a, _ := newTestApplication(t, &testutil.MockTranslator{})

	test.Tap(a.swapButton)
	if a.sourceSelect.Selected != "Spanish" || a.targetSelect.Selected != "English" {
		t.Errorf("After swap: %s/%s", a.sourceSelect.Selected, a.targetSelect.Selected)
	}
	if a.session.Source().Name != "Spanish" {
		t.Errorf("Session source = %s", a.session.Source().Name)
	}
}

func TestLanguageSelection(t *testing.T) {
	a, _ := newTestApplication(t, &testutil.MockTranslator{})

	a.targetSelect.SetSelected("French")
	if a.session.Target().Name != "French" {
		t.Errorf("Session target = %s, want French", a.session.Target().Name)
	}
}

func TestTranslateButton(t *testing.T) {
	backend := &testutil.MockTranslator{Translations: map[string]string{"hello": "hola"}}
	a, loop := newTestApplication(t, backend)

	test.Type(a.inputEntry, "hello")
	test.Tap(a.translateButton)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if !loop.RunUntil(ctx, func() bool { return !a.session.IsTranslating() }) {
		t.Fatal("Translation did not finish")
	}

	if a.outputEntry.Text != "hola" {
		t.Errorf("Output = %q, want hola", a.outputEntry.Text)
	}
	if a.statusLabel.Text != session.StatusComplete {
		t.Errorf("Status label = %q", a.statusLabel.Text)
	}
	if len(a.entries) != 1 || a.historyList.Length() != 1 {
		t.Errorf("History shows %d entries, want 1", len(a.entries))
	}
}

func TestClearButton(t *testing.T) {
	a, _ := newTestApplication(t, &testutil.MockTranslator{})

	test.Type(a.inputEntry, "good evening")
	test.Tap(a.clearButton)

	if a.inputEntry.Text != "" || a.session.Input() != "" {
		t.Errorf("Input not cleared: %q / %q", a.inputEntry.Text, a.session.Input())
	}
}

func TestInputEntry_Submit(t *testing.T) {
	fyneApp := test.NewApp()
	defer fyneApp.Quit()

	submitted := 0
	entry := NewInputEntry()
	entry.SetOnSubmit(func() { submitted++ })

	entry.TypedShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyReturn, Modifier: fyne.KeyModifierControl})
	entry.TypedShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyA, Modifier: fyne.KeyModifierControl})

	if submitted != 1 {
		t.Errorf("Submitted %d times, want 1", submitted)
	}
}

func TestIsSubmitShortcut(t *testing.T) {
	tests := []struct {
		name     string
		shortcut fyne.Shortcut
		want     bool
	}{
		{"ctrl enter", &desktop.CustomShortcut{KeyName: fyne.KeyReturn, Modifier: fyne.KeyModifierControl}, true},
		{"super enter", &desktop.CustomShortcut{KeyName: fyne.KeyEnter, Modifier: fyne.KeyModifierSuper}, true},
		{"shift enter", &desktop.CustomShortcut{KeyName: fyne.KeyReturn, Modifier: fyne.KeyModifierShift}, false},
		{"ctrl a", &desktop.CustomShortcut{KeyName: fyne.KeyA, Modifier: fyne.KeyModifierControl}, false},
		{"copy", &fyne.ShortcutCopy{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSubmitShortcut(tt.shortcut); got != tt.want {
				t.Errorf("isSubmitShortcut() = %v, want %v", got, tt.want)
			}
		})
	}
}
