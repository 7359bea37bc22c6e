package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			a.window.Canvas().Unfocus()
			return
		}

		// Typing into an entry must not trigger shortcuts
		if a.window.Canvas().Focused() != nil {
			return
		}

		a.handleShortcutKey(ev.Name)
	})
}

// handleShortcutKey handles the actual shortcut action
func (a *Application) handleShortcutKey(key fyne.KeyName) {
	switch key {
	case fyne.KeyT: // Translate
		a.onTranslate()
	case fyne.KeyR: // Record
		if !a.recordButton.Disabled() {
			a.session.ToggleRecording()
		}
	case fyne.KeyS: // Speak
		if !a.speakButton.Disabled() {
			a.session.Speak()
		}
	case fyne.KeyC: // Copy
		a.onCopy()
	case fyne.KeyX: // Save to file
		a.onSave()
	case fyne.KeyW: // Swap languages
		a.session.SwapLanguages()
	case fyne.KeyD: // Detect language
		a.onDetect()
	case fyne.KeyL: // Clear input
		a.session.ClearInput()
	case fyne.KeyI: // Focus input
		a.window.Canvas().Focus(a.inputEntry)
	case fyne.KeyH: // Show hotkeys
		a.onShowHotkeys()
	case fyne.KeyQ: // Quit application
		a.onClose()
	}
}

const hotkeys = `## Translation
**t** Translate  
**Ctrl+Enter** Translate while typing  
**w** Swap languages  
**d** Detect input language  

## Speech
**r** Start or stop recording  
**s** Speak translation  

## Text
**i** Focus input  
**l** Clear input  
**c** Copy translation  
**x** Save translation to file  
**Esc** Unfocus field  

## Help
**h** Show hotkeys  
**q** Quit application  

---
Select a history entry to load it again.`

func (a *Application) onShowHotkeys() {
	content := widget.NewRichTextFromMarkdown(hotkeys)
	content.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(container.NewPadded(content))
	scroll.SetMinSize(fyne.NewSize(420, 420))

	dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window).Show()
}
