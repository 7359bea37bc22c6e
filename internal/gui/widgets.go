package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/travelspeak/internal/history"
	"codeberg.org/snonux/travelspeak/internal/language"
)

// newLanguageSelect lists the catalog in presentation order
func newLanguageSelect(onChanged func(name string)) *widget.Select {
	return widget.NewSelect(language.Names(), onChanged)
}

// newHistoryList shows one summary line per entry. Selecting an entry calls
// onRecall with its index and clears the selection again, so the same entry
// can be recalled twice in a row.
func newHistoryList(entries func() []history.Entry, onRecall func(index int)) *widget.List {
	list := widget.NewList(
		func() int { return len(entries()) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			all := entries()
			if id < 0 || id >= len(all) {
				return
			}
			obj.(*widget.Label).SetText(history.SummaryLine(all[id]))
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		list.UnselectAll()
		onRecall(id)
	}
	return list
}
