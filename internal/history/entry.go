package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"codeberg.org/snonux/travelspeak/internal"
)

// ErrIndexOutOfRange is returned by Get for an index outside the store.
var ErrIndexOutOfRange = errors.New("history index out of range")

// summaryPreview is the number of runes of the original shown in a summary.
const summaryPreview = 30

// Entry is one completed translation. Entries are never modified.
type Entry struct {
	ID             string    `db:"id"`
	Timestamp      time.Time `db:"created_at"`
	Original       string    `db:"original"`
	Translated     string    `db:"translated"`
	SourceLanguage string    `db:"source_language"`
	TargetLanguage string    `db:"target_language"`
}

// NewEntry stamps a new entry with an ID and the given time
func NewEntry(now time.Time, original, translated, source, target string) Entry {
	return Entry{
		ID:             uuid.NewString(),
		Timestamp:      now,
		Original:       original,
		Translated:     translated,
		SourceLanguage: source,
		TargetLanguage: target,
	}
}

// SummaryLine renders "[HH:MM:SS] src → tgt: <first 30 runes>...". The
// ellipsis is always appended.
func SummaryLine(e Entry) string {
	return fmt.Sprintf("[%s] %s → %s: %s...",
		e.Timestamp.Format("15:04:05"),
		e.SourceLanguage,
		e.TargetLanguage,
		internal.TruncateRunes(e.Original, summaryPreview),
	)
}

// Store holds history entries in insertion order.
type Store interface {
	Append(e Entry) error
	Get(index int) (Entry, error)
	Len() int
	All() []Entry
	Clear() error
	Close() error
}
