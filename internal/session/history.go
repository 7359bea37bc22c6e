package session

import (
	"strings"

	"codeberg.org/snonux/travelspeak/internal/export"
	"codeberg.org/snonux/travelspeak/internal/history"
	"codeberg.org/snonux/travelspeak/internal/language"
)

// History returns all entries in insertion order
func (s *Session) History() []history.Entry {
	return s.history.All()
}

// HistoryLen returns the number of entries
func (s *Session) HistoryLen() int {
	return s.history.Len()
}

// Recall loads entry index back into the session: languages, input and
// output
func (s *Session) Recall(index int) error {
	e, err := s.history.Get(index)
	if err != nil {
		return err
	}

	source, ok := language.ByName(e.SourceLanguage)
	if !ok {
		source = s.source
	}
	target, ok := language.ByName(e.TargetLanguage)
	if !ok {
		target = s.target
	}
	s.setLanguages(source, target)
	s.setInput(e.Original)
	s.setOutput(e.Translated)
	return nil
}

// ClearHistory removes every entry
func (s *Session) ClearHistory() error {
	if err := s.history.Clear(); err != nil {
		s.fail(historyErrorPrefix + err.Error())
		return err
	}
	s.notifyHistory()
	s.setStatus(StatusHistoryCleared)
	return nil
}

// Export writes input and output to a timestamped file in the export
// directory and returns the file name
func (s *Session) Export() (string, error) {
	output := strings.TrimSpace(s.output)
	if output == "" {
		s.warn(WarnNothingToSave)
		return "", ErrEmptyInput
	}

	name, err := export.Write(s.export, s.now(), s.source.Name, s.target.Name,
		strings.TrimSpace(s.input), output)
	if err != nil {
		s.fail(saveErrorPrefix + err.Error())
		return "", err
	}

	s.setStatus("Saved as " + name)
	s.info("Translation saved as " + name)
	return name, nil
}

func (s *Session) notifyHistory() {
	if s.cb.OnHistoryChanged != nil {
		s.cb.OnHistoryChanged(s.history.All())
	}
}
