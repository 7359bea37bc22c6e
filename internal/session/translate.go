package session

import (
	"context"
	"strings"

	"codeberg.org/snonux/travelspeak/internal/history"
	"codeberg.org/snonux/travelspeak/internal/language"
	"codeberg.org/snonux/travelspeak/internal/translation"
)

// pending is a translation request with the language pair it was made for,
// so a language change while it runs does not relabel the result.
type pending struct {
	req    translation.Request
	source language.Language
	target language.Language
}

// Translate translates the input buffer and waits for the result. On
// success the output is replaced and a history entry appended; on failure
// both stay as they were.
func (s *Session) Translate(ctx context.Context) error {
	p, ok := s.prepare()
	if !ok {
		return ErrEmptyInput
	}

	s.setStatus(StatusTranslating)
	res, err := translation.Do(ctx, s.backend, p.req)
	return s.finishTranslation(p, res, err)
}

// TranslateAsync is Translate for event loops that must not block. The
// result is applied through the poster. A request made while another one
// is running is ignored.
func (s *Session) TranslateAsync(ctx context.Context) {
	if s.translating {
		return
	}
	p, ok := s.prepare()
	if !ok {
		return
	}

	s.translating = true
	s.setStatus(StatusTranslating)
	s.background(func() {
		res, err := translation.Do(ctx, s.backend, p.req)
		s.post(func() {
			s.translating = false
			_ = s.finishTranslation(p, res, err)
		})
	})
}

// IsTranslating reports whether an asynchronous translation is running
func (s *Session) IsTranslating() bool {
	return s.translating
}

func (s *Session) prepare() (pending, bool) {
	text := strings.TrimSpace(s.input)
	if text == "" {
		s.warn(WarnEmptyInput)
		return pending{}, false
	}

	return pending{
		req: translation.Request{
			Text:   text,
			Source: s.source.Code,
			Target: s.target.Code,
		},
		source: s.source,
		target: s.target,
	}, true
}

func (s *Session) finishTranslation(p pending, res translation.Result, err error) error {
	if err != nil {
		s.fail(translationErrorPrefix + err.Error())
		return err
	}

	// Output only changes once the entry is stored
	entry := history.NewEntry(s.now(), p.req.Text, res.Text, p.source.Name, p.target.Name)
	if err := s.history.Append(entry); err != nil {
		s.fail(historyErrorPrefix + err.Error())
		return err
	}
	s.setOutput(res.Text)
	s.notifyHistory()

	if res.Degraded {
		s.setStatus(StatusCompleteLimited)
	} else {
		s.setStatus(StatusComplete)
	}
	s.logger.Debugw("Translated", "backend", res.Backend, "source", p.req.Source, "target", p.req.Target)
	return nil
}
