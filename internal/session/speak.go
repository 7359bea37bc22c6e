package session

import (
	"context"
	"strings"
)

// Speak reads the output aloud in the background. Calls are serialized, a
// second Speak waits for the first to finish.
func (s *Session) Speak() {
	if !s.CanSpeak() {
		s.fail(MsgSpeechOutputMissing)
		return
	}
	text := strings.TrimSpace(s.output)
	if text == "" {
		s.warn(WarnNothingToSpeak)
		return
	}

	s.setStatus(StatusSpeaking)
	s.background(func() {
		s.speakMu.Lock()
		err := s.speaker.Speak(context.Background(), text)
		s.speakMu.Unlock()

		s.post(func() {
			if err != nil {
				s.fail(synthesisErrorPrefix + err.Error())
				return
			}
			s.setStatus(StatusReady)
		})
	})
}
