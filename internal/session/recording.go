package session

import (
	"context"

	"codeberg.org/snonux/travelspeak/internal/speech"
)

type captureTask struct {
	cancel  context.CancelFunc
	restart bool
}

// StartRecording starts the capture loop. It is a no-op while recording.
// Starting again while a stop is still pending restarts capture once the
// old loop has finished, so two loops never run at the same time.
func (s *Session) StartRecording() {
	if !s.CanRecord() {
		s.fail(MsgSpeechInputMissing)
		return
	}
	if s.recording {
		return
	}
	if s.capture != nil {
		s.capture.restart = true
		s.setRecording(true)
		s.setStatus(StatusListening)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	task := &captureTask{cancel: cancel}
	s.capture = task
	s.setRecording(true)
	s.setStatus(StatusListening)

	s.background(func() {
		err := s.runCapture(ctx)
		s.post(func() { s.captureFinished(task, err) })
	})
}

// StopRecording asks the capture loop to end after the current utterance
func (s *Session) StopRecording() {
	if !s.recording {
		return
	}
	if s.capture != nil {
		s.capture.cancel()
		s.capture.restart = false
	}
	s.setRecording(false)
}

// ToggleRecording starts or stops recording
func (s *Session) ToggleRecording() {
	if s.recording {
		s.StopRecording()
		return
	}
	s.StartRecording()
}

func (s *Session) runCapture(ctx context.Context) error {
	return speech.Capture(ctx, s.mic, s.rec, s.capOpts,
		func() string { return s.sourceCode.Load().(string) },
		func(text string) {
			s.post(func() { s.setInput(appendRecognized(s.input, text)) })
		})
}

func (s *Session) captureFinished(task *captureTask, err error) {
	if s.capture != task {
		return
	}
	task.cancel()
	s.capture = nil

	if err != nil {
		s.setRecording(false)
		s.fail(recognitionErrorPrefix + err.Error())
		s.setStatus(StatusReady)
		return
	}

	if task.restart {
		s.recording = false
		s.StartRecording()
		return
	}

	s.setRecording(false)
	s.setStatus(StatusReady)
}

func (s *Session) setRecording(recording bool) {
	if s.recording == recording {
		return
	}
	s.recording = recording
	if s.cb.OnRecordingChanged != nil {
		s.cb.OnRecordingChanged(recording)
	}
}
