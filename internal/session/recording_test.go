package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/travelspeak/internal/testutil"
)

func TestStartRecording_Unavailable(t *testing.T) {
	f := newFixture(t, Options{Microphone: &testutil.MockMicrophone{}})

	f.s.StartRecording()
	if f.s.IsRecording() {
		t.Error("Recording without a recognizer")
	}
	if len(f.rec.errors) != 1 || f.rec.errors[0] != MsgSpeechInputMissing {
		t.Errorf("Errors = %v", f.rec.errors)
	}
}

func TestStartRecording_Twice(t *testing.T) {
	mic := &testutil.MockMicrophone{Pause: 2 * time.Millisecond}
	f := newFixture(t, Options{Microphone: mic, Recognizer: &testutil.MockRecognizer{}})

	f.s.StartRecording()
	f.s.StartRecording()
	if !f.s.IsRecording() || f.s.Status() != StatusListening {
		t.Fatalf("recording = %v, status = %q", f.s.IsRecording(), f.s.Status())
	}

	f.runUntil(t, func() bool { return mic.Listens() >= 3 })
	f.s.StopRecording()
	f.runUntil(t, func() bool { return f.s.capture == nil })
	f.s.Wait()

	if mic.Calibrations() != 1 {
		t.Errorf("Started %d capture loops, want 1", mic.Calibrations())
	}
	if mic.MaxConcurrent() != 1 {
		t.Errorf("%d simultaneous listens, want 1", mic.MaxConcurrent())
	}
	if f.s.IsRecording() || f.s.Status() != StatusReady {
		t.Errorf("recording = %v, status = %q", f.s.IsRecording(), f.s.Status())
	}
	if len(f.rec.recording) != 2 || !f.rec.recording[0] || f.rec.recording[1] {
		t.Errorf("Recording changes = %v, want [true false]", f.rec.recording)
	}
}

func TestRecording_AppendsRecognizedText(t *testing.T) {
	mic := &testutil.MockMicrophone{Script: []error{nil, nil}}
	rec := &testutil.MockRecognizer{Texts: []string{"where is", "the station"}}
	f := newFixture(t, Options{Microphone: mic, Recognizer: rec})
	_ = f.s.SetSourceLanguage("French")

	f.s.SetInput("Excuse me, ")
	f.s.ToggleRecording()
	f.runUntil(t, func() bool { return f.s.Input() == "Excuse me, where is the station" })
	f.s.ToggleRecording()
	f.runUntil(t, func() bool { return f.s.capture == nil })

	for _, code := range rec.Languages() {
		if code != "fr" {
			t.Errorf("Recognizer got language %q, want fr", code)
		}
	}
	if got := f.rec.inputs[len(f.rec.inputs)-1]; got != f.s.Input() {
		t.Errorf("Last input notification %q", got)
	}
}

func TestRecording_ServiceErrorEndsLoop(t *testing.T) {
	mic := &testutil.MockMicrophone{Script: []error{errors.New("device unplugged")}}
	f := newFixture(t, Options{Microphone: mic, Recognizer: &testutil.MockRecognizer{}})

	f.s.StartRecording()
	f.runUntil(t, func() bool { return f.s.capture == nil })

	if f.s.IsRecording() {
		t.Error("Still recording after a service error")
	}
	// The error is reported, then the status goes back to ready
	n := len(f.rec.statuses)
	if n < 2 || f.rec.statuses[n-2] != StatusError || f.rec.statuses[n-1] != StatusReady {
		t.Errorf("Statuses = %v, want to end with %q, %q", f.rec.statuses, StatusError, StatusReady)
	}
	if f.s.Status() != StatusReady {
		t.Errorf("Status() = %q, want %q", f.s.Status(), StatusReady)
	}
	if len(f.rec.errors) != 1 || !strings.HasPrefix(f.rec.errors[0], "Speech recognition error: ") ||
		!strings.Contains(f.rec.errors[0], "device unplugged") {
		t.Errorf("Errors = %v", f.rec.errors)
	}
	if mic.Listens() != 1 {
		t.Errorf("Listen called %d times after failure", mic.Listens())
	}
}

func TestRecording_RecognizerFailure(t *testing.T) {
	mic := &testutil.MockMicrophone{Script: []error{nil}}
	rec := &testutil.MockRecognizer{Err: errors.New("quota exceeded")}
	f := newFixture(t, Options{Microphone: mic, Recognizer: rec})

	f.s.StartRecording()
	f.runUntil(t, func() bool { return f.s.capture == nil })

	if f.s.IsRecording() || len(f.rec.errors) != 1 {
		t.Errorf("recording = %v, errors = %v", f.s.IsRecording(), f.rec.errors)
	}
	if f.s.Status() != StatusReady {
		t.Errorf("Status() = %q, want %q", f.s.Status(), StatusReady)
	}
}

func TestRecording_RestartWhileStopPending(t *testing.T) {
	mic := &testutil.MockMicrophone{Pause: 2 * time.Millisecond}
	f := newFixture(t, Options{Microphone: mic, Recognizer: &testutil.MockRecognizer{}})

	f.s.StartRecording()
	f.s.StopRecording()
	f.s.StartRecording()
	if !f.s.IsRecording() {
		t.Fatal("Restart should switch recording back on")
	}

	f.runUntil(t, func() bool { return mic.Calibrations() == 2 && mic.Listens() >= 2 })
	if !f.s.IsRecording() || f.s.capture == nil {
		t.Fatal("Capture should run again after restart")
	}

	f.s.StopRecording()
	f.runUntil(t, func() bool { return f.s.capture == nil })
	f.s.Wait()

	if mic.MaxConcurrent() != 1 {
		t.Errorf("%d simultaneous listens, want 1", mic.MaxConcurrent())
	}
	if f.s.IsRecording() || f.s.Status() != StatusReady {
		t.Errorf("recording = %v, status = %q", f.s.IsRecording(), f.s.Status())
	}
}

func TestRecording_StopThenStartAfterFinish(t *testing.T) {
	mic := &testutil.MockMicrophone{}
	f := newFixture(t, Options{Microphone: mic, Recognizer: &testutil.MockRecognizer{}})

	for i := 1; i <= 3; i++ {
		f.s.StartRecording()
		f.s.StopRecording()
		f.runUntil(t, func() bool { return f.s.capture == nil })
		if mic.Calibrations() != i {
			t.Errorf("Round %d: %d capture loops", i, mic.Calibrations())
		}
	}
	if mic.MaxConcurrent() > 1 {
		t.Errorf("%d simultaneous listens", mic.MaxConcurrent())
	}
}

func TestClose_StopsRecording(t *testing.T) {
	mic := &testutil.MockMicrophone{}
	f := newFixture(t, Options{Microphone: mic, Recognizer: &testutil.MockRecognizer{}})

	f.s.StartRecording()
	f.s.Close()
	if f.s.IsRecording() {
		t.Error("Close left recording on")
	}
	f.runUntil(t, func() bool { return f.s.capture == nil })
	f.s.Wait()
}
