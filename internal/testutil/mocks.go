package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"codeberg.org/snonux/travelspeak/internal/speech"
)

// MockTranslator mocks a translation backend
type MockTranslator struct {
	Translations map[string]string
	Errors       map[string]error
	IsDegraded   bool

	mu    sync.Mutex
	calls []string
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, fmt.Sprintf("Translate: %s (%s->%s)", text, fromLang, toLang))
	m.mu.Unlock()

	if err, ok := m.Errors[text]; ok {
		return "", err
	}

	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}

	return fmt.Sprintf("mock translation of %s", text), nil
}

// Name returns "mock"
func (m *MockTranslator) Name() string {
	return "mock"
}

// Degraded returns IsDegraded
func (m *MockTranslator) Degraded() bool {
	return m.IsDegraded
}

// Calls returns the recorded calls
func (m *MockTranslator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.calls...)
}

// MockMicrophone returns scripted Listen results. Once the script is used up
// it behaves like a quiet room and times out after a short pause.
type MockMicrophone struct {
	// Script holds one error per Listen call, nil meaning an utterance
	Script       []error
	CalibrateErr error
	Pause        time.Duration

	mu            sync.Mutex
	listens       int
	calibrations  int
	active        int
	maxConcurrent int
	closed        bool
}

func (m *MockMicrophone) Calibrate(ctx context.Context, d time.Duration) error {
	m.mu.Lock()
	m.calibrations++
	m.mu.Unlock()
	return m.CalibrateErr
}

func (m *MockMicrophone) Listen(ctx context.Context, timeout, phraseLimit time.Duration) (*speech.Utterance, error) {
	m.mu.Lock()
	n := m.listens
	m.listens++
	m.active++
	if m.active > m.maxConcurrent {
		m.maxConcurrent = m.active
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.active--
		m.mu.Unlock()
	}()

	if n < len(m.Script) {
		if err := m.Script[n]; err != nil {
			return nil, err
		}
		return &speech.Utterance{Samples: []int16{0, 1, 0, -1}, SampleRate: speech.DefaultSampleRate}, nil
	}

	pause := m.Pause
	if pause == 0 {
		pause = time.Millisecond
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(pause):
		return nil, speech.ErrListenTimedOut
	}
}

func (m *MockMicrophone) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Listens returns how often Listen was called
func (m *MockMicrophone) Listens() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listens
}

// Calibrations returns how many capture loops were started
func (m *MockMicrophone) Calibrations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calibrations
}

// MaxConcurrent returns the highest number of simultaneous Listen calls
func (m *MockMicrophone) MaxConcurrent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxConcurrent
}

// Closed reports whether Close was called
func (m *MockMicrophone) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// MockRecognizer returns Texts in order, then ErrNoSpeechDetected. Err, when
// set, is returned for every call instead.
type MockRecognizer struct {
	Texts []string
	Err   error

	mu        sync.Mutex
	calls     int
	languages []string
}

func (m *MockRecognizer) Recognize(ctx context.Context, u *speech.Utterance, languageCode string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.calls
	m.calls++
	m.languages = append(m.languages, languageCode)

	if m.Err != nil {
		return "", m.Err
	}
	if n < len(m.Texts) {
		return m.Texts[n], nil
	}
	return "", speech.ErrNoSpeechDetected
}

// Languages returns the language codes passed to Recognize
func (m *MockRecognizer) Languages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.languages...)
}

// MockSpeaker records spoken texts. With Gate set, Speak blocks until a value
// is received from it.
type MockSpeaker struct {
	Err  error
	Gate chan struct{}

	mu      sync.Mutex
	spoken  []string
	active  int
	overlap bool
}

func (m *MockSpeaker) Speak(ctx context.Context, text string) error {
	m.mu.Lock()
	m.active++
	if m.active > 1 {
		m.overlap = true
	}
	m.mu.Unlock()

	if m.Gate != nil {
		<-m.Gate
	}

	m.mu.Lock()
	m.active--
	m.spoken = append(m.spoken, text)
	m.mu.Unlock()
	return m.Err
}

func (m *MockSpeaker) Name() string      { return "mock" }
func (m *MockSpeaker) IsAvailable() error { return nil }

// Spoken returns the texts spoken so far
func (m *MockSpeaker) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.spoken...)
}

// Overlapped reports whether two Speak calls ever ran at the same time
func (m *MockSpeaker) Overlapped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overlap
}

// Phrases returns n short test phrases
func Phrases(n int) []string {
	base := []string{"hello", "goodbye", "thank you", "please", "water"}
	out := make([]string, n)
	for i := range out {
		out[i] = base[i%len(base)]
		if i >= len(base) {
			out[i] += strings.Repeat("!", i/len(base))
		}
	}
	return out
}
