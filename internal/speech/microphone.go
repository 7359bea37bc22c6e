package speech

import (
	"context"
	"time"
)

// Microphone captures single utterances.
type Microphone interface {
	// Calibrate samples ambient noise for d and adjusts the speech threshold
	Calibrate(ctx context.Context, d time.Duration) error

	// Listen waits up to timeout for speech to start, then records until the
	// speaker pauses or phraseLimit is reached. It returns ErrListenTimedOut
	// when no speech starts in time.
	Listen(ctx context.Context, timeout, phraseLimit time.Duration) (*Utterance, error)

	// Close releases the audio device
	Close() error
}

// Recognizer turns an utterance into text.
type Recognizer interface {
	// Recognize returns the text spoken in u. languageCode is a catalog
	// code such as "en" or "zh-cn".
	Recognize(ctx context.Context, u *Utterance, languageCode string) (string, error)
}
