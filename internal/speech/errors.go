package speech

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSpeechDetected means the utterance held no recognizable speech.
	ErrNoSpeechDetected = errors.New("no speech detected")

	// ErrListenTimedOut means nobody started speaking within the listen window.
	ErrListenTimedOut = errors.New("listening timed out waiting for speech")
)

// ServiceError is a structural failure of the microphone or the recognition
// service. It ends the capture loop.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("speech service error during %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err should be ignored by the capture loop.
func IsTransient(err error) bool {
	return errors.Is(err, ErrNoSpeechDetected) || errors.Is(err, ErrListenTimedOut)
}
