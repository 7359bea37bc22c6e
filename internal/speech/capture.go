package speech

import (
	"context"
	"errors"
	"time"
)

// CaptureOptions configures the capture loop
type CaptureOptions struct {
	Calibration   time.Duration
	ListenTimeout time.Duration
	PhraseLimit   time.Duration
}

// DefaultCaptureOptions returns a 1s calibration, a 1s listen window and a
// 5s phrase limit
func DefaultCaptureOptions() CaptureOptions {
	return CaptureOptions{
		Calibration:   time.Second,
		ListenTimeout: time.Second,
		PhraseLimit:   5 * time.Second,
	}
}

// Capture listens and recognizes utterances until ctx is cancelled or a
// service error occurs. Cancellation is checked between utterances only, an
// utterance already being captured is still recognized and delivered.
// languageCode is read before every recognition so language changes apply
// to the next utterance. onText runs on the capture goroutine.
//
// Capture returns nil when stopped through ctx and a *ServiceError otherwise.
func Capture(ctx context.Context, mic Microphone, rec Recognizer, opts CaptureOptions,
	languageCode func() string, onText func(string)) error {
	work := context.WithoutCancel(ctx)

	if opts.Calibration > 0 {
		if err := mic.Calibrate(work, opts.Calibration); err != nil {
			return asServiceError("calibrate", err)
		}
	}

	for ctx.Err() == nil {
		u, err := mic.Listen(work, opts.ListenTimeout, opts.PhraseLimit)
		if err != nil {
			if IsTransient(err) {
				continue
			}
			return asServiceError("listen", err)
		}

		text, err := rec.Recognize(work, u, languageCode())
		if err != nil {
			if IsTransient(err) {
				continue
			}
			return asServiceError("recognize", err)
		}
		onText(text)
	}
	return nil
}

func asServiceError(op string, err error) error {
	var serr *ServiceError
	if errors.As(err, &serr) {
		return serr
	}
	return &ServiceError{Op: op, Err: err}
}
