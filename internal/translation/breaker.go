package translation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// Trips after this many consecutive failures and stays open for breakerTimeout.
const (
	breakerFailures = 3
	breakerTimeout  = 30 * time.Second
)

type breakerBackend struct {
	next Backend
	cb   *gobreaker.CircuitBreaker
}

// WithBreaker stops calling next for a while after repeated failures, so an
// unreachable service fails fast instead of blocking every request.
func WithBreaker(next Backend) Backend {
	return &breakerBackend{
		next: next,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    next.Name(),
			Timeout: breakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerFailures
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
		}),
	}
}

func (b *breakerBackend) Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, text, sourceCode, targetCode)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%s temporarily unavailable: %w", b.next.Name(), err)
		}
		return "", err
	}
	return out.(string), nil
}

func (b *breakerBackend) Name() string   { return b.next.Name() }
func (b *breakerBackend) Degraded() bool { return b.next.Degraded() }
