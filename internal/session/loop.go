package session

import (
	"context"
)

// Poster schedules fn to run on the goroutine that owns the session
type Poster func(fn func())

// Loop is a minimal event loop for owners without a GUI toolkit, such as the
// command line and tests.
type Loop struct {
	funcs chan func()
}

// NewLoop creates a loop buffering up to size pending functions
func NewLoop(size int) *Loop {
	if size <= 0 {
		size = 100
	}
	return &Loop{funcs: make(chan func(), size)}
}

// Post queues fn, blocking while the buffer is full
func (l *Loop) Post(fn func()) {
	l.funcs <- fn
}

// Run executes queued functions until ctx is done
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case fn := <-l.funcs:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// RunPending executes what is queued right now and returns how many ran
func (l *Loop) RunPending() int {
	n := 0
	for {
		select {
		case fn := <-l.funcs:
			fn()
			n++
		default:
			return n
		}
	}
}

// RunUntil executes queued functions until done reports true or ctx ends.
// It returns done's final result.
func (l *Loop) RunUntil(ctx context.Context, done func() bool) bool {
	for !done() {
		select {
		case fn := <-l.funcs:
			fn()
		case <-ctx.Done():
			return done()
		}
	}
	return true
}
