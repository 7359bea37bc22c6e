package session

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestLoop_RunPending(t *testing.T) {
	l := NewLoop(0)
	var got []int
	for i := 0; i < 3; i++ {
		l.Post(func() { got = append(got, i) })
	}

	if n := l.RunPending(); n != 3 {
		t.Errorf("RunPending() = %d, want 3", n)
	}
	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("Functions ran out of order: %v", got)
	}
	if n := l.RunPending(); n != 0 {
		t.Errorf("RunPending() on empty loop = %d", n)
	}
}

func TestLoop_RunUntil(t *testing.T) {
	l := NewLoop(10)
	done := false

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		time.Sleep(5 * time.Millisecond)
		l.Post(func() { done = true })
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if !l.RunUntil(ctx, func() bool { return done }) {
		t.Error("RunUntil returned before done")
	}
	wg.Wait()

	short, cancelShort := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancelShort()
	if l.RunUntil(short, func() bool { return false }) {
		t.Error("RunUntil should report false on timeout")
	}
}

func TestLoop_Run(t *testing.T) {
	l := NewLoop(10)
	ctx, cancel := context.WithCancel(context.Background())

	finished := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(finished)
	}()

	ran := make(chan struct{})
	l.Post(func() { close(ran) })
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("Posted function never ran")
	}

	cancel()
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
