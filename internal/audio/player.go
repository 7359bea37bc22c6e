package audio

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
)

// playbackRate is the fixed rate the speaker is initialized with
const playbackRate = beep.SampleRate(44100)

// Player plays an encoded audio stream and blocks until it ends.
type Player interface {
	Play(ctx context.Context, stream io.ReadCloser) error
}

// Initializer is implemented by players that open the output device
// before the first Play.
type Initializer interface {
	Init() error
}

// BeepPlayer decodes MP3 streams and plays them on the default output device
type BeepPlayer struct {
	volume   float64
	initOnce sync.Once
	initErr  error
}

// NewBeepPlayer creates a player at the given volume (0.0 to 1.0)
func NewBeepPlayer(volume float64) *BeepPlayer {
	if volume <= 0 || volume > 1 {
		volume = 1
	}
	return &BeepPlayer{volume: volume}
}

// Init opens the default output device. Only the first call does any work.
func (p *BeepPlayer) Init() error {
	p.initOnce.Do(func() {
		p.initErr = speaker.Init(playbackRate, playbackRate.N(time.Second/10))
	})
	if p.initErr != nil {
		return fmt.Errorf("failed to init speaker: %w", p.initErr)
	}
	return nil
}

// Play decodes stream as MP3 and plays it
func (p *BeepPlayer) Play(ctx context.Context, stream io.ReadCloser) error {
	streamer, format, err := mp3.Decode(stream)
	if err != nil {
		return fmt.Errorf("mp3 decode failed: %w", err)
	}
	defer streamer.Close()

	if err := p.Init(); err != nil {
		return err
	}

	var playback beep.Streamer = streamer
	if format.SampleRate != playbackRate {
		playback = beep.Resample(4, format.SampleRate, playbackRate, streamer)
	}
	// Gain scales by 1+Gain, so a volume of 0.9 is a gain of -0.1.
	playback = &effects.Gain{Streamer: playback, Gain: p.volume - 1}

	done := make(chan struct{})
	ctrl := &beep.Ctrl{Streamer: beep.Seq(playback, beep.Callback(func() {
		close(done)
	}))}
	speaker.Play(ctrl)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Lock()
		ctrl.Streamer = nil
		speaker.Unlock()
		return ctx.Err()
	}
}
