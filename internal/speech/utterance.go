package speech

import (
	"fmt"
	"io"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Utterance is one captured phrase of mono 16-bit PCM.
type Utterance struct {
	Samples    []int16
	SampleRate int
}

// Duration returns the length of the recording
func (u *Utterance) Duration() time.Duration {
	if u == nil || u.SampleRate == 0 {
		return 0
	}
	return time.Duration(len(u.Samples)) * time.Second / time.Duration(u.SampleRate)
}

// WriteWAV encodes the utterance as a mono 16-bit WAV file
func (u *Utterance) WriteWAV(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, u.SampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  u.SampleRate,
		},
		Data:           make([]int, len(u.Samples)),
		SourceBitDepth: 16,
	}
	for i, s := range u.Samples {
		buf.Data[i] = int(s)
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("failed to encode WAV: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return nil
}
