package speech

import (
	"math"
	"time"
)

// VADConfig holds the voice activity thresholds
type VADConfig struct {
	// EnergyThreshold is the minimum RMS level (0..1) counted as speech
	EnergyThreshold float64

	// SpeechStart is how much continuous speech starts a phrase
	SpeechStart time.Duration

	// Pause is how much continuous silence ends a phrase
	Pause time.Duration
}

// DefaultVADConfig returns moderate sensitivity settings
func DefaultVADConfig() VADConfig {
	return VADConfig{
		EnergyThreshold: 0.01,
		SpeechStart:     90 * time.Millisecond,
		Pause:           800 * time.Millisecond,
	}
}

// VAD is a simple energy based voice activity detector
type VAD struct {
	config     VADConfig
	sampleRate int
	speech     time.Duration
	silence    time.Duration
	isSpeaking bool
}

// NewVAD creates a new voice activity detector
func NewVAD(config VADConfig, sampleRate int) *VAD {
	return &VAD{config: config, sampleRate: sampleRate}
}

// ProcessFrame feeds one frame and returns (isSpeechActive, speechStarted, speechEnded)
func (v *VAD) ProcessFrame(frame []int16) (bool, bool, bool) {
	length := time.Duration(len(frame)) * time.Second / time.Duration(v.sampleRate)
	speechStarted, speechEnded := false, false

	if Energy(frame) > v.config.EnergyThreshold {
		v.speech += length
		v.silence = 0
		if !v.isSpeaking && v.speech >= v.config.SpeechStart {
			v.isSpeaking = true
			speechStarted = true
		}
	} else {
		v.silence += length
		v.speech = 0
		if v.isSpeaking && v.silence >= v.config.Pause {
			v.isSpeaking = false
			speechEnded = true
		}
	}

	return v.isSpeaking, speechStarted, speechEnded
}

// Reset clears the detector state
func (v *VAD) Reset() {
	v.speech = 0
	v.silence = 0
	v.isSpeaking = false
}

// Energy returns the RMS energy of frame normalized to 0..1
func Energy(frame []int16) float64 {
	if len(frame) == 0 {
		return 0
	}

	var sum float64
	for _, s := range frame {
		normalized := float64(s) / 32768.0
		sum += normalized * normalized
	}
	return math.Sqrt(sum / float64(len(frame)))
}
