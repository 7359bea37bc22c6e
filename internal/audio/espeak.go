package audio

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ESpeakConfig holds configuration for espeak-ng speech
type ESpeakConfig struct {
	Voice     string // Voice name (e.g., "en", "en+f3"); empty picks the first installed
	Speed     int    // Speech speed in words per minute (default: 150)
	Pitch     int    // Pitch adjustment, 0 to 99 (default: 50)
	Amplitude int    // Volume/amplitude, 0 to 200 (default: 100)
	WordGap   int    // Gap between words in 10ms units (default: 0)
}

// DefaultConfig returns a rate of 150 wpm at 90% volume
func DefaultConfig() *ESpeakConfig {
	return &ESpeakConfig{
		Speed:     150,
		Pitch:     50,
		Amplitude: 90,
		WordGap:   0,
	}
}

// ESpeak provides an interface to the espeak-ng text-to-speech engine
type ESpeak struct {
	config *ESpeakConfig
}

// New creates a new ESpeak instance with the given configuration. The voice
// is fixed here, later changes to the installed voices are not picked up.
func New(config *ESpeakConfig) (*ESpeak, error) {
	if err := checkESpeakInstalled(); err != nil {
		return nil, err
	}

	if config == nil {
		config = DefaultConfig()
	}
	c := *config
	if c.Voice == "" {
		c.Voice = FirstVoice()
	}

	return &ESpeak{config: &c}, nil
}

// Args builds the espeak-ng command line for text
func (e *ESpeak) Args(text string) []string {
	args := []string{
		"-v", e.config.Voice,
		"-s", fmt.Sprintf("%d", e.config.Speed),
		"-p", fmt.Sprintf("%d", e.config.Pitch),
		"-a", fmt.Sprintf("%d", e.config.Amplitude),
	}

	if e.config.WordGap > 0 {
		args = append(args, "-g", fmt.Sprintf("%d", e.config.WordGap))
	}

	// "--" keeps text starting with a dash from being read as a flag.
	return append(args, "--", text)
}

// Say speaks text on the default audio device and waits for it to finish
func (e *ESpeak) Say(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("text cannot be empty")
	}

	cmd := exec.CommandContext(ctx, "espeak-ng", e.Args(text)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}

// Voice returns the voice in use
func (e *ESpeak) Voice() string {
	return e.config.Voice
}

// SetSpeed updates the speech speed
func (e *ESpeak) SetSpeed(speed int) {
	if speed < 80 {
		speed = 80
	} else if speed > 450 {
		speed = 450
	}
	e.config.Speed = speed
}

// SetAmplitude updates the volume/amplitude (0-200, 100 is default)
func (e *ESpeak) SetAmplitude(amplitude int) {
	if amplitude < 0 {
		amplitude = 0
	} else if amplitude > 200 {
		amplitude = 200
	}
	e.config.Amplitude = amplitude
}

// checkESpeakInstalled verifies that espeak-ng is available on the system
func checkESpeakInstalled() error {
	cmd := exec.Command("espeak-ng", "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

// FirstVoice returns the first voice listed by espeak-ng, or "en"
func FirstVoice() string {
	out, err := exec.Command("espeak-ng", "--voices").Output()
	if err != nil {
		return "en"
	}
	if voice := parseFirstVoice(out); voice != "" {
		return voice
	}
	return "en"
}

// parseFirstVoice reads the language column of the first row of the
// "espeak-ng --voices" table:
//
//	Pty Language       Age/Gender VoiceName          File
//	 5  af              --/M      Afrikaans          gmw/af
func parseFirstVoice(out []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	header := true
	for scanner.Scan() {
		if header {
			header = false
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 {
			return fields[1]
		}
	}
	return ""
}

// ESpeakProvider implements Provider interface for espeak-ng
type ESpeakProvider struct {
	espeak *ESpeak
}

// NewESpeakProvider creates a new espeak-ng provider
func NewESpeakProvider(config *ESpeakConfig) (Provider, error) {
	espeak, err := New(config)
	if err != nil {
		return nil, err
	}
	return &ESpeakProvider{espeak: espeak}, nil
}

// Speak speaks text through espeak-ng
func (p *ESpeakProvider) Speak(ctx context.Context, text string) error {
	if err := ValidateText(text); err != nil {
		return err
	}
	return p.espeak.Say(ctx, text)
}

// Name returns the provider name
func (p *ESpeakProvider) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng is installed
func (p *ESpeakProvider) IsAvailable() error {
	return checkESpeakInstalled()
}
