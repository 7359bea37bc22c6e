package audio

import (
	"context"
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Voice != "" {
		t.Errorf("Expected empty voice (first installed), got '%s'", config.Voice)
	}
	if config.Speed != 150 {
		t.Errorf("Expected default speed 150, got %d", config.Speed)
	}
	if config.Amplitude != 90 {
		t.Errorf("Expected default amplitude 90, got %d", config.Amplitude)
	}
}

func TestNew(t *testing.T) {
	espeak, err := New(nil)
	if err != nil {
		if checkESpeakInstalled() != nil {
			t.Skip("espeak-ng not installed, skipping test")
		}
		t.Fatalf("New() failed: %v", err)
	}

	if espeak.Voice() == "" {
		t.Error("New() should pick a voice")
	}
}

func TestArgs(t *testing.T) {
	espeak := &ESpeak{config: &ESpeakConfig{Voice: "en", Speed: 150, Pitch: 50, Amplitude: 90}}

	want := []string{"-v", "en", "-s", "150", "-p", "50", "-a", "90", "--", "-hello"}
	if got := espeak.Args("-hello"); !reflect.DeepEqual(got, want) {
		t.Errorf("Args() = %v, want %v", got, want)
	}

	espeak.config.WordGap = 2
	got := espeak.Args("hi")
	if got[8] != "-g" || got[9] != "2" {
		t.Errorf("Args() with word gap = %v", got)
	}
}

func TestParseFirstVoice(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{
			name: "table",
			out: "Pty Language       Age/Gender VoiceName          File                 Other Languages\n" +
				" 5  af              --/M      Afrikaans          gmw/af\n" +
				" 5  am              --/M      Amharic            sem/am\n",
			want: "af",
		},
		{name: "header only", out: "Pty Language Age/Gender VoiceName File\n", want: ""},
		{name: "empty", out: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFirstVoice([]byte(tt.out)); got != tt.want {
				t.Errorf("parseFirstVoice() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetSpeed(t *testing.T) {
	espeak := &ESpeak{config: DefaultConfig()}

	tests := []struct {
		input    int
		expected int
	}{
		{150, 150},
		{50, 80},
		{500, 450},
		{200, 200},
	}

	for _, tt := range tests {
		espeak.SetSpeed(tt.input)
		if espeak.config.Speed != tt.expected {
			t.Errorf("SetSpeed(%d) resulted in speed %d, expected %d",
				tt.input, espeak.config.Speed, tt.expected)
		}
	}
}

func TestSetAmplitude(t *testing.T) {
	espeak := &ESpeak{config: DefaultConfig()}

	for input, expected := range map[int]int{90: 90, -5: 0, 300: 200} {
		espeak.SetAmplitude(input)
		if espeak.config.Amplitude != expected {
			t.Errorf("SetAmplitude(%d) = %d, expected %d", input, espeak.config.Amplitude, expected)
		}
	}
}

func TestSay_EmptyText(t *testing.T) {
	espeak := &ESpeak{config: DefaultConfig()}
	if err := espeak.Say(context.Background(), ""); err == nil {
		t.Error("Say() with empty text should return error")
	}
}

func TestESpeakProvider_Integration(t *testing.T) {
	if checkESpeakInstalled() != nil {
		t.Skip("espeak-ng not installed, skipping integration test")
	}

	provider, err := NewESpeakProvider(nil)
	if err != nil {
		t.Fatalf("NewESpeakProvider() failed: %v", err)
	}
	if provider.Name() != "espeak-ng" || provider.IsAvailable() != nil {
		t.Error("Provider should be available")
	}
	if err := provider.Speak(context.Background(), "   "); err == nil {
		t.Error("Speak() with blank text should return error")
	}
}
