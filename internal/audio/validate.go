package audio

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxSpeechInput is the longest input the OpenAI speech endpoint accepts
const maxSpeechInput = 4096

// ValidateText checks that text can be spoken
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}
	if n := utf8.RuneCountInString(text); n > maxSpeechInput {
		return fmt.Errorf("text too long to speak: %d characters, limit is %d", n, maxSpeechInput)
	}
	return nil
}
