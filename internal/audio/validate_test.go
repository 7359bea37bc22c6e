package audio

import (
	"strings"
	"testing"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"word", "hola", false},
		{"non latin", "ябълка", false},
		{"empty", "", true},
		{"whitespace", " \n\t", true},
		{"at limit", strings.Repeat("a", maxSpeechInput), false},
		{"too long", strings.Repeat("a", maxSpeechInput+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateText() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
