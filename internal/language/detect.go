package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Detect guesses the language of text. It reports false when the guess is
// not reliable or names a language outside the catalog.
func Detect(text string) (Language, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Language{}, false
	}

	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return Language{}, false
	}

	code := info.Lang.Iso6391()
	if code == "zh" {
		// whatlanggo does not tell the two Chinese scripts apart.
		code = "zh-cn"
	}
	return ByCode(code)
}
