package internal

import (
	"strings"
	"unicode/utf8"
)

// TruncateRunes returns at most n runes of s. It never splits a character.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// JoinWords appends word to text separated by a single space, unless text
// is blank in which case word replaces it.
func JoinWords(text, word string) string {
	if strings.TrimSpace(text) == "" {
		return word
	}
	return strings.TrimRight(text, " \t\r\n") + " " + word
}
