// Package language holds the fixed catalog of languages the translator
// offers, keyed by display name and by short language code.
package language
