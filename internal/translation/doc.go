// Package translation provides the translation backends used by a session:
// networked translators backed by OpenAI or Gemini, guarded by a circuit
// breaker and a response cache, and an offline phrase table used when no
// networked translator can be constructed.
package translation
