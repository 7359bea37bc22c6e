// Package speech captures utterances from the microphone and turns them into
// text with a recognition service.
//
// The capture loop (Capture) listens for one utterance at a time, hands it to
// a Recognizer and reports the text through a callback. Silence and
// unintelligible audio are skipped; any other failure ends the loop.
package speech
