// Package session holds the state of one translator window and the
// operations a presentation layer drives: language selection, translation,
// recording, speech output, history and export.
//
// A Session is owned by one goroutine (the GUI event loop, or a Loop). Its
// methods must only be called there. Background work such as recording and
// speech output never touches the state directly, results are handed back
// through the Poster given at construction.
package session
