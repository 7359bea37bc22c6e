// Package gui implements the travelspeak desktop window with fyne. All
// state lives in a session.Session; the window only forwards user actions
// to it and renders the session callbacks.
package gui
