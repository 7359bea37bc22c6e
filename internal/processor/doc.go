// Package processor wires the travelspeak components together. It builds
// the logger, probes the external services, opens the history and settings
// stores and runs either the GUI or one of the command line operations on
// top of a session.
package processor
