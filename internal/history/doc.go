// Package history keeps the ordered list of translations made in a session.
package history
