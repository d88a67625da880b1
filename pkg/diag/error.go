// Package diag contains building blocks for errors that point into a piece
// of text, and for showing them to the user.
package diag

import (
	"fmt"

	"src.jfeed.sh/pkg/strutil"
)

// Error is an error with a Context.
type Error struct {
	Type    string
	Message string
	Context Context
}

// Error returns a one-line representation of the error, like
// "selector error: [selector]:1:6: not a valid selector".
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Type, e.Context.Describe(), e.Message)
}

// Range returns the range of the error.
func (e *Error) Range() Ranging { return e.Context.Range() }

// Markers around the message in Show. Tests override them.
var (
	messageStart = "\033[31;1m"
	messageEnd   = "\033[m"
)

// Show shows the error, with the relevant source on a second line.
func (e *Error) Show(indent string) string {
	header := strutil.Title(e.Type) + ": " + mark(messageStart, e.Message, messageEnd) + "\n"
	return header + indent + "  " + e.Context.ShowCompact(indent+"  ")
}
