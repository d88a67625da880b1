package diag

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Shower is implemented by errors that know how to show themselves.
type Shower interface {
	// Show takes an indentation string and shows.
	Show(indent string) string
}

var complaint = color.New(color.FgRed, color.Bold)

// ShowError writes an error to w. Errors that implement Shower (possibly
// wrapped) are shown with their Show method; other errors are written with
// Complain.
func ShowError(w io.Writer, err error) {
	var shower Shower
	if errors.As(err, &shower) {
		fmt.Fprintln(w, shower.Show(""))
	} else {
		Complain(w, err.Error())
	}
}

// Complain writes a message to w in bold red, followed by a newline. The
// colors are omitted when color.NoColor is set.
func Complain(w io.Writer, msg string) {
	fmt.Fprintln(w, complaint.Sprint(msg))
}

// Complainf is like Complain, but accepts a format string and arguments.
func Complainf(w io.Writer, format string, args ...any) {
	Complain(w, fmt.Sprintf(format, args...))
}

// Surrounds s with the markers, unless colors are turned off.
func mark(start, s, end string) string {
	if color.NoColor {
		return s
	}
	return start + s + end
}
