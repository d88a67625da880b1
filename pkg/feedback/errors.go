package feedback

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by operations on modes and the registry. They are wrapped
// with the name of the mode or the offending argument, so use errors.Is to
// test for them.
var (
	ErrReadOnly          = errors.New("not valid with a predefined mode")
	ErrModeExists        = errors.New("expected a new feedback mode name, mode already exists")
	ErrCommandOrQuiet    = errors.New("specify either '-command' or '-quiet'")
	ErrDeleteCurrent     = errors.New("the current feedback mode cannot be deleted")
	ErrDeleteRetained    = errors.New("the retained feedback mode cannot be deleted")
	ErrNotRetained       = errors.New("a retained feedback mode must be predefined or retained with '/set mode -retain'")
	ErrRetainedCorrupted = errors.New("retained feedback modes are corrupted, they have been discarded")
	ErrBadTruncation     = errors.New("truncation length must be a non-negative integer")
	ErrMissingModeName   = errors.New("expected a feedback mode name")
	ErrMissingField      = errors.New("expected a field name")
	ErrBadField          = errors.New("field name must be an identifier")
	ErrMustBeQuoted      = errors.New("format must be quoted")
	ErrUnexpectedArg     = errors.New("unexpected argument")
	ErrUnknownSubcommand = errors.New("unknown /set subcommand")
)

// UnknownModeError is returned when a mode name matches no mode.
type UnknownModeError struct {
	Name string
	// Modes are the names of all modes, for showing to the user.
	Modes []string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("does not match any current feedback mode: %s", e.Name)
}

// AmbiguousModeError is returned when a mode name is a prefix of more than
// one mode.
type AmbiguousModeError struct {
	Name    string
	Matches []string
}

func (e *AmbiguousModeError) Error() string {
	return fmt.Sprintf("matches more than one current feedback mode: %s (%s)",
		e.Name, strings.Join(e.Matches, ", "))
}
