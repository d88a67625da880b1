// Package errutil contains helpers for working with errors.
package errutil

import "strings"

// Multi combines errors into one. Nil errors are dropped; if nothing is left
// Multi returns nil, and if a single error is left it is returned as is.
// Otherwise the result reports all the messages, and errors.Is and errors.As
// see each of the combined errors.
//
// Errors that are themselves results of Multi are flattened, so
//
//	Multi(Multi(err1, err2), err3)
//
// is the same as Multi(err1, err2, err3).
func Multi(errs ...error) error {
	var nonNil multiError
	for _, err := range errs {
		switch err := err.(type) {
		case nil:
		case multiError:
			nonNil = append(nonNil, err...)
		default:
			nonNil = append(nonNil, err)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return nonNil
	}
}

type multiError []error

func (me multiError) Error() string {
	msgs := make([]string, len(me))
	for i, err := range me {
		msgs[i] = err.Error()
	}
	return "multiple errors: " + strings.Join(msgs, "; ")
}

func (me multiError) Unwrap() []error { return me }
