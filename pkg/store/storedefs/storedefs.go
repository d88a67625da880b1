// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// do not need to depend on the concrete implementation.
package storedefs

import "errors"

// ErrNoKey is returned by Prefs.Get when there is no such key.
var ErrNoKey = errors.New("no such key")

// Prefs is a persistent map from string keys to string values.
type Prefs interface {
	// Get returns the value of a key, or ErrNoKey.
	Get(key string) (string, error)
	Put(key, value string) error
	// Remove removes a key. Removing a key that does not exist is not an
	// error.
	Remove(key string) error
	// Keys returns all keys, sorted.
	Keys() ([]string, error)
	// Flush makes sure that all changes have reached permanent storage.
	Flush() error
}
