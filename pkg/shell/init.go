package shell

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"src.jfeed.sh/pkg/feedback"
	"src.jfeed.sh/pkg/store/storedefs"
)

// Persists retained state in the preferences store.
type prefsRetainer struct {
	prefs storedefs.Prefs
}

func (r prefsRetainer) RetainModes(encoded string) error {
	return r.put(prefMode, encoded)
}

func (r prefsRetainer) RetainFeedback(name string) error {
	return r.put(prefFeedback, name)
}

func (r prefsRetainer) put(key, value string) error {
	if err := r.prefs.Put(key, value); err != nil {
		return fmt.Errorf("cannot retain %s: %w", key, err)
	}
	return r.prefs.Flush()
}

// Reads a preference, treating a missing key as empty.
func (s *Session) pref(key string) (string, error) {
	v, err := s.prefs.Get(key)
	if errors.Is(err, storedefs.ErrNoKey) {
		return "", nil
	}
	return v, err
}

// Restores the retained modes, then sets the initial feedback mode: the one
// requested, or else the retained one.
func (s *Session) initFeedback(requested string) error {
	if s.prefs == nil {
		if requested != "" {
			return s.fb.SetFeedback(requested, false)
		}
		return nil
	}

	legacy := false
	encoded, err := s.pref(prefMode)
	if err == nil && encoded == "" {
		legacy = true
		encoded, err = s.pref(prefModeLegacy)
	}
	if err != nil {
		logger.Warn("cannot read retained modes", zap.Error(err))
	} else if encoded != "" {
		if err := s.fb.RestoreEncodedModes(encoded, legacy); err != nil {
			s.showError(err)
			// Modes under the legacy key are left alone, since older
			// versions may still read them.
			if !legacy {
				if err := s.prefs.Remove(prefMode); err != nil {
					logger.Warn("cannot remove corrupted modes", zap.Error(err))
				}
			}
		}
	}
	s.fb.SetRetainer(prefsRetainer{s.prefs})

	if requested != "" {
		return s.fb.SetFeedback(requested, false)
	}
	retained, err := s.pref(prefFeedback)
	if err != nil {
		logger.Warn("cannot read retained feedback mode", zap.Error(err))
		return nil
	}
	if retained != "" {
		if err := s.fb.SetFeedback(retained, true); err != nil {
			logger.Warn("cannot restore retained feedback mode",
				zap.String("name", retained), zap.Error(err))
		}
	}
	return nil
}

// Reset removes all retained state from prefs.
func Reset(prefs storedefs.Prefs) error {
	for _, key := range []string{prefModeLegacy, prefMode, prefFeedback} {
		if err := prefs.Remove(key); err != nil {
			return err
		}
	}
	return prefs.Flush()
}

// RetainedModes returns the modes retained in prefs, decoded. Corrupted
// modes are reported as an error.
func RetainedModes(prefs storedefs.Prefs) ([]*feedback.Mode, error) {
	s := &Session{prefs: prefs}
	encoded, err := s.pref(prefMode)
	if err != nil {
		return nil, err
	}
	legacy := false
	if encoded == "" {
		legacy = true
		if encoded, err = s.pref(prefModeLegacy); err != nil {
			return nil, err
		}
	}
	return feedback.DecodeModes(encoded, legacy)
}

// RetainedFeedback returns the name of the feedback mode retained in prefs,
// or "" if there is none.
func RetainedFeedback(prefs storedefs.Prefs) (string, error) {
	return (&Session{prefs: prefs}).pref(prefFeedback)
}
