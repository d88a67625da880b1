// Package feedback implements feedback modes: named sets of formats that
// decide how a REPL reports each classified event, selected by a six-way
// classification (see Selector).
//
// A Feedback value is the registry of modes for one session. It is not safe
// for concurrent use.
package feedback

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"src.jfeed.sh/pkg/logutil"
	"src.jfeed.sh/pkg/must"
)

var logger = logutil.GetLogger("feedback")

// Retainer persists retained state on behalf of a Feedback.
type Retainer interface {
	// RetainModes persists the encoding of all retained modes.
	RetainModes(encoded string) error
	// RetainFeedback persists the name of the retained feedback mode.
	RetainFeedback(name string) error
}

// Feedback is the registry of feedback modes of a session.
type Feedback struct {
	modes   map[string]*Mode
	current *Mode
	// Mode name to encoded mode, for modes retained with /set mode -retain.
	retained map[string]string
	// Name of the mode retained with /set feedback -retain, if any.
	retainedCurrent string
	retainer        Retainer
}

// New creates a registry holding the predefined modes (verbose, normal,
// concise and silent), all read-only, with normal as the current mode.
func New() *Feedback {
	fb := newBare()
	must.OK(fb.RunScript(nopHandler{}, builtinScript))
	fb.MarkModesReadOnly()
	return fb
}

func newBare() *Feedback {
	return &Feedback{
		modes: map[string]*Mode{},
		// Placeholder until a mode is chosen.
		current:  NewMode("", false),
		retained: map[string]string{},
	}
}

// SetRetainer sets the Retainer used by the retaining operations. Without
// one, retained state only lives in memory.
func (fb *Feedback) SetRetainer(r Retainer) { fb.retainer = r }

// MarkModesReadOnly makes all existing modes read-only.
func (fb *Feedback) MarkModesReadOnly() {
	for _, m := range fb.modes {
		m.readOnly = true
	}
}

// ModeNames returns the names of all modes, sorted.
func (fb *Feedback) ModeNames() []string {
	names := make([]string, 0, len(fb.modes))
	for name := range fb.modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Current returns the current mode.
func (fb *Feedback) Current() *Mode { return fb.current }

// CurrentModeName returns the name of the current mode.
func (fb *Feedback) CurrentModeName() string { return fb.current.name }

// RetainedFeedback returns the name of the mode retained with /set feedback
// -retain, or "" if there is none.
func (fb *Feedback) RetainedFeedback() string { return fb.retainedCurrent }

// SearchMode finds a mode by name. An exact match wins; otherwise name must
// be a prefix of exactly one mode name.
func (fb *Feedback) SearchMode(name string) (*Mode, error) {
	if name == "" {
		return nil, ErrMissingModeName
	}
	if m, ok := fb.modes[name]; ok {
		return m, nil
	}
	var matches []string
	for _, n := range fb.ModeNames() {
		if strings.HasPrefix(n, name) {
			matches = append(matches, n)
		}
	}
	switch len(matches) {
	case 0:
		return nil, &UnknownModeError{Name: name, Modes: fb.ModeNames()}
	case 1:
		return fb.modes[matches[0]], nil
	default:
		return nil, &AmbiguousModeError{Name: name, Matches: matches}
	}
}

// CreateMode creates a new mode. Exactly one of command and quiet must be
// true. If copyFrom is not empty, the new mode starts as a copy of the mode
// it names (looked up with SearchMode).
func (fb *Feedback) CreateMode(name string, command, quiet bool, copyFrom string) error {
	if name == "" {
		return ErrMissingModeName
	}
	if _, exists := fb.modes[name]; exists {
		return fmt.Errorf("%w: %s", ErrModeExists, name)
	}
	if command == quiet {
		return ErrCommandOrQuiet
	}
	var m *Mode
	if copyFrom != "" {
		from, err := fb.SearchMode(copyFrom)
		if err != nil {
			return err
		}
		m = from.Copy(name, command)
	} else {
		m = NewMode(name, command)
	}
	fb.modes[name] = m
	logger.Debug("created mode", zap.String("name", name), zap.String("from", copyFrom))
	return nil
}

// DeleteMode deletes a mode. The current mode, predefined modes and the
// retained feedback mode cannot be deleted.
func (fb *Feedback) DeleteMode(name string) error {
	m, ok := fb.modes[name]
	if !ok {
		return &UnknownModeError{Name: name, Modes: fb.ModeNames()}
	}
	if err := fb.checkDeletable(m); err != nil {
		return err
	}
	delete(fb.modes, name)
	logger.Debug("deleted mode", zap.String("name", name))
	return nil
}

func (fb *Feedback) checkDeletable(m *Mode) error {
	switch {
	case m == fb.current:
		return fmt.Errorf("%w: %s", ErrDeleteCurrent, m.name)
	case m.readOnly:
		return fmt.Errorf("%w: %s", ErrReadOnly, m.name)
	case m.name == fb.retainedCurrent:
		return fmt.Errorf("%w: %s", ErrDeleteRetained, m.name)
	}
	return nil
}

// RetainMode snapshots a mode so that it survives restarts, and persists all
// retained modes through the Retainer.
func (fb *Feedback) RetainMode(name string) error {
	m, err := fb.SearchMode(name)
	if err != nil {
		return err
	}
	if m.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, m.name)
	}
	prev, had := fb.retained[m.name]
	fb.retained[m.name] = m.Encode()
	if err := fb.persistModes(); err != nil {
		fb.restoreRetained(m.name, prev, had)
		return err
	}
	return nil
}

// DeleteRetainedMode stops retaining a mode. The mode itself is kept for the
// session.
func (fb *Feedback) DeleteRetainedMode(name string) error {
	m, err := fb.SearchMode(name)
	if err != nil {
		return err
	}
	if m.name == fb.retainedCurrent {
		return fmt.Errorf("%w: %s", ErrDeleteRetained, m.name)
	}
	prev, had := fb.retained[m.name]
	delete(fb.retained, m.name)
	if err := fb.persistModes(); err != nil {
		fb.restoreRetained(m.name, prev, had)
		return err
	}
	return nil
}

func (fb *Feedback) restoreRetained(name, encoded string, had bool) {
	if had {
		fb.retained[name] = encoded
	} else {
		delete(fb.retained, name)
	}
}

func (fb *Feedback) persistModes() error {
	if fb.retainer == nil {
		return nil
	}
	return fb.retainer.RetainModes(fb.EncodeRetained())
}

// SetFeedback makes a mode current. With retain, the mode also becomes the
// retained feedback mode; it must then be predefined or retained.
func (fb *Feedback) SetFeedback(name string, retain bool) error {
	m, err := fb.SearchMode(name)
	if err != nil {
		return err
	}
	if retain {
		if _, ok := fb.retained[m.name]; !m.readOnly && !ok {
			return fmt.Errorf("%w: %s", ErrNotRetained, m.name)
		}
		if fb.retainer != nil {
			if err := fb.retainer.RetainFeedback(m.name); err != nil {
				return err
			}
		}
		fb.retainedCurrent = m.name
	}
	fb.current = m
	logger.Debug("feedback mode set", zap.String("name", m.name), zap.Bool("retain", retain))
	return nil
}

// Format renders the display field of the current mode for an event.
func (fb *Feedback) Format(e Event) string {
	return fb.current.FormatEvent("display", e)
}

// FormatField renders a field of the current mode for an event.
func (fb *Feedback) FormatField(field string, e Event) string {
	return fb.current.FormatEvent(field, e)
}

// TruncateVarValue truncates a variable value the way a value of a
// successfully added variable would be truncated.
func (fb *Feedback) TruncateVarValue(value string) string {
	return fb.current.TruncateValue(value,
		Of(VarValue, Added, Primary, OK, Unresolved0, Error0))
}

// ShouldDisplayCommandFluff reports whether informative command messages
// should be shown.
func (fb *Feedback) ShouldDisplayCommandFluff() bool { return fb.current.commandFluff }

// Prompt returns the prompt, with %s replaced by the ID of the next snippet.
func (fb *Feedback) Prompt(nextID string) string {
	return expandPositional(fb.current.prompt, nextID)
}

// ContinuationPrompt returns the continuation prompt, with %s replaced by the
// ID of the next snippet.
func (fb *Feedback) ContinuationPrompt(nextID string) string {
	return expandPositional(fb.current.contPrompt, nextID)
}

// Pre returns the prefix of command messages.
func (fb *Feedback) Pre() string { return fb.fixed("pre") }

// Post returns the suffix of command messages.
func (fb *Feedback) Post() string { return fb.fixed("post") }

// ErrorPre returns the prefix of error messages.
func (fb *Feedback) ErrorPre() string { return fb.fixed("errorpre") }

// ErrorPost returns the suffix of error messages.
func (fb *Feedback) ErrorPost() string { return fb.fixed("errorpost") }

func (fb *Feedback) fixed(field string) string {
	return expandPositional(fb.current.Format(field, All))
}
