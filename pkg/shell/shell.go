// Package shell is the REPL host of jfeed. It reads lines, runs REPL
// commands and renders the events raised by snippets through the current
// feedback mode.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"src.jfeed.sh/pkg/diag"
	"src.jfeed.sh/pkg/feedback"
	"src.jfeed.sh/pkg/logutil"
	"src.jfeed.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("shell")

// Preference keys.
const (
	// Retained modes in the layout used before the record case existed.
	prefModeLegacy = "MODE"
	// Retained modes in the current layout.
	prefMode = "MODE2"
	// Mode retained with /set feedback -retain.
	prefFeedback = "FEEDBACK"
)

// Evaluator evaluates snippets on behalf of the shell.
type Evaluator interface {
	// Complete reports whether code is a complete snippet. The shell keeps
	// reading continuation lines until it is.
	Complete(code string) bool
	// Eval evaluates a complete snippet and returns the events it raised.
	Eval(code string) ([]feedback.Event, error)
}

// Config keeps the configuration of a Session.
type Config struct {
	// Where retained modes live. If nil, they only live in memory.
	Prefs storedefs.Prefs
	// Name (or unique prefix) of the initial feedback mode. If empty, the
	// retained feedback mode is used, or normal if there is none.
	Feedback string
	// If nil, only events given with /event are rendered.
	Evaluator Evaluator
	// Whether to write prompts.
	Interactive bool
}

// Session is a REPL session. It is not safe for concurrent use.
type Session struct {
	fb     *feedback.Feedback
	prefs  storedefs.Prefs
	ev     Evaluator
	out    io.Writer
	errOut io.Writer
	prompt bool
	// ID of the next snippet, shown in prompts.
	nextID int
	exited bool
}

// NewSession creates a session writing to out and errOut, and initializes
// the feedback modes. A non-nil error means that the session is usable but
// the requested feedback mode could not be set.
func NewSession(out, errOut io.Writer, cfg Config) (*Session, error) {
	s := &Session{
		fb:     feedback.New(),
		prefs:  cfg.Prefs,
		ev:     cfg.Evaluator,
		out:    out,
		errOut: errOut,
		prompt: cfg.Interactive,
		nextID: 1,
	}
	err := s.initFeedback(cfg.Feedback)
	return s, err
}

// Feedback returns the feedback registry of the session.
func (s *Session) Feedback() *feedback.Feedback { return s.fb }

// Exited reports whether /exit has been run.
func (s *Session) Exited() bool { return s.exited }

// Hard writes a message the user asked for, with the prefix and suffix of
// the current mode.
func (s *Session) Hard(format string, args ...any) {
	fmt.Fprint(s.out, decorate(fmt.Sprintf(format, args...), s.fb.Pre(), s.fb.Post()))
}

// Fluff writes an informative message if the current mode shows them.
func (s *Session) Fluff(format string, args ...any) {
	if s.fb.ShouldDisplayCommandFluff() {
		s.Hard(format, args...)
	}
}

// Puts pre before every line of msg, and post after every line.
func decorate(msg, pre, post string) string {
	return pre + strings.ReplaceAll(msg, "\n", post+pre) + post
}

// Shows an error with the error prefix of the current mode. Errors carrying
// a source context are shown with it.
func (s *Session) showError(err error) {
	logger.Debug("command failed", zap.Error(err))
	var shower diag.Shower
	if errors.As(err, &shower) {
		diag.ShowError(s.errOut, err)
		return
	}
	var sb strings.Builder
	diag.ShowError(&sb, err)
	fmt.Fprint(s.errOut, decorate(strings.TrimSuffix(sb.String(), "\n"),
		s.fb.ErrorPre(), s.fb.ErrorPost()))
}

// Renders events through the current mode and advances the snippet ID.
func (s *Session) render(events []feedback.Event) {
	for _, e := range events {
		fmt.Fprint(s.out, s.fb.Format(e))
	}
	s.nextID++
}

func (s *Session) promptString(continuation bool) string {
	id := strconv.Itoa(s.nextID)
	if continuation {
		return s.fb.ContinuationPrompt(id)
	}
	return s.fb.Prompt(id)
}
