package shell

import (
	"errors"
	"fmt"
	"strings"

	"src.jfeed.sh/pkg/argtok"
	"src.jfeed.sh/pkg/feedback"
)

// ErrNoEvaluator is returned for snippets when the session has no
// Evaluator.
var ErrNoEvaluator = errors.New("no evaluator: only /event can raise events")

type command struct {
	name    string
	args    string
	summary string
	run     func(s *Session, args string) error
}

var commands []command

func init() {
	commands = []command{
		{"set", "feedback|mode|prompt|truncation|format ...",
			"set configuration information", (*Session).runSet},
		{"event", "{case: ..., name: ...}",
			"render a classified event with the current feedback mode", (*Session).runEvent},
		{"help", "[command|set|selectors]",
			"get information about using the shell", (*Session).runHelp},
		{"exit", "", "exit the shell", (*Session).runExit},
	}
}

// Finds a command by name or unique prefix, with or without the slash.
func lookupCommand(name string) (*command, error) {
	name = strings.TrimPrefix(name, "/")
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}
	match, candidates := argtok.MatchPrefix(name, names)
	if match == "" {
		if len(candidates) > 1 {
			return nil, fmt.Errorf("command: /%s is ambiguous: /%s",
				name, strings.Join(candidates, ", /"))
		}
		return nil, fmt.Errorf("invalid command: /%s", name)
	}
	for i := range commands {
		if commands[i].name == match {
			return &commands[i], nil
		}
	}
	panic("unreachable")
}

// RunLine runs one complete line of input: a REPL command if it starts with
// "/", otherwise a snippet. Errors are shown, not returned.
func (s *Session) RunLine(line string) {
	if err := s.runLine(line); err != nil {
		s.showError(err)
	}
}

func (s *Session) runLine(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	if !strings.HasPrefix(trimmed, "/") {
		return s.evalSnippet(line)
	}
	name, args, _ := strings.Cut(trimmed, " ")
	cmd, err := lookupCommand(name)
	if err != nil {
		return err
	}
	return cmd.run(s, strings.TrimSpace(args))
}

func (s *Session) evalSnippet(code string) error {
	if s.ev == nil {
		return ErrNoEvaluator
	}
	events, err := s.ev.Eval(code)
	if err != nil {
		return err
	}
	s.render(events)
	return nil
}

func (s *Session) runSet(args string) error {
	return s.fb.Set(s, args)
}

func (s *Session) runEvent(args string) error {
	if args == "" {
		return errors.New("expected an event")
	}
	e, err := ParseEvent(args)
	if err != nil {
		return err
	}
	s.render([]feedback.Event{e})
	return nil
}

func (s *Session) runExit(args string) error {
	if args != "" {
		return fmt.Errorf("unexpected argument to /exit: %s", args)
	}
	s.exited = true
	s.Fluff("Goodbye")
	return nil
}
