package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"src.jfeed.sh/pkg/strutil"
)

// Interact runs the REPL loop, reading from in until EOF or /exit.
func (s *Session) Interact(in io.Reader) error {
	r := bufio.NewReader(in)
	var pending strings.Builder
	for !s.exited {
		if s.prompt {
			fmt.Fprint(s.out, s.promptString(pending.Len() > 0))
		}
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		if line != "" {
			s.feed(&pending, strutil.ChopLineEnding(line))
		}
		if err == io.EOF {
			break
		}
	}
	if pending.Len() > 0 && !s.exited {
		// Incomplete snippet at EOF; let the evaluator report it.
		s.RunLine(pending.String())
	}
	if s.prompt && !s.exited {
		fmt.Fprintln(s.out)
	}
	logger.Debug("session ended", zap.Int("snippets", s.nextID-1))
	return nil
}

// Adds a line to the pending snippet, and runs it once complete. Commands
// are only recognized at the start of a snippet.
func (s *Session) feed(pending *strings.Builder, line string) {
	if pending.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), "/") {
		s.RunLine(line)
		return
	}
	if pending.Len() > 0 {
		pending.WriteString("\n")
	}
	pending.WriteString(line)
	if s.ev == nil || s.ev.Complete(pending.String()) {
		code := pending.String()
		pending.Reset()
		s.RunLine(code)
	}
}

// RunScript runs the lines of a script as if they were typed in, without
// prompts.
func (s *Session) RunScript(script string) error {
	prompt := s.prompt
	s.prompt = false
	defer func() { s.prompt = prompt }()
	return s.Interact(strings.NewReader(script))
}
