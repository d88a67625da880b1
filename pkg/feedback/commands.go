package feedback

import (
	_ "embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"src.jfeed.sh/pkg/argtok"
)

// MessageHandler receives the output of /set commands.
type MessageHandler interface {
	// Hard reports output the user asked for, like the answer to a query. It
	// is always shown.
	Hard(format string, args ...any)
	// Fluff reports informative messages, which hosts only show when the
	// current mode has command fluff.
	Fluff(format string, args ...any)
}

type nopHandler struct{}

func (nopHandler) Hard(string, ...any)  {}
func (nopHandler) Fluff(string, ...any) {}

//go:embed builtin.jsh
var builtinScript string

var validField = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

var setSubcommands = []string{"format", "truncation", "mode", "feedback", "prompt"}

// RunScript runs a script of /set commands, one per line. Empty lines and
// lines starting with # are ignored. It stops at the first failing command.
func (fb *Feedback) RunScript(mh MessageHandler, script string) error {
	for i, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rest, ok := strings.CutPrefix(line, "/set")
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			return fmt.Errorf("line %d: not a /set command: %s", i+1, line)
		}
		if err := fb.Set(mh, rest); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return nil
}

// Set runs a /set command; args is the command line after "/set". With no
// arguments, it shows the current feedback mode and the settings of all
// modes that are not predefined.
//
// Queries are answered through mh.Hard, and informative messages go to
// mh.Fluff. When Set returns an error, the registry is unchanged.
func (fb *Feedback) Set(mh MessageHandler, args string) error {
	tokens, err := argtok.Split(args)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		mh.Hard("/set feedback %s", fb.current.name)
		for _, name := range fb.ModeNames() {
			if m := fb.modes[name]; !m.readOnly {
				showLines(mh, m.Settings())
			}
		}
		return nil
	}
	sub, candidates := argtok.MatchPrefix(tokens[0].Text, setSubcommands)
	if sub == "" || tokens[0].Quoted {
		if len(candidates) > 1 {
			return fmt.Errorf("%w: %s matches %s",
				ErrUnknownSubcommand, tokens[0].Text, strings.Join(candidates, ", "))
		}
		return fmt.Errorf("%w: %s", ErrUnknownSubcommand, tokens[0].Text)
	}
	rest := tokens[1:]
	switch sub {
	case "format":
		return fb.setFormat(mh, rest)
	case "truncation":
		return fb.setTruncation(mh, rest)
	case "mode":
		return fb.setMode(mh, rest)
	case "feedback":
		return fb.setFeedback(mh, rest)
	default:
		return fb.setPrompt(mh, rest)
	}
}

func showLines(mh MessageHandler, lines []string) {
	for _, line := range lines {
		mh.Hard("%s", line)
	}
}

// Parses the arguments of commands that take no options.
func noOptions(tokens []argtok.Token) ([]argtok.Token, error) {
	_, args, err := argtok.Parse(tokens, nil)
	return args, err
}

// Looks up the mode named by the first argument, or all modes if there is
// none.
func (fb *Feedback) queriedModes(args []argtok.Token) ([]*Mode, error) {
	if len(args) == 0 {
		modes := make([]*Mode, 0, len(fb.modes))
		for _, name := range fb.ModeNames() {
			modes = append(modes, fb.modes[name])
		}
		return modes, nil
	}
	m, err := fb.SearchMode(args[0].Text)
	if err != nil {
		return nil, err
	}
	return []*Mode{m}, nil
}

// Looks up a mode that is about to be changed.
func (fb *Feedback) writableMode(name string) (*Mode, error) {
	m, err := fb.SearchMode(name)
	if err != nil {
		return nil, err
	}
	if m.readOnly {
		return nil, fmt.Errorf("%w: %s", ErrReadOnly, m.name)
	}
	return m, nil
}

// Parses selector arguments. No arguments means All.
func parseSelectors(args []argtok.Token) ([]Selector, error) {
	if len(args) == 0 {
		return []Selector{All}, nil
	}
	sels := make([]Selector, len(args))
	for i, arg := range args {
		if arg.Quoted {
			return nil, fmt.Errorf("%w: selector %q must not be quoted", ErrUnexpectedArg, arg.Text)
		}
		sel, err := ParseSelector(arg.Text)
		if err != nil {
			return nil, err
		}
		sels[i] = sel
	}
	return sels, nil
}

// /set format <mode> <field> "<format>" <selector>...
// /set format [<mode> [<field>]]
func (fb *Feedback) setFormat(mh MessageHandler, tokens []argtok.Token) error {
	args, err := noOptions(tokens)
	if err != nil {
		return err
	}
	if len(args) <= 2 {
		var field string
		if len(args) == 2 {
			field = args[1].Text
		}
		modes, err := fb.queriedModes(args)
		if err != nil {
			return err
		}
		for _, m := range modes {
			showLines(mh, m.formatLines(field))
		}
		return nil
	}
	m, err := fb.writableMode(args[0].Text)
	if err != nil {
		return err
	}
	field := args[1].Text
	if !validField.MatchString(field) || args[1].Quoted {
		return fmt.Errorf("%w: %s", ErrBadField, field)
	}
	if !args[2].Quoted {
		return fmt.Errorf("%w: %s", ErrMustBeQuoted, args[2].Text)
	}
	sels, err := parseSelectors(args[3:])
	if err != nil {
		return err
	}
	for _, sel := range sels {
		m.set(field, args[2].Text, sel)
	}
	return nil
}

// /set truncation <mode> <length> <selector>...
// /set truncation [<mode>]
func (fb *Feedback) setTruncation(mh MessageHandler, tokens []argtok.Token) error {
	args, err := noOptions(tokens)
	if err != nil {
		return err
	}
	if len(args) <= 1 {
		modes, err := fb.queriedModes(args)
		if err != nil {
			return err
		}
		for _, m := range modes {
			showLines(mh, m.truncationLines())
		}
		return nil
	}
	m, err := fb.writableMode(args[0].Text)
	if err != nil {
		return err
	}
	length, err := strconv.Atoi(args[1].Text)
	if err != nil || length < 0 || args[1].Quoted {
		return fmt.Errorf("%w: %s", ErrBadTruncation, args[1].Text)
	}
	sels, err := parseSelectors(args[2:])
	if err != nil {
		return err
	}
	for _, sel := range sels {
		m.set(truncationField, strconv.Itoa(length), sel)
	}
	return nil
}

var modeOptions = []*argtok.OptionSpec{
	{Name: "command"}, {Name: "quiet"}, {Name: "delete"}, {Name: "retain"}}

// /set mode <mode> [<old-mode>] -command|-quiet [-retain]
// /set mode -delete [-retain] <mode>
// /set mode -retain <mode>
// /set mode [<mode>]
func (fb *Feedback) setMode(mh MessageHandler, tokens []argtok.Token) error {
	opts, args, err := argtok.Parse(tokens, modeOptions)
	if err != nil {
		return err
	}
	var (
		command = argtok.Has(opts, "command")
		quiet   = argtok.Has(opts, "quiet")
		del     = argtok.Has(opts, "delete")
		retain  = argtok.Has(opts, "retain")
	)
	if len(opts) == 0 {
		if len(args) > 1 {
			return fmt.Errorf("%w: %s", ErrUnexpectedArg, args[1].Text)
		}
		if len(args) == 1 {
			if _, exists := fb.modes[args[0].Text]; !exists {
				return ErrCommandOrQuiet
			}
		}
		modes, err := fb.queriedModes(args)
		if err != nil {
			return err
		}
		for _, m := range modes {
			showLines(mh, m.Settings())
		}
		return nil
	}
	if len(args) == 0 {
		return ErrMissingModeName
	}
	name := args[0].Text
	switch {
	case del:
		if command || quiet {
			return fmt.Errorf("%w: -delete with -command or -quiet", ErrUnexpectedArg)
		}
		if len(args) > 1 {
			return fmt.Errorf("%w: %s", ErrUnexpectedArg, args[1].Text)
		}
		if retain {
			return fb.deleteModeAndRetained(mh, name)
		}
		if err := fb.DeleteMode(name); err != nil {
			return err
		}
		mh.Fluff("Deleted feedback mode: %s", name)
		return nil
	case command || quiet:
		if len(args) > 2 {
			return fmt.Errorf("%w: %s", ErrUnexpectedArg, args[2].Text)
		}
		var copyFrom string
		if len(args) == 2 {
			copyFrom = args[1].Text
		}
		if err := fb.CreateMode(name, command, quiet, copyFrom); err != nil {
			return err
		}
		if retain {
			if err := fb.RetainMode(name); err != nil {
				delete(fb.modes, name)
				return err
			}
		}
		mh.Fluff("Created new feedback mode: %s", name)
		return nil
	default:
		// Only -retain.
		if len(args) > 1 {
			return fmt.Errorf("%w: %s", ErrUnexpectedArg, args[1].Text)
		}
		if err := fb.RetainMode(name); err != nil {
			return err
		}
		mh.Fluff("Retained feedback mode: %s", name)
		return nil
	}
}

func (fb *Feedback) deleteModeAndRetained(mh MessageHandler, name string) error {
	m, ok := fb.modes[name]
	if !ok {
		return &UnknownModeError{Name: name, Modes: fb.ModeNames()}
	}
	if err := fb.checkDeletable(m); err != nil {
		return err
	}
	if err := fb.DeleteRetainedMode(name); err != nil {
		return err
	}
	delete(fb.modes, name)
	mh.Fluff("Deleted feedback mode: %s", name)
	return nil
}

// /set feedback [-retain] <mode>
// /set feedback -retain
// /set feedback
func (fb *Feedback) setFeedback(mh MessageHandler, tokens []argtok.Token) error {
	opts, args, err := argtok.Parse(tokens, []*argtok.OptionSpec{{Name: "retain"}})
	if err != nil {
		return err
	}
	retain := argtok.Has(opts, "retain")
	if len(args) > 1 {
		return fmt.Errorf("%w: %s", ErrUnexpectedArg, args[1].Text)
	}
	if len(args) == 0 {
		if retain {
			return fb.SetFeedback(fb.current.name, true)
		}
		mh.Hard("/set feedback %s", fb.current.name)
		mh.Hard("")
		mh.Hard("Available feedback modes:")
		for _, name := range fb.ModeNames() {
			mh.Hard("   %s", name)
		}
		if fb.retainedCurrent != "" && fb.retainedCurrent != fb.current.name {
			mh.Hard("")
			mh.Hard("Retained feedback mode: %s", fb.retainedCurrent)
		}
		return nil
	}
	if err := fb.SetFeedback(args[0].Text, retain); err != nil {
		return err
	}
	mh.Fluff("Feedback mode: %s", fb.current.name)
	return nil
}

// /set prompt <mode> "<prompt>" ["<continuation-prompt>"]
// /set prompt [<mode>]
func (fb *Feedback) setPrompt(mh MessageHandler, tokens []argtok.Token) error {
	args, err := noOptions(tokens)
	if err != nil {
		return err
	}
	if len(args) <= 1 {
		modes, err := fb.queriedModes(args)
		if err != nil {
			return err
		}
		for _, m := range modes {
			mh.Hard("%s", m.promptLine())
		}
		return nil
	}
	if len(args) > 3 {
		return fmt.Errorf("%w: %s", ErrUnexpectedArg, args[3].Text)
	}
	m, err := fb.writableMode(args[0].Text)
	if err != nil {
		return err
	}
	for _, arg := range args[1:] {
		if !arg.Quoted {
			return fmt.Errorf("%w: %s", ErrMustBeQuoted, arg.Text)
		}
	}
	prompt, cont := args[1].Text, m.contPrompt
	if len(args) == 3 {
		cont = args[2].Text
	}
	return m.SetPrompts(prompt, cont)
}

// Settings returns the /set commands that recreate the mode.
func (m *Mode) Settings() []string {
	lines := []string{m.modeLine(), m.promptLine()}
	lines = append(lines, m.truncationLines()...)
	return append(lines, m.formatLines("")...)
}

func (m *Mode) modeLine() string {
	if m.commandFluff {
		return "/set mode " + m.name + " -command"
	}
	return "/set mode " + m.name + " -quiet"
}

func (m *Mode) promptLine() string {
	return fmt.Sprintf("/set prompt %s %s %s",
		m.name, argtok.Quote(m.prompt), argtok.Quote(m.contPrompt))
}

func (m *Mode) truncationLines() []string {
	var lines []string
	for _, s := range m.settings[truncationField] {
		lines = append(lines, withSelector("/set truncation "+m.name+" "+s.format, s.sel))
	}
	return lines
}

// Returns the /set format commands for a field, or all fields if field is
// empty.
func (m *Mode) formatLines(field string) []string {
	var lines []string
	for _, f := range m.fields {
		if f == truncationField || (field != "" && f != field) {
			continue
		}
		for _, s := range m.settings[f] {
			lines = append(lines, withSelector(
				fmt.Sprintf("/set format %s %s %s", m.name, f, argtok.Quote(s.format)), s.sel))
		}
	}
	return lines
}

func withSelector(line string, sel Selector) string {
	if sel.IsAll() {
		return line
	}
	return line + " " + sel.String()
}
