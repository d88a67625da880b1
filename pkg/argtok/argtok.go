// Package argtok splits command lines into arguments and parses their
// options.
//
// The syntax is that of REPL commands like "/set format mode field "fmt"
// sel": arguments are separated by whitespace, and may be quoted with single
// or double quotes, within which a backslash escapes the next character.
// Options are unquoted arguments starting with "-"; they have a single dash,
// no short form and no argument, and may be abbreviated to any unique prefix.
package argtok

import (
	"fmt"
	"sort"
	"strings"

	"src.jfeed.sh/pkg/errutil"
)

// Token is an argument of a command line.
type Token struct {
	// The text of the argument, with quotes removed and escapes applied.
	Text string
	// Whether any part of the argument was quoted.
	Quoted bool
	// Byte range of the argument in the command line.
	From, To int
}

// IsOption reports whether the token is an option: unquoted, starting with
// "-" and with at least one more character.
func (t Token) IsOption() bool {
	return !t.Quoted && len(t.Text) > 1 && t.Text[0] == '-'
}

// UnterminatedError is returned by Split when a quote is not closed.
type UnterminatedError struct {
	Quote rune
	// Position of the opening quote.
	From int
}

func (e *UnterminatedError) Error() string {
	return fmt.Sprintf("unterminated %c quote at %d", e.Quote, e.From)
}

// Split splits a command line into tokens.
func Split(line string) ([]Token, error) {
	var (
		tokens  []Token
		sb      strings.Builder
		cur     *Token
		quote   rune
		quoteAt int
		escape  bool
	)
	for i, r := range line {
		switch {
		case escape:
			sb.WriteRune(unescape(r))
			escape = false
		case quote != 0 && r == '\\':
			escape = true
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			sb.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if cur != nil {
				cur.Text, cur.To = sb.String(), i
				tokens = append(tokens, *cur)
				cur = nil
				sb.Reset()
			}
		default:
			if cur == nil {
				cur = &Token{From: i}
			}
			if r == '"' || r == '\'' {
				quote, quoteAt = r, i
				cur.Quoted = true
			} else {
				sb.WriteRune(r)
			}
		}
	}
	if quote != 0 {
		return nil, &UnterminatedError{quote, quoteAt}
	}
	if cur != nil {
		cur.Text, cur.To = sb.String(), len(line)
		tokens = append(tokens, *cur)
	}
	return tokens, nil
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return r
	}
}

// Quote returns s as a double-quoted argument that Split turns back into s.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// OptionSpec is an option accepted by a command.
type OptionSpec struct {
	// Name of the option, without the leading dash.
	Name string
}

// Option is a parsed option.
type Option struct {
	// The matched spec; for unknown or ambiguous options, a spec made up from
	// the text of the option.
	Spec    *OptionSpec
	Unknown bool
	// Names of the specs matched by an ambiguous abbreviation.
	Candidates []string
	Token      Token
}

// Parse separates options from other arguments. Options may appear anywhere
// among the arguments. The error combines the problems with all unknown and
// ambiguous options; the options are returned even then.
func Parse(tokens []Token, specs []*OptionSpec) ([]*Option, []Token, error) {
	var (
		opts []*Option
		args []Token
		err  error
	)
	for _, tok := range tokens {
		if !tok.IsOption() {
			args = append(args, tok)
			continue
		}
		opt := parseOption(tok, specs)
		switch {
		case len(opt.Candidates) > 1:
			err = errutil.Multi(err, fmt.Errorf("ambiguous option %s: matches %s",
				tok.Text, strings.Join(opt.Candidates, ", ")))
		case opt.Unknown:
			err = errutil.Multi(err, fmt.Errorf("unknown option %s", tok.Text))
		}
		opts = append(opts, opt)
	}
	return opts, args, err
}

func parseOption(tok Token, specs []*OptionSpec) *Option {
	name := tok.Text[1:]
	var matches []*OptionSpec
	for _, spec := range specs {
		if spec.Name == name {
			return &Option{Spec: spec, Token: tok}
		}
		if strings.HasPrefix(spec.Name, name) {
			matches = append(matches, spec)
		}
	}
	if len(matches) == 1 {
		return &Option{Spec: matches[0], Token: tok}
	}
	opt := &Option{Spec: &OptionSpec{name}, Unknown: true, Token: tok}
	for _, m := range matches {
		opt.Candidates = append(opt.Candidates, "-"+m.Name)
	}
	sort.Strings(opt.Candidates)
	return opt
}

// Has reports whether an option with the given spec name was parsed.
func Has(opts []*Option, name string) bool {
	for _, opt := range opts {
		if !opt.Unknown && opt.Spec.Name == name {
			return true
		}
	}
	return false
}

// Texts returns the texts of the tokens.
func Texts(tokens []Token) []string {
	texts := make([]string, len(tokens))
	for i, tok := range tokens {
		texts[i] = tok.Text
	}
	return texts
}

// MatchPrefix finds the word that s names: either s itself, or the only word
// s is a prefix of. It returns all candidates when s is ambiguous, and none
// when it matches nothing.
func MatchPrefix(s string, words []string) (string, []string) {
	var matches []string
	for _, w := range words {
		if w == s {
			return w, nil
		}
		if strings.HasPrefix(w, s) {
			matches = append(matches, w)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	return "", matches
}
