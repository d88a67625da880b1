package feedback

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Internal field holding the truncation length. It cannot be named in a
// format, since field names in /set format must be identifiers.
const truncationField = "<truncation>"

// Limit on nested {field} expansion. A field that (directly or indirectly)
// refers to itself expands to an empty string once the limit is reached.
const maxFieldDepth = 64

// Placeholders for the positional arguments that are not available in a
// given context.
const (
	noErrorsArg = "*cannot-use-errors-here*"
	noErrArg    = "*cannot-use-err-here*"
)

var fieldPattern = regexp.MustCompile(`\{(.*?)\}`)

type setting struct {
	format string
	sel    Selector
}

// Mode is a named set of selector-guarded formats, plus the prompts.
//
// Within the settings of one field, the most recently added setting whose
// selector covers the query wins. Adding a setting first removes all existing
// settings of the field whose selectors are included in the new one, so that
// the list never holds a setting that can no longer be reached.
type Mode struct {
	name         string
	commandFluff bool
	prompt       string
	contPrompt   string
	// Field names in order of first definition.
	fields   []string
	settings map[string][]setting
	readOnly bool
}

// NewMode creates a mode with the positional fields, the default prefixes
// and the default prompts.
func NewMode(name string, commandFluff bool) *Mode {
	m := &Mode{
		name:         name,
		commandFluff: commandFluff,
		prompt:       "\njshell> ",
		contPrompt:   "   ...> ",
		settings:     map[string][]setting{},
	}
	m.set("name", "%1$s", All)
	m.set("type", "%2$s", All)
	m.set("value", "%3$s", All)
	m.set("unresolved", "%4$s", All)
	m.set("errors", "%5$s", All)
	m.set("err", "%6$s", All)

	m.set("errorline", "    {err}%n", All)

	m.set("pre", "|  ", All)
	m.set("post", "%n", All)
	m.set("errorpre", "|  ", All)
	m.set("errorpost", "%n", All)
	return m
}

func newEmptyMode(name string, commandFluff bool, prompt, contPrompt string) *Mode {
	return &Mode{
		name: name, commandFluff: commandFluff,
		prompt: prompt, contPrompt: contPrompt,
		settings: map[string][]setting{},
	}
}

// Copy returns a writable copy of the mode with a new name and fluff setting.
func (m *Mode) Copy(name string, commandFluff bool) *Mode {
	c := newEmptyMode(name, commandFluff, m.prompt, m.contPrompt)
	c.fields = append([]string(nil), m.fields...)
	for field, ss := range m.settings {
		c.settings[field] = append([]setting(nil), ss...)
	}
	return c
}

// Name returns the name of the mode.
func (m *Mode) Name() string { return m.name }

// CommandFluff reports whether informative command messages are shown.
func (m *Mode) CommandFluff() bool { return m.commandFluff }

// ReadOnly reports whether the mode is predefined and cannot be changed.
func (m *Mode) ReadOnly() bool { return m.readOnly }

// Prompts returns the prompt and the continuation prompt.
func (m *Mode) Prompts() (string, string) { return m.prompt, m.contPrompt }

// Fields returns the names of the user-visible fields, in order of first
// definition.
func (m *Mode) Fields() []string {
	var fields []string
	for _, f := range m.fields {
		if f != truncationField {
			fields = append(fields, f)
		}
	}
	return fields
}

// Set adds a setting for a field. It fails without touching the mode if the
// mode is read-only.
func (m *Mode) Set(field, format string, sel Selector) error {
	if m.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, m.name)
	}
	m.set(field, format, sel)
	return nil
}

// SetTruncation sets the truncation length for values matched by sel.
func (m *Mode) SetTruncation(length int, sel Selector) error {
	if length < 0 {
		return fmt.Errorf("%w: %d", ErrBadTruncation, length)
	}
	return m.Set(truncationField, strconv.Itoa(length), sel)
}

// SetPrompts sets the prompt and the continuation prompt.
func (m *Mode) SetPrompts(prompt, contPrompt string) error {
	if m.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, m.name)
	}
	m.prompt, m.contPrompt = prompt, contPrompt
	return nil
}

func (m *Mode) set(field, format string, sel Selector) {
	old, ok := m.settings[field]
	if !ok {
		m.fields = append(m.fields, field)
	}
	kept := old[:0:0]
	for _, s := range old {
		if !s.sel.IncludedIn(sel) {
			kept = append(kept, s)
		}
	}
	m.settings[field] = append(kept, setting{format, sel})
}

// Format resolves a field for the query selector, expanding {field}
// references recursively. Unknown fields and fields without a matching
// setting resolve to an empty string.
func (m *Mode) Format(field string, query Selector) string {
	return m.format(field, query, 0)
}

func (m *Mode) format(field string, query Selector, depth int) string {
	if depth >= maxFieldDepth {
		return ""
	}
	ss := m.settings[field]
	var format string
	for i := len(ss) - 1; i >= 0; i-- {
		if ss[i].sel.Covers(query) {
			format = ss[i].format
			break
		}
	}
	if format == "" {
		return ""
	}
	return fieldPattern.ReplaceAllStringFunc(format, func(ref string) string {
		return m.format(ref[1:len(ref)-1], query, depth+1)
	})
}

// FormatEvent renders a field for an event. The value is truncated, each
// error line is rendered through the errorline field, and the positional
// arguments %1$s to %6$s are substituted with the name, type, value,
// unresolved names, rendered errors and (in errorline only) the error line.
func (m *Mode) FormatEvent(field string, e Event) string {
	sel := e.Selector()
	value := m.TruncateValue(e.Value, sel)
	var errors strings.Builder
	if len(e.ErrorLines) > 0 {
		errorLine := m.Format("errorline", sel)
		for _, line := range e.ErrorLines {
			errors.WriteString(expandPositional(errorLine,
				e.Name, e.Type, value, e.UnresolvedNames, noErrorsArg, line))
		}
	}
	return expandPositional(m.Format(field, sel),
		e.Name, e.Type, value, e.UnresolvedNames, errors.String(), noErrArg)
}

// TruncateValue truncates value to the length set for sel with /set
// truncation. Lengths up to 13 cut the value short; longer ones keep both
// ends joined by " ... ", with a third of the length for the end.
func (m *Mode) TruncateValue(value string, sel Selector) string {
	limit, err := strconv.Atoi(m.Format(truncationField, sel))
	if err != nil || limit < 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 13 {
		return string(runes[:limit])
	}
	tail := limit / 3
	head := limit - 5 - tail
	return string(runes[:head]) + " ... " + string(runes[len(runes)-tail:])
}

// Expands %N$s (N from 1 to 9), %s (the next argument), %n and %%. Other
// sequences, and references to missing arguments, are kept as is.
func expandPositional(format string, args ...string) string {
	if !strings.ContainsRune(format, '%') {
		return format
	}
	var sb strings.Builder
	next := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 == len(format) {
			sb.WriteByte(format[i])
			continue
		}
		switch c := format[i+1]; {
		case c == 'n':
			sb.WriteByte('\n')
			i++
		case c == '%':
			sb.WriteByte('%')
			i++
		case c == 's':
			if next < len(args) {
				sb.WriteString(args[next])
				next++
				i++
			} else {
				sb.WriteByte('%')
			}
		case '1' <= c && c <= '9' && i+3 < len(format) && format[i+2] == '$' && format[i+3] == 's':
			if n := int(c - '1'); n < len(args) {
				sb.WriteString(args[n])
				i += 3
			} else {
				sb.WriteByte('%')
			}
		default:
			sb.WriteByte('%')
		}
	}
	return sb.String()
}
