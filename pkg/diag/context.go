package diag

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Context is a range in a named piece of text, like the selector or command
// line that an error was found in.
type Context struct {
	Name   string
	Source string
	Ranging

	info *culpritInfo
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{Name: name, Source: source, Ranging: r.Range()}
}

type culpritInfo struct {
	// Text before the culprit on the same line.
	head string
	// Source[From:To] with a trailing newline removed.
	culprit string
	// Text after the culprit on the same line, empty if the culprit ends a
	// line.
	tail string
	// 1-based line and column of the start, and line of the end.
	startLine, startCol, endLine int
}

// Markers around the culprit. Tests override them.
var (
	culpritStart       = "\033[1;4m"
	culpritEnd         = "\033[m"
	culpritPlaceHolder = "^"
)

func (c *Context) culprit() *culpritInfo {
	if c.info != nil {
		return c.info
	}
	before, culprit, after := c.Source[:c.From], c.Source[c.From:c.To], c.Source[c.To:]
	head := before[strings.LastIndexByte(before, '\n')+1:]
	var tail string
	if strings.HasSuffix(culprit, "\n") {
		culprit = culprit[:len(culprit)-1]
	} else if i := strings.IndexByte(after, '\n'); i >= 0 {
		tail = after[:i]
	} else {
		tail = after
	}
	startLine := strings.Count(before, "\n") + 1
	c.info = &culpritInfo{
		head: head, culprit: culprit, tail: tail,
		startLine: startLine,
		startCol:  utf8.RuneCountInString(head) + 1,
		endLine:   startLine + strings.Count(culprit, "\n"),
	}
	return c.info
}

func (c *Context) checkPosition() error {
	switch {
	case c.From == -1:
		return fmt.Errorf("%s, unknown position", c.Name)
	case c.From < 0 || c.To > len(c.Source) || c.From > c.To:
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

// Describe returns "name:line:col" for the start of the range.
func (c *Context) Describe() string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	info := c.culprit()
	return fmt.Sprintf("%s:%d:%d", c.Name, info.startLine, info.startCol)
}

// Show shows the position on one line and the relevant source on the
// following lines, each prefixed with indent.
func (c *Context) Show(indent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	return c.Describe() + ":\n" + indent + c.excerpt(indent)
}

// ShowCompact is like Show, but puts the source right after the position.
// Following lines of a multi-line culprit are aligned with the first.
func (c *Context) ShowCompact(indent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	desc := c.Describe() + ": "
	return desc + c.excerpt(indent+strings.Repeat(" ", runewidth.StringWidth(desc)))
}

func (c *Context) excerpt(indent string) string {
	info := c.culprit()
	var sb strings.Builder
	sb.WriteString(info.head)
	culprit := info.culprit
	if culprit == "" {
		culprit = culpritPlaceHolder
	}
	for i, line := range strings.Split(culprit, "\n") {
		if i > 0 {
			sb.WriteString("\n" + indent)
		}
		sb.WriteString(mark(culpritStart, line, culpritEnd))
	}
	sb.WriteString(info.tail)
	return sb.String()
}
