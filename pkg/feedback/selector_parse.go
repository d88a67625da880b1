package feedback

import (
	"fmt"
	"strings"

	"src.jfeed.sh/pkg/diag"
)

// Name of the source used in the diag.Context of selector parse errors.
const selectorSourceName = "[selector]"

// ParseSelector parses the textual form of a selector:
//
//	selector = group { "-" group }
//	group    = value { "," value }
//
// All values in a group must be of the same kind, and each kind may appear in
// at most one group. An empty text is All. Errors are *diag.Error values
// pointing at the offending part of text.
func ParseSelector(text string) (Selector, error) {
	if text == "" {
		return All, nil
	}
	var (
		s    Selector
		seen [nKinds]bool
		pos  int
	)
	for _, group := range strings.Split(text, "-") {
		groupFrom := pos
		var (
			kind  Kind
			bits  Bits
			first = true
		)
		for _, token := range strings.Split(group, ",") {
			from, to := pos, pos+len(token)
			pos = to + 1
			v, ok := LookupValue(token)
			if !ok {
				return Selector{}, selectorError(text, from, to,
					fmt.Sprintf("not a valid selector %q", token))
			}
			if first {
				kind, first = v.Kind(), false
			} else if v.Kind() != kind {
				return Selector{}, selectorError(text, from, to,
					fmt.Sprintf("different selector kinds in same section: %q is %s, not %s",
						token, v.Kind(), kind))
			}
			bits |= 1 << v.Ordinal()
		}
		if seen[kind] {
			return Selector{}, selectorError(text, groupFrom, groupFrom+len(group),
				fmt.Sprintf("selector kind %s in multiple sections", kind))
		}
		seen[kind] = true
		s.sets[kind] = bits
	}
	for _, k := range Kinds() {
		if !seen[k] {
			s.sets[k] = AllBits(k)
		}
	}
	return s, nil
}

func selectorError(text string, from, to int, msg string) error {
	return &diag.Error{
		Type:    "selector error",
		Message: msg,
		Context: *diag.NewContext(selectorSourceName, text, diag.Ranging{From: from, To: to}),
	}
}
