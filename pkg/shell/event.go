package shell

import (
	"fmt"

	"gopkg.in/yaml.v3"
	"src.jfeed.sh/pkg/feedback"
)

// EventSpec is the YAML form of a classified event, as accepted by /event
// and replay files. Omitted classifications default to added, primary and
// ok; the unresolved and error counts are derived from the lists.
type EventSpec struct {
	Case       string   `yaml:"case"`
	Action     string   `yaml:"action,omitempty"`
	When       string   `yaml:"when,omitempty"`
	Resolve    string   `yaml:"resolve,omitempty"`
	Name       string   `yaml:"name,omitempty"`
	Type       string   `yaml:"type,omitempty"`
	Value      string   `yaml:"value,omitempty"`
	Unresolved []string `yaml:"unresolved,omitempty"`
	Errors     []string `yaml:"errors,omitempty"`
}

// ParseEvent parses an event written in YAML, usually in flow style like
// "{case: varinit, name: x, type: int, value: 5}".
func ParseEvent(text string) (feedback.Event, error) {
	var spec EventSpec
	if err := yaml.Unmarshal([]byte(text), &spec); err != nil {
		return feedback.Event{}, fmt.Errorf("bad event: %w", err)
	}
	return spec.Event()
}

// Event converts the spec to an event.
func (spec *EventSpec) Event() (feedback.Event, error) {
	if spec.Case == "" {
		return feedback.Event{}, fmt.Errorf("bad event: missing case")
	}
	e := feedback.Event{
		Name:            spec.Name,
		Type:            spec.Type,
		Value:           spec.Value,
		Unresolved:      feedback.CountUnresolved(len(spec.Unresolved)),
		Errors:          feedback.CountErrors(len(spec.Errors)),
		UnresolvedNames: feedback.JoinUnresolved(spec.Unresolved),
		ErrorLines:      spec.Errors,
	}
	for _, f := range []struct {
		kind feedback.Kind
		text string
		set  func(feedback.Value)
	}{
		{feedback.KindCase, spec.Case, func(v feedback.Value) { e.Case = v.(feedback.Case) }},
		{feedback.KindAction, spec.Action, func(v feedback.Value) { e.Action = v.(feedback.Action) }},
		{feedback.KindWhen, spec.When, func(v feedback.Value) { e.When = v.(feedback.When) }},
		{feedback.KindResolve, spec.Resolve, func(v feedback.Value) { e.Resolve = v.(feedback.Resolve) }},
	} {
		if f.text == "" {
			continue
		}
		v, ok := feedback.LookupValue(f.text)
		if !ok || v.Kind() != f.kind {
			return feedback.Event{}, fmt.Errorf("bad event: %q is not a %s", f.text, f.kind)
		}
		f.set(v)
	}
	return e, nil
}
