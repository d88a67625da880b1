package shell

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"src.jfeed.sh/pkg/feedback"
)

// A replay file is a YAML sequence. A string item is a line of input, like
// "/set feedback verbose"; a mapping item is an EventSpec rendered as if a
// snippet had raised it:
//
//	- /set feedback concise
//	- {case: varinit, name: x, type: int, value: "5"}
//	- case: method
//	  resolve: notdefined
//	  name: m
//	  unresolved: [Foo]

// Replay runs the steps of a replay file. It stops at the first item that
// cannot be decoded; errors of the steps themselves are shown and do not
// stop the replay.
func (s *Session) Replay(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	return s.ReplayYAML(name, data)
}

// ReplayYAML is like Replay, but takes the content of the file.
func (s *Session) ReplayYAML(name string, data []byte) error {
	var steps []yaml.Node
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	for i := range steps {
		if s.exited {
			break
		}
		step := &steps[i]
		switch step.Kind {
		case yaml.ScalarNode:
			s.RunLine(step.Value)
		case yaml.MappingNode:
			var spec EventSpec
			if err := step.Decode(&spec); err != nil {
				return fmt.Errorf("%s:%d: %w", name, step.Line, err)
			}
			e, err := spec.Event()
			if err != nil {
				return fmt.Errorf("%s:%d: %w", name, step.Line, err)
			}
			s.render([]feedback.Event{e})
		default:
			return fmt.Errorf("%s:%d: expected a line or an event", name, step.Line)
		}
	}
	return nil
}
