package shell

import (
	"fmt"
	"strings"

	"src.jfeed.sh/pkg/feedback"
)

const setHelp = `/set feedback [-retain] <mode>
	set the feedback mode; with -retain, also for future sessions
/set mode <mode> [<old-mode>] -command|-quiet [-retain]
	create a feedback mode, optionally copying <old-mode>
/set mode -delete [-retain] <mode>
	delete a feedback mode
/set mode -retain <mode>
	retain a feedback mode for future sessions
/set prompt <mode> "<prompt>" "<continuation-prompt>"
	set the prompts; %s is replaced by the next snippet ID
/set truncation <mode> <length> <selector>...
	set the maximum length of displayed values
/set format <mode> <field> "<format>" <selector>...
	set the format of a field for the events matched by the selectors

Without the value to set, each form shows the current settings.`

func (s *Session) runHelp(args string) error {
	switch args {
	case "":
		var sb strings.Builder
		for i, c := range commands {
			if i > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "/%s %s\n\t%s", c.name, c.args, c.summary)
		}
		s.Hard("%s", sb.String())
		return nil
	case "set", "/set":
		s.Hard("%s", setHelp)
		return nil
	case "selectors":
		s.Hard("%s", selectorHelp())
		return nil
	}
	cmd, err := lookupCommand(args)
	if err != nil {
		return err
	}
	if cmd.name == "set" {
		s.Hard("%s", setHelp)
	} else {
		s.Hard("/%s %s\n\t%s", cmd.name, cmd.args, cmd.summary)
	}
	return nil
}

// Lists the values of each selector kind.
func selectorHelp() string {
	var sb strings.Builder
	sb.WriteString("A selector is a list of groups separated by '-'. Each group is a\n")
	sb.WriteString("comma-separated list of values of the same kind:")
	for _, k := range feedback.Kinds() {
		fmt.Fprintf(&sb, "\n\n%s:", k)
		for _, v := range feedback.Values(k) {
			fmt.Fprintf(&sb, "\n\t%-12s %s", v, v.Doc())
		}
	}
	return sb.String()
}
