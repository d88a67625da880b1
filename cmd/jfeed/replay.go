package main

import (
	"github.com/spf13/cobra"
)

func newReplayCmd(g *globalFlags) *cobra.Command {
	var ff feedbackFlags
	cmd := &cobra.Command{
		Use:   "replay FILE...",
		Short: "Render the events and run the commands of YAML replay files",
		Long: `Render the events and run the commands of YAML replay files.

A replay file is a YAML sequence. Strings are lines of REPL input, and
mappings are events:

  - /set feedback verbose
  - {case: varinit, name: x, type: int, value: "5"}
  - case: method
    resolve: notdefined
    name: m
    unresolved: [Foo]`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := ff.resolve()
			if err != nil {
				return err
			}
			e, err := setupEnv(g)
			if err != nil {
				return err
			}
			defer e.close()

			s, err := e.newSession(cmd, mode, false)
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := s.Replay(name); err != nil {
					return err
				}
			}
			return nil
		},
	}
	ff.register(cmd)
	return cmd
}
