package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"src.jfeed.sh/pkg/shell"
)

func newModesCmd(g *globalFlags) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "modes",
		Short: "Show the retained feedback modes as /set commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setupEnv(g)
			if err != nil {
				return err
			}
			defer e.close()

			out := cmd.OutOrStdout()
			if all {
				s, err := e.newSession(cmd, "", false)
				if err != nil {
					return err
				}
				return s.RunScript("/set mode")
			}
			modes, err := shell.RetainedModes(e.store)
			if err != nil {
				return err
			}
			for _, m := range modes {
				for _, line := range m.Settings() {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out)
			}
			retained, err := shell.RetainedFeedback(e.store)
			if err != nil {
				return err
			}
			if retained != "" {
				fmt.Fprintf(out, "/set feedback -retain %s\n", retained)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "show all modes, including the predefined ones")
	return cmd
}
