package main

import (
	"github.com/spf13/cobra"
	"src.jfeed.sh/pkg/shell"
)

func newResetCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget all retained feedback modes and the retained feedback mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setupEnv(g)
			if err != nil {
				return err
			}
			defer e.close()
			return shell.Reset(e.store)
		},
	}
}
