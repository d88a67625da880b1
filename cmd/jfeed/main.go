// Command jfeed is a REPL host for feedback modes: it renders classified
// REPL events through the jshell feedback modes, and lets the user define
// and retain their own modes with /set.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"src.jfeed.sh/pkg/buildinfo"
	"src.jfeed.sh/pkg/diag"
)

// Flags shared by all subcommands.
type globalFlags struct {
	db     string
	log    string
	config string
	debug  bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:     "jfeed",
		Short:   "Render REPL events through feedback modes",
		Version: buildinfo.Value.Version,
		Long: `jfeed renders classified REPL events through feedback modes.

Without a subcommand, it runs the REPL: /set defines and retains feedback
modes, /event renders an event, /help lists the commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&g.db, "db", "", "path of the preferences database (default $JFEED_DB or under $XDG_DATA_HOME)")
	pf.StringVar(&g.log, "log", "", "path of a file to write debug logs to")
	pf.StringVar(&g.config, "config", "", "path of the configuration file (default under $XDG_CONFIG_HOME)")
	pf.BoolVar(&g.debug, "debug", false, "log at debug level instead of info")

	repl := newReplCmd(g)
	// The REPL is the default subcommand.
	root.Flags().AddFlagSet(repl.Flags())
	root.RunE = repl.RunE

	root.AddCommand(repl, newReplayCmd(g), newModesCmd(g), newResetCmd(g))
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		diag.ShowError(root.ErrOrStderr(), err)
		os.Exit(exitCode(err))
	}
}
