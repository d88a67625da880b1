package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"src.jfeed.sh/pkg/sys"
)

// Flags choosing the initial feedback mode.
type feedbackFlags struct {
	mode                     string
	concise, silent, verbose bool
}

func (f *feedbackFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.mode, "feedback", "", "initial feedback mode: verbose, normal, concise, silent or a retained mode")
	fs.BoolVarP(&f.concise, "concise", "q", false, "same as --feedback concise")
	fs.BoolVarP(&f.silent, "silent", "s", false, "same as --feedback silent")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "same as --feedback verbose")
}

// Returns the chosen mode, or "" if none was chosen.
func (f *feedbackFlags) resolve() (string, error) {
	var chosen []string
	if f.mode != "" {
		chosen = append(chosen, f.mode)
	}
	for _, b := range []struct {
		set  bool
		mode string
	}{{f.concise, "concise"}, {f.silent, "silent"}, {f.verbose, "verbose"}} {
		if b.set {
			chosen = append(chosen, b.mode)
		}
	}
	switch len(chosen) {
	case 0:
		return "", nil
	case 1:
		return chosen[0], nil
	default:
		return "", &exitError{1, errors.New("only one feedback option (--feedback, -q, -s, or -v) may be used")}
	}
}

func newReplCmd(g *globalFlags) *cobra.Command {
	var ff feedbackFlags
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Run the REPL (the default)",
		Args:  cobra.NoArgs,
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

			in := cmd.InOrStdin()
			interactive := false
			if f, ok := in.(*os.File); ok {
				interactive = sys.IsTerminal(f)
			}
			s, err := e.newSession(cmd, mode, interactive)
			if err != nil {
				return err
			}
			return s.Interact(in)
		},
	}
	ff.register(cmd)
	return cmd
}
