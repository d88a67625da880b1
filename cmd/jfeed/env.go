package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"src.jfeed.sh/pkg/env"
	"src.jfeed.sh/pkg/errutil"
	"src.jfeed.sh/pkg/logutil"
	"src.jfeed.sh/pkg/shell"
	"src.jfeed.sh/pkg/store"
)

var logger = logutil.GetLogger("jfeed")

// Everything a subcommand needs: the merged configuration and an open store.
type runEnv struct {
	cfg   *shell.FileConfig
	store store.DBStore
}

// Exit status of a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return 2
}

// Loads the configuration file, applies the flags and the environment on
// top of it, sets up logging and opens the store.
func setupEnv(g *globalFlags) (*runEnv, error) {
	configPath := g.config
	if configPath == "" {
		p, err := shell.ConfigPath()
		if err != nil {
			return nil, err
		}
		configPath = p
	}
	cfg, err := shell.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	if g.db != "" {
		cfg.DB = g.db
	}
	if g.log != "" {
		cfg.Log = g.log
	}
	if fb := os.Getenv(env.JFEED_FEEDBACK); fb != "" && cfg.Feedback == "" {
		cfg.Feedback = fb
	}

	if err := logutil.SetOutputFile(cfg.Log); err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	if g.debug {
		logutil.SetLevel(zapcore.DebugLevel)
	} else {
		logutil.SetLevel(zapcore.InfoLevel)
	}

	if cfg.DB == "" {
		p, err := shell.DBPath()
		if err != nil {
			return nil, err
		}
		cfg.DB = p
	}
	st, err := store.NewStore(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("cannot open database %s: %w", cfg.DB, err)
	}
	logger.Info("environment ready",
		zap.String("config", configPath), zap.String("db", cfg.DB))
	return &runEnv{cfg, st}, nil
}

func (e *runEnv) close() error {
	return errutil.Multi(e.store.Close(), logutil.SetOutputFile(""))
}

// Creates a session using the standard streams of cmd, and runs the
// startup lines of the configuration.
func (e *runEnv) newSession(cmd *cobra.Command, feedbackMode string, interactive bool) (*shell.Session, error) {
	if feedbackMode == "" {
		feedbackMode = e.cfg.Feedback
	}
	s, err := shell.NewSession(cmd.OutOrStdout(), cmd.ErrOrStderr(), shell.Config{
		Prefs:       e.store,
		Feedback:    feedbackMode,
		Interactive: interactive,
	})
	if err != nil {
		return nil, &exitError{1, fmt.Errorf("--feedback: %w", err)}
	}
	if len(e.cfg.Startup) > 0 {
		if err := s.RunScript(strings.Join(e.cfg.Startup, "\n")); err != nil {
			return nil, err
		}
	}
	return s, nil
}
