// Package env keeps names of environment variables that jfeed reads.
package env

// Environment variables read by jfeed.
const (
	HOME            = "HOME"
	XDG_CONFIG_HOME = "XDG_CONFIG_HOME"
	XDG_DATA_HOME   = "XDG_DATA_HOME"
	// Overrides the path of the preferences database.
	JFEED_DB = "JFEED_DB"
	// Overrides the initial feedback mode, like the --feedback flag.
	JFEED_FEEDBACK = "JFEED_FEEDBACK"
)
