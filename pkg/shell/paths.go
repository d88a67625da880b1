package shell

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"src.jfeed.sh/pkg/env"
)

// FileConfig is the content of the configuration file. Command-line flags
// take precedence over it.
type FileConfig struct {
	// Initial feedback mode.
	Feedback string `toml:"feedback"`
	// Path of the preferences database.
	DB string `toml:"db"`
	// Path of the log file; logs are discarded if empty.
	Log string `toml:"log"`
	// Lines run at the start of each session, after the feedback modes are
	// initialized.
	Startup []string `toml:"startup"`
}

// LoadConfig reads a configuration file. A missing file is an empty
// configuration.
func LoadConfig(name string) (*FileConfig, error) {
	var cfg FileConfig
	_, err := toml.DecodeFile(name, &cfg)
	if errors.Is(err, os.ErrNotExist) {
		return &FileConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigPath returns the path of the configuration file.
func ConfigPath() (string, error) {
	dir, err := xdgDir(env.XDG_CONFIG_HOME, ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "jfeed", "config.toml"), nil
}

// DBPath returns the path of the preferences database, creating the
// directory containing it.
func DBPath() (string, error) {
	if p := os.Getenv(env.JFEED_DB); p != "" {
		return p, nil
	}
	dir, err := xdgDir(env.XDG_DATA_HOME, filepath.Join(".local", "share"))
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "jfeed")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "db.bolt"), nil
}

// Returns the directory named by an XDG environment variable, or the
// default under the home directory. Relative values are ignored.
func xdgDir(envName, homeDefault string) (string, error) {
	if dir := os.Getenv(envName); filepath.IsAbs(dir) {
		return dir, nil
	}
	home := os.Getenv(env.HOME)
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(home, homeDefault), nil
}
