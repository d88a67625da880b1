package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.jfeed.sh/pkg/env"
	"src.jfeed.sh/pkg/must"
	"src.jfeed.sh/pkg/testutil"
)

func TestConfigPath(t *testing.T) {
	home := testutil.TempDir(t)
	testutil.Setenv(t, env.HOME, home)

	testutil.Setenv(t, env.XDG_CONFIG_HOME, "/xdg/config")
	if p := must.OK1(ConfigPath()); p != "/xdg/config/jfeed/config.toml" {
		t.Errorf("ConfigPath() -> %q", p)
	}

	testutil.Setenv(t, env.XDG_CONFIG_HOME, "relative")
	if p := must.OK1(ConfigPath()); p != filepath.Join(home, ".config", "jfeed", "config.toml") {
		t.Errorf("ConfigPath() with a relative XDG_CONFIG_HOME -> %q", p)
	}
}

func TestDBPath(t *testing.T) {
	home := testutil.TempDir(t)
	testutil.Setenv(t, env.HOME, home)
	testutil.Unsetenv(t, env.XDG_DATA_HOME)
	testutil.Unsetenv(t, env.JFEED_DB)

	p := must.OK1(DBPath())
	if want := filepath.Join(home, ".local", "share", "jfeed", "db.bolt"); p != want {
		t.Errorf("DBPath() -> %q, want %q", p, want)
	}
	if info, err := os.Stat(filepath.Dir(p)); err != nil || !info.IsDir() {
		t.Errorf("data directory not created: %v", err)
	}

	testutil.Setenv(t, env.JFEED_DB, "/some/db")
	if p := must.OK1(DBPath()); p != "/some/db" {
		t.Errorf("DBPath() with JFEED_DB -> %q", p)
	}
}

func TestLoadConfig(t *testing.T) {
	testutil.InTempDir(t)
	must.WriteFile("config.toml", testutil.Dedent(`
		feedback = "concise"
		db = "/tmp/db"
		startup = ["/set mode m -quiet", "/set feedback m"]
		`))

	cfg, err := LoadConfig("config.toml")
	if err != nil {
		t.Fatal(err)
	}
	want := &FileConfig{
		Feedback: "concise", DB: "/tmp/db",
		Startup: []string{"/set mode m -quiet", "/set feedback m"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig (-want +got):\n%s", diff)
	}

	cfg, err = LoadConfig("nonexistent.toml")
	if err != nil || cfg.Feedback != "" {
		t.Errorf("LoadConfig of a missing file -> (%v, %v)", cfg, err)
	}

	must.WriteFile("bad.toml", "feedback = ")
	if _, err := LoadConfig("bad.toml"); err == nil {
		t.Errorf("LoadConfig of a bad file succeeded")
	}
}
