package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"src.jfeed.sh/pkg/env"
	"src.jfeed.sh/pkg/must"
	"src.jfeed.sh/pkg/testutil"
)

// Sets up a temporary directory as the working directory and the config
// home, and returns the path of a database in it.
func setup(t *testing.T) string {
	t.Helper()
	dir := testutil.InTempDir(t)
	testutil.Setenv(t, env.XDG_CONFIG_HOME, dir)
	testutil.Unsetenv(t, env.JFEED_DB)
	testutil.Unsetenv(t, env.JFEED_FEEDBACK)
	testutil.Set(t, &color.NoColor, true)
	return filepath.Join(dir, "db")
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, errOut, err := run(t, stdin, args...)
	if err != nil {
		t.Fatalf("jfeed %s: %v", strings.Join(args, " "), err)
	}
	if errOut != "" {
		t.Errorf("jfeed %s wrote to stderr: %q", strings.Join(args, " "), errOut)
	}
	return out
}

const updateEvent = "/event {case: class, action: modified, when: update, name: D}\n"

func TestRepl(t *testing.T) {
	db := setup(t)
	for _, test := range []struct {
		args []string
		want string
	}{
		{[]string{"--db", db}, ""},
		{[]string{"repl", "--db", db}, ""},
		{[]string{"--db", db, "-v"}, "|    update modified class D\n"},
		{[]string{"repl", "--db", db, "--feedback", "verb"}, "|    update modified class D\n"},
	} {
		if got := mustRun(t, updateEvent, test.args...); got != test.want {
			t.Errorf("jfeed %s -> %q, want %q", strings.Join(test.args, " "), got, test.want)
		}
	}
}

func TestRepl_FeedbackErrors(t *testing.T) {
	db := setup(t)
	_, _, err := run(t, "", "--db", db, "-q", "-s")
	if err == nil || exitCode(err) != 1 {
		t.Errorf("conflicting feedback flags -> %v", err)
	}
	_, _, err = run(t, "", "--db", db, "--feedback", "nosuch")
	if err == nil || exitCode(err) != 1 || !strings.Contains(err.Error(), "nosuch") {
		t.Errorf("unknown feedback mode -> %v", err)
	}
	_, _, err = run(t, "", "--db", db, "extra")
	if err == nil || exitCode(err) != 2 {
		t.Errorf("extra argument -> %v", err)
	}
}

func TestRetainAndReset(t *testing.T) {
	db := setup(t)
	mustRun(t, "/set mode m -quiet normal -retain\n/set feedback -retain m\n", "--db", db)

	out := mustRun(t, "", "modes", "--db", db)
	if !strings.HasPrefix(out, "/set mode m -quiet\n") {
		t.Errorf("modes output does not start with mode m:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n\n/set feedback -retain m\n") {
		t.Errorf("modes output does not end with the retained feedback:\n%s", out)
	}

	// m is quiet, so /set feedback shows nothing but the query.
	out = mustRun(t, "/set feedback\n", "--db", db)
	if !strings.HasPrefix(out, "|  /set feedback m\n") {
		t.Errorf("retained feedback mode not restored:\n%s", out)
	}

	mustRun(t, "", "reset", "--db", db)
	if out := mustRun(t, "", "modes", "--db", db); out != "" {
		t.Errorf("modes after reset:\n%s", out)
	}
}

func TestModes_All(t *testing.T) {
	db := setup(t)
	out := mustRun(t, "", "modes", "-a", "--db", db)
	for _, name := range []string{"concise", "normal", "silent", "verbose"} {
		if !strings.Contains(out, "|  /set mode "+name+" ") {
			t.Errorf("modes -a does not show %s", name)
		}
	}
}

func TestReplay(t *testing.T) {
	db := setup(t)
	must.WriteFile("a.yaml", testutil.Dedent(`
		- /set feedback verbose
		- {case: varinit, name: x, type: int, value: "5"}
		`))
	must.WriteFile("b.yaml", "- {case: class, name: C}\n")

	out := mustRun(t, "", "replay", "--db", db, "-s", "a.yaml", "b.yaml")
	want := "|  Feedback mode: verbose\nx ==> 5\n|  created variable x : int\n|  created class C\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("replay output (-want +got):\n%s", diff)
	}

	if _, _, err := run(t, "", "replay", "--db", db, "nonexistent.yaml"); err == nil {
		t.Errorf("replaying a missing file succeeded")
	}
	if _, _, err := run(t, "", "replay", "--db", db); err == nil {
		t.Errorf("replay without files succeeded")
	}
}

func TestConfigFile(t *testing.T) {
	db := setup(t)
	must.OK(os.Mkdir("jfeed", 0700))
	must.WriteFile(filepath.Join("jfeed", "config.toml"), testutil.Dedent(`
		feedback = "verbose"
		startup = ["/set mode m -command verbose", "/set prompt m \"m> \" \"m. \""]
		`))

	// Creating mode m is reported in verbose mode.
	created := "|  Created new feedback mode: m\n"
	if got := mustRun(t, updateEvent, "--db", db); got != created+"|    update modified class D\n" {
		t.Errorf("config feedback not used: %q", got)
	}
	if got := mustRun(t, updateEvent, "--db", db, "-q"); got != "" {
		t.Errorf("flag does not override config: %q", got)
	}
	if got := mustRun(t, "/set prompt m\n", "--db", db); got != created+"|  /set prompt m \"m> \" \"m. \"\n" {
		t.Errorf("startup lines not run: %q", got)
	}

	must.WriteFile("bad.toml", "feedback = ")
	if _, _, err := run(t, "", "--db", db, "--config", "bad.toml"); err == nil {
		t.Errorf("bad config accepted")
	}
}

func TestLogFile(t *testing.T) {
	db := setup(t)
	mustRun(t, "/set mode m -quiet\n", "--db", db, "--log", "jfeed.log", "--debug")
	log := must.ReadFileString("jfeed.log")
	if !strings.Contains(log, "created mode") {
		t.Errorf("log does not contain the mode creation:\n%s", log)
	}
}

func TestVersion(t *testing.T) {
	setup(t)
	out := mustRun(t, "", "--version")
	if !strings.HasPrefix(out, "jfeed version ") {
		t.Errorf("--version -> %q", out)
	}
}
