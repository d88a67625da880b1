package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

var dedentTests = []struct {
	name string
	in   string
	out  string
}{
	{
		name: "no leading newline, no trailing newline",
		in:   " \n  foo\n bar",
		out:  "\n foo\nbar",
	},
	{
		name: "leading newline, no trailing newline",
		in: `
			a
			 b
			c`,
		out: "a\n b\nc",
	},
	{
		name: "leading newline and trailing newline",
		in: `
			a
			 b
			c
			`,
		out: "a\n b\nc\n",
	},
	{
		name: "no consistent leading whitespace removes as much as possible",
		in: `
				a
			b`,
		out: "\ta\nb",
	},
}

func TestDedent(t *testing.T) {
	for _, test := range dedentTests {
		t.Run(test.name, func(t *testing.T) {
			if got := Dedent(test.in); got != test.out {
				t.Errorf("Dedent(%q) -> %q, want %q", test.in, got, test.out)
			}
		})
	}
}

type cleanuper struct{ fns []func() }

func (c *cleanuper) Cleanup(fn func()) { c.fns = append(c.fns, fn) }

func (c *cleanuper) runCleanups() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
}

func TestSet(t *testing.T) {
	c := &cleanuper{}
	x := 1
	Set(c, &x, 2)
	if x != 2 {
		t.Errorf("after Set, x = %d, want 2", x)
	}
	c.runCleanups()
	if x != 1 {
		t.Errorf("after cleanup, x = %d, want 1", x)
	}
}

func TestTempDir(t *testing.T) {
	c := &cleanuper{}
	dir := TempDir(c)
	if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
		t.Fatalf("TempDir returned %q, which is not a directory", dir)
	}
	if resolved, _ := filepath.EvalSymlinks(dir); resolved != dir {
		t.Errorf("TempDir returned %q, which resolves to %q", dir, resolved)
	}
	if err := os.WriteFile(filepath.Join(dir, "a"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	c.runCleanups()
	if _, err := os.Stat(dir); err == nil {
		t.Errorf("dir %q still exists after cleanup", dir)
	}
}

func TestInTempDir(t *testing.T) {
	before, _ := os.Getwd()
	c := &cleanuper{}
	dir := InTempDir(c)
	if wd, _ := os.Getwd(); wd != dir {
		t.Errorf("working directory is %q, want %q", wd, dir)
	}
	c.runCleanups()
	if wd, _ := os.Getwd(); wd != before {
		t.Errorf("working directory after cleanup is %q, want %q", wd, before)
	}
}

func TestSetenv(t *testing.T) {
	const name = "JFEED_TESTUTIL_VAR"
	os.Unsetenv(name)
	c := &cleanuper{}
	if v := Setenv(c, name, "foo"); v != "foo" || os.Getenv(name) != "foo" {
		t.Errorf("Setenv did not set %s", name)
	}
	c.runCleanups()
	if _, ok := os.LookupEnv(name); ok {
		t.Errorf("%s still set after cleanup", name)
	}
}
