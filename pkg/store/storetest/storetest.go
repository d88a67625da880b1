// Package storetest keeps test suites against storedefs.Prefs.
package storetest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.jfeed.sh/pkg/store/storedefs"
)

// TestPrefs tests the functionality of storedefs.Prefs on an empty store.
func TestPrefs(t *testing.T, p storedefs.Prefs) {
	t.Helper()

	if _, err := p.Get("MODE2"); !errors.Is(err, storedefs.ErrNoKey) {
		t.Errorf("Get(absent) -> error %v, want ErrNoKey", err)
	}
	if keys, err := p.Keys(); err != nil || len(keys) != 0 {
		t.Errorf("Keys() on empty store -> (%v, %v), want no keys", keys, err)
	}

	for key, value := range map[string]string{
		"MODE2":    "mine␞false␞>␞.␞***",
		"FEEDBACK": "concise",
		"MODE":     "",
	} {
		if err := p.Put(key, value); err != nil {
			t.Errorf("Put(%q) -> error %v", key, err)
		}
		if got, err := p.Get(key); err != nil || got != value {
			t.Errorf("Get(%q) -> (%q, %v), want (%q, nil)", key, got, err, value)
		}
	}

	if err := p.Put("FEEDBACK", "verbose"); err != nil {
		t.Errorf("Put overwriting -> error %v", err)
	}
	if got, _ := p.Get("FEEDBACK"); got != "verbose" {
		t.Errorf("Get after overwrite -> %q, want verbose", got)
	}

	keys, err := p.Keys()
	if err != nil {
		t.Errorf("Keys() -> error %v", err)
	}
	if diff := cmp.Diff([]string{"FEEDBACK", "MODE", "MODE2"}, keys); diff != "" {
		t.Errorf("Keys() (-want +got):\n%s", diff)
	}

	if err := p.Remove("MODE"); err != nil {
		t.Errorf("Remove -> error %v", err)
	}
	if err := p.Remove("MODE"); err != nil {
		t.Errorf("Remove(absent) -> error %v", err)
	}
	if _, err := p.Get("MODE"); !errors.Is(err, storedefs.ErrNoKey) {
		t.Errorf("Get(removed) -> error %v, want ErrNoKey", err)
	}
	if err := p.Flush(); err != nil {
		t.Errorf("Flush -> error %v", err)
	}
}
