package store

import (
	"path/filepath"

	"src.jfeed.sh/pkg/testutil"
)

// MustTempStore returns a DBStore backed by a database in a temporary
// directory. Both are removed when the test finishes.
func MustTempStore(c testutil.Cleanuper) DBStore {
	st, err := NewStore(filepath.Join(testutil.TempDir(c), "db"))
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() {
		if err := st.Close(); err != nil {
			panic(err)
		}
	})
	return st
}
