package diag

import (
	"testing"

	"github.com/fatih/color"
	"src.jfeed.sh/pkg/testutil"
)

var dedent = testutil.Dedent

func setCulpritMarkers(t *testing.T, start, end string) {
	testutil.Set(t, &color.NoColor, false)
	testutil.Set(t, &culpritStart, start)
	testutil.Set(t, &culpritEnd, end)
}

func setMessageMarkers(t *testing.T, start, end string) {
	testutil.Set(t, &color.NoColor, false)
	testutil.Set(t, &messageStart, start)
	testutil.Set(t, &messageEnd, end)
}
