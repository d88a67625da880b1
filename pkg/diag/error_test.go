package diag

import (
	"strings"
	"testing"
)

func TestError(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	setMessageMarkers(t, "{", "}")

	src := "class,bogus-primary"
	from := strings.Index(src, "bogus")
	err := &Error{
		Type:    "selector error",
		Message: "unknown selector value",
		Context: *NewContext("[selector]", src, Ranging{from, from + len("bogus")}),
	}

	if got, want := err.Error(), "selector error: [selector]:1:7: unknown selector value"; got != want {
		t.Errorf("Error() -> %q, want %q", got, want)
	}
	if got, want := err.Range(), (Ranging{From: 6, To: 11}); got != want {
		t.Errorf("Range() -> %v, want %v", got, want)
	}

	wantShow := dedent(`
		Selector error: {unknown selector value}
		  [selector]:1:7: class,<bogus>-primary`)
	if got := err.Show(""); got != wantShow {
		t.Errorf("Show() -> %q, want %q", got, wantShow)
	}
}
