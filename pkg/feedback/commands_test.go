package feedback

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.jfeed.sh/pkg/diag"
)

// Runs /set commands, failing the test on the first error.
func mustSet(t *testing.T, fb *Feedback, h *testHandler, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if err := fb.Set(h, line); err != nil {
			t.Fatalf("/set %s: %v", line, err)
		}
	}
}

func TestSet_CreateAndFormat(t *testing.T) {
	fb := New()
	h := &testHandler{}
	mustSet(t, fb, h,
		`mode m -c`,
		`format m display '{pre}{name} is a {typeKind}{post}' class,record-added`,
		`form m typeKind 'class' class`,
		`format m typeKind "record" record`,
		`feed m`)
	if diff := cmp.Diff([]string{"Created new feedback mode: m", "Feedback mode: m"}, h.fluff); diff != "" {
		t.Errorf("fluff (-want +got):\n%s", diff)
	}
	if len(h.hard) != 0 {
		t.Errorf("unexpected hard messages %q", h.hard)
	}

	for _, test := range []struct {
		event Event
		want  string
	}{
		{Event{Case: Class, Action: Added, Name: "C"}, "|  C is a class\n"},
		{Event{Case: Record, Action: Added, Name: "R"}, "|  R is a record\n"},
		{Event{Case: Record, Action: Modified, Name: "R"}, ""},
	} {
		if got := fb.Format(test.event); got != test.want {
			t.Errorf("Format(%v) -> %q, want %q", test.event, got, test.want)
		}
	}
}

func TestSet_Queries(t *testing.T) {
	fb := New()
	h := &testHandler{}
	mustSet(t, fb, h,
		`mode m -quiet`,
		`format m display "{name}" method`,
		`format m display "!" used`,
		`truncation m 20 varvalue`,
		`prompt m "m> " "m| "`)

	h.hard = nil
	mustSet(t, fb, h, `format m display`)
	want := []string{
		`/set format m display "{name}" method`,
		`/set format m display "!" used`,
	}
	if diff := cmp.Diff(want, h.hard); diff != "" {
		t.Errorf("format query (-want +got):\n%s", diff)
	}

	h.hard = nil
	mustSet(t, fb, h, `truncation m`, `prompt m`)
	want = []string{`/set truncation m 20 varvalue`, `/set prompt m "m> " "m| "`}
	if diff := cmp.Diff(want, h.hard); diff != "" {
		t.Errorf("truncation and prompt queries (-want +got):\n%s", diff)
	}

	h.hard = nil
	mustSet(t, fb, h, ``)
	if len(h.hard) == 0 || h.hard[0] != "/set feedback normal" {
		t.Fatalf("/set -> %q", h.hard)
	}
	if h.hard[1] != "/set mode m -quiet" {
		t.Errorf("/set does not show mode m: %q", h.hard)
	}
	for _, line := range h.hard {
		if strings.Contains(line, "verbose") {
			t.Errorf("/set shows a predefined mode: %q", line)
		}
	}
}

func TestSet_FeedbackQuery(t *testing.T) {
	fb := New()
	h := &testHandler{}
	mustSet(t, fb, h, `feedback concise`, `feedback -retain`, `feedback verbose`)
	h.hard = nil
	mustSet(t, fb, h, `feedback`)
	want := []string{
		"/set feedback verbose",
		"",
		"Available feedback modes:",
		"   concise",
		"   normal",
		"   silent",
		"   verbose",
		"",
		"Retained feedback mode: concise",
	}
	if diff := cmp.Diff(want, h.hard); diff != "" {
		t.Errorf("feedback query (-want +got):\n%s", diff)
	}
}

func TestSet_Errors(t *testing.T) {
	var unknownMode *UnknownModeError
	var ambiguousMode *AmbiguousModeError
	var selectorErr *diag.Error
	for _, test := range []struct {
		args  string
		check func(error) bool
	}{
		{`nosuch`, is(ErrUnknownSubcommand)},
		{`f m`, is(ErrUnknownSubcommand)},
		{`"format" m`, is(ErrUnknownSubcommand)},
		{`format normal display "x"`, is(ErrReadOnly)},
		{`format m 1x "x"`, is(ErrBadField)},
		{`format m "display" "x"`, is(ErrBadField)},
		{`format m display x`, is(ErrMustBeQuoted)},
		{`format m display "x" "class"`, is(ErrUnexpectedArg)},
		{`format m display "x" nosuch`, as(&selectorErr)},
		{`format nosuch display "x"`, as(&unknownMode)},
		{`format m display "x`, func(err error) bool { return err != nil }},
		{`truncation m -1`, func(err error) bool { return err != nil }},
		{`truncation m "10"`, is(ErrBadTruncation)},
		{`truncation m ten`, is(ErrBadTruncation)},
		{`truncation verbose 10`, is(ErrReadOnly)},
		{`mode m -command`, is(ErrModeExists)},
		{`mode new`, is(ErrCommandOrQuiet)},
		{`mode new -command -quiet`, is(ErrCommandOrQuiet)},
		{`mode new -command normal extra`, is(ErrUnexpectedArg)},
		{`mode -command`, is(ErrMissingModeName)},
		{`mode -delete -quiet m`, is(ErrUnexpectedArg)},
		{`mode -delete normal`, is(ErrDeleteCurrent)},
		{`mode -delete verbose`, is(ErrReadOnly)},
		{`mode -delete mmm`, as(&unknownMode)},
		{`mode -retain verbose`, is(ErrReadOnly)},
		{`mode new -cx`, func(err error) bool { return err != nil }},
		{`feedback -retain m`, is(ErrNotRetained)},
		{`feedback m mm`, is(ErrUnexpectedArg)},
		{`feedback con`, as(&ambiguousMode)},
		{`prompt m x`, is(ErrMustBeQuoted)},
		{`prompt m "a" "b" "c"`, is(ErrUnexpectedArg)},
		{`prompt normal "a"`, is(ErrReadOnly)},
	} {
		fb := New()
		h := &testHandler{}
		mustSet(t, fb, h, `mode m -command`, `mode mm -quiet`, `mode console -quiet`)
		before := fb.EncodeRetained()
		settings := modeSettings(fb)

		err := fb.Set(h, test.args)
		if !test.check(err) {
			t.Errorf("/set %s -> %v", test.args, err)
		}
		if diff := cmp.Diff(settings, modeSettings(fb)); diff != "" {
			t.Errorf("/set %s changed the modes (-before +after):\n%s", test.args, diff)
		}
		if fb.EncodeRetained() != before || fb.CurrentModeName() != "normal" {
			t.Errorf("/set %s changed the registry", test.args)
		}
	}
}

func is(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

func as[T error](target *T) func(error) bool {
	return func(err error) bool { return errors.As(err, target) }
}

func modeSettings(fb *Feedback) map[string][]string {
	settings := map[string][]string{}
	for _, name := range fb.ModeNames() {
		m, _ := fb.SearchMode(name)
		settings[name] = m.Settings()
	}
	return settings
}

func TestSet_ModeDelete(t *testing.T) {
	fb := New()
	h := &testHandler{}
	mustSet(t, fb, h, `mode m -command`, `mode -d m`)
	if _, err := fb.SearchMode("m"); err == nil {
		t.Errorf("mode m not deleted")
	}
	if diff := cmp.Diff([]string{"Created new feedback mode: m", "Deleted feedback mode: m"}, h.fluff); diff != "" {
		t.Errorf("fluff (-want +got):\n%s", diff)
	}
}

func TestSet_Retain(t *testing.T) {
	fb := New()
	r := &fakeRetainer{}
	fb.SetRetainer(r)
	h := &testHandler{}

	mustSet(t, fb, h, `mode m -quiet -retain`, `format m display "changed"`)
	if !strings.HasPrefix(r.modes, "m"+recordSeparator+"false") {
		t.Errorf("retainer got %q", r.modes)
	}
	if strings.Contains(r.modes, "changed") {
		t.Errorf("retained snapshot includes later changes")
	}
	mustSet(t, fb, h, `mode -ret m`)
	if !strings.Contains(r.modes, "changed") {
		t.Errorf("retaining again did not refresh the snapshot")
	}

	mustSet(t, fb, h, `feedback -retain m`, `feedback normal`)
	if r.feedback != "m" {
		t.Errorf("retained feedback is %q", r.feedback)
	}
	if err := fb.Set(h, `mode -delete -retain m`); !errors.Is(err, ErrDeleteRetained) {
		t.Errorf("deleting the retained feedback mode -> %v", err)
	}

	mustSet(t, fb, h, `feedback -retain verbose`, `mode -delete -retain m`)
	if r.modes != "" {
		t.Errorf("retainer still has %q", r.modes)
	}
	if _, err := fb.SearchMode("m"); err == nil {
		t.Errorf("mode m not deleted")
	}
	want := []string{
		"Created new feedback mode: m",
		"Retained feedback mode: m",
		"Feedback mode: m",
		"Feedback mode: normal",
		"Feedback mode: verbose",
		"Deleted feedback mode: m",
	}
	if diff := cmp.Diff(want, h.fluff); diff != "" {
		t.Errorf("fluff (-want +got):\n%s", diff)
	}
}

func TestSet_RetainFailureRollsBackCreation(t *testing.T) {
	fb := New()
	fb.SetRetainer(&fakeRetainer{err: errors.New("disk full")})
	if err := fb.Set(&testHandler{}, `mode m -command -retain`); err == nil {
		t.Errorf("no error")
	}
	if _, err := fb.SearchMode("m"); err == nil {
		t.Errorf("mode m created despite the failure")
	}
}

func TestSettings_Replay(t *testing.T) {
	fb := New()
	h := &testHandler{}
	mustSet(t, fb, h,
		`mode m -command normal`,
		`format m display "{name} \"quoted\"\n" class-added`,
		`format m errorline "\t{err}%n"`,
		`truncation m 7 expression`,
		`prompt m "\n[%s] " "... "`)
	m, _ := fb.SearchMode("m")
	script := strings.Join(m.Settings(), "\n")

	replayed := New()
	if err := replayed.RunScript(h, script); err != nil {
		t.Fatal(err)
	}
	r, err := replayed.SearchMode("m")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m.Settings(), r.Settings()); diff != "" {
		t.Errorf("replayed settings (-want +got):\n%s", diff)
	}
	e := Event{Case: Expression, Action: Added, Name: "$1", Value: "0123456789"}
	if got, want := r.FormatEvent("display", e), m.FormatEvent("display", e); got != want {
		t.Errorf("replayed mode renders %q, want %q", got, want)
	}
}

func TestRunScript_Errors(t *testing.T) {
	fb := New()
	err := fb.RunScript(&testHandler{}, "# comment\n\n/set mode m -command\n/setx\n")
	if err == nil || !strings.HasPrefix(err.Error(), "line 4: ") {
		t.Errorf("RunScript -> %v", err)
	}
	err = fb.RunScript(&testHandler{}, "/set format m display 'x' nosuch")
	if err == nil || !strings.HasPrefix(err.Error(), "line 1: ") {
		t.Errorf("RunScript -> %v", err)
	}
}
