package diag

import (
	"strings"
	"testing"
)

var contextTests = []struct {
	name    string
	context *Context
	indent  string

	wantShow        string
	wantShowCompact string
}{
	{
		name:    "single-line culprit",
		context: contextInParen("[test]", "echo (bad)"),
		indent:  "_",

		wantShow:        "[test]:1:6:\n_echo <(bad)>",
		wantShowCompact: "[test]:1:6: echo <(bad)>",
	},
	{
		name:    "multi-line culprit",
		context: contextInParen("[test]", "echo (bad\nbad)\nmore"),
		indent:  "_",

		wantShow: "[test]:1:6:\n_echo <(bad>\n_<bad)>",
		wantShowCompact: "[test]:1:6: echo <(bad>\n" +
			"_            <bad)>",
	},
	{
		name:    "continuation lines aligned by display width",
		context: contextInParen("[選択]", "(a\nb)"),

		wantShow: "[選択]:1:1:\n<(a>\n<b)>",
		wantShowCompact: "[選択]:1:1: <(a>\n" +
			"            <b)>",
	},
	{
		name:    "column counted in codepoints",
		context: contextInParen("[test]", "名前 (x)"),

		wantShow:        "[test]:1:4:\n名前 <(x)>",
		wantShowCompact: "[test]:1:4: 名前 <(x)>",
	},
	{
		name: "trailing newline in culprit is removed",
		//                             012345678 9
		context: NewContext("[test]", "echo bad\n", Ranging{5, 9}),
		indent:  "_",

		wantShow:        "[test]:1:6:\n_echo <bad>",
		wantShowCompact: "[test]:1:6: echo <bad>",
	},
	{
		name: "empty culprit",
		//                             012345
		context: NewContext("[test]", "echo x", Ranging{5, 5}),

		wantShow:        "[test]:1:6:\necho <^>x",
		wantShowCompact: "[test]:1:6: echo <^>x",
	},
	{
		name:            "unknown culprit range",
		context:         NewContext("[test]", "echo", Ranging{-1, -1}),
		wantShow:        "[test], unknown position",
		wantShowCompact: "[test], unknown position",
	},
	{
		name:            "invalid culprit range",
		context:         NewContext("[test]", "echo", Ranging{2, 1}),
		wantShow:        "[test], invalid position 2-1",
		wantShowCompact: "[test], invalid position 2-1",
	},
}

func TestContext(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	for _, test := range contextTests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.context.Show(test.indent); got != test.wantShow {
				t.Errorf("Show() -> %q, want %q", got, test.wantShow)
			}
			if got := test.context.ShowCompact(test.indent); got != test.wantShowCompact {
				t.Errorf("ShowCompact() -> %q, want %q", got, test.wantShowCompact)
			}
		})
	}
}

// Returns a Context with the given name and source, and a range for the part
// between ( and ).
func contextInParen(name, src string) *Context {
	return NewContext(name, src,
		Ranging{strings.Index(src, "("), strings.Index(src, ")") + 1})
}
