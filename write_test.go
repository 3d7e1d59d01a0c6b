package mmark_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	mmark "github.com/growler/go-mmark"
	. "github.com/growler/go-mmark/dot"
)

func TestWrite(t *testing.T) {
	tests := []struct {
		name string
		doc  *mmark.Doc
		want string
	}{
		{
			"heading",
			Doc(nil, Heading(1, Str("Hello"))),
			"# Hello\n",
		},
		{
			"blocks separated by blank line",
			Doc(nil, Heading(2, Str("H")), Para(Str("para"))),
			"## H\n\npara\n",
		},
		{
			"front matter",
			Doc(map[string]any{"title": "x"}, Para(Str("a"))),
			"---\ntitle: x\n---\n\na\n",
		},
		{
			"markup characters escaped",
			Doc(nil, Para(Str("a*b [c] #d"))),
			"a\\*b \\[c\\] \\#d\n",
		},
		{
			"emphasis forms",
			Doc(nil, Para(Emph(Str("a")), Str(" "), Strong(Str("b")), Str(" "), Strikeout(Str("c")))),
			"*a* **b** ~~c~~\n",
		},
		{
			"code span with backticks",
			Doc(nil, Para(Code("a`b"), Str(" "), Code("`c"))),
			"``a`b`` `` `c ``\n",
		},
		{
			"code block fence outgrows content",
			Doc(nil, CodeBlock("", "```\n")),
			"````\n```\n````\n",
		},
		{
			"link with title",
			Doc(nil, Para(Link("http://a", `say "hi"`, Str("x")))),
			"[x](http://a \"say \\\"hi\\\"\")\n",
		},
		{
			"bullet list",
			Doc(nil, BulletList(
				Blocks(Para(Str("a"))),
				Blocks(Para(Str("b")), Para(Str("c"))),
			)),
			"* a\n* b\n\n  c\n",
		},
		{
			"parenthesized url goes angle-bracketed",
			Doc(nil, Para(Link("http://a/(x)", "", Str("l")))),
			"[l](<http://a/(x)>)\n",
		},
		{
			"hard line break",
			Doc(nil, Para(Str("a"), LineBreak(), Str("b"))),
			"a\\\nb\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			if err := tt.doc.Write(&sb); err != nil {
				t.Fatalf("Write: %s", err)
			}
			if sb.String() != tt.want {
				t.Errorf("rendered %q, want %q", sb.String(), tt.want)
			}
		})
	}
}

func TestWriteElement(t *testing.T) {
	var sb strings.Builder
	if err := mmark.Write(&sb, Para(Str("a "), Emph(Str("b")))); err != nil {
		t.Fatalf("Write: %s", err)
	}
	if got, want := sb.String(), "a *b*\n"; got != want {
		t.Errorf("rendered %q, want %q", got, want)
	}
}

// The canonical rendering of a parsed document parses back to the
// same document.
func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"# Hello\n",
		"a *b* c\n",
		"***bold-em***\n",
		"***a* b**\n",
		"~~a~~ ~b~ ^c^\n",
		"```hs\nfoo\n```\n",
		"    code\n",
		"---\ntitle: x\nn: 3\n---\n# T\n",
		"<a@b.com> and <http://a/b>\n",
		"[x](http://a \"t\") ![i](http://a/i.png)\n",
		"* a\n* b\n",
		"* a\n  * b\n",
		"a\\\nb\n",
		"\\*not emphasis\\*\n",
		"`` a  b ``\n",
		"para\n\n***\n\n## done\n",
	}
	for _, in := range inputs {
		first, err := mmark.Parse("test.md", in)
		if err != nil {
			t.Errorf("Parse(%q): %s", in, err)
			continue
		}
		var sb strings.Builder
		if err := first.Write(&sb); err != nil {
			t.Errorf("Write(%q): %s", in, err)
			continue
		}
		second, err := mmark.Parse("test.md", sb.String())
		if err != nil {
			t.Errorf("reparse of %q rendering %q: %s", in, sb.String(), err)
			continue
		}
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("round trip of %q via %q (-first +second):\n%s", in, sb.String(), diff)
		}
	}
}
