package mmark_test

import (
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mmark "github.com/growler/go-mmark"
	. "github.com/growler/go-mmark/dot"
)

func doc(meta any, blocks ...mmark.Block) *mmark.Doc {
	d := Doc(meta, blocks...)
	d.File = "test.md"
	return d
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *mmark.Doc
	}{
		{
			"heading",
			"# Hello\n",
			doc(nil, Heading(1, Str("Hello"))),
		},
		{
			"emphasis",
			"a *b* c\n",
			doc(nil, Para(Str("a "), Emph(Str("b")), Str(" c"))),
		},
		{
			"strong emphasis nested",
			"***bold-em***\n",
			doc(nil, Para(Strong(Emph(Str("bold-em"))))),
		},
		{
			"strong closes after emphasis",
			"***a* b**\n",
			doc(nil, Para(Strong(Emph(Str("a")), Str(" b")))),
		},
		{
			"underscore emphasis",
			"_a_ and __b__\n",
			doc(nil, Para(Emph(Str("a")), Str(" and "), Strong(Str("b")))),
		},
		{
			"strikeout subscript superscript",
			"~~a~~ ~b~ ^c^\n",
			doc(nil, Para(Strikeout(Str("a")), Str(" "), Subscript(Str("b")), Str(" "), Superscript(Str("c")))),
		},
		{
			"doubled strong run",
			"****a****\n",
			doc(nil, Para(Strong(Strong(Str("a"))))),
		},
		{
			"fenced code",
			"```hs\nfoo\n```\n",
			doc(nil, CodeBlock("hs", "foo\n")),
		},
		{
			"fenced code unclosed at end of input",
			"```\nfoo\n",
			doc(nil, CodeBlock("", "foo\n")),
		},
		{
			"indented code",
			"    foo\n",
			doc(nil, CodeBlock("", "foo\n")),
		},
		{
			"front matter",
			"---\ntitle: x\n---\n# T\n",
			doc(map[string]any{"title": "x"}, Heading(1, Str("T"))),
		},
		{
			"front matter only",
			"---\n---\n",
			doc(nil),
		},
		{
			"email autolink",
			"<a@b.com>\n",
			doc(nil, Para(Link("mailto:a@b.com", "", Str("a@b.com")))),
		},
		{
			"uri autolink",
			"<http://a/b>\n",
			doc(nil, Para(Link("http://a/b", "", Str("http://a/b")))),
		},
		{
			"link with title",
			"[x](http://a \"t\")\n",
			doc(nil, Para(Link("http://a", "t", Str("x")))),
		},
		{
			"image",
			"![x](http://a/i.png)\n",
			doc(nil, Para(Image("http://a/i.png", "", Str("x")))),
		},
		{
			"image with empty description",
			"![](http://a/i.png)\n",
			doc(nil, Para(Image("http://a/i.png", "", Str("")))),
		},
		{
			"code span collapses whitespace",
			"`` a  b ``\n",
			doc(nil, Para(Code("a b"))),
		},
		{
			"code span holding backticks",
			"` `` `\n",
			doc(nil, Para(Code("``"))),
		},
		{
			"escapes",
			"\\*x\\*\n",
			doc(nil, Para(Str("*x*"))),
		},
		{
			"hard line break",
			"a\\\nb\n",
			doc(nil, Para(Str("a"), LineBreak(), Str("b"))),
		},
		{
			"paragraph lines join",
			"a\nb\n",
			doc(nil, Para(Str("a b"))),
		},
		{
			"thematic break",
			"***\n",
			doc(nil, ThematicBreak()),
		},
		{
			"thematic break after paragraph",
			"para\n\n- - -\n",
			doc(nil, Para(Str("para")), ThematicBreak()),
		},
		{
			"seven hashes is a paragraph",
			"####### too many\n",
			doc(nil, Para(Str("####### too many"))),
		},
		{
			"bullet list",
			"* a\n* b\n",
			doc(nil, BulletList(
				Blocks(Para(Str("a"))),
				Blocks(Para(Str("b"))),
			)),
		},
		{
			"nested bullet list",
			"* a\n  * b\n",
			doc(nil, BulletList(
				Blocks(Para(Str("a")), BulletList(Blocks(Para(Str("b"))))),
			)),
		},
		{
			"list does not capture thematic break",
			"* a\n\n***\n",
			doc(nil, BulletList(Blocks(Para(Str("a")))), ThematicBreak()),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mmark.Parse("test.md", tt.in)
			if err != nil {
				t.Fatalf("Parse: %s", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseUnclosedDelimiter(t *testing.T) {
	_, err := mmark.Parse("test.md", "a *b\n")
	var errs mmark.ParseErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	var run *mmark.NonFlankingDelimiterRun
	require.ErrorAs(t, errs[0], &run)
	assert.Equal(t, "*", run.Delims)
	assert.Equal(t, mmark.Pos{File: "test.md", Line: 1, Col: 3}, errs[0].Pos)
}

func TestParseNonFlankingOpener(t *testing.T) {
	_, err := mmark.Parse("test.md", "*foo *\n")
	var errs mmark.ParseErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	var run *mmark.NonFlankingDelimiterRun
	require.ErrorAs(t, errs[0], &run)
	assert.Equal(t, "*", run.Delims)
	assert.Equal(t, mmark.Pos{File: "test.md", Line: 1, Col: 6}, errs[0].Pos)
}

func TestParseDoubleRunNotThematicBreak(t *testing.T) {
	_, err := mmark.Parse("test.md", "**\n")
	var errs mmark.ParseErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	var run *mmark.NonFlankingDelimiterRun
	require.ErrorAs(t, errs[0], &run)
	assert.Equal(t, "**", run.Delims)
}

func TestParseHeadingMissingWhitespace(t *testing.T) {
	_, err := mmark.Parse("test.md", "#bad\n")
	assert.EqualError(t, err, `test.md:1:2: unexpected 'b', expecting white space`)
}

func TestParseUnclosedCodeSpan(t *testing.T) {
	_, err := mmark.Parse("test.md", "`foo\n")
	assert.EqualError(t, err, "test.md:1:5: unexpected end of inline block, expecting \"`\"")
}

func TestParseErrorsCollected(t *testing.T) {
	_, err := mmark.Parse("test.md", "#bad\na *b\n")
	var errs mmark.ParseErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 2)
	assert.Equal(t, mmark.Pos{File: "test.md", Line: 1, Col: 2}, errs[0].Pos)
	assert.Equal(t, mmark.Pos{File: "test.md", Line: 2, Col: 3}, errs[1].Pos)
}

func TestParseFrontMatterError(t *testing.T) {
	_, err := mmark.Parse("test.md", "---\ntitle: [\n---\n")
	var errs mmark.ParseErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	var ye *mmark.YamlError
	require.ErrorAs(t, errs[0], &ye)
}

func TestHeadingTitle(t *testing.T) {
	d, err := mmark.Parse("test.md", "# a *b* `c`\n")
	require.NoError(t, err)
	require.Len(t, d.Blocks, 1)
	h, ok := d.Blocks[0].(*mmark.Heading)
	require.True(t, ok)
	assert.Equal(t, "a b c", h.Title())
}

const benchInput = `---
title: benchmark
---

# Heading *one*

A paragraph with *emphasis*, **strong** text, a [link](http://example.com "t"),
an autolink <http://example.com/x> and a ` + "`code span`" + `.

* first item
* second item
  * nested ~~gone~~ and ^up^

` + "```go\nfunc main() {}\n```" + `

---
`

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := mmark.Parse("bench.md", benchInput); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWrite(b *testing.B) {
	d, err := mmark.Parse("bench.md", benchInput)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := d.Write(io.Discard); err != nil {
			b.Fatal(err)
		}
	}
}

func FuzzParse(f *testing.F) {
	f.Add("# Hello\n")
	f.Add("a *b* c\n")
	f.Add("***bold-em***\n")
	f.Add("---\ntitle: x\n---\n# T\n")
	f.Add("* a\n  * b\n\n    code\n")
	f.Add("[x](<http://a> \"t\") and <a@b.com>\n")
	f.Add("```hs\nfoo\n```\n")
	f.Add(strings.Repeat("*", 9) + "\n")
	f.Fuzz(func(t *testing.T, in string) {
		d, err := mmark.Parse("fuzz.md", in)
		if err != nil {
			return
		}
		if err := d.Write(io.Discard); err != nil {
			t.Errorf("write after successful parse: %s", err)
		}
	})
}
