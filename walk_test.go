package mmark_test

import (
	"strings"
	"testing"

	mmark "github.com/growler/go-mmark"
	. "github.com/growler/go-mmark/dot"
)

func testDoc() *mmark.Doc {
	return Doc(nil,
		Heading(1, Str("Title")),
		Para(Str("a "), Emph(Str("b")), Str(" c")),
		BulletList(
			Blocks(Para(Str("one"))),
			Blocks(Para(Str("two")), CodeBlock("go", "x\n")),
		),
	)
}

func TestQuery(t *testing.T) {
	var items []string
	Query(testDoc(), func(s *mmark.Str) mmark.WalkResult {
		items = append(items, s.Text)
		return Continue
	})
	const expected = "Title,a ,b, c,one,two"
	if result := strings.Join(items, ","); result != expected {
		t.Errorf("Expected %q, got %q", expected, result)
	}
}

func TestQueryStop(t *testing.T) {
	var count int
	Query(testDoc(), func(s *mmark.Str) mmark.WalkResult {
		count++
		if count == 2 {
			return Stop
		}
		return Continue
	})
	if count != 2 {
		t.Errorf("Expected 2 visits, got %d", count)
	}
}

func TestFilterReplace(t *testing.T) {
	src := testDoc()
	upper := Filter(src, func(s *mmark.Str) ([]mmark.Inline, mmark.WalkResult) {
		return Inlines(Str(strings.ToUpper(s.Text))), Replace
	})
	var items []string
	Query(upper, func(s *mmark.Str) mmark.WalkResult {
		items = append(items, s.Text)
		return Continue
	})
	const expected = "TITLE,A ,B, C,ONE,TWO"
	if result := strings.Join(items, ","); result != expected {
		t.Errorf("Expected %q, got %q", expected, result)
	}
	// the source document is not modified
	if h := src.Blocks[0].(*mmark.Heading); h.Inlines[0].(*mmark.Str).Text != "Title" {
		t.Errorf("Filter modified its input: %q", h.Inlines[0].(*mmark.Str).Text)
	}
}

func TestFilterRemove(t *testing.T) {
	out := Filter(testDoc(), func(e *mmark.Emph) ([]mmark.Inline, mmark.WalkResult) {
		return nil, Replace
	})
	p := out.Blocks[1].(*mmark.Para)
	if len(p.Inlines) != 2 {
		t.Fatalf("Expected 2 inlines after removal, got %d", len(p.Inlines))
	}
	Query(out, func(e *mmark.Emph) mmark.WalkResult {
		t.Error("emphasis survived removal")
		return Stop
	})
}

func TestText(t *testing.T) {
	inlines := Inlines(Str("a "), Emph(Str("b")), LineBreak(), Code("c"))
	if got, want := mmark.Text(inlines), "a b\nc"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestIsAndClone(t *testing.T) {
	var in mmark.Inline = Emph(Str("a"))
	if !mmark.Is[mmark.Emph](in) {
		t.Error("Is failed to match")
	}
	if mmark.Is[mmark.Strong](in) {
		t.Error("Is matched the wrong type")
	}
	c := mmark.Clone(in.(*mmark.Emph))
	if c == in.(*mmark.Emph) {
		t.Error("Clone returned its argument")
	}
	c.Inlines = nil
	if len(in.(*mmark.Emph).Inlines) != 1 {
		t.Error("Clone shares the original")
	}
}

func BenchmarkWalk(b *testing.B) {
	d := testDoc()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Query(d, func(e mmark.Element) mmark.WalkResult { return Continue })
	}
}
