// Package mmark implements a parser for the [MMark] dialect of
// Markdown. The parser produces an AST, not HTML: a document is an
// optional YAML front matter value plus a sequence of block elements
// whose textual content has been resolved into inline elements.
//
// MMark recognizes a subset of CommonMark constructs and parses them
// the CommonMark way, but where CommonMark would silently pass a
// malformed delimiter run through as literal text, MMark reports a
// positioned parse error instead. Parse never guesses.
//
// [MMark]: https://github.com/mmark-md/mmark
package mmark

import "strings"

// AST element interface
type Element interface {
	writable
	element()
	clone() Element
}

// A convenience function to check if an element is of a particular type.
//
// Example:
//
//	if mmark.Is[mmark.Str](elt) {
//	    ...
func Is[P any, S Element](elt S) bool {
	_, ok := any(elt).(*P)
	return ok
}

// Returns a shallow copy of an element. Intended for use in Filter.
func Clone[P Element](elt P) P {
	return elt.clone().(P)
}

type inlinesContainer interface {
	inlines() []Inline
}

type blocksContainer interface {
	blocks() []Block
}

// AST object tag
type Tag string

func (t Tag) Tag() Tag       { return t }
func (t Tag) String() string { return string(t) }

// AST object with tag
type Tagged interface {
	Tag() Tag
}

// Inline element
type Inline interface {
	Element
	Tagged
	inline()
}

// Block element
type Block interface {
	Element
	Tagged
	block()
}

// A parsed MMark document: the decoded YAML front matter value (nil
// when the input has none) and the block sequence.
type Doc struct {
	File   string // file name the document was parsed with
	Meta   any    // decoded front matter value
	Blocks []Block
}

func (d *Doc) element() {}
func (d *Doc) clone() Element {
	c := *d
	return &c
}
func (d *Doc) blocks() []Block { return d.Blocks }

// ----------- inlines -------------

// Text (string)
type Str struct {
	Text string
}

const StrTag = Tag("Str")

func (s *Str) Tag() Tag { return StrTag }
func (s *Str) clone() Element {
	c := *s
	return &c
}
func (s *Str) inline()  {}
func (s *Str) element() {}

var LB = &LineBreak{}

// Hard line break
type LineBreak struct{}

const LineBreakTag = Tag("LineBreak")

func (*LineBreak) Tag() Tag       { return LineBreakTag }
func (*LineBreak) clone() Element { return LB }
func (*LineBreak) inline()        {}
func (*LineBreak) element()       {}

// Inline code span (literal)
type Code struct {
	Text string
}

const CodeTag = Tag("Code")

func (c *Code) Tag() Tag { return CodeTag }
func (c *Code) clone() Element {
	c1 := *c
	return &c1
}
func (c *Code) inline()  {}
func (c *Code) element() {}

// Emphasized text (list of inlines)
type Emph struct {
	Inlines []Inline
}

const EmphTag = Tag("Emph")

func (e *Emph) Tag() Tag          { return EmphTag }
func (e *Emph) inlines() []Inline { return e.Inlines }
func (e *Emph) clone() Element {
	c := *e
	return &c
}
func (e *Emph) inline()  {}
func (e *Emph) element() {}

// Strongly emphasized text (list of inlines)
type Strong struct {
	Inlines []Inline
}

const StrongTag = Tag("Strong")

func (s *Strong) Tag() Tag          { return StrongTag }
func (s *Strong) inlines() []Inline { return s.Inlines }
func (s *Strong) clone() Element {
	c := *s
	return &c
}
func (s *Strong) inline()  {}
func (s *Strong) element() {}

// Strikeout text (list of inlines)
type Strikeout struct {
	Inlines []Inline
}

const StrikeoutTag = Tag("Strikeout")

func (s *Strikeout) Tag() Tag          { return StrikeoutTag }
func (s *Strikeout) inlines() []Inline { return s.Inlines }
func (s *Strikeout) clone() Element {
	c := *s
	return &c
}
func (s *Strikeout) inline()  {}
func (s *Strikeout) element() {}

// Subscripted text (list of inlines)
type Subscript struct {
	Inlines []Inline
}

const SubscriptTag = Tag("Subscript")

func (s *Subscript) Tag() Tag          { return SubscriptTag }
func (s *Subscript) inlines() []Inline { return s.Inlines }
func (s *Subscript) clone() Element {
	c := *s
	return &c
}
func (s *Subscript) inline()  {}
func (s *Subscript) element() {}

// Superscripted text (list of inlines)
type Superscript struct {
	Inlines []Inline
}

const SuperscriptTag = Tag("Superscript")

func (s *Superscript) Tag() Tag          { return SuperscriptTag }
func (s *Superscript) inlines() []Inline { return s.Inlines }
func (s *Superscript) clone() Element {
	c := *s
	return &c
}
func (s *Superscript) inline()  {}
func (s *Superscript) element() {}

// Link or image destination: the rendered URI and an optional title
// (empty string when absent).
type Target struct {
	Url   string
	Title string
}

// Hyperlink: label (list of inlines), target
type Link struct {
	Inlines []Inline
	Target  Target
}

const LinkTag = Tag("Link")

func (l *Link) Tag() Tag          { return LinkTag }
func (l *Link) inlines() []Inline { return l.Inlines }
func (l *Link) clone() Element {
	c := *l
	return &c
}
func (l *Link) inline()  {}
func (l *Link) element() {}

// Image: description (list of inlines), source
type Image struct {
	Inlines []Inline
	Target  Target
}

const ImageTag = Tag("Image")

func (i *Image) Tag() Tag          { return ImageTag }
func (i *Image) inlines() []Inline { return i.Inlines }
func (i *Image) clone() Element {
	c := *i
	return &c
}
func (i *Image) inline()  {}
func (i *Image) element() {}

// ----------- blocks -------------

var TB = &ThematicBreak{}

// Thematic break
type ThematicBreak struct{}

const ThematicBreakTag = Tag("ThematicBreak")

func (*ThematicBreak) Tag() Tag       { return ThematicBreakTag }
func (*ThematicBreak) clone() Element { return TB }
func (*ThematicBreak) block()         {}
func (*ThematicBreak) element()       {}

// Heading - level (1 to 6) and text (inlines)
type Heading struct {
	Level   int
	Inlines []Inline
}

const HeadingTag = Tag("Heading")

func (h *Heading) Tag() Tag          { return HeadingTag }
func (h *Heading) inlines() []Inline { return h.Inlines }
func (h *Heading) clone() Element {
	c := *h
	return &c
}
func (h *Heading) block()   {}
func (h *Heading) element() {}

// Returns the plain text of the heading.
func (h *Heading) Title() string {
	return Text(h.Inlines)
}

// Code block (literal). Info is the trimmed info string of a fenced
// block, empty when omitted and always empty for indented blocks.
type CodeBlock struct {
	Info string
	Text string
}

const CodeBlockTag = Tag("CodeBlock")

func (b *CodeBlock) Tag() Tag { return CodeBlockTag }
func (b *CodeBlock) clone() Element {
	c := *b
	return &c
}
func (b *CodeBlock) block()   {}
func (b *CodeBlock) element() {}

// Paragraph (list of inlines)
type Para struct {
	Inlines []Inline
}

const ParaTag = Tag("Para")

func (p *Para) Tag() Tag          { return ParaTag }
func (p *Para) inlines() []Inline { return p.Inlines }
func (p *Para) clone() Element {
	c := *p
	return &c
}
func (p *Para) block()   {}
func (p *Para) element() {}

// Bullet list (list of items, each a list of blocks)
type BulletList struct {
	Items [][]Block
}

const BulletListTag = Tag("BulletList")

func (l *BulletList) Tag() Tag { return BulletListTag }
func (l *BulletList) clone() Element {
	c := *l
	return &c
}
func (l *BulletList) block()   {}
func (l *BulletList) element() {}

// Returns the plain-text projection of an inline list.
func Text(inlines []Inline) string {
	var sb strings.Builder
	Query(&Para{inlines}, func(i Inline) WalkResult {
		switch i := i.(type) {
		case *Str:
			sb.WriteString(i.Text)
		case *Code:
			sb.WriteString(i.Text)
		case *LineBreak:
			sb.WriteByte('\n')
		}
		return WalkContinue
	})
	return sb.String()
}
