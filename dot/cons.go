// Package dot provides terse constructors for MMark AST elements,
// intended to be dot-imported in tests and filter code:
//
//	import . "github.com/growler/go-mmark/dot"
//
//	doc := Doc(nil,
//	    Heading(1, Str("Title")),
//	    Para(Str("Hello, "), Emph(Str("world")), Str("!")),
//	)
package dot

import "github.com/growler/go-mmark"

const (
	Continue = mmark.WalkContinue
	Replace  = mmark.WalkReplace
	Skip     = mmark.WalkSkip
	Stop     = mmark.WalkStop
)

func Blocks(b ...mmark.Block) []mmark.Block {
	return b
}

func Inlines(i ...mmark.Inline) []mmark.Inline {
	return i
}

// Text (string)
func Str(s string) mmark.Inline {
	return &mmark.Str{Text: s}
}

// Emphasized text (list of inlines)
func Emph(i ...mmark.Inline) *mmark.Emph {
	return &mmark.Emph{Inlines: i}
}

// Strongly emphasized text (list of inlines)
func Strong(i ...mmark.Inline) *mmark.Strong {
	return &mmark.Strong{Inlines: i}
}

// Strikeout text (list of inlines)
func Strikeout(i ...mmark.Inline) *mmark.Strikeout {
	return &mmark.Strikeout{Inlines: i}
}

// Superscripted text (list of inlines)
func Superscript(i ...mmark.Inline) *mmark.Superscript {
	return &mmark.Superscript{Inlines: i}
}

// Subscripted text (list of inlines)
func Subscript(i ...mmark.Inline) *mmark.Subscript {
	return &mmark.Subscript{Inlines: i}
}

// Inline code (literal)
func Code(text string) *mmark.Code {
	return &mmark.Code{Text: text}
}

// Hard line break
func LineBreak() mmark.Inline { return mmark.LB }

// Link (list of inlines as link text).
func Link(url string, title string, i ...mmark.Inline) *mmark.Link {
	return &mmark.Link{Target: mmark.Target{Url: url, Title: title}, Inlines: i}
}

// Image (list of inlines as image description).
func Image(url string, title string, i ...mmark.Inline) *mmark.Image {
	return &mmark.Image{Target: mmark.Target{Url: url, Title: title}, Inlines: i}
}

// Thematic break.
func ThematicBreak() mmark.Block {
	return mmark.TB
}

func Para(i ...mmark.Inline) *mmark.Para {
	return &mmark.Para{Inlines: i}
}

func BulletList(items ...[]mmark.Block) *mmark.BulletList {
	return &mmark.BulletList{Items: items}
}

func CodeBlock(info string, text string) *mmark.CodeBlock {
	return &mmark.CodeBlock{Info: info, Text: text}
}

func Heading(level int, i ...mmark.Inline) *mmark.Heading {
	return &mmark.Heading{Level: level, Inlines: i}
}

// Document with front matter value (nil when absent) and blocks.
func Doc(meta any, b ...mmark.Block) *mmark.Doc {
	return &mmark.Doc{Meta: meta, Blocks: b}
}

func Filter[P any, E mmark.Element, R mmark.Element](elt E, fun func(P) ([]R, mmark.WalkResult)) E {
	return mmark.Filter[P, E, R](elt, fun)
}

func Query[P any, E mmark.Element](elt E, fun func(P) mmark.WalkResult) {
	mmark.Query[P, E](elt, fun)
}
