package mmark

import (
	"fmt"
	"strings"
	"unicode"
)

// Inline phase. Each payload produced by the block phase is parsed
// independently; the last-character class tracks what kind of
// character precedes the cursor so that delimiter runs can be judged
// left- or right-flanking without re-reading the input.

type charClass int

const (
	spaceChar charClass = iota
	leftFlankingDel
	rightFlankingDel
	otherChar
)

// Inline parser configuration. All true at the document root. A link
// label disables links, an image description disables images, an
// emphasis-class frame disables empty content.
type inlineFlags struct {
	allowEmpty  bool
	allowLinks  bool
	allowImages bool
}

type inlineParser struct {
	s    scanner
	last charClass
}

// Runs the inline phase over a single payload starting at pos.
func parseInlines(text string, pos Pos, flags inlineFlags) ([]Inline, *ParseError) {
	p := &inlineParser{last: spaceChar}
	p.s.initAt(text, pos)
	if p.s.eof() {
		if flags.allowEmpty {
			return []Inline{&Str{}}, nil
		}
		return nil, p.unexpected([]string{"inline content"})
	}
	var inlines []Inline
	for !p.s.eof() {
		in, err := p.token(flags)
		if err != nil {
			return nil, err
		}
		inlines = append(inlines, in)
	}
	return inlines, nil
}

func (p *inlineParser) unexpected(expected []string) *ParseError {
	return &ParseError{
		Pos:        p.s.at(),
		Unexpected: tokenLabel(p.s.peek()),
		Expected:   expected,
	}
}

func (p *inlineParser) token(flags inlineFlags) (Inline, *ParseError) {
	switch c := p.s.peek(); {
	case c == '`':
		return p.codeSpan()
	case c == '[' && flags.allowLinks:
		return p.link(flags)
	case c == '!' && flags.allowImages && p.s.peek2() == '[':
		return p.image(flags)
	case c == '<' && flags.allowLinks:
		if in, ok := p.autolink(); ok {
			return in, nil
		}
		return p.plain(flags)
	case c == '*' || c == '_' || c == '~' || c == '^':
		return p.enclosed(flags)
	case c == '\\' && p.s.peek2() == '\n':
		if in, ok := p.lineBreak(); ok {
			return in, nil
		}
		return p.plain(flags)
	default:
		return p.plain(flags)
	}
}

// ----------- code spans -------------

// A run of n backticks opens a span closed by a run of exactly n.
// Runs of any other length inside are content. Content whitespace is
// collapsed.
func (p *inlineParser) codeSpan() (Inline, *ParseError) {
	n := p.s.scanRun('`')
	var sb strings.Builder
	for {
		if p.s.eof() {
			return nil, &ParseError{
				Pos:        p.s.at(),
				Unexpected: eofLabel,
				Expected:   []string{fmt.Sprintf("%q", strings.Repeat("`", n))},
			}
		}
		if p.s.peek() == '`' {
			k := p.s.scanRun('`')
			if k == n {
				p.last = otherChar
				return &Code{Text: collapseWhitespace(sb.String())}, nil
			}
			sb.WriteString(strings.Repeat("`", k))
			continue
		}
		sb.WriteRune(p.s.next())
	}
}

// ----------- links and images -------------

func (p *inlineParser) link(flags inlineFlags) (Inline, *ParseError) {
	p.s.next() // '['
	label, err := p.seq(inlineFlags{allowImages: flags.allowImages}, ']')
	if err != nil {
		return nil, err
	}
	t, err := p.target()
	if err != nil {
		return nil, err
	}
	p.last = otherChar
	return &Link{Inlines: label, Target: t}, nil
}

func (p *inlineParser) image(flags inlineFlags) (Inline, *ParseError) {
	p.s.next() // '!'
	p.s.next() // '['
	var desc []Inline
	if p.s.peek() == ']' {
		p.s.next()
		desc = []Inline{&Str{}}
	} else {
		var err *ParseError
		desc, err = p.seq(inlineFlags{allowLinks: flags.allowLinks}, ']')
		if err != nil {
			return nil, err
		}
	}
	t, err := p.target()
	if err != nil {
		return nil, err
	}
	p.last = otherChar
	return &Image{Inlines: desc, Target: t}, nil
}

// Parses a non-empty inline sequence terminated by closer, consuming
// the closer.
func (p *inlineParser) seq(flags inlineFlags, closer rune) ([]Inline, *ParseError) {
	var inlines []Inline
	for {
		if p.s.peek() == closer {
			if len(inlines) == 0 {
				return nil, p.unexpected([]string{"inline content"})
			}
			p.s.next()
			return inlines, nil
		}
		if p.s.eof() {
			return nil, &ParseError{
				Pos:        p.s.at(),
				Unexpected: eofLabel,
				Expected:   []string{fmt.Sprintf("%q", closer)},
			}
		}
		in, err := p.token(flags)
		if err != nil {
			return nil, err
		}
		inlines = append(inlines, in)
	}
}

// '(' destination, optional title, ')'.
func (p *inlineParser) target() (Target, *ParseError) {
	if p.s.peek() != '(' {
		return Target{}, p.unexpected([]string{`'('`})
	}
	p.s.next()
	p.s.skipHWS()
	uri, err := p.destination()
	if err != nil {
		return Target{}, err
	}
	p.s.skipHWS()
	var title string
	if c := p.s.peek(); c == '"' || c == '\'' || c == '(' {
		title, err = p.title(c)
		if err != nil {
			return Target{}, err
		}
		p.s.skipHWS()
	}
	if p.s.peek() != ')' {
		return Target{}, p.unexpected([]string{`')'`})
	}
	p.s.next()
	return Target{Url: uri, Title: title}, nil
}

// Destination: either angle-bracketed, or naked up to whitespace or
// the closing parenthesis.
func (p *inlineParser) destination() (string, *ParseError) {
	if p.s.peek() == '<' {
		p.s.next()
		pos := p.s.at()
		var sb strings.Builder
		for p.s.peek() != '>' {
			if p.s.eof() || p.s.peek() == '\n' {
				return "", p.unexpected([]string{`'>'`})
			}
			sb.WriteRune(p.s.next())
		}
		p.s.next()
		return parseURI(sb.String(), pos)
	}
	pos := p.s.at()
	var sb strings.Builder
	for c := p.s.peek(); c != eofCh && c != ')' && !isSpaceOrNewline(c); c = p.s.peek() {
		sb.WriteRune(p.s.next())
	}
	if sb.Len() == 0 {
		return "", p.unexpected([]string{"URI"}).relabelEOF("end of URI literal")
	}
	uri, err := parseURI(sb.String(), pos)
	if err != nil {
		err.relabelEOF("end of URI literal")
	}
	return uri, err
}

// Title quoted by double quotes, single quotes or parentheses, with
// backslash escapes.
func (p *inlineParser) title(open rune) (string, *ParseError) {
	closer := open
	if open == '(' {
		closer = ')'
	}
	p.s.next()
	var sb strings.Builder
	for p.s.peek() != closer {
		if p.s.eof() {
			return "", &ParseError{
				Pos:        p.s.at(),
				Unexpected: eofLabel,
				Expected:   []string{fmt.Sprintf("%q", closer)},
			}
		}
		if c, ok := p.s.scanEscaped(); ok {
			sb.WriteRune(c)
		} else {
			sb.WriteRune(p.s.next())
		}
	}
	p.s.next()
	return sb.String(), nil
}

// ----------- autolinks -------------

// '<' URI '>' with no whitespace inside. Fails without consuming
// input so the '<' can fall back to plain text.
func (p *inlineParser) autolink() (Inline, bool) {
	m := p.s.mark()
	p.s.next() // '<'
	var sb strings.Builder
	for p.s.peek() != '>' {
		c := p.s.peek()
		if c == eofCh || c == '<' || unicode.IsSpace(c) {
			p.s.reset(m)
			return nil, false
		}
		sb.WriteRune(p.s.next())
	}
	if sb.Len() == 0 {
		p.s.reset(m)
		return nil, false
	}
	t, label, ok := autolinkTarget(sb.String())
	if !ok {
		p.s.reset(m)
		return nil, false
	}
	p.s.next() // '>'
	p.last = otherChar
	return &Link{Inlines: []Inline{&Str{Text: label}}, Target: t}, true
}

func (p *inlineParser) autolinkAhead() bool {
	m, last := p.s.mark(), p.last
	_, ok := p.autolink()
	p.s.reset(m)
	p.last = last
	return ok
}

// ----------- delimiter runs -------------

type frameKind struct {
	dels string
	wrap func([]Inline) Inline
}

var (
	emphK        = &frameKind{"*", func(i []Inline) Inline { return &Emph{Inlines: i} }}
	strongK      = &frameKind{"**", func(i []Inline) Inline { return &Strong{Inlines: i} }}
	emphUndK     = &frameKind{"_", func(i []Inline) Inline { return &Emph{Inlines: i} }}
	strongUndK   = &frameKind{"__", func(i []Inline) Inline { return &Strong{Inlines: i} }}
	strikeoutK   = &frameKind{"~~", func(i []Inline) Inline { return &Strikeout{Inlines: i} }}
	subscriptK   = &frameKind{"~", func(i []Inline) Inline { return &Subscript{Inlines: i} }}
	superscriptK = &frameKind{"^", func(i []Inline) Inline { return &Superscript{Inlines: i} }}
)

// Opener alternatives in priority order. A composite opener pushes
// two frames: the outer closes last.
var openerTable = []struct {
	dels  string
	outer *frameKind
	inner *frameKind
}{
	{"****", strongK, strongK},
	{"***", strongK, emphK},
	{"**", strongK, nil},
	{"*", emphK, nil},
	{"____", strongUndK, strongUndK},
	{"___", strongUndK, emphUndK},
	{"__", strongUndK, nil},
	{"_", emphUndK, nil},
	{"~~~~", strikeoutK, strikeoutK},
	{"~~~", strikeoutK, subscriptK},
	{"~~", strikeoutK, nil},
	{"~", subscriptK, nil},
	{"^", superscriptK, nil},
}

// Enclosed inline: open one or two frames at the current delimiter
// run, parse content, close them.
func (p *inlineParser) enclosed(flags inlineFlags) (Inline, *ParseError) {
	start := p.s.at()
	i := 0
	for ; i < len(openerTable); i++ {
		if p.s.has(openerTable[i].dels) {
			break
		}
	}
	ent := &openerTable[i]
	p.s.accept(ent.dels)
	if c := p.s.peek(); c == eofCh || isTransparent(c) ||
		p.last != spaceChar && p.last != leftFlankingDel {
		return nil, &ParseError{Pos: start, Custom: &NonFlankingDelimiterRun{Delims: ent.dels}}
	}
	p.last = leftFlankingDel
	inner := inlineFlags{allowLinks: flags.allowLinks, allowImages: flags.allowImages}
	if ent.inner == nil {
		inlines, err := p.frameBody(inner, ent.outer, start, ent.dels)
		if err != nil {
			return nil, err
		}
		return ent.outer.wrap(inlines), nil
	}
	return p.enclosedDouble(inner, ent.outer, ent.inner, start, ent.dels)
}

// Parses inline tokens until the frame's delimiter closes. Running
// out of input reports the composite opening run as non-flanking at
// its own position.
func (p *inlineParser) frameBody(flags inlineFlags, k *frameKind, openPos Pos, openDels string) ([]Inline, *ParseError) {
	var inlines []Inline
	for {
		if p.tryClose(k.dels) {
			return inlines, nil
		}
		if p.s.eof() {
			return nil, &ParseError{Pos: openPos, Custom: &NonFlankingDelimiterRun{Delims: openDels}}
		}
		in, err := p.token(flags)
		if err != nil {
			return nil, err
		}
		inlines = append(inlines, in)
	}
}

// A composite opener holds two frames. Content is parsed until one of
// the two delimiters closes; if the other closes right after, the
// result nests directly, otherwise a second content run must end by
// closing the other delimiter.
func (p *inlineParser) enclosedDouble(flags inlineFlags, outer, inner *frameKind, openPos Pos, openDels string) (Inline, *ParseError) {
	var inlines0 []Inline
	var this, that *frameKind
	for {
		if p.tryClose(inner.dels) {
			this, that = inner, outer
			break
		}
		if p.tryClose(outer.dels) {
			this, that = outer, inner
			break
		}
		if p.s.eof() {
			return nil, &ParseError{Pos: openPos, Custom: &NonFlankingDelimiterRun{Delims: openDels}}
		}
		in, err := p.token(flags)
		if err != nil {
			return nil, err
		}
		inlines0 = append(inlines0, in)
	}
	if p.tryClose(that.dels) {
		return that.wrap([]Inline{this.wrap(inlines0)}), nil
	}
	inlines1, err := p.frameBody(flags, that, openPos, openDels)
	if err != nil {
		return nil, err
	}
	return that.wrap(append([]Inline{this.wrap(inlines0)}, inlines1...)), nil
}

// Attempts to close a frame: the delimiter run is right-flanking iff
// the character before it is word-like and the character after it is
// absent, transparent or markup.
func (p *inlineParser) tryClose(dels string) bool {
	if p.last == spaceChar || p.last == leftFlankingDel {
		return false
	}
	m := p.s.mark()
	if !p.s.accept(dels) {
		return false
	}
	if c := p.s.peek(); c == eofCh || isTransparent(c) || isMarkupChar(c) {
		p.last = rightFlankingDel
		return true
	}
	p.s.reset(m)
	return false
}

// ----------- line breaks and plain runs -------------

// Backslash at end of line, with more input following.
func (p *inlineParser) lineBreak() (Inline, bool) {
	m := p.s.mark()
	p.s.next() // '\\'
	if !p.s.scanNewline() || p.s.eof() {
		p.s.reset(m)
		return nil, false
	}
	p.s.skipHWS()
	p.last = spaceChar
	return LB, true
}

// A run of text up to the next construct opener. Escapes resolve to
// their punctuation character; a whitespace run containing a newline
// collapses to a single space.
func (p *inlineParser) plain(flags inlineFlags) (Inline, *ParseError) {
	var sb strings.Builder
loop:
	for {
		switch c := p.s.peek(); {
		case c == eofCh:
			break loop
		case c == '\\':
			if isASCIIPunct(p.s.peek2()) {
				p.s.next()
				sb.WriteRune(p.s.next())
				p.last = otherChar
			} else if p.s.peek2() == '\n' {
				break loop
			} else {
				p.s.next()
				sb.WriteByte('\\')
				p.last = otherChar
			}
		case isSpaceOrNewline(c):
			nl := false
			var run []rune
			for isSpaceOrNewline(p.s.peek()) {
				r := p.s.next()
				if r == '\n' {
					nl = true
				}
				run = append(run, r)
			}
			if nl {
				sb.WriteByte(' ')
			} else {
				for _, r := range run {
					sb.WriteRune(r)
				}
			}
			p.last = spaceChar
		case c == '!':
			if flags.allowImages && p.s.peek2() == '[' {
				break loop
			}
			p.s.next()
			sb.WriteByte('!')
			p.last = spaceChar
		case c == '<':
			if flags.allowLinks && p.autolinkAhead() {
				break loop
			}
			p.s.next()
			sb.WriteByte('<')
			p.last = otherChar
		case isMarkupChar(c):
			break loop
		case isTransparentPunct(c):
			p.s.next()
			sb.WriteRune(c)
			p.last = spaceChar
		default:
			p.s.next()
			sb.WriteRune(c)
			p.last = otherChar
		}
	}
	if sb.Len() == 0 {
		return nil, p.unexpected([]string{"inline content"})
	}
	return &Str{Text: sb.String()}, nil
}
