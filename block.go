package mmark

import "strings"

// Block phase. The input is cut into raw blocks under a read-only
// reference level rlevel: the minimum column at which the current
// context's content begins. Top-level content runs at rlevel 1; a list
// item replaces the level for the extent of the item. Textual block
// content is not interpreted here: it is carried as an isp payload
// and handed to the inline phase by the driver.

// An inline payload: the raw text of a block and the position of its
// first character.
type isp struct {
	pos  Pos
	text string
}

// ----------- raw blocks -------------

type rawBlock interface {
	rawBlock()
}

type rawThematicBreak struct{}

type rawHeading struct {
	level int
	text  isp
}

type rawCodeBlock struct {
	info string
	text string
}

type rawPara struct {
	text isp
}

type rawList struct {
	items [][]rawBlock
}

// A recovered block-level failure, kept in the block stream at its
// source position.
type rawError struct {
	err *ParseError
}

func (rawThematicBreak) rawBlock() {}
func (rawHeading) rawBlock()      {}
func (rawCodeBlock) rawBlock()    {}
func (rawPara) rawBlock()         {}
func (rawList) rawBlock()         {}
func (rawError) rawBlock()        {}

// ----------- block parser -------------

type blockParser struct {
	s    scanner
	meta any
	errs ParseErrors
}

// Parses a sequence of blocks under rlevel. Stops at end of input or
// at the first line indented left of rlevel, which is left unread for
// the enclosing context.
func (p *blockParser) parseBlocks(rlevel int) []rawBlock {
	var blocks []rawBlock
	for {
		m := p.s.mark()
		lineStart := p.s.skipBlank()
		if p.s.eof() {
			break
		}
		alevel := p.s.col
		if alevel < rlevel {
			p.s.reset(m)
			break
		}
		if alevel >= rlevel+tabWidth {
			p.s.reset(lineStart)
			blocks = append(blocks, p.indentedCode(rlevel))
			continue
		}
		if b, ok := p.thematicBreak(); ok {
			blocks = append(blocks, b)
		} else if b, ok := p.heading(); ok {
			blocks = append(blocks, b)
		} else if b, ok := p.fencedCode(rlevel, alevel); ok {
			blocks = append(blocks, b)
		} else if b, ok := p.list(rlevel, alevel); ok {
			blocks = append(blocks, b)
		} else {
			blocks = append(blocks, p.paragraph())
		}
	}
	return blocks
}

// A line that, with all whitespace removed, is three or more of the
// same character out of '*', '-', '_'.
func (p *blockParser) thematicBreak() (rawBlock, bool) {
	m := p.s.mark()
	line := p.s.scanLine()
	stripped := strings.Map(func(c rune) rune {
		if isSpace(c) {
			return -1
		}
		return c
	}, line)
	if len(stripped) < 3 {
		p.s.reset(m)
		return nil, false
	}
	c := stripped[0]
	if c != '*' && c != '-' && c != '_' {
		p.s.reset(m)
		return nil, false
	}
	for i := 1; i < len(stripped); i++ {
		if stripped[i] != c {
			p.s.reset(m)
			return nil, false
		}
	}
	p.s.scanNewline()
	return rawThematicBreak{}, true
}

// ATX heading: one to six '#', mandatory horizontal whitespace, text
// to end of line with an optional trailing '#' run stripped. A seventh
// '#' rejects the opener; a missing whitespace after the opener is a
// recovered failure that consumes the rest of the line.
func (p *blockParser) heading() (rawBlock, bool) {
	m := p.s.mark()
	n := p.s.scanRun('#')
	if n < 1 || n > 6 {
		p.s.reset(m)
		return nil, false
	}
	if !isSpace(p.s.peek()) {
		errPos := p.s.at()
		lbl := tokenLabel(p.s.peek())
		p.s.scanLine()
		p.s.scanNewline()
		return rawError{&ParseError{
			Pos:        errPos,
			Unexpected: lbl,
			Expected:   []string{"white space"},
		}}, true
	}
	p.s.skipHWS()
	tpos := p.s.at()
	rest := p.s.scanLine()
	p.s.scanNewline()
	text := strings.TrimRight(rest, " \t")
	if i := len(text); i > 0 {
		j := i
		for j > 0 && text[j-1] == '#' {
			j--
		}
		if j < i {
			if j == 0 {
				text = ""
			} else if text[j-1] == ' ' || text[j-1] == '\t' {
				text = strings.TrimRight(text[:j], " \t")
			}
		}
	}
	return rawHeading{level: n, text: isp{pos: tpos, text: text}}, true
}

// Fenced code block: three or more of the same fence character with an
// optional info string, body lines verbatim to the closing fence or
// end of input.
func (p *blockParser) fencedCode(rlevel, alevel int) (rawBlock, bool) {
	m := p.s.mark()
	fc := p.s.peek()
	if fc != '`' && fc != '~' {
		return nil, false
	}
	n := p.s.scanRun(fc)
	if n < 3 {
		p.s.reset(m)
		return nil, false
	}
	var sb strings.Builder
	for !p.s.eof() && p.s.peek() != '\n' {
		if c, ok := p.s.scanEscaped(); ok {
			sb.WriteRune(c)
		} else {
			sb.WriteRune(p.s.next())
		}
	}
	info := strings.TrimSpace(sb.String())
	if fc == '`' && strings.ContainsRune(info, '`') {
		p.s.reset(m)
		return nil, false
	}
	p.s.scanNewline()
	var lines []string
	for !p.s.eof() {
		lm := p.s.mark()
		p.s.skipHWS()
		if p.s.col <= alevel && p.s.scanRun(fc) >= n {
			p.s.skipHWS()
			if p.s.eof() || p.s.peek() == '\n' {
				p.s.scanNewline()
				return rawCodeBlock{info: info, text: assembleCodeBlock(rlevel, lines)}, true
			}
		}
		p.s.reset(lm)
		lines = append(lines, p.s.scanLine())
		p.s.scanNewline()
	}
	return rawCodeBlock{info: info, text: assembleCodeBlock(rlevel, lines)}, true
}

// Indented code block: lines at ilevel or beyond, unindented by
// ilevel-1 columns. Interior blank lines survive as long as a later
// line still qualifies; trailing blank lines are dropped. Entered with
// the cursor at the start of the line, indentation unread.
func (p *blockParser) indentedCode(rlevel int) rawBlock {
	ilevel := rlevel + tabWidth
	var lines, pending []string
	lines = append(lines, p.s.scanLine())
	p.s.scanNewline()
	for !p.s.eof() {
		m := p.s.mark()
		line := p.s.scanLine()
		p.s.scanNewline()
		if strings.TrimRight(line, " \t") == "" {
			pending = append(pending, line)
			continue
		}
		if indentLevel(line) >= ilevel-1 {
			lines = append(lines, pending...)
			pending = nil
			lines = append(lines, line)
			continue
		}
		p.s.reset(m)
		break
	}
	return rawCodeBlock{text: assembleCodeBlock(ilevel, lines)}
}

// Unordered list: '*' followed by horizontal whitespace opens an item
// whose content is a block sequence under a reference level at the
// column right after the marker's whitespace. Consecutive items at the
// list's indent extend the list.
func (p *blockParser) list(rlevel, alevel int) (rawBlock, bool) {
	item, ok := p.listItem()
	if !ok {
		return nil, false
	}
	items := [][]rawBlock{item}
	for {
		m := p.s.mark()
		p.s.skipBlank()
		if p.s.eof() || p.s.col < rlevel || p.s.col >= rlevel+tabWidth {
			p.s.reset(m)
			break
		}
		if _, ok := p.thematicBreak(); ok {
			p.s.reset(m)
			break
		}
		item, ok := p.listItem()
		if !ok {
			p.s.reset(m)
			break
		}
		items = append(items, item)
	}
	return rawList{items: items}, true
}

func (p *blockParser) listItem() ([]rawBlock, bool) {
	m := p.s.mark()
	if p.s.peek() != '*' {
		return nil, false
	}
	p.s.next()
	if !isSpace(p.s.peek()) {
		p.s.reset(m)
		return nil, false
	}
	p.s.skipHWS()
	return p.parseBlocks(p.s.col), true
}

// Paragraph: a non-empty line and every following non-blank line,
// joined with newlines, the last line right-trimmed.
func (p *blockParser) paragraph() rawBlock {
	pos := p.s.at()
	lines := []string{p.s.scanLine()}
	for p.s.scanNewline() {
		m := p.s.mark()
		line := p.s.scanLine()
		if strings.TrimRight(line, " \t") == "" {
			p.s.reset(m)
			break
		}
		lines = append(lines, line)
	}
	return rawPara{text: isp{pos: pos, text: assembleParagraph(lines)}}
}
