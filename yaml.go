package mmark

import (
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML front matter: a "---" line at the very start of the input, body
// lines up to a "---" line or end of input, decoded by the opaque YAML
// decoder. Decoding failures are collected as parse errors; block
// parsing continues behind the already-consumed front matter either
// way.

var yamlLineMsg = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

func (p *blockParser) frontMatter() {
	m := p.s.mark()
	fencePos := p.s.at()
	if !p.s.accept("---") {
		return
	}
	p.s.skipHWS()
	if !p.s.scanNewline() {
		p.s.reset(m)
		return
	}
	var lines []string
	for !p.s.eof() {
		line := p.s.scanLine()
		p.s.scanNewline()
		if strings.TrimSpace(line) == "---" {
			break
		}
		lines = append(lines, line)
	}
	var v any
	if err := yaml.Unmarshal([]byte(strings.Join(lines, "\n")), &v); err != nil {
		p.errs = append(p.errs, yamlParseError(fencePos, err))
		return
	}
	p.meta = v
}

// Maps a decoder failure to a position. The decoder reports body
// lines 1-based in messages shaped "yaml: line L: <rest>"; the body
// starts one line below the opening fence, so document line is L+1.
// Anything else is reported at the fence.
func yamlParseError(fence Pos, err error) *ParseError {
	pos := fence
	msg := err.Error()
	if m := yamlLineMsg.FindStringSubmatch(msg); m != nil {
		if l, e := strconv.Atoi(m[1]); e == nil {
			pos = Pos{File: fence.File, Line: fence.Line + l, Col: 1}
			msg = m[2]
		}
	} else {
		msg = strings.TrimPrefix(msg, "yaml: ")
	}
	return &ParseError{Pos: pos, Custom: &YamlError{Message: msg}}
}
