package mmark

import (
	"bytes"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Canonical writer: renders an AST back to a minimal MMark text.
// Re-parsing the output yields a structurally equal document. The
// output is canonical, not source-preserving: delimiters are
// normalized to '*' forms, code fences to backticks.

type writable interface {
	write(io.Writer) error
}

// interface check

var _ = []writable{
	&Str{},
	&Emph{},
	&Strong{},
	&Strikeout{},
	&Superscript{},
	&Subscript{},
	&Code{},
	&LineBreak{},
	&Link{},
	&Image{},

	&Para{},
	&CodeBlock{},
	&ThematicBreak{},
	&BulletList{},
	&Heading{},

	&Doc{},
}

// Write writes the canonical MMark rendering of elt to w.
//
// Example:
//
//	var doc *mmark.Doc
//	...
//	if err := mmark.Write(os.Stdout, doc); err != nil {
//		log.Fatal(err)
//	}
func Write[E Element](w io.Writer, elt E) error {
	return elt.write(w)
}

// Write writes the canonical MMark rendering of the document to w.
func (d *Doc) Write(w io.Writer) error {
	return d.write(w)
}

func (d *Doc) write(w io.Writer) error {
	if d.Meta != nil {
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
		b, err := yaml.Marshal(d.Meta)
		if err != nil {
			return err
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
		if len(d.Blocks) > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return writeBlocks(w, d.Blocks)
}

func writeBlocks(w io.Writer, blocks []Block) error {
	for i, b := range blocks {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := b.write(w); err != nil {
			return err
		}
	}
	return nil
}

func writeInlines(w io.Writer, inlines []Inline) error {
	for _, in := range inlines {
		if err := in.write(w); err != nil {
			return err
		}
	}
	return nil
}

// ----------- blocks -------------

func (h *Heading) write(w io.Writer) error {
	if _, err := io.WriteString(w, strings.Repeat("#", h.Level)+" "); err != nil {
		return err
	}
	if err := writeInlines(w, h.Inlines); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (p *Para) write(w io.Writer) error {
	if err := writeInlines(w, p.Inlines); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (b *CodeBlock) write(w io.Writer) error {
	fence := strings.Repeat("`", fenceLen(b.Text))
	if _, err := io.WriteString(w, fence+b.Info+"\n"); err != nil {
		return err
	}
	text := b.Text
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if _, err := io.WriteString(w, text); err != nil {
		return err
	}
	_, err := io.WriteString(w, fence+"\n")
	return err
}

func (*ThematicBreak) write(w io.Writer) error {
	_, err := io.WriteString(w, "---\n")
	return err
}

func (l *BulletList) write(w io.Writer) error {
	for _, item := range l.Items {
		var buf bytes.Buffer
		if err := writeBlocks(&buf, item); err != nil {
			return err
		}
		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		for i, line := range lines {
			switch {
			case i == 0:
				line = "* " + line
			case line != "":
				line = "  " + line
			}
			if _, err := io.WriteString(w, line+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// ----------- inlines -------------

func (s *Str) write(w io.Writer) error {
	_, err := io.WriteString(w, escapeText(s.Text))
	return err
}

// Backslash-escapes the characters the inline parser would otherwise
// treat as construct openers, and '#', which would open a heading at
// the start of a line. Transparent punctuation is left alone:
// escaping it would change its flanking class.
func escapeText(s string) string {
	var sb strings.Builder
	for _, c := range s {
		if isMarkupChar(c) || c == '\\' || c == '<' || c == '#' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

func (c *Code) write(w io.Writer) error {
	fence := strings.Repeat("`", longestRun(c.Text, '`')+1)
	pad := ""
	if strings.HasPrefix(c.Text, "`") || strings.HasSuffix(c.Text, "`") {
		pad = " "
	}
	_, err := io.WriteString(w, fence+pad+c.Text+pad+fence)
	return err
}

func (*LineBreak) write(w io.Writer) error {
	_, err := io.WriteString(w, "\\\n")
	return err
}

func (e *Emph) write(w io.Writer) error {
	return writeDelimited(w, "*", e.Inlines)
}

func (s *Strong) write(w io.Writer) error {
	return writeDelimited(w, "**", s.Inlines)
}

func (s *Strikeout) write(w io.Writer) error {
	return writeDelimited(w, "~~", s.Inlines)
}

func (s *Subscript) write(w io.Writer) error {
	return writeDelimited(w, "~", s.Inlines)
}

func (s *Superscript) write(w io.Writer) error {
	return writeDelimited(w, "^", s.Inlines)
}

func writeDelimited(w io.Writer, dels string, inlines []Inline) error {
	if _, err := io.WriteString(w, dels); err != nil {
		return err
	}
	if err := writeInlines(w, inlines); err != nil {
		return err
	}
	_, err := io.WriteString(w, dels)
	return err
}

func (l *Link) write(w io.Writer) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	if err := writeInlines(w, l.Inlines); err != nil {
		return err
	}
	return writeTarget(w, l.Target)
}

func (i *Image) write(w io.Writer) error {
	if _, err := io.WriteString(w, "!["); err != nil {
		return err
	}
	if err := writeInlines(w, i.Inlines); err != nil {
		return err
	}
	return writeTarget(w, i.Target)
}

func writeTarget(w io.Writer, t Target) error {
	url := t.Url
	// a parenthesis would end a naked destination early
	if strings.ContainsAny(url, "()") {
		url = "<" + url + ">"
	}
	if _, err := io.WriteString(w, "]("+url); err != nil {
		return err
	}
	if t.Title != "" {
		title := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(t.Title)
		if _, err := io.WriteString(w, ` "`+title+`"`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, ")")
	return err
}

// ----------- helpers -------------

func longestRun(s string, c byte) int {
	best, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			cur++
			if cur > best {
				best = cur
			}
		} else {
			cur = 0
		}
	}
	return best
}

// A code block fence must be longer than any backtick run in the
// content and at least three characters.
func fenceLen(text string) int {
	n := longestRun(text, '`') + 1
	if n < 3 {
		n = 3
	}
	return n
}
