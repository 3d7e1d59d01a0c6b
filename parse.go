package mmark

// Two-phase driver: the block phase cuts the input into raw blocks
// carrying unparsed inline payloads, then the inline phase resolves
// each payload under its own error boundary. All failures across both
// phases are collected in source order; a document comes back only
// when there are none.

var defaultInlineFlags = inlineFlags{allowEmpty: true, allowLinks: true, allowImages: true}

// Parse parses an MMark document. The file name labels source
// positions and is otherwise informational. On failure the returned
// error is a ParseErrors holding every failure in source order.
func Parse(file, input string) (*Doc, error) {
	var p blockParser
	p.s.init(file, input)
	p.frontMatter()
	raw := p.parseBlocks(1)
	errs := p.errs
	blocks := resolveBlocks(raw, &errs)
	if len(errs) > 0 {
		return nil, errs
	}
	return &Doc{File: file, Meta: p.meta, Blocks: blocks}, nil
}

// Turns raw blocks into AST blocks, running the inline parser over
// every payload. Recovered block failures and inline failures land in
// errs in block order; list items feed the same list.
func resolveBlocks(raw []rawBlock, errs *ParseErrors) []Block {
	var blocks []Block
	for _, rb := range raw {
		switch rb := rb.(type) {
		case rawThematicBreak:
			blocks = append(blocks, TB)
		case rawHeading:
			blocks = append(blocks, &Heading{Level: rb.level, Inlines: resolveInlines(rb.text, errs)})
		case rawCodeBlock:
			blocks = append(blocks, &CodeBlock{Info: rb.info, Text: rb.text})
		case rawPara:
			blocks = append(blocks, &Para{Inlines: resolveInlines(rb.text, errs)})
		case rawList:
			items := make([][]Block, len(rb.items))
			for i, item := range rb.items {
				items[i] = resolveBlocks(item, errs)
			}
			blocks = append(blocks, &BulletList{Items: items})
		case rawError:
			*errs = append(*errs, rb.err)
		}
	}
	return blocks
}

func resolveInlines(text isp, errs *ParseErrors) []Inline {
	inlines, err := parseInlines(text.text, text.pos, defaultInlineFlags)
	if err != nil {
		*errs = append(*errs, err.relabelEOF("end of inline block"))
		return nil
	}
	return inlines
}
