package mmark

import "fmt"

// Tab stops count as four columns for indent accounting.
const tabWidth = 4

// Pos is a position within a source text. Line and Col are 1-based;
// a tab advances Col by tabWidth.
type Pos struct {
	File string
	Line int
	Col  int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}
