package mmark

import (
	"fmt"
	"strings"
)

// The label used for an end-of-input token in error messages. Parsers
// that run over a sliced window rewrite it to name the window instead.
const eofLabel = "end of input"

// A single parse failure at a source position. Unexpected names the
// offending token (or an end-of-input label); Expected lists what the
// parser would have accepted. Custom, when non-nil, replaces the
// unexpected/expected pair with a domain error.
type ParseError struct {
	Pos        Pos
	Unexpected string
	Expected   []string
	Custom     error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Pos.String())
	sb.WriteString(": ")
	if e.Custom != nil {
		sb.WriteString(e.Custom.Error())
		return sb.String()
	}
	sb.WriteString("unexpected ")
	sb.WriteString(e.Unexpected)
	if len(e.Expected) > 0 {
		sb.WriteString(", expecting ")
		for i, l := range e.Expected {
			if i > 0 {
				if i == len(e.Expected)-1 {
					sb.WriteString(" or ")
				} else {
					sb.WriteString(", ")
				}
			}
			sb.WriteString(l)
		}
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error {
	return e.Custom
}

// Rewrites an end-of-input label to name the enclosing window.
func (e *ParseError) relabelEOF(label string) *ParseError {
	if e.Unexpected == eofLabel {
		e.Unexpected = label
	}
	return e
}

// All failures of a parse, in source order. Never empty when returned.
type ParseErrors []*ParseError

func (e ParseErrors) Error() string {
	msgs := make([]string, len(e))
	for i, pe := range e {
		msgs[i] = pe.Error()
	}
	return strings.Join(msgs, "\n")
}

// Front matter rejected by the YAML decoder.
type YamlError struct {
	Message string
}

func (e *YamlError) Error() string {
	return "YAML parse error: " + e.Message
}

// A delimiter run that may not open or close an emphasis-class
// construct at its position.
type NonFlankingDelimiterRun struct {
	Delims string
}

func (e *NonFlankingDelimiterRun) Error() string {
	return fmt.Sprintf("non-flanking delimiter run %q", e.Delims)
}

// Returns the printable label for a token rune in error messages.
func tokenLabel(c rune) string {
	if c == eofCh {
		return eofLabel
	}
	return fmt.Sprintf("%q", c)
}
