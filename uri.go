package mmark

import (
	"net/mail"
	"net/url"
	"strconv"
	"strings"
)

// URIs and email addresses are handled by opaque collaborators: the
// net/url parser over a sliced input window and the net/mail address
// validator.

// Parses raw as a URI, rendering it back in normalized form. Failures
// are reported at pos.
func parseURI(raw string, pos Pos) (string, *ParseError) {
	if raw == "" {
		return "", &ParseError{Pos: pos, Unexpected: eofLabel, Expected: []string{"URI"}}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", &ParseError{Pos: pos, Unexpected: strconv.Quote(raw), Expected: []string{"URI"}}
	}
	return u.String(), nil
}

// Classifies the contents of an angle-bracketed autolink. A URI whose
// path is a single segment passing the email validator, with no scheme
// or the mailto scheme, becomes a mailto link labeled with the bare
// address; any other URI links to itself labeled with its rendered
// text.
func autolinkTarget(raw string) (t Target, label string, ok bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, "", false
	}
	if addr, ok := emailAddress(u); ok {
		return Target{Url: "mailto:" + addr}, addr, true
	}
	return Target{Url: u.String()}, u.String(), true
}

func emailAddress(u *url.URL) (string, bool) {
	if u.Scheme != "" && u.Scheme != "mailto" {
		return "", false
	}
	if u.Host != "" || u.RawQuery != "" || u.Fragment != "" {
		return "", false
	}
	addr := u.Opaque
	if addr == "" {
		addr = u.Path
	}
	if addr == "" || strings.ContainsRune(addr, '/') {
		return "", false
	}
	if _, err := mail.ParseAddress(addr); err != nil {
		return "", false
	}
	return addr, true
}
