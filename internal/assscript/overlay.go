package assscript

import "strings"

// overlayKind distinguishes superscript and subscript spans.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlaySuper
	overlaySub
)

// overlaySpan is one ^{...} or _{...} region inside a display token. Prefix
// and Suffix carry the surrounding text; a token holds at most one span.
type overlaySpan struct {
	Kind   overlayKind
	Text   string
	Prefix string
	Suffix string
}

// parseOverlay scans a display token for the first ^{...} or _{...} marker.
// Unterminated markers are left in the text untouched.
func parseOverlay(token string) (overlaySpan, bool) {
	for i := 0; i < len(token)-1; i++ {
		var kind overlayKind
		switch {
		case token[i] == '^' && token[i+1] == '{':
			kind = overlaySuper
		case token[i] == '_' && token[i+1] == '{':
			kind = overlaySub
		default:
			continue
		}
		close := strings.IndexByte(token[i+2:], '}')
		if close < 0 {
			continue
		}
		return overlaySpan{
			Kind:   kind,
			Text:   token[i+2 : i+2+close],
			Prefix: token[:i],
			Suffix: token[i+2+close+1:],
		}, true
	}
	return overlaySpan{}, false
}

// Flat returns the token text with the markers stripped but the span glyphs
// kept in place, which is the width the full-size run reserves on screen.
func (s overlaySpan) Flat() string {
	return s.Prefix + s.Text + s.Suffix
}
