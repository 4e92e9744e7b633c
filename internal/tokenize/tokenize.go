package tokenize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var fold = cases.Fold()

// Token pairs one display token with the match tokens derived from it.
type Token struct {
	Display string
	Matches []string
}

// Split tokenizes cue text. Manual break markers (pipes) and newlines are
// treated as plain whitespace; callers that care about break positions split
// the text into segments before tokenizing.
func Split(text string) []Token {
	cleaned := strings.NewReplacer("|", " ", "\n", " ", "\r", " ").Replace(text)
	fields := strings.Fields(cleaned)

	tokens := make([]Token, 0, len(fields))
	for _, field := range fields {
		matches := matchTokens(field)
		if len(matches) == 0 {
			// Punctuation-only tokens (dashes, ellipses) still display but
			// never match a recognized word.
			tokens = append(tokens, Token{Display: field})
			continue
		}
		tokens = append(tokens, Token{Display: field, Matches: matches})
	}
	return tokens
}

// Normalize lowers a word to its comparison form: case-folded with anything
// that is not a letter or digit removed.
func Normalize(s string) string {
	folded := fold.String(s)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Displays returns the surface forms in order.
func Displays(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Display
	}
	return out
}

// MatchCount returns the total number of match tokens across all tokens.
func MatchCount(tokens []Token) int {
	count := 0
	for _, tok := range tokens {
		count += len(tok.Matches)
	}
	return count
}

func matchTokens(display string) []string {
	parts := strings.Split(display, "-")
	matches := make([]string, 0, len(parts))
	for _, part := range parts {
		normalized := Normalize(part)
		if normalized == "" {
			continue
		}
		matches = append(matches, normalized)
	}
	return matches
}
