package tokenize

import (
	"reflect"
	"testing"
)

func TestSplitPlainText(t *testing.T) {
	tokens := Split("Hello, World!")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Display != "Hello," {
		t.Errorf("display = %q, want %q", tokens[0].Display, "Hello,")
	}
	if !reflect.DeepEqual(tokens[0].Matches, []string{"hello"}) {
		t.Errorf("matches = %v, want [hello]", tokens[0].Matches)
	}
	if !reflect.DeepEqual(tokens[1].Matches, []string{"world"}) {
		t.Errorf("matches = %v, want [world]", tokens[1].Matches)
	}
}

func TestSplitHyphenCompound(t *testing.T) {
	tokens := Split("the mega-money-wheel spins")
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	compound := tokens[1]
	if compound.Display != "mega-money-wheel" {
		t.Errorf("display = %q, want surface form preserved", compound.Display)
	}
	if !reflect.DeepEqual(compound.Matches, []string{"mega", "money", "wheel"}) {
		t.Errorf("matches = %v, want [mega money wheel]", compound.Matches)
	}
	if MatchCount(tokens) != 5 {
		t.Errorf("MatchCount = %d, want 5", MatchCount(tokens))
	}
}

func TestSplitTrailingHyphen(t *testing.T) {
	tokens := Split("co- operate")
	if tokens[0].Display != "co-" {
		t.Errorf("display = %q, want trailing hyphen preserved", tokens[0].Display)
	}
	if !reflect.DeepEqual(tokens[0].Matches, []string{"co"}) {
		t.Errorf("matches = %v, want [co]", tokens[0].Matches)
	}
}

func TestSplitDropsBreakMarkers(t *testing.T) {
	tokens := Split("one two | three\nfour")
	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %d: %v", len(tokens), Displays(tokens))
	}
}

func TestSplitPunctuationOnlyToken(t *testing.T) {
	tokens := Split("wait -- go")
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	if len(tokens[1].Matches) != 0 {
		t.Errorf("punctuation token should have no matches, got %v", tokens[1].Matches)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello!", "hello"},
		{"WORLD", "world"},
		{"it's", "its"},
		{"...", ""},
		{"Straße", "strasse"},
		{"123rd", "123rd"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
