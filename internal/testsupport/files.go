package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"karasub/internal/words"
)

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteTranscript writes a recognizer transcript fixture holding the given
// word stream, in the flat top-level layout.
func WriteTranscript(t testing.TB, path string, stream []words.Word) {
	t.Helper()

	type fixtureWord struct {
		Word  string  `json:"word"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	}
	payload := struct {
		Words []fixtureWord `json:"words"`
	}{}
	for _, w := range stream {
		payload.Words = append(payload.Words, fixtureWord{Word: w.Token, Start: w.Start, End: w.End})
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal transcript: %v", err)
	}
	WriteFile(t, path, string(data))
}

// EvenWords builds a word stream with one word per second starting at zero.
func EvenWords(tokens ...string) []words.Word {
	stream := make([]words.Word, len(tokens))
	for i, tok := range tokens {
		stream[i] = words.Word{Token: tok, Start: float64(i), End: float64(i) + 0.9}
	}
	return stream
}
