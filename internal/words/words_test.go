package words

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestParseTranscriptSegments(t *testing.T) {
	data := []byte(`{
		"segments": [
			{"start": 0.0, "end": 1.0, "words": [
				{"word": "hello", "start": 0.0, "end": 0.4},
				{"word": "world", "start": 0.5, "end": 0.9}
			]},
			{"start": 1.0, "end": 2.0, "words": [
				{"word": "again", "start": 1.1, "end": 1.6}
			]}
		]
	}`)

	stream, err := ParseTranscript(data)
	if err != nil {
		t.Fatalf("ParseTranscript: %v", err)
	}
	if len(stream) != 3 {
		t.Fatalf("expected 3 words, got %d", len(stream))
	}
	if stream[0].Token != "hello" || math.Abs(stream[0].End-0.4) > 0.001 {
		t.Errorf("first word = %+v", stream[0])
	}
	if stream[2].Token != "again" {
		t.Errorf("last word = %+v", stream[2])
	}
}

func TestParseTranscriptTextKeyAndFlatList(t *testing.T) {
	data := []byte(`{"words": [
		{"text": "  one ", "start": 0.0, "end": 0.3},
		{"text": "", "start": 0.3, "end": 0.4},
		{"text": "two", "start": 0.4, "end": 0.7}
	]}`)

	stream, err := ParseTranscript(data)
	if err != nil {
		t.Fatalf("ParseTranscript: %v", err)
	}
	if len(stream) != 2 {
		t.Fatalf("expected blank entries dropped, got %d words", len(stream))
	}
	if stream[0].Token != "one" {
		t.Errorf("token = %q, want trimmed %q", stream[0].Token, "one")
	}
}

func TestParseTranscriptOrdersByStart(t *testing.T) {
	data := []byte(`{"words": [
		{"word": "b", "start": 1.0, "end": 1.2},
		{"word": "a", "start": 0.0, "end": 0.2}
	]}`)
	stream, err := ParseTranscript(data)
	if err != nil {
		t.Fatalf("ParseTranscript: %v", err)
	}
	if stream[0].Token != "a" || stream[1].Token != "b" {
		t.Errorf("stream not ordered by start: %+v", stream)
	}
}

func TestLoadTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.json")
	content := `{"segments": [{"words": [{"word": "hi", "start": 0, "end": 0.5}]}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}
	stream, err := LoadTranscript(path)
	if err != nil {
		t.Fatalf("LoadTranscript: %v", err)
	}
	if len(stream) != 1 || stream[0].Token != "hi" {
		t.Fatalf("unexpected stream: %+v", stream)
	}
}

func TestLineText(t *testing.T) {
	line := Line{Words: []Word{{Token: "hello"}, {Token: "world"}}, LineStart: 0, LineEnd: 1}
	if line.Text() != "hello world" {
		t.Errorf("Text() = %q", line.Text())
	}
	if math.Abs(line.Duration()-1.0) > 0.001 {
		t.Errorf("Duration() = %f", line.Duration())
	}
}
