// Package words defines the word-timing types shared by the alignment and
// rendering pipeline, and loads recognizer transcripts in the segment/word
// JSON shape emitted by Whisper-style tools.
package words

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Word is one recognized token with its timing in seconds. The recognizer's
// word stream is treated as immutable by the alignment engine; only the
// export resync pass rescales matched subranges in place.
type Word struct {
	Token string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the word's span in seconds.
func (w Word) Duration() float64 {
	return w.End - w.Start
}

// Line is the per-cue ordered word sequence driving karaoke highlighting.
// LineStart and LineEnd carry the owning cue's full interval so tokens whose
// estimated timing falls outside the cue can be clipped back into it.
type Line struct {
	Words     []Word
	LineStart float64
	LineEnd   float64
}

// Duration returns the owning cue's span.
func (l Line) Duration() float64 {
	return l.LineEnd - l.LineStart
}

// Text joins the line's tokens with single spaces.
func (l Line) Text() string {
	parts := make([]string, len(l.Words))
	for i, w := range l.Words {
		parts[i] = w.Token
	}
	return strings.Join(parts, " ")
}

type transcriptWord struct {
	Word  string  `json:"word"`
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type transcriptSegment struct {
	Start float64          `json:"start"`
	End   float64          `json:"end"`
	Words []transcriptWord `json:"words"`
}

type transcriptPayload struct {
	Segments []transcriptSegment `json:"segments"`
	Words    []transcriptWord    `json:"words"`
}

// LoadTranscript reads a recognizer JSON file and returns the flattened word
// stream ordered by start time. Both the segment/word layout and a flat
// top-level word list are accepted; per-word entries may name their text
// "word" or "text".
func LoadTranscript(path string) ([]Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	return ParseTranscript(data)
}

// ParseTranscript decodes transcript JSON. See LoadTranscript.
func ParseTranscript(data []byte) ([]Word, error) {
	var payload transcriptPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse transcript json: %w", err)
	}

	var stream []Word
	appendWord := func(tw transcriptWord) {
		token := strings.TrimSpace(tw.Word)
		if token == "" {
			token = strings.TrimSpace(tw.Text)
		}
		if token == "" {
			return
		}
		stream = append(stream, Word{Token: token, Start: tw.Start, End: tw.End})
	}

	for _, segment := range payload.Segments {
		for _, tw := range segment.Words {
			appendWord(tw)
		}
	}
	for _, tw := range payload.Words {
		appendWord(tw)
	}

	sort.SliceStable(stream, func(i, j int) bool {
		return stream[i].Start < stream[j].Start
	})
	return stream, nil
}
