package split

import (
	"math"
	"testing"

	"karasub/internal/cue"
	"karasub/internal/words"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 0.0005 }

func evenLine(count int, start, step, width float64) words.Line {
	line := words.Line{LineStart: start}
	for i := 0; i < count; i++ {
		s := start + float64(i)*step
		line.Words = append(line.Words, words.Word{Token: word(i), Start: s, End: s + width})
	}
	line.LineEnd = line.Words[count-1].End
	return line
}

func word(i int) string {
	return string(rune('a' + i))
}

func TestByWordTimingsWordBudget(t *testing.T) {
	line := evenLine(5, 0.0, 0.2, 0.15)
	opts := DefaultChunkOptions(2)

	cues := ByWordTimings([]words.Line{line}, nil, opts)
	if len(cues) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(cues))
	}
	sizes := []int{2, 2, 1}
	texts := []string{"a b", "c d", "e"}
	for i, c := range cues {
		if c.Text != texts[i] {
			t.Errorf("chunk %d text = %q, want %q (size %d)", i, c.Text, texts[i], sizes[i])
		}
	}
}

func TestByWordTimingsResplitIdempotent(t *testing.T) {
	line := evenLine(5, 0.0, 0.2, 0.15)
	opts := DefaultChunkOptions(2)

	first := ByWordTimings([]words.Line{line}, nil, opts)

	// Feed each chunk back as an independent line.
	var lines []words.Line
	offset := 0
	for _, c := range first {
		count := len(splitFields(c.Text))
		slice := line.Words[offset : offset+count]
		offset += count
		lines = append(lines, words.Line{Words: slice, LineStart: c.Start, LineEnd: c.End})
	}
	second := ByWordTimings(lines, nil, opts)

	if len(second) != len(first) {
		t.Fatalf("re-split produced %d chunks, want %d", len(second), len(first))
	}
	for i := range first {
		if !approx(first[i].Start, second[i].Start) || !approx(first[i].End, second[i].End) {
			t.Errorf("chunk %d boundaries changed: [%f,%f] vs [%f,%f]",
				i, first[i].Start, first[i].End, second[i].Start, second[i].End)
		}
	}
}

func splitFields(text string) []string {
	var fields []string
	current := ""
	for _, r := range text {
		if r == ' ' {
			if current != "" {
				fields = append(fields, current)
				current = ""
			}
			continue
		}
		current += string(r)
	}
	if current != "" {
		fields = append(fields, current)
	}
	return fields
}

func TestByWordTimingsSilenceGap(t *testing.T) {
	line := words.Line{
		Words: []words.Word{
			{Token: "one", Start: 0.0, End: 0.3},
			{Token: "two", Start: 0.4, End: 0.7},
			{Token: "three", Start: 2.0, End: 2.3},
		},
		LineStart: 0.0,
		LineEnd:   2.3,
	}
	opts := DefaultChunkOptions(10)

	cues := ByWordTimings([]words.Line{line}, nil, opts)
	if len(cues) != 2 {
		t.Fatalf("expected silence gap to split, got %d chunks", len(cues))
	}
	if cues[0].Text != "one two" || cues[1].Text != "three" {
		t.Errorf("chunks = %q, %q", cues[0].Text, cues[1].Text)
	}
}

func TestByWordTimingsMinGapEnforced(t *testing.T) {
	line := words.Line{
		Words: []words.Word{
			{Token: "a", Start: 0.0, End: 0.5},
			{Token: "b", Start: 0.5, End: 1.0},
		},
		LineStart: 0.0,
		LineEnd:   1.0,
	}
	opts := DefaultChunkOptions(1)

	cues := ByWordTimings([]words.Line{line}, nil, opts)
	if len(cues) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(cues))
	}
	gap := cues[1].Start - cues[0].End
	if gap < opts.MinGap-0.0005 {
		t.Errorf("gap %f below configured minimum %f", gap, opts.MinGap)
	}
	if cues[1].Duration() < opts.MinCueDuration-0.0005 {
		t.Errorf("pushed cue collapsed to %f, want at least %f", cues[1].Duration(), opts.MinCueDuration)
	}
}

func TestByWordTimingsPropagatesGroupID(t *testing.T) {
	gid := int64(12)
	line := evenLine(4, 0.0, 0.3, 0.25)
	cues := ByWordTimings([]words.Line{line}, []*int64{&gid}, DefaultChunkOptions(2))
	if len(cues) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(cues))
	}
	for i, c := range cues {
		if c.GroupID == nil || *c.GroupID != gid {
			t.Errorf("chunk %d lost group id", i)
		}
	}
}

func TestByWordTimingsEmptyLinesSignalFallback(t *testing.T) {
	if got := ByWordTimings([]words.Line{{}, {}}, nil, DefaultChunkOptions(2)); got != nil {
		t.Errorf("expected nil for lines without words, got %v", got)
	}
}

func TestByWordsStaticSplit(t *testing.T) {
	cues := []cue.Cue{{Start: 0.0, End: 2.0, Text: "one two three four"}}
	opts := DefaultChunkOptions(2)

	out := ByWords(cues, opts)
	if len(out) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(out))
	}
	if out[0].Text != "one two" || out[1].Text != "three four" {
		t.Errorf("texts = %q, %q", out[0].Text, out[1].Text)
	}
	if !approx(out[0].Start, 0.0) || !approx(out[1].End, 2.0) {
		t.Errorf("interval not preserved: [%f..%f]", out[0].Start, out[1].End)
	}
}

func TestByWordsCharacterBudget(t *testing.T) {
	cues := []cue.Cue{{Start: 0.0, End: 3.0, Text: "tiny extraordinarily long"}}
	opts := DefaultChunkOptions(10)
	opts.MaxChars = 10

	out := ByWords(cues, opts)
	if len(out) != 3 {
		t.Fatalf("expected char budget to force 3 cues, got %d: %+v", len(out), out)
	}
}

func TestApplyManualBreaksExactSlice(t *testing.T) {
	c := cue.Cue{Start: 0.0, End: 1.0, Text: "one two | three four"}
	line := words.Line{
		Words: []words.Word{
			{Token: "one", Start: 0.0, End: 0.2},
			{Token: "two", Start: 0.25, End: 0.45},
			{Token: "three", Start: 0.5, End: 0.7},
			{Token: "four", Start: 0.75, End: 0.95},
		},
		LineStart: 0.0,
		LineEnd:   1.0,
	}

	cues, lines := ApplyManualBreaks([]cue.Cue{c}, []words.Line{line})
	if len(cues) != 2 || len(lines) != 2 {
		t.Fatalf("expected 2 cues and lines, got %d/%d", len(cues), len(lines))
	}
	if !approx(cues[0].Start, 0.0) || !approx(cues[0].End, 0.45) {
		t.Errorf("first sub-cue = [%f, %f], want words 1-2 span", cues[0].Start, cues[0].End)
	}
	if !approx(cues[1].Start, 0.5) || !approx(cues[1].End, 0.95) {
		t.Errorf("second sub-cue = [%f, %f], want words 3-4 span", cues[1].Start, cues[1].End)
	}
	if cues[0].Text != "one two" || cues[1].Text != "three four" {
		t.Errorf("texts = %q, %q", cues[0].Text, cues[1].Text)
	}
	if cues[0].GroupID == nil || cues[1].GroupID == nil {
		t.Fatal("sub-cues missing synthetic group ids")
	}
	if *cues[1].GroupID <= *cues[0].GroupID {
		t.Errorf("group ids not monotonically increasing: %d, %d", *cues[0].GroupID, *cues[1].GroupID)
	}
	if len(lines[0].Words) != 2 || len(lines[1].Words) != 2 {
		t.Errorf("line slices = %d and %d words", len(lines[0].Words), len(lines[1].Words))
	}
}

func TestApplyManualBreaksProportionalFallback(t *testing.T) {
	// Word line has a different token count than the break segments, so
	// timing falls back to proportional allocation.
	c := cue.Cue{Start: 0.0, End: 3.0, Text: "one | two three"}
	line := words.Line{LineStart: 0.0, LineEnd: 3.0}

	cues, lines := ApplyManualBreaks([]cue.Cue{c}, []words.Line{line})
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if !approx(cues[0].Duration(), 1.0) || !approx(cues[1].Duration(), 2.0) {
		t.Errorf("durations = %f, %f, want 1:2 token share", cues[0].Duration(), cues[1].Duration())
	}
	if len(lines[1].Words) != 2 {
		t.Fatalf("second segment line = %d words", len(lines[1].Words))
	}
	if !approx(lines[1].Words[0].Duration(), 1.0) {
		t.Errorf("segment words should subdivide evenly, got %f", lines[1].Words[0].Duration())
	}
}

func TestApplyManualBreaksPassThrough(t *testing.T) {
	c := cue.Cue{Start: 0.0, End: 1.0, Text: "no breaks here"}
	line := words.Line{LineStart: 0, LineEnd: 1}

	cues, lines := ApplyManualBreaks([]cue.Cue{c}, []words.Line{line})
	if len(cues) != 1 || cues[0].Text != "no breaks here" {
		t.Fatalf("pass-through failed: %+v", cues)
	}
	if len(lines) != 1 {
		t.Fatalf("line count = %d", len(lines))
	}
	if cues[0].GroupID != nil {
		t.Error("pass-through cue should keep its original (nil) group")
	}
}
