package align

import (
	"math"
	"testing"

	"karasub/internal/cue"
	"karasub/internal/words"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 0.0005 }

func TestExactMatchIdentity(t *testing.T) {
	stream := []words.Word{
		{Token: "hello", Start: 0.0, End: 0.4},
		{Token: "world", Start: 0.5, End: 0.9},
	}
	c := cue.Cue{Start: 0.0, End: 1.0, Text: "hello world"}

	line, cursor := Cue(stream, c, false, 0, DefaultOptions())
	if len(line.Words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(line.Words))
	}
	if line.Words[0].Token != "hello" || !approx(line.Words[0].Start, 0.0) || !approx(line.Words[0].End, 0.4) {
		t.Errorf("word 0 = %+v", line.Words[0])
	}
	if line.Words[1].Token != "world" || !approx(line.Words[1].Start, 0.5) || !approx(line.Words[1].End, 0.9) {
		t.Errorf("word 1 = %+v", line.Words[1])
	}
	if cursor != 2 {
		t.Errorf("cursor = %d, want 2", cursor)
	}
	if !approx(line.LineStart, 0.0) || !approx(line.LineEnd, 1.0) {
		t.Errorf("line bounds = [%f, %f]", line.LineStart, line.LineEnd)
	}
}

func TestEvenFallbackWithoutCandidates(t *testing.T) {
	c := cue.Cue{Start: 0.0, End: 1.0, Text: "a b c d"}

	line, _ := Cue(nil, c, false, 0, DefaultOptions())
	if len(line.Words) != 4 {
		t.Fatalf("expected 4 words, got %d", len(line.Words))
	}
	for i, w := range line.Words {
		if !approx(w.Duration(), 0.25) {
			t.Errorf("word %d duration = %f, want 0.25", i, w.Duration())
		}
		if i > 0 && line.Words[i-1].Start >= w.Start {
			t.Errorf("starts not strictly increasing at %d", i)
		}
	}
	if !approx(line.Words[3].End, 1.0) {
		t.Errorf("last end = %f, want 1.0", line.Words[3].End)
	}
}

func TestFuzzySkipsRecognizerArtifacts(t *testing.T) {
	stream := []words.Word{
		{Token: "uh", Start: 0.0, End: 0.2},
		{Token: "hello", Start: 0.3, End: 0.6},
		{Token: "um", Start: 0.6, End: 0.7},
		{Token: "world", Start: 0.8, End: 1.1},
	}
	c := cue.Cue{Start: 0.0, End: 1.2, Text: "hello world"}

	line, _ := Cue(stream, c, false, 0, DefaultOptions())
	if len(line.Words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(line.Words))
	}
	if !approx(line.Words[0].Start, 0.3) || !approx(line.Words[0].End, 0.6) {
		t.Errorf("hello = %+v", line.Words[0])
	}
	if !approx(line.Words[1].Start, 0.8) || !approx(line.Words[1].End, 1.1) {
		t.Errorf("world = %+v", line.Words[1])
	}
}

func TestFuzzyCompoundSharesOneWord(t *testing.T) {
	stream := []words.Word{
		{Token: "the", Start: 0.0, End: 0.2},
		{Token: "mega-money-wheel", Start: 0.3, End: 0.9},
		{Token: "spins", Start: 1.0, End: 1.3},
	}
	c := cue.Cue{Start: 0.0, End: 1.5, Text: "the mega-money-wheel spins"}

	line, _ := Cue(stream, c, false, 0, DefaultOptions())
	if len(line.Words) != 3 {
		t.Fatalf("expected 3 display tokens, got %d", len(line.Words))
	}
	compound := line.Words[1]
	if compound.Token != "mega-money-wheel" {
		t.Errorf("display token = %q", compound.Token)
	}
	if !approx(compound.Start, 0.3) || !approx(compound.End, 0.9) {
		t.Errorf("compound spans %f..%f, want the recognized word's interval", compound.Start, compound.End)
	}
}

func TestGapRepairFillsUnmatchedRun(t *testing.T) {
	stream := []words.Word{
		{Token: "start", Start: 0.0, End: 0.4},
		{Token: "finish", Start: 2.0, End: 2.4},
	}
	c := cue.Cue{Start: 0.0, End: 2.5, Text: "start missing tokens finish"}

	line, _ := Cue(stream, c, false, 0, DefaultOptions())
	if len(line.Words) != 4 {
		t.Fatalf("expected 4 words, got %d", len(line.Words))
	}
	missing, tokens := line.Words[1], line.Words[2]
	if !approx(missing.Start, 0.4) {
		t.Errorf("run should start at left neighbor end, got %f", missing.Start)
	}
	if !approx(tokens.End, 2.0) {
		t.Errorf("run should end at right neighbor start, got %f", tokens.End)
	}
	if !approx(missing.Duration(), 0.8) || !approx(tokens.Duration(), 0.8) {
		t.Errorf("run should divide evenly, got %f and %f", missing.Duration(), tokens.Duration())
	}
}

func TestGapRepairStealsFromNeighbors(t *testing.T) {
	// Neighbors leave no room between them; repair must shrink them toward
	// the floor to fit the run.
	stream := []words.Word{
		{Token: "left", Start: 0.0, End: 1.0},
		{Token: "right", Start: 1.0, End: 2.0},
	}
	opts := Options{MinWordDuration: 0.2, Lookahead: 500}
	c := cue.Cue{Start: 0.0, End: 2.0, Text: "left ghost right"}

	line, _ := Cue(stream, c, false, 0, opts)
	if len(line.Words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(line.Words))
	}
	left, ghost, right := line.Words[0], line.Words[1], line.Words[2]
	if ghost.Duration() < 0.2-0.0005 {
		t.Errorf("repaired word duration %f below floor", ghost.Duration())
	}
	if left.Duration() < 0.2-0.0005 || right.Duration() < 0.2-0.0005 {
		t.Errorf("neighbors shrunk past the floor: %f, %f", left.Duration(), right.Duration())
	}
	if !approx(left.End, ghost.Start) {
		t.Errorf("gap between left end %f and ghost start %f", left.End, ghost.Start)
	}
	// Left neighbor is shrunk first and had enough spare on its own.
	if !approx(right.Start, 1.0) {
		t.Errorf("right neighbor should be untouched, start = %f", right.Start)
	}
}

func TestManualCueScansWholeStream(t *testing.T) {
	stream := []words.Word{
		{Token: "early", Start: 0.0, End: 0.5},
		{Token: "late", Start: 10.0, End: 10.5},
	}
	// Cursor already consumed the stream; a manual cue at the front must
	// still find its words.
	c := cue.Cue{Start: 0.0, End: 1.0, Text: "early"}

	line, cursor := Cue(stream, c, true, Cursor(len(stream)), DefaultOptions())
	if len(line.Words) != 1 {
		t.Fatalf("expected 1 word, got %d", len(line.Words))
	}
	if !approx(line.Words[0].Start, 0.0) || !approx(line.Words[0].End, 0.5) {
		t.Errorf("word = %+v", line.Words[0])
	}
	if cursor != Cursor(len(stream)) {
		t.Errorf("manual alignment must not move the cursor, got %d", cursor)
	}
}

func TestAllThreadsCursorAcrossCues(t *testing.T) {
	stream := []words.Word{
		{Token: "one", Start: 0.0, End: 0.4},
		{Token: "two", Start: 0.5, End: 0.9},
		{Token: "three", Start: 1.0, End: 1.4},
		{Token: "four", Start: 1.5, End: 1.9},
	}
	cues := []cue.Cue{
		{Start: 0.0, End: 1.0, Text: "one two"},
		{Start: 1.0, End: 2.0, Text: "three four"},
	}

	lines := All(stream, cues, nil, DefaultOptions())
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !approx(lines[1].Words[0].Start, 1.0) {
		t.Errorf("second cue first word = %+v", lines[1].Words[0])
	}
	if !approx(lines[1].Words[1].End, 1.9) {
		t.Errorf("second cue last word = %+v", lines[1].Words[1])
	}
}

func TestEmptyCueTextYieldsEmptyLine(t *testing.T) {
	line, cursor := Cue(nil, cue.Cue{Start: 0, End: 1, Text: "   "}, false, 0, DefaultOptions())
	if len(line.Words) != 0 {
		t.Errorf("expected no words, got %d", len(line.Words))
	}
	if cursor != 0 {
		t.Errorf("cursor moved for empty cue: %d", cursor)
	}
}
