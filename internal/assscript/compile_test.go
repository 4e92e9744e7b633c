package assscript

import (
	"strings"
	"testing"

	"karasub/internal/style"
	"karasub/internal/words"
)

func testLine(tokens ...string) words.Line {
	line := words.Line{LineStart: 10, LineEnd: 12}
	step := 2.0 / float64(len(tokens))
	for i, tok := range tokens {
		line.Words = append(line.Words, words.Word{
			Token: tok,
			Start: 10 + float64(i)*step,
			End:   10 + float64(i+1)*step,
		})
	}
	return line
}

func TestParseOverlay(t *testing.T) {
	span, ok := parseOverlay("x^{2}")
	if !ok || span.Kind != overlaySuper || span.Text != "2" || span.Prefix != "x" {
		t.Fatalf("superscript parse = %+v, ok=%v", span, ok)
	}

	span, ok = parseOverlay("H_{2}O")
	if !ok || span.Kind != overlaySub || span.Text != "2" || span.Prefix != "H" || span.Suffix != "O" {
		t.Fatalf("subscript parse = %+v, ok=%v", span, ok)
	}
	if span.Flat() != "H2O" {
		t.Errorf("Flat() = %q", span.Flat())
	}

	if _, ok := parseOverlay("plain"); ok {
		t.Error("plain token reported an overlay")
	}
	if _, ok := parseOverlay("x^{2"); ok {
		t.Error("unterminated marker reported an overlay")
	}
}

func TestLayoutRowsWordBudget(t *testing.T) {
	cfg := style.Default()
	cfg.MaxWordsPerLine = 2
	rows := layoutRows(testLine("one", "two", "three", "four", "five"), cfg)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if len(rows[0]) != 2 || len(rows[1]) != 2 || len(rows[2]) != 1 {
		t.Errorf("row sizes = %d,%d,%d", len(rows[0]), len(rows[1]), len(rows[2]))
	}
}

func TestRowYAnchors(t *testing.T) {
	cfg := style.Default()
	pitch := linePitch(cfg)

	cfg.Position = style.PositionBottom
	last := rowY(cfg, 1, 2)
	if want := cfg.PlayResY - cfg.MarginV - pitch/2; last != want {
		t.Errorf("bottom last row y = %f, want %f", last, want)
	}
	if rowY(cfg, 0, 2) >= last {
		t.Error("earlier row should sit above the last row")
	}

	cfg.Position = style.PositionTop
	first := rowY(cfg, 0, 2)
	if want := cfg.MarginV + pitch/2; first != want {
		t.Errorf("top first row y = %f, want %f", first, want)
	}

	cfg.Position = style.PositionCenter
	y0, y1 := rowY(cfg, 0, 2), rowY(cfg, 1, 2)
	if mid := (y0 + y1) / 2; mid != cfg.PlayResY/2 {
		t.Errorf("center block midpoint = %f, want %f", mid, cfg.PlayResY/2)
	}
}

func TestCompileHeader(t *testing.T) {
	script, err := New(style.Default()).Compile([]words.Line{testLine("hello", "world")})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for _, want := range []string{
		"[Script Info]",
		"PlayResX: 1920",
		"PlayResY: 1080",
		"Style: Default,Arial,48",
		"[Events]",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}
	if strings.Contains(script, "Style: Box") {
		t.Error("text mode should not declare the Box style")
	}
}

func TestCompileTextModeTransforms(t *testing.T) {
	cfg := style.Default()
	script, err := New(cfg).Compile([]words.Line{testLine("hello", "world")})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	// Second word starts one second in and reverts at two.
	if !strings.Contains(script, `\t(1000,1000,\1c&H00D7FF&`) {
		t.Errorf("missing highlight transform:\n%s", script)
	}
	if !strings.Contains(script, `\t(2000,2000,\1c&HFFFFFF&`) {
		t.Errorf("missing revert transform:\n%s", script)
	}
}

func TestCompileCumulativeDropsRevert(t *testing.T) {
	cfg := style.Default()
	cfg.HighlightMode = style.HighlightTextCumulative
	script, err := New(cfg).Compile([]words.Line{testLine("hello", "world")})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	highlight := strings.Count(script, `\1c&H00D7FF&`)
	base := strings.Count(script, `\1c&HFFFFFF&`)
	if highlight != 2 {
		t.Errorf("highlight tag count = %d, want one per word", highlight)
	}
	// Only the static per-word base tags remain, no reverts.
	if base != 2 {
		t.Errorf("base tag count = %d, want 2:\n%s", base, script)
	}
}

func TestCompileBackgroundMode(t *testing.T) {
	cfg := style.Default()
	cfg.HighlightMode = style.HighlightBackground
	script, err := New(cfg).Compile([]words.Line{testLine("hello", "world")})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if !strings.Contains(script, "Style: Box,") {
		t.Fatal("background mode must declare the Box style")
	}
	if !strings.Contains(script, "Dialogue: 0,") || !strings.Contains(script, "Dialogue: 1,") {
		t.Error("expected a box layer and a text layer per row")
	}
	if !strings.Contains(script, `\bord0\t(0,0,\bord12.0)`) {
		t.Errorf("missing border animation:\n%s", script)
	}
	if !strings.Contains(script, `\t(1000,1000,\bord0)`) {
		t.Errorf("missing border revert:\n%s", script)
	}
}

func TestCompileSkipsEmptyLines(t *testing.T) {
	script, err := New(style.Default()).Compile([]words.Line{
		{LineStart: 0, LineEnd: 1},
		testLine("kept"),
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if got := strings.Count(script, "Dialogue:"); got != 1 {
		t.Errorf("dialogue count = %d, want 1:\n%s", got, script)
	}
}

func TestCompileOverlayEvents(t *testing.T) {
	script, err := New(style.Default()).Compile([]words.Line{testLine("x^{2}", "plus", "y")})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if !strings.Contains(script, "Dialogue: 2,") {
		t.Fatalf("missing overlay event:\n%s", script)
	}
	if !strings.Contains(script, `\fs29`) {
		t.Errorf("overlay should use the reduced font size:\n%s", script)
	}
	if !strings.Contains(script, `{\alpha&HFF&}2{\alpha&H00&}`) {
		t.Errorf("span glyphs should be hidden in the primary run:\n%s", script)
	}
}

func TestCompileAbsolutePositioning(t *testing.T) {
	cfg := style.Default()
	cfg.MaxWordsPerLine = 1
	script, err := New(cfg).Compile([]words.Line{testLine("one", "two")})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	pitch := linePitch(cfg)
	lastY := cfg.PlayResY - cfg.MarginV - pitch/2
	if !strings.Contains(script, posTag(960, lastY)) {
		t.Errorf("missing bottom row position tag:\n%s", script)
	}
	if !strings.Contains(script, posTag(960, lastY-pitch)) {
		t.Errorf("missing upper row position tag:\n%s", script)
	}
}
