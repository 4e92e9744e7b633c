package assscript

import (
	"fmt"

	"karasub/internal/style"
	"karasub/internal/words"
)

// rowToken is one display word placed on a rendered row, with its absolute
// timing and any overlay span parsed out of the display text.
type rowToken struct {
	Text       string
	Start      float64
	End        float64
	Overlay    overlaySpan
	HasOverlay bool
}

// flat returns the text whose glyphs occupy the row at full size.
func (t rowToken) flat() string {
	if t.HasOverlay {
		return t.Overlay.Flat()
	}
	return t.Text
}

// linePitch is the vertical distance between consecutive row centers.
func linePitch(cfg style.Config) float64 {
	return cfg.FontSize + 2*cfg.BackgroundPadding + cfg.LineHeight
}

// layoutRows wraps a cue's words into rows under the word and character
// budgets. Every cue yields at least one row when it has words.
func layoutRows(line words.Line, cfg style.Config) [][]rowToken {
	maxChars := cfg.EstimateMaxChars()

	var rows [][]rowToken
	var row []rowToken
	rowChars := 0

	flush := func() {
		if len(row) > 0 {
			rows = append(rows, row)
			row = nil
			rowChars = 0
		}
	}

	for _, w := range line.Words {
		tok := rowToken{Text: w.Token, Start: w.Start, End: w.End}
		if span, ok := parseOverlay(w.Token); ok {
			tok.Overlay = span
			tok.HasOverlay = true
		}
		width := len([]rune(tok.flat()))
		if len(row) > 0 {
			if len(row) >= cfg.MaxWordsPerLine || rowChars+1+width > maxChars {
				flush()
			}
		}
		if len(row) > 0 {
			rowChars++ // joining space
		}
		row = append(row, tok)
		rowChars += width
	}
	flush()
	return rows
}

// rowY computes the vertical center of row i out of n, honoring the
// configured anchor. Bottom-anchored blocks grow upward so the last row sits
// at the margin.
func rowY(cfg style.Config, i, n int) float64 {
	pitch := linePitch(cfg)
	switch cfg.Position {
	case style.PositionTop:
		return cfg.MarginV + pitch/2 + float64(i)*pitch
	case style.PositionCenter:
		return cfg.PlayResY/2 - float64(n)*pitch/2 + pitch/2 + float64(i)*pitch
	default:
		return cfg.PlayResY - cfg.MarginV - float64(n-1-i)*pitch - pitch/2
	}
}

// posTag renders the \an5 center anchor with absolute coordinates.
func posTag(x, y float64) string {
	return fmt.Sprintf(`{\an5\pos(%.0f,%.0f)}`, x, y)
}

// rowWidth estimates the pixel width of a row's joined text.
func rowWidth(row []rowToken, charW float64) float64 {
	chars := 0
	for i, tok := range row {
		if i > 0 {
			chars++
		}
		chars += len([]rune(tok.flat()))
	}
	return float64(chars) * charW
}
