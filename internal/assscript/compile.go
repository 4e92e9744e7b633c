package assscript

import (
	"fmt"
	"strings"

	"karasub/internal/style"
	"karasub/internal/timecode"
	"karasub/internal/words"
)

// overlayScale is the overlay font size relative to the main font.
const overlayScale = 0.6

// Compiler turns aligned word lines into a complete ASS script. Metrics is
// optional; without it box sizing and overlay placement fall back to fixed
// font proportions.
type Compiler struct {
	Style   style.Config
	Metrics MetricsFunc
}

// New builds a compiler over a style config.
func New(cfg style.Config) *Compiler {
	return &Compiler{Style: cfg}
}

// Compile renders the script. Lines without words are skipped; the remaining
// lines are emitted in input order.
func (c *Compiler) Compile(lines []words.Line) (string, error) {
	cfg := c.Style
	if err := cfg.Normalize(); err != nil {
		return "", fmt.Errorf("style: %w", err)
	}
	metrics := resolveMetrics(c.Metrics, cfg.FontFamily)

	var b strings.Builder
	writeHeader(&b, cfg)

	for _, line := range lines {
		if len(line.Words) == 0 || strings.TrimSpace(line.Text()) == "" {
			continue
		}
		c.writeLine(&b, cfg, metrics, line)
	}
	return b.String(), nil
}

func (c *Compiler) writeLine(b *strings.Builder, cfg style.Config, m Metrics, line words.Line) {
	rows := layoutRows(line, cfg)
	start := timecode.FormatASS(line.LineStart)
	end := timecode.FormatASS(line.LineEnd)
	charW := cfg.FontSize * m.AvgCharRatio
	x := cfg.PlayResX / 2

	for i, row := range rows {
		y := rowY(cfg, i, len(rows))
		pos := posTag(x, y)

		if cfg.HighlightMode.UsesBox() {
			writeEvent(b, 0, start, end, styleBox, pos+boxRowText(cfg, line, row))
			writeEvent(b, 1, start, end, styleDefault, pos+plainRowText(cfg, row))
		} else {
			writeEvent(b, 0, start, end, styleDefault, pos+textRowText(cfg, line, row))
		}
		writeOverlays(b, cfg, m, row, start, end, x, y, charW)
	}
}

func writeEvent(b *strings.Builder, layer int, start, end, styleName, text string) {
	fmt.Fprintf(b, "Dialogue: %d,%s,%s,%s,,0,0,0,,%s\n", layer, start, end, styleName, text)
}

// relMillis converts an absolute time to milliseconds from the line start,
// clamped to zero for words the smoother pinned at the cue boundary.
func relMillis(t, lineStart float64) int {
	ms := int((t-lineStart)*1000 + 0.5)
	if ms < 0 {
		ms = 0
	}
	return ms
}

// textRowText renders a row for the text highlight modes. Each word carries
// a fill-color transform at its start and, for the flash mode, a revert at
// its end.
func textRowText(cfg style.Config, line words.Line, row []rowToken) string {
	base := tagColor(cfg.TextColor)
	baseAlpha := tagAlpha(cfg.TextOpacity)
	hl := tagColor(cfg.HighlightColor)
	hlAlpha := tagAlpha(cfg.HighlightTextOpacity)

	parts := make([]string, 0, len(row))
	for _, tok := range row {
		ws := relMillis(tok.Start, line.LineStart)
		we := relMillis(tok.End, line.LineStart)
		var tag strings.Builder
		fmt.Fprintf(&tag, `{\1c%s\1a%s`, base, baseAlpha)
		fmt.Fprintf(&tag, `\t(%d,%d,\1c%s\1a%s)`, ws, ws, hl, hlAlpha)
		if !cfg.HighlightMode.Cumulative() {
			fmt.Fprintf(&tag, `\t(%d,%d,\1c%s\1a%s)`, we, we, base, baseAlpha)
		}
		tag.WriteString("}")
		parts = append(parts, tag.String()+tokenText(cfg, tok))
	}
	return strings.Join(parts, " ")
}

// boxRowText renders the layer-0 box row: transparent text in the Box style
// whose border is grown to the padding while the word is active.
func boxRowText(cfg style.Config, line words.Line, row []rowToken) string {
	var prefix string
	if cfg.BackgroundBlur > 0 {
		prefix = fmt.Sprintf(`{\blur%.1f}`, cfg.BackgroundBlur)
	}
	parts := make([]string, 0, len(row))
	for _, tok := range row {
		ws := relMillis(tok.Start, line.LineStart)
		we := relMillis(tok.End, line.LineStart)
		var tag strings.Builder
		fmt.Fprintf(&tag, `{\bord0\t(%d,%d,\bord%.1f)`, ws, ws, cfg.BackgroundPadding)
		if !cfg.HighlightMode.Cumulative() {
			fmt.Fprintf(&tag, `\t(%d,%d,\bord0)`, we, we)
		}
		tag.WriteString("}")
		parts = append(parts, tag.String()+sanitize(tok.flat()))
	}
	return prefix + strings.Join(parts, " ")
}

// plainRowText renders the layer-1 text row above the boxes, with no
// per-word animation.
func plainRowText(cfg style.Config, row []rowToken) string {
	parts := make([]string, 0, len(row))
	for _, tok := range row {
		parts = append(parts, tokenText(cfg, tok))
	}
	return strings.Join(parts, " ")
}

// tokenText renders one word's visible text. Overlay spans stay in the run
// fully transparent so they reserve their advance; the overlay event draws
// the smaller glyphs on top.
func tokenText(cfg style.Config, tok rowToken) string {
	if !tok.HasOverlay {
		return sanitize(tok.Text)
	}
	restore := tagAlpha(cfg.TextOpacity)
	return sanitize(tok.Overlay.Prefix) +
		`{\alpha&HFF&}` + sanitize(tok.Overlay.Text) +
		`{\alpha` + restore + `}` + sanitize(tok.Overlay.Suffix)
}

// writeOverlays emits one layer-2 event per superscript or subscript span,
// positioned over the slot the hidden full-size glyphs reserve.
func writeOverlays(b *strings.Builder, cfg style.Config, m Metrics, row []rowToken, start, end string, x, y, charW float64) {
	left := x - rowWidth(row, charW)/2
	small := cfg.FontSize * overlayScale

	chars := 0.0
	for i, tok := range row {
		if i > 0 {
			chars++
		}
		if tok.HasOverlay {
			prefixLen := float64(len([]rune(tok.Overlay.Prefix)))
			spanLen := float64(len([]rune(tok.Overlay.Text)))
			ox := left + (chars+prefixLen)*charW + spanLen*charW/2
			oy := y
			switch tok.Overlay.Kind {
			case overlaySuper:
				oy -= m.AscentRatio * cfg.FontSize * 0.6
			case overlaySub:
				oy += m.DescentRatio*cfg.FontSize + small*0.3
			}
			text := fmt.Sprintf(`{\an5\pos(%.0f,%.0f)\fs%.0f}%s`, ox, oy, small, sanitize(tok.Overlay.Text))
			writeEvent(b, 2, start, end, styleDefault, text)
		}
		chars += float64(len([]rune(tok.flat())))
	}
}

// sanitize strips characters that would be read as override syntax.
func sanitize(text string) string {
	text = strings.ReplaceAll(text, `\`, "")
	text = strings.ReplaceAll(text, "{", "(")
	return strings.ReplaceAll(text, "}", ")")
}
