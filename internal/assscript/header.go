package assscript

import (
	"fmt"
	"strings"

	"karasub/internal/style"
)

const (
	styleDefault = "Default"
	styleBox     = "Box"
)

func boolFlag(v bool) int {
	if v {
		return -1
	}
	return 0
}

// writeHeader emits the Script Info block, the style table, and the Events
// format line. The Box style only appears when a background highlight mode
// needs it.
func writeHeader(b *strings.Builder, cfg style.Config) {
	fmt.Fprintf(b, "[Script Info]\n")
	fmt.Fprintf(b, "Title: karasub render\n")
	fmt.Fprintf(b, "ScriptType: v4.00+\n")
	fmt.Fprintf(b, "WrapStyle: 2\n")
	fmt.Fprintf(b, "ScaledBorderAndShadow: yes\n")
	fmt.Fprintf(b, "PlayResX: %.0f\n", cfg.PlayResX)
	fmt.Fprintf(b, "PlayResY: %.0f\n\n", cfg.PlayResY)

	fmt.Fprintf(b, "[V4+ Styles]\n")
	fmt.Fprintf(b, "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")

	primary := styleColor(cfg.TextColor, cfg.TextOpacity)
	outlineColor := styleColor(cfg.OutlineColor, 1)
	backColor := styleColor(cfg.BackgroundColor, cfg.BackgroundOpacity)

	borderStyle := 1
	outline := 0.0
	if cfg.OutlineEnabled {
		outline = cfg.OutlineSize
	}
	if cfg.BackgroundEnabled {
		// BorderStyle 3 draws the line box; the padding becomes the border.
		borderStyle = 3
		outline = cfg.BackgroundPadding
		outlineColor = backColor
	}

	fmt.Fprintf(b, "Style: %s,%s,%.0f,%s,%s,%s,%s,%d,%d,0,0,100,100,0,0,%d,%.1f,0,5,0,0,0,1\n",
		styleDefault, cfg.FontFamily, cfg.FontSize,
		primary, primary, outlineColor, backColor,
		boolFlag(cfg.FontBold), boolFlag(cfg.FontItalic),
		borderStyle, outline)

	if cfg.HighlightMode.UsesBox() {
		// Transparent text over a box whose border is animated per word.
		hidden := styleColor(cfg.TextColor, 0)
		boxColor := styleColor(cfg.HighlightColor, cfg.HighlightOpacity)
		fmt.Fprintf(b, "Style: %s,%s,%.0f,%s,%s,%s,%s,%d,%d,0,0,100,100,0,0,3,0,0,5,0,0,0,1\n",
			styleBox, cfg.FontFamily, cfg.FontSize,
			hidden, hidden, boxColor, boxColor,
			boolFlag(cfg.FontBold), boolFlag(cfg.FontItalic))
	}

	fmt.Fprintf(b, "\n[Events]\n")
	fmt.Fprintf(b, "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
}
