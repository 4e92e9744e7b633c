package assscript

import (
	"fmt"
	"strconv"
	"strings"
)

// rgb holds one parsed "#RRGGBB" color.
type rgb struct {
	r, g, b uint8
}

// parseHex reads a "#RRGGBB" (or "RRGGBB") color. Malformed input yields
// white so rendering can proceed.
func parseHex(value string) rgb {
	s := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(s) != 6 {
		return rgb{0xFF, 0xFF, 0xFF}
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgb{0xFF, 0xFF, 0xFF}
	}
	return rgb{uint8(n >> 16), uint8(n >> 8), uint8(n)}
}

// alphaByte converts an opacity in [0,1] to the ASS alpha convention, where
// 00 is opaque and FF fully transparent.
func alphaByte(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(255 - int(opacity*255+0.5))
}

// styleColor renders the &HAABBGGRR form used in the [V4+ Styles] section.
func styleColor(hex string, opacity float64) string {
	c := parseHex(hex)
	return fmt.Sprintf("&H%02X%02X%02X%02X", alphaByte(opacity), c.b, c.g, c.r)
}

// tagColor renders the &HBBGGRR& form used by \1c/\3c override tags.
func tagColor(hex string) string {
	c := parseHex(hex)
	return fmt.Sprintf("&H%02X%02X%02X&", c.b, c.g, c.r)
}

// tagAlpha renders the &HAA& form used by \alpha/\1a override tags.
func tagAlpha(opacity float64) string {
	return fmt.Sprintf("&H%02X&", alphaByte(opacity))
}
