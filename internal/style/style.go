package style

import (
	"fmt"
	"strings"
)

// HighlightMode selects how the active word is emphasized. Unrecognized
// values are rejected at parse time rather than defaulting deep inside the
// compiler.
type HighlightMode string

const (
	// HighlightText flashes the word's fill color for its duration.
	HighlightText HighlightMode = "text"
	// HighlightTextCumulative switches the word's fill color at its start
	// and keeps it for the rest of the cue.
	HighlightTextCumulative HighlightMode = "text_cumulative"
	// HighlightBackground shows a box behind the word for its duration.
	HighlightBackground HighlightMode = "background"
	// HighlightBackgroundCumulative shows the box from the word's start
	// onward.
	HighlightBackgroundCumulative HighlightMode = "background_cumulative"
)

// ParseHighlightMode validates a mode string.
func ParseHighlightMode(value string) (HighlightMode, error) {
	switch HighlightMode(strings.ToLower(strings.TrimSpace(value))) {
	case HighlightText:
		return HighlightText, nil
	case HighlightTextCumulative:
		return HighlightTextCumulative, nil
	case HighlightBackground:
		return HighlightBackground, nil
	case HighlightBackgroundCumulative:
		return HighlightBackgroundCumulative, nil
	default:
		return "", fmt.Errorf("unknown highlight mode %q", value)
	}
}

// Cumulative reports whether the mode persists after the word ends.
func (m HighlightMode) Cumulative() bool {
	return m == HighlightTextCumulative || m == HighlightBackgroundCumulative
}

// UsesBox reports whether the mode renders a background box.
func (m HighlightMode) UsesBox() bool {
	return m == HighlightBackground || m == HighlightBackgroundCumulative
}

// Position anchors the caption block vertically on the canvas.
type Position string

const (
	PositionTop    Position = "top"
	PositionCenter Position = "center"
	PositionBottom Position = "bottom"
)

// ParsePosition validates a position string.
func ParsePosition(value string) (Position, error) {
	switch Position(strings.ToLower(strings.TrimSpace(value))) {
	case PositionTop:
		return PositionTop, nil
	case PositionCenter:
		return PositionCenter, nil
	case PositionBottom:
		return PositionBottom, nil
	default:
		return "", fmt.Errorf("unknown position %q", value)
	}
}

// Config is the full per-job styling record. Colors are "#RRGGBB" hex,
// opacities live in [0, 1], and pixel fields are expressed against the
// PlayResX/PlayResY canvas.
type Config struct {
	FontFamily string  `toml:"font_family" json:"font_family"`
	FontSize   float64 `toml:"font_size" json:"font_size"`
	FontBold   bool    `toml:"font_bold" json:"font_bold"`
	FontItalic bool    `toml:"font_italic" json:"font_italic"`
	FontWeight int     `toml:"font_weight" json:"font_weight"`

	TextColor   string  `toml:"text_color" json:"text_color"`
	TextOpacity float64 `toml:"text_opacity" json:"text_opacity"`

	HighlightColor       string        `toml:"highlight_color" json:"highlight_color"`
	HighlightMode        HighlightMode `toml:"highlight_mode" json:"highlight_mode"`
	HighlightOpacity     float64       `toml:"highlight_opacity" json:"highlight_opacity"`
	HighlightTextOpacity float64       `toml:"highlight_text_opacity" json:"highlight_text_opacity"`

	OutlineEnabled bool    `toml:"outline_enabled" json:"outline_enabled"`
	OutlineColor   string  `toml:"outline_color" json:"outline_color"`
	OutlineSize    float64 `toml:"outline_size" json:"outline_size"`

	BackgroundEnabled bool    `toml:"background_enabled" json:"background_enabled"`
	BackgroundColor   string  `toml:"background_color" json:"background_color"`
	BackgroundOpacity float64 `toml:"background_opacity" json:"background_opacity"`
	BackgroundPadding float64 `toml:"background_padding" json:"background_padding"`
	BackgroundBlur    float64 `toml:"background_blur" json:"background_blur"`

	LineHeight float64  `toml:"line_height" json:"line_height"`
	Position   Position `toml:"position" json:"position"`
	MarginV    float64  `toml:"margin_v" json:"margin_v"`

	MaxWordsPerLine int `toml:"max_words_per_line" json:"max_words_per_line"`

	PlayResX float64 `toml:"play_res_x" json:"play_res_x"`
	PlayResY float64 `toml:"play_res_y" json:"play_res_y"`
}

// Default returns the styling applied when a job supplies nothing.
func Default() Config {
	return Config{
		FontFamily:           "Arial",
		FontSize:             48,
		FontWeight:           400,
		TextColor:            "#FFFFFF",
		TextOpacity:          1.0,
		HighlightColor:       "#FFD700",
		HighlightMode:        HighlightText,
		HighlightOpacity:     1.0,
		HighlightTextOpacity: 1.0,
		OutlineEnabled:       true,
		OutlineColor:         "#000000",
		OutlineSize:          2,
		BackgroundColor:      "#000000",
		BackgroundOpacity:    0.6,
		BackgroundPadding:    12,
		LineHeight:           8,
		Position:             PositionBottom,
		MarginV:              50,
		MaxWordsPerLine:      4,
		PlayResX:             1920,
		PlayResY:             1080,
	}
}

// Normalize clamps and validates every field in place, returning an error
// only for values with no sensible correction (bad mode, bad position).
func (c *Config) Normalize() error {
	if strings.TrimSpace(c.FontFamily) == "" {
		c.FontFamily = "Arial"
	}
	if c.FontSize <= 0 {
		c.FontSize = Default().FontSize
	}
	if c.FontWeight <= 0 {
		c.FontWeight = 400
	}
	c.FontBold = c.FontBold || c.FontWeight >= 600

	c.TextOpacity = clamp01(c.TextOpacity)
	c.HighlightOpacity = clamp01(c.HighlightOpacity)
	c.HighlightTextOpacity = clamp01(c.HighlightTextOpacity)
	c.BackgroundOpacity = clamp01(c.BackgroundOpacity)

	if c.HighlightMode == "" {
		c.HighlightMode = HighlightText
	}
	mode, err := ParseHighlightMode(string(c.HighlightMode))
	if err != nil {
		return err
	}
	c.HighlightMode = mode

	if c.Position == "" {
		c.Position = PositionBottom
	}
	position, err := ParsePosition(string(c.Position))
	if err != nil {
		return err
	}
	c.Position = position

	if c.OutlineSize < 0 {
		c.OutlineSize = 0
	}
	if c.BackgroundPadding < 0 {
		c.BackgroundPadding = 0
	}
	if c.BackgroundBlur < 0 {
		c.BackgroundBlur = 0
	}
	if c.LineHeight < 0 {
		c.LineHeight = 0
	}
	if c.MarginV < 0 {
		c.MarginV = 0
	}
	if c.MaxWordsPerLine <= 0 {
		c.MaxWordsPerLine = Default().MaxWordsPerLine
	}
	if c.PlayResX <= 0 {
		c.PlayResX = Default().PlayResX
	}
	if c.PlayResY <= 0 {
		c.PlayResY = Default().PlayResY
	}
	return nil
}

// Overrides carries the subset of fields a caller wants to change; nil
// pointers leave the base value alone.
type Overrides struct {
	FontFamily *string  `toml:"font_family" json:"font_family,omitempty"`
	FontSize   *float64 `toml:"font_size" json:"font_size,omitempty"`
	FontBold   *bool    `toml:"font_bold" json:"font_bold,omitempty"`
	FontItalic *bool    `toml:"font_italic" json:"font_italic,omitempty"`
	FontWeight *int     `toml:"font_weight" json:"font_weight,omitempty"`

	TextColor   *string  `toml:"text_color" json:"text_color,omitempty"`
	TextOpacity *float64 `toml:"text_opacity" json:"text_opacity,omitempty"`

	HighlightColor       *string  `toml:"highlight_color" json:"highlight_color,omitempty"`
	HighlightMode        *string  `toml:"highlight_mode" json:"highlight_mode,omitempty"`
	HighlightOpacity     *float64 `toml:"highlight_opacity" json:"highlight_opacity,omitempty"`
	HighlightTextOpacity *float64 `toml:"highlight_text_opacity" json:"highlight_text_opacity,omitempty"`

	OutlineEnabled *bool    `toml:"outline_enabled" json:"outline_enabled,omitempty"`
	OutlineColor   *string  `toml:"outline_color" json:"outline_color,omitempty"`
	OutlineSize    *float64 `toml:"outline_size" json:"outline_size,omitempty"`

	BackgroundEnabled *bool    `toml:"background_enabled" json:"background_enabled,omitempty"`
	BackgroundColor   *string  `toml:"background_color" json:"background_color,omitempty"`
	BackgroundOpacity *float64 `toml:"background_opacity" json:"background_opacity,omitempty"`
	BackgroundPadding *float64 `toml:"background_padding" json:"background_padding,omitempty"`
	BackgroundBlur    *float64 `toml:"background_blur" json:"background_blur,omitempty"`

	LineHeight *float64 `toml:"line_height" json:"line_height,omitempty"`
	Position   *string  `toml:"position" json:"position,omitempty"`
	MarginV    *float64 `toml:"margin_v" json:"margin_v,omitempty"`

	MaxWordsPerLine *int `toml:"max_words_per_line" json:"max_words_per_line,omitempty"`

	PlayResX *float64 `toml:"play_res_x" json:"play_res_x,omitempty"`
	PlayResY *float64 `toml:"play_res_y" json:"play_res_y,omitempty"`
}

// Apply merges overrides onto a base config and normalizes the result.
// Unknown highlight modes or positions in the overrides fail here, at the
// boundary.
func Apply(base Config, o Overrides) (Config, error) {
	c := base
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&c.FontFamily, o.FontFamily)
	setFloat(&c.FontSize, o.FontSize)
	setBool(&c.FontBold, o.FontBold)
	setBool(&c.FontItalic, o.FontItalic)
	if o.FontWeight != nil {
		c.FontWeight = *o.FontWeight
	}

	setString(&c.TextColor, o.TextColor)
	setFloat(&c.TextOpacity, o.TextOpacity)

	setString(&c.HighlightColor, o.HighlightColor)
	if o.HighlightMode != nil {
		mode, err := ParseHighlightMode(*o.HighlightMode)
		if err != nil {
			return Config{}, err
		}
		c.HighlightMode = mode
	}
	setFloat(&c.HighlightOpacity, o.HighlightOpacity)
	setFloat(&c.HighlightTextOpacity, o.HighlightTextOpacity)

	setBool(&c.OutlineEnabled, o.OutlineEnabled)
	setString(&c.OutlineColor, o.OutlineColor)
	setFloat(&c.OutlineSize, o.OutlineSize)

	setBool(&c.BackgroundEnabled, o.BackgroundEnabled)
	setString(&c.BackgroundColor, o.BackgroundColor)
	setFloat(&c.BackgroundOpacity, o.BackgroundOpacity)
	setFloat(&c.BackgroundPadding, o.BackgroundPadding)
	setFloat(&c.BackgroundBlur, o.BackgroundBlur)

	setFloat(&c.LineHeight, o.LineHeight)
	if o.Position != nil {
		position, err := ParsePosition(*o.Position)
		if err != nil {
			return Config{}, err
		}
		c.Position = position
	}
	setFloat(&c.MarginV, o.MarginV)

	if o.MaxWordsPerLine != nil {
		c.MaxWordsPerLine = *o.MaxWordsPerLine
	}
	setFloat(&c.PlayResX, o.PlayResX)
	setFloat(&c.PlayResY, o.PlayResY)

	if err := c.Normalize(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// avgCharWidthRatio approximates glyph advance as a fraction of the font
// size when no real metrics are available.
const avgCharWidthRatio = 0.55

// safeWidthRatio keeps captions off the canvas edges.
const safeWidthRatio = 0.9

// EstimateMaxChars derives the character budget the static splitter packs
// lines under, from the canvas width and the style's horizontal chrome.
func (c Config) EstimateMaxChars() int {
	safeWidth := c.PlayResX*safeWidthRatio - 2*(c.BackgroundPadding+c.OutlineSize)
	if safeWidth <= 0 {
		return 1
	}
	avgChar := c.FontSize * avgCharWidthRatio
	if avgChar <= 0 {
		return 1
	}
	budget := int(safeWidth / avgChar)
	if budget < 1 {
		budget = 1
	}
	return budget
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
