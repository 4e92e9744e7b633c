package style

import (
	"testing"
)

func TestParseHighlightMode(t *testing.T) {
	valid := map[string]HighlightMode{
		"text":                  HighlightText,
		"TEXT_CUMULATIVE":       HighlightTextCumulative,
		" background ":          HighlightBackground,
		"background_cumulative": HighlightBackgroundCumulative,
	}
	for input, want := range valid {
		got, err := ParseHighlightMode(input)
		if err != nil {
			t.Errorf("ParseHighlightMode(%q): %v", input, err)
		}
		if got != want {
			t.Errorf("ParseHighlightMode(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := ParseHighlightMode("sparkle"); err == nil {
		t.Error("unknown mode should be rejected")
	}
}

func TestHighlightModeProperties(t *testing.T) {
	if HighlightText.Cumulative() || HighlightBackground.Cumulative() {
		t.Error("flash modes reported cumulative")
	}
	if !HighlightTextCumulative.Cumulative() || !HighlightBackgroundCumulative.Cumulative() {
		t.Error("cumulative modes not reported cumulative")
	}
	if HighlightText.UsesBox() || !HighlightBackground.UsesBox() {
		t.Error("UsesBox wrong")
	}
}

func TestNormalizeClampsOpacities(t *testing.T) {
	cfg := Default()
	cfg.TextOpacity = 1.5
	cfg.BackgroundOpacity = -0.3
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.TextOpacity != 1.0 {
		t.Errorf("TextOpacity = %f, want clamped to 1", cfg.TextOpacity)
	}
	if cfg.BackgroundOpacity != 0.0 {
		t.Errorf("BackgroundOpacity = %f, want clamped to 0", cfg.BackgroundOpacity)
	}
}

func TestNormalizeRejectsUnknownMode(t *testing.T) {
	cfg := Default()
	cfg.HighlightMode = "rainbow"
	if err := cfg.Normalize(); err == nil {
		t.Error("expected error for unknown highlight mode")
	}
}

func TestNormalizeBoldFromWeight(t *testing.T) {
	cfg := Default()
	cfg.FontWeight = 700
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !cfg.FontBold {
		t.Error("weight 700 should imply bold")
	}
}

func TestApplyOverrides(t *testing.T) {
	mode := "background_cumulative"
	size := 64.0
	opacity := 2.0
	cfg, err := Apply(Default(), Overrides{
		HighlightMode: &mode,
		FontSize:      &size,
		TextOpacity:   &opacity,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.HighlightMode != HighlightBackgroundCumulative {
		t.Errorf("mode = %q", cfg.HighlightMode)
	}
	if cfg.FontSize != 64 {
		t.Errorf("size = %f", cfg.FontSize)
	}
	if cfg.TextOpacity != 1.0 {
		t.Errorf("opacity = %f, want clamped", cfg.TextOpacity)
	}
	if cfg.FontFamily != "Arial" {
		t.Errorf("untouched field changed: %q", cfg.FontFamily)
	}
}

func TestApplyRejectsBadPosition(t *testing.T) {
	position := "sideways"
	if _, err := Apply(Default(), Overrides{Position: &position}); err == nil {
		t.Error("expected error for unknown position")
	}
}

func TestEstimateMaxChars(t *testing.T) {
	cfg := Default()
	budget := cfg.EstimateMaxChars()
	if budget < 10 {
		t.Errorf("budget = %d, implausibly small for a 1920px canvas", budget)
	}

	narrow := cfg
	narrow.PlayResX = 320
	if narrow.EstimateMaxChars() >= budget {
		t.Error("narrower canvas should shrink the budget")
	}
}

func TestPresetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	color := "#FF0000"
	preset := Preset{Name: "fire", Overrides: Overrides{HighlightColor: &color}}

	if err := SavePreset(dir, preset); err != nil {
		t.Fatalf("SavePreset: %v", err)
	}

	loaded, err := LoadPreset(dir, "fire")
	if err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}
	cfg, err := loaded.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.HighlightColor != "#FF0000" {
		t.Errorf("highlight color = %q", cfg.HighlightColor)
	}

	names, err := ListPresets(dir)
	if err != nil {
		t.Fatalf("ListPresets: %v", err)
	}
	if len(names) != 1 || names[0] != "fire" {
		t.Errorf("names = %v", names)
	}
}

func TestListPresetsMissingDir(t *testing.T) {
	names, err := ListPresets("/nonexistent/presets")
	if err != nil || names != nil {
		t.Errorf("missing dir should be empty, got %v, %v", names, err)
	}
}

func TestSavePresetRejectsBadOverrides(t *testing.T) {
	mode := "nope"
	err := SavePreset(t.TempDir(), Preset{Name: "bad", Overrides: Overrides{HighlightMode: &mode}})
	if err == nil {
		t.Error("expected error for invalid preset")
	}
}
