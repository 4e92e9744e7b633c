package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse converts a subtitle timestamp to seconds. It accepts both comma and
// period millisecond separators and both HH:MM:SS and MM:SS layouts.
// Malformed input returns 0.0.
func Parse(value string) float64 {
	seconds, err := ParseStrict(value)
	if err != nil {
		return 0.0
	}
	return seconds
}

// ParseStrict converts a subtitle timestamp to seconds, returning an error
// for input that Parse would silently map to zero.
func ParseStrict(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	trimmed = strings.ReplaceAll(trimmed, ",", ".")
	parts := strings.Split(trimmed, ":")

	switch len(parts) {
	case 3:
		hours, errH := strconv.Atoi(parts[0])
		minutes, errM := strconv.Atoi(parts[1])
		seconds, errS := strconv.ParseFloat(parts[2], 64)
		if errH != nil || errM != nil || errS != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		return float64(hours*3600+minutes*60) + seconds, nil
	case 2:
		minutes, errM := strconv.Atoi(parts[0])
		seconds, errS := strconv.ParseFloat(parts[1], 64)
		if errM != nil || errS != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		return float64(minutes*60) + seconds, nil
	default:
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
}

// FormatSRT renders seconds as HH:MM:SS,mmm. Negative input clamps to zero.
func FormatSRT(seconds float64) string {
	hours, minutes, secs, millis := splitMillis(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// FormatVTT renders seconds as HH:MM:SS.mmm (WebVTT uses a period separator).
func FormatVTT(seconds float64) string {
	hours, minutes, secs, millis := splitMillis(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
}

// FormatASS renders seconds on the ASS centisecond clock, H:MM:SS.cc.
func FormatASS(seconds float64) string {
	totalCentis := int64(math.Round(seconds * 100))
	if totalCentis < 0 {
		totalCentis = 0
	}
	hours := totalCentis / 360000
	remainder := totalCentis % 360000
	minutes := remainder / 6000
	remainder %= 6000
	secs := remainder / 100
	centis := remainder % 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}

func splitMillis(seconds float64) (int64, int64, int64, int64) {
	totalMillis := int64(math.Round(seconds * 1000))
	if totalMillis < 0 {
		totalMillis = 0
	}
	hours := totalMillis / 3600000
	remainder := totalMillis % 3600000
	minutes := remainder / 60000
	remainder %= 60000
	return hours, minutes, remainder / 1000, remainder % 1000
}
