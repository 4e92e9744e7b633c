package export

import (
	"fmt"
	"os"
	"strings"

	"karasub/internal/cue"
	"karasub/internal/timecode"
)

// FormatVTT renders cues as a WebVTT document.
func FormatVTT(cues []cue.Cue) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, c := range cues {
		fmt.Fprintf(&b, "%s --> %s\n", timecode.FormatVTT(c.Start), timecode.FormatVTT(c.End))
		b.WriteString(strings.TrimSpace(c.Text))
		b.WriteString("\n\n")
	}
	return b.String()
}

// WriteVTT writes cues to a WebVTT file.
func WriteVTT(path string, cues []cue.Cue) error {
	if err := os.WriteFile(path, []byte(FormatVTT(cues)), 0o644); err != nil {
		return fmt.Errorf("write vtt: %w", err)
	}
	return nil
}
