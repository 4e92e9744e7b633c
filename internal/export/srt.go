package export

import (
	"fmt"
	"os"
	"strings"

	"karasub/internal/cue"
	"karasub/internal/timecode"
)

// FormatSRT renders cues as an SRT document with 1-based indices. Blank cues
// are kept so index numbering survives a round trip through an editor.
func FormatSRT(cues []cue.Cue) string {
	var b strings.Builder
	for i, c := range cues {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", timecode.FormatSRT(c.Start), timecode.FormatSRT(c.End))
		b.WriteString(strings.TrimSpace(c.Text))
		b.WriteString("\n\n")
	}
	return b.String()
}

// WriteSRT writes cues to an SRT file.
func WriteSRT(path string, cues []cue.Cue) error {
	if err := os.WriteFile(path, []byte(FormatSRT(cues)), 0o644); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

// ParseSRT reads an SRT document back into cues. Index lines are optional
// and malformed timestamps parse as zero, matching the lenient codec the
// rest of the pipeline uses.
func ParseSRT(content string) []cue.Cue {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(content), "\n\n")

	var cues []cue.Cue
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		timing := -1
		for i, line := range lines {
			if strings.Contains(line, "-->") {
				timing = i
				break
			}
		}
		if timing < 0 {
			continue
		}
		parts := strings.SplitN(lines[timing], "-->", 2)
		if len(parts) != 2 {
			continue
		}
		cues = append(cues, cue.Cue{
			Start: timecode.Parse(parts[0]),
			End:   timecode.Parse(parts[1]),
			Text:  strings.TrimSpace(strings.Join(lines[timing+1:], "\n")),
		})
	}
	return cues
}

// ReadSRT loads and parses an SRT file.
func ReadSRT(path string) ([]cue.Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	return ParseSRT(string(data)), nil
}
