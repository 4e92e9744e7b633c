package split

import (
	"strings"

	"karasub/internal/cue"
	"karasub/internal/tokenize"
	"karasub/internal/words"
)

// breakMarkers splits cue text on the explicit break characters users type.
func breakSegments(text string) []string {
	normalized := strings.NewReplacer("\r\n", "\n", "\r", "\n", "|", "\n").Replace(text)
	raw := strings.Split(normalized, "\n")
	segments := make([]string, 0, len(raw))
	for _, seg := range raw {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		segments = append(segments, seg)
	}
	return segments
}

// ApplyManualBreaks divides every cue containing a break marker into one cue
// per segment. When the cue's word line has exactly one entry per display
// token across all segments, the line is sliced contiguously and segment
// timing is exact; otherwise the cue interval is allocated proportionally to
// each segment's token share and subdivided evenly within a segment. Every
// sub-cue receives a fresh synthetic group ID.
//
// lines must parallel cues (one word line per cue). The expanded cue and
// line slices are returned in the same order.
func ApplyManualBreaks(cues []cue.Cue, lines []words.Line) ([]cue.Cue, []words.Line) {
	nextGroup := maxGroupID(cues) + 1

	var outCues []cue.Cue
	var outLines []words.Line
	for i, c := range cues {
		var line words.Line
		if i < len(lines) {
			line = lines[i]
		}

		segments := breakSegments(c.Text)
		if len(segments) <= 1 {
			outCues = append(outCues, c)
			outLines = append(outLines, line)
			continue
		}

		segTokens := make([][]tokenize.Token, len(segments))
		total := 0
		for k, seg := range segments {
			segTokens[k] = tokenize.Split(seg)
			total += len(segTokens[k])
		}

		if total == len(line.Words) && total > 0 {
			offset := 0
			for k, seg := range segments {
				count := len(segTokens[k])
				slice := line.Words[offset : offset+count]
				offset += count
				if count == 0 {
					continue
				}
				sub := cue.Cue{Start: slice[0].Start, End: slice[count-1].End, Text: seg}
				sub = sub.WithGroup(nextGroup)
				nextGroup++
				outCues = append(outCues, sub)
				outLines = append(outLines, words.Line{
					Words:     append([]words.Word(nil), slice...),
					LineStart: sub.Start,
					LineEnd:   sub.End,
				})
			}
			continue
		}

		// Token counts diverge from the aligned line: fall back to a
		// proportional time allocation.
		duration := c.Duration()
		if duration < 0 {
			duration = 0
		}
		cursor := c.Start
		for k, seg := range segments {
			count := len(segTokens[k])
			share := duration
			if total > 0 {
				share = duration * float64(count) / float64(total)
			}
			sub := cue.Cue{Start: cursor, End: cursor + share, Text: seg}
			sub = sub.WithGroup(nextGroup)
			nextGroup++
			cursor = sub.End

			subLine := words.Line{LineStart: sub.Start, LineEnd: sub.End}
			if count > 0 {
				step := share / float64(count)
				subLine.Words = make([]words.Word, count)
				for t, tok := range segTokens[k] {
					subLine.Words[t] = words.Word{
						Token: tok.Display,
						Start: sub.Start + float64(t)*step,
						End:   sub.Start + float64(t+1)*step,
					}
				}
			}
			outCues = append(outCues, sub)
			outLines = append(outLines, subLine)
		}
	}
	return outCues, outLines
}

func maxGroupID(cues []cue.Cue) int64 {
	var max int64
	for _, c := range cues {
		if c.GroupID != nil && *c.GroupID > max {
			max = *c.GroupID
		}
	}
	return max
}
