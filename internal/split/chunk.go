package split

import (
	"strings"

	"karasub/internal/cue"
	"karasub/internal/tokenize"
	"karasub/internal/words"
)

// ChunkOptions tune the word-timing and static chunkers.
type ChunkOptions struct {
	// MaxWords is the per-chunk display token budget.
	MaxWords int
	// GapThreshold starts a new chunk when the silence since the previous
	// word exceeds it.
	GapThreshold float64
	// MinGap is the minimum separation enforced between emitted cues.
	MinGap float64
	// MinCueDuration is the duration floor a cue keeps after its start was
	// pushed forward for MinGap.
	MinCueDuration float64
	// MaxChars bounds chunk text length in the static variant; zero
	// disables the character budget.
	MaxChars int
}

// DefaultChunkOptions returns the chunker tuning used by the save pipeline.
func DefaultChunkOptions(maxWords int) ChunkOptions {
	if maxWords <= 0 {
		maxWords = 4
	}
	return ChunkOptions{
		MaxWords:       maxWords,
		GapThreshold:   0.5,
		MinGap:         0.05,
		MinCueDuration: 0.2,
	}
}

func (o ChunkOptions) withDefaults() ChunkOptions {
	if o.MaxWords <= 0 {
		o.MaxWords = 4
	}
	if o.GapThreshold <= 0 {
		o.GapThreshold = 0.5
	}
	if o.MinGap <= 0 {
		o.MinGap = 0.05
	}
	if o.MinCueDuration <= 0 {
		o.MinCueDuration = 0.2
	}
	return o
}

// ByWordTimings re-flows word lines into display-sized cues. A new chunk
// starts whenever the word budget is reached or the silence since the
// previous word's end exceeds GapThreshold. Each line's group ID propagates
// to all chunks derived from it. Returns nil when no line carries words, so
// callers can fall back to the static splitter.
func ByWordTimings(lines []words.Line, groupIDs []*int64, opts ChunkOptions) []cue.Cue {
	opts = opts.withDefaults()

	var out []cue.Cue
	sawWords := false
	for i, line := range lines {
		if len(line.Words) == 0 {
			continue
		}
		sawWords = true

		var groupID *int64
		if i < len(groupIDs) {
			groupID = groupIDs[i]
		}

		chunkStart := 0
		flush := func(end int) {
			if end <= chunkStart {
				return
			}
			slice := line.Words[chunkStart:end]
			texts := make([]string, len(slice))
			for t, w := range slice {
				texts[t] = w.Token
			}
			out = append(out, cue.Cue{
				Start:   slice[0].Start,
				End:     slice[len(slice)-1].End,
				Text:    strings.Join(texts, " "),
				GroupID: groupID,
			})
			chunkStart = end
		}

		for idx := 1; idx < len(line.Words); idx++ {
			gap := line.Words[idx].Start - line.Words[idx-1].End
			if idx-chunkStart >= opts.MaxWords || gap > opts.GapThreshold {
				flush(idx)
			}
		}
		flush(len(line.Words))
	}

	if !sawWords {
		return nil
	}
	enforceMinGap(out, opts)
	return out
}

// ByWords is the static splitter used when no word timings are available.
// It greedily packs display tokens under the word and character budgets and
// allocates each source cue's interval proportionally to token share.
func ByWords(cues []cue.Cue, opts ChunkOptions) []cue.Cue {
	opts = opts.withDefaults()

	var out []cue.Cue
	for _, c := range cues {
		tokens := tokenize.Split(c.Text)
		if len(tokens) == 0 {
			continue
		}

		var chunks [][]string
		var current []string
		currentLen := 0
		for _, tok := range tokens {
			tokenLen := len([]rune(tok.Display))
			fits := len(current) < opts.MaxWords
			if fits && opts.MaxChars > 0 && len(current) > 0 && currentLen+1+tokenLen > opts.MaxChars {
				fits = false
			}
			if !fits && len(current) > 0 {
				chunks = append(chunks, current)
				current = nil
				currentLen = 0
			}
			current = append(current, tok.Display)
			if currentLen > 0 {
				currentLen++
			}
			currentLen += tokenLen
		}
		if len(current) > 0 {
			chunks = append(chunks, current)
		}

		duration := c.Duration()
		if duration < 0 {
			duration = 0
		}
		cursor := c.Start
		for k, chunk := range chunks {
			share := duration * float64(len(chunk)) / float64(len(tokens))
			end := cursor + share
			if k == len(chunks)-1 {
				end = c.End
			}
			out = append(out, cue.Cue{
				Start:   cursor,
				End:     end,
				Text:    strings.Join(chunk, " "),
				GroupID: c.GroupID,
			})
			cursor = end
		}
	}

	enforceMinGap(out, opts)
	return out
}

// enforceMinGap pushes each cue's start forward until it clears the previous
// cue's end by MinGap; a cue collapsed below MinCueDuration gets its end
// extended instead of giving ground.
func enforceMinGap(cues []cue.Cue, opts ChunkOptions) {
	for i := 1; i < len(cues); i++ {
		prev := &cues[i-1]
		curr := &cues[i]
		required := prev.End + opts.MinGap
		if curr.Start >= required {
			continue
		}
		curr.Start = required
		if curr.Duration() < opts.MinCueDuration {
			curr.End = curr.Start + opts.MinCueDuration
		}
	}
}
