package export

import (
	"karasub/internal/cue"
	"karasub/internal/tokenize"
	"karasub/internal/words"
)

// DefaultMaxGap is the widest silence FillGaps will bridge, in seconds.
// Longer pauses are treated as intentional breaks.
const DefaultMaxGap = 5.0

// FillGaps returns a copy of the cues, sorted by start, with each cue's end
// extended to the next cue's start when the silence between them is shorter
// than maxGap. Running it twice yields the same result.
func FillGaps(cues []cue.Cue, maxGap float64) []cue.Cue {
	if maxGap <= 0 {
		maxGap = DefaultMaxGap
	}
	out := make([]cue.Cue, len(cues))
	copy(out, cues)
	cue.SortByStart(out)

	for i := 0; i < len(out)-1; i++ {
		gap := out[i+1].Start - out[i].End
		if gap > 0 && gap < maxGap {
			out[i].End = out[i+1].Start
		}
	}
	return out
}

// ResyncOptions tunes the cue-to-word resynchronization scan.
type ResyncOptions struct {
	// Lookahead bounds how many words past the cursor the scan will probe
	// for a cue's first token.
	Lookahead int
}

// DefaultResyncOptions returns the standard 500-word scan window.
func DefaultResyncOptions() ResyncOptions {
	return ResyncOptions{Lookahead: 500}
}

// ResyncWordsToCues rescales the timing of each cue's matched word run, in
// place, so word highlighting lines up with cues whose boundaries were
// edited by hand. For every cue the scan looks ahead from the cursor for a
// contiguous run of words whose normalized tokens match the cue's full token
// sequence, then maps the run's interval proportionally onto the cue's. A
// word that matches only the first token is skipped and the scan continues.
// It returns the number of cues that found a match.
func ResyncWordsToCues(stream []words.Word, cues []cue.Cue, opts ResyncOptions) int {
	if opts.Lookahead <= 0 {
		opts.Lookahead = DefaultResyncOptions().Lookahead
	}

	resynced := 0
	cursor := 0
	for _, c := range cues {
		toks := matchTokens(c.Text)
		if len(toks) == 0 || cursor >= len(stream) {
			continue
		}

		limit := cursor + opts.Lookahead
		if limit > len(stream) {
			limit = len(stream)
		}
		found := -1
		for i := cursor; i < limit; i++ {
			if runMatches(stream, i, toks) {
				found = i
				break
			}
		}
		if found < 0 {
			continue
		}

		end := found + len(toks)
		rescale(stream[found:end], c.Start, c.End)
		cursor = end
		resynced++
	}
	return resynced
}

// runMatches reports whether the consecutive words starting at i normalize
// to exactly the given token sequence.
func runMatches(stream []words.Word, i int, toks []string) bool {
	if i+len(toks) > len(stream) {
		return false
	}
	for j, tok := range toks {
		if tokenize.Normalize(stream[i+j].Token) != tok {
			return false
		}
	}
	return true
}

// matchTokens returns the normalized, non-empty match tokens of a cue text.
func matchTokens(text string) []string {
	var toks []string
	for _, tok := range tokenize.Split(text) {
		for _, m := range tok.Matches {
			if n := tokenize.Normalize(m); n != "" {
				toks = append(toks, n)
			}
		}
	}
	return toks
}

// rescale maps a word run's timings proportionally onto [start, end]. A run
// with no measurable extent is spread evenly instead.
func rescale(run []words.Word, start, end float64) {
	if len(run) == 0 {
		return
	}
	oldStart := run[0].Start
	oldEnd := run[len(run)-1].End
	span := oldEnd - oldStart

	if span <= 0 {
		step := (end - start) / float64(len(run))
		for i := range run {
			run[i].Start = start + float64(i)*step
			run[i].End = start + float64(i+1)*step
		}
		return
	}

	scale := (end - start) / span
	for i := range run {
		run[i].Start = start + (run[i].Start-oldStart)*scale
		run[i].End = start + (run[i].End-oldStart)*scale
	}
}
