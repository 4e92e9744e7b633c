package align

import (
	"strings"

	"karasub/internal/cue"
	"karasub/internal/tokenize"
	"karasub/internal/words"
)

// Options bound word durations and the fuzzy search window.
type Options struct {
	// MinWordDuration is the floor used by gap repair and smoothing.
	MinWordDuration float64
	// MaxWordDuration caps auto-aligned words; zero or negative disables
	// the cap. Manually aligned content is never capped.
	MaxWordDuration float64
	// Lookahead bounds the fuzzy forward search through candidate words.
	Lookahead int
}

// DefaultOptions returns the tuning used by the save and render pipelines.
func DefaultOptions() Options {
	return Options{
		MinWordDuration: 0.05,
		MaxWordDuration: 3.0,
		Lookahead:       500,
	}
}

func (o Options) withDefaults() Options {
	if o.MinWordDuration <= 0 {
		o.MinWordDuration = 0.05
	}
	if o.Lookahead <= 0 {
		o.Lookahead = 500
	}
	return o
}

// Cursor is the position in the word stream reached by the auto alignment
// path. It is local to one pass over one cue list.
type Cursor int

// unresolved marks a flat match token with no assigned word.
const unresolved = -1

// flatMatch is one normalized match token plus the display token owning it.
type flatMatch struct {
	match   string
	display int
	word    int     // candidate index, or unresolved
	start   float64 // filled once a word (or sub-interval) is assigned
	end     float64
}

// Cue aligns one cue against the word stream. Manual cues scan the whole
// stream for overlap since user retiming breaks cursor monotonicity; auto
// cues consume words from the cursor. The returned line has one entry per
// display token and carries the cue's interval as its bounds.
func Cue(stream []words.Word, c cue.Cue, manual bool, cursor Cursor, opts Options) (words.Line, Cursor) {
	opts = opts.withDefaults()
	line := words.Line{LineStart: c.Start, LineEnd: c.End}

	tokens := tokenize.Split(c.Text)
	if len(tokens) == 0 {
		return line, cursor
	}

	var candidates []words.Word
	if manual {
		candidates = overlapScan(stream, c.Start, c.End)
	} else {
		candidates, cursor = cursorScan(stream, c.Start, c.End, cursor)
	}

	if len(candidates) == 0 {
		line.Words = evenSpread(tokens, c.Start, c.End)
		return line, cursor
	}

	flat := flatten(tokens)
	if len(candidates) == len(flat) {
		for i := range flat {
			flat[i].word = i
			flat[i].start = candidates[i].Start
			flat[i].end = candidates[i].End
		}
	} else {
		fuzzyAssign(flat, candidates, opts.Lookahead)
	}
	splitSharedWords(flat, candidates)

	line.Words = collapse(tokens, flat)
	repairGaps(line.Words, c.Start, c.End, opts.MinWordDuration)
	return line, cursor
}

// All aligns every cue in order, threading one cursor across the auto cues
// and smoothing each line. manual may be nil when no groups were retimed.
func All(stream []words.Word, cues []cue.Cue, manual cue.GroupSet, opts Options) []words.Line {
	opts = opts.withDefaults()
	lines := make([]words.Line, len(cues))
	cursor := Cursor(0)
	for i, c := range cues {
		isManual := manual.Contains(c)
		lines[i], cursor = Cue(stream, c, isManual, cursor, opts)
		Smooth(&lines[i], opts, !isManual)
	}
	return lines
}

// cursorScan consumes words from the cursor position: words ending before
// the cue are skipped, words overlapping [start, end) are collected, and the
// scan stops at the first word past the cue. Amortized O(1) per cue.
func cursorScan(stream []words.Word, start, end float64, cursor Cursor) ([]words.Word, Cursor) {
	i := int(cursor)
	if i < 0 {
		i = 0
	}
	for i < len(stream) && stream[i].End <= start {
		i++
	}
	var collected []words.Word
	for i < len(stream) && stream[i].Start < end {
		collected = append(collected, stream[i])
		i++
	}
	return collected, Cursor(i)
}

func overlapScan(stream []words.Word, start, end float64) []words.Word {
	var collected []words.Word
	for _, w := range stream {
		if w.End > start && w.Start < end {
			collected = append(collected, w)
		}
	}
	return collected
}

func flatten(tokens []tokenize.Token) []flatMatch {
	var flat []flatMatch
	for displayIdx, tok := range tokens {
		for _, match := range tok.Matches {
			flat = append(flat, flatMatch{match: match, display: displayIdx, word: unresolved})
		}
	}
	return flat
}

// fuzzyAssign walks match tokens in order, searching forward through the
// candidates for a normalized-equal word. A candidate whose normalized form
// is the concatenation of several consecutive match tokens (a recognized
// hyphen compound) satisfies the whole run.
func fuzzyAssign(flat []flatMatch, candidates []words.Word, lookahead int) {
	wcur := 0
	i := 0
	for i < len(flat) {
		limit := wcur + lookahead
		if limit > len(candidates) {
			limit = len(candidates)
		}
		matched := false
		for widx := wcur; widx < limit; widx++ {
			wnorm := tokenize.Normalize(candidates[widx].Token)
			if wnorm == "" {
				continue
			}
			if wnorm == flat[i].match {
				flat[i].word = widx
				flat[i].start = candidates[widx].Start
				flat[i].end = candidates[widx].End
				wcur = widx + 1
				i++
				matched = true
				break
			}
			if run := compoundRun(flat, i, wnorm); run > 1 {
				for k := i; k < i+run; k++ {
					flat[k].word = widx
				}
				wcur = widx + 1
				i += run
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
}

// compoundRun reports how many consecutive match tokens starting at i
// concatenate to wordNorm, or 0 if they do not.
func compoundRun(flat []flatMatch, i int, wordNorm string) int {
	if !strings.HasPrefix(wordNorm, flat[i].match) {
		return 0
	}
	var b strings.Builder
	for j := i; j < len(flat); j++ {
		b.WriteString(flat[j].match)
		if b.Len() > len(wordNorm) {
			return 0
		}
		if b.String() == wordNorm {
			return j - i + 1
		}
	}
	return 0
}

// splitSharedWords divides a word's interval into equal sub-intervals when
// several match tokens resolved to the same candidate, ordered by token rank.
func splitSharedWords(flat []flatMatch, candidates []words.Word) {
	i := 0
	for i < len(flat) {
		if flat[i].word == unresolved {
			i++
			continue
		}
		j := i + 1
		for j < len(flat) && flat[j].word == flat[i].word {
			j++
		}
		count := j - i
		if count > 1 {
			w := candidates[flat[i].word]
			step := w.Duration() / float64(count)
			for k := 0; k < count; k++ {
				flat[i+k].start = w.Start + float64(k)*step
				flat[i+k].end = w.Start + float64(k+1)*step
			}
		}
		i = j
	}
}

// collapse folds flat match assignments back to one timed entry per display
// token. A display token is resolved when any of its match tokens resolved;
// its interval spans the first to last resolved part. Unresolved tokens get
// a provisional zero interval for gap repair to fill.
func collapse(tokens []tokenize.Token, flat []flatMatch) []words.Word {
	out := make([]words.Word, len(tokens))
	resolved := make([]bool, len(tokens))
	for i := range tokens {
		out[i] = words.Word{Token: tokens[i].Display}
	}
	for _, fm := range flat {
		if fm.word == unresolved {
			continue
		}
		entry := &out[fm.display]
		if !resolved[fm.display] {
			entry.Start = fm.start
			entry.End = fm.end
			resolved[fm.display] = true
			continue
		}
		if fm.start < entry.Start {
			entry.Start = fm.start
		}
		if fm.end > entry.End {
			entry.End = fm.end
		}
	}
	// Zero markers for repair: resolved entries always have End > Start
	// after assignment, so (0,0) unambiguously means unresolved unless the
	// word legitimately sits at time zero with zero width, which repair
	// treats the same way.
	for i := range out {
		if !resolved[i] {
			out[i].Start = 0
			out[i].End = 0
		}
	}
	return out
}

func evenSpread(tokens []tokenize.Token, start, end float64) []words.Word {
	duration := end - start
	if duration < 0 {
		duration = 0
	}
	step := duration / float64(len(tokens))
	out := make([]words.Word, len(tokens))
	for i, tok := range tokens {
		out[i] = words.Word{
			Token: tok.Display,
			Start: start + float64(i)*step,
			End:   start + float64(i+1)*step,
		}
	}
	return out
}

// repairGaps fills every maximal run of unresolved entries from the time
// available between its resolved neighbors (or the line bounds). When the
// available span cannot fit the run at minDuration per word, the resolved
// neighbors are shrunk toward a minDuration floor, left first, to free the
// deficit; whatever is available after stealing is divided evenly.
func repairGaps(entries []words.Word, lineStart, lineEnd, minDuration float64) {
	i := 0
	for i < len(entries) {
		if !isUnresolved(entries[i]) {
			i++
			continue
		}
		j := i
		for j < len(entries) && isUnresolved(entries[j]) {
			j++
		}
		runLen := j - i

		left := lineStart
		var leftNeighbor *words.Word
		if i > 0 {
			leftNeighbor = &entries[i-1]
			left = leftNeighbor.End
		}
		right := lineEnd
		var rightNeighbor *words.Word
		if j < len(entries) {
			rightNeighbor = &entries[j]
			right = rightNeighbor.Start
		}

		needed := float64(runLen) * minDuration
		available := right - left
		if available < needed {
			deficit := needed - available
			if leftNeighbor != nil {
				spare := leftNeighbor.Duration() - minDuration
				if spare > 0 {
					steal := spare
					if steal > deficit {
						steal = deficit
					}
					leftNeighbor.End -= steal
					left = leftNeighbor.End
					deficit -= steal
				}
			}
			if deficit > 0 && rightNeighbor != nil {
				spare := rightNeighbor.Duration() - minDuration
				if spare > 0 {
					steal := spare
					if steal > deficit {
						steal = deficit
					}
					rightNeighbor.Start += steal
					right = rightNeighbor.Start
				}
			}
			available = right - left
		}
		if available < 0 {
			available = 0
		}

		step := available / float64(runLen)
		for k := 0; k < runLen; k++ {
			entries[i+k].Start = left + float64(k)*step
			entries[i+k].End = left + float64(k+1)*step
		}
		i = j
	}
}

func isUnresolved(w words.Word) bool {
	return w.Start == 0 && w.End == 0
}
