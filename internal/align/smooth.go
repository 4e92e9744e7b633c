package align

import "karasub/internal/words"

// Smooth normalizes a word line in place: starts are forced monotonic,
// durations are clamped into [MinWordDuration, MaxWordDuration], and the
// line is clipped to its owning cue interval. capDurations disables the max
// clamp for manually aligned content so natural pacing survives.
//
// After Smooth, words[i].End <= words[i+1].Start for all adjacent pairs and
// no word extends outside [LineStart, LineEnd].
func Smooth(line *words.Line, opts Options, capDurations bool) {
	opts = opts.withDefaults()
	entries := line.Words
	if len(entries) == 0 {
		return
	}

	previousEnd := line.LineStart
	for i := range entries {
		w := &entries[i]
		if w.Start < previousEnd {
			w.Start = previousEnd
		}
		duration := w.End - w.Start
		if duration < opts.MinWordDuration {
			duration = opts.MinWordDuration
		}
		if capDurations && opts.MaxWordDuration > 0 && duration > opts.MaxWordDuration {
			duration = opts.MaxWordDuration
		}
		w.End = w.Start + duration
		previousEnd = w.End
	}

	// Clip the tail back inside the cue. Walking backwards keeps earlier
	// words untouched unless the overflow reaches them.
	limit := line.LineEnd
	for i := len(entries) - 1; i >= 0; i-- {
		w := &entries[i]
		if w.End > limit {
			w.End = limit
		}
		if w.Start > w.End {
			w.Start = w.End
		}
		limit = w.Start
	}
}
