// Package align reconciles the immutable recognizer word stream against
// user-editable cue text, producing the per-cue word lines that drive
// karaoke highlighting.
//
// Alignment is a strict degradation ladder and never fails: an exact 1:1 zip
// when candidate words and match tokens agree in count, a greedy fuzzy walk
// with bounded lookahead when they do not, and an even proportional split of
// the cue interval when no candidate words exist at all. A smoothing pass
// then guarantees word timings are non-overlapping, duration-bounded, and
// clipped to the owning cue.
//
// The cursor into the word stream is an explicit value taken and returned by
// each call, so independent alignment passes never share state.
package align
