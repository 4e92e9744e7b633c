// Package split re-flows aligned word lines into display-sized cues.
//
// ApplyManualBreaks honors explicit break markers the user typed into cue
// text. ByWordTimings chunks a word line under a words-per-line budget and a
// silence-gap threshold, enforcing a minimum separation between emitted
// cues. ByWords is the static fallback used when no word timings exist,
// packing words under word-count and character budgets with time allocated
// proportionally.
package split
