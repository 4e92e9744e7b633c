// Package assscript compiles a styled cue list into an Advanced SubStation
// Alpha script for the burn-in compositor.
//
// The compiler emits a header declaring the default paragraph style (plus an
// auxiliary box style when background highlighting is on) and one or more
// Dialogue events per cue. Word highlighting is expressed with inline \t
// transforms keyed to each word's offset from the cue start, in the four
// supported modes. Multi-line cues are positioned with absolute \pos
// coordinates computed from the configured alignment, vertical margin, and
// line pitch, so the burned-in result matches a live preview pixel for
// pixel rather than depending on renderer word wrapping.
package assscript
