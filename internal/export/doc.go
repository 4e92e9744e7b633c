// Package export serializes cue lists to SRT and WebVTT and reconciles
// edited cues against the recognizer word stream before export.
package export
