// Package timecode converts between seconds and the textual clock formats
// used by subtitle interchange files: SRT (HH:MM:SS,mmm), WebVTT
// (HH:MM:SS.mmm), and ASS (H:MM:SS.cc centiseconds).
//
// Parsing is lenient by default: malformed input yields 0.0 rather than an
// error, matching the behavior editors rely on when round-tripping partially
// hand-edited files. ParseStrict is available for importers that want
// malformed timestamps surfaced.
package timecode
