// Package project persists karaoke projects: the cue list, the recognizer
// word stream, the style, and the manual group bookkeeping, backed by
// SQLite.
package project
