// Package tokenize splits cue text into the two parallel token views the
// alignment engine works with: display tokens, which keep the surface form
// the viewer will read, and match tokens, which are case-folded, stripped of
// punctuation, and split on hyphens so they can be compared against
// recognizer output. A single display token may therefore own several match
// tokens ("mega-money-wheel" matches three recognized words).
package tokenize
