// Package style models the per-job caption styling configuration: fonts,
// colors and opacities, highlight behavior, background box, and layout
// budgets. A Config is validated and clamped once at the boundary and stays
// immutable during a compile. Named presets are stored as TOML files.
package style
