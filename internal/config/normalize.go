package config

import "strings"

// normalize expands paths and fills empty or nonsensical values with
// defaults. Validation of values with no sensible correction happens in
// Validate.
func (c *Config) normalize() error {
	defaults := Default()

	for _, field := range []*string{&c.Paths.DataDir, &c.Paths.LogDir, &c.Paths.PresetsDir} {
		expanded, err := expandPath(strings.TrimSpace(*field))
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}

	if c.Align.MinWordDuration <= 0 {
		c.Align.MinWordDuration = defaults.Align.MinWordDuration
	}
	if c.Align.MaxWordDuration < 0 {
		c.Align.MaxWordDuration = 0
	}
	if c.Align.Lookahead <= 0 {
		c.Align.Lookahead = defaults.Align.Lookahead
	}

	if c.Chunk.MaxWords < 0 {
		c.Chunk.MaxWords = 0
	}
	if c.Chunk.GapThreshold <= 0 {
		c.Chunk.GapThreshold = defaults.Chunk.GapThreshold
	}
	if c.Chunk.MinGap <= 0 {
		c.Chunk.MinGap = defaults.Chunk.MinGap
	}
	if c.Chunk.MinCueDuration <= 0 {
		c.Chunk.MinCueDuration = defaults.Chunk.MinCueDuration
	}

	c.Export.Format = strings.ToLower(strings.TrimSpace(c.Export.Format))
	if c.Export.Format == "" {
		c.Export.Format = defaults.Export.Format
	}
	if c.Export.MaxGap <= 0 {
		c.Export.MaxGap = defaults.Export.MaxGap
	}
	if c.Export.ResyncLookahead <= 0 {
		c.Export.ResyncLookahead = defaults.Export.ResyncLookahead
	}

	return nil
}
