package config

import "fmt"

// Validate rejects values normalize could not repair.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}

	switch c.Export.Format {
	case "srt", "vtt", "ass":
	default:
		return fmt.Errorf("export.format: unsupported value %q", c.Export.Format)
	}

	if c.Align.MaxWordDuration > 0 && c.Align.MaxWordDuration < c.Align.MinWordDuration {
		return fmt.Errorf("align.max_word_duration %.3f is below align.min_word_duration %.3f",
			c.Align.MaxWordDuration, c.Align.MinWordDuration)
	}

	if c.Paths.DataDir == "" {
		return fmt.Errorf("paths.data_dir is required")
	}

	return nil
}
