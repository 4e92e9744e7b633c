package config

// Default returns the configuration used when no file overrides a value.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    "~/.local/share/karasub",
			LogDir:     "~/.local/share/karasub/logs",
			PresetsDir: "~/.config/karasub/presets",
		},
		Logging: Logging{
			Format: "auto",
			Level:  "info",
		},
		Align: Align{
			MinWordDuration: 0.05,
			MaxWordDuration: 3.0,
			Lookahead:       500,
		},
		Chunk: Chunk{
			GapThreshold:   0.5,
			MinGap:         0.05,
			MinCueDuration: 0.2,
		},
		Export: Export{
			Format:          "srt",
			FillGaps:        true,
			MaxGap:          5.0,
			Resync:          true,
			ResyncLookahead: 500,
		},
	}
}
