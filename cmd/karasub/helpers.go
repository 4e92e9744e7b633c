package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"karasub/internal/cue"
	"karasub/internal/export"
)

// loadCueFile reads cues from .srt or .json. JSON preserves group IDs; SRT
// yields ungrouped cues.
func loadCueFile(path string) ([]cue.Cue, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return export.ReadSRT(path)
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read cues: %w", err)
		}
		var cues []cue.Cue
		if err := json.Unmarshal(data, &cues); err != nil {
			return nil, fmt.Errorf("parse cues json: %w", err)
		}
		return cues, nil
	default:
		return nil, fmt.Errorf("unsupported cue file %q (expected .srt or .json)", path)
	}
}

// writeOutput writes content to a file, or to the command's stdout writer
// when path is empty.
func writeOutput(path, content string, stdout func(string) error) error {
	if path == "" {
		return stdout(content)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
