// Package pipeline wires the alignment, splitting, and rendering stages into
// the save and render flows commands invoke.
package pipeline

import (
	"fmt"
	"log/slog"

	"karasub/internal/align"
	"karasub/internal/assscript"
	"karasub/internal/config"
	"karasub/internal/cue"
	"karasub/internal/logging"
	"karasub/internal/split"
	"karasub/internal/style"
	"karasub/internal/words"
)

// Options collects the tuning for one engine.
type Options struct {
	Align align.Options
	Chunk split.ChunkOptions
}

// FromConfig maps the loaded configuration onto engine options. A zero
// chunk.max_words defers to the style's word budget; the static splitter's
// character budget always comes from the style's width estimate.
func FromConfig(cfg *config.Config, styleCfg style.Config) Options {
	opts := Options{
		Align: align.Options{
			MinWordDuration: cfg.Align.MinWordDuration,
			MaxWordDuration: cfg.Align.MaxWordDuration,
			Lookahead:       cfg.Align.Lookahead,
		},
		Chunk: split.ChunkOptions{
			MaxWords:       cfg.Chunk.MaxWords,
			GapThreshold:   cfg.Chunk.GapThreshold,
			MinGap:         cfg.Chunk.MinGap,
			MinCueDuration: cfg.Chunk.MinCueDuration,
			MaxChars:       styleCfg.EstimateMaxChars(),
		},
	}
	if opts.Chunk.MaxWords <= 0 {
		opts.Chunk.MaxWords = styleCfg.MaxWordsPerLine
	}
	return opts
}

// Engine runs the save and render flows over one project's cue list.
type Engine struct {
	opts   Options
	logger *slog.Logger
}

// New builds an engine. logger may be nil.
func New(opts Options, logger *slog.Logger) *Engine {
	return &Engine{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "pipeline"),
	}
}

// SaveResult is the reconciled cue list plus the updated manual group set.
type SaveResult struct {
	Cues   []cue.Cue
	Manual cue.GroupSet
}

// Save reconciles an edited cue list against the word stream. Groups whose
// boundaries the user moved are marked manual and pass through untouched;
// everything else is merged back to full text units, re-aligned, split on
// explicit break markers, and re-flowed into display-sized cues.
func (e *Engine) Save(stream []words.Word, previous, current []cue.Cue, manual cue.GroupSet) SaveResult {
	manual = cue.DetectManualGroups(previous, current, manual)

	var manualCues, autoCues []cue.Cue
	for _, c := range current {
		if manual.Contains(c) {
			manualCues = append(manualCues, c)
		} else {
			autoCues = append(autoCues, c)
		}
	}

	merged := cue.MergeByGroup(autoCues)
	lines := align.All(stream, merged, nil, e.opts.Align)
	merged, lines = split.ApplyManualBreaks(merged, lines)

	groupIDs := make([]*int64, len(merged))
	for i, c := range merged {
		groupIDs[i] = c.GroupID
	}

	// Without recognizer timings the per-word intervals are synthetic, so
	// the static splitter packs by text width instead.
	var chunks []cue.Cue
	if len(stream) == 0 {
		chunks = split.ByWords(merged, e.opts.Chunk)
	} else {
		chunks = split.ByWordTimings(lines, groupIDs, e.opts.Chunk)
		if chunks == nil {
			chunks = split.ByWords(merged, e.opts.Chunk)
		}
	}

	out := append(chunks, manualCues...)
	cue.SortByStart(out)

	e.logger.Info("saved cue list",
		logging.Int("input_cues", len(current)),
		logging.Int("output_cues", len(out)),
		logging.Int("manual_groups", len(manual)),
		logging.Int("words", len(stream)))

	return SaveResult{Cues: out, Manual: manual}
}

// Align derives the per-cue word lines used for karaoke highlighting.
func (e *Engine) Align(stream []words.Word, cues []cue.Cue, manual cue.GroupSet) []words.Line {
	return align.All(stream, cues, manual, e.opts.Align)
}

// Render aligns the cues and compiles the styled ASS script.
func (e *Engine) Render(stream []words.Word, cues []cue.Cue, manual cue.GroupSet, styleCfg style.Config) (string, error) {
	lines := e.Align(stream, cues, manual)
	script, err := assscript.New(styleCfg).Compile(lines)
	if err != nil {
		return "", fmt.Errorf("compile script: %w", err)
	}
	e.logger.Info("rendered script",
		logging.Int("cues", len(cues)),
		logging.String("highlight_mode", string(styleCfg.HighlightMode)))
	return script, nil
}
