package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"karasub/internal/align"
	"karasub/internal/words"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var transcriptPath string
	var cuesPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "align",
		Short: "Align cue texts against a transcript and print word timings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			stream, err := words.LoadTranscript(transcriptPath)
			if err != nil {
				return err
			}
			cues, err := loadCueFile(cuesPath)
			if err != nil {
				return err
			}

			opts := align.Options{
				MinWordDuration: cfg.Align.MinWordDuration,
				MaxWordDuration: cfg.Align.MaxWordDuration,
				Lookahead:       cfg.Align.Lookahead,
			}
			lines := align.All(stream, cues, nil, opts)

			if jsonOutput {
				type timedWord struct {
					Word  string  `json:"word"`
					Start float64 `json:"start"`
					End   float64 `json:"end"`
				}
				type timedLine struct {
					Start float64     `json:"start"`
					End   float64     `json:"end"`
					Words []timedWord `json:"words"`
				}
				payload := make([]timedLine, len(lines))
				for i, line := range lines {
					entry := timedLine{Start: line.LineStart, End: line.LineEnd}
					for _, w := range line.Words {
						entry.Words = append(entry.Words, timedWord{Word: w.Token, Start: w.Start, End: w.End})
					}
					payload[i] = entry
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			for i, line := range lines {
				fmt.Fprintf(out, "Cue %d [%.3f - %.3f]\n", i+1, line.LineStart, line.LineEnd)
				rows := make([][]string, 0, len(line.Words))
				for _, w := range line.Words {
					rows = append(rows, []string{
						w.Token,
						strconv.FormatFloat(w.Start, 'f', 3, 64),
						strconv.FormatFloat(w.End, 'f', 3, 64),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]tableColumn{
						{title: "Word"},
						{title: "Start", right: true},
						{title: "End", right: true},
					},
					rows,
				))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&transcriptPath, "transcript", "", "Recognizer transcript JSON file")
	cmd.Flags().StringVar(&cuesPath, "cues", "", "Cue file (.srt or .json)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	_ = cmd.MarkFlagRequired("transcript")
	_ = cmd.MarkFlagRequired("cues")
	return cmd
}
