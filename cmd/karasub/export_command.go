package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"karasub/internal/export"
	"karasub/internal/pipeline"
	"karasub/internal/project"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outPath string
	var format string
	var skipFillGaps bool
	var skipResync bool

	cmd := &cobra.Command{
		Use:   "export <project-id>",
		Short: "Export a project's cues as SRT, VTT, or ASS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			resolved := resolveFormat(format, outPath, cfg.Export.Format)
			switch resolved {
			case "srt", "vtt", "ass":
			default:
				return fmt.Errorf("unsupported export format %q", resolved)
			}

			return ctx.withStore(func(store *project.Store) error {
				p, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if p == nil {
					return fmt.Errorf("project %s not found", args[0])
				}

				cues, err := store.LoadCues(cmd.Context(), p.ID)
				if err != nil {
					return err
				}
				stream, err := store.LoadWords(cmd.Context(), p.ID)
				if err != nil {
					return err
				}

				if cfg.Export.Resync && !skipResync && len(stream) > 0 {
					export.ResyncWordsToCues(stream, cues, export.ResyncOptions{
						Lookahead: cfg.Export.ResyncLookahead,
					})
					if err := store.SaveWords(cmd.Context(), p.ID, stream); err != nil {
						return err
					}
				}
				if cfg.Export.FillGaps && !skipFillGaps {
					cues = export.FillGaps(cues, cfg.Export.MaxGap)
				}

				var content string
				switch resolved {
				case "srt":
					content = export.FormatSRT(cues)
				case "vtt":
					content = export.FormatVTT(cues)
				case "ass":
					manual, err := store.LoadManualGroups(cmd.Context(), p.ID)
					if err != nil {
						return err
					}
					styleCfg, err := store.LoadStyle(cmd.Context(), p.ID)
					if err != nil {
						return err
					}
					engine := pipeline.New(pipeline.FromConfig(cfg, styleCfg), logger)
					content, err = engine.Render(stream, cues, manual, styleCfg)
					if err != nil {
						return err
					}
				}

				return writeOutput(outPath, content, func(s string) error {
					_, err := fmt.Fprint(cmd.OutOrStdout(), s)
					return err
				})
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (stdout when omitted)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: srt, vtt, or ass (default from config or file extension)")
	cmd.Flags().BoolVar(&skipFillGaps, "skip-fill-gaps", false, "Do not bridge short silences between cues")
	cmd.Flags().BoolVar(&skipResync, "skip-resync", false, "Do not rescale word timings onto edited cue boundaries")
	return cmd
}

// resolveFormat picks the export format from the flag, then the output file
// extension, then the configured default.
func resolveFormat(flag, outPath, configured string) string {
	if flag != "" {
		return strings.ToLower(strings.TrimSpace(flag))
	}
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(outPath)), "."); ext != "" {
		return ext
	}
	return configured
}
