package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"karasub/internal/pipeline"
	"karasub/internal/project"
	"karasub/internal/style"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var outPath string
	var presetName string

	cmd := &cobra.Command{
		Use:   "render <project-id>",
		Short: "Compile a project into a styled ASS script",
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
				manual, err := store.LoadManualGroups(cmd.Context(), p.ID)
				if err != nil {
					return err
				}
				styleCfg, err := store.LoadStyle(cmd.Context(), p.ID)
				if err != nil {
					return err
				}
				if presetName != "" {
					preset, err := style.LoadPreset(cfg.Paths.PresetsDir, presetName)
					if err != nil {
						return err
					}
					styleCfg, err = style.Apply(styleCfg, preset.Overrides)
					if err != nil {
						return err
					}
				}

				engine := pipeline.New(pipeline.FromConfig(cfg, styleCfg), logger)
				script, err := engine.Render(stream, cues, manual, styleCfg)
				if err != nil {
					return err
				}

				return writeOutput(outPath, script, func(content string) error {
					_, err := fmt.Fprint(cmd.OutOrStdout(), content)
					return err
				})
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (stdout when omitted)")
	cmd.Flags().StringVar(&presetName, "preset", "", "Apply a named style preset for this render")
	return cmd
}
