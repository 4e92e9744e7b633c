package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"karasub/internal/pipeline"
	"karasub/internal/project"
)

func newSaveCommand(ctx *commandContext) *cobra.Command {
	var cuesPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "save <project-id>",
		Short: "Reconcile an edited cue list against the project's word stream",
		Long: `Save loads the project's stored cue list as the previous revision, reads
the edited cue list from --cues, detects manually retimed groups, and
re-flows everything else from word timings. The result replaces the
project's cue list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			current, err := loadCueFile(cuesPath)
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

				previous, err := store.LoadCues(cmd.Context(), p.ID)
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

				engine := pipeline.New(pipeline.FromConfig(cfg, styleCfg), logger)
				result := engine.Save(stream, previous, current, manual)

				if err := store.SaveCues(cmd.Context(), p.ID, result.Cues); err != nil {
					return err
				}
				if err := store.SaveManualGroups(cmd.Context(), p.ID, result.Manual); err != nil {
					return err
				}

				if jsonOutput {
					return writeJSON(cmd, result.Cues)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %d cues (%d manual groups)\n",
					len(result.Cues), len(result.Manual))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&cuesPath, "cues", "", "Edited cue file (.srt or .json)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the saved cues as JSON")
	_ = cmd.MarkFlagRequired("cues")
	return cmd
}
