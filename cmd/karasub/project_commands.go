package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"karasub/internal/project"
	"karasub/internal/style"
	"karasub/internal/words"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage stored karaoke projects",
	}

	projectCmd.AddCommand(newProjectCreateCommand(ctx))
	projectCmd.AddCommand(newProjectListCommand(ctx))
	projectCmd.AddCommand(newProjectShowCommand(ctx))
	projectCmd.AddCommand(newProjectDeleteCommand(ctx))
	projectCmd.AddCommand(newProjectImportCommand(ctx))
	projectCmd.AddCommand(newProjectStyleCommand(ctx))

	return projectCmd
}

func newProjectCreateCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *project.Store) error {
				p, err := store.Create(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, p)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", p.ID, p.Title)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

func newProjectListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *project.Store) error {
				projects, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, projects)
				}
				if len(projects) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No projects")
					return nil
				}
				rows := make([][]string, 0, len(projects))
				for _, p := range projects {
					rows = append(rows, []string{
						p.ID,
						p.Title,
						p.UpdatedAt.Format("2006-01-02 15:04:05"),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]tableColumn{{title: "ID"}, {title: "Title"}, {title: "Updated"}},
					rows,
				))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

func newProjectShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

				if jsonOutput {
					return writeJSON(cmd, map[string]any{
						"project":       p,
						"cues":          cues,
						"words":         len(stream),
						"manual_groups": manual.IDs(),
					})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Project: %s (%s)\n", p.Title, p.ID)
				fmt.Fprintf(out, "Words:   %d\n", len(stream))
				fmt.Fprintf(out, "Cues:    %d\n", len(cues))
				fmt.Fprintf(out, "Manual groups: %d\n", len(manual))
				if len(cues) > 0 {
					rows := make([][]string, 0, len(cues))
					for i, c := range cues {
						group := ""
						if c.GroupID != nil {
							group = strconv.FormatInt(*c.GroupID, 10)
						}
						rows = append(rows, []string{
							strconv.Itoa(i + 1),
							fmt.Sprintf("%.3f", c.Start),
							fmt.Sprintf("%.3f", c.End),
							group,
							c.Text,
						})
					}
					fmt.Fprintln(out, renderTable(
						[]tableColumn{
							{title: "#", right: true},
							{title: "Start", right: true},
							{title: "End", right: true},
							{title: "Group", right: true},
							{title: "Text"},
						},
						rows,
					))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

func newProjectDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *project.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
				return nil
			})
		},
	}
}

func newProjectImportCommand(ctx *commandContext) *cobra.Command {
	var transcriptPath string
	var cuesPath string

	cmd := &cobra.Command{
		Use:   "import <project-id>",
		Short: "Import a transcript and/or cue file into a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if transcriptPath == "" && cuesPath == "" {
				return fmt.Errorf("nothing to import: pass --transcript and/or --cues")
			}
			return ctx.withStore(func(store *project.Store) error {
				p, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if p == nil {
					return fmt.Errorf("project %s not found", args[0])
				}

				out := cmd.OutOrStdout()
				if transcriptPath != "" {
					stream, err := words.LoadTranscript(transcriptPath)
					if err != nil {
						return err
					}
					if err := store.SaveWords(cmd.Context(), p.ID, stream); err != nil {
						return err
					}
					fmt.Fprintf(out, "Imported %d words\n", len(stream))
				}
				if cuesPath != "" {
					cues, err := loadCueFile(cuesPath)
					if err != nil {
						return err
					}
					if err := store.SaveCues(cmd.Context(), p.ID, cues); err != nil {
						return err
					}
					fmt.Fprintf(out, "Imported %d cues\n", len(cues))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&transcriptPath, "transcript", "", "Recognizer transcript JSON file")
	cmd.Flags().StringVar(&cuesPath, "cues", "", "Cue file (.srt or .json)")
	return cmd
}

func newProjectStyleCommand(ctx *commandContext) *cobra.Command {
	var presetName string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "style <project-id>",
		Short: "Show or update a project's style",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
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

				current, err := store.LoadStyle(cmd.Context(), p.ID)
				if err != nil {
					return err
				}

				if presetName != "" {
					preset, err := style.LoadPreset(cfg.Paths.PresetsDir, presetName)
					if err != nil {
						return err
					}
					current, err = style.Apply(current, preset.Overrides)
					if err != nil {
						return err
					}
					if err := store.SaveStyle(cmd.Context(), p.ID, current); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Applied preset %q\n", presetName)
				}

				if jsonOutput {
					return writeJSON(cmd, current)
				}
				if presetName == "" {
					return writeJSON(cmd, current)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&presetName, "preset", "", "Apply a named style preset")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}
