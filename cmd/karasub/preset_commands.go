package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"karasub/internal/style"
)

func newPresetCommand(ctx *commandContext) *cobra.Command {
	presetCmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage named style presets",
	}

	presetCmd.AddCommand(newPresetListCommand(ctx))
	presetCmd.AddCommand(newPresetShowCommand(ctx))
	presetCmd.AddCommand(newPresetSaveCommand(ctx))

	return presetCmd
}

func newPresetListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			names, err := style.ListPresets(cfg.Paths.PresetsDir)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, names)
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No presets")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

func newPresetShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a preset's resolved style",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			preset, err := style.LoadPreset(cfg.Paths.PresetsDir, args[0])
			if err != nil {
				return err
			}
			resolved, err := preset.Resolve()
			if err != nil {
				return err
			}
			return writeJSON(cmd, resolved)
		},
	}
}

func newPresetSaveCommand(ctx *commandContext) *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a preset from a TOML overrides file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("read overrides: %w", err)
			}
			var overrides style.Overrides
			if err := toml.Unmarshal(data, &overrides); err != nil {
				return fmt.Errorf("parse overrides: %w", err)
			}
			preset := style.Preset{Name: args[0], Overrides: overrides}
			if err := style.SavePreset(cfg.Paths.PresetsDir, preset); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %q\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "TOML file holding style overrides")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
