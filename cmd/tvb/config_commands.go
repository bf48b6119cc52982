package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tvb/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the profile parameter strings and output_dir before running a batch.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFlag, _ := cmd.Flags().GetString("config")
			cfg, path, exists, err := config.Load(configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults are in effect")
			}

			rows := [][]string{
				{"profiles.movie", cfg.Profiles.Movie},
				{"profiles.tvshow", cfg.Profiles.TVShow},
				{"profiles.custom", cfg.Profiles.Custom},
				{"profiles.preview", cfg.Profiles.Preview},
				{"default.output_dir", cfg.Defaults.OutputDir},
				{"default.cpulimit", fmt.Sprintf("%t", cfg.Defaults.CPULimit)},
				{"default.cpulimit_percent", fmt.Sprintf("%d", cfg.Defaults.CPULimitPercent)},
				{"default.localization", cfg.Defaults.Localization},
				{"default.edit_subtitles_manually", fmt.Sprintf("%t", cfg.Defaults.EditSubtitlesManually)},
				{"default.preserve_file_date", fmt.Sprintf("%t", cfg.Defaults.PreserveFileDate)},
				{"default.preserve_atmos_audio", fmt.Sprintf("%t", cfg.Defaults.PreserveAtmosAudio)},
				{"default.overwrite", fmt.Sprintf("%t", cfg.Defaults.Overwrite)},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
				{"logging.dir", cfg.Logging.Dir},
				{"stats.enabled", fmt.Sprintf("%t", cfg.Stats.Enabled)},
				{"stats.path", cfg.Stats.Path},
				{"stats.csv_path", cfg.Stats.CSVPath},
			}
			fmt.Fprintln(out, renderTable(
				[]tableColumn{{name: "Setting"}, {name: "Value"}},
				rows,
			))
			return nil
		},
	}
}
