package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tvb/internal/services"
)

func newRootCommand() *cobra.Command {
	var (
		input      = &onceValue{name: "input"}
		output     = &onceValue{name: "output"}
		formatFlag string
		configFlag string
		merge      bool
		hibernate  bool
		preview    bool
		dryRun     bool
		verbose    bool
		debug      bool
		version    bool
	)

	rootCmd := &cobra.Command{
		Use:           "tvb",
		Short:         "Batch-transcode video files with transcode-video and HandBrakeCLI",
		Long: `tvb batch-transcodes video files by asking transcode-video for an
optimal HandBrakeCLI invocation per file, rewriting that command for the
local output layout and audio policy, and executing it. Inputs are a
single file or a directory tree; outputs mirror the input structure.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if version {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			if input.value == "" {
				return services.Wrap(services.ErrInput, "cli", "flags", "-i/--input is required", nil)
			}
			return runBatch(cmd.Context(), cmd.OutOrStdout(), batchOptions{
				configPath: configFlag,
				input:      input.value,
				output:     output.value,
				format:     formatFlag,
				merge:      merge,
				hibernate:  hibernate,
				preview:    preview,
				dryRun:     dryRun,
				verbose:    verbose,
				debug:      debug,
			})
		},
	}

	flags := rootCmd.Flags()
	flags.VarP(input, "input", "i", "Input file or directory (subfolders included)")
	flags.VarP(output, "output", "o", "Output directory (default from config)")
	flags.StringVarP(&formatFlag, "format", "f", "", "Force profile for all files: movie, tvshow, or custom")
	flags.BoolVarP(&merge, "merge", "m", false, "Multiplex inputs into MKV with mkvmerge instead of transcoding")
	flags.BoolVarP(&hibernate, "hibernate", "H", false, "Hibernate the computer when the batch finishes")
	flags.BoolVarP(&preview, "preview", "P", false, "Append the preview profile parameters to each encode")
	flags.BoolVarP(&dryRun, "dry-run", "d", false, "Show the rewritten encoder commands without executing them")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Show detailed progress information")
	flags.BoolVar(&debug, "debug", false, "Show full technical logs")
	flags.BoolVar(&version, "version", false, "Print the version and exit")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newStatsCommand())
	rootCmd.AddCommand(newToolsCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func printVersion(out io.Writer) {
	fmt.Fprintf(out, "tvb %s\n", appVersion)
}
