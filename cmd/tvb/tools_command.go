package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tvb/internal/config"
	"tvb/internal/tools"
)

func newToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Check external tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFlag, _ := cmd.Flags().GetString("config")
			cfg, _, _, err := config.Load(configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			statuses := tools.CheckBinaries(toolRequirements(cfg))
			advisorBin, _ := tools.Resolve(tools.Advisor, cfg.Tools.Advisor.Configured())
			statuses = append(statuses, tools.CheckEncoderForAdvisor(advisorBin))
			rows := make([][]string, 0, len(statuses))
			missingRequired := 0
			for _, status := range statuses {
				state := "found"
				detail := status.Command
				if !status.Available {
					state = "missing"
					detail = status.Detail
					if !status.Optional {
						missingRequired++
					}
				}
				rows = append(rows, []string{status.Name, state, detail, status.Description})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]tableColumn{{name: "Tool"}, {name: "Status"}, {name: "Path"}, {name: "Purpose"}},
				rows,
			))

			if missingRequired > 0 {
				return fmt.Errorf("%d required tool(s) missing", missingRequired)
			}
			return nil
		},
	}
}

func toolRequirements(cfg *config.Config) []tools.Requirement {
	return []tools.Requirement{
		{
			Name:        tools.Advisor,
			Command:     tools.Advisor,
			Override:    cfg.Tools.Advisor.Configured(),
			Description: "Computes the HandBrakeCLI invocation per file",
		},
		{
			Name:        tools.Prober,
			Command:     tools.Prober,
			Override:    cfg.Tools.Prober.Configured(),
			Description: "Extracts stream metadata for audio classification",
			Optional:    true,
		},
		{
			Name:        tools.CPULimiter,
			Command:     tools.CPULimiter,
			Override:    cfg.Tools.CPULimiter.Configured(),
			Description: "Throttles encoder CPU usage when enabled",
			Optional:    !cfg.Defaults.CPULimit,
		},
		{
			Name:        tools.Merger,
			Command:     tools.Merger,
			Override:    cfg.Tools.Merger.Configured(),
			Description: "Multiplexes inputs into MKV in merge mode",
			Optional:    true,
		},
		{
			Name:        tools.PropEditor,
			Command:     tools.PropEditor,
			Override:    cfg.Tools.PropEditor.Configured(),
			Description: "Applies subtitle names and flags after encoding",
			Optional:    !cfg.Defaults.EditSubtitlesManually,
		},
	}
}
