package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tvb/internal/config"
	"tvb/internal/fileutil"
	"tvb/internal/stats"
)

func newStatsCommand() *cobra.Command {
	var limit int

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show encode history",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStatsStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			results, err := store.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list encode history: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No encodes recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(results))
			for _, result := range results {
				status := "ok"
				if !result.Success {
					status = "failed"
				}
				rows = append(rows, []string{
					result.RecordedAt.Local().Format("2006-01-02 15:04"),
					result.Filename,
					fileutil.FormatSize(result.OriginalSize),
					fileutil.FormatSize(result.NewSize),
					fmt.Sprintf("%.1f%%", result.Ratio*100),
					(time.Duration(result.ElapsedSeconds) * time.Second).String(),
					status,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]tableColumn{
					{name: "Date"},
					{name: "File"},
					{name: "Original", alignRight: true},
					{name: "New", alignRight: true},
					{name: "Ratio", alignRight: true},
					{name: "Time", alignRight: true},
					{name: "Status"},
				},
				rows,
			))

			summary, err := store.Summarize(cmd.Context())
			if err != nil {
				return fmt.Errorf("summarize encode history: %w", err)
			}
			fmt.Fprintf(out, "%d encodes, %d failed, %s -> %s total\n",
				summary.Total, summary.Failed,
				fileutil.FormatSize(summary.OriginalBytes),
				fileutil.FormatSize(summary.NewBytes))
			return nil
		},
	}
	statsCmd.Flags().IntVarP(&limit, "limit", "n", 25, "Maximum number of rows to show")

	statsCmd.AddCommand(newStatsExportCommand())
	return statsCmd
}

func newStatsExportCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export encode history to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFlag, _ := cmd.Flags().GetString("config")
			cfg, _, _, err := config.Load(configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			target := strings.TrimSpace(targetPath)
			if target == "" {
				target = cfg.Stats.CSVPath
			}

			store, err := stats.Open(cfg.Stats.Path)
			if err != nil {
				return fmt.Errorf("open stats store: %w", err)
			}
			defer store.Close() //nolint:errcheck

			count, err := store.ExportCSV(cmd.Context(), target)
			if err != nil {
				return fmt.Errorf("export CSV: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", count, target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination CSV file (default from config)")
	return cmd
}

func openStatsStore(cmd *cobra.Command) (*stats.Store, error) {
	configFlag, _ := cmd.Flags().GetString("config")
	cfg, _, _, err := config.Load(configFlag)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	store, err := stats.Open(cfg.Stats.Path)
	if err != nil {
		return nil, fmt.Errorf("open stats store: %w", err)
	}
	return store, nil
}
