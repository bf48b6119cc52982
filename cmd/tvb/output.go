package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"tvb/internal/batch"
	"tvb/internal/fileutil"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// printResults renders the per-file outcome and a closing summary. In dry
// run mode the rewritten commands themselves are the payload, so they are
// printed in full instead of the table.
func printResults(out io.Writer, results []batch.EncodeResult, dryRun bool) {
	if len(results) == 0 {
		return
	}

	if dryRun {
		for _, result := range results {
			fmt.Fprintf(out, "# %s\n", result.File.RelPath)
			if result.Err != nil {
				fmt.Fprintf(out, "#   error: %v\n", result.Err)
				continue
			}
			if result.Skipped {
				fmt.Fprintln(out, "#   output exists, would skip")
				continue
			}
			fmt.Fprintln(out, result.Command)
		}
		fmt.Fprintln(out)
	}

	colorize := shouldColorize(out)
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		rows = append(rows, []string{
			result.File.RelPath,
			string(result.Format),
			renderStatus(result, colorize),
			fileutil.FormatSize(result.File.Size),
			renderNewSize(result),
			renderElapsed(result.Elapsed),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]tableColumn{
			{name: "File"},
			{name: "Format"},
			{name: "Status"},
			{name: "Original", alignRight: true},
			{name: "New", alignRight: true},
			{name: "Time", alignRight: true},
		},
		rows,
	))

	summary := batch.Summarize(results)
	parts := []string{fmt.Sprintf("%d processed", summary.Total)}
	if summary.Succeeded > 0 {
		parts = append(parts, fmt.Sprintf("%d encoded", summary.Succeeded))
	}
	if summary.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", summary.Skipped))
	}
	if summary.DryRun > 0 {
		parts = append(parts, fmt.Sprintf("%d dry-run", summary.DryRun))
	}
	if summary.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", summary.Failed))
	}
	fmt.Fprintln(out, strings.Join(parts, ", "))
	if summary.OriginalBytes > 0 && summary.NewBytes > 0 {
		fmt.Fprintf(out, "Size: %s -> %s (%.1f%%)\n",
			fileutil.FormatSize(summary.OriginalBytes),
			fileutil.FormatSize(summary.NewBytes),
			100*float64(summary.NewBytes)/float64(summary.OriginalBytes))
	}
}

func renderStatus(result batch.EncodeResult, colorize bool) string {
	switch {
	case result.Err != nil:
		return colored("failed", ansiRed, colorize)
	case result.Skipped:
		return colored("skipped", ansiYellow, colorize)
	case result.DryRun:
		return "dry-run"
	default:
		return colored("encoded", ansiGreen, colorize)
	}
}

func renderNewSize(result batch.EncodeResult) string {
	if result.NewSize == 0 {
		return "-"
	}
	return fileutil.FormatSize(result.NewSize)
}

func renderElapsed(elapsed time.Duration) string {
	if elapsed == 0 {
		return "-"
	}
	return elapsed.Round(time.Second).String()
}

func colored(text, color string, colorize bool) string {
	if !colorize {
		return text
	}
	return color + text + ansiReset
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
