package batch

import (
	"time"

	"tvb/internal/naming"
)

// MediaFile is one discovered input. RelPath is the path relative to the
// discovery root and determines where the output lands under the output
// directory, so nested input folders are mirrored on the output side.
type MediaFile struct {
	Path    string
	RelPath string
	Size    int64
	ModTime time.Time
	Ext     string
}

// State tracks how far a file progressed through the pipeline.
type State string

const (
	StateDiscovered     State = "discovered"
	StateClassified     State = "classified"
	StateInspected      State = "inspected"
	StateCommandBuilt   State = "command_built"
	StateDryRunReported State = "dry_run_reported"
	StateExecuted       State = "executed"
	StateRecorded       State = "recorded"
)

// EncodeResult is the outcome for one file. Results are appended in
// discovery order and never mutated afterwards.
type EncodeResult struct {
	File       MediaFile
	Format     naming.Format
	State      State
	OutputPath string
	// Command is the final encoder invocation after rewriting, rendered
	// with minimal quoting. Empty when the file was skipped or failed
	// before a command was built.
	Command  string
	Skipped  bool
	DryRun   bool
	Warnings []string
	Err      error
	NewSize  int64
	Elapsed  time.Duration
}

// Success reports whether the file completed without error. Skipped files
// count as successful: the expected output already exists.
func (r EncodeResult) Success() bool {
	return r.Err == nil
}

// Summary aggregates a finished batch for display.
type Summary struct {
	Total         int
	Succeeded     int
	Failed        int
	Skipped       int
	DryRun        int
	OriginalBytes int64
	NewBytes      int64
	Elapsed       time.Duration
}

// Summarize folds results into a Summary. Size totals only count files
// that actually produced an output.
func Summarize(results []EncodeResult) Summary {
	summary := Summary{Total: len(results)}
	for _, result := range results {
		summary.Elapsed += result.Elapsed
		switch {
		case result.Err != nil:
			summary.Failed++
		case result.Skipped:
			summary.Skipped++
		case result.DryRun:
			summary.DryRun++
		default:
			summary.Succeeded++
			summary.OriginalBytes += result.File.Size
			summary.NewBytes += result.NewSize
		}
	}
	return summary
}
