// Package advisor invokes the external advisory transcoding tool in
// inspection mode and captures the low-level encoder command it would run.
// The advisory tool's execution path is never used for the actual encode;
// the captured command is rewritten and executed separately.
//
// Tests swap in a fake Client so pipeline behaviour can be exercised
// without spawning real processes.
package advisor
