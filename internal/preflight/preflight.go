package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"tvb/internal/config"
	"tvb/internal/tools"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Checks names what the upcoming batch will need. Input may be a single
// file or a directory.
type Checks struct {
	Input     string
	OutputDir string
	Merge     bool
}

// RunAll executes every applicable check for the given config and batch
// shape. Tool checks are gated by the features actually in use.
func RunAll(cfg *config.Config, checks Checks) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckInputReadable("Input", checks.Input))
	results = append(results, CheckDirectoryAccess("Output directory", checks.OutputDir))

	for _, status := range ToolStatuses(cfg, checks.Merge) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Command}
		if !status.Available {
			result.Detail = status.Detail
			if status.Optional {
				result.Passed = true
				result.Detail = status.Detail + " (optional)"
			}
		}
		results = append(results, result)
	}
	return results
}

// ToolStatuses evaluates the external binaries the batch shape requires.
func ToolStatuses(cfg *config.Config, merge bool) []tools.Status {
	var requirements []tools.Requirement
	if merge {
		requirements = append(requirements, tools.Requirement{
			Name:        "mkvmerge",
			Command:     tools.Merger,
			Override:    cfg.Tools.Merger.Configured(),
			Description: "Multiplexes inputs into MKV in merge mode",
		})
	} else {
		requirements = append(requirements,
			tools.Requirement{
				Name:        "transcode-video",
				Command:     tools.Advisor,
				Override:    cfg.Tools.Advisor.Configured(),
				Description: "Computes the encoder invocation",
			},
			tools.Requirement{
				Name:        "ffprobe",
				Command:     tools.Prober,
				Override:    cfg.Tools.Prober.Configured(),
				Description: "Inspects media streams",
			},
		)
		if cfg.Defaults.CPULimit {
			requirements = append(requirements, tools.Requirement{
				Name:        "cpulimit",
				Command:     tools.CPULimiter,
				Override:    cfg.Tools.CPULimiter.Configured(),
				Description: "Throttles the encoder",
			})
		}
		if cfg.Defaults.EditSubtitlesManually {
			requirements = append(requirements, tools.Requirement{
				Name:        "mkvpropedit",
				Command:     tools.PropEditor,
				Override:    cfg.Tools.PropEditor.Configured(),
				Description: "Applies subtitle flags to encoded outputs",
			})
		}
	}
	return tools.CheckBinaries(requirements)
}

// Failed filters results down to hard failures.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}

// CheckDirectoryAccess verifies the directory exists and is readable,
// writable, and traversable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckDirectoryReadable verifies the directory exists and can be listed.
func CheckDirectoryReadable(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.X_OK, "readable")
}

// CheckInputReadable accepts either a readable directory or a readable
// regular file.
func CheckInputReadable(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return CheckDirectoryReadable(name, path)
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", path)}
}

func checkDirectory(name, path string, mode uint32, okDetail string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}
