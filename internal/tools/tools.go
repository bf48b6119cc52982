// Package tools resolves and verifies the external binaries the pipeline
// drives: the advisory tool, the encoder, probers, and the optional
// muxing and throttling helpers.
package tools

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Well-known tool names. Configuration may override any of them with an
// absolute path or an alternative binary name.
const (
	Advisor     = "transcode-video"
	Encoder     = "HandBrakeCLI"
	Prober      = "ffprobe"
	CPULimiter  = "cpulimit"
	Merger      = "mkvmerge"
	PropEditor  = "mkvpropedit"
)

// Requirement defines an external binary the pipeline relies on. Override
// carries the configured per-platform path, consulted only when the command
// cannot be found on PATH or in the well-known install locations.
type Requirement struct {
	Name        string
	Command     string
	Override    string
	Description string
	Optional    bool
}

// Status reports the availability of one requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Resolve locates a tool binary. The name is looked up on PATH first, then
// in a short list of install locations PATH often misses, and only then does
// the configured override serve as a fallback.
func Resolve(name, configured string) (string, error) {
	name = strings.TrimSpace(name)
	if resolved, err := exec.LookPath(name); err == nil {
		return resolved, nil
	}
	for _, dir := range wellKnownDirs() {
		candidate := filepath.Join(dir, executableName(name))
		if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
			return candidate, nil
		}
	}
	if configured = strings.TrimSpace(configured); configured != "" {
		if filepath.IsAbs(configured) {
			info, err := os.Stat(configured)
			if err != nil {
				return "", fmt.Errorf("configured tool %q: %w", configured, err)
			}
			if !isExecutable(info) {
				return "", fmt.Errorf("configured tool %q is not executable", configured)
			}
			return configured, nil
		}
		if resolved, err := exec.LookPath(configured); err == nil {
			return resolved, nil
		}
	}
	return "", fmt.Errorf("binary %q not found", name)
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := Resolve(cmd, req.Override)
		if err != nil {
			status.Detail = err.Error()
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}

func wellKnownDirs() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"/opt/homebrew/bin", "/usr/local/bin"}
	case "windows":
		return nil
	default:
		return []string{"/usr/local/bin", "/usr/bin", "/opt/bin"}
	}
}

func executableName(base string) string {
	if runtime.GOOS == "windows" && filepath.Ext(base) == "" {
		return base + ".exe"
	}
	return base
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
