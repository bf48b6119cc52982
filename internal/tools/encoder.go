package tools

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CheckEncoderForAdvisor reports the encoder binary the advisory tool will
// execute.
//
// The advisory tool resolves its encoder by preferring a binary that sits
// next to its own executable and falling back to PATH. This helper mirrors
// that lookup so the status output names the binary that actually runs.
func CheckEncoderForAdvisor(advisorCommand string) Status {
	result := Status{
		Name:        Encoder,
		Description: "Executes the synthesized encoding commands",
	}

	advisorBinary := strings.TrimSpace(advisorCommand)
	if advisorBinary != "" {
		if resolved, err := exec.LookPath(advisorBinary); err == nil {
			candidate := filepath.Join(filepath.Dir(resolved), executableName(Encoder))
			if info, statErr := os.Stat(candidate); statErr == nil && isExecutable(info) {
				result.Command = candidate
				result.Available = true
				return result
			}
		}
	}

	if encoderPath, err := exec.LookPath(Encoder); err == nil {
		result.Command = encoderPath
		result.Available = true
		return result
	}

	result.Command = Encoder
	result.Detail = fmt.Sprintf("binary %q not found", Encoder)
	return result
}
