// Package power suspends the machine after a finished batch.
package power

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

var commandContext = exec.CommandContext

// Hibernate puts the machine to sleep using the platform facility. It
// returns an error on platforms without a known suspend command so the
// caller can log instead of silently doing nothing.
func Hibernate(ctx context.Context) error {
	argv := hibernateCommand(runtime.GOOS)
	if len(argv) == 0 {
		return fmt.Errorf("hibernate is not supported on %s", runtime.GOOS)
	}
	cmd := commandContext(ctx, argv[0], argv[1:]...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("hibernate: %w", err)
	}
	return nil
}

func hibernateCommand(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"pmset", "sleepnow"}
	case "linux":
		return []string{"systemctl", "suspend"}
	case "windows":
		return []string{"rundll32.exe", "powrprof.dll,SetSuspendState", "Hibernate"}
	default:
		return nil
	}
}
