package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInput marks missing or unreadable inputs, empty directories, and
	// invalid argument values. Fatal to the whole run.
	ErrInput = errors.New("input error")
	// ErrConfiguration marks malformed configuration or unresolvable tool
	// paths. Fatal to the whole run.
	ErrConfiguration = errors.New("configuration error")
	// ErrInspection marks media metadata extraction failures. The track
	// classifier degrades to "no immersive tracks" and records a warning.
	ErrInspection = errors.New("media inspection error")
	// ErrAdvisory marks advisory tool invocation failures. Fatal for the
	// single file only.
	ErrAdvisory = errors.New("advisory invocation error")
	// ErrRewrite marks command rewrite failures, including a missing output
	// flag in the captured command. Fatal for the single file only.
	ErrRewrite = errors.New("command rewrite error")
	// ErrExecution marks encoder process failures or interruption. Fatal
	// for the single file only.
	ErrExecution = errors.New("execution error")
)

// Wrap builds an error message that includes pipeline context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExecution
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// RunFatal reports whether an error must abort the whole batch rather than
// be recorded against a single file.
func RunFatal(err error) bool {
	return errors.Is(err, ErrInput) || errors.Is(err, ErrConfiguration)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
