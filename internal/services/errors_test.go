package services_test

import (
	"errors"
	"strings"
	"testing"

	"tvb/internal/services"
)

func TestWrapIncludesContextAndMarker(t *testing.T) {
	base := errors.New("exit status 1")
	err := services.Wrap(services.ErrAdvisory, "advisor", "inspect", "no command in output", base)
	if !errors.Is(err, services.ErrAdvisory) {
		t.Fatalf("expected advisory marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatal("expected wrapped base error")
	}
	msg := err.Error()
	for _, want := range []string{"advisor", "inspect", "no command in output"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing %q", msg, want)
		}
	}
}

func TestWrapWithoutBaseError(t *testing.T) {
	err := services.Wrap(services.ErrRewrite, "rewrite", "output flag", "not found", nil)
	if !errors.Is(err, services.ErrRewrite) {
		t.Fatalf("expected rewrite marker, got %v", err)
	}
}

func TestRunFatalClassification(t *testing.T) {
	cases := []struct {
		err   error
		fatal bool
	}{
		{services.Wrap(services.ErrInput, "batch", "discover", "no video files", nil), true},
		{services.Wrap(services.ErrConfiguration, "config", "load", "bad toml", nil), true},
		{services.Wrap(services.ErrAdvisory, "advisor", "inspect", "", nil), false},
		{services.Wrap(services.ErrRewrite, "rewrite", "", "", nil), false},
		{services.Wrap(services.ErrExecution, "encode", "", "", nil), false},
		{services.Wrap(services.ErrInspection, "inspect", "", "", nil), false},
	}
	for _, tc := range cases {
		if got := services.RunFatal(tc.err); got != tc.fatal {
			t.Fatalf("RunFatal(%v) = %v, want %v", tc.err, got, tc.fatal)
		}
	}
}
