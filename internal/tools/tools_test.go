package tools

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeStub(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

func TestResolveFromPath(t *testing.T) {
	tmp := t.TempDir()
	writeStub(t, filepath.Join(tmp, "mkvmerge"))
	t.Setenv("PATH", tmp)

	resolved, err := Resolve(Merger, "")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved != filepath.Join(tmp, "mkvmerge") {
		t.Fatalf("unexpected resolution: %q", resolved)
	}
}

func TestResolvePathWinsOverConfigured(t *testing.T) {
	binDir := t.TempDir()
	onPath := filepath.Join(binDir, "mkvmerge")
	writeStub(t, onPath)
	t.Setenv("PATH", binDir)

	configured := filepath.Join(t.TempDir(), "mkvmerge")
	writeStub(t, configured)

	resolved, err := Resolve(Merger, configured)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved != onPath {
		t.Fatalf("PATH lookup must win, got %q want %q", resolved, onPath)
	}
}

func TestResolveConfiguredFallback(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	configured := filepath.Join(t.TempDir(), "clearly-not-present-binary")
	writeStub(t, configured)

	resolved, err := Resolve("clearly-not-present-binary", configured)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved != configured {
		t.Fatalf("expected configured fallback %q, got %q", configured, resolved)
	}
}

func TestResolveConfiguredFallbackMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	configured := filepath.Join(t.TempDir(), "absent")
	if _, err := Resolve("clearly-not-present-binary", configured); err == nil {
		t.Fatal("expected error for missing configured binary")
	}
}

func TestResolveNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if _, err := Resolve("clearly-not-present-binary", ""); err == nil {
		t.Fatal("expected error for unresolvable binary")
	}
}

func TestCheckBinaries(t *testing.T) {
	tmp := t.TempDir()
	present := filepath.Join(tmp, "present")
	writeStub(t, present)
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: "", Optional: true},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected status for unset requirement: %#v", results[2])
	}
}

func TestCheckEncoderForAdvisorSidecar(t *testing.T) {
	tmp := t.TempDir()
	advisorPath := filepath.Join(tmp, executableName("transcode-video"))
	encoderPath := filepath.Join(tmp, executableName("HandBrakeCLI"))
	writeStub(t, advisorPath)
	writeStub(t, encoderPath)

	status := CheckEncoderForAdvisor(advisorPath)
	if !status.Available {
		t.Fatalf("expected sidecar encoder to be available, got detail %q", status.Detail)
	}
	if status.Command != encoderPath {
		t.Fatalf("expected encoder command %q, got %q", encoderPath, status.Command)
	}
}

func TestCheckEncoderForAdvisorPathFallback(t *testing.T) {
	tmp := t.TempDir()
	advisorPath := filepath.Join(tmp, executableName("transcode-video"))
	writeStub(t, advisorPath)

	binDir := filepath.Join(tmp, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	encoderPath := filepath.Join(binDir, executableName("HandBrakeCLI"))
	writeStub(t, encoderPath)
	t.Setenv("PATH", binDir)

	status := CheckEncoderForAdvisor(advisorPath)
	if !status.Available {
		t.Fatalf("expected encoder fallback to be available, got detail %q", status.Detail)
	}
	if status.Command != encoderPath {
		t.Fatalf("expected encoder command %q, got %q", encoderPath, status.Command)
	}
}

func TestCheckEncoderForAdvisorNotFound(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("empty PATH semantics differ on windows")
	}
	t.Setenv("PATH", "")
	status := CheckEncoderForAdvisor(filepath.Join(t.TempDir(), "transcode-video"))
	if status.Available {
		t.Fatal("expected encoder resolution to fail")
	}
	if status.Detail == "" {
		t.Fatal("expected detail message when the encoder is unavailable")
	}
}
