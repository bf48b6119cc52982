package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tvb/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Profiles.Movie == "" || cfg.Profiles.TVShow == "" {
		t.Fatalf("expected default profiles, got %+v", cfg.Profiles)
	}
	if !cfg.Defaults.PreserveAtmosAudio {
		t.Fatal("expected atmos preservation on by default")
	}
	if cfg.Defaults.CPULimitPercent != 75 {
		t.Fatalf("unexpected cpulimit percent: %d", cfg.Defaults.CPULimitPercent)
	}
	wantLogDir := filepath.Join(tempHome, ".local", "share", "tvb", "logs")
	if cfg.Logging.Dir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Logging.Dir, wantLogDir)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
[profiles]
movie = "--mode quick"
preview = "--start-at duration:300 --stop-at duration:120"

[default]
output_dir = "~/encoded"
cpulimit = true
cpulimit_percent = 50
preserve_atmos_audio = false

[logging]
format = "json"
level = "debug"
`)

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected file %s to be consulted, got %s exists=%v", path, resolved, exists)
	}
	if cfg.Profiles.Movie != "--mode quick" {
		t.Fatalf("movie profile not applied: %q", cfg.Profiles.Movie)
	}
	if cfg.Profiles.TVShow == "" {
		t.Fatal("unset tvshow profile should keep its default")
	}
	if !cfg.Defaults.CPULimit || cfg.Defaults.CPULimitPercent != 50 {
		t.Fatalf("cpulimit settings not applied: %+v", cfg.Defaults)
	}
	if cfg.Defaults.PreserveAtmosAudio {
		t.Fatal("preserve_atmos_audio=false not applied")
	}
	if !filepath.IsAbs(cfg.Defaults.OutputDir) || strings.Contains(cfg.Defaults.OutputDir, "~") {
		t.Fatalf("output_dir not expanded: %q", cfg.Defaults.OutputDir)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging settings not applied: %+v", cfg.Logging)
	}
}

func TestLoadRejectsNegativeCPULimitPercent(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
[default]
cpulimit = true
cpulimit_percent = -5
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for negative cpulimit_percent")
	}
}

func TestLoadAcceptsCPULimitPercentAboveOneHundred(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
[default]
cpulimit = true
cpulimit_percent = 250
`)
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("multi-core percentages must be accepted: %v", err)
	}
	if cfg.Defaults.CPULimitPercent != 250 {
		t.Fatalf("unexpected cpulimit percent: %d", cfg.Defaults.CPULimitPercent)
	}
}

func TestLoadToolOverridesPerPlatform(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
[tools.advisor]
darwin = "/opt/homebrew/bin/transcode-video"
linux = " /usr/local/bin/transcode-video "
default = "/opt/video/transcode-video"

[tools.prober]
default = "/opt/video/ffprobe"
`)

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := cfg.Tools.Advisor.For("linux"); got != "/usr/local/bin/transcode-video" {
		t.Fatalf("linux override not applied: %q", got)
	}
	if got := cfg.Tools.Advisor.For("darwin"); got != "/opt/homebrew/bin/transcode-video" {
		t.Fatalf("darwin override not applied: %q", got)
	}
	if got := cfg.Tools.Advisor.For("windows"); got != "/opt/video/transcode-video" {
		t.Fatalf("unlisted platform must fall back to default: %q", got)
	}
	if got := cfg.Tools.Prober.For("linux"); got != "/opt/video/ffprobe" {
		t.Fatalf("prober default not applied: %q", got)
	}
	if got := cfg.Tools.Merger.Configured(); got != "" {
		t.Fatalf("unset tool must resolve empty, got %q", got)
	}
}

func TestLoadRejectsBadLocalization(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
[default]
localization = "not a tag"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for malformed localization tag")
	}
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
[logging]
level = "chatty"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for unknown log level")
	}
}

func TestLoadRejectsEmptyMovieProfile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
[profiles]
movie = "   "
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for blank movie profile")
	}
}

func TestProfileParams(t *testing.T) {
	cfg := config.Default()
	for _, format := range []string{"movie", "tvshow", "custom"} {
		if _, err := cfg.ProfileParams(format); err != nil {
			t.Fatalf("ProfileParams(%q) returned error: %v", format, err)
		}
	}
	if _, err := cfg.ProfileParams("preview"); err == nil {
		t.Fatal("expected error for preview format lookup")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Defaults.CPULimitPercent != 75 {
		t.Fatalf("sample diverges from defaults: %+v", cfg.Defaults)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/media")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "media") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}
