package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Profiles holds the advisory tool parameter strings, one per naming
// format, plus the extra parameters appended in preview mode. Each value
// is a shell-style parameter string tokenized at use time.
type Profiles struct {
	Movie   string `toml:"movie"`
	TVShow  string `toml:"tvshow"`
	Custom  string `toml:"custom"`
	Preview string `toml:"preview"`
}

// Defaults holds the batch policy flags from the [default] section.
type Defaults struct {
	OutputDir             string `toml:"output_dir"`
	CPULimit              bool   `toml:"cpulimit"`
	CPULimitPercent       int    `toml:"cpulimit_percent"`
	Localization          string `toml:"localization"`
	EditSubtitlesManually bool   `toml:"edit_subtitles_manually"`
	PreserveFileDate      bool   `toml:"preserve_file_date"`
	PreserveAtmosAudio    bool   `toml:"preserve_atmos_audio"`
	Overwrite             bool   `toml:"overwrite"`
}

// ToolPaths maps a GOOS name to a binary path or name for one external
// tool. A "default" entry covers platforms without an exact match. The
// override is only consulted when the tool is absent from PATH and the
// well-known install locations.
type ToolPaths map[string]string

// For returns the override for the given platform, falling back to the
// "default" entry.
func (p ToolPaths) For(goos string) string {
	if value, ok := p[goos]; ok {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(p["default"])
}

// Configured returns the override for the running platform.
func (p ToolPaths) Configured() string {
	return p.For(runtime.GOOS)
}

// Tools holds per-platform overrides for the external binaries. Empty
// tables resolve to the well-known names on PATH.
type Tools struct {
	Advisor    ToolPaths `toml:"advisor"`
	Prober     ToolPaths `toml:"prober"`
	CPULimiter ToolPaths `toml:"cpulimiter"`
	Merger     ToolPaths `toml:"merger"`
	PropEditor ToolPaths `toml:"propeditor"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Stats contains configuration for the encode history store.
type Stats struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	CSVPath string `toml:"csv_path"`
}

// Config encapsulates all configuration values for tvb.
//
// Configuration sections by subsystem:
//   - Profiles: advisory tool parameters per naming format
//   - Defaults: output directory and batch policy flags
//   - Tools: external binary path overrides
//   - Logging: log format, level, and directory
//   - Stats: encode history store and CSV export
type Config struct {
	Profiles Profiles `toml:"profiles"`
	Defaults Defaults `toml:"default"`
	Tools    Tools    `toml:"tools"`
	Logging  Logging  `toml:"logging"`
	Stats    Stats    `toml:"stats"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/tvb/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second and third
// return values name the file that was consulted and whether it existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tvb.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// ProfileParams returns the advisory parameter string for a naming format
// name ("movie", "tvshow", "custom").
func (c *Config) ProfileParams(format string) (string, error) {
	switch format {
	case "movie":
		return c.Profiles.Movie, nil
	case "tvshow":
		return c.Profiles.TVShow, nil
	case "custom":
		return c.Profiles.Custom, nil
	default:
		return "", fmt.Errorf("no profile for format %q", format)
	}
}

// EnsureDirectories creates the directories batch operation needs.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Logging.Dir}
	if c.Stats.Enabled && strings.TrimSpace(c.Stats.Path) != "" {
		dirs = append(dirs, filepath.Dir(c.Stats.Path))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
