package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeDefaults(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeLogging()
	if err := c.normalizeStats(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeDefaults() error {
	var err error
	c.Defaults.OutputDir = strings.TrimSpace(c.Defaults.OutputDir)
	if c.Defaults.OutputDir != "" {
		if c.Defaults.OutputDir, err = expandPath(c.Defaults.OutputDir); err != nil {
			return fmt.Errorf("default.output_dir: %w", err)
		}
	}
	if c.Defaults.CPULimitPercent == 0 {
		c.Defaults.CPULimitPercent = defaultCPULimitPct
	}
	c.Defaults.Localization = strings.TrimSpace(c.Defaults.Localization)
	if c.Defaults.Localization == "" {
		c.Defaults.Localization = defaultLocalization
	}
	return nil
}

func (c *Config) normalizeTools() {
	for _, paths := range []ToolPaths{
		c.Tools.Advisor,
		c.Tools.Prober,
		c.Tools.CPULimiter,
		c.Tools.Merger,
		c.Tools.PropEditor,
	} {
		for goos, value := range paths {
			paths[goos] = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = defaultLogDir
	}
	if expanded, err := expandPath(c.Logging.Dir); err == nil {
		c.Logging.Dir = expanded
	}
}

func (c *Config) normalizeStats() error {
	var err error
	if strings.TrimSpace(c.Stats.Path) == "" {
		c.Stats.Path = defaultStatsPath
	}
	if c.Stats.Path, err = expandPath(c.Stats.Path); err != nil {
		return fmt.Errorf("stats.path: %w", err)
	}
	if strings.TrimSpace(c.Stats.CSVPath) == "" {
		c.Stats.CSVPath = defaultStatsCSVPath
	}
	if c.Stats.CSVPath, err = expandPath(c.Stats.CSVPath); err != nil {
		return fmt.Errorf("stats.csv_path: %w", err)
	}
	return nil
}
