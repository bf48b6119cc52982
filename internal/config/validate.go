package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProfiles(); err != nil {
		return err
	}
	if err := c.validateDefaults(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateProfiles() error {
	if strings.TrimSpace(c.Profiles.Movie) == "" {
		return errors.New("profiles.movie must be set")
	}
	if strings.TrimSpace(c.Profiles.TVShow) == "" {
		return errors.New("profiles.tvshow must be set")
	}
	return nil
}

func (c *Config) validateDefaults() error {
	if c.Defaults.CPULimitPercent < 0 {
		return errors.New("default.cpulimit_percent must not be negative")
	}
	if _, err := language.Parse(c.Defaults.Localization); err != nil {
		return fmt.Errorf("default.localization %q is not a valid language tag: %w", c.Defaults.Localization, err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}
