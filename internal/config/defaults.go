package config

const (
	defaultMovieProfile   = "--no-auto-burn --audio-width=all"
	defaultTVShowProfile  = "--no-auto-burn --audio-width=all"
	defaultCustomProfile  = ""
	defaultPreviewParams  = "--chapters 1"
	defaultCPULimitPct    = 75
	defaultLocalization   = "en-US"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultLogDir         = "~/.local/share/tvb/logs"
	defaultStatsPath      = "~/.local/share/tvb/stats.db"
	defaultStatsCSVPath   = "~/.local/share/tvb/stats.csv"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Profiles: Profiles{
			Movie:   defaultMovieProfile,
			TVShow:  defaultTVShowProfile,
			Custom:  defaultCustomProfile,
			Preview: defaultPreviewParams,
		},
		Defaults: Defaults{
			CPULimitPercent:    defaultCPULimitPct,
			Localization:       defaultLocalization,
			PreserveAtmosAudio: true,
			PreserveFileDate:   true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
		Stats: Stats{
			Enabled: true,
			Path:    defaultStatsPath,
			CSVPath: defaultStatsCSVPath,
		},
	}
}
