package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"tvb/internal/batch"
	"tvb/internal/config"
	"tvb/internal/fileutil"
	"tvb/internal/logging"
	"tvb/internal/mux"
	"tvb/internal/naming"
	"tvb/internal/power"
	"tvb/internal/preflight"
	"tvb/internal/services"
	"tvb/internal/stats"
	"tvb/internal/tools"

	advisorpkg "tvb/internal/advisor"
)

type batchOptions struct {
	configPath string
	input      string
	output     string
	format     string
	merge      bool
	hibernate  bool
	preview    bool
	dryRun     bool
	verbose    bool
	debug      bool
}

func runBatch(ctx context.Context, out io.Writer, opts batchOptions) error {
	cfg, _, _, err := config.Load(opts.configPath)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "config", "load", "", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "config", "directories", "", err)
	}

	var format naming.Format
	if opts.format != "" {
		parsed, ok := naming.ParseFormat(opts.format)
		if !ok {
			return services.Wrap(services.ErrInput, "cli", "format",
				fmt.Sprintf("invalid value %q (expected movie, tvshow, or custom)", opts.format), nil)
		}
		format = parsed
	}

	outputDir := strings.TrimSpace(opts.output)
	if outputDir == "" {
		outputDir = cfg.Defaults.OutputDir
	} else if outputDir, err = config.ExpandPath(outputDir); err != nil {
		return services.Wrap(services.ErrInput, "cli", "output", "", err)
	}
	if outputDir == "" {
		return services.Wrap(services.ErrConfiguration, "config", "output",
			"no output directory given and none configured", nil)
	}

	level := ""
	switch {
	case opts.debug:
		level = "debug"
	case opts.verbose:
		level = "info"
	}
	logger, err := logging.NewFromConfig(cfg, level)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "logging", "init", "", err)
	}
	runID := uuid.NewString()
	logger = logging.WithRun(logger, runID)
	logger.Info("tvb starting", logging.String("version", appVersion))

	lock, err := batch.AcquireLock(cfg.Logging.Dir)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "batch", "lock", "", err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release instance lock", logging.Error(err))
		}
	}()

	if !opts.dryRun {
		if err := fileutil.EnsureDir(outputDir); err != nil {
			return services.Wrap(services.ErrConfiguration, "batch", "prepare",
				"create output directory "+outputDir, err)
		}
		if failed := preflight.Failed(preflight.RunAll(cfg, preflight.Checks{
			Input:     opts.input,
			OutputDir: outputDir,
			Merge:     opts.merge,
		})); len(failed) > 0 {
			for _, result := range failed {
				logger.Error("preflight check failed",
					logging.String("check", result.Name),
					logging.String("detail", result.Detail))
			}
			return services.Wrap(services.ErrConfiguration, "preflight", failed[0].Name, failed[0].Detail, nil)
		}
	}

	deps, cleanup, err := buildDeps(cfg, logger, runID, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	driver := batch.NewDriver(cfg, logger, deps)
	results, runErr := driver.Run(ctx, batch.Request{
		Input:     opts.input,
		OutputDir: outputDir,
		Format:    format,
		Merge:     opts.merge,
		Preview:   opts.preview,
		DryRun:    opts.dryRun,
	})

	printResults(out, results, opts.dryRun)

	if opts.hibernate && !opts.dryRun && ctx.Err() == nil {
		logger.Info("hibernating after batch")
		if err := power.Hibernate(ctx); err != nil {
			logger.Warn("hibernate failed", logging.Error(err))
		}
	}

	if runErr != nil {
		return runErr
	}
	if summary := batch.Summarize(results); summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Total)
	}
	return nil
}

// buildDeps resolves the external binaries the batch shape needs and wires
// the process-spawning collaborators. Only the tools the run will actually
// use are required; the rest degrade with a warning.
func buildDeps(cfg *config.Config, logger *slog.Logger, runID string, opts batchOptions) (batch.Deps, func(), error) {
	deps := batch.Deps{RunID: runID}
	cleanup := func() {}

	if opts.merge {
		merger, err := tools.Resolve(tools.Merger, cfg.Tools.Merger.Configured())
		if err != nil {
			return deps, cleanup, services.Wrap(services.ErrConfiguration, "tools", "mkvmerge", "", err)
		}
		propEditor, _ := tools.Resolve(tools.PropEditor, cfg.Tools.PropEditor.Configured())
		deps.Mux = mux.NewCLI(merger, propEditor)
	} else {
		advisorBin, err := tools.Resolve(tools.Advisor, cfg.Tools.Advisor.Configured())
		if err != nil {
			return deps, cleanup, services.Wrap(services.ErrConfiguration, "tools", "transcode-video", "", err)
		}
		deps.Advisor = advisorpkg.NewCLI(advisorpkg.WithCommand([]string{advisorBin}))

		if cfg.Defaults.EditSubtitlesManually {
			propEditor, err := tools.Resolve(tools.PropEditor, cfg.Tools.PropEditor.Configured())
			if err != nil {
				logger.Warn("mkvpropedit not found, subtitle editing disabled", logging.Error(err))
			} else {
				merger, _ := tools.Resolve(tools.Merger, cfg.Tools.Merger.Configured())
				deps.Mux = mux.NewCLI(merger, propEditor)
			}
		}
	}

	if prober, err := tools.Resolve(tools.Prober, cfg.Tools.Prober.Configured()); err != nil {
		logger.Warn("ffprobe not found, media inspection will degrade", logging.Error(err))
	} else {
		deps.ProberBinary = prober
	}

	if cfg.Defaults.CPULimit {
		if limiter, err := tools.Resolve(tools.CPULimiter, cfg.Tools.CPULimiter.Configured()); err != nil {
			logger.Warn("cpulimit not found, running the encoder unthrottled", logging.Error(err))
			cfg.Defaults.CPULimit = false
		} else {
			deps.LimiterBinary = limiter
		}
	}

	if cfg.Stats.Enabled && !opts.dryRun {
		store, err := stats.Open(cfg.Stats.Path)
		if err != nil {
			logger.Warn("encode history disabled", logging.Error(err))
		} else {
			deps.Store = store
			cleanup = func() { _ = store.Close() }
		}
	}

	return deps, cleanup, nil
}
