package batch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tvb/internal/advisor"
	"tvb/internal/config"
	"tvb/internal/encoding"
	"tvb/internal/fileutil"
	"tvb/internal/logging"
	"tvb/internal/media/audio"
	"tvb/internal/media/ffprobe"
	"tvb/internal/mux"
	"tvb/internal/naming"
	"tvb/internal/rewrite"
	"tvb/internal/services"
	"tvb/internal/shellwords"
	"tvb/internal/stats"
	"tvb/internal/tools"
)

// Runner executes a rewritten encoder command.
type Runner interface {
	Run(ctx context.Context, opts encoding.Options) error
}

// InspectFunc extracts stream metadata from a media file.
type InspectFunc func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Deps holds the external collaborators the driver calls. Nil fields fall
// back to the real process-spawning implementations; tests substitute fakes.
type Deps struct {
	Advisor advisor.Client
	Runner  Runner
	Mux     mux.Client
	// Store records encode history. Nil disables recording.
	Store *stats.Store
	// RunID tags history rows for this invocation.
	RunID   string
	Inspect InspectFunc
	// ProberBinary and LimiterBinary are the resolved ffprobe and cpulimit
	// paths. Empty values use the well-known names.
	ProberBinary  string
	LimiterBinary string
}

// Request describes one batch invocation.
type Request struct {
	Input     string
	OutputDir string
	// Format forces a profile for every file; empty means auto-detect
	// per filename.
	Format  naming.Format
	Merge   bool
	Preview bool
	DryRun  bool
}

// Driver sequences the pipeline over discovered files.
type Driver struct {
	cfg    *config.Config
	logger *slog.Logger
	deps   Deps
}

// NewDriver constructs a driver. A nil logger disables logging.
func NewDriver(cfg *config.Config, logger *slog.Logger, deps Deps) *Driver {
	if deps.Advisor == nil {
		deps.Advisor = advisor.NewCLI()
	}
	if deps.Runner == nil {
		deps.Runner = encoding.NewExecutor(logger)
	}
	if deps.Inspect == nil {
		deps.Inspect = ffprobe.Inspect
	}
	if deps.ProberBinary == "" {
		deps.ProberBinary = tools.Prober
	}
	if deps.LimiterBinary == "" {
		deps.LimiterBinary = tools.CPULimiter
	}
	return &Driver{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "batch"),
		deps:   deps,
	}
}

// Run discovers inputs and processes them in order. Per-file failures are
// recorded in the returned results and the batch continues; only input and
// configuration errors abort the run. On interruption the results gathered
// so far are returned together with an execution error.
func (d *Driver) Run(ctx context.Context, req Request) ([]EncodeResult, error) {
	if strings.TrimSpace(req.OutputDir) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "batch", "run", "no output directory configured", nil)
	}

	files, err := Discover(req.Input)
	if err != nil {
		return nil, err
	}

	d.logger.Info("batch started",
		logging.Int("files", len(files)),
		logging.String("output", req.OutputDir),
		logging.Bool("dry_run", req.DryRun),
		logging.Bool("merge", req.Merge))

	results := make([]EncodeResult, 0, len(files))
	for i, file := range files {
		if ctx.Err() != nil {
			return results, services.Wrap(services.ErrExecution, "batch", "run", "interrupted", ctx.Err())
		}

		result := d.processFile(ctx, req, file, i+1, len(files))
		d.record(ctx, &result)
		results = append(results, result)

		if services.RunFatal(result.Err) {
			return results, result.Err
		}
		if ctx.Err() != nil {
			return results, services.Wrap(services.ErrExecution, "batch", "run", "interrupted", ctx.Err())
		}
	}

	d.logger.Info("batch finished", logging.Int("files", len(results)))
	return results, nil
}

func (d *Driver) processFile(ctx context.Context, req Request, file MediaFile, position, total int) EncodeResult {
	result := EncodeResult{File: file, State: StateDiscovered, DryRun: req.DryRun}
	logger := d.logger.With(logging.String(logging.FieldFile, file.RelPath))
	logger.Info("processing file",
		logging.String("title", naming.DisplayTitle(file.Path)),
		logging.Int("position", position),
		logging.Int("total", total))

	outputPath := filepath.Join(req.OutputDir, file.RelPath)
	if req.Merge {
		outputPath = replaceExt(outputPath, ".mkv")
	}
	result.OutputPath = outputPath

	if fileutil.Exists(outputPath) && !d.cfg.Defaults.Overwrite {
		result.Skipped = true
		result.DryRun = false
		if d.cfg.Defaults.PreserveFileDate {
			if err := fileutil.PreserveModTime(file.Path, outputPath); err != nil {
				result.Warnings = append(result.Warnings, "preserve mtime: "+err.Error())
			}
		}
		logger.Info("output exists, skipping", logging.String("output", outputPath))
		return result
	}

	format := req.Format
	if format == "" {
		format = naming.Detect(filepath.Base(file.Path))
	}
	result.Format = format
	result.State = StateClassified
	logger.Debug("format classified", logging.String("format", string(format)))

	if req.Merge {
		return d.mergeFile(ctx, logger, result)
	}
	return d.encodeFile(ctx, req, logger, result)
}

func (d *Driver) encodeFile(ctx context.Context, req Request, logger *slog.Logger, result EncodeResult) EncodeResult {
	params, err := d.profileParams(result.Format)
	if err != nil {
		result.Err = err
		return result
	}

	positions, warning := d.classifyAudio(ctx, logger, result.File)
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}
	result.State = StateInspected

	commandText, err := d.deps.Advisor.Inspect(ctx, result.File.Path, params)
	if err != nil {
		result.Err = services.Wrap(services.ErrAdvisory, "advisor", "inspect", "", err)
		return result
	}
	logger.Debug("advisory command captured", logging.String("command", commandText))

	cmd, err := rewrite.Parse(commandText)
	if err != nil {
		result.Err = services.Wrap(services.ErrRewrite, "rewrite", "tokenize", "", err)
		return result
	}

	var previewParams []string
	if req.Preview {
		previewParams, err = shellwords.Split(d.cfg.Profiles.Preview)
		if err != nil {
			result.Err = services.Wrap(services.ErrConfiguration, "config", "profile", "tokenize preview", err)
			return result
		}
	}

	warnings, err := rewrite.Rewrite(cmd, rewrite.Options{
		OutputPath:         result.OutputPath,
		ImmersivePositions: positions,
		PreviewParams:      previewParams,
	})
	if err != nil {
		result.Err = services.Wrap(services.ErrRewrite, "rewrite", "output flag", "", err)
		return result
	}
	result.Warnings = append(result.Warnings, warnings...)
	result.Command = cmd.Render()
	result.State = StateCommandBuilt
	logger.Info("encoder command rewritten", logging.String("command", result.Command))

	if result.DryRun {
		result.State = StateDryRunReported
		return result
	}

	if err := fileutil.EnsureDir(filepath.Dir(result.OutputPath)); err != nil {
		result.Err = services.Wrap(services.ErrExecution, "encode", "prepare", "create output directory", err)
		return result
	}

	start := time.Now()
	runErr := d.deps.Runner.Run(ctx, encoding.Options{
		Tokens:     cmd.Tokens,
		OutputPath: result.OutputPath,
		Limit: encoding.Limit{
			Enabled: d.cfg.Defaults.CPULimit,
			Percent: d.cfg.Defaults.CPULimitPercent,
			Binary:  d.deps.LimiterBinary,
		},
	})
	result.Elapsed = time.Since(start)
	if runErr != nil {
		message := ""
		if ctx.Err() != nil {
			message = "interrupted"
		}
		result.Err = services.Wrap(services.ErrExecution, "encode", "run", message, runErr)
		return result
	}
	result.State = StateExecuted

	d.editSubtitles(ctx, logger, &result)
	d.finishOutput(logger, &result)
	return result
}

func (d *Driver) mergeFile(ctx context.Context, logger *slog.Logger, result EncodeResult) EncodeResult {
	if d.deps.Mux == nil {
		result.Err = services.Wrap(services.ErrConfiguration, "merge", "mkvmerge", "merge client not configured", nil)
		return result
	}

	result.Command = shellwords.Join([]string{tools.Merger, "-o", result.OutputPath, result.File.Path})
	result.State = StateCommandBuilt
	logger.Info("merge command built", logging.String("command", result.Command))

	if result.DryRun {
		result.State = StateDryRunReported
		return result
	}

	if err := fileutil.EnsureDir(filepath.Dir(result.OutputPath)); err != nil {
		result.Err = services.Wrap(services.ErrExecution, "merge", "prepare", "create output directory", err)
		return result
	}

	start := time.Now()
	if err := d.deps.Mux.Merge(ctx, result.File.Path, result.OutputPath); err != nil {
		result.Elapsed = time.Since(start)
		result.Err = services.Wrap(services.ErrExecution, "merge", "mkvmerge", "", err)
		return result
	}
	result.Elapsed = time.Since(start)
	result.State = StateExecuted

	d.finishOutput(logger, &result)
	return result
}

func (d *Driver) profileParams(format naming.Format) ([]string, error) {
	raw, err := d.cfg.ProfileParams(string(format))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "config", "profile", string(format), err)
	}
	params, err := shellwords.Split(raw)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "config", "profile", "tokenize "+string(format), err)
	}
	return params, nil
}

// classifyAudio inspects the input and returns the 1-based positions of
// immersive audio tracks to pass through untouched. Inspection failures
// degrade to no immersive tracks with a warning rather than failing the
// file. When preservation is disabled the presence of immersive audio is
// logged but no positions are returned.
func (d *Driver) classifyAudio(ctx context.Context, logger *slog.Logger, file MediaFile) ([]int, string) {
	probe, err := d.deps.Inspect(ctx, d.deps.ProberBinary, file.Path)
	if err != nil {
		logger.Warn("media inspection failed, assuming no immersive tracks", logging.Error(err))
		return nil, "media inspection failed: " + err.Error()
	}

	tracks := audio.Classify(probe.AudioStreams(), true)
	if !audio.HasImmersive(tracks) {
		return nil, ""
	}
	positions := audio.ImmersivePositions(tracks)
	if !d.cfg.Defaults.PreserveAtmosAudio {
		logger.Info("immersive audio present but preservation is disabled",
			logging.Int("tracks", len(positions)))
		return nil, ""
	}
	logger.Info("immersive audio tracks will be copied verbatim",
		logging.Any("positions", positions))
	return positions, ""
}

func (d *Driver) editSubtitles(ctx context.Context, logger *slog.Logger, result *EncodeResult) {
	if !d.cfg.Defaults.EditSubtitlesManually || d.deps.Mux == nil {
		return
	}
	// Subtitle metadata comes from the source; the flags are written to
	// the encoded output.
	probe, err := d.deps.Inspect(ctx, d.deps.ProberBinary, result.File.Path)
	if err != nil {
		result.Warnings = append(result.Warnings, "subtitle inspection: "+err.Error())
		return
	}
	flags := mux.FlagsFromStreams(probe.Streams)
	if len(flags) == 0 {
		logger.Debug("no subtitle tracks to edit")
		return
	}
	if err := d.deps.Mux.ApplySubtitleFlags(ctx, result.OutputPath, flags); err != nil {
		result.Warnings = append(result.Warnings, "subtitle flags: "+err.Error())
		return
	}
	logger.Info("subtitle flags applied", logging.Int("tracks", len(flags)))
}

// finishOutput stats the produced file and applies the mtime policy.
func (d *Driver) finishOutput(logger *slog.Logger, result *EncodeResult) {
	if info, err := os.Stat(result.OutputPath); err == nil {
		result.NewSize = info.Size()
	}
	if d.cfg.Defaults.PreserveFileDate {
		if err := fileutil.PreserveModTime(result.File.Path, result.OutputPath); err != nil {
			result.Warnings = append(result.Warnings, "preserve mtime: "+err.Error())
		}
	}
	logger.Info("file completed",
		logging.String("original_size", fileutil.FormatSize(result.File.Size)),
		logging.String("new_size", fileutil.FormatSize(result.NewSize)),
		logging.Duration("elapsed", result.Elapsed))
}

// record persists the outcome to the stats store when an execution was
// attempted, then moves the file to its terminal state. Store failures are
// logged, never fatal.
func (d *Driver) record(ctx context.Context, result *EncodeResult) {
	defer func() { result.State = StateRecorded }()

	if d.deps.Store == nil || result.Skipped || result.DryRun {
		return
	}
	if result.State != StateExecuted && result.Err == nil {
		return
	}
	_, err := d.deps.Store.Add(ctx, stats.Result{
		RunID:          d.deps.RunID,
		Filename:       result.File.RelPath,
		OriginalSize:   result.File.Size,
		NewSize:        result.NewSize,
		ElapsedSeconds: result.Elapsed.Seconds(),
		Command:        result.Command,
		Success:        result.Err == nil,
	})
	if err != nil {
		d.logger.Warn("failed to record encode history",
			logging.String(logging.FieldFile, result.File.RelPath),
			logging.Error(err))
	}
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
