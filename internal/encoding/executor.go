package encoding

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"tvb/internal/logging"
	"tvb/internal/process"
)

var commandContext = exec.CommandContext

// Limit describes the optional cpulimit wrapper applied to the encoder.
type Limit struct {
	Enabled bool
	Percent int
	Binary  string
}

// Options control one encoder execution.
type Options struct {
	// Tokens is the rewritten encoder invocation, executable first.
	Tokens []string
	// OutputPath is removed when the run fails, so aborted encodes never
	// leave a partial file that a later batch would skip over.
	OutputPath string
	Limit      Limit
	// OnProgress receives parsed progress events. May be nil.
	OnProgress func(Progress)
}

// Executor runs encoder commands and reports progress.
type Executor struct {
	logger  *slog.Logger
	sampler *process.Sampler
}

// NewExecutor constructs an executor. A nil logger disables logging.
func NewExecutor(logger *slog.Logger) *Executor {
	return &Executor{
		logger:  logging.NewComponentLogger(logger, "encoder"),
		sampler: &process.Sampler{},
	}
}

// Run executes the encoder command and blocks until it finishes. Context
// cancellation kills the process; in that case (and on any failure) the
// partial output is removed and the context or exec error is returned.
func (e *Executor) Run(ctx context.Context, opts Options) error {
	if len(opts.Tokens) == 0 {
		return errors.New("empty encoder command")
	}

	argv := wrapWithLimit(opts.Tokens, opts.Limit)
	cmd := commandContext(ctx, argv[0], argv[1:]...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start encoder: %w", err)
	}
	if cmd.Process != nil {
		if attachErr := e.sampler.Attach(cmd.Process.Pid); attachErr != nil {
			e.logger.Debug("process sampler unavailable", logging.Error(attachErr))
		}
		defer e.sampler.Release()
	}

	sampleGate := logging.NewProgressSampler(10)
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanProgressLines)
	for scanner.Scan() {
		line := scanner.Text()
		progress, ok := ParseProgress(line)
		if !ok {
			continue
		}
		if opts.OnProgress != nil {
			opts.OnProgress(progress)
		}
		if sampleGate.ShouldLog(progress.Percent, "encoding") {
			usage := e.sampler.Sample()
			attrs := []logging.Attr{
				logging.Float64("percent", progress.Percent),
				logging.Float64("cpu_percent", usage.CPUPercent),
				logging.Int64("rss_bytes", int64(usage.RSSBytes)),
			}
			if progress.HasDetail {
				attrs = append(attrs,
					logging.Float64("avg_fps", progress.AvgFPS),
					logging.Duration("eta", progress.ETA))
			}
			e.logger.Debug("encode progress", logging.Args(attrs...)...)
		}
	}
	scanErr := scanner.Err()
	waitErr := cmd.Wait()

	if waitErr != nil || ctx.Err() != nil || scanErr != nil {
		e.removePartialOutput(opts.OutputPath)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if waitErr != nil {
		return fmt.Errorf("encoder failed: %w", waitErr)
	}
	if scanErr != nil {
		return fmt.Errorf("read encoder output: %w", scanErr)
	}
	return nil
}

func (e *Executor) removePartialOutput(path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		e.logger.Warn("could not remove partial output", logging.String(logging.FieldFile, path), logging.Error(err))
	}
}

// wrapWithLimit prefixes the invocation with cpulimit when enabled. The -z
// flag makes cpulimit exit with its child, and -i includes child processes
// in the throttle.
func wrapWithLimit(tokens []string, limit Limit) []string {
	if !limit.Enabled {
		return tokens
	}
	binary := limit.Binary
	if strings.TrimSpace(binary) == "" {
		binary = "cpulimit"
	}
	prefix := []string{binary, "--limit=" + strconv.Itoa(limit.Percent), "-i", "-z"}
	return append(prefix, tokens...)
}

// scanProgressLines splits on both newline and carriage return, since the
// encoder redraws its progress line with bare CRs.
func scanProgressLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
