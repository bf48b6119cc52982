package advisor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"tvb/internal/shellwords"
)

var commandContext = exec.CommandContext

// encoderMarker identifies the line of advisory output that carries the
// low-level encoder invocation.
const encoderMarker = "HandBrakeCLI"

// Client defines advisory tool behaviour.
type Client interface {
	// Inspect runs the advisory tool in dry mode and returns the textual
	// encoder command it computed for the input.
	Inspect(ctx context.Context, inputPath string, params []string) (string, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithCommand overrides the advisory tool invocation. The value may carry
// leading interpreter tokens (for example "ruby /usr/local/bin/transcode-video.rb").
func WithCommand(argv []string) Option {
	return func(c *CLI) {
		if len(argv) > 0 {
			c.argv = append([]string(nil), argv...)
		}
	}
}

// CLI wraps the advisory command-line tool.
type CLI struct {
	argv []string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{argv: []string{"transcode-video"}}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Inspect spawns the advisory tool with --dry-run appended and scans its
// output for the encoder command line. A non-zero exit before the command
// is found, or output without a recognizable command, is an error.
func (c *CLI) Inspect(ctx context.Context, inputPath string, params []string) (string, error) {
	if strings.TrimSpace(inputPath) == "" {
		return "", errors.New("input path required")
	}

	args := append([]string(nil), c.argv[1:]...)
	args = append(args, params...)
	args = append(args, "--dry-run", inputPath)

	cmd := commandContext(ctx, c.argv[0], args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start advisory tool: %w", err)
	}

	captured := ""
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if captured == "" && strings.Contains(line, encoderMarker) {
			captured = line
		}
	}
	scanErr := scanner.Err()
	waitErr := cmd.Wait()

	if scanErr != nil {
		return "", fmt.Errorf("read advisory output: %w", scanErr)
	}
	if waitErr != nil && captured == "" {
		return "", fmt.Errorf("advisory tool failed: %w", waitErr)
	}
	if captured == "" {
		return "", errors.New("no encoder command in advisory output")
	}
	if err := validateCommand(captured); err != nil {
		return "", err
	}
	return captured, nil
}

// validateCommand rejects captured lines that do not parse as an encoder
// invocation, so garbage output fails here instead of at rewrite time.
func validateCommand(text string) error {
	tokens, err := shellwords.Split(text)
	if err != nil {
		return fmt.Errorf("unparseable encoder command: %w", err)
	}
	if len(tokens) == 0 || !strings.Contains(tokens[0], encoderMarker) {
		return fmt.Errorf("unrecognized encoder command %q", text)
	}
	return nil
}

var _ Client = (*CLI)(nil)
