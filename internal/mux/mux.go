package mux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"tvb/internal/media/ffprobe"
)

var commandContext = exec.CommandContext

// Client defines MKV toolnix behaviour.
type Client interface {
	// Merge remuxes input into an MKV container at output.
	Merge(ctx context.Context, inputPath, outputPath string) error
	// ApplySubtitleFlags writes track names and default/forced flags onto
	// an existing MKV file.
	ApplySubtitleFlags(ctx context.Context, path string, flags []SubtitleFlags) error
}

// SubtitleFlags carries the per-track values applied with mkvpropedit.
type SubtitleFlags struct {
	Title   string
	Default bool
	Forced  bool
}

// CLI wraps the mkvmerge and mkvpropedit binaries.
type CLI struct {
	mergeBinary    string
	propEditBinary string
}

// NewCLI constructs a client. Empty binaries fall back to the well-known
// names on PATH.
func NewCLI(mergeBinary, propEditBinary string) *CLI {
	if strings.TrimSpace(mergeBinary) == "" {
		mergeBinary = "mkvmerge"
	}
	if strings.TrimSpace(propEditBinary) == "" {
		propEditBinary = "mkvpropedit"
	}
	return &CLI{mergeBinary: mergeBinary, propEditBinary: propEditBinary}
}

// Merge runs mkvmerge -o output input and surfaces its stderr on failure.
func (c *CLI) Merge(ctx context.Context, inputPath, outputPath string) error {
	if strings.TrimSpace(inputPath) == "" || strings.TrimSpace(outputPath) == "" {
		return errors.New("merge requires input and output paths")
	}
	cmd := commandContext(ctx, c.mergeBinary, "-o", outputPath, inputPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("mkvmerge: %w: %s", err, detail)
		}
		return fmt.Errorf("mkvmerge: %w", err)
	}
	return nil
}

// ApplySubtitleFlags clears the container title and writes name, default,
// and forced flags for each subtitle track. Track numbering is 1-based in
// mkvpropedit's s-track selector.
func (c *CLI) ApplySubtitleFlags(ctx context.Context, path string, flags []SubtitleFlags) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("subtitle edit requires a path")
	}
	if len(flags) == 0 {
		return nil
	}

	args := []string{path, "--edit", "info", "--set", "title="}
	for i, track := range flags {
		args = append(args,
			"--edit", "track:s"+strconv.Itoa(i+1),
			"--set", "name="+track.Title,
			"--set", "flag-default="+boolFlag(track.Default),
			"--set", "flag-forced="+boolFlag(track.Forced),
		)
	}

	cmd := commandContext(ctx, c.propEditBinary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("mkvpropedit: %w: %s", err, detail)
		}
		return fmt.Errorf("mkvpropedit: %w", err)
	}
	return nil
}

// FlagsFromStreams extracts subtitle flags from probed streams, preserving
// container order.
func FlagsFromStreams(streams []ffprobe.Stream) []SubtitleFlags {
	var flags []SubtitleFlags
	for _, stream := range streams {
		if !strings.EqualFold(stream.CodecType, "subtitle") {
			continue
		}
		flags = append(flags, SubtitleFlags{
			Title:   stream.Tags["title"],
			Default: stream.Disposition["default"] != 0,
			Forced:  stream.Disposition["forced"] != 0,
		})
	}
	return flags
}

func boolFlag(value bool) string {
	if value {
		return "1"
	}
	return "0"
}

var _ Client = (*CLI)(nil)
