package rewrite

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultEncoder = "av_aac"
	defaultMixdown = "5point1"

	copyEncoder = "copy"
	noneMixdown = "none"
)

// Options control the rewrite applied to a captured encoder command.
type Options struct {
	// OutputPath replaces the value of the output flag.
	OutputPath string
	// ImmersivePositions lists 1-based audio track positions whose slots
	// must be forced to passthrough. Empty means no audio rewriting.
	ImmersivePositions []int
	// PreviewParams are appended verbatim after all other edits.
	PreviewParams []string
}

// Rewrite edits cmd in place: the output path is redirected, immersive
// audio slots are forced to copy with no mixdown, and preview parameters
// are appended. It returns human-readable warnings for conditions that do
// not abort the rewrite.
func Rewrite(cmd *Command, opts Options) ([]string, error) {
	var warnings []string

	idx, _, joined, ok := cmd.findFlag("--output", "-o")
	if !ok {
		return nil, ErrNoOutputFlag
	}
	name := "--output"
	if strings.HasPrefix(cmd.Tokens[idx], "-o") && !strings.HasPrefix(cmd.Tokens[idx], "--") {
		name = "-o"
	}
	cmd.setFlag(idx, name, opts.OutputPath, joined)

	if len(opts.ImmersivePositions) > 0 {
		w, err := rewriteAudio(cmd, opts.ImmersivePositions)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, w...)
	}

	cmd.Tokens = append(cmd.Tokens, opts.PreviewParams...)
	return warnings, nil
}

// rewriteAudio forces passthrough for the audio slots whose track numbers
// appear in positions. Slot order follows the --audio track list, so the
// Nth element of --aencoder and --mixdown governs the Nth selected track.
func rewriteAudio(cmd *Command, positions []int) ([]string, error) {
	audioIdx, audioValue, audioJoined, ok := cmd.findFlag("--audio", "-a")
	if !ok {
		return []string{"immersive audio present but command selects no audio tracks"}, nil
	}

	tracks, err := parseTrackList(audioValue)
	if err != nil {
		return nil, fmt.Errorf("parse audio track list %q: %w", audioValue, err)
	}

	immersive := make(map[int]bool, len(positions))
	for _, p := range positions {
		immersive[p] = true
	}

	var slots []int
	matched := make(map[int]bool, len(positions))
	for slot, track := range tracks {
		if immersive[track] {
			slots = append(slots, slot)
			matched[track] = true
		}
	}

	var warnings []string
	for _, p := range positions {
		if !matched[p] {
			warnings = append(warnings, fmt.Sprintf("immersive track %d is not selected by the encoder command", p))
		}
	}
	if len(slots) == 0 {
		return warnings, nil
	}

	insertAt := audioIdx
	if !audioJoined {
		insertAt++
	}
	applySlotValues(cmd, insertAt, "--aencoder", "-E", len(tracks), slots, copyEncoder, defaultEncoder)
	applySlotValues(cmd, insertAt, "--mixdown", "-6", len(tracks), slots, noneMixdown, defaultMixdown)
	return warnings, nil
}

// applySlotValues rewrites the per-track value list of one audio flag.
// Missing flags are inserted after the --audio flag with default values
// for every slot, then the targeted slots are overwritten.
func applySlotValues(cmd *Command, insertAt int, long, short string, slotCount int, slots []int, forced, fallback string) {
	idx, value, joined, ok := cmd.findFlag(long, short)

	var values []string
	if ok && value != "" {
		values = strings.Split(value, ",")
	}
	for len(values) < slotCount {
		values = append(values, fallback)
	}
	for _, slot := range slots {
		if slot < len(values) {
			values[slot] = forced
		}
	}
	rendered := strings.Join(values, ",")

	if ok {
		cmd.setFlag(idx, long, rendered, joined)
		return
	}
	cmd.insertFlagAfter(insertAt, long, rendered)
}

// parseTrackList parses a comma-separated list of 1-based track numbers.
func parseTrackList(value string) ([]int, error) {
	if strings.TrimSpace(value) == "" {
		return nil, fmt.Errorf("empty track list")
	}
	parts := strings.Split(value, ",")
	tracks := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("track %q is not a number", part)
		}
		tracks = append(tracks, n)
	}
	return tracks, nil
}
