package audio

import (
	"strings"

	"tvb/internal/media/ffprobe"
)

// Track captures the derived metadata for one audio track. Position is the
// 1-based index among audio streams, matching the track numbering the
// low-level encoder uses for its audio flags.
type Track struct {
	Position      int
	StreamIndex   int
	Codec         string
	Profile       string
	ChannelLayout string
	Channels      int
	Language      string
	Title         string
	Immersive     bool
}

// Classify derives tracks from the inspected streams. When preservation is
// disabled every track is classified ordinary regardless of codec, and the
// command rewriter leaves audio flags untouched.
func Classify(streams []ffprobe.Stream, preserveImmersive bool) []Track {
	tracks := make([]Track, 0, len(streams))
	position := 0
	for _, stream := range streams {
		if !strings.EqualFold(stream.CodecType, "audio") {
			continue
		}
		position++
		track := Track{
			Position:      position,
			StreamIndex:   stream.Index,
			Codec:         strings.ToLower(strings.TrimSpace(stream.CodecName)),
			Profile:       strings.TrimSpace(stream.Profile),
			ChannelLayout: strings.TrimSpace(stream.ChannelLayout),
			Channels:      stream.Channels,
			Language:      tagValue(stream.Tags, "language", "LANGUAGE", "Language", "language_ietf", "LANG"),
			Title:         tagValue(stream.Tags, "title", "TITLE", "handler_name", "HANDLER_NAME"),
		}
		if preserveImmersive {
			track.Immersive = detectImmersive(stream, track)
		}
		tracks = append(tracks, track)
	}
	return tracks
}

// ImmersivePositions returns the 1-based positions of immersive tracks.
func ImmersivePositions(tracks []Track) []int {
	positions := make([]int, 0, len(tracks))
	for _, track := range tracks {
		if track.Immersive {
			positions = append(positions, track.Position)
		}
	}
	return positions
}

// HasImmersive reports whether any track carries object-audio metadata.
func HasImmersive(tracks []Track) bool {
	for _, track := range tracks {
		if track.Immersive {
			return true
		}
	}
	return false
}

// The two codec families that can carry Dolby object metadata: a lossy core
// (E-AC-3 / Dolby Digital Plus) and a lossless one (TrueHD / MLP).
var objectCodecs = map[string]struct{}{
	"eac3":   {},
	"ac3":    {},
	"truehd": {},
	"mlp":    {},
}

var objectIndicators = []string{
	"atmos",
	"joc",
	"joint object coding",
	"joint-object-coding",
}

func detectImmersive(stream ffprobe.Stream, track Track) bool {
	if _, ok := objectCodecs[track.Codec]; !ok {
		return false
	}
	combined := strings.ToLower(strings.Join([]string{
		stream.Profile,
		stream.CodecLong,
		track.Title,
	}, " "))
	for _, indicator := range objectIndicators {
		if strings.Contains(combined, indicator) {
			return true
		}
	}
	return false
}

func tagValue(tags map[string]string, keys ...string) string {
	if len(tags) == 0 {
		return ""
	}
	for _, key := range keys {
		if value, ok := tags[key]; ok {
			value = strings.TrimSpace(value)
			if value != "" {
				return value
			}
		}
	}
	return ""
}
