// Package ffprobe wraps the ffprobe binary to expose per-stream metadata to
// the track classifier. Only the JSON decoding lives here; interpretation of
// the streams belongs to internal/media/audio.
package ffprobe
