package stats

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var csvHeader = []string{
	"date", "filename", "original_size", "new_size",
	"ratio", "elapsed_seconds", "command", "success",
}

// ExportCSV writes the whole history to path, replacing any previous
// export. The write goes through a temp file so a failed export never
// truncates an existing one.
func (s *Store) ExportCSV(ctx context.Context, path string) (int, error) {
	results, err := s.List(ctx, 0)
	if err != nil {
		return 0, err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("ensure export directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".stats-*.csv")
	if err != nil {
		return 0, fmt.Errorf("create temp export: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}
	for _, result := range results {
		record := []string{
			result.RecordedAt.UTC().Format(time.RFC3339),
			result.Filename,
			strconv.FormatInt(result.OriginalSize, 10),
			strconv.FormatInt(result.NewSize, 10),
			strconv.FormatFloat(result.Ratio, 'f', 4, 64),
			strconv.FormatFloat(result.ElapsedSeconds, 'f', 1, 64),
			result.Command,
			strconv.FormatBool(result.Success),
		}
		if err := writer.Write(record); err != nil {
			return 0, fmt.Errorf("write csv record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close temp export: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, fmt.Errorf("replace export: %w", err)
	}
	return len(results), nil
}
