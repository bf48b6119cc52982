package batch_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tvb/internal/batch"
	"tvb/internal/services"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("video"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDiscoverSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Inception (2010).mkv")
	writeFile(t, path)

	files, err := batch.Discover(path)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].RelPath != "Inception (2010).mkv" {
		t.Fatalf("unexpected rel path %q", files[0].RelPath)
	}
	if files[0].Ext != ".mkv" {
		t.Fatalf("unexpected ext %q", files[0].Ext)
	}
	if files[0].Size == 0 {
		t.Fatal("expected non-zero size")
	}
}

func TestDiscoverWalkFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b", "episode.mkv"))
	writeFile(t, filepath.Join(dir, "a.mp4"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "cover.jpg"))

	files, err := batch.Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].RelPath != "a.mp4" {
		t.Fatalf("expected a.mp4 first, got %q", files[0].RelPath)
	}
	if files[1].RelPath != filepath.Join("b", "episode.mkv") {
		t.Fatalf("expected nested file second, got %q", files[1].RelPath)
	}
}

func TestDiscoverEmptyDirectoryIsInputError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "readme.md"))

	_, err := batch.Discover(dir)
	if !errors.Is(err, services.ErrInput) {
		t.Fatalf("expected input error, got %v", err)
	}
}

func TestDiscoverMissingInputIsInputError(t *testing.T) {
	_, err := batch.Discover(filepath.Join(t.TempDir(), "missing.mkv"))
	if !errors.Is(err, services.ErrInput) {
		t.Fatalf("expected input error, got %v", err)
	}
}

func TestDiscoverUnrecognizedSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "document.pdf")
	writeFile(t, path)

	_, err := batch.Discover(path)
	if !errors.Is(err, services.ErrInput) {
		t.Fatalf("expected input error, got %v", err)
	}
}
