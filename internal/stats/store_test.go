package stats

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "stats.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAddDerivesRatio(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	added, err := store.Add(ctx, Result{
		RunID:          "run-1",
		Filename:       "Movie (2019).mkv",
		OriginalSize:   4000,
		NewSize:        1000,
		ElapsedSeconds: 12.5,
		Command:        "HandBrakeCLI --input a --output b",
		Success:        true,
	})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if added.ID == 0 {
		t.Fatal("expected assigned row id")
	}
	if added.Ratio != 0.25 {
		t.Fatalf("expected derived ratio 0.25, got %v", added.Ratio)
	}
	if added.RecordedAt.IsZero() {
		t.Fatal("expected recorded_at to default to now")
	}
}

func TestListOrdersByTime(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"b.mkv", "a.mkv", "c.mkv"} {
		if _, err := store.Add(ctx, Result{
			RunID:      "run-1",
			RecordedAt: base.Add(time.Duration(i) * time.Minute),
			Filename:   name,
			Success:    true,
		}); err != nil {
			t.Fatalf("Add returned error: %v", err)
		}
	}

	results, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(results))
	}
	if results[0].Filename != "b.mkv" || results[2].Filename != "c.mkv" {
		t.Fatalf("unexpected order: %v %v %v", results[0].Filename, results[1].Filename, results[2].Filename)
	}

	limited, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List with limit returned error: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected limit to apply, got %d rows", len(limited))
	}
}

func TestListRunFilters(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for _, run := range []string{"run-1", "run-2", "run-1"} {
		if _, err := store.Add(ctx, Result{RunID: run, Filename: "x.mkv"}); err != nil {
			t.Fatalf("Add returned error: %v", err)
		}
	}

	results, err := store.ListRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("ListRun returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 rows for run-1, got %d", len(results))
	}
}

func TestSummarize(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	rows := []Result{
		{RunID: "r", Filename: "a.mkv", OriginalSize: 100, NewSize: 40, ElapsedSeconds: 10, Success: true},
		{RunID: "r", Filename: "b.mkv", OriginalSize: 200, NewSize: 80, ElapsedSeconds: 20, Success: true},
		{RunID: "r", Filename: "c.mkv", OriginalSize: 300, NewSize: 0, ElapsedSeconds: 5, Success: false},
	}
	for _, row := range rows {
		if _, err := store.Add(ctx, row); err != nil {
			t.Fatalf("Add returned error: %v", err)
		}
	}

	summary, err := store.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if summary.Total != 3 || summary.Succeeded != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.OriginalBytes != 300 || summary.NewBytes != 120 {
		t.Fatalf("failed rows should not count toward size totals: %+v", summary)
	}
	if summary.ElapsedSecs != 35 {
		t.Fatalf("unexpected elapsed total: %v", summary.ElapsedSecs)
	}
}

func TestExportCSV(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, Result{
		RunID:        "run-1",
		Filename:     "Show S01E02.mkv",
		OriginalSize: 1000,
		NewSize:      250,
		Command:      `HandBrakeCLI --output "Show S01E02.mkv"`,
		Success:      true,
	}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "export", "stats.csv")
	count, err := store.ExportCSV(ctx, path)
	if err != nil {
		t.Fatalf("ExportCSV returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 exported row, got %d", count)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d records", len(records))
	}
	if records[0][0] != "date" || records[0][7] != "success" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	row := records[1]
	if row[1] != "Show S01E02.mkv" || row[4] != "0.2500" || row[7] != "true" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if _, err := store.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump schema version: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	if _, err := Open(path); err == nil {
		t.Fatal("expected schema mismatch error")
	}
}
