// Package logging assembles the structured slog loggers used across the
// batch pipeline.
//
// It owns the configurable console/JSON handlers, centralizes level and
// output plumbing, and tags every record with the batch run identifier so
// interleaved log files stay attributable. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
