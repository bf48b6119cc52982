// Package stats persists the encode history in SQLite and exports it as
// CSV. Rows are append-only; a batch records one row per attempted file,
// including failures, so the history doubles as an audit trail.
package stats
