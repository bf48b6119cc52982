// Package preflight provides readiness checks for the directories and
// external binaries a batch depends on.
//
// The batch driver calls RunAll once before touching any file. Failing
// fast here avoids discovering a missing tool or an unwritable output
// directory hours into a batch. The CLI "tvb tools" command reuses the
// same requirement list to display tool health.
package preflight
