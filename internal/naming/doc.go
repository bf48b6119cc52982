// Package naming classifies input filenames into encoding formats and
// derives display titles for summaries. Classification is pure and
// deterministic: rules are evaluated in strict priority order (season/
// episode marker, then parenthesized year, then fallback) and never consult
// filesystem metadata.
package naming
