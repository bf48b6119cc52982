// Package shellwords tokenizes and re-serializes the shell-level command
// text emitted by the advisory tool.
//
// The grammar is the subset the advisory output actually uses:
//
//	command  = token (SP+ token)*
//	token    = part+
//	part     = bare | squoted | dquoted
//	bare     = any run of non-whitespace, non-quote characters;
//	           backslash escapes the next character
//	squoted  = "'" ... "'"   (no escapes inside)
//	dquoted  = '"' ... '"'   (backslash escapes \" and \\)
//
// Flags with '='-joined values ("--crop=0:0:0:0") remain a single token.
// Join renders tokens back to display text with minimal quoting: only
// tokens containing whitespace or shell metacharacters are quoted, so the
// rendered string is stable for audit logs while the token slice stays
// unescaped for direct process execution.
package shellwords
