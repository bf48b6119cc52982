// Package rewrite mutates the encoder command captured from the advisory
// tool so it honors local policy: the output path is redirected to the
// configured directory (preserving the input's subfolder structure), audio
// flags for immersive tracks are forced to verbatim copy, and preview
// parameters are appended when requested. Rewriting is pure text
// transformation; directory creation and execution happen elsewhere.
package rewrite
