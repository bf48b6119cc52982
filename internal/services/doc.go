// Package services defines the error taxonomy shared across the transcode
// pipeline. Sentinel errors classify a failure as fatal to the whole run
// (input, configuration) or fatal to a single file only (inspection,
// advisory invocation, command rewrite, encode execution), and Wrap tags
// errors with enough context for the batch driver to log and classify them.
package services
