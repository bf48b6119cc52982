// Package batch drives the transcode pipeline over a set of input files.
//
// The driver discovers inputs, classifies each file into an encoding
// profile, inspects its audio tracks, captures the advisory tool's encoder
// command, rewrites it for the local output policy, and either reports the
// command (dry run) or executes it. Files are processed strictly in
// sequence; a failure is recorded against the file and the batch moves on.
// Only input and configuration problems abort the whole run.
package batch
