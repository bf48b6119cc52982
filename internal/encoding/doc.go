// Package encoding executes the rewritten encoder commands. It owns the
// optional cpulimit wrapper, parses the encoder's progress output, samples
// the spawned process, and removes partial outputs when an encode fails
// or is interrupted.
package encoding
