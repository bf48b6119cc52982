// Package main hosts the tvb CLI entrypoint and command graph.
//
// The Cobra-based command tree runs the batch pipeline from the root
// command and surfaces maintenance operations (configuration scaffolding,
// encode history, tool availability) as subcommands. It centralizes
// configuration resolution, logging setup, and dependency wiring so the
// batch driver and its collaborators stay free of terminal concerns.
package main
