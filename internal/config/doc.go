// Package config loads, normalizes, and validates tvb configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the batch driver needs: encoding profiles, policy flags, tool path
// overrides, logging, and the stats store.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
