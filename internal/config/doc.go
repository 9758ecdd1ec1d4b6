// Package config loads, normalizes, and validates pwsplit configuration data.
//
// It supplies repository defaults, expands user paths, reads TOML files, and
// centralizes every knob the CLI and watcher need: the split state directory,
// the PipeWire tool binaries, and the settle delays applied after spawning a
// loopback before its ports become visible.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
