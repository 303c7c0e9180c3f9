// Package config loads, normalizes, and validates subsift configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the FFPROBE_PATH and FFMPEG_PATH
// environment fallbacks. The Config type centralizes every knob the CLI
// needs: where state and logs live, how ffmpeg is invoked, and what
// extraction does by default.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
