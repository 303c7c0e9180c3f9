// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: per-stream properties including disposition and tags
//   - Value: a numeric field ffprobe may report as a string, a number or null
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Helper methods on Result select subtitle streams and expose container
// duration, size and bitrate.
package ffprobe
