// Package ffmpeg runs the ffmpeg binary for subtitle extraction.
//
// Runner owns the process lifecycle: it applies the extraction timeout,
// streams stderr line by line (ffmpeg separates -stats updates with carriage
// returns), turns stats lines into Progress values for an optional callback,
// and reports failures as *RunError carrying the exit code and the last lines
// ffmpeg printed. Argument construction for individual streams lives in the
// subtitle package; BaseArgs supplies the shared input preamble.
package ffmpeg
