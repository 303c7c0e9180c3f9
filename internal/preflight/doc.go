// Package preflight provides readiness checks for the binaries and
// directories subsift depends on.
//
// The CLI "subsift status" command renders every check; extract and copy
// run RunAll first and refuse to start when a required check fails, so a
// missing ffmpeg is reported before any probing happens.
package preflight
