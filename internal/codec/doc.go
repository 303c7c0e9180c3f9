// Package codec holds the subtitle codec capability table.
//
// A Table maps ffprobe codec names (ass, subrip, hdmv_pgs_subtitle, ...) to
// what the extractor is allowed to do with them: copy the stream untouched
// into a given container format, convert it to another text format, or both.
// The table is built once, never mutated, and passed explicitly to the code
// that needs it so tests can substitute their own entries.
//
// Every capability decision downstream goes through Lookup or IsKnownFormat;
// nothing else in the repository special-cases a codec name.
package codec
