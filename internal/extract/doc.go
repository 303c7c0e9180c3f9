// Package extract orchestrates subtitle extraction for one media file.
//
// A Container probes its source with ffprobe, classifies every subtitle
// stream (in parallel, keeping container order) and turns a selection of
// streams into a single ffmpeg invocation. Extract converts every stream to
// one text format; Copy keeps each stream's native format and, when allowed,
// falls back to conversion for codecs that cannot be stream-copied. Output
// files are named <stem>.<suffix>.<ext> next to the source or inside a custom
// directory, with collisions inside one batch disambiguated by a two-digit
// counter.
//
// Extraction holds an advisory lock per source so two processes sharing a
// state directory never write the same outputs concurrently.
package extract
