// Package language provides unified language code normalization and mapping.
//
// All language-related conversions (ISO 639-1, ISO 639-2, display names,
// tag extraction) are consolidated here. Interpret turns the tag mapping of
// an ffprobe stream into a Tag: the registered ISO 639-2 code plus an
// optional region inferred from keywords in the stream title (a "Latino"
// Spanish track becomes es-MX, a "Brasil" Portuguese track pt-BR).
//
// Only languages with an ISO 639-1 code are registered; anything else,
// including the undetermined marker "und", fails with ErrNotFound.
package language
