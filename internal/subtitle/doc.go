// Package subtitle turns a raw ffprobe subtitle stream into a classified
// descriptor and derives the ffmpeg arguments that copy or convert it.
//
// A Stream is built once with New and is read-only afterwards. Construction
// fails with codec.ErrUnsupported when the codec is not in the capability
// table and with language.ErrNotFound when the language cannot be resolved.
//
// CopyArgs and ConvertArgs return only the per-stream tokens; the ffmpeg
// preamble and the output naming live with the caller.
package subtitle
