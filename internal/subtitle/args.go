package subtitle

import (
	"strconv"

	"subsift/internal/codec"
)

func (s *Stream) mapArgs() []string {
	return []string{"-map", "0:" + strconv.Itoa(s.Index)}
}

// CopyArgs returns the ffmpeg tokens that copy the stream into output using
// its native container format.
func (s *Stream) CopyArgs(output string) ([]string, error) {
	if !s.Codec.Copy || s.Codec.CopyFormat == "" {
		return nil, &codec.UnsupportedError{Codec: s.Codec.ID, Op: codec.OpCopy, Reason: "codec cannot be stream-copied"}
	}
	return append(s.mapArgs(), "-c:s", "copy", "-f", s.Codec.CopyFormat, output), nil
}

// ConvertArgs returns the ffmpeg tokens that transcode the stream into
// format. The format must be a copy format registered in table.
func (s *Stream) ConvertArgs(table *codec.Table, format, output string) ([]string, error) {
	if !table.IsKnownFormat(format) {
		return nil, &codec.UnsupportedError{Codec: s.Codec.ID, Format: format, Op: codec.OpConvert, Reason: "unknown target format"}
	}
	if !s.Codec.Convert {
		return nil, &codec.UnsupportedError{Codec: s.Codec.ID, Format: format, Op: codec.OpConvert, Reason: "codec cannot be converted"}
	}
	return append(s.mapArgs(), "-f", format, output), nil
}
