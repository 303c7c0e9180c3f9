package extract

import (
	"errors"
	"fmt"

	"subsift/internal/codec"
	"subsift/internal/subtitle"
)

// Mode describes how a stream is written.
type Mode string

const (
	ModeCopy    Mode = "copy"
	ModeConvert Mode = "convert"
	// ModeFallback is a conversion chosen because copying was refused.
	ModeFallback Mode = "fallback"
)

// Plan is the decision for one stream, before an output path is assigned.
type Plan struct {
	Stream *subtitle.Stream
	Mode   Mode
	// Format is the ffmpeg muxer and the output file extension.
	Format string
}

// Args builds the per-stream ffmpeg tokens writing to output.
func (p Plan) Args(table *codec.Table, output string) ([]string, error) {
	if p.Mode == ModeCopy {
		return p.Stream.CopyArgs(output)
	}
	return p.Stream.ConvertArgs(table, p.Format, output)
}

// PlanConvert validates that s can be converted to format.
func PlanConvert(s *subtitle.Stream, table *codec.Table, format string) (Plan, error) {
	if _, err := s.ConvertArgs(table, format, ""); err != nil {
		return Plan{}, err
	}
	return Plan{Stream: s, Mode: ModeConvert, Format: format}, nil
}

// PlanCopy prefers a stream copy. When the copy is refused because of the
// codec and fallbackFormat is non-empty, it plans a conversion to
// fallbackFormat instead.
func PlanCopy(s *subtitle.Stream, table *codec.Table, fallbackFormat string) (Plan, error) {
	_, err := s.CopyArgs("")
	if err == nil {
		return Plan{Stream: s, Mode: ModeCopy, Format: s.Extension()}, nil
	}
	if !errors.Is(err, codec.ErrUnsupported) || fallbackFormat == "" {
		return Plan{}, err
	}
	if _, convErr := s.ConvertArgs(table, fallbackFormat, ""); convErr != nil {
		return Plan{}, fmt.Errorf("fallback to %s: %w", fallbackFormat, convErr)
	}
	return Plan{Stream: s, Mode: ModeFallback, Format: fallbackFormat}, nil
}
