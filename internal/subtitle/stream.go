package subtitle

import (
	"fmt"
	"math"
	"strings"
	"time"

	"subsift/internal/codec"
	"subsift/internal/disposition"
	"subsift/internal/language"
	"subsift/internal/media/ffprobe"
	"subsift/internal/streamtags"
)

// Timing holds the stream timestamps reported by ffprobe. Tick fields are
// interpreted as milliseconds. Absent or malformed values are zero.
type Timing struct {
	StartTime     time.Duration
	StartOffset   time.Duration
	Duration      time.Duration
	DurationTicks time.Duration
}

// Stream is a classified subtitle stream.
type Stream struct {
	Index       int
	Codec       codec.Capability
	Language    language.Tag
	Disposition disposition.Flags
	Timing      Timing
	Tags        streamtags.Tags
}

// New classifies raw against table.
func New(raw ffprobe.Stream, table *codec.Table) (*Stream, error) {
	capability, err := table.Lookup(strings.TrimSpace(raw.CodecName))
	if err != nil {
		return nil, fmt.Errorf("stream %d: %w", raw.Index, err)
	}
	lang, err := language.Interpret(raw.Tags)
	if err != nil {
		return nil, fmt.Errorf("stream %d: %w", raw.Index, err)
	}
	tags := streamtags.Parse(raw.Tags)
	flags := disposition.InferFromTitle(disposition.Classify(raw.Disposition), tags.Title)

	return &Stream{
		Index:       raw.Index,
		Codec:       capability,
		Language:    lang,
		Disposition: flags,
		Timing:      timingFrom(raw, tags),
		Tags:        tags,
	}, nil
}

func timingFrom(raw ffprobe.Stream, tags streamtags.Tags) Timing {
	timing := Timing{
		StartTime:     seconds(raw.StartTime),
		StartOffset:   millis(raw.StartPTS),
		Duration:      seconds(raw.Duration),
		DurationTicks: millis(raw.DurationTS),
	}
	if timing.Duration == 0 && tags.Shape == streamtags.ShapeMatroska {
		timing.Duration = tags.Stats.Duration
	}
	return timing
}

func seconds(v ffprobe.Value) time.Duration { return scaled(v, time.Second) }

func millis(v ffprobe.Value) time.Duration { return scaled(v, time.Millisecond) }

// scaled converts v to a duration in unit. Negative, malformed and
// out-of-range values yield zero.
func scaled(v ffprobe.Value, unit time.Duration) time.Duration {
	f, ok := v.Float()
	if !ok || f < 0 {
		return 0
	}
	ns := math.Round(f * float64(unit))
	if ns >= math.MaxInt64 {
		return 0
	}
	return time.Duration(ns)
}

// Extension returns the file extension for copied output, or "" when the
// codec has no copy format.
func (s *Stream) Extension() string {
	return s.Codec.CopyFormat
}

// Suffix returns the naming segment for output files: the language form,
// followed by the most specific disposition when there is one ("en",
// "pt-BR.forced").
func (s *Stream) Suffix() string {
	lang := s.Language.String()
	flag := s.Disposition.Suffix()
	switch {
	case lang == "":
		return flag
	case flag == "":
		return lang
	default:
		return lang + "." + flag
	}
}

func (s *Stream) String() string {
	return fmt.Sprintf("<%s: %s@%s>", strings.ToUpper(s.Codec.ID), s.Language, s.Disposition)
}
