package subtitle

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"subsift/internal/codec"
	"subsift/internal/language"
	"subsift/internal/media/ffprobe"
	"subsift/internal/streamtags"
)

func assStream() ffprobe.Stream {
	return ffprobe.Stream{
		Index:      3,
		CodecName:  "ass",
		CodecType:  "subtitle",
		TimeBase:   "1/1000",
		StartPTS:   "0",
		StartTime:  "0.000000",
		DurationTS: "1218718",
		Duration:   "1218.718000",
		Disposition: map[string]int{
			"default":          1,
			"dub":              0,
			"original":         0,
			"comment":          0,
			"lyrics":           0,
			"karaoke":          0,
			"forced":           0,
			"hearing_impaired": 0,
			"visual_impaired":  0,
			"clean_effects":    0,
			"attached_pic":     0,
			"timed_thumbnails": 0,
		},
		Tags: map[string]string{"language": "eng", "title": "English"},
	}
}

func mustNew(t *testing.T, raw ffprobe.Stream) *Stream {
	t.Helper()
	s, err := New(raw, codec.DefaultTable())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewClassifiesStream(t *testing.T) {
	s := mustNew(t, assStream())
	if s.Index != 3 || s.Codec.ID != "ass" {
		t.Fatalf("unexpected stream %+v", s)
	}
	if s.Extension() != "ass" {
		t.Fatalf("Extension() = %q", s.Extension())
	}
	if s.Language.Alpha3 != "eng" {
		t.Fatalf("language = %+v", s.Language)
	}
	if s.Suffix() != "en" {
		t.Fatalf("Suffix() = %q, want en", s.Suffix())
	}
	if s.Disposition.HearingImpaired || !s.Disposition.Default {
		t.Fatalf("unexpected disposition %s", s.Disposition)
	}
	if s.String() != "<ASS: en@default>" {
		t.Fatalf("String() = %q", s.String())
	}
}

func TestTiming(t *testing.T) {
	s := mustNew(t, assStream())
	want := Timing{
		Duration:      1218718 * time.Millisecond,
		DurationTicks: 1218718 * time.Millisecond,
	}
	if diff := cmp.Diff(want, s.Timing); diff != "" {
		t.Fatalf("timing mismatch (-want +got):\n%s", diff)
	}
}

func TestTimingFallsBackToMatroskaDuration(t *testing.T) {
	raw := ffprobe.Stream{
		Index:     2,
		CodecName: "subrip",
		StartTime: "bogus",
		Tags: map[string]string{
			"language":     "swe",
			"DURATION-eng": "01:31:19.587000000",
			"BPS-eng":      "28",
		},
	}
	s := mustNew(t, raw)
	if s.Tags.Shape != streamtags.ShapeMatroska {
		t.Fatalf("shape = %v", s.Tags.Shape)
	}
	want := time.Hour + 31*time.Minute + 19*time.Second + 587*time.Millisecond
	if s.Timing.Duration != want {
		t.Fatalf("duration = %v, want %v", s.Timing.Duration, want)
	}
	if s.Timing.StartTime != 0 || s.Timing.DurationTicks != 0 {
		t.Fatalf("malformed or absent values should be zero: %+v", s.Timing)
	}
}

func TestTimingRejectsOutOfRangeValues(t *testing.T) {
	s := mustNew(t, ffprobe.Stream{
		Index:      1,
		CodecName:  "subrip",
		StartTime:  "1e11",
		Duration:   "99999999999",
		StartPTS:   "1e17",
		DurationTS: "9223372036854775807",
		Tags: map[string]string{
			"language": "eng",
			"DURATION": "99999999:00:00.000",
		},
	})
	if s.Timing != (Timing{}) {
		t.Fatalf("out-of-range values should be zero, got %+v", s.Timing)
	}
}

func TestNewToleratesGarbledDisposition(t *testing.T) {
	raw, err := ffprobe.Parse([]byte(`{"streams": [{"index": 2, "codec_name": "subrip", "codec_type": "subtitle",
	  "disposition": {"default": 1, "forced": "1", "hearing_impaired": true}, "tags": {"language": "eng"}}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s := mustNew(t, raw.SubtitleStreams()[0])
	if !s.Disposition.Default || s.Disposition.Forced || s.Disposition.HearingImpaired {
		t.Fatalf("unexpected flags %+v", s.Disposition)
	}
	if s.Suffix() != "en" {
		t.Fatalf("Suffix() = %q, want en", s.Suffix())
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New(ffprobe.Stream{Index: 1, CodecName: "avc"}, codec.DefaultTable())
	if !errors.Is(err, codec.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	_, err = New(ffprobe.Stream{Index: 1, CodecName: "ass", Tags: map[string]string{"language": "und"}}, codec.DefaultTable())
	if !errors.Is(err, language.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var nf *language.NotFoundError
	if !errors.As(err, &nf) || nf.Raw != "und" {
		t.Fatalf("expected wrapped *NotFoundError, got %#v", err)
	}
	_, err = New(ffprobe.Stream{Index: 1, CodecName: "ass"}, codec.DefaultTable())
	if !errors.Is(err, language.ErrNotFound) {
		t.Fatalf("missing tags should fail with ErrNotFound, got %v", err)
	}
	_, err = New(assStream(), nil)
	if !errors.Is(err, codec.ErrUnsupported) {
		t.Fatalf("nil table should reject every codec, got %v", err)
	}
}

func TestSuffixWithRegionAndDisposition(t *testing.T) {
	tests := []struct {
		name string
		tags map[string]string
		disp map[string]int
		want string
	}{
		{"plain", map[string]string{"language": "spa"}, nil, "es"},
		{"latino forced", map[string]string{"language": "spa", "title": "Latino (Forced)"}, nil, "es-MX.forced"},
		{"brazil sdh", map[string]string{"language": "por", "title": "Brazilian SDH"}, nil, "pt-BR.hearing_impaired"},
		{"flag beats title", map[string]string{"language": "eng", "title": "SDH"}, map[string]int{"comment": 1}, "en.comment"},
		{"default only", map[string]string{"language": "fre"}, map[string]int{"default": 1}, "fr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustNew(t, ffprobe.Stream{Index: 0, CodecName: "subrip", Tags: tt.tags, Disposition: tt.disp})
			if got := s.Suffix(); got != tt.want {
				t.Fatalf("Suffix() = %q, want %q", got, tt.want)
			}
			if again := s.Suffix(); again != tt.want {
				t.Fatalf("Suffix() not deterministic: %q then %q", tt.want, again)
			}
		})
	}
}
