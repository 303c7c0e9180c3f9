package extract

import (
	"errors"
	"testing"

	"subsift/internal/codec"
	"subsift/internal/media/ffprobe"
	"subsift/internal/subtitle"
)

func classify(t *testing.T, codecName string) *subtitle.Stream {
	t.Helper()
	s, err := subtitle.New(ffprobe.Stream{
		Index:     1,
		CodecName: codecName,
		CodecType: "subtitle",
		Tags:      map[string]string{"language": "eng"},
	}, codec.DefaultTable())
	if err != nil {
		t.Fatalf("subtitle.New(%s): %v", codecName, err)
	}
	return s
}

func TestPlanCopy(t *testing.T) {
	table := codec.DefaultTable()
	tests := []struct {
		codec    string
		fallback string
		mode     Mode
		format   string
		wantErr  bool
	}{
		{"subrip", "", ModeCopy, "srt", false},
		{"ass", "srt", ModeCopy, "ass", false},
		{"hdmv_pgs_subtitle", "srt", ModeCopy, "sup", false},
		{"mov_text", "srt", ModeFallback, "srt", false},
		{"mov_text", "ass", ModeFallback, "ass", false},
		{"mov_text", "", "", "", true},
		{"mov_text", "txt", "", "", true},
	}
	for _, tt := range tests {
		plan, err := PlanCopy(classify(t, tt.codec), table, tt.fallback)
		if tt.wantErr {
			if !errors.Is(err, codec.ErrUnsupported) {
				t.Errorf("PlanCopy(%s, %q) error = %v, want ErrUnsupported", tt.codec, tt.fallback, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("PlanCopy(%s, %q) unexpected error: %v", tt.codec, tt.fallback, err)
			continue
		}
		if plan.Mode != tt.mode || plan.Format != tt.format {
			t.Errorf("PlanCopy(%s, %q) = %s/%s, want %s/%s", tt.codec, tt.fallback, plan.Mode, plan.Format, tt.mode, tt.format)
		}
	}
}

func TestPlanArgsMatchBuilders(t *testing.T) {
	table := codec.DefaultTable()
	s := classify(t, "mov_text")
	plan, err := PlanCopy(s, table, "webvtt")
	if err != nil {
		t.Fatalf("PlanCopy: %v", err)
	}
	args, err := plan.Args(table, "out.webvtt")
	if err != nil {
		t.Fatalf("Args: %v", err)
	}
	want, _ := s.ConvertArgs(table, "webvtt", "out.webvtt")
	if len(args) != len(want) || args[len(args)-1] != "out.webvtt" || args[3] != "webvtt" {
		t.Fatalf("args = %v, want %v", args, want)
	}
}

func TestPathPlanner(t *testing.T) {
	p := newPathPlanner("/media/Show/episode.mkv", Naming{Overwrite: true})
	steps := []struct {
		suffix, ext, want string
	}{
		{"en", "srt", "/media/Show/episode.en.srt"},
		{"en", "srt", "/media/Show/episode.en.01.srt"},
		{"en", "srt", "/media/Show/episode.en.02.srt"},
		{"fr", "ass", "/media/Show/episode.fr.ass"},
		{"en", "ass", "/media/Show/episode.en.ass"},
	}
	for _, step := range steps {
		got, skip := p.next(step.suffix, step.ext)
		if skip || got != step.want {
			t.Errorf("next(%s, %s) = %q (skip=%v), want %q", step.suffix, step.ext, got, skip, step.want)
		}
	}
}

func TestPathPlannerCustomDir(t *testing.T) {
	p := newPathPlanner("/media/Show/episode.mkv", Naming{Dir: "/subs", Overwrite: true})
	if got, _ := p.next("en", "srt"); got != "/subs/episode.en.srt" {
		t.Fatalf("got %q", got)
	}
}
