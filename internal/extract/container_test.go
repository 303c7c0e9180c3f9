package extract_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"subsift/internal/codec"
	"subsift/internal/extract"
	"subsift/internal/ffmpeg"
	"subsift/internal/language"
)

const probeJSON = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "tags": {"language": "eng"}},
    {"index": 2, "codec_name": "subrip", "codec_type": "subtitle",
     "disposition": {"default": 1, "forced": 0},
     "tags": {"language": "eng", "title": "English"}},
    {"index": 3, "codec_name": "ass", "codec_type": "subtitle",
     "disposition": {"default": 0, "forced": 1},
     "tags": {"language": "spa", "title": "Latino"}},
    {"index": 4, "codec_name": "hdmv_pgs_subtitle", "codec_type": "subtitle",
     "disposition": {"default": 0},
     "tags": {"language": "eng", "title": "SDH"}},
    {"index": 5, "codec_name": "mov_text", "codec_type": "subtitle",
     "tags": {"language": "por", "title": "Brazil", "handler_name": "SubtitleHandler"}},
    {"index": 6, "codec_name": "dvb_teletext", "codec_type": "subtitle",
     "tags": {"language": "deu"}},
    {"index": 7, "codec_name": "subrip", "codec_type": "subtitle",
     "tags": {"language": "und"}},
    {"index": 8, "codec_name": "subrip", "codec_type": "subtitle",
     "tags": {"language": "eng"}}
  ],
  "format": {"filename": "movie.mkv", "duration": "120.000000", "size": "1048576"}
}`

// fakeFFmpeg records invocations and creates the file following each
// "-f <format>" pair unless told not to.
type fakeFFmpeg struct {
	args       [][]string
	lines      []string
	err        error
	skipWrites bool
}

func (f *fakeFFmpeg) Run(_ context.Context, _ string, args []string, onLine func(string)) error {
	f.args = append(f.args, append([]string(nil), args...))
	for _, line := range f.lines {
		onLine(line)
	}
	if f.err != nil {
		return f.err
	}
	if f.skipWrites {
		return nil
	}
	for i := 0; i+2 < len(args); i++ {
		if args[i] == "-f" {
			if err := os.WriteFile(args[i+2], []byte("1\n00:00:01,000 --> 00:00:02,000\nhi\n"), 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}

type fixture struct {
	dir       string
	source    string
	ffmpeg    *fakeFFmpeg
	container *extract.Container
}

func newFixture(t *testing.T, probeBody string) *fixture {
	t.Helper()
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "probe.json")
	if err := os.WriteFile(jsonPath, []byte(probeJSON), 0o644); err != nil {
		t.Fatalf("write probe json: %v", err)
	}
	if probeBody == "" {
		probeBody = "cat " + jsonPath
	}
	probe := filepath.Join(dir, "ffprobe")
	if err := os.WriteFile(probe, []byte("#!/bin/sh\n"+probeBody+"\n"), 0o755); err != nil {
		t.Fatalf("write ffprobe stub: %v", err)
	}
	source := filepath.Join(dir, "media", "movie.mkv")
	if err := os.MkdirAll(filepath.Dir(source), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(source, []byte("mkv"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	fake := &fakeFFmpeg{}
	runner, err := ffmpeg.New("ffmpeg", 60, ffmpeg.WithExecutor(fake))
	if err != nil {
		t.Fatalf("ffmpeg.New: %v", err)
	}
	container, err := extract.New(source, extract.Options{
		FFprobe:  probe,
		FFmpeg:   runner,
		LogLevel: "quiet",
		Stats:    true,
		LockDir:  filepath.Join(dir, "locks"),
	})
	if err != nil {
		t.Fatalf("extract.New: %v", err)
	}
	return &fixture{dir: dir, source: source, ffmpeg: fake, container: container}
}

func (f *fixture) media(name string) string {
	return filepath.Join(filepath.Dir(f.source), name)
}

func TestClassifySkipsUnusableStreams(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	f := newFixture(t, "")

	classified, err := f.container.Classify(context.Background())
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	var got []string
	for _, s := range classified.Streams {
		got = append(got, s.Suffix())
	}
	want := []string{"en", "es-MX.forced", "en.hearing_impaired", "pt-BR", "en"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("suffix mismatch (-want +got):\n%s", diff)
	}
	if len(classified.Skipped) != 2 {
		t.Fatalf("expected 2 skipped streams, got %+v", classified.Skipped)
	}
	if classified.Skipped[0].Index != 6 || !errors.Is(classified.Skipped[0].Err, codec.ErrUnsupported) {
		t.Fatalf("unexpected first skip %+v", classified.Skipped[0])
	}
	if classified.Skipped[1].Index != 7 || !errors.Is(classified.Skipped[1].Err, language.ErrNotFound) {
		t.Fatalf("unexpected second skip %+v", classified.Skipped[1])
	}
	if classified.Probe.DurationSeconds() != 120 {
		t.Fatalf("probe duration = %v", classified.Probe.DurationSeconds())
	}
}

func TestSubtitlesInvalidSource(t *testing.T) {
	f := newFixture(t, "echo 'moov atom not found' >&2\nexit 1")
	_, err := f.container.Subtitles(context.Background())
	if !errors.Is(err, extract.ErrInvalidSource) {
		t.Fatalf("expected ErrInvalidSource, got %v", err)
	}
	var srcErr *extract.SourceError
	if !errors.As(err, &srcErr) || srcErr.ErrorKind() != "invalid_source" {
		t.Fatalf("expected *SourceError, got %T", err)
	}
	if !strings.Contains(err.Error(), "moov atom not found") {
		t.Fatalf("error should carry ffprobe stderr: %v", err)
	}
}

func TestSubtitlesGarbageOutput(t *testing.T) {
	f := newFixture(t, "echo 'not json'")
	if _, err := f.container.Subtitles(context.Background()); !errors.Is(err, extract.ErrInvalidSource) {
		t.Fatalf("expected ErrInvalidSource, got %v", err)
	}
}

func TestNewRequiresPath(t *testing.T) {
	if _, err := extract.New(" ", extract.Options{}); err == nil {
		t.Fatal("expected error for empty path")
	}
}
