// Package testsupport builds configs, stub binaries and fixtures shared by
// tests across packages.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"subsift/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a fresh temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Journal.Path = filepath.Join(base, "state", "journal.db")

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithStubbedMedia installs ffprobe and ffmpeg stubs and points the config
// at them. ffprobe prints probeJSON; ffmpeg creates every output file that
// follows a "-f <format>" pair and prints one -stats line.
func WithStubbedMedia(probeJSON string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		jsonPath := filepath.Join(b.baseDir, "probe.json")
		if err := os.WriteFile(jsonPath, []byte(probeJSON), 0o644); err != nil {
			b.t.Fatalf("write probe json: %v", err)
		}
		b.cfg.FFmpeg.FFprobeBinary = WriteExecutable(b.t, filepath.Join(binDir, "ffprobe"), "cat '"+jsonPath+"'")
		b.cfg.FFmpeg.FFmpegBinary = WriteExecutable(b.t, filepath.Join(binDir, "ffmpeg"), ffmpegStub)
	}
}

// WithOutputDir sets extract.output_dir.
func WithOutputDir(dir string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Extract.OutputDir = dir
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}

const ffmpegStub = `if [ "$1" = "-version" ]; then
  echo "ffmpeg version 7.1-stub Copyright (c) the FFmpeg developers"
  exit 0
fi
next=0
prev=""
for arg in "$@"; do
  if [ "$next" = 1 ]; then
    printf '1\n00:00:01,000 --> 00:00:02,000\nstub\n' > "$arg"
    next=0
  fi
  if [ "$prev" = "-f" ]; then
    next=1
  fi
  prev="$arg"
done
printf 'size=       1kB time=00:00:30.00 bitrate=   0.3kbits/s speed=100x\r' >&2
exit 0`
