package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"subsift/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FFMPEG_PATH", "")
	t.Setenv("FFPROBE_PATH", "")
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaultsExpandPaths(t *testing.T) {
	home := isolate(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved != filepath.Join(home, ".config", "subsift", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	wantState := filepath.Join(home, ".local", "share", "subsift")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("state dir = %q, want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Journal.Path != filepath.Join(wantState, "journal.db") {
		t.Fatalf("journal path = %q", cfg.Journal.Path)
	}
	if cfg.FFmpeg.FFmpegBinary != "ffmpeg" || cfg.FFmpeg.FFprobeBinary != "ffprobe" {
		t.Fatalf("unexpected binaries %+v", cfg.FFmpeg)
	}
	if cfg.ProbeTimeout().Seconds() != 600 || cfg.ExtractTimeout().Seconds() != 600 {
		t.Fatalf("unexpected timeouts %v %v", cfg.ProbeTimeout(), cfg.ExtractTimeout())
	}
	if cfg.Extract.DefaultFormat != "srt" || !cfg.Extract.Overwrite || !cfg.Extract.FallbackToConvert {
		t.Fatalf("unexpected extract defaults %+v", cfg.Extract)
	}
	if cfg.Extract.OutputDir != "" {
		t.Fatalf("expected empty output dir, got %q", cfg.Extract.OutputDir)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q: %v", dir, err)
		}
	}
	if cfg.LockDir() != filepath.Join(wantState, "locks") {
		t.Fatalf("unexpected lock dir %q", cfg.LockDir())
	}
}

func TestLoadEnvironmentBinaries(t *testing.T) {
	isolate(t)
	t.Setenv("FFMPEG_PATH", "/opt/ff/ffmpeg")
	t.Setenv("FFPROBE_PATH", " /opt/ff/ffprobe ")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FFmpeg.FFmpegBinary != "/opt/ff/ffmpeg" || cfg.FFmpeg.FFprobeBinary != "/opt/ff/ffprobe" {
		t.Fatalf("environment not applied: %+v", cfg.FFmpeg)
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)
	t.Setenv("FFMPEG_PATH", "/ignored/ffmpeg")
	dir := t.TempDir()
	configPath := filepath.Join(dir, "subsift.toml")

	type payload struct {
		FFmpeg struct {
			FFmpegBinary string `toml:"ffmpeg_binary"`
			LogLevel     string `toml:"log_level"`
		} `toml:"ffmpeg"`
		Extract struct {
			DefaultFormat string `toml:"default_format"`
			OutputDir     string `toml:"output_dir"`
		} `toml:"extract"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.FFmpeg.FFmpegBinary = "/usr/local/bin/ffmpeg"
	custom.FFmpeg.LogLevel = " ERROR "
	custom.Extract.DefaultFormat = "WebVTT"
	custom.Extract.OutputDir = filepath.Join(dir, "subs")
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution %q exists=%v", resolved, exists)
	}
	if cfg.FFmpeg.FFmpegBinary != "/usr/local/bin/ffmpeg" {
		t.Fatalf("explicit binary should win over env, got %q", cfg.FFmpeg.FFmpegBinary)
	}
	if cfg.FFmpeg.LogLevel != "error" || cfg.Extract.DefaultFormat != "webvtt" || cfg.Logging.Format != "json" {
		t.Fatalf("values not normalized: %+v", cfg)
	}
	if cfg.Extract.OutputDir != filepath.Join(dir, "subs") {
		t.Fatalf("unexpected output dir %q", cfg.Extract.OutputDir)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown format", "[extract]\ndefault_format = \"mp4\"\n", "extract.default_format"},
		{"zero timeout", "[ffmpeg]\nprobe_timeout = 0\n", "ffmpeg.probe_timeout must be positive"},
		{"bad ffmpeg verbosity", "[ffmpeg]\nlog_level = \"loud\"\n", "ffmpeg.log_level"},
		{"bad log format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"bad log level", "[logging]\nlevel = \"trace\"\n", "logging.level"},
		{"unknown key", "[extract]\nformat = \"srt\"\n", "parse config"},
		{"malformed toml", "[extract\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if string(data) != config.SampleConfig() {
		t.Fatal("sample file differs from embedded sample")
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	def := config.Default()
	if cfg.Extract.DefaultFormat != def.Extract.DefaultFormat || cfg.FFmpeg.Stats != def.FFmpeg.Stats {
		t.Fatalf("sample diverges from defaults: %+v", cfg)
	}
}
