package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pelletier/go-toml/v2"

	"subsift/internal/config"
	"subsift/internal/testsupport"
)

const cliProbeJSON = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video"},
    {"index": 1, "codec_name": "subrip", "codec_type": "subtitle",
     "disposition": {"default": 1}, "tags": {"language": "eng"}},
    {"index": 2, "codec_name": "ass", "codec_type": "subtitle",
     "disposition": {"forced": 1}, "tags": {"language": "spa", "title": "Latino"}},
    {"index": 3, "codec_name": "hdmv_pgs_subtitle", "codec_type": "subtitle",
     "tags": {"language": "eng"}},
    {"index": 4, "codec_name": "dvb_teletext", "codec_type": "subtitle",
     "tags": {"language": "deu"}}
  ],
  "format": {"filename": "movie.mkv", "duration": "30.000000"}
}`

type cliTestEnv struct {
	cfg        *config.Config
	baseDir    string
	configPath string
	source     string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithStubbedMedia(cliProbeJSON)}, opts...)...)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	cfg.Logging.Level = "error"

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	source := filepath.Join(base, "media", "movie.mkv")
	testsupport.WriteFile(t, source, 1024)

	return &cliTestEnv{cfg: cfg, baseDir: base, configPath: configPath, source: source}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func ignoreBytes() cmp.Option {
	return cmpopts.IgnoreFields(extractionOutputJSON{}, "Bytes")
}
