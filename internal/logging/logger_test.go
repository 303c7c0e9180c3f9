package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subsift/internal/codec"
	"subsift/internal/config"
	"subsift/internal/logging"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.Level = "debug"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("debug message", logging.String("k", "v"))

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, logging.LogFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "debug message") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestConsoleInfoOmitsCallerAndDebugIncludesIt(t *testing.T) {
	var info bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &info})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("message without caller")
	if strings.Contains(info.String(), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", info.String())
	}

	var debug bytes.Buffer
	logger, err = logging.New(logging.Options{Format: "console", Level: "debug", Writer: &debug})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("message with caller")
	if !strings.Contains(debug.String(), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", debug.String())
	}
}

func TestConsoleLayout(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := logging.WithSource(logging.WithRunID(context.Background(), "0123456789abcdef"), "/media/movie.mkv")
	component := logging.NewComponentLogger(logger, "extract")
	logging.WithContext(ctx, component).Info("subtitle written",
		logging.Int(logging.FieldStreamIndex, 3),
		logging.String(logging.FieldOutput, "/media/movie.en.srt"),
		logging.Int64("output_bytes", 2048),
		logging.Bool("overwritten", true),
	)

	out := buf.String()
	for _, want := range []string{
		"INFO [extract] movie.mkv · run 01234567 – subtitle written",
		"    - Stream: 3",
		"    - Output: /media/movie.en.srt",
		"    - Output Bytes: 2.0 KiB",
		"    - Overwritten: yes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789abcdef") {
		t.Errorf("full run id should be hidden at info level:\n%s", out)
	}
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	err = &codec.UnsupportedError{Codec: "mov_text", Op: codec.OpCopy}
	logger.Warn("json message", logging.Error(err), logging.ErrorKind(err), logging.String("k", "v"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if record["level"] != "warn" || record["msg"] != "json message" || record["k"] != "v" {
		t.Fatalf("unexpected record %v", record)
	}
	if record["error"] != "mov_text: copy unsupported" {
		t.Fatalf("error not flattened: %v", record["error"])
	}
	if record[logging.FieldErrorKind] != "unsupported_codec" {
		t.Fatalf("missing error kind: %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("missing ts key: %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
	logger, err := logging.New(logging.Options{Format: "console", Level: "invalid", Writer: &bytes.Buffer{}})
	if err != nil || logger == nil {
		t.Fatalf("invalid level should fall back to info: %v", err)
	}
	if logger.Enabled(context.Background(), -4) {
		t.Fatal("debug should be disabled when level falls back to info")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logging.WarnWithContext(logger, "output missing", "output_missing", logging.String(logging.FieldImpact, "subtitle not written"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record[logging.FieldEventType] != "output_missing" {
		t.Fatalf("missing event type: %v", record)
	}
	if record[logging.FieldErrorHint] != "check logs for details" {
		t.Fatalf("missing default hint: %v", record)
	}
	if record[logging.FieldImpact] != "subtitle not written" {
		t.Fatalf("explicit impact should be preserved: %v", record)
	}
	logging.WarnWithContext(nil, "ignored", "noop")
}

func TestErrorKindIgnoresPlainErrors(t *testing.T) {
	if attr := logging.ErrorKind(errors.New("plain")); attr.Key != "" {
		t.Fatalf("expected empty attr, got %v", attr)
	}
	if _, ok := logging.RunIDFromContext(context.Background()); ok {
		t.Fatal("expected no run id")
	}
}
