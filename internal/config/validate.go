package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"subsift/internal/codec"
)

var (
	logFormats      = []string{"console", "json"}
	logLevels       = []string{"debug", "info", "warn", "error"}
	ffmpegLogLevels = []string{"quiet", "panic", "fatal", "error", "warning", "info", "verbose", "debug", "trace"}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	if err := c.validateExtract(); err != nil {
		return err
	}
	if err := c.validateJournal(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateFFmpeg() error {
	if err := ensurePositiveMap(map[string]int{
		"ffmpeg.probe_timeout":   c.FFmpeg.ProbeTimeout,
		"ffmpeg.extract_timeout": c.FFmpeg.ExtractTimeout,
	}); err != nil {
		return err
	}
	if c.FFmpeg.FFmpegBinary == "" {
		return errors.New("ffmpeg.ffmpeg_binary must be set")
	}
	if c.FFmpeg.FFprobeBinary == "" {
		return errors.New("ffmpeg.ffprobe_binary must be set")
	}
	if !slices.Contains(ffmpegLogLevels, c.FFmpeg.LogLevel) {
		return fmt.Errorf("ffmpeg.log_level: unsupported value %q (want one of %s)", c.FFmpeg.LogLevel, strings.Join(ffmpegLogLevels, ", "))
	}
	return nil
}

func (c *Config) validateExtract() error {
	table := codec.DefaultTable()
	if !table.IsKnownFormat(c.Extract.DefaultFormat) {
		return fmt.Errorf("extract.default_format: unsupported value %q (want one of %s)", c.Extract.DefaultFormat, strings.Join(table.Formats(), ", "))
	}
	return nil
}

func (c *Config) validateJournal() error {
	if c.Journal.Enabled && strings.TrimSpace(c.Journal.Path) == "" {
		return errors.New("journal.path must be set when journal.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !slices.Contains(logFormats, c.Logging.Format) {
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if values[key] <= 0 {
			return fmt.Errorf("%s must be positive (seconds)", key)
		}
	}
	return nil
}
