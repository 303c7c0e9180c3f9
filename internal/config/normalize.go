package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFFmpeg()
	if err := c.normalizeExtract(); err != nil {
		return err
	}
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

// normalizeFFmpeg applies FFPROBE_PATH/FFMPEG_PATH only when the file left
// the binary at its default.
func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.FFmpegBinary = strings.TrimSpace(c.FFmpeg.FFmpegBinary)
	if c.FFmpeg.FFmpegBinary == "" || c.FFmpeg.FFmpegBinary == defaultFFmpegBinary {
		c.FFmpeg.FFmpegBinary = envOr(envFFmpegPath, defaultFFmpegBinary)
	}
	c.FFmpeg.FFprobeBinary = strings.TrimSpace(c.FFmpeg.FFprobeBinary)
	if c.FFmpeg.FFprobeBinary == "" || c.FFmpeg.FFprobeBinary == defaultFFprobeBinary {
		c.FFmpeg.FFprobeBinary = envOr(envFFprobePath, defaultFFprobeBinary)
	}
	c.FFmpeg.LogLevel = strings.ToLower(strings.TrimSpace(c.FFmpeg.LogLevel))
	if c.FFmpeg.LogLevel == "" {
		c.FFmpeg.LogLevel = defaultFFmpegLogLevel
	}
}

func (c *Config) normalizeExtract() error {
	c.Extract.DefaultFormat = strings.ToLower(strings.TrimSpace(c.Extract.DefaultFormat))
	if c.Extract.DefaultFormat == "" {
		c.Extract.DefaultFormat = defaultExtractFormat
	}
	var err error
	if c.Extract.OutputDir, err = expandPath(strings.TrimSpace(c.Extract.OutputDir)); err != nil {
		return fmt.Errorf("extract.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeJournal() error {
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = filepath.Join(c.Paths.StateDir, defaultJournalFile)
	}
	var err error
	if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}
