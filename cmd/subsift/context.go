package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"subsift/internal/config"
	"subsift/internal/extract"
	"subsift/internal/ffmpeg"
	"subsift/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				cfg.Logging.Level = level
				if err := cfg.Validate(); err != nil {
					c.configErr = fmt.Errorf("--log-level: %w", err)
					return
				}
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// openContainer wires the configured ffprobe/ffmpeg binaries into a Container.
func (c *commandContext) openContainer(path string) (*extract.Container, *config.Config, *slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, nil, err
	}
	runner, err := ffmpeg.New(cfg.FFmpeg.FFmpegBinary, cfg.FFmpeg.ExtractTimeout,
		ffmpeg.WithLogger(logging.NewComponentLogger(logger, "ffmpeg")))
	if err != nil {
		return nil, nil, nil, err
	}
	container, err := extract.New(path, extract.Options{
		FFprobe:      cfg.FFmpeg.FFprobeBinary,
		FFmpeg:       runner,
		LogLevel:     cfg.FFmpeg.LogLevel,
		Stats:        cfg.FFmpeg.Stats,
		ProbeTimeout: cfg.ProbeTimeout(),
		Logger:       logger,
		LockDir:      cfg.LockDir(),
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return container, cfg, logger, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
