package config

const (
	defaultConfigPath     = "~/.config/subsift/config.toml"
	defaultStateDir       = "~/.local/share/subsift"
	defaultLogDir         = "~/.local/share/subsift/logs"
	defaultFFmpegBinary   = "ffmpeg"
	defaultFFprobeBinary  = "ffprobe"
	defaultFFmpegLogLevel = "quiet"
	defaultProbeTimeout   = 600
	defaultExtractTimeout = 600
	defaultExtractFormat  = "srt"
	defaultJournalFile    = "journal.db"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	envFFprobePath        = "FFPROBE_PATH"
	envFFmpegPath         = "FFMPEG_PATH"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		FFmpeg: FFmpeg{
			FFmpegBinary:   defaultFFmpegBinary,
			FFprobeBinary:  defaultFFprobeBinary,
			LogLevel:       defaultFFmpegLogLevel,
			Stats:          true,
			ProbeTimeout:   defaultProbeTimeout,
			ExtractTimeout: defaultExtractTimeout,
		},
		Extract: Extract{
			DefaultFormat:     defaultExtractFormat,
			Overwrite:         true,
			FallbackToConvert: true,
		},
		Journal: Journal{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
