package extract

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"subsift/internal/codec"
	"subsift/internal/ffmpeg"
	"subsift/internal/logging"
	"subsift/internal/media/ffprobe"
	"subsift/internal/subtitle"
)

// DefaultFormat is the conversion target when none is configured.
const DefaultFormat = "srt"

// Options configures a Container.
type Options struct {
	FFprobe      string
	FFmpeg       *ffmpeg.Runner
	LogLevel     string
	Stats        bool
	ProbeTimeout time.Duration
	// Table defaults to codec.DefaultTable.
	Table  *codec.Table
	Logger *slog.Logger
	// LockDir enables the per-source advisory lock when set.
	LockDir string
}

// Container is a media file whose subtitle streams can be extracted.
type Container struct {
	Path string

	opts   Options
	logger *slog.Logger

	mu     sync.Mutex
	probed *ffprobe.Result
}

// New returns a Container for path.
func New(path string, opts Options) (*Container, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("source path required")
	}
	if opts.Table == nil {
		opts.Table = codec.DefaultTable()
	}
	if strings.TrimSpace(opts.FFprobe) == "" {
		opts.FFprobe = "ffprobe"
	}
	return &Container{
		Path:   path,
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "extract"),
	}, nil
}

// Table returns the capability table streams are classified against.
func (c *Container) Table() *codec.Table { return c.opts.Table }

// Probe runs ffprobe once and caches the result.
func (c *Container) Probe(ctx context.Context) (ffprobe.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.probed != nil {
		return *c.probed, nil
	}
	probeCtx := ctx
	if c.opts.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, c.opts.ProbeTimeout)
		defer cancel()
	}
	result, err := ffprobe.Inspect(probeCtx, c.opts.FFprobe, c.Path)
	if err != nil {
		return ffprobe.Result{}, &SourceError{Path: c.Path, Err: err}
	}
	c.probed = &result
	return result, nil
}

// Skipped records a subtitle stream that could not be classified.
type Skipped struct {
	Index int
	Codec string
	Err   error
}

// Classification is the outcome of classifying every subtitle stream.
type Classification struct {
	Streams []*subtitle.Stream
	Skipped []Skipped
	Probe   ffprobe.Result
}

// Classify probes the source and classifies its subtitle streams. Streams
// with an unsupported codec or unknown language are reported in Skipped.
func (c *Container) Classify(ctx context.Context) (Classification, error) {
	result, err := c.Probe(ctx)
	if err != nil {
		return Classification{}, err
	}
	raw := result.SubtitleStreams()
	streams := make([]*subtitle.Stream, len(raw))
	failures := make([]error, len(raw))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range raw {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			streams[i], failures[i] = subtitle.New(raw[i], c.opts.Table)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Classification{}, err
	}

	logger := logging.WithContext(logging.WithSource(ctx, c.Path), c.logger)
	out := Classification{Probe: result}
	for i, stream := range streams {
		if failures[i] != nil {
			logger.Debug("ignoring subtitle stream",
				logging.Int(logging.FieldStreamIndex, raw[i].Index),
				logging.String(logging.FieldCodec, raw[i].CodecName),
				logging.Error(failures[i]),
				logging.ErrorKind(failures[i]),
			)
			out.Skipped = append(out.Skipped, Skipped{Index: raw[i].Index, Codec: raw[i].CodecName, Err: failures[i]})
			continue
		}
		logger.Debug("classified subtitle stream",
			logging.Int(logging.FieldStreamIndex, stream.Index),
			logging.String(logging.FieldCodec, stream.Codec.ID),
			logging.String(logging.FieldLanguage, stream.Language.String()),
			logging.String(logging.FieldDisposition, stream.Disposition.String()),
		)
		out.Streams = append(out.Streams, stream)
	}
	if len(out.Streams) == 0 {
		logger.Debug("source has no usable subtitle streams")
	} else {
		logger.Debug("found subtitle streams", logging.Int("count", len(out.Streams)))
	}
	return out, nil
}

// Subtitles returns the classified subtitle streams in container order.
func (c *Container) Subtitles(ctx context.Context) ([]*subtitle.Stream, error) {
	classified, err := c.Classify(ctx)
	if err != nil {
		return nil, err
	}
	return classified.Streams, nil
}

func (c *Container) duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.probed == nil {
		return 0
	}
	ns := c.probed.DurationSeconds() * float64(time.Second)
	if ns <= 0 || ns >= math.MaxInt64 {
		return 0
	}
	return time.Duration(ns)
}
