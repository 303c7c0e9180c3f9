package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"subsift/internal/ffmpeg"
	"subsift/internal/logging"
	"subsift/internal/subtitle"
)

// ExtractOptions configures convert mode.
type ExtractOptions struct {
	// Format defaults to DefaultFormat.
	Format   string
	Naming   Naming
	Progress func(ffmpeg.Progress)
}

// CopyOptions configures copy mode.
type CopyOptions struct {
	Fallback bool
	// FallbackFormat defaults to DefaultFormat.
	FallbackFormat string
	Naming         Naming
	Progress       func(ffmpeg.Progress)
}

// Output describes one planned output file.
type Output struct {
	Index  int
	Path   string
	Mode   Mode
	Format string
	Suffix string
	// Missing is set when ffmpeg exited cleanly without writing the file.
	Missing bool
	Bytes   int64
}

// Result is the outcome of one extraction batch.
type Result struct {
	// Items holds the outputs ffmpeg was asked to write, keyed by stream index.
	Items map[int]Output
	// Existing holds outputs left untouched because overwriting was disabled.
	Existing []Output
	Elapsed  time.Duration
}

// Paths returns the output path per stream index.
func (r Result) Paths() map[int]string {
	paths := make(map[int]string, len(r.Items))
	for idx, item := range r.Items {
		paths[idx] = item.Path
	}
	return paths
}

// Missing returns the outputs that were not written.
func (r Result) Missing() []Output {
	var missing []Output
	for _, item := range r.Items {
		if item.Missing {
			missing = append(missing, item)
		}
	}
	return missing
}

// Extract converts every stream to one text format.
func (c *Container) Extract(ctx context.Context, streams []*subtitle.Stream, opts ExtractOptions) (Result, error) {
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = DefaultFormat
	}
	plans := make([]Plan, 0, len(streams))
	for _, stream := range streams {
		plan, err := PlanConvert(stream, c.opts.Table, format)
		if err != nil {
			return Result{}, fmt.Errorf("stream %d: %w", stream.Index, err)
		}
		plans = append(plans, plan)
	}
	return c.run(ctx, plans, opts.Naming, opts.Progress)
}

// Copy writes every stream in its native format.
func (c *Container) Copy(ctx context.Context, streams []*subtitle.Stream, opts CopyOptions) (Result, error) {
	fallback := ""
	if opts.Fallback {
		fallback = strings.ToLower(strings.TrimSpace(opts.FallbackFormat))
		if fallback == "" {
			fallback = DefaultFormat
		}
	}
	logger := logging.WithContext(logging.WithSource(ctx, c.Path), c.logger)
	plans := make([]Plan, 0, len(streams))
	for _, stream := range streams {
		plan, err := PlanCopy(stream, c.opts.Table, fallback)
		if err != nil {
			return Result{}, fmt.Errorf("stream %d: %w", stream.Index, err)
		}
		if plan.Mode == ModeFallback {
			logging.WarnWithContext(logger, "codec incompatible with copy; converting instead", "copy_fallback",
				logging.Int(logging.FieldStreamIndex, stream.Index),
				logging.String(logging.FieldCodec, stream.Codec.ID),
				logging.String("format", plan.Format),
				logging.String(logging.FieldErrorHint, "use extract to choose the conversion format"),
				logging.String(logging.FieldImpact, "subtitle written as "+plan.Format),
			)
		}
		plans = append(plans, plan)
	}
	return c.run(ctx, plans, opts.Naming, opts.Progress)
}

func (c *Container) run(ctx context.Context, plans []Plan, naming Naming, progress func(ffmpeg.Progress)) (Result, error) {
	if c.opts.FFmpeg == nil {
		return Result{}, errors.New("ffmpeg runner required")
	}
	ctx = logging.WithSource(ctx, c.Path)
	logger := logging.WithContext(ctx, c.logger)
	start := time.Now()

	if naming.Dir != "" {
		if err := os.MkdirAll(naming.Dir, 0o755); err != nil {
			return Result{}, fmt.Errorf("create output directory: %w", err)
		}
	}

	result := Result{Items: make(map[int]Output, len(plans))}
	args := ffmpeg.BaseArgs(c.opts.LogLevel, c.opts.Stats, c.Path)
	planner := newPathPlanner(c.Path, naming)
	for _, plan := range plans {
		path, skip := planner.next(plan.Stream.Suffix(), plan.Format)
		output := Output{
			Index:  plan.Stream.Index,
			Path:   path,
			Mode:   plan.Mode,
			Format: plan.Format,
			Suffix: plan.Stream.Suffix(),
		}
		if skip {
			logger.Debug("output exists; not overwriting", logging.String(logging.FieldOutput, path))
			result.Existing = append(result.Existing, output)
			continue
		}
		streamArgs, err := plan.Args(c.opts.Table, path)
		if err != nil {
			return Result{}, fmt.Errorf("stream %d: %w", plan.Stream.Index, err)
		}
		args = append(args, streamArgs...)
		result.Items[output.Index] = output
	}
	if len(result.Items) == 0 {
		logger.Debug("no subtitles to extract")
		return result, nil
	}

	if c.opts.LockDir != "" {
		lock, err := acquireSourceLock(c.opts.LockDir, c.Path)
		if err != nil {
			return Result{}, err
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				logger.Warn("release source lock failed", logging.Error(err))
			}
		}()
	}

	total := c.duration()
	sampler := logging.NewProgressSampler(25)
	phase := string(plans[0].Mode)
	err := c.opts.FFmpeg.Run(ctx, ffmpeg.Command{
		Args: args,
		Progress: func(update ffmpeg.Progress) {
			if progress != nil {
				progress(update)
			}
			percent := update.Percent(total)
			if sampler.ShouldLog(percent, phase) {
				attrs := []logging.Attr{logging.String(logging.FieldMode, phase), logging.Duration("position", update.Time)}
				if percent >= 0 {
					attrs = append(attrs, logging.Float64(logging.FieldProgress, percent))
				}
				logger.Info("extraction progress", logging.Args(attrs...)...)
			}
		},
	})
	if err != nil {
		return Result{}, &ExtractionError{Path: c.Path, Err: err}
	}

	for idx, item := range result.Items {
		info, statErr := os.Stat(item.Path)
		if statErr != nil || !info.Mode().IsRegular() {
			item.Missing = true
			logging.WarnWithContext(logger, "subtitle was not extracted", "output_missing",
				logging.Int(logging.FieldStreamIndex, idx),
				logging.String(logging.FieldOutput, item.Path),
				logging.String(logging.FieldErrorHint, "rerun with ffmpeg.log_level = \"error\" to see ffmpeg diagnostics"),
				logging.String(logging.FieldImpact, "subtitle not written"),
			)
		} else {
			item.Bytes = info.Size()
		}
		result.Items[idx] = item
	}
	result.Elapsed = time.Since(start)
	var written int64
	for _, item := range result.Items {
		written += item.Bytes
	}
	logger.Info("subtitle extraction finished",
		logging.Int("written", len(result.Items)-len(result.Missing())),
		logging.Int("missing", len(result.Missing())),
		logging.Int("existing", len(result.Existing)),
		logging.Int64("output_bytes", written),
		logging.Bool("overwrite", naming.Overwrite),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}
