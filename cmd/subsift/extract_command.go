package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"subsift/internal/config"
	"subsift/internal/extract"
	"subsift/internal/journal"
	"subsift/internal/logging"
	"subsift/internal/preflight"
	"subsift/internal/subtitle"
)

type extractionFlags struct {
	dir         string
	noOverwrite bool
	indexes     []int
	languages   []string
	asJSON      bool
	format      string
	noFallback  bool
}

func (f *extractionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "dir", "", "Write subtitles to this directory instead of next to the source")
	cmd.Flags().BoolVar(&f.noOverwrite, "no-overwrite", false, "Skip subtitles whose output file already exists")
	cmd.Flags().IntSliceVar(&f.indexes, "index", nil, "Only extract these stream indexes (repeatable)")
	cmd.Flags().StringSliceVar(&f.languages, "language", nil, "Only extract streams in these languages, as codes or names (repeatable)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Output as JSON")
}

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var flags extractionFlags
	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Convert subtitle streams to a text format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtraction(cmd, ctx, args[0], extract.ModeConvert, flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Target format (defaults to extract.default_format)")
	return cmd
}

func newCopyCommand(ctx *commandContext) *cobra.Command {
	var flags extractionFlags
	cmd := &cobra.Command{
		Use:   "copy <file>",
		Short: "Copy subtitle streams in their native format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtraction(cmd, ctx, args[0], extract.ModeCopy, flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.noFallback, "no-fallback", false, "Fail instead of converting streams that cannot be copied")
	return cmd
}

type extractionOutputJSON struct {
	Index   int    `json:"index"`
	Path    string `json:"path"`
	Mode    string `json:"mode"`
	Format  string `json:"format"`
	Status  string `json:"status"`
	Bytes   int64  `json:"bytes,omitempty"`
	Missing bool   `json:"missing,omitempty"`
}

type extractionJSON struct {
	RunID   string                 `json:"run_id"`
	Source  string                 `json:"source"`
	Mode    string                 `json:"mode"`
	Outputs []extractionOutputJSON `json:"outputs"`
}

func runExtraction(cmd *cobra.Command, ctx *commandContext, source string, mode extract.Mode, flags extractionFlags) error {
	container, cfg, logger, err := ctx.openContainer(source)
	if err != nil {
		return err
	}
	if failed := preflight.Failed(preflight.RunAll(cmd.Context(), cfg)); len(failed) > 0 {
		details := make([]string, 0, len(failed))
		for _, f := range failed {
			details = append(details, fmt.Sprintf("%s: %s", f.Name, f.Detail))
		}
		return fmt.Errorf("preflight failed: %s", strings.Join(details, "; "))
	}

	absSource, err := config.ExpandPath(container.Path)
	if err != nil {
		return err
	}
	runID := journal.NewRunID()
	runCtx := logging.WithSource(logging.WithRunID(cmd.Context(), runID), source)
	run := &journal.Run{ID: runID, Source: absSource, Mode: string(mode), StartedAt: time.Now()}

	result, err := executeExtraction(runCtx, container, cfg, mode, flags, run)
	run.FinishedAt = time.Now()
	recordRun(runCtx, cfg, logger, run, result, err)
	if err != nil {
		return err
	}

	report := extractionJSON{RunID: runID, Source: absSource, Mode: string(mode), Outputs: extractionOutputs(result)}
	if flags.asJSON {
		return writeJSON(cmd, report)
	}
	out := cmd.OutOrStdout()
	if len(report.Outputs) == 0 {
		fmt.Fprintln(out, "No subtitles to extract")
		return nil
	}
	rows := make([][]string, 0, len(report.Outputs))
	for _, o := range report.Outputs {
		rows = append(rows, []string{strconv.Itoa(o.Index), displayLabel(o.Mode), o.Path, formatBytes(o.Bytes), displayLabel(o.Status)})
	}
	fmt.Fprintln(out, renderTable("", []string{"#", "Mode", "Output", "Size", "Status"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft}))
	return nil
}

func executeExtraction(ctx context.Context, container *extract.Container, cfg *config.Config, mode extract.Mode, flags extractionFlags, run *journal.Run) (extract.Result, error) {
	streams, err := container.Subtitles(ctx)
	if err != nil {
		return extract.Result{}, err
	}
	streams, err = selectStreams(streams, flags.indexes)
	if err != nil {
		return extract.Result{}, err
	}
	streams, err = extract.ByLanguage(streams, flags.languages)
	if err != nil {
		return extract.Result{}, err
	}

	naming := extract.Naming{Dir: cfg.Extract.OutputDir, Overwrite: cfg.Extract.Overwrite && !flags.noOverwrite}
	if dir := strings.TrimSpace(flags.dir); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return extract.Result{}, fmt.Errorf("resolve --dir: %w", err)
		}
		naming.Dir = expanded
	}

	if mode == extract.ModeCopy {
		run.Format = cfg.Extract.DefaultFormat
		return container.Copy(ctx, streams, extract.CopyOptions{
			Fallback:       cfg.Extract.FallbackToConvert && !flags.noFallback,
			FallbackFormat: cfg.Extract.DefaultFormat,
			Naming:         naming,
		})
	}
	format := strings.ToLower(strings.TrimSpace(flags.format))
	if format == "" {
		format = cfg.Extract.DefaultFormat
	}
	run.Format = format
	return container.Extract(ctx, streams, extract.ExtractOptions{Format: format, Naming: naming})
}

// selectStreams keeps the requested indexes in container order.
func selectStreams(streams []*subtitle.Stream, indexes []int) ([]*subtitle.Stream, error) {
	if len(indexes) == 0 {
		return streams, nil
	}
	var selected []*subtitle.Stream
	found := make(map[int]bool, len(indexes))
	for _, s := range streams {
		if slices.Contains(indexes, s.Index) {
			selected = append(selected, s)
			found[s.Index] = true
		}
	}
	for _, idx := range indexes {
		if !found[idx] {
			return nil, fmt.Errorf("stream %d is not an extractable subtitle stream (see `subsift probe --all`)", idx)
		}
	}
	return selected, nil
}

func recordRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, run *journal.Run, result extract.Result, runErr error) {
	if !cfg.Journal.Enabled {
		return
	}
	switch {
	case runErr != nil:
		run.Status = journal.StatusFailed
		run.ErrorMessage = runErr.Error()
		var classified interface{ ErrorKind() string }
		if errors.As(runErr, &classified) {
			run.ErrorKind = classified.ErrorKind()
		}
	case len(result.Missing()) > 0:
		run.Status = journal.StatusPartial
	default:
		run.Status = journal.StatusSucceeded
	}
	for _, item := range result.Items {
		run.Outputs = append(run.Outputs, journal.Output{
			StreamIndex: item.Index,
			Path:        item.Path,
			Mode:        string(item.Mode),
			Format:      item.Format,
			Suffix:      item.Suffix,
			Missing:     item.Missing,
			Bytes:       item.Bytes,
		})
	}

	j, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		logging.WarnWithContext(logger, "journal unavailable", "journal_open_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run not recorded in history"),
		)
		return
	}
	defer j.Close()
	if err := j.Record(ctx, run); err != nil {
		logging.WarnWithContext(logger, "journal write failed", "journal_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run not recorded in history"),
		)
	}
}

func extractionOutputs(result extract.Result) []extractionOutputJSON {
	outputs := make([]extractionOutputJSON, 0, len(result.Items)+len(result.Existing))
	for _, item := range result.Items {
		status := "written"
		if item.Missing {
			status = "missing"
		}
		outputs = append(outputs, extractionOutputJSON{
			Index: item.Index, Path: item.Path, Mode: string(item.Mode), Format: item.Format,
			Status: status, Bytes: item.Bytes, Missing: item.Missing,
		})
	}
	for _, item := range result.Existing {
		outputs = append(outputs, extractionOutputJSON{
			Index: item.Index, Path: item.Path, Mode: string(item.Mode), Format: item.Format, Status: "existing",
		})
	}
	sort.Slice(outputs, func(i, k int) bool { return outputs[i].Index < outputs[k].Index })
	return outputs
}
