package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"subsift/internal/config"
	"subsift/internal/journal"
)

type historyOutputJSON struct {
	Index   int    `json:"index"`
	Path    string `json:"path"`
	Mode    string `json:"mode"`
	Format  string `json:"format"`
	Missing bool   `json:"missing,omitempty"`
	Bytes   int64  `json:"bytes,omitempty"`
}

type historyRunJSON struct {
	ID         string              `json:"id"`
	Source     string              `json:"source"`
	Mode       string              `json:"mode"`
	Format     string              `json:"format,omitempty"`
	Status     string              `json:"status"`
	ErrorKind  string              `json:"error_kind,omitempty"`
	Error      string              `json:"error,omitempty"`
	StartedAt  time.Time           `json:"started_at"`
	DurationMS int64               `json:"duration_ms"`
	Outputs    []historyOutputJSON `json:"outputs"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var source string
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent extraction runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return errors.New("journal is disabled (set journal.enabled = true)")
			}
			j, err := journal.Open(cfg.Journal.Path)
			if err != nil {
				return err
			}
			defer j.Close()

			filter := journal.Filter{Limit: limit}
			if s := strings.TrimSpace(source); s != "" {
				if filter.Source, err = config.ExpandPath(s); err != nil {
					return fmt.Errorf("resolve --source: %w", err)
				}
			}
			runs, err := j.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, historyReport(runs))
			}
			renderHistory(cmd, runs)
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Only show runs for this source file")
	cmd.Flags().IntVarP(&limit, "limit", "n", journal.DefaultLimit, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func historyReport(runs []journal.Run) []historyRunJSON {
	items := make([]historyRunJSON, 0, len(runs))
	for _, run := range runs {
		item := historyRunJSON{
			ID:         run.ID,
			Source:     run.Source,
			Mode:       run.Mode,
			Format:     run.Format,
			Status:     string(run.Status),
			ErrorKind:  run.ErrorKind,
			Error:      run.ErrorMessage,
			StartedAt:  run.StartedAt,
			DurationMS: run.Duration().Milliseconds(),
			Outputs:    make([]historyOutputJSON, 0, len(run.Outputs)),
		}
		for _, o := range run.Outputs {
			item.Outputs = append(item.Outputs, historyOutputJSON{
				Index: o.StreamIndex, Path: o.Path, Mode: o.Mode, Format: o.Format, Missing: o.Missing, Bytes: o.Bytes,
			})
		}
		items = append(items, item)
	}
	return items
}

func renderHistory(cmd *cobra.Command, runs []journal.Run) {
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No extraction runs recorded")
		return
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		status := displayLabel(string(run.Status))
		if run.ErrorKind != "" {
			status = fmt.Sprintf("%s (%s)", status, run.ErrorKind)
		}
		rows = append(rows, []string{
			shortRunID(run.ID),
			formatWhen(run.StartedAt),
			displayLabel(run.Mode),
			run.Source,
			strconv.Itoa(len(run.Outputs)),
			status,
		})
	}
	fmt.Fprintln(out, renderTable("", []string{"Run", "Started", "Mode", "Source", "Outputs", "Status"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}))
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
