package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"subsift/internal/extract"
	"subsift/internal/logging"
)

type probeStreamJSON struct {
	Index        int      `json:"index"`
	Codec        string   `json:"codec"`
	Kind         string   `json:"kind"`
	Language     string   `json:"language"`
	LanguageName string   `json:"language_name"`
	Alpha3       string   `json:"alpha3"`
	Disposition  []string `json:"disposition"`
	Title        string   `json:"title,omitempty"`
	DurationMS   int64    `json:"duration_ms"`
	Bytes        int64    `json:"bytes,omitempty"`
	Suffix       string   `json:"suffix"`
	Copy         bool     `json:"copy"`
	Convert      bool     `json:"convert"`
}

type probeSkippedJSON struct {
	Index  int    `json:"index"`
	Codec  string `json:"codec"`
	Reason string `json:"reason"`
}

type probeJSON struct {
	Source  string             `json:"source"`
	Streams []probeStreamJSON  `json:"streams"`
	Skipped []probeSkippedJSON `json:"skipped,omitempty"`
}

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var showAll bool

	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "List the subtitle streams of a media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, _, logger, err := ctx.openContainer(args[0])
			if err != nil {
				return err
			}
			classified, err := container.Classify(logging.WithSource(cmd.Context(), args[0]))
			if err != nil {
				return err
			}
			logger.Debug("probe complete", logging.String(logging.FieldSource, args[0]), logging.Int("streams", len(classified.Streams)))

			report := buildProbeReport(container.Path, classified, showAll)
			if asJSON {
				return writeJSON(cmd, report)
			}
			renderProbeReport(cmd, report, showAll)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&showAll, "all", false, "Also list streams that cannot be extracted")
	return cmd
}

func buildProbeReport(source string, classified extract.Classification, includeSkipped bool) probeJSON {
	report := probeJSON{Source: source, Streams: make([]probeStreamJSON, 0, len(classified.Streams))}
	for _, s := range classified.Streams {
		names := s.Disposition.Names()
		if names == nil {
			names = []string{}
		}
		report.Streams = append(report.Streams, probeStreamJSON{
			Index:        s.Index,
			Codec:        s.Codec.ID,
			Kind:         string(s.Codec.Kind),
			Language:     s.Language.String(),
			LanguageName: s.Language.DisplayName(),
			Alpha3:       s.Language.Alpha3,
			Disposition:  names,
			Title:        s.Tags.Title,
			DurationMS:   s.Timing.Duration.Milliseconds(),
			Bytes:        s.Tags.Stats.Bytes,
			Suffix:       s.Suffix(),
			Copy:         s.Codec.Copy,
			Convert:      s.Codec.Convert,
		})
	}
	if includeSkipped {
		for _, skip := range classified.Skipped {
			report.Skipped = append(report.Skipped, probeSkippedJSON{Index: skip.Index, Codec: skip.Codec, Reason: skip.Err.Error()})
		}
	}
	return report
}

func renderProbeReport(cmd *cobra.Command, report probeJSON, showAll bool) {
	out := cmd.OutOrStdout()
	if len(report.Streams) == 0 {
		fmt.Fprintf(out, "No usable subtitle streams in %s\n", report.Source)
	} else {
		rows := make([][]string, 0, len(report.Streams))
		for _, s := range report.Streams {
			rows = append(rows, []string{
				strconv.Itoa(s.Index),
				s.Codec,
				displayLabel(s.Kind),
				languageLabel(s.LanguageName, s.Language),
				displayList(s.Disposition),
				formatClock(time.Duration(s.DurationMS) * time.Millisecond),
				formatBytes(s.Bytes),
				s.Suffix,
			})
		}
		fmt.Fprintln(out, renderTable(report.Source,
			[]string{"#", "Codec", "Kind", "Language", "Disposition", "Duration", "Size", "Suffix"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
		))
	}
	if showAll && len(report.Skipped) > 0 {
		rows := make([][]string, 0, len(report.Skipped))
		for _, skip := range report.Skipped {
			rows = append(rows, []string{strconv.Itoa(skip.Index), skip.Codec, skip.Reason})
		}
		fmt.Fprintln(out, renderTable("Skipped", []string{"#", "Codec", "Reason"}, rows, []columnAlignment{alignRight}))
	}
}
