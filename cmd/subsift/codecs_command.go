package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"subsift/internal/codec"
)

type codecJSON struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Copy       bool   `json:"copy"`
	CopyFormat string `json:"copy_format,omitempty"`
	Convert    bool   `json:"convert"`
}

func newCodecsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:         "codecs",
		Short:       "List supported subtitle codecs and what can be done with them",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			table := codec.DefaultTable()
			caps := table.Capabilities()
			if asJSON {
				items := make([]codecJSON, 0, len(caps))
				for _, c := range caps {
					items = append(items, codecJSON{ID: c.ID, Kind: string(c.Kind), Copy: c.Copy, CopyFormat: c.CopyFormat, Convert: c.Convert})
				}
				return writeJSON(cmd, items)
			}
			rows := make([][]string, 0, len(caps))
			for _, c := range caps {
				format := c.CopyFormat
				if format == "" {
					format = "-"
				}
				rows = append(rows, []string{c.ID, displayLabel(string(c.Kind)), yesNo(c.Copy), format, yesNo(c.Convert)})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable("Subtitle codecs", []string{"Codec", "Kind", "Copy", "Container", "Convert"}, rows, nil))
			fmt.Fprintf(out, "Convert targets: %s\n", strings.Join(table.Formats(), ", "))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
