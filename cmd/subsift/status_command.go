package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"subsift/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check binaries, directories and the run journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := isTerminal(out)
			var lines []string
			failed := 0

			lines = append(lines, sectionHeader("Binaries", colorize)...)
			for _, status := range preflight.DescribeBinaries(cmd.Context(), preflight.CheckSystemDeps(cmd.Context(), cfg)) {
				level, msg := binaryLevel(status)
				if level == levelError {
					failed++
				}
				lines = append(lines, statusLine(status.Name, level, msg, colorize))
			}

			lines = append(lines, "")
			lines = append(lines, sectionHeader("Storage", colorize)...)
			checks := []preflight.Result{preflight.CheckDirectoryAccess("State directory", cfg.Paths.StateDir)}
			if dir := strings.TrimSpace(cfg.Extract.OutputDir); dir != "" {
				checks = append(checks, preflight.CheckOutputDirectory(dir))
			} else {
				lines = append(lines, statusLine("Output directory", levelInfo, "next to each source", colorize))
			}
			checks = append(checks, preflight.CheckJournal(cmd.Context(), cfg))
			for _, check := range checks {
				level := checkLevel(check)
				if level == levelError {
					failed++
				}
				lines = append(lines, statusLine(check.Name, level, check.Detail, colorize))
			}

			lines = append(lines, "")
			lines = append(lines, sectionHeader("Defaults", colorize)...)
			lines = append(lines,
				statusLine("Format", levelInfo, cfg.Extract.DefaultFormat, colorize),
				statusLine("Overwrite", levelInfo, yesNo(cfg.Extract.Overwrite), colorize),
				statusLine("Copy fallback", levelInfo, yesNo(cfg.Extract.FallbackToConvert), colorize),
			)

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			if failed > 0 {
				return fmt.Errorf("%d status check(s) failed", failed)
			}
			return nil
		},
	}
}
