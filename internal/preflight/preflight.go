package preflight

import (
	"context"
	"strings"

	"subsift/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks extraction needs: both binaries, the state
// directory and, when configured, the output directory.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	var results []Result
	for _, status := range CheckSystemDeps(ctx, cfg) {
		detail := status.Detail
		if status.Available {
			detail = status.Resolved
		}
		results = append(results, Result{Name: status.Name, Passed: status.Available || status.Optional, Detail: detail})
	}
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	if dir := strings.TrimSpace(cfg.Extract.OutputDir); dir != "" {
		results = append(results, CheckOutputDirectory(dir))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
