package preflight

import (
	"context"
	"fmt"

	"subsift/internal/config"
	"subsift/internal/deps"
	"subsift/internal/journal"
)

// CheckJournal reports whether the run journal can be opened.
func CheckJournal(ctx context.Context, cfg *config.Config) Result {
	const name = "Journal"
	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if !cfg.Journal.Enabled {
		return Result{Name: name, Passed: true, Detail: "Disabled"}
	}
	j, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.Journal.Path, err)}
	}
	defer j.Close()
	runs, err := j.List(ctx, journal.Filter{Limit: 1})
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.Journal.Path, err)}
	}
	if len(runs) == 0 {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (no runs yet)", cfg.Journal.Path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (last run %s)", cfg.Journal.Path, runs[0].StartedAt.Local().Format("2006-01-02 15:04"))}
}

// DescribeBinaries augments available binaries with their reported version.
func DescribeBinaries(ctx context.Context, statuses []deps.Status) []deps.Status {
	out := make([]deps.Status, len(statuses))
	for i, status := range statuses {
		if status.Available {
			if version, err := deps.Version(ctx, status.Resolved); err == nil {
				status.Version = version
			}
		}
		out[i] = status
	}
	return out
}
