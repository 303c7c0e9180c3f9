package journal

import "time"

// Status is the outcome of a run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	// StatusPartial means ffmpeg succeeded but some outputs are missing.
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
)

// Run is one recorded extract or copy invocation.
type Run struct {
	ID           string
	Source       string
	Mode         string
	Format       string
	Status       Status
	ErrorKind    string
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   time.Time
	Outputs      []Output
}

// Duration returns the wall time of the run.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Output is one subtitle file a run planned to write.
type Output struct {
	StreamIndex int
	Path        string
	Mode        string
	Format      string
	Suffix      string
	Missing     bool
	Bytes       int64
}

// DefaultLimit caps List results when Filter.Limit is not positive.
const DefaultLimit = 20

// Filter narrows List results.
type Filter struct {
	// Source matches the exact source path when set.
	Source string
	// Limit defaults to DefaultLimit.
	Limit int
}
