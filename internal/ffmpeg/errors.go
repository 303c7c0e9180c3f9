package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// RunError reports a failed ffmpeg invocation.
type RunError struct {
	ExitCode int
	// Stderr holds the last lines ffmpeg printed before exiting.
	Stderr []string
	Err    error
}

func (e *RunError) Error() string {
	msg := "ffmpeg failed"
	switch {
	case errors.Is(e.Err, context.DeadlineExceeded):
		msg = "ffmpeg timed out"
	case e.ExitCode > 0:
		msg = fmt.Sprintf("ffmpeg exited with status %d", e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if len(e.Stderr) > 0 {
		msg += " (" + e.Stderr[len(e.Stderr)-1] + ")"
	}
	return msg
}

func (e *RunError) Unwrap() error { return e.Err }

// ErrorKind classifies the failure for logs and the run journal.
func (e *RunError) ErrorKind() string {
	switch {
	case errors.Is(e.Err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(e.Err, context.Canceled):
		return "canceled"
	default:
		return "ffmpeg_failed"
	}
}

// StderrTail joins the captured stderr lines.
func (e *RunError) StderrTail() string {
	return strings.Join(e.Stderr, "\n")
}
