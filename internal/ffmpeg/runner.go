package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"subsift/internal/logging"
)

const stderrTailLines = 20

// Command is a single ffmpeg invocation.
type Command struct {
	// Args excludes the binary itself.
	Args     []string
	Progress func(Progress)
}

// Option configures the runner.
type Option func(*Runner)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(r *Runner) {
		if exec != nil {
			r.exec = exec
		}
	}
}

// WithWaitDelay bounds how long Run waits for output pipes to close once
// ffmpeg has been killed. It only applies to the default executor.
func WithWaitDelay(d time.Duration) Option {
	return func(r *Runner) {
		if ce, ok := r.exec.(commandExecutor); ok && d > 0 {
			ce.waitDelay = d
			r.exec = ce
		}
	}
}

// WithLogger routes ffmpeg output lines to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Runner wraps ffmpeg CLI invocations.
type Runner struct {
	binary  string
	timeout time.Duration
	exec    Executor
	logger  *slog.Logger
}

// New constructs a runner. A non-positive timeout disables the deadline.
func New(binary string, timeoutSeconds int, opts ...Option) (*Runner, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	runner := &Runner{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner, nil
}

// Binary returns the configured executable.
func (r *Runner) Binary() string { return r.binary }

// Run executes cmd and blocks until ffmpeg exits or the timeout elapses.
func (r *Runner) Run(ctx context.Context, cmd Command) error {
	if len(cmd.Args) == 0 {
		return errors.New("ffmpeg command has no arguments")
	}
	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	logger := logging.WithContext(ctx, r.logger)
	logger.Debug("running ffmpeg",
		logging.String(logging.FieldCommand, r.binary+" "+strings.Join(cmd.Args, " ")),
		logging.Duration("timeout", r.timeout),
	)

	tail := make([]string, 0, stderrTailLines)
	err := r.exec.Run(runCtx, r.binary, cmd.Args, func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}
		if update, ok := parseProgress(line); ok {
			if cmd.Progress != nil {
				cmd.Progress(update)
			}
			return
		}
		logger.Debug("ffmpeg output", logging.String("line", line))
		if len(tail) == stderrTailLines {
			tail = append(tail[:0], tail[1:]...)
		}
		tail = append(tail, line)
	})
	if err == nil {
		return nil
	}

	runErr := &RunError{ExitCode: -1, Stderr: tail, Err: err}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		runErr.ExitCode = exitErr.ExitCode()
	}
	if ctxErr := runCtx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		runErr.Err = fmt.Errorf("%w: %w", ctxErr, err)
	}
	return runErr
}

// BaseArgs returns the input preamble shared by every extraction:
// -v <level> [-stats] -y -i <input>.
func BaseArgs(logLevel string, stats bool, input string) []string {
	logLevel = strings.TrimSpace(logLevel)
	if logLevel == "" {
		logLevel = "quiet"
	}
	args := []string{"-v", logLevel}
	if stats {
		args = append(args, "-stats")
	}
	return append(args, "-y", "-i", input)
}
