package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onLine func(string)) error
}

// defaultWaitDelay bounds how long Wait keeps reading output after ffmpeg
// is killed, in case a child process still holds the pipes.
const defaultWaitDelay = 5 * time.Second

type commandExecutor struct {
	waitDelay time.Duration
}

func (e commandExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.WaitDelay = e.waitDelay
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = defaultWaitDelay
	}
	stdoutR, stdoutW := io.Pipe()
	stderrR, stderrW := io.Pipe()
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		scanErr error
		once    sync.Once
	)
	scan := func(r *io.PipeReader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Split(scanStatLines)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" || onLine == nil {
				continue
			}
			mu.Lock()
			onLine(line)
			mu.Unlock()
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() { scanErr = err })
			_ = cmd.Process.Kill()
		}
		_, _ = io.Copy(io.Discard, r)
	}

	wg.Add(2)
	go scan(stdoutR)
	go scan(stderrR)
	waitErr := cmd.Wait()
	_ = stdoutW.Close()
	_ = stderrW.Close()
	wg.Wait()

	if scanErr != nil {
		return fmt.Errorf("scan output: %w", scanErr)
	}
	if waitErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("wait command: %w", ctxErr)
		}
		return fmt.Errorf("wait command: %w", waitErr)
	}
	return nil
}

// scanStatLines splits on either \r or \n.
func scanStatLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
