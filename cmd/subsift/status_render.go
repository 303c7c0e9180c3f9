package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"subsift/internal/deps"
	"subsift/internal/preflight"
)

type statusLevel int

const (
	levelInfo statusLevel = iota
	levelOK
	levelWarn
	levelError
)

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorCyan   = "\x1b[36m"
)

const statusLabelWidth = 18

var statusLevels = [...]struct {
	label string
	color string
}{
	levelInfo:  {"INFO", colorCyan},
	levelOK:    {"OK", colorGreen},
	levelWarn:  {"WARN", colorYellow},
	levelError: {"ERROR", colorRed},
}

// statusLine renders "  Label:   [OK] message", colored as a whole when the
// writer is a terminal.
func statusLine(label string, level statusLevel, message string, colorize bool) string {
	badge := "[" + statusLevels[level].label + "]"
	if message != "" {
		badge += " " + message
	}
	line := fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", badge)
	if colorize {
		return statusLevels[level].color + line + colorReset
	}
	return line
}

func sectionHeader(title string, colorize bool) []string {
	heading := "== " + strings.TrimSpace(title) + " =="
	rule := strings.Repeat("-", len(heading))
	if colorize {
		return []string{colorCyan + heading + colorReset, colorCyan + rule + colorReset}
	}
	return []string{heading, rule}
}

// binaryLevel maps a dependency check onto a status level. Missing optional
// binaries only warn.
func binaryLevel(status deps.Status) (statusLevel, string) {
	if status.Available {
		msg := status.Resolved
		if status.Version != "" {
			msg = fmt.Sprintf("%s (%s)", status.Resolved, status.Version)
		}
		return levelOK, msg
	}
	if status.Optional {
		return levelWarn, status.Detail
	}
	return levelError, status.Detail
}

func checkLevel(result preflight.Result) statusLevel {
	if result.Passed {
		return levelOK
	}
	return levelError
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
