// Package deps checks the external binaries subsift shells out to.
package deps

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Requirement defines an external binary subsift relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a binary.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	// Resolved is the absolute path found on PATH.
	Resolved string
	Version  string
	Detail   string
}

// MediaRequirements lists the ffmpeg tools used for probing and extraction.
func MediaRequirements(ffmpegBinary, ffprobeBinary string) []Requirement {
	return []Requirement{
		{Name: "FFprobe", Command: ffprobeBinary, Description: "Reads subtitle stream metadata"},
		{Name: "FFmpeg", Command: ffmpegBinary, Description: "Extracts and converts subtitle streams"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Resolved = resolved
		results = append(results, status)
	}
	return results
}

// Version runs `<binary> -version` and returns the version token from the
// banner ("ffmpeg version 6.1.1-3ubuntu5 Copyright ..." yields "6.1.1-3ubuntu5").
func Version(ctx context.Context, binary string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, "-version") //nolint:gosec
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s -version: %w", binary, err)
	}
	return parseVersion(stdout.String())
}

func parseVersion(banner string) (string, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(banner), "\n")
	fields := strings.Fields(line)
	for i := 0; i+1 < len(fields); i++ {
		if fields[i] == "version" {
			return fields[i+1], nil
		}
	}
	return "", fmt.Errorf("unrecognized version banner %q", line)
}
