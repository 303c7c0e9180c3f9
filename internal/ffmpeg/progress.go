package ffmpeg

import (
	"regexp"
	"strings"
	"time"

	"subsift/internal/streamtags"
)

// Progress is one parsed -stats update.
type Progress struct {
	Size    string
	Time    time.Duration
	Bitrate string
	Speed   string
}

// Percent returns the share of total covered by p.Time, clamped to 100, or
// -1 when total is unknown.
func (p Progress) Percent(total time.Duration) float64 {
	if total <= 0 {
		return -1
	}
	percent := float64(p.Time) / float64(total) * 100
	if percent > 100 {
		return 100
	}
	return percent
}

var progressPattern = regexp.MustCompile(
	`size=\s*(\d+\w*B|N/A)\s+time=(\d+:\d+:\d+\.\d+)\s+bitrate=\s*([\d\.]+(?:e[\+\-]?\d+)?\w*bits/s|N/A)\s+speed=\s*([\d\.]+(?:e[\+\-]?\d+)?x|N/A)`,
)

func parseProgress(line string) (Progress, bool) {
	match := progressPattern.FindStringSubmatch(line)
	if match == nil {
		return Progress{}, false
	}
	return Progress{
		Size:    match[1],
		Time:    streamtags.ParseClock(match[2]),
		Bitrate: match[3],
		Speed:   strings.TrimSpace(match[4]),
	}, true
}
