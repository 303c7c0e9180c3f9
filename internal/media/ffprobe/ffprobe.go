package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
	raw     []byte
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index       int               `json:"index"`
	CodecName   string            `json:"codec_name"`
	CodecType   string            `json:"codec_type"`
	CodecTag    string            `json:"codec_tag_string"`
	TimeBase    string            `json:"time_base"`
	StartPTS    Value             `json:"start_pts"`
	StartTime   Value             `json:"start_time"`
	DurationTS  Value             `json:"duration_ts"`
	Duration    Value             `json:"duration"`
	BitRate     Value             `json:"bit_rate"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Disposition Disposition       `json:"disposition"`
	Tags        map[string]string `json:"tags"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string            `json:"filename"`
	NBStreams  int               `json:"nb_streams"`
	Duration   Value             `json:"duration"`
	Size       Value             `json:"size"`
	BitRate    Value             `json:"bit_rate"`
	FormatName string            `json:"format_name"`
	Tags       map[string]string `json:"tags"`
}

// Disposition holds ffprobe's per-stream disposition flags. Decoding never
// fails on a single flag: any value other than a non-zero number reads as 0.
type Disposition map[string]int

// UnmarshalJSON decodes the flag object tolerantly. Anything that is not an
// object yields an empty map.
func (d *Disposition) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		*d = nil
		return nil
	}
	flags := make(Disposition, len(raw))
	for key, value := range raw {
		var f float64
		if err := json.Unmarshal(value, &f); err == nil && f != 0 {
			flags[key] = 1
		} else {
			flags[key] = 0
		}
	}
	*d = flags
	return nil
}

// Value is a numeric field that ffprobe reports as a quoted string, a bare
// number, "N/A" or null depending on version and container. The raw text is
// kept; an empty Value means the field was absent.
type Value string

// UnmarshalJSON accepts strings, numbers and null.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("ffprobe value %s: %w", data, err)
	}
	*v = Value(n.String())
	return nil
}

// Float returns the parsed value and whether it was present and numeric.
func (v Value) Float() (float64, bool) {
	cleaned := strings.TrimSpace(string(v))
	if cleaned == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}
	return parsed, true
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "quiet", "-print_format", "json", "-show_format", "-show_streams", "--", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return Parse(output)
}

// Parse decodes an ffprobe JSON document.
func Parse(output []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	result.raw = append([]byte(nil), output...)
	return result, nil
}

// RawJSON returns the raw ffprobe JSON payload.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// SubtitleStreams returns the subtitle streams in container order.
func (r Result) SubtitleStreams() []Stream {
	var streams []Stream
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "subtitle") {
			streams = append(streams, stream)
		}
	}
	return streams
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	seconds, _ := r.Format.Duration.Float()
	return seconds
}

// SizeBytes returns the reported container size in bytes, or 0 when unavailable.
func (r Result) SizeBytes() int64 {
	size, ok := r.Format.Size.Float()
	if !ok || size < 0 {
		return 0
	}
	return int64(size)
}

// BitRate returns the container bitrate in bits per second, or 0 when unavailable.
func (r Result) BitRate() int64 {
	rate, ok := r.Format.BitRate.Float()
	if !ok || rate < 0 {
		return 0
	}
	return int64(rate)
}
