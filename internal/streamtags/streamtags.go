// Package streamtags normalizes the free-form tag maps ffprobe reports for a
// subtitle stream.
//
// Producers attach very different keys: mkvmerge adds statistics such as
// BPS-eng and DURATION-eng, MP4 muxers add handler_name and creation_time,
// and everything else carries little more than language and title. Parse
// probes the keys once and returns a single Tags value recording which shape
// was seen, so later code never has to guess again.
package streamtags

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Shape identifies the producer family a tag map came from.
type Shape int

const (
	ShapeGeneric Shape = iota
	ShapeMP4
	ShapeMatroska
)

func (s Shape) String() string {
	switch s {
	case ShapeMP4:
		return "mp4"
	case ShapeMatroska:
		return "matroska"
	default:
		return "generic"
	}
}

// Stats holds the statistics mkvmerge writes into Matroska track tags.
type Stats struct {
	BitRate  int64
	Duration time.Duration
	Frames   int64
	Bytes    int64
}

// Tags is the canonical form of a stream's tag map.
type Tags struct {
	Shape        Shape
	Title        string
	HandlerName  string
	CreationTime string
	Stats        Stats
	Raw          map[string]string
}

var matroskaKeys = []string{"BPS", "DURATION", "NUMBER_OF_FRAMES", "NUMBER_OF_BYTES", "_STATISTICS_TAGS", "_STATISTICS_WRITING_APP"}

var mp4Keys = []string{"handler_name", "creation_time"}

// Parse resolves the shape of raw and extracts the fields it carries. Raw is
// kept as given so the language interpreter sees the producer's keys.
func Parse(raw map[string]string) Tags {
	tags := Tags{
		Shape: probe(raw),
		Title: firstValue(raw, "title", "TITLE", "Title"),
		Raw:   raw,
	}
	switch tags.Shape {
	case ShapeMatroska:
		tags.Stats = Stats{
			BitRate:  parseInt(statValue(raw, "BPS")),
			Duration: ParseClock(statValue(raw, "DURATION")),
			Frames:   parseInt(statValue(raw, "NUMBER_OF_FRAMES")),
			Bytes:    parseInt(statValue(raw, "NUMBER_OF_BYTES")),
		}
	case ShapeMP4:
		tags.HandlerName = strings.TrimSpace(raw["handler_name"])
		tags.CreationTime = strings.TrimSpace(raw["creation_time"])
	}
	return tags
}

func probe(raw map[string]string) Shape {
	for _, key := range matroskaKeys {
		if statValue(raw, key) != "" {
			return ShapeMatroska
		}
	}
	for _, key := range mp4Keys {
		if _, ok := raw[key]; ok {
			return ShapeMP4
		}
	}
	return ShapeGeneric
}

// statValue looks up a Matroska statistic with or without the language
// suffix mkvmerge appends ("BPS" or "BPS-eng"). When several suffixed keys
// carry a value, the alphabetically first key wins.
func statValue(raw map[string]string, key string) string {
	if value := strings.TrimSpace(raw[key]); value != "" {
		return value
	}
	prefix := key + "-"
	var keys []string
	for k, v := range raw {
		if strings.HasPrefix(k, prefix) && strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	slices.Sort(keys)
	return strings.TrimSpace(raw[keys[0]])
}

func firstValue(raw map[string]string, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(raw[key]); value != "" {
			return value
		}
	}
	return ""
}

func parseInt(value string) int64 {
	if value == "" {
		return 0
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseClock parses an HH:MM:SS[.fraction] timestamp as written by
// mkvmerge. Commas are accepted as the decimal separator. Malformed or
// out-of-range input yields zero.
func ParseClock(value string) time.Duration {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0
	}
	var total float64
	for i, unit := range []float64{3600, 60, 1} {
		part := strings.ReplaceAll(strings.TrimSpace(parts[i]), ",", ".")
		n, err := strconv.ParseFloat(part, 64)
		if err != nil || n < 0 {
			return 0
		}
		total += n * unit
	}
	ns := math.Round(total * float64(time.Second))
	if ns >= math.MaxInt64 {
		return 0
	}
	return time.Duration(ns)
}
