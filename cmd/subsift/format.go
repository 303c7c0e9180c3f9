package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
)

var titleCaser = cases.Title(xlanguage.English)

// displayLabel turns identifiers like "hearing_impaired" into "Hearing Impaired".
func displayLabel(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", " "))
	if value == "" {
		return ""
	}
	return titleCaser.String(value)
}

func displayList(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	labels := make([]string, len(names))
	for i, name := range names {
		labels[i] = displayLabel(name)
	}
	return strings.Join(labels, ", ")
}

func languageLabel(name, code string) string {
	if name != "" && name != code {
		return fmt.Sprintf("%s (%s)", name, code)
	}
	return code
}

func formatClock(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatBytes(n int64) string {
	if n <= 0 {
		return "-"
	}
	return humanize.IBytes(uint64(n))
}

func formatWhen(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	if time.Since(t) < 7*24*time.Hour {
		return humanize.Time(t)
	}
	return t.Local().Format("2006-01-02 15:04")
}
