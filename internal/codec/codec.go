package codec

import (
	"fmt"
	"sort"
	"strings"
)

// Kind distinguishes text subtitles from image-based ones.
type Kind string

const (
	KindText   Kind = "text"
	KindBitmap Kind = "bitmap"
)

// Capability describes what can be done with one codec.
type Capability struct {
	ID         string
	Kind       Kind
	Copy       bool
	CopyFormat string
	Convert    bool
}

// Table is an immutable registry of codec capabilities keyed by codec name.
type Table struct {
	byID    map[string]Capability
	formats map[string]struct{}
}

// NewTable builds a table from the given capabilities. Entries that allow
// copy without naming a copy format, or that repeat an id, are rejected.
func NewTable(caps ...Capability) (*Table, error) {
	t := &Table{
		byID:    make(map[string]Capability, len(caps)),
		formats: make(map[string]struct{}, len(caps)),
	}
	for _, c := range caps {
		c.ID = strings.TrimSpace(c.ID)
		c.CopyFormat = strings.TrimSpace(c.CopyFormat)
		if c.ID == "" {
			return nil, fmt.Errorf("codec table: empty codec id")
		}
		if _, dup := t.byID[c.ID]; dup {
			return nil, fmt.Errorf("codec table: duplicate codec %q", c.ID)
		}
		if c.Kind != KindText && c.Kind != KindBitmap {
			return nil, fmt.Errorf("codec table: %s: unknown kind %q", c.ID, c.Kind)
		}
		if c.Copy && c.CopyFormat == "" {
			return nil, fmt.Errorf("codec table: %s: copy enabled without a copy format", c.ID)
		}
		t.byID[c.ID] = c
		if c.CopyFormat != "" {
			t.formats[c.CopyFormat] = struct{}{}
		}
	}
	return t, nil
}

// DefaultTable returns the built-in capability table.
func DefaultTable() *Table {
	t, err := NewTable(defaultCapabilities...)
	if err != nil {
		panic(err)
	}
	return t
}

var defaultCapabilities = []Capability{
	{ID: "ass", Kind: KindText, Copy: true, CopyFormat: "ass", Convert: true},
	{ID: "subrip", Kind: KindText, Copy: true, CopyFormat: "srt", Convert: true},
	{ID: "webvtt", Kind: KindText, Copy: true, CopyFormat: "webvtt", Convert: true},
	{ID: "mov_text", Kind: KindText, Copy: false, Convert: true},
	{ID: "hdmv_pgs_subtitle", Kind: KindBitmap, Copy: true, CopyFormat: "sup", Convert: false},
	{ID: "dvb_subtitle", Kind: KindBitmap, Copy: true, CopyFormat: "sup", Convert: false},
	{ID: "dvd_subtitle", Kind: KindBitmap, Copy: true, CopyFormat: "sup", Convert: false},
}

// Lookup returns the capability registered for id. Unknown ids yield an
// *UnsupportedError.
func (t *Table) Lookup(id string) (Capability, error) {
	if t != nil {
		if c, ok := t.byID[id]; ok {
			return c, nil
		}
	}
	return Capability{}, &UnsupportedError{Codec: id, Op: OpLookup, Reason: "not in capability table"}
}

// IsKnownFormat reports whether format is the copy format of any registered codec.
func (t *Table) IsKnownFormat(format string) bool {
	if t == nil || format == "" {
		return false
	}
	_, ok := t.formats[format]
	return ok
}

// Capabilities returns every registered capability sorted by id.
func (t *Table) Capabilities() []Capability {
	if t == nil {
		return nil
	}
	out := make([]Capability, 0, len(t.byID))
	for _, c := range t.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Formats returns the distinct copy formats sorted alphabetically.
func (t *Table) Formats() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.formats))
	for f := range t.formats {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
