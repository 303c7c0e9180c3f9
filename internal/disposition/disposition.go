// Package disposition classifies the role of a subtitle stream.
//
// Flags start from ffprobe's structured disposition map and are then
// completed from the stream title: a track named "Commentary" or "SDH" is
// marked as such even when the muxer never set the flag.
package disposition

import "strings"

// Flags mirrors ffprobe's subtitle disposition fields in their declared order.
type Flags struct {
	Default         bool
	Dub             bool
	Original        bool
	Comment         bool
	Lyrics          bool
	Karaoke         bool
	Forced          bool
	HearingImpaired bool
	VisualImpaired  bool
	CleanEffects    bool
	AttachedPic     bool
	TimedThumbnails bool
}

// Flag names as reported by ffprobe.
const (
	NameDefault         = "default"
	NameDub             = "dub"
	NameOriginal        = "original"
	NameComment         = "comment"
	NameLyrics          = "lyrics"
	NameKaraoke         = "karaoke"
	NameForced          = "forced"
	NameHearingImpaired = "hearing_impaired"
	NameVisualImpaired  = "visual_impaired"
	NameCleanEffects    = "clean_effects"
	NameAttachedPic     = "attached_pic"
	NameTimedThumbnails = "timed_thumbnails"
)

type field struct {
	name     string
	semantic bool
	ptr      func(*Flags) *bool
}

// fields lists every flag in declared order. Semantic flags are the ones
// that make a stream non-generic and can appear in a file suffix.
var fields = []field{
	{NameDefault, false, func(f *Flags) *bool { return &f.Default }},
	{NameDub, false, func(f *Flags) *bool { return &f.Dub }},
	{NameOriginal, false, func(f *Flags) *bool { return &f.Original }},
	{NameComment, true, func(f *Flags) *bool { return &f.Comment }},
	{NameLyrics, false, func(f *Flags) *bool { return &f.Lyrics }},
	{NameKaraoke, true, func(f *Flags) *bool { return &f.Karaoke }},
	{NameForced, true, func(f *Flags) *bool { return &f.Forced }},
	{NameHearingImpaired, true, func(f *Flags) *bool { return &f.HearingImpaired }},
	{NameVisualImpaired, true, func(f *Flags) *bool { return &f.VisualImpaired }},
	{NameCleanEffects, false, func(f *Flags) *bool { return &f.CleanEffects }},
	{NameAttachedPic, false, func(f *Flags) *bool { return &f.AttachedPic }},
	{NameTimedThumbnails, false, func(f *Flags) *bool { return &f.TimedThumbnails }},
}

var fieldByName = func() map[string]field {
	m := make(map[string]field, len(fields))
	for _, f := range fields {
		m[f.name] = f
	}
	return m
}()

// Classify builds flags from ffprobe's disposition map. Unknown keys are
// ignored; any non-zero value counts as set.
func Classify(raw map[string]int) Flags {
	var flags Flags
	for key, value := range raw {
		f, ok := fieldByName[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			continue
		}
		*f.ptr(&flags) = value != 0
	}
	return flags
}

type titleRule struct {
	name     string
	keywords []string
}

// titleRules are checked in order and scanning stops at the first category
// with a matching keyword, so "Forced Karaoke" is forced.
var titleRules = []titleRule{
	{NameComment, []string{"comment", "commentary"}},
	{NameForced, []string{"forced", "non english", "non-english", "foreign"}},
	{NameKaraoke, []string{"karaoke"}},
	{NameHearingImpaired, []string{"sdh", "hearing impaired", "cc"}},
	{NameVisualImpaired, []string{"signs"}},
}

// InferFromTitle returns a copy of f with the first title-matched category
// set. It never clears a flag.
func InferFromTitle(f Flags, title string) Flags {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return f
	}
	for _, rule := range titleRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(title, keyword) {
				*fieldByName[rule.name].ptr(&f) = true
				return f
			}
		}
	}
	return f
}

// Generic reports whether no distinguishing flag is set.
func (f Flags) Generic() bool {
	return !(f.Comment || f.Karaoke || f.Forced || f.HearingImpaired || f.VisualImpaired)
}

// Suffix returns the name of the first semantic flag in declared order, or
// an empty string for generic streams.
func (f Flags) Suffix() string {
	for _, fd := range fields {
		if fd.semantic && *fd.ptr(&f) {
			return fd.name
		}
	}
	return ""
}

// Names returns every set flag in declared order.
func (f Flags) Names() []string {
	var names []string
	for _, fd := range fields {
		if *fd.ptr(&f) {
			names = append(names, fd.name)
		}
	}
	return names
}

// Has reports whether the named flag is set.
func (f Flags) Has(name string) bool {
	fd, ok := fieldByName[name]
	if !ok {
		return false
	}
	return *fd.ptr(&f)
}

func (f Flags) String() string {
	names := f.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
