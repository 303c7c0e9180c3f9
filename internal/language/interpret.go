package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Tag is a resolved stream language with an optional display region.
type Tag struct {
	Alpha3 string // ISO 639-2/T
	Alpha2 string // ISO 639-1
	Region string // ISO 3166-1 alpha-2, empty when no override applies
}

// String returns the BCP 47 form used in output file names (en, pt-BR).
func (t Tag) String() string {
	if t.Region == "" {
		return t.Alpha2
	}
	if tag, err := t.bcp47(); err == nil {
		return tag.String()
	}
	return t.Alpha2 + "-" + t.Region
}

// DisplayName returns an English name for the tag including its region.
func (t Tag) DisplayName() string {
	tag, err := t.bcp47()
	if err != nil {
		return DisplayName(t.Alpha3)
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return DisplayName(t.Alpha3)
}

func (t Tag) bcp47() (xlanguage.Tag, error) {
	base, err := xlanguage.ParseBase(t.Alpha2)
	if err != nil {
		return xlanguage.Und, err
	}
	if t.Region == "" {
		return xlanguage.Compose(base)
	}
	region, err := xlanguage.ParseRegion(t.Region)
	if err != nil {
		return xlanguage.Und, err
	}
	return xlanguage.Compose(base, region)
}

// undetermined lists values producers use to say "no language".
var undetermined = map[string]struct{}{
	"und":     {},
	"unk":     {},
	"unknown": {},
	"mis":     {},
	"mul":     {},
	"zxx":     {},
	"n/a":     {},
	"none":    {},
}

type regionRule struct {
	code3    string
	region   xlanguage.Region
	keywords []string
}

// regionRules are evaluated in order; the first rule for the resolved
// language whose keyword appears in the title wins.
var regionRules = []regionRule{
	{
		code3:    "spa",
		region:   xlanguage.MustParseRegion("MX"),
		keywords: []string{"es-la", "spa-la", "spl", "mx", "latin", "mexic", "argent", "latam", "latino"},
	},
	{
		code3:    "por",
		region:   xlanguage.MustParseRegion("BR"),
		keywords: []string{"pt-br", "pob", "pb", "brazilian", "brasil", "brazil"},
	},
}

var titleKeys = []string{"title", "TITLE", "Title"}

// Interpret resolves the language of a stream from its tag mapping. It fails
// with a *NotFoundError when no language key is present, when the value is
// an undetermined marker, or when the registry cannot resolve it.
func Interpret(tags map[string]string) (Tag, error) {
	raw := ExtractFromTags(tags)
	if raw == "" {
		return Tag{}, &NotFoundError{Reason: "no language tag"}
	}
	if _, ok := undetermined[raw]; ok {
		return Tag{}, &NotFoundError{Raw: raw, Reason: "undetermined language"}
	}
	code := normalizeCode(raw)
	if _, ok := undetermined[code]; ok {
		return Tag{}, &NotFoundError{Raw: raw, Reason: "undetermined language"}
	}
	e := lookup(code)
	if e == nil {
		return Tag{}, &NotFoundError{Raw: raw, Reason: "not in language registry"}
	}
	tag := Tag{Alpha3: e.code3, Alpha2: e.code2}
	if region, ok := regionFromTitle(e.code3, titleFromTags(tags)); ok {
		tag.Region = region.String()
	}
	return tag, nil
}

// normalizeCode strips producer suffixes such as "-US", "_forced" or " (SDH)".
func normalizeCode(raw string) string {
	code := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.IndexAny(code, "-_.( \t"); i > 0 {
		code = code[:i]
	}
	return code
}

func regionFromTitle(code3, title string) (xlanguage.Region, bool) {
	if title == "" {
		return xlanguage.Region{}, false
	}
	lowered := strings.ToLower(title)
	for _, rule := range regionRules {
		if rule.code3 != code3 {
			continue
		}
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.region, true
			}
		}
	}
	return xlanguage.Region{}, false
}

func titleFromTags(tags map[string]string) string {
	for _, key := range titleKeys {
		if value := strings.TrimSpace(tags[key]); value != "" {
			return value
		}
	}
	return ""
}
