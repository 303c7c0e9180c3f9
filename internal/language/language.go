package language

import "strings"

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}},
	{"es", "spa", "", "Spanish", []string{"spanish", "espanol", "español"}},
	{"fr", "fra", "fre", "French", []string{"french", "francais", "français"}},
	{"de", "deu", "ger", "German", []string{"german", "deutsch"}},
	{"it", "ita", "", "Italian", []string{"italian", "italiano"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese", "portugues", "português"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"ar", "ara", "", "Arabic", []string{"arabic"}},
	{"hi", "hin", "", "Hindi", []string{"hindi"}},
	{"nl", "nld", "dut", "Dutch", []string{"dutch"}},
	{"pl", "pol", "", "Polish", []string{"polish", "polski"}},
	{"sv", "swe", "", "Swedish", []string{"swedish", "svenska"}},
	{"da", "dan", "", "Danish", []string{"danish", "dansk"}},
	{"no", "nor", "", "Norwegian", []string{"norwegian", "norsk"}},
	{"nb", "nob", "", "Norwegian Bokmål", []string{"bokmal", "bokmål"}},
	{"nn", "nno", "", "Norwegian Nynorsk", []string{"nynorsk"}},
	{"fi", "fin", "", "Finnish", []string{"finnish", "suomi"}},
	{"is", "isl", "ice", "Icelandic", []string{"icelandic"}},
	{"cs", "ces", "cze", "Czech", []string{"czech"}},
	{"sk", "slk", "slo", "Slovak", []string{"slovak"}},
	{"sl", "slv", "", "Slovenian", []string{"slovenian", "slovene"}},
	{"hu", "hun", "", "Hungarian", []string{"hungarian", "magyar"}},
	{"ro", "ron", "rum", "Romanian", []string{"romanian"}},
	{"bg", "bul", "", "Bulgarian", []string{"bulgarian"}},
	{"hr", "hrv", "", "Croatian", []string{"croatian"}},
	{"sr", "srp", "", "Serbian", []string{"serbian"}},
	{"bs", "bos", "", "Bosnian", []string{"bosnian"}},
	{"mk", "mkd", "mac", "Macedonian", []string{"macedonian"}},
	{"sq", "sqi", "alb", "Albanian", []string{"albanian"}},
	{"el", "ell", "gre", "Greek", []string{"greek"}},
	{"tr", "tur", "", "Turkish", []string{"turkish"}},
	{"uk", "ukr", "", "Ukrainian", []string{"ukrainian"}},
	{"be", "bel", "", "Belarusian", []string{"belarusian"}},
	{"et", "est", "", "Estonian", []string{"estonian"}},
	{"lv", "lav", "", "Latvian", []string{"latvian"}},
	{"lt", "lit", "", "Lithuanian", []string{"lithuanian"}},
	{"he", "heb", "", "Hebrew", []string{"hebrew"}},
	{"fa", "fas", "per", "Persian", []string{"persian", "farsi"}},
	{"ur", "urd", "", "Urdu", []string{"urdu"}},
	{"bn", "ben", "", "Bengali", []string{"bengali"}},
	{"ta", "tam", "", "Tamil", []string{"tamil"}},
	{"te", "tel", "", "Telugu", []string{"telugu"}},
	{"ml", "mal", "", "Malayalam", []string{"malayalam"}},
	{"th", "tha", "", "Thai", []string{"thai"}},
	{"vi", "vie", "", "Vietnamese", []string{"vietnamese"}},
	{"id", "ind", "", "Indonesian", []string{"indonesian"}},
	{"ms", "msa", "may", "Malay", []string{"malay"}},
	{"tl", "tgl", "", "Tagalog", []string{"tagalog"}},
	{"ca", "cat", "", "Catalan", []string{"catalan"}},
	{"eu", "eus", "baq", "Basque", []string{"basque"}},
	{"gl", "glg", "", "Galician", []string{"galician"}},
	{"cy", "cym", "wel", "Welsh", []string{"welsh"}},
	{"ga", "gle", "", "Irish", []string{"irish"}},
	{"ka", "kat", "geo", "Georgian", []string{"georgian"}},
	{"hy", "hye", "arm", "Armenian", []string{"armenian"}},
	{"la", "lat", "", "Latin", nil},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// ToISO2 resolves a code (ISO 639-1, either ISO 639-2 form) or an English
// or native language word to its ISO 639-1 code. Unrecognized input and
// languages without a two-letter code yield "".
func ToISO2(code string) string {
	if e := lookup(code); e != nil {
		return e.code2
	}
	return ""
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// languageKeys lists the tag keys checked for a language value, in order.
var languageKeys = []string{"language", "LANGUAGE", "Language", "language_ietf", "lang", "LANG"}

// ExtractFromTags extracts and normalizes the language from stream metadata tags.
// Checks common tag keys: language, LANGUAGE, Language, language_ietf, lang, LANG.
func ExtractFromTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	for _, key := range languageKeys {
		if value, ok := tags[key]; ok {
			value = strings.TrimSpace(strings.ReplaceAll(value, "\u0000", ""))
			if value != "" {
				return strings.ToLower(value)
			}
		}
	}
	return ""
}

// NormalizeList resolves user-supplied languages to ISO 639-1 codes,
// keeping first-seen order and dropping duplicates and blanks. A region or
// script after "-" or "_" is ignored ("pt-BR" resolves to "pt"). Entries
// that do not resolve are returned in unknown as given.
func NormalizeList(languages []string) (codes, unknown []string) {
	seen := make(map[string]bool, len(languages))
	for _, raw := range languages {
		base, _, _ := strings.Cut(strings.TrimSpace(raw), "-")
		base, _, _ = strings.Cut(base, "_")
		if base == "" {
			continue
		}
		code := ToISO2(base)
		if code == "" {
			unknown = append(unknown, strings.TrimSpace(raw))
			continue
		}
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	return codes, unknown
}
