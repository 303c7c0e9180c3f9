package language

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToISO2(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"en", "en"},
		{" EN ", "en"},
		{"eng", "en"},
		{"fre", "fr"},
		{"ger", "de"},
		{"chi", "zh"},
		{"dut", "nl"},
		{"per", "fa"},
		{"tgl", "tl"},
		{"French", "fr"},
		{"Español", "es"},
		{"farsi", "fa"},
		{"xy", ""},
		{"xyz", ""},
		{"fil", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ToISO2(tt.input); got != tt.want {
			t.Errorf("ToISO2(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"eng", "English"},
		{"es", "Spanish"},
		{"spa", "Spanish"},
		{"fr", "French"},
		{"fre", "French"},
		{"fra", "French"},
		{"de", "German"},
		{"deu", "German"},
		{"ger", "German"},
		{"ja", "Japanese"},
		{"ko", "Korean"},
		{"zh", "Chinese"},
		{"chi", "Chinese"},
		{"zho", "Chinese"},
		{"nl", "Dutch"},
		{"dut", "Dutch"},
		{"nld", "Dutch"},
		{"", "Unknown"},
		{"xyz", "XYZ"},
		{"english", "English"},
		{"heb", "Hebrew"},
		{"ice", "Icelandic"},
		{"fil", "FIL"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := DisplayName(tt.input)
			if result != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestExtractFromTags(t *testing.T) {
	tests := []struct {
		name     string
		tags     map[string]string
		expected string
	}{
		{"nil tags", nil, ""},
		{"empty tags", map[string]string{}, ""},
		{"lowercase key", map[string]string{"language": "eng"}, "eng"},
		{"uppercase key", map[string]string{"LANGUAGE": "ENG"}, "eng"},
		{"lang key", map[string]string{"lang": "en"}, "en"},
		{"LANG key", map[string]string{"LANG": "EN"}, "en"},
		{"ietf key", map[string]string{"language_ietf": "en-US"}, "en-us"},
		{"null bytes stripped", map[string]string{"language": "eng\x00"}, "eng"},
		{"empty value", map[string]string{"language": ""}, ""},
		{"priority: language over LANG", map[string]string{"language": "fr", "LANG": "en"}, "fr"},
		{"whitespace only", map[string]string{"language": "  ", "lang": "de"}, "de"},
		{"title ignored", map[string]string{"title": "English"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractFromTags(tt.tags)
			if result != tt.expected {
				t.Errorf("ExtractFromTags(%v) = %q, want %q", tt.tags, result, tt.expected)
			}
		})
	}
}

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		codes   []string
		unknown []string
	}{
		{"nil", nil, nil, nil},
		{"dedup across forms", []string{"en", "eng", "English"}, []string{"en"}, nil},
		{"keeps order", []string{"spa", "en", "fr"}, []string{"es", "en", "fr"}, nil},
		{"region and script ignored", []string{"pt-BR", "zh_Hant"}, []string{"pt", "zh"}, nil},
		{"blanks skipped", []string{" ", "", " de "}, []string{"de"}, nil},
		{"unknown reported", []string{"en", " klingon ", "fil"}, []string{"en"}, []string{"klingon", "fil"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes, unknown := NormalizeList(tt.input)
			if diff := cmp.Diff(tt.codes, codes); diff != "" {
				t.Errorf("codes mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.unknown, unknown); diff != "" {
				t.Errorf("unknown mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
