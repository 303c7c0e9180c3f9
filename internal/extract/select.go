package extract

import (
	"slices"

	"subsift/internal/language"
	"subsift/internal/subtitle"
)

// ByLanguage keeps the streams whose base language is one of languages,
// given as codes or names in any form NormalizeList accepts. An empty list
// keeps every stream. Unrecognized entries fail with *language.NotFoundError
// before anything is filtered.
func ByLanguage(streams []*subtitle.Stream, languages []string) ([]*subtitle.Stream, error) {
	codes, unknown := language.NormalizeList(languages)
	if len(unknown) > 0 {
		return nil, &language.NotFoundError{Raw: unknown[0], Reason: "not a recognized language filter"}
	}
	if len(codes) == 0 {
		return streams, nil
	}
	var kept []*subtitle.Stream
	for _, s := range streams {
		if slices.Contains(codes, s.Language.Alpha2) {
			kept = append(kept, s)
		}
	}
	return kept, nil
}
