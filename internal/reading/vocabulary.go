package reading

import (
	"strings"

	"parallelstory/internal/domain/story"
)

var punctuation = strings.NewReplacer(
	".", "", ",", "", "!", "", "?", "", ";", "",
	":", "", "(", "", ")", "", `"`, "", "'", "",
)

// Normalize turns a token from sentence text into a vocabulary lookup key:
// lowercase with . , ! ? ; : ( ) " ' removed.
func Normalize(token string) string {
	return punctuation.Replace(strings.ToLower(token))
}

// VocabularyIndex maps lowercased glossary words to their translations.
// It is read-only once built.
type VocabularyIndex struct {
	words map[string]string
}

// BuildVocabulary indexes entries by lowercased word. Keys are not stripped of
// punctuation, so an entry like "casa." never matches text lookups.
// Later duplicates overwrite earlier ones.
func BuildVocabulary(entries []story.VocabularyEntry) *VocabularyIndex {
	idx := &VocabularyIndex{words: make(map[string]string, len(entries))}
	for _, e := range entries {
		idx.words[strings.ToLower(e.Word)] = e.Translation
	}
	return idx
}

// Lookup returns the translation of a raw token from sentence text.
func (v *VocabularyIndex) Lookup(token string) (string, bool) {
	if v == nil {
		return "", false
	}
	tr, ok := v.words[Normalize(token)]
	return tr, ok
}

// Len reports the number of distinct keys.
func (v *VocabularyIndex) Len() int {
	if v == nil {
		return 0
	}
	return len(v.words)
}
