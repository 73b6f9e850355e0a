package story

// SentencePair is one aligned unit of a parallel story. Target is the text in
// the language being learned, Source is its translation.
type SentencePair struct {
	ID     string `json:"id"`
	Target string `json:"target"`
	Source string `json:"source"`
}

// VocabularyEntry is a glossary line. Word is in the target language.
type VocabularyEntry struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

// Item represents a parallel-text story
type Item struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Author         string            `json:"author"`
	Language       string            `json:"language"`
	SourceLanguage string            `json:"source_language"`
	Level          string            `json:"level"`
	Description    string            `json:"description"`
	Sentences      []SentencePair    `json:"sentences"`
	Vocabulary     []VocabularyEntry `json:"vocabulary"`

	// Example stories are shown read-only: every revealed translation stays
	// visible regardless of the hide toggle.
	Example bool `json:"example"`
}
