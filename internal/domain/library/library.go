package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"parallelstory/internal/domain/story"
	"strings"
)

var ErrStoryNotFound = errors.New("story not found")

// StoryLibrary represents a collection of parallel stories from one source
type StoryLibrary struct {
	Name    string       `json:"name"`
	URL     string       `json:"url"`
	Stories []story.Item `json:"stories"`
}

// Find returns the story with the given ID.
func (l *StoryLibrary) Find(id string) (*story.Item, error) {
	for i := range l.Stories {
		if l.Stories[i].ID == id {
			return &l.Stories[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrStoryNotFound, id)
}

// Filter returns the stories whose language contains lang (case-insensitive).
// An empty lang matches everything.
func (l *StoryLibrary) Filter(lang string) []story.Item {
	if lang == "" {
		return l.Stories
	}
	var out []story.Item
	for _, s := range l.Stories {
		if strings.Contains(strings.ToLower(s.Language), strings.ToLower(lang)) {
			out = append(out, s)
		}
	}
	return out
}

// LoadFile reads a JSON file that holds either a whole library or a single
// story. A single story is wrapped into a library named after the file.
func LoadFile(path string) (*StoryLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story file: %w", err)
	}

	var lib StoryLibrary
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse story file %s: %w", path, err)
	}
	if len(lib.Stories) > 0 {
		return &lib, nil
	}

	var item story.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to parse story file %s: %w", path, err)
	}
	if item.ID == "" && len(item.Sentences) == 0 {
		return nil, fmt.Errorf("no stories in %s", path)
	}
	if item.ID == "" {
		item.ID = path
	}

	return &StoryLibrary{
		Name:    path,
		URL:     path,
		Stories: []story.Item{item},
	}, nil
}
