package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Entry is what is remembered about one story.
type Entry struct {
	FinishedCount int       `json:"finished_count"`
	LastFinished  time.Time `json:"last_finished,omitempty"`
	Words         []string  `json:"words,omitempty"`
}

// Tracker records finished stories and looked-up words and writes them to a
// JSON file after every event.
type Tracker struct {
	path string
	log  logrus.FieldLogger
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]Entry
}

// NewTracker loads path if it exists.
func NewTracker(path string, log logrus.FieldLogger) (*Tracker, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	t := &Tracker{
		path:    path,
		log:     log.WithField("component", "progress"),
		now:     time.Now,
		entries: make(map[string]Entry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return nil, fmt.Errorf("error reading progress file: %w", err)
	}
	if err := json.Unmarshal(data, &t.entries); err != nil {
		return nil, fmt.Errorf("error parsing progress file: %w", err)
	}
	if t.entries == nil {
		t.entries = make(map[string]Entry)
	}

	return t, nil
}

func (t *Tracker) SessionFinished(storyID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry := t.entries[storyID]
	entry.FinishedCount++
	entry.LastFinished = t.now().UTC()
	t.entries[storyID] = entry

	t.persist()
}

func (t *Tracker) WordRevealed(storyID string, _ int, word, _ string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry := t.entries[storyID]
	i := sort.SearchStrings(entry.Words, word)
	if i < len(entry.Words) && entry.Words[i] == word {
		return
	}
	entry.Words = append(entry.Words, "")
	copy(entry.Words[i+1:], entry.Words[i:])
	entry.Words[i] = word
	t.entries[storyID] = entry

	t.persist()
}

// Entry returns the record for storyID.
func (t *Tracker) Entry(storyID string) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[storyID]
	entry.Words = append([]string(nil), entry.Words...)
	return entry, ok
}

func (t *Tracker) persist() {
	if err := t.save(); err != nil {
		t.log.WithError(err).Warn("failed to save progress")
	}
}

func (t *Tracker) save() error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
		return fmt.Errorf("error creating progress directory: %w", err)
	}

	data, err := json.MarshalIndent(t.entries, "", "    ")
	if err != nil {
		return fmt.Errorf("error marshaling progress data: %w", err)
	}

	tmp := t.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("error writing progress file: %w", err)
	}
	return os.Rename(tmp, t.path)
}
