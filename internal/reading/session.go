package reading

import (
	"sync"

	"parallelstory/internal/domain/story"

	"github.com/sirupsen/logrus"
)

// Options wires a Session to its collaborators. Nil fields get no-op defaults.
type Options struct {
	Speech Stopper
	Events EventSink
	Logger logrus.FieldLogger
}

// Session is the reading-progression state machine for one story.
//
// The learner moves an active index through the sentences. A sentence's
// source text is revealed when the learner leaves it, in either direction,
// and the reveal set only shrinks on Restart or when a different story is
// loaded. Commands never fail: a command whose guard does not hold is a no-op.
type Session struct {
	mu sync.Mutex

	item  story.Item
	vocab *VocabularyIndex

	active        int
	revealed      map[int]struct{}
	finished      bool
	showAllSource bool

	speech Stopper
	events EventSink
	log    logrus.FieldLogger
}

// NewSession starts a session on item at its initial state.
func NewSession(item story.Item, opts Options) *Session {
	s := &Session{
		speech: opts.Speech,
		events: opts.Events,
		log:    opts.Logger,
	}
	if s.speech == nil {
		s.speech = nopStopper{}
	}
	if s.events == nil {
		s.events = nopSink{}
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}

	s.item = item
	s.vocab = BuildVocabulary(item.Vocabulary)
	s.reset()
	return s
}

// Load presents item. The session reinitializes only when the story ID or the
// identity of the sentence list changes; the vocabulary index is rebuilt only
// when the vocabulary list changes identity.
func (s *Session) Load(item story.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !sameVocabulary(s.item.Vocabulary, item.Vocabulary) {
		s.vocab = BuildVocabulary(item.Vocabulary)
	}
	changed := item.ID != s.item.ID || !sameSentences(s.item.Sentences, item.Sentences)
	s.item = item
	if changed {
		s.speech.Stop()
		s.reset()
		s.log.WithField("story", item.ID).Debug("story changed, session reset")
	}
}

// reset is the single path that puts every field back to its initial value.
func (s *Session) reset() {
	s.active = 0
	s.revealed = make(map[int]struct{})
	s.finished = false
	s.showAllSource = true
}

func (s *Session) count() int { return len(s.item.Sentences) }

func (s *Session) reveal(i int) {
	s.revealed[i] = struct{}{}
}

// Advance reveals the active sentence and moves to the next one, or finishes
// the story when the active sentence is the last.
func (s *Session) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advance()
}

func (s *Session) advance() {
	n := s.count()
	if n == 0 || s.finished {
		return
	}

	s.speech.Stop()
	s.reveal(s.active)

	if s.active < n-1 {
		s.active++
		return
	}

	s.finished = true
	s.log.WithField("story", s.item.ID).Debug("story finished")
	s.events.SessionFinished(s.item.ID)
}

// Retreat reveals the active sentence and moves back one. It always clears
// the finished flag.
func (s *Session) Retreat() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active <= 0 {
		return
	}

	s.speech.Stop()
	s.reveal(s.active)
	s.active--
	s.finished = false
}

// JumpTo handles a click on sentence i. Clicking the active sentence advances;
// clicking an earlier one moves back to it; anything else is ignored.
func (s *Session) JumpTo(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case i == s.active && !s.finished:
		s.advance()
	case i >= 0 && i < s.active:
		s.speech.Stop()
		s.active = i
		s.finished = false
	}
}

// ToggleShowAllSource flips whether revealed, inactive translations are shown.
func (s *Session) ToggleShowAllSource() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showAllSource = !s.showAllSource
}

// Restart returns to the first sentence with nothing revealed.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speech.Stop()
	s.reset()
}

// State is a point-in-time copy of the session fields.
type State struct {
	StoryID       string
	Total         int
	Active        int
	Revealed      []int
	Finished      bool
	ShowAllSource bool
}

// State returns a copy of the current fields with Revealed sorted ascending.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() State {
	revealed := make([]int, 0, len(s.revealed))
	for i := 0; i < s.count(); i++ {
		if _, ok := s.revealed[i]; ok {
			revealed = append(revealed, i)
		}
	}

	return State{
		StoryID:       s.item.ID,
		Total:         s.count(),
		Active:        s.active,
		Revealed:      revealed,
		Finished:      s.finished,
		ShowAllSource: s.showAllSource,
	}
}

// Item returns the story being read.
func (s *Session) Item() story.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.item
}

// Vocabulary returns the index built from the story's glossary.
func (s *Session) Vocabulary() *VocabularyIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vocab
}

// ActiveSentence returns the sentence in focus, or false when the story is
// empty or finished.
func (s *Session) ActiveSentence() (story.SentencePair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count() == 0 || s.finished {
		return story.SentencePair{}, false
	}
	return s.item.Sentences[s.active], true
}

func sameSentences(a, b []story.SentencePair) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

func sameVocabulary(a, b []story.VocabularyEntry) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
