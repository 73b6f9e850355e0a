package reading

import "parallelstory/internal/domain/story"

// SentenceClass is the visual state of a sentence's target text.
type SentenceClass string

const (
	ClassPast         SentenceClass = "past"
	ClassActive       SentenceClass = "active"
	ClassFuture       SentenceClass = "future"
	ClassPastFinished SentenceClass = "past finished"
)

// SentenceView is everything a renderer needs for one sentence.
type SentenceView struct {
	Index         int
	Pair          story.SentencePair
	Class         SentenceClass
	SourceVisible bool
	Hoverable     bool
	Tokens        []Token
}

// View is derived from the session state after every command. It is never
// stored by the session.
type View struct {
	StoryID       string
	Title         string
	Language      string
	Sentences     []SentenceView
	Active        int
	Finished      bool
	ShowAllSource bool
	Progress      float64
	CanRetreat    bool
	CanAdvance    bool
}

// Class returns the target-side class of sentence i.
func (st State) Class(i int) SentenceClass {
	switch {
	case st.Finished:
		return ClassPastFinished
	case i < st.Active:
		return ClassPast
	case i == st.Active:
		return ClassActive
	default:
		return ClassFuture
	}
}

// IsRevealed reports whether sentence i's source text has been disclosed.
func (st State) IsRevealed(i int) bool {
	for _, r := range st.Revealed {
		if r == i {
			return true
		}
	}
	return false
}

// SourceVisible reports whether sentence i's source text is shown. In example
// mode the show-all toggle is ignored.
func (st State) SourceVisible(i int, example bool) bool {
	if !st.IsRevealed(i) {
		return false
	}
	return example || st.ShowAllSource || i == st.Active
}

// HoverEligible reports whether words in sentence i may show a tooltip.
func (st State) HoverEligible(i int) bool {
	return st.Total > 0 && i == st.Active && !st.Finished
}

// Progress is the percentage of the story completed, 0 for an empty story.
func (st State) Progress() float64 {
	if st.Total == 0 {
		return 0
	}
	done := st.Active
	if st.Finished {
		done++
	}
	return float64(done) / float64(st.Total) * 100
}

// View derives the renderable state.
func (s *Session) View() View {
	s.mu.Lock()
	st := s.snapshot()
	item, vocab := s.item, s.vocab
	s.mu.Unlock()

	v := View{
		StoryID:       item.ID,
		Title:         item.Title,
		Language:      item.Language,
		Sentences:     make([]SentenceView, len(item.Sentences)),
		Active:        st.Active,
		Finished:      st.Finished,
		ShowAllSource: st.ShowAllSource,
		Progress:      st.Progress(),
		CanRetreat:    st.Active > 0,
		CanAdvance:    st.Total > 0 && !st.Finished,
	}

	for i, pair := range item.Sentences {
		eligible := st.HoverEligible(i)
		v.Sentences[i] = SentenceView{
			Index:         i,
			Pair:          pair,
			Class:         st.Class(i),
			SourceVisible: st.SourceVisible(i, item.Example),
			Hoverable:     eligible,
			Tokens:        Tokenize(pair.Target, vocab, eligible),
		}
	}

	return v
}
