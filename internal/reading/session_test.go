package reading

import (
	"fmt"
	"math/rand"
	"testing"

	"parallelstory/internal/domain/story"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStopper struct {
	stops int
}

func (f *fakeStopper) Stop() { f.stops++ }

type revealedWord struct {
	storyID     string
	sentence    int
	word        string
	translation string
}

type fakeSink struct {
	finished []string
	words    []revealedWord
}

func (f *fakeSink) SessionFinished(storyID string) {
	f.finished = append(f.finished, storyID)
}

func (f *fakeSink) WordRevealed(storyID string, sentence int, word, translation string) {
	f.words = append(f.words, revealedWord{storyID, sentence, word, translation})
}

func newItem(id string, n int) story.Item {
	item := story.Item{ID: id, Language: "Spanish"}
	for i := 0; i < n; i++ {
		item.Sentences = append(item.Sentences, story.SentencePair{
			ID:     fmt.Sprintf("%s-%d", id, i),
			Target: fmt.Sprintf("La casa %d.", i),
			Source: fmt.Sprintf("The house %d.", i),
		})
	}
	item.Vocabulary = []story.VocabularyEntry{{Word: "casa", Translation: "house"}}
	return item
}

func TestInitialState(t *testing.T) {
	s := NewSession(newItem("s", 3), Options{})
	st := s.State()

	assert.Equal(t, 0, st.Active)
	assert.Empty(t, st.Revealed)
	assert.False(t, st.Finished)
	assert.True(t, st.ShowAllSource)
	assert.Equal(t, 3, st.Total)
}

func TestThreeSentenceScenario(t *testing.T) {
	sink := &fakeSink{}
	s := NewSession(newItem("casa", 3), Options{Events: sink})

	s.Advance()
	st := s.State()
	assert.Equal(t, []int{0}, st.Revealed)
	assert.Equal(t, 1, st.Active)

	s.Advance()
	st = s.State()
	assert.Equal(t, []int{0, 1}, st.Revealed)
	assert.Equal(t, 2, st.Active)

	s.Advance()
	st = s.State()
	assert.Equal(t, []int{0, 1, 2}, st.Revealed)
	assert.True(t, st.Finished)
	assert.Equal(t, 2, st.Active)
	assert.InDelta(t, 100.0, st.Progress(), 1e-9)

	assert.Equal(t, []string{"casa"}, sink.finished)
}

func TestAdvanceWhileFinishedIsNoop(t *testing.T) {
	sink := &fakeSink{}
	stopper := &fakeStopper{}
	s := NewSession(newItem("s", 2), Options{Events: sink, Speech: stopper})

	s.Advance()
	s.Advance()
	before := s.State()
	stops := stopper.stops

	s.Advance()
	assert.Equal(t, before, s.State())
	assert.Len(t, sink.finished, 1)
	assert.Equal(t, stops, stopper.stops)
}

func TestRevealBeforeAdvance(t *testing.T) {
	s := NewSession(newItem("s", 5), Options{})

	for i := 0; i < 5; i++ {
		prev := s.State().Active
		s.Advance()
		assert.True(t, s.State().IsRevealed(prev), "index %d revealed after leaving it", prev)
	}
}

func TestRetreat(t *testing.T) {
	s := NewSession(newItem("s", 3), Options{})

	s.Retreat()
	assert.Equal(t, 0, s.State().Active, "retreat at zero is a no-op")
	assert.Empty(t, s.State().Revealed)

	s.Advance()
	s.Advance()
	s.Advance()
	require.True(t, s.State().Finished)

	s.Retreat()
	st := s.State()
	assert.False(t, st.Finished)
	assert.Equal(t, 1, st.Active)
	assert.Equal(t, []int{0, 1, 2}, st.Revealed)
}

func TestRetreatRevealsDepartingSentence(t *testing.T) {
	s := NewSession(newItem("s", 4), Options{})

	s.Advance()
	s.Advance()
	require.Equal(t, []int{0, 1}, s.State().Revealed)
	require.False(t, s.State().IsRevealed(2))

	s.Retreat()
	st := s.State()
	assert.Equal(t, 1, st.Active)
	assert.Equal(t, []int{0, 1, 2}, st.Revealed)
}

func TestJumpTo(t *testing.T) {
	s := NewSession(newItem("s", 5), Options{})

	s.JumpTo(3)
	assert.Equal(t, 0, s.State().Active, "no forward skip")

	s.JumpTo(0)
	assert.Equal(t, 1, s.State().Active, "clicking the active sentence advances")
	assert.Equal(t, []int{0}, s.State().Revealed)

	s.Advance()
	s.Advance()
	revealed := s.State().Revealed

	s.JumpTo(1)
	st := s.State()
	assert.Equal(t, 1, st.Active)
	assert.Equal(t, revealed, st.Revealed, "jumping back reveals nothing new")

	s.JumpTo(-1)
	s.JumpTo(99)
	assert.Equal(t, 1, s.State().Active)
}

func TestJumpToWhileFinished(t *testing.T) {
	s := NewSession(newItem("s", 3), Options{})
	for i := 0; i < 3; i++ {
		s.Advance()
	}
	require.True(t, s.State().Finished)

	s.JumpTo(2)
	st := s.State()
	assert.True(t, st.Finished, "clicking the active sentence while finished is a no-op")
	assert.Equal(t, 2, st.Active)

	s.JumpTo(1)
	st = s.State()
	assert.False(t, st.Finished)
	assert.Equal(t, 1, st.Active)
}

func TestToggleShowAllSourceIsCosmetic(t *testing.T) {
	s := NewSession(newItem("s", 3), Options{})
	s.Advance()
	before := s.State()

	s.ToggleShowAllSource()
	after := s.State()
	assert.False(t, after.ShowAllSource)
	assert.Equal(t, before.Active, after.Active)
	assert.Equal(t, before.Revealed, after.Revealed)

	s.ToggleShowAllSource()
	assert.True(t, s.State().ShowAllSource)
}

func TestRestartPurity(t *testing.T) {
	stopper := &fakeStopper{}
	s := NewSession(newItem("s", 3), Options{Speech: stopper})

	s.Advance()
	s.Advance()
	s.Advance()
	s.ToggleShowAllSource()

	s.Restart()
	st := s.State()
	assert.Equal(t, 0, st.Active)
	assert.Empty(t, st.Revealed)
	assert.False(t, st.Finished)
	assert.True(t, st.ShowAllSource)
	assert.Equal(t, 4, stopper.stops)
}

func TestStopOnNavigation(t *testing.T) {
	stopper := &fakeStopper{}
	s := NewSession(newItem("s", 3), Options{Speech: stopper})

	s.Advance()
	assert.Equal(t, 1, stopper.stops)
	s.Retreat()
	assert.Equal(t, 2, stopper.stops)
	s.Retreat()
	assert.Equal(t, 2, stopper.stops, "guarded no-op does not touch speech")
	s.JumpTo(2)
	assert.Equal(t, 2, stopper.stops)
	s.JumpTo(0)
	assert.Equal(t, 3, stopper.stops)
	s.ToggleShowAllSource()
	assert.Equal(t, 3, stopper.stops)
	s.Restart()
	assert.Equal(t, 4, stopper.stops)
}

func TestMonotonicReveal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewSession(newItem("s", 6), Options{})

	prev := map[int]bool{}
	for step := 0; step < 500; step++ {
		switch rng.Intn(4) {
		case 0:
			s.Advance()
		case 1:
			s.Retreat()
		case 2:
			s.JumpTo(rng.Intn(8) - 1)
		case 3:
			s.ToggleShowAllSource()
		}

		st := s.State()
		for i := range prev {
			require.True(t, st.IsRevealed(i), "step %d lost revealed index %d", step, i)
		}
		for _, i := range st.Revealed {
			prev[i] = true
		}
		require.GreaterOrEqual(t, st.Active, 0)
		require.Less(t, st.Active, st.Total)
	}
}

func TestEmptyStory(t *testing.T) {
	stopper := &fakeStopper{}
	s := NewSession(story.Item{ID: "empty"}, Options{Speech: stopper})

	s.Advance()
	s.Retreat()
	s.JumpTo(0)

	st := s.State()
	assert.Equal(t, 0, st.Active)
	assert.False(t, st.Finished)
	assert.Empty(t, st.Revealed)
	assert.Zero(t, st.Progress())
	assert.False(t, st.HoverEligible(0))
	assert.Zero(t, stopper.stops)

	_, ok := s.ActiveSentence()
	assert.False(t, ok)
}

func TestLoadResetsOnlyOnNewStory(t *testing.T) {
	item := newItem("a", 3)
	s := NewSession(item, Options{})
	s.Advance()
	s.ToggleShowAllSource()

	// Same story presented again keeps progress.
	s.Load(item)
	assert.Equal(t, 1, s.State().Active)
	assert.False(t, s.State().ShowAllSource)

	// New vocabulary for the same sentences rebuilds the index only.
	item.Vocabulary = []story.VocabularyEntry{{Word: "la", Translation: "the"}}
	s.Load(item)
	assert.Equal(t, 1, s.State().Active)
	_, ok := s.Vocabulary().Lookup("La")
	assert.True(t, ok)
	_, ok = s.Vocabulary().Lookup("casa")
	assert.False(t, ok)

	s.Load(newItem("b", 2))
	st := s.State()
	assert.Equal(t, "b", st.StoryID)
	assert.Equal(t, 0, st.Active)
	assert.Empty(t, st.Revealed)
	assert.True(t, st.ShowAllSource)
	assert.Equal(t, 2, st.Total)
}

func TestActiveSentence(t *testing.T) {
	s := NewSession(newItem("s", 2), Options{})

	pair, ok := s.ActiveSentence()
	require.True(t, ok)
	assert.Equal(t, "s-0", pair.ID)

	s.Advance()
	s.Advance()
	_, ok = s.ActiveSentence()
	assert.False(t, ok)
}
