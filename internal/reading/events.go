package reading

// EventSink receives the signals other subsystems track. Calls happen on the
// goroutine issuing the session command and must not block.
type EventSink interface {
	// SessionFinished fires on the Reading -> Finished transition.
	SessionFinished(storyID string)
	// WordRevealed fires when a hover shows a word's translation.
	WordRevealed(storyID string, sentence int, word, translation string)
}

// Stopper cancels in-flight speech.
type Stopper interface {
	Stop()
}

// Sinks fans events out to several sinks in order.
type Sinks []EventSink

func (s Sinks) SessionFinished(storyID string) {
	for _, sink := range s {
		sink.SessionFinished(storyID)
	}
}

func (s Sinks) WordRevealed(storyID string, sentence int, word, translation string) {
	for _, sink := range s {
		sink.WordRevealed(storyID, sentence, word, translation)
	}
}

type nopSink struct{}

func (nopSink) SessionFinished(string)                   {}
func (nopSink) WordRevealed(string, int, string, string) {}

type nopStopper struct{}

func (nopStopper) Stop() {}
