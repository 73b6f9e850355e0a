package reading

// Position is where the pointer sits when a tooltip opens.
type Position struct {
	X, Y int
}

// Tooltip is the transient hover state. It is not part of the session.
type Tooltip struct {
	Content  string
	Position Position
	Visible  bool
}

// Hover owns the tooltip for a session's rendered words.
type Hover struct {
	session *Session
	events  EventSink
	tooltip Tooltip
}

// NewHover returns a hover handler reading eligibility from session.
func NewHover(session *Session, events EventSink) *Hover {
	if events == nil {
		events = nopSink{}
	}
	return &Hover{session: session, events: events}
}

// Enter shows the translation of word in sentence at pos. It returns false
// and leaves the tooltip untouched when the word is not hoverable right now.
func (h *Hover) Enter(sentence int, word string, pos Position) bool {
	st := h.session.State()
	if !st.HoverEligible(sentence) {
		return false
	}
	translation, ok := h.session.Vocabulary().Lookup(word)
	if !ok {
		return false
	}

	h.tooltip = Tooltip{Content: translation, Position: pos, Visible: true}
	h.events.WordRevealed(st.StoryID, sentence, Normalize(word), translation)
	return true
}

// Leave hides and clears the tooltip.
func (h *Hover) Leave() {
	h.tooltip = Tooltip{}
}

func (h *Hover) Tooltip() Tooltip {
	return h.tooltip
}
