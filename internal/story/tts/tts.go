// internal/story/tts/tts.go
package tts

import "errors"

var (
	ErrUnsupportedEngine = errors.New("unsupported TTS engine")
	ErrNotAvailable      = errors.New("TTS engine not available")
)

// Config selects and tunes a synthesizer.
type Config struct {
	Type            string
	CachePath       string
	CredentialsFile string
}

// Voice is one voice a synthesizer can speak with.
type Voice struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Locale  string `json:"locale"`
	Default bool   `json:"default"`
}

// Utterance is a single speak request.
type Utterance struct {
	Text   string
	Voice  Voice
	Pitch  float64
	Rate   float64
	Volume float64
}

// Synthesizer is the platform speech capability. Voices may not be known when
// the synthesizer is created; subscribers are notified once they arrive or
// change. Speak starts playback and returns without waiting for it to end.
type Synthesizer interface {
	ListVoices() []Voice
	OnVoicesChanged(fn func()) (unsubscribe func())
	Speak(u Utterance) error
	Cancel() error
	IsSpeaking() bool
}
