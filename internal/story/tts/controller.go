package tts

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Delivery parameters for every utterance.
const (
	DefaultPitch  = 1.0
	DefaultRate   = 0.9
	DefaultVolume = 1.0
)

// Controller gates speech requests to a synthesizer so that at most one
// utterance plays at a time. It tracks the voice list and a ready latch that
// flips once the synthesizer has reported at least one voice.
type Controller struct {
	synth    Synthesizer
	resolver *Resolver
	log      logrus.FieldLogger

	mu          sync.Mutex
	voices      []Voice
	ready       bool
	unsubscribe func()
}

// NewController wraps synth. Call Start before speaking and Close on teardown.
func NewController(synth Synthesizer, resolver *Resolver, log logrus.FieldLogger) *Controller {
	if resolver == nil {
		resolver = NewResolver(nil)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		synth:    synth,
		resolver: resolver,
		log:      log.WithField("component", "speech"),
	}
}

// Start subscribes to voice changes and takes the current voice list.
func (c *Controller) Start() {
	unsubscribe := c.synth.OnVoicesChanged(c.refreshVoices)

	c.mu.Lock()
	if c.unsubscribe != nil {
		c.mu.Unlock()
		unsubscribe()
		return
	}
	c.unsubscribe = unsubscribe
	c.mu.Unlock()

	c.refreshVoices()
}

// Close unsubscribes from voice changes and cancels any speech.
func (c *Controller) Close() {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	c.Stop()
}

func (c *Controller) refreshVoices() {
	voices := c.synth.ListVoices()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.voices = voices
	if len(voices) > 0 && !c.ready {
		c.ready = true
		c.log.WithField("voices", len(voices)).Debug("speech ready")
	}
}

// Ready reports whether any voice has been enumerated yet.
func (c *Controller) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// Voices returns the last enumerated voice list.
func (c *Controller) Voices() []Voice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Voice(nil), c.voices...)
}

// VoiceFor resolves the voice for a language against the current voice list.
func (c *Controller) VoiceFor(language string) (Voice, bool) {
	return c.resolver.Resolve(language, c.Voices())
}

// Supports reports whether language has a locale mapping at all.
func (c *Controller) Supports(language string) bool {
	_, ok := LocaleFor(language)
	return ok
}

// Speak says text in language. It returns immediately. Requests before any
// voice is known, for unmapped languages, or with no matching voice are
// dropped and logged.
func (c *Controller) Speak(text, language string) {
	if !c.Ready() {
		c.log.Debug("speak ignored, no voices yet")
		return
	}

	log := c.log.WithField("language", language)
	if !c.Supports(language) {
		log.Warn("no locale for language, speech disabled")
		return
	}

	voice, ok := c.VoiceFor(language)
	if !ok {
		log.Warn("no voice available for language")
		return
	}

	c.SpeakWith(text, voice)
}

// SpeakWith cancels any utterance in flight and speaks text with voice.
func (c *Controller) SpeakWith(text string, voice Voice) {
	if c.synth.IsSpeaking() {
		if err := c.synth.Cancel(); err != nil {
			c.log.WithError(err).Warn("failed to cancel speech")
		}
	}

	err := c.synth.Speak(Utterance{
		Text:   text,
		Voice:  voice,
		Pitch:  DefaultPitch,
		Rate:   DefaultRate,
		Volume: DefaultVolume,
	})
	if err != nil {
		c.log.WithError(err).WithField("voice", voice.Name).Warn("speech failed")
	}
}

// Stop cancels whatever is playing.
func (c *Controller) Stop() {
	if err := c.synth.Cancel(); err != nil {
		c.log.WithError(err).Warn("failed to stop speech")
	}
}
