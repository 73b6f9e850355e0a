package tts

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSynth records every call in order.
type fakeSynth struct {
	voiceList

	mu       sync.Mutex
	calls    []string
	spoken   []Utterance
	speaking bool
}

func (f *fakeSynth) Speak(u Utterance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "speak")
	f.spoken = append(f.spoken, u)
	f.speaking = true
	return nil
}

func (f *fakeSynth) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "cancel")
	f.speaking = false
	return nil
}

func (f *fakeSynth) IsSpeaking() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.speaking
}

func (f *fakeSynth) subscribers() int {
	f.voiceList.mu.RLock()
	defer f.voiceList.mu.RUnlock()
	return len(f.subs)
}

var spanishVoices = []Voice{
	{Name: "Fred", Locale: "en-US", Default: true},
	{Name: "Lucia", Locale: "es-ES"},
}

func newTestController(synth Synthesizer) (*Controller, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewController(synth, nil, logger), hook
}

func TestControllerNotReadyIgnoresSpeak(t *testing.T) {
	synth := &fakeSynth{}
	c, _ := newTestController(synth)
	c.Start()

	assert.False(t, c.Ready())
	c.Speak("Hola", "Spanish")
	assert.Empty(t, synth.calls)
}

func TestControllerBecomesReadyWhenVoicesArrive(t *testing.T) {
	synth := &fakeSynth{}
	c, _ := newTestController(synth)
	c.Start()
	require.False(t, c.Ready())

	synth.setVoices(spanishVoices)
	assert.True(t, c.Ready())
	assert.Len(t, c.Voices(), 2)

	// Latch stays set even if voices disappear
	synth.setVoices(nil)
	assert.True(t, c.Ready())
	assert.Empty(t, c.Voices())
}

func TestControllerSpeakDeliveryParameters(t *testing.T) {
	synth := &fakeSynth{}
	synth.setVoices(spanishVoices)
	c, _ := newTestController(synth)
	c.Start()

	c.Speak("La casa es grande.", "Spanish")

	require.Len(t, synth.spoken, 1)
	u := synth.spoken[0]
	assert.Equal(t, "La casa es grande.", u.Text)
	assert.Equal(t, "Lucia", u.Voice.Name)
	assert.Equal(t, 1.0, u.Pitch)
	assert.Equal(t, 0.9, u.Rate)
	assert.Equal(t, 1.0, u.Volume)
}

func TestControllerCancelsBeforeSpeaking(t *testing.T) {
	synth := &fakeSynth{}
	synth.setVoices(spanishVoices)
	c, _ := newTestController(synth)
	c.Start()

	c.Speak("Uno.", "Spanish")
	c.Speak("Dos.", "Spanish")

	assert.Equal(t, []string{"speak", "cancel", "speak"}, synth.calls)
}

func TestControllerUnmappedLanguage(t *testing.T) {
	synth := &fakeSynth{}
	synth.setVoices(spanishVoices)
	c, hook := newTestController(synth)
	c.Start()

	assert.False(t, c.Supports("Klingon"))
	c.Speak("Qapla'", "Klingon")

	assert.Empty(t, synth.calls)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "Klingon", hook.LastEntry().Data["language"])
}

func TestControllerFallsBackToDefaultVoice(t *testing.T) {
	synth := &fakeSynth{}
	synth.setVoices([]Voice{{Name: "Fred", Locale: "en-US", Default: true}})
	c, _ := newTestController(synth)
	c.Start()

	c.Speak("Guten Tag.", "German")

	require.Len(t, synth.spoken, 1)
	assert.Equal(t, "Fred", synth.spoken[0].Voice.Name)
}

func TestControllerStopAndClose(t *testing.T) {
	synth := &fakeSynth{}
	c, _ := newTestController(synth)
	c.Start()
	c.Start()
	assert.Equal(t, 1, synth.subscribers())

	c.Stop()
	assert.Equal(t, []string{"cancel"}, synth.calls)

	c.Close()
	assert.Equal(t, 0, synth.subscribers())
	assert.Equal(t, []string{"cancel", "cancel"}, synth.calls)
}

func TestControllerWithMockEngine(t *testing.T) {
	mock := NewMockEngine(MockVoices(), 5*time.Millisecond, &discard{})
	c, _ := newTestController(mock)
	c.Start()
	defer c.Close()

	assert.Eventually(t, c.Ready, time.Second, 5*time.Millisecond)

	c.Speak("Bonjour.", "French")
	spoken := mock.Spoken()
	require.Len(t, spoken, 1)
	assert.Equal(t, "fr-FR", spoken[0].Voice.Locale)
	assert.True(t, mock.IsSpeaking())

	c.Stop()
	assert.False(t, mock.IsSpeaking())
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
