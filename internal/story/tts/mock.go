package tts

import (
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// MockEngine prints instead of speaking. Its voices arrive after a short
// delay, the way browser and OS engines report them.
type MockEngine struct {
	voiceList

	out   io.Writer
	print *color.Color

	mu       sync.Mutex
	speaking bool
	timer    *time.Timer
	spoken   []Utterance
}

// NewMockEngine returns a mock that reports voices after delay and writes
// utterances to out (stdout when nil).
func NewMockEngine(voices []Voice, delay time.Duration, out io.Writer) *MockEngine {
	if out == nil {
		out = os.Stdout
	}
	m := &MockEngine{
		out:   out,
		print: color.New(color.FgYellow),
	}

	voices = append([]Voice(nil), voices...)
	m.loadVoicesAsync(func() ([]Voice, error) {
		time.Sleep(delay)
		return voices, nil
	}, func(error) {})

	return m
}

// MockVoices returns one voice per supported locale, with en-US as default.
func MockVoices() []Voice {
	names := Languages()
	sort.Strings(names)

	voices := make([]Voice, 0, len(names))
	for _, name := range names {
		code := locales[name]
		voices = append(voices, Voice{
			Name:    "Mock " + strings.ToUpper(name[:1]) + name[1:],
			ID:      "mock-" + code,
			Locale:  code,
			Default: code == "en-US",
		})
	}
	return voices
}

func (m *MockEngine) Speak(u Utterance) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.spoken = append(m.spoken, u)
	m.speaking = true

	// Simulate reading time based on text length, ~150 words per minute
	rate := u.Rate
	if rate <= 0 {
		rate = 1
	}
	words := len(strings.Fields(u.Text))
	duration := time.Duration(float64(words) / 150.0 / rate * float64(time.Minute))

	m.print.Fprintf(m.out, "🔊 [%s] %s\n", u.Voice.Name, u.Text)

	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(duration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.speaking = false
	})

	return nil
}

func (m *MockEngine) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.speaking = false
	return nil
}

func (m *MockEngine) IsSpeaking() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speaking
}

// Spoken returns every utterance received so far.
func (m *MockEngine) Spoken() []Utterance {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Utterance(nil), m.spoken...)
}
