package tts

import "sync"

// voiceList holds an engine's voices and notifies subscribers when they are
// replaced. Engines embed it and fill it from a background enumeration.
type voiceList struct {
	mu     sync.RWMutex
	voices []Voice
	subs   map[int]func()
	nextID int
}

func (l *voiceList) ListVoices() []Voice {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Voice(nil), l.voices...)
}

func (l *voiceList) OnVoicesChanged(fn func()) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.subs == nil {
		l.subs = make(map[int]func())
	}
	id := l.nextID
	l.nextID++
	l.subs[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

// setVoices replaces the voice list and calls every subscriber outside the lock.
func (l *voiceList) setVoices(voices []Voice) {
	l.mu.Lock()
	l.voices = voices
	subs := make([]func(), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// loadVoicesAsync enumerates voices in the background. A failed enumeration
// leaves the list empty.
func (l *voiceList) loadVoicesAsync(list func() ([]Voice, error), onErr func(error)) {
	go func() {
		voices, err := list()
		if err != nil {
			onErr(err)
			return
		}
		l.setVoices(voices)
	}()
}
