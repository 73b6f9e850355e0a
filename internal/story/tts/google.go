package tts

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// GoogleClassicEngine synthesizes MP3 through Google Cloud Text-to-Speech,
// caches it on disk and plays it through the system speaker.
type GoogleClassicEngine struct {
	voiceList

	client   *texttospeech.Client
	ctx      context.Context
	cacheDir string
	log      logrus.FieldLogger

	mu         sync.Mutex
	speaking   bool
	generation int
	ctrl       *beep.Ctrl
	streamers  []beep.StreamSeekCloser
}

var (
	speakerMu   sync.Mutex
	speakerRate beep.SampleRate
)

// initSpeaker (re)initialises the shared speaker when the sample rate changes.
func initSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	if speakerRate == rate {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speakerRate = rate
	return nil
}

func newGoogleClassicEngine(cfg Config) (*GoogleClassicEngine, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS client: %w", err)
	}

	if err := os.MkdirAll(cfg.CachePath, 0755); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}

	engine := &GoogleClassicEngine{
		client:   client,
		ctx:      ctx,
		cacheDir: cfg.CachePath,
		log:      logrus.WithField("engine", EngineTypeGoogleClassic),
	}
	engine.loadVoicesAsync(engine.enumerateVoices, func(err error) {
		engine.log.WithError(err).Warn("failed to list Google voices")
	})

	return engine, nil
}

func (g *GoogleClassicEngine) enumerateVoices() ([]Voice, error) {
	resp, err := g.client.ListVoices(g.ctx, &texttospeechpb.ListVoicesRequest{})
	if err != nil {
		return nil, err
	}
	return googleVoices(resp.GetVoices()), nil
}

// googleVoices flattens the API list into one Voice per language code. The
// first en-US voice becomes the default.
func googleVoices(in []*texttospeechpb.Voice) []Voice {
	voices := make([]Voice, 0, len(in))
	haveDefault := false

	for _, v := range in {
		for _, code := range v.GetLanguageCodes() {
			voice := Voice{
				Name:   v.GetName(),
				ID:     v.GetName(),
				Locale: code,
			}
			if !haveDefault && code == "en-US" {
				voice.Default = true
				haveDefault = true
			}
			voices = append(voices, voice)
		}
	}

	return voices
}

// Speak synthesizes (or loads from cache) and plays in the background.
func (g *GoogleClassicEngine) Speak(u Utterance) error {
	g.mu.Lock()
	g.generation++
	gen := g.generation
	g.speaking = true
	g.mu.Unlock()

	go func() {
		if err := g.play(gen, u); err != nil {
			g.log.WithError(err).Warn("playback failed")
			g.finish(gen)
		}
	}()

	return nil
}

func (g *GoogleClassicEngine) play(gen int, u Utterance) error {
	paths, err := g.audioFiles(u)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		g.finish(gen)
		return nil
	}

	streamers := make([]beep.StreamSeekCloser, 0, len(paths))
	closeAll := func() {
		for _, s := range streamers {
			s.Close()
		}
	}

	var format beep.Format
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return fmt.Errorf("failed to open cached MP3 %s: %w", path, err)
		}
		streamer, fmtInfo, err := mp3.Decode(f)
		if err != nil {
			f.Close()
			closeAll()
			return fmt.Errorf("failed to decode MP3 %s: %w", path, err)
		}
		streamers = append(streamers, streamer)
		format = fmtInfo
	}

	if err := initSpeaker(format.SampleRate); err != nil {
		closeAll()
		return err
	}

	g.mu.Lock()
	if gen != g.generation {
		// cancelled while synthesizing
		g.mu.Unlock()
		closeAll()
		return nil
	}
	seq := make([]beep.Streamer, len(streamers))
	for i, s := range streamers {
		seq[i] = s
	}
	ctrl := &beep.Ctrl{Streamer: beep.Seq(seq...)}
	g.ctrl = ctrl
	g.streamers = streamers
	g.mu.Unlock()

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		g.finish(gen)
	})))

	return nil
}

func (g *GoogleClassicEngine) finish(gen int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen == g.generation {
		g.speaking = false
	}
}

// audioFiles returns the cached MP3 chunks for u, synthesizing any missing.
func (g *GoogleClassicEngine) audioFiles(u Utterance) ([]string, error) {
	hash := md5Sum(u.Text + "|" + u.Voice.ID)[:12]
	chunks := splitIntoChunks(u.Text, 4800)

	paths := make([]string, len(chunks))
	for i, chunk := range chunks {
		path := filepath.Join(g.cacheDir, fmt.Sprintf("%s_%d.mp3", hash, i))
		paths[i] = path

		if _, err := os.Stat(path); err == nil {
			g.log.WithField("path", path).Debug("using cached audio")
			continue
		}

		resp, err := g.client.SynthesizeSpeech(g.ctx, synthesizeRequest(chunk, u))
		if err != nil {
			return nil, fmt.Errorf("failed to synthesize chunk %d: %w", i, err)
		}
		if err := os.WriteFile(path, resp.GetAudioContent(), 0644); err != nil {
			return nil, fmt.Errorf("failed to write MP3 chunk %d to %s: %w", i, path, err)
		}
		g.log.WithFields(logrus.Fields{
			"chunk": i + 1,
			"of":    len(chunks),
			"path":  path,
		}).Debug("cached audio chunk")
	}

	return paths, nil
}

func synthesizeRequest(text string, u Utterance) *texttospeechpb.SynthesizeSpeechRequest {
	audioCfg := &texttospeechpb.AudioConfig{
		AudioEncoding: texttospeechpb.AudioEncoding_MP3,
	}

	// Chirp voices reject speakingRate and pitch
	if !strings.Contains(strings.ToLower(u.Voice.Name), "chirp") {
		audioCfg.SpeakingRate = u.Rate
		audioCfg.Pitch = (u.Pitch - 1) * 20
		audioCfg.VolumeGainDb = volumeGainDb(u.Volume)
	}

	return &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: u.Voice.Locale,
			Name:         u.Voice.Name,
		},
		AudioConfig: audioCfg,
	}
}

// volumeGainDb maps a 0..1 volume to the API's -96..16 dB gain.
func volumeGainDb(volume float64) float64 {
	if volume <= 0 {
		return -96
	}
	return math.Max(-96, math.Min(16, 20*math.Log10(volume)))
}

func (g *GoogleClassicEngine) Cancel() error {
	g.mu.Lock()
	g.generation++
	g.speaking = false
	ctrl := g.ctrl
	streamers := g.streamers
	g.ctrl = nil
	g.streamers = nil
	g.mu.Unlock()

	// The speaker lock is never taken while holding g.mu; playback callbacks
	// run under it and take g.mu.
	if ctrl != nil {
		speaker.Lock()
		ctrl.Streamer = nil
		speaker.Unlock()
	}
	for _, s := range streamers {
		s.Close()
	}
	return nil
}

func (g *GoogleClassicEngine) IsSpeaking() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.speaking
}

// ClearCache removes all cached audio.
func (g *GoogleClassicEngine) ClearCache() error {
	return os.RemoveAll(g.cacheDir)
}

func md5Sum(s string) string {
	h := md5.New()
	io.WriteString(h, s)
	return fmt.Sprintf("%x", h.Sum(nil))
}

func splitIntoChunks(text string, limit int) []string {
	var chunks []string
	runes := []rune(text) // safe for UTF-8
	for i := 0; i < len(runes); i += limit {
		end := i + limit
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
