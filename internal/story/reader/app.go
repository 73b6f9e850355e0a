package reader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"parallelstory/internal/cli/scheme/colours"
	"parallelstory/internal/config"
	"parallelstory/internal/domain/library"
	"parallelstory/internal/domain/story"
	"parallelstory/internal/metrics"
	"parallelstory/internal/progress"
	"parallelstory/internal/reading"
	"parallelstory/internal/story/tts"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// voiceWait bounds how long commands wait for a synthesizer to report voices.
const voiceWait = 3 * time.Second

// App is the command-line application
type App struct {
	cfg     *config.Config
	cache   *library.Cache
	samples library.StoryLibrary

	in  *bufio.Reader
	out io.Writer
	log logrus.FieldLogger

	// newSynthesizer is swapped in tests
	newSynthesizer func(tts.Config) (tts.Synthesizer, error)

	mu     sync.Mutex
	speech *tts.Controller

	ctx    context.Context
	Cancel context.CancelFunc
}

func NewApp(cfg *config.Config, in io.Reader, out io.Writer) *App {
	var cache *library.Cache
	if cfg.Library.URL != "" {
		cache = library.NewCache(cfg.Library.URL, cfg.Library.CacheDir, cfg.Library.MaxAge)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		cfg:            cfg,
		cache:          cache,
		samples:        library.Samples(),
		in:             bufio.NewReader(in),
		out:            out,
		log:            logrus.WithField("component", "app"),
		newSynthesizer: tts.NewSynthesizer,
		ctx:            ctx,
		Cancel:         cancel,
	}
}

func (a *App) ShowWelcome() {
	fmt.Fprintln(a.out)
	colours.Title.Fprintln(a.out, "🌟 Welcome to ParallelStory! 🌟")
	fmt.Fprintln(a.out)
	colours.Info.Fprintln(a.out, "📚 Available commands:")
	fmt.Fprintln(a.out, "  • parallelstory list             - Browse available stories")
	fmt.Fprintln(a.out, "  • parallelstory read [id]        - Read a story sentence by sentence")
	fmt.Fprintln(a.out, "  • parallelstory voices [lang]    - Show speech voices")
	fmt.Fprintln(a.out, "  • parallelstory library status   - Check the online library cache")
	fmt.Fprintln(a.out, "  • parallelstory settings         - Show current settings")
	fmt.Fprintln(a.out)
	colours.Prompt.Fprintln(a.out, "✨ Ready to read in another language? ✨")
}

// libraries returns the built-in collection followed by the online one when
// configured and reachable.
func (a *App) libraries() []library.StoryLibrary {
	libs := []library.StoryLibrary{a.samples}
	if a.cache == nil {
		return libs
	}

	online, err := a.cache.GetLibrary()
	if err != nil {
		a.log.WithError(err).Warn("online library unavailable")
		return libs
	}
	return append(libs, *online)
}

func (a *App) ListStories(cmd *cobra.Command, args []string) {
	language, _ := cmd.Flags().GetString("language")

	fmt.Fprintln(a.out)
	colours.Title.Fprintln(a.out, "📚 Available Stories 📚")
	fmt.Fprintln(a.out)

	count := 0
	for _, lib := range a.libraries() {
		stories := lib.Stories
		if language != "" {
			stories = lib.Filter(language)
		}
		if len(stories) == 0 {
			continue
		}

		colours.Info.Fprintf(a.out, "📖 From %s:\n", lib.Name)
		for _, item := range stories {
			count++
			a.printStory(count, item)
		}
	}

	if count == 0 {
		colours.Warning.Fprintln(a.out, "🔍 No stories found matching your criteria.")
	} else {
		colours.Success.Fprintf(a.out, "✨ Found %d stories ✨\n", count)
	}
}

func (a *App) printStory(n int, item story.Item) {
	fmt.Fprintf(a.out, "  %d. ", n)
	colours.Title.Fprintf(a.out, "%s", item.Title)
	fmt.Fprint(a.out, " by ")
	colours.Author.Fprintf(a.out, "%s", item.Author)
	fmt.Fprintf(a.out, "\n     🌍 %s → %s | 🎯 Level: %s | 📝 %d sentences\n",
		item.Language, item.SourceLanguage, item.Level, len(item.Sentences))
	if item.Description != "" {
		fmt.Fprintf(a.out, "     💡 %s\n", item.Description)
	}
	colours.Info.Fprintf(a.out, "     ID: %s\n", item.ID)
	fmt.Fprintln(a.out)
}

func (a *App) ReadStory(cmd *cobra.Command, args []string) {
	file, _ := cmd.Flags().GetString("file")
	example, _ := cmd.Flags().GetBool("example")
	noSpeech, _ := cmd.Flags().GetBool("no-speech")

	item, err := a.selectStory(file, args)
	if err != nil {
		colours.Error.Fprintf(a.out, "❌ %v\n", err)
		return
	}
	if item == nil {
		return
	}
	if example || a.cfg.Reader.Example {
		item.Example = true
	}

	events, stop := a.eventSinks()
	defer stop()

	opts := Options{In: a.in, Out: a.out, Events: events, Logger: a.log}
	if !noSpeech && !item.Example {
		if speech, err := a.startSpeech(); err != nil {
			colours.Warning.Fprintf(a.out, "🔇 Speech unavailable: %v\n", err)
		} else {
			opts.Speech = speech
		}
	}

	r := New(*item, opts)
	if item.Example {
		r.RunExample()
		return
	}

	fmt.Fprintln(a.out)
	colours.Author.Fprintf(a.out, "✍️  by %s\n", item.Author)
	if err := r.Run(a.ctx); err != nil {
		colours.Error.Fprintf(a.out, "❌ %v\n", err)
	}
}

func (a *App) ReadRandomStory(cmd *cobra.Command, args []string) {
	var ids []string
	for _, lib := range a.libraries() {
		for _, item := range lib.Stories {
			ids = append(ids, item.ID)
		}
	}
	if len(ids) == 0 {
		colours.Error.Fprintln(a.out, "❌ No stories available!")
		return
	}

	fmt.Fprintln(a.out)
	colours.Prompt.Fprintln(a.out, "🎲 Random Story Selection! 🎲")
	a.ReadStory(cmd, []string{ids[rand.Intn(len(ids))]})
}

func (a *App) selectStory(file string, args []string) (*story.Item, error) {
	if file != "" {
		lib, err := library.LoadFile(file)
		if err != nil {
			return nil, err
		}
		if len(args) > 0 {
			return lib.Find(args[0])
		}
		if len(lib.Stories) == 0 {
			return nil, fmt.Errorf("no stories in %s", file)
		}
		item := lib.Stories[0]
		return &item, nil
	}

	if len(args) > 0 {
		for _, lib := range a.libraries() {
			if item, err := lib.Find(args[0]); err == nil {
				return item, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", library.ErrStoryNotFound, args[0])
	}

	return a.interactiveStorySelection()
}

func (a *App) interactiveStorySelection() (*story.Item, error) {
	var stories []story.Item
	for _, lib := range a.libraries() {
		stories = append(stories, lib.Stories...)
	}

	fmt.Fprintln(a.out)
	colours.Title.Fprintln(a.out, "📚 Choose a story 📚")
	fmt.Fprintln(a.out)
	for i, item := range stories {
		fmt.Fprintf(a.out, "%d. ", i+1)
		colours.Title.Fprintf(a.out, "%s", item.Title)
		fmt.Fprintf(a.out, " (%s, %s)\n", item.Language, item.Level)
	}

	fmt.Fprintln(a.out)
	colours.Prompt.Fprint(a.out, "🌟 Enter the number of your chosen story (or 'q' to quit): ")

	input, _ := a.in.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "q" || input == "quit" || input == "" {
		colours.Warning.Fprintln(a.out, "👋 Maybe next time!")
		return nil, nil
	}

	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > len(stories) {
		return nil, fmt.Errorf("invalid selection %q", input)
	}
	return &stories[choice-1], nil
}

// eventSinks builds the progress and metrics sinks. The returned func shuts
// down the metrics endpoint.
func (a *App) eventSinks() (reading.EventSink, func()) {
	var sinks reading.Sinks
	stop := func() {}

	if a.cfg.Progress.Path != "" {
		tracker, err := progress.NewTracker(a.cfg.Progress.Path, a.log)
		if err != nil {
			a.log.WithError(err).Warn("progress tracking disabled")
		} else {
			sinks = append(sinks, tracker)
		}
	}

	recorder := metrics.New()
	sinks = append(sinks, recorder)

	if a.cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", recorder.Handler())
		srv := &http.Server{Addr: a.cfg.Metrics.Addr, Handler: mux}

		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.WithError(err).Warn("metrics server stopped")
			}
		}()
		a.log.WithField("addr", a.cfg.Metrics.Addr).Info("serving metrics")

		stop = func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}
	}

	return sinks, stop
}

// startSpeech creates the configured synthesizer once and returns its
// controller.
func (a *App) startSpeech() (*tts.Controller, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.speech != nil {
		return a.speech, nil
	}

	synth, err := a.newSynthesizer(a.ttsConfig())
	if err != nil {
		return nil, err
	}

	a.speech = tts.NewController(synth, tts.NewResolver(a.cfg.TTS.PreferredVoices), a.log)
	a.speech.Start()
	return a.speech, nil
}

func (a *App) ttsConfig() tts.Config {
	return tts.Config{
		Type:            a.cfg.TTS.Type,
		CachePath:       a.cfg.TTS.CachePath,
		CredentialsFile: a.cfg.TTS.CredentialsFile,
	}
}

// StopSpeech silences and releases the synthesizer, if one was started.
func (a *App) StopSpeech() {
	a.mu.Lock()
	speech := a.speech
	a.speech = nil
	a.mu.Unlock()

	if speech != nil {
		speech.Close()
	}
}

func (a *App) ShowVoices(cmd *cobra.Command, args []string) {
	speech, err := a.startSpeech()
	if err != nil {
		colours.Error.Fprintf(a.out, "❌ %v\n", err)
		return
	}

	if !a.waitForVoices(speech) {
		colours.Warning.Fprintln(a.out, "⏳ No voices reported yet")
		return
	}

	voices := speech.Voices()
	sort.Slice(voices, func(i, j int) bool {
		if voices[i].Locale != voices[j].Locale {
			return voices[i].Locale < voices[j].Locale
		}
		return voices[i].Name < voices[j].Name
	})

	fmt.Fprintln(a.out)
	colours.Title.Fprintf(a.out, "🎤 %d voices 🎤\n", len(voices))
	for _, v := range voices {
		fmt.Fprintf(a.out, "  %-8s %s", v.Locale, v.Name)
		if v.Default {
			colours.Info.Fprint(a.out, " (default)")
		}
		fmt.Fprintln(a.out)
	}

	if len(args) == 0 {
		return
	}

	language := strings.Join(args, " ")
	fmt.Fprintln(a.out)
	if !speech.Supports(language) {
		colours.Warning.Fprintf(a.out, "🔇 No locale for %s, speech is disabled for it\n", language)
		return
	}
	voice, ok := speech.VoiceFor(language)
	if !ok {
		colours.Warning.Fprintf(a.out, "🔇 No voice available for %s\n", language)
		return
	}
	colours.Success.Fprintf(a.out, "✅ %s will be read by %s (%s)\n", language, voice.Name, voice.Locale)
}

func (a *App) waitForVoices(speech *tts.Controller) bool {
	deadline := time.NewTimer(voiceWait)
	defer deadline.Stop()
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()

	for !speech.Ready() {
		select {
		case <-a.ctx.Done():
			return false
		case <-deadline.C:
			return false
		case <-tick.C:
		}
	}
	return true
}

func (a *App) RefreshLibrary(cmd *cobra.Command, args []string) {
	if a.cache == nil {
		colours.Warning.Fprintln(a.out, "🔗 No online library configured (set library.url)")
		return
	}

	if err := a.cache.ClearCache(); err != nil {
		colours.Error.Fprintf(a.out, "❌ %v\n", err)
		return
	}
	lib, err := a.cache.GetLibrary()
	if err != nil {
		colours.Error.Fprintf(a.out, "❌ %v\n", err)
		return
	}
	colours.Success.Fprintf(a.out, "✅ Fetched %d stories from %s\n", len(lib.Stories), lib.Name)
}

func (a *App) LibraryStatus(cmd *cobra.Command, args []string) {
	fmt.Fprintln(a.out)
	colours.Title.Fprintln(a.out, "🏛️ Story Libraries 🏛️")
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "  • %s: %d stories (built in)\n", a.samples.Name, len(a.samples.Stories))

	if a.cache == nil {
		fmt.Fprintln(a.out, "  • Online library: not configured")
		return
	}

	info := a.cache.Info()
	fmt.Fprintf(a.out, "  • Online library: %s\n", a.cfg.Library.URL)
	if !info.Exists {
		fmt.Fprintln(a.out, "    Cache: empty")
		return
	}
	fmt.Fprintf(a.out, "    Cache: %s (%d bytes)\n", info.Path, info.Size)
	fmt.Fprintf(a.out, "    Updated: %s\n", info.LastModified.Format(time.RFC1123))
	if info.Fresh {
		colours.Success.Fprintf(a.out, "    Fresh for up to %s\n", info.MaxAge)
	} else {
		colours.Warning.Fprintln(a.out, "    Stale, run `parallelstory library refresh`")
	}
}

func (a *App) ConfigureSettings(cmd *cobra.Command, args []string) {
	fmt.Fprintln(a.out)
	colours.Title.Fprintln(a.out, "⚙️ Settings ⚙️")
	fmt.Fprintln(a.out)

	colours.Prompt.Fprintln(a.out, "🎤 Speech:")
	fmt.Fprintf(a.out, "  • Engine: %s\n", a.cfg.TTS.Type)
	fmt.Fprintf(a.out, "  • Pitch %.1f, rate %.1f, volume %.1f\n", tts.DefaultPitch, tts.DefaultRate, tts.DefaultVolume)
	engines := tts.GetAvailableEngines(a.ttsConfig())
	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = e.String()
	}
	fmt.Fprintf(a.out, "  • Available engines: %s\n", strings.Join(names, ", "))
	if len(a.cfg.TTS.PreferredVoices) > 0 {
		codes := make([]string, 0, len(a.cfg.TTS.PreferredVoices))
		for code := range a.cfg.TTS.PreferredVoices {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			fmt.Fprintf(a.out, "  • Preferred %s: %s\n", code, strings.Join(a.cfg.TTS.PreferredVoices[code], ", "))
		}
	}
	fmt.Fprintln(a.out)

	colours.Prompt.Fprintln(a.out, "📚 Reading:")
	fmt.Fprintf(a.out, "  • Example mode: %t\n", a.cfg.Reader.Example)
	fmt.Fprintf(a.out, "  • Progress file: %s\n", a.cfg.Progress.Path)
	if a.cfg.Metrics.Addr != "" {
		fmt.Fprintf(a.out, "  • Metrics: http://%s/metrics\n", a.cfg.Metrics.Addr)
	}
	fmt.Fprintln(a.out)

	colours.Info.Fprintln(a.out, "💡 Change these in ~/.parallelstory/parallelstory.yaml or with PARALLELSTORY_* variables")
}

// Out is where the app writes, for callers printing around it.
func (a *App) Out() io.Writer {
	return a.out
}
