package reader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"parallelstory/internal/cli/scheme/colours"
	"parallelstory/internal/domain/story"
	"parallelstory/internal/reading"
	"parallelstory/internal/story/tts"

	"github.com/sirupsen/logrus"
)

// Options wires a Reader to its terminal and collaborators. Speech may be nil
// to read silently.
type Options struct {
	In     io.Reader
	Out    io.Writer
	Speech *tts.Controller
	Events reading.EventSink
	Logger logrus.FieldLogger
}

// Reader drives one reading session from line commands.
type Reader struct {
	session *reading.Session
	hover   *reading.Hover
	speech  *tts.Controller

	in  *bufio.Reader
	out io.Writer
	log logrus.FieldLogger
}

func New(item story.Item, opts Options) *Reader {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	in, ok := opts.In.(*bufio.Reader)
	if !ok {
		in = bufio.NewReader(opts.In)
	}

	sessionOpts := reading.Options{Events: opts.Events, Logger: opts.Logger}
	if opts.Speech != nil {
		sessionOpts.Speech = opts.Speech
	}
	session := reading.NewSession(item, sessionOpts)

	return &Reader{
		session: session,
		hover:   reading.NewHover(session, opts.Events),
		speech:  opts.Speech,
		in:      in,
		out:     opts.Out,
		log:     opts.Logger.WithField("story", item.ID),
	}
}

// Session exposes the underlying state machine.
func (r *Reader) Session() *reading.Session {
	return r.session
}

// Run renders the story and executes commands until quit, end of input or
// ctx is done.
func (r *Reader) Run(ctx context.Context) error {
	renderView(r.out, r.session.View())
	colours.Info.Fprintln(r.out, "💡 Type ? for commands")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		colours.Prompt.Fprint(r.out, "> ")
		line, err := r.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read command: %w", err)
		}
		eof := err != nil
		if eof && line == "" {
			fmt.Fprintln(r.out)
			return nil
		}

		if quit := r.Execute(line); quit || eof {
			return nil
		}
	}
}

// RunExample renders every step of the story without waiting for input.
func (r *Reader) RunExample() {
	for {
		v := r.session.View()
		if v.Finished || !v.CanAdvance {
			renderView(r.out, v)
			return
		}
		if pair, ok := r.session.ActiveSentence(); ok {
			colours.Active.Fprintf(r.out, "%d. %s\n", v.Active+1, pair.Target)
		}
		r.session.Advance()
	}
}

// Execute runs one command line. It reports whether the reader should quit.
func (r *Reader) Execute(line string) bool {
	line = strings.TrimSpace(line)
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "", "n", "next":
		r.session.Advance()
	case "p", "prev":
		r.session.Retreat()
	case "t", "toggle":
		r.session.ToggleShowAllSource()
	case "r", "restart":
		r.session.Restart()
	case "s", "speak":
		r.speak()
		return false
	case "h", "hover":
		r.hoverWord(arg)
		return false
	case "x":
		r.hover.Leave()
		return false
	case "?", "help":
		renderHelp(r.out)
		return false
	case "q", "quit":
		colours.Warning.Fprintln(r.out, "👋 Hasta luego!")
		return true
	default:
		n, err := strconv.Atoi(cmd)
		if err != nil {
			colours.Info.Fprintln(r.out, "ℹ️  Unknown command, type ? for help")
			return false
		}
		r.session.JumpTo(n - 1)
	}

	r.hover.Leave()
	renderView(r.out, r.session.View())
	return false
}

func (r *Reader) speak() {
	if r.speech == nil {
		colours.Info.Fprintln(r.out, "🔇 Speech is off")
		return
	}
	pair, ok := r.session.ActiveSentence()
	if !ok {
		return
	}
	r.speech.Speak(pair.Target, r.session.Item().Language)
}

func (r *Reader) hoverWord(word string) {
	if word == "" {
		colours.Info.Fprintln(r.out, "ℹ️  Usage: h <word>")
		return
	}

	st := r.session.State()
	tokens := reading.Words(reading.Tokenize(r.activeTarget(), r.session.Vocabulary(), true))
	for i, tok := range tokens {
		if reading.Normalize(tok.Text) != reading.Normalize(word) {
			continue
		}
		if r.hover.Enter(st.Active, tok.Text, reading.Position{X: i, Y: st.Active}) {
			renderTooltip(r.out, tok.Text, r.hover.Tooltip())
			return
		}
	}

	colours.Warning.Fprintf(r.out, "No translation for %q here\n", word)
}

func (r *Reader) activeTarget() string {
	pair, ok := r.session.ActiveSentence()
	if !ok {
		return ""
	}
	return pair.Target
}
