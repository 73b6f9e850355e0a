package reader

import (
	"fmt"
	"io"
	"strings"

	"parallelstory/internal/cli/scheme/colours"
	"parallelstory/internal/reading"

	"github.com/fatih/color"
)

const progressWidth = 20

func renderView(w io.Writer, v reading.View) {
	fmt.Fprintln(w)
	colours.Title.Fprintf(w, "📖 %s", v.Title)
	colours.Info.Fprintf(w, " (%s)\n", v.Language)
	fmt.Fprintf(w, "%s %3.0f%%\n\n", progressBar(v.Progress), v.Progress)

	if len(v.Sentences) == 0 {
		colours.Warning.Fprintln(w, "This story has no sentences.")
		return
	}

	for _, s := range v.Sentences {
		marker := "  "
		if s.Class == reading.ClassActive {
			marker = "▶ "
		}
		fmt.Fprintf(w, "%s%2d. ", marker, s.Index+1)
		renderTarget(w, s)
		fmt.Fprintln(w)

		if s.SourceVisible {
			colours.Source.Fprintf(w, "      %s\n", s.Pair.Source)
		}
	}

	fmt.Fprintln(w)
	if v.Finished {
		colours.Success.Fprintln(w, "✅ Story finished! 🌟")
	}
}

// renderTarget underlines the words of the active sentence that have a
// translation.
func renderTarget(w io.Writer, s reading.SentenceView) {
	if !s.Hoverable {
		styleFor(s.Class).Fprint(w, reading.Join(s.Tokens))
		return
	}

	for _, tok := range s.Tokens {
		if tok.Hoverable {
			colours.Hoverable.Fprint(w, tok.Text)
		} else {
			colours.Active.Fprint(w, tok.Text)
		}
	}
}

func styleFor(class reading.SentenceClass) *color.Color {
	switch class {
	case reading.ClassActive:
		return colours.Active
	case reading.ClassFuture:
		return colours.Future
	default:
		return colours.Past
	}
}

func progressBar(percent float64) string {
	filled := int(percent / 100 * progressWidth)
	if filled > progressWidth {
		filled = progressWidth
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", progressWidth-filled) + "]"
}

func renderTooltip(w io.Writer, word string, t reading.Tooltip) {
	fmt.Fprint(w, "💬 ")
	colours.Tooltip.Fprintf(w, " %s → %s ", word, t.Content)
	fmt.Fprintln(w)
}

func renderHelp(w io.Writer) {
	colours.Info.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  Enter, n     next sentence")
	fmt.Fprintln(w, "  p            previous sentence")
	fmt.Fprintln(w, "  <number>     go back to a sentence")
	fmt.Fprintln(w, "  t            show/hide all translations")
	fmt.Fprintln(w, "  s            speak the current sentence")
	fmt.Fprintln(w, "  h <word>     translate a highlighted word")
	fmt.Fprintln(w, "  x            hide the translation")
	fmt.Fprintln(w, "  r            start over")
	fmt.Fprintln(w, "  q            quit")
}
