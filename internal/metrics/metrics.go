package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts reading events for prometheus. It owns its registry so
// several recorders can coexist in tests.
type Recorder struct {
	registry *prometheus.Registry

	sessionsFinished *prometheus.CounterVec
	wordsRevealed    *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		sessionsFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parallelstory_sessions_finished_total",
				Help: "Reading sessions that reached the end of a story",
			},
			[]string{"story"},
		),

		wordsRevealed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parallelstory_words_revealed_total",
				Help: "Vocabulary translations shown on hover",
			},
			[]string{"story"},
		),
	}

	r.registry.MustRegister(r.sessionsFinished, r.wordsRevealed)
	return r
}

func (r *Recorder) SessionFinished(storyID string) {
	r.sessionsFinished.WithLabelValues(storyID).Inc()
}

func (r *Recorder) WordRevealed(storyID string, _ int, _, _ string) {
	r.wordsRevealed.WithLabelValues(storyID).Inc()
}

// Handler serves the recorder's registry in the prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
