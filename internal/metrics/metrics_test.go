package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	r := New()

	r.SessionFinished("la-casa")
	r.SessionFinished("la-casa")
	r.SessionFinished("le-marche")
	r.WordRevealed("la-casa", 0, "casa", "house")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.sessionsFinished.WithLabelValues("la-casa")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sessionsFinished.WithLabelValues("le-marche")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.wordsRevealed.WithLabelValues("la-casa")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.sessionsFinished))
}

func TestRecordersAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.SessionFinished("s")

	assert.Equal(t, 0, testutil.CollectAndCount(b.sessionsFinished))
}

func TestHandlerServesRegistry(t *testing.T) {
	r := New()
	r.WordRevealed("der-zug", 1, "zug", "train")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `parallelstory_words_revealed_total{story="der-zug"} 1`)
}
