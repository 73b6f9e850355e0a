package progress

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerRecordsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "progress.json")
	logger, _ := test.NewNullLogger()

	tracker, err := NewTracker(path, logger)
	require.NoError(t, err)
	fixed := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return fixed }

	tracker.WordRevealed("la-casa", 0, "casa", "house")
	tracker.WordRevealed("la-casa", 1, "azul", "blue")
	tracker.WordRevealed("la-casa", 2, "casa", "house")
	tracker.SessionFinished("la-casa")
	tracker.SessionFinished("la-casa")

	entry, ok := tracker.Entry("la-casa")
	require.True(t, ok)
	assert.Equal(t, 2, entry.FinishedCount)
	assert.Equal(t, fixed, entry.LastFinished)
	assert.Equal(t, []string{"azul", "casa"}, entry.Words)

	reloaded, err := NewTracker(path, logger)
	require.NoError(t, err)
	again, ok := reloaded.Entry("la-casa")
	require.True(t, ok)
	assert.Equal(t, entry, again)
}

func TestTrackerUnknownStory(t *testing.T) {
	tracker, err := NewTracker(filepath.Join(t.TempDir(), "progress.json"), nil)
	require.NoError(t, err)

	_, ok := tracker.Entry("missing")
	assert.False(t, ok)
}

func TestTrackerRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewTracker(path, nil)
	assert.ErrorContains(t, err, "parsing progress file")
}

func TestTrackerLogsSaveFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "sub")
	logger, hook := test.NewNullLogger()
	tracker, err := NewTracker(filepath.Join(blocker, "progress.json"), logger)
	require.NoError(t, err)

	// a plain file where the directory should be
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	tracker.SessionFinished("s")

	entry, _ := tracker.Entry("s")
	assert.Equal(t, 1, entry.FinishedCount)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "failed to save progress", hook.LastEntry().Message)
}
