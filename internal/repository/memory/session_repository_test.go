package memory

import (
	"testing"

	"research-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo := NewSessionRepository()

	repo.Save(&store.Session{
		ID:            "session-1",
		Mode:          store.ModeResearch,
		SummaryLength: store.LengthLong,
	})

	sess, found := repo.Get("session-1")
	require.True(t, found)
	assert.Equal(t, store.ModeResearch, sess.Mode)
	assert.Equal(t, store.LengthLong, sess.SummaryLength)
}

func TestSessionRepositorySharesPointer(t *testing.T) {
	repo := NewSessionRepository()

	repo.Save(&store.Session{ID: "session-2"})

	sess, found := repo.Get("session-2")
	require.True(t, found)

	// In-place mutations are visible without a second Save
	sess.ResearchContext = "summary text"
	sess.SourceType = store.SourceDocument

	again, found := repo.Get("session-2")
	require.True(t, found)
	assert.Equal(t, "summary text", again.ResearchContext)
	assert.Equal(t, store.SourceDocument, again.SourceType)
}

func TestSessionRepositoryDelete(t *testing.T) {
	repo := NewSessionRepository()

	repo.Save(&store.Session{ID: "session-3"})
	repo.Delete("session-3")

	_, found := repo.Get("session-3")
	assert.False(t, found)
}

func TestSessionRepositoryMissing(t *testing.T) {
	repo := NewSessionRepository()

	_, found := repo.Get("nope")
	assert.False(t, found)
}
