package services

import (
	"context"
	"testing"
	"time"

	"event-studio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionManager(store *fakeDraftStore, idleTTL, sweepInterval time.Duration) *SessionManager {
	return NewSessionManager(
		store,
		&fakeContentGenerator{},
		&fakeMediaProcessor{},
		&fakeEventCreator{event: &models.PublishedEvent{ID: "evt123", Success: true}},
		NewAutomationService(&fakeProvisioner{}, nil),
		nil,
		nil,
		20*time.Millisecond,
		idleTTL,
		sweepInterval,
	)
}

func TestSessionManager_LazyCreateAndReuse(t *testing.T) {
	store := newFakeDraftStore()
	m := newSessionManager(store, time.Hour, time.Hour)
	defer m.Shutdown()

	first, err := m.Session(context.Background(), "creator1")
	require.NoError(t, err)
	require.NotNil(t, first.Authoring)
	require.NotNil(t, first.Media)
	require.NotNil(t, first.Content)

	second, err := m.Session(context.Background(), "creator1")
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := m.Session(context.Background(), "creator2")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
}

func TestSessionManager_RestoresPersistedDraft(t *testing.T) {
	store := newFakeDraftStore()
	persisted := models.NewEventDraft("creator1")
	persisted.Title = "Saved last week"
	store.drafts["creator1"] = persisted

	m := newSessionManager(store, time.Hour, time.Hour)
	defer m.Shutdown()

	session, err := m.Session(context.Background(), "creator1")
	require.NoError(t, err)
	assert.Equal(t, "Saved last week", session.Authoring.Snapshot().Title)
}

func TestSessionManager_DropCancelsPendingAutosave(t *testing.T) {
	store := newFakeDraftStore()
	m := newSessionManager(store, time.Hour, time.Hour)
	defer m.Shutdown()

	session, err := m.Session(context.Background(), "creator1")
	require.NoError(t, err)

	session.Authoring.SetTitle("About to be dropped")
	m.Drop("creator1")

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, store.saveCount())

	// A fresh session is built on next access.
	again, err := m.Session(context.Background(), "creator1")
	require.NoError(t, err)
	assert.NotSame(t, session, again)
}

func TestSessionManager_EvictsIdleSessions(t *testing.T) {
	store := newFakeDraftStore()
	m := newSessionManager(store, 30*time.Millisecond, 10*time.Millisecond)
	defer m.Shutdown()

	stale, err := m.Session(context.Background(), "creator1")
	require.NoError(t, err)

	// Idle past the TTL, then verify the next access builds fresh state.
	time.Sleep(100 * time.Millisecond)

	fresh, err := m.Session(context.Background(), "creator1")
	require.NoError(t, err)
	assert.NotSame(t, stale, fresh)
}
