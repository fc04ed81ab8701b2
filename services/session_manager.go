package services

import (
	"context"
	"log"
	"sync"
	"time"

	"event-studio/monitoring"

	pubnub "github.com/pubnub/go"
)

// Session bundles the per-creator authoring state machine with its two
// coordinators. Coordinator status is transient and per session, so the
// three share a lifetime.
type Session struct {
	Authoring *AuthoringService
	Media     *MediaService
	Content   *ContentService

	lastActive time.Time
}

// SessionManager owns all live authoring sessions, one per creator. It
// lazily creates a session on first access, restores any persisted
// draft, and evicts sessions idle past the configured TTL.
type SessionManager struct {
	store      DraftStore
	generator  ContentGenerator
	processor  MediaProcessor
	creator    EventCreator
	automation *AutomationService
	pubnub     *pubnub.PubNub
	monitor    *monitoring.Monitor

	autosaveDelay time.Duration
	idleTTL       time.Duration
	sweepInterval time.Duration

	mu       sync.Mutex
	sessions map[string]*Session

	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewSessionManager(
	store DraftStore,
	generator ContentGenerator,
	processor MediaProcessor,
	creator EventCreator,
	automation *AutomationService,
	pn *pubnub.PubNub,
	monitor *monitoring.Monitor,
	autosaveDelay, idleTTL, sweepInterval time.Duration,
) *SessionManager {
	m := &SessionManager{
		store:         store,
		generator:     generator,
		processor:     processor,
		creator:       creator,
		automation:    automation,
		pubnub:        pn,
		monitor:       monitor,
		autosaveDelay: autosaveDelay,
		idleTTL:       idleTTL,
		sweepInterval: sweepInterval,
		sessions:      make(map[string]*Session),
		stopChan:      make(chan struct{}),
	}

	m.wg.Add(1)
	go m.sweeper()

	return m
}

// Session returns the live session for a creator, creating and restoring
// it on first access.
func (m *SessionManager) Session(ctx context.Context, creatorID string) (*Session, error) {
	m.mu.Lock()
	if session, ok := m.sessions[creatorID]; ok {
		session.lastActive = time.Now()
		m.mu.Unlock()
		return session, nil
	}
	m.mu.Unlock()

	// Build outside the lock; restoring the draft hits Redis.
	authoring := NewAuthoringService(
		creatorID,
		NewValidationEngine(),
		NewAutosaveService(m.store, m.autosaveDelay, m.monitor),
		m.store,
		m.creator,
		m.automation,
		m.pubnub,
		m.monitor,
	)
	if err := authoring.Load(ctx); err != nil {
		return nil, err
	}

	session := &Session{
		Authoring:  authoring,
		Media:      NewMediaService(m.processor, authoring, m.pubnub, m.monitor),
		Content:    NewContentService(m.generator, authoring, m.pubnub, m.monitor),
		lastActive: time.Now(),
	}

	m.mu.Lock()
	// Another request may have built the session first; keep the winner.
	if existing, ok := m.sessions[creatorID]; ok {
		existing.lastActive = time.Now()
		m.mu.Unlock()
		return existing, nil
	}
	m.sessions[creatorID] = session
	count := len(m.sessions)
	m.mu.Unlock()

	m.monitor.SetActiveSessions(count)
	return session, nil
}

// Drop removes a creator's session, cancelling any pending autosave.
func (m *SessionManager) Drop(creatorID string) {
	m.mu.Lock()
	session, ok := m.sessions[creatorID]
	if ok {
		delete(m.sessions, creatorID)
	}
	count := len(m.sessions)
	m.mu.Unlock()

	if ok {
		session.Authoring.autosave.Cancel()
	}
	m.monitor.SetActiveSessions(count)
}

func (m *SessionManager) sweeper() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictIdle()
		case <-m.stopChan:
			return
		}
	}
}

func (m *SessionManager) evictIdle() {
	cutoff := time.Now().Add(-m.idleTTL)

	m.mu.Lock()
	evicted := 0
	for creatorID, session := range m.sessions {
		if session.lastActive.Before(cutoff) {
			delete(m.sessions, creatorID)
			evicted++
		}
	}
	count := len(m.sessions)
	m.mu.Unlock()

	if evicted > 0 {
		log.Printf("Evicted %d idle authoring sessions, %d remaining", evicted, count)
	}
	m.monitor.SetActiveSessions(count)
}

// Shutdown stops the sweeper and waits for it to finish.
func (m *SessionManager) Shutdown() {
	close(m.stopChan)

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("Session manager stopped")
	case <-time.After(10 * time.Second):
		log.Println("Timeout waiting for session manager to stop")
	}
}
