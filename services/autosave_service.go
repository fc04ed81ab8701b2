package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"event-studio/models"
	"event-studio/monitoring"
)

const autosaveFlushTimeout = 10 * time.Second

// AutosaveService debounces draft persistence on the trailing edge:
// every ScheduleSave call cancels the previously armed save and restarts
// the delay, so a burst of rapid edits produces exactly one SaveDraft
// call carrying the state of the last edit.
type AutosaveService struct {
	store   DraftStore
	delay   time.Duration
	monitor *monitoring.Monitor

	mu    sync.Mutex
	timer *time.Timer
}

func NewAutosaveService(store DraftStore, delay time.Duration, monitor *monitoring.Monitor) *AutosaveService {
	return &AutosaveService{
		store:   store,
		delay:   delay,
		monitor: monitor,
	}
}

// ScheduleSave arms a save of the draft as it is right now. The snapshot
// is taken immediately so later edits to the live draft cannot leak into
// an already armed save.
func (s *AutosaveService) ScheduleSave(draft *models.EventDraft) {
	snapshot := draft.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.flush(snapshot)
	})
}

// Cancel drops any pending save without side effects. Used by the
// discard flow and after a successful publish, when persisting the old
// draft would be wrong.
func (s *AutosaveService) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// flush performs the delayed persistence call. A failed save is logged
// and counted but never retried and never touches the in-memory draft.
func (s *AutosaveService) flush(snapshot *models.EventDraft) {
	ctx, cancel := context.WithTimeout(context.Background(), autosaveFlushTimeout)
	defer cancel()

	if err := s.store.SaveDraft(ctx, snapshot); err != nil {
		slog.Error("autosave failed", "creator_id", snapshot.CreatorID, "error", err)
		s.monitor.TrackAutosave("failure")
		return
	}
	s.monitor.TrackAutosave("success")
}
