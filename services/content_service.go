package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"event-studio/models"
	"event-studio/monitoring"

	pubnub "github.com/pubnub/go"
)

// Fallback messages used when the underlying failure carries no text.
const (
	msgDescriptionFailed   = "Failed to generate description"
	msgOptimizationsFailed = "Failed to load optimization suggestions"
	msgAutoGenerateFailed  = "Failed to auto-generate event"
)

// ContentService drives AI content generation for one authoring session.
// Description generation replaces the draft's description, SEO tags and
// hashtags wholesale; optimization suggestions overwrite only the fields
// the generator actually suggested. Both read a snapshot, call out
// without holding any lock, and merge through the session's setters.
type ContentService struct {
	generator ContentGenerator
	session   *AuthoringService
	pubnub    *pubnub.PubNub
	monitor   *monitoring.Monitor

	mu    sync.Mutex
	state models.ContentState
}

func NewContentService(generator ContentGenerator, session *AuthoringService, pn *pubnub.PubNub, monitor *monitoring.Monitor) *ContentService {
	return &ContentService{
		generator: generator,
		session:   session,
		pubnub:    pn,
		monitor:   monitor,
		state:     models.ContentState{Phase: models.ContentIdle},
	}
}

func (s *ContentService) State() models.ContentState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// GenerateDescription derives a request from the current draft and, on
// success, overwrites description, SEO tags and hashtags.
func (s *ContentService) GenerateDescription(ctx context.Context) (*models.GeneratedContent, error) {
	snap := s.session.Snapshot()
	req := &models.DescriptionRequest{
		Title:    snap.Title,
		Category: snap.Category,
		Type:     snap.Type,
		Capacity: snap.Capacity.MaxAttendees,
		Address:  snap.Location.Address,
		Keywords: snap.SEOTags,
	}

	s.setState(models.ContentState{Phase: models.ContentLoading})

	start := time.Now()
	content, err := s.generator.GenerateDescription(ctx, req)
	s.monitor.ObserveGeneration("description", time.Since(start))

	if err != nil {
		s.setState(models.ContentState{Phase: models.ContentError, Message: messageOrDefault(err, msgDescriptionFailed)})
		s.monitor.TrackOperation("generate_description", "failure")
		return nil, err
	}

	s.session.SetGeneratedContent(content)

	s.setState(models.ContentState{Phase: models.ContentDescriptionReady})
	s.monitor.TrackOperation("generate_description", "success")

	return content, nil
}

// GetOptimizations requests per-field suggestions and applies each one
// that is present; absent suggestions leave the draft field alone.
func (s *ContentService) GetOptimizations(ctx context.Context) (*models.OptimizationSuggestions, error) {
	snap := s.session.Snapshot()

	s.setState(models.ContentState{Phase: models.ContentLoading})

	start := time.Now()
	sugg, err := s.generator.GetOptimizations(ctx, snap)
	s.monitor.ObserveGeneration("optimizations", time.Since(start))

	if err != nil {
		s.setState(models.ContentState{Phase: models.ContentError, Message: messageOrDefault(err, msgOptimizationsFailed)})
		s.monitor.TrackOperation("get_optimizations", "failure")
		return nil, err
	}

	s.session.ApplyOptimizations(sugg)

	s.setState(models.ContentState{Phase: models.ContentOptimizationsReady})
	s.monitor.TrackOperation("get_optimizations", "success")

	return sugg, nil
}

// AutoGenerate bootstraps a complete draft from a minimal seed and
// replaces the whole working draft with it.
func (s *ContentService) AutoGenerate(ctx context.Context, seed *models.EventSeed) (*models.EventDraft, error) {
	s.setState(models.ContentState{Phase: models.ContentLoading})

	start := time.Now()
	draft, err := s.generator.AutoGenerateEvent(ctx, seed)
	s.monitor.ObserveGeneration("auto_generate", time.Since(start))

	if err != nil {
		s.setState(models.ContentState{Phase: models.ContentError, Message: messageOrDefault(err, msgAutoGenerateFailed)})
		s.monitor.TrackOperation("auto_generate", "failure")
		return nil, err
	}

	s.session.ReplaceDraft(draft)

	s.setState(models.ContentState{Phase: models.ContentAutoGenerated})
	s.monitor.TrackOperation("auto_generate", "success")

	return draft, nil
}

func messageOrDefault(err error, fallback string) string {
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}

func (s *ContentService) setState(state models.ContentState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	s.notifyState(state)
}

func (s *ContentService) notifyState(state models.ContentState) {
	if s.pubnub == nil {
		return
	}

	payload := map[string]any{
		"type":  "content_state",
		"phase": state.Phase.String(),
	}
	if state.Message != "" {
		payload["message"] = state.Message
	}

	s.pubnub.Publish().
		Channel("creator-" + s.session.creatorID).
		Message(payload).
		Execute()
}
