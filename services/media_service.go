package services

import (
	"context"
	"sync"

	"event-studio/internal/status"
	"event-studio/models"
	"event-studio/monitoring"

	"github.com/google/uuid"
	pubnub "github.com/pubnub/go"
)

// MediaService drives the image and video optimization pipelines for one
// authoring session. Image and video calls are independent; each reads
// its inputs, performs the remote call without holding any lock, and
// merges its result through the session's append-only setters, so
// concurrent calls never clobber each other's fields.
type MediaService struct {
	processor MediaProcessor
	session   *AuthoringService
	pubnub    *pubnub.PubNub
	monitor   *monitoring.Monitor

	mu    sync.Mutex
	state models.MediaState
}

func NewMediaService(processor MediaProcessor, session *AuthoringService, pn *pubnub.PubNub, monitor *monitoring.Monitor) *MediaService {
	return &MediaService{
		processor: processor,
		session:   session,
		pubnub:    pn,
		monitor:   monitor,
		state:     models.MediaState{Phase: models.MediaIdle},
	}
}

// State returns the per-call transient status of the coordinator.
func (s *MediaService) State() models.MediaState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ProcessImages optimizes a batch of raw images and appends the results
// to the draft. A failed call leaves the draft exactly as it was.
func (s *MediaService) ProcessImages(ctx context.Context, sources []string) (*models.ImageBatchResult, error) {
	if len(sources) == 0 {
		s.setState(models.MediaState{Phase: models.MediaError, Message: "No images selected"})
		return nil, status.ErrEmptyImageBatch
	}

	s.setState(models.MediaState{Phase: models.MediaLoading})

	result, err := s.processor.ProcessImages(ctx, sources)
	if err != nil {
		s.setState(models.MediaState{Phase: models.MediaError, Message: err.Error()})
		s.monitor.TrackOperation("process_images", "failure")
		return nil, err
	}

	s.session.AppendImages(result.OptimizedURLs, result.Warnings, result.AltTexts)

	s.setState(models.MediaState{Phase: models.MediaImagesProcessed, Images: result})
	s.monitor.TrackOperation("process_images", "success")

	return result, nil
}

// ProcessVideo optimizes a single raw video and appends the resulting
// reel to the draft.
func (s *MediaService) ProcessVideo(ctx context.Context, source string) (*models.VideoResult, error) {
	s.setState(models.MediaState{Phase: models.MediaLoading})

	result, err := s.processor.ProcessVideo(ctx, source)
	if err != nil {
		s.setState(models.MediaState{Phase: models.MediaError, Message: err.Error()})
		s.monitor.TrackOperation("process_video", "failure")
		return nil, err
	}

	reel := models.Reel{
		ID:           uuid.NewString(),
		VideoURL:     result.OptimizedURL,
		ThumbnailURL: result.ThumbnailURL,
	}
	s.session.AppendReel(reel, result.Warnings)

	s.setState(models.MediaState{Phase: models.MediaVideoProcessed, Video: result})
	s.monitor.TrackOperation("process_video", "success")

	return result, nil
}

func (s *MediaService) setState(state models.MediaState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	s.notifyState(state)
}

func (s *MediaService) notifyState(state models.MediaState) {
	if s.pubnub == nil {
		return
	}

	payload := map[string]any{
		"type":  "media_state",
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
