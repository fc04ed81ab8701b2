package services

import (
	"context"

	"event-studio/models"
)

// ContentGenerator is the AI collaborator behind the content coordinator.
type ContentGenerator interface {
	// GenerateDescription produces a description plus SEO tags and
	// hashtags from the draft-derived request.
	GenerateDescription(ctx context.Context, req *models.DescriptionRequest) (*models.GeneratedContent, error)

	// GetOptimizations suggests improved field values for the given
	// draft snapshot. Any suggestion may be nil.
	GetOptimizations(ctx context.Context, draft *models.EventDraft) (*models.OptimizationSuggestions, error)

	// AutoGenerateEvent bootstraps a complete draft from a minimal seed.
	AutoGenerateEvent(ctx context.Context, seed *models.EventSeed) (*models.EventDraft, error)
}

// MediaProcessor is the image/video optimization collaborator.
type MediaProcessor interface {
	ProcessImages(ctx context.Context, sources []string) (*models.ImageBatchResult, error)
	ProcessVideo(ctx context.Context, source string) (*models.VideoResult, error)
}

// EventCreator persists a published event and assigns its identity.
type EventCreator interface {
	CreateEvent(ctx context.Context, req *models.CreateEventRequest) (*models.PublishedEvent, error)
}

// AutomationProvisioner sets up post-publish tooling for an event.
type AutomationProvisioner interface {
	SetupAutomation(ctx context.Context, req *models.AutomationRequest) (*models.AutomationResult, error)
}

// DraftStore persists the working draft between authoring sessions.
type DraftStore interface {
	SaveDraft(ctx context.Context, draft *models.EventDraft) error
	GetDraft(ctx context.Context, creatorID string) (*models.EventDraft, error)
	ClearDraft(ctx context.Context, creatorID string) error
}
