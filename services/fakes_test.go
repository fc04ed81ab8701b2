package services

import (
	"context"
	"sync"

	"event-studio/internal/status"
	"event-studio/models"
)

// fakeDraftStore is an in-memory DraftStore that records every call.
type fakeDraftStore struct {
	mu      sync.Mutex
	drafts  map[string]*models.EventDraft
	saves   []*models.EventDraft
	cleared []string
	saveErr error
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{drafts: make(map[string]*models.EventDraft)}
}

func (f *fakeDraftStore) SaveDraft(ctx context.Context, draft *models.EventDraft) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		f.saves = append(f.saves, draft.Clone())
		return f.saveErr
	}

	f.saves = append(f.saves, draft.Clone())
	f.drafts[draft.CreatorID] = draft.Clone()
	return nil
}

func (f *fakeDraftStore) GetDraft(ctx context.Context, creatorID string) (*models.EventDraft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	draft, ok := f.drafts[creatorID]
	if !ok {
		return nil, status.ErrDraftNotFound
	}
	return draft.Clone(), nil
}

func (f *fakeDraftStore) ClearDraft(ctx context.Context, creatorID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.drafts, creatorID)
	f.cleared = append(f.cleared, creatorID)
	return nil
}

func (f *fakeDraftStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeDraftStore) lastSave() *models.EventDraft {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.saves) == 0 {
		return nil
	}
	return f.saves[len(f.saves)-1]
}

func (f *fakeDraftStore) clearedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cleared)
}

type fakeEventCreator struct {
	mu      sync.Mutex
	event   *models.PublishedEvent
	err     error
	calls   int
	lastReq *models.CreateEventRequest
}

func (f *fakeEventCreator) CreateEvent(ctx context.Context, req *models.CreateEventRequest) (*models.PublishedEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventCreator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeMediaProcessor struct {
	imagesResult *models.ImageBatchResult
	imagesErr    error
	videoResult  *models.VideoResult
	videoErr     error
}

func (f *fakeMediaProcessor) ProcessImages(ctx context.Context, sources []string) (*models.ImageBatchResult, error) {
	if f.imagesErr != nil {
		return nil, f.imagesErr
	}
	return f.imagesResult, nil
}

func (f *fakeMediaProcessor) ProcessVideo(ctx context.Context, source string) (*models.VideoResult, error) {
	if f.videoErr != nil {
		return nil, f.videoErr
	}
	return f.videoResult, nil
}

type fakeContentGenerator struct {
	content    *models.GeneratedContent
	contentErr error
	sugg       *models.OptimizationSuggestions
	suggErr    error
	draft      *models.EventDraft
	draftErr   error
}

func (f *fakeContentGenerator) GenerateDescription(ctx context.Context, req *models.DescriptionRequest) (*models.GeneratedContent, error) {
	if f.contentErr != nil {
		return nil, f.contentErr
	}
	return f.content, nil
}

func (f *fakeContentGenerator) GetOptimizations(ctx context.Context, draft *models.EventDraft) (*models.OptimizationSuggestions, error) {
	if f.suggErr != nil {
		return nil, f.suggErr
	}
	return f.sugg, nil
}

func (f *fakeContentGenerator) AutoGenerateEvent(ctx context.Context, seed *models.EventSeed) (*models.EventDraft, error) {
	if f.draftErr != nil {
		return nil, f.draftErr
	}
	return f.draft, nil
}

type fakeProvisioner struct {
	mu    sync.Mutex
	err   error
	calls []*models.AutomationRequest
}

func (f *fakeProvisioner) SetupAutomation(ctx context.Context, req *models.AutomationRequest) (*models.AutomationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &models.AutomationResult{EventID: req.EventID, Type: req.Type, Success: true}, nil
}

func (f *fakeProvisioner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeProvisioner) lastCall() *models.AutomationRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}
