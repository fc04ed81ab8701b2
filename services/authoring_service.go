package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"event-studio/internal/status"
	"event-studio/models"
	"event-studio/monitoring"

	pubnub "github.com/pubnub/go"
)

// AuthoringService is the state machine behind one authoring session. It
// is the single owner of the working draft: every mutation goes through
// its field-scoped setters, coordinators merge results through the same
// narrow paths, and no lock is ever held across a collaborator call.
type AuthoringService struct {
	creatorID string

	validator  *ValidationEngine
	autosave   *AutosaveService
	store      DraftStore
	creator    EventCreator
	automation *AutomationService
	pubnub     *pubnub.PubNub
	monitor    *monitoring.Monitor

	mu    sync.Mutex
	draft *models.EventDraft
	state models.PublishState
}

func NewAuthoringService(
	creatorID string,
	validator *ValidationEngine,
	autosave *AutosaveService,
	store DraftStore,
	creator EventCreator,
	automation *AutomationService,
	pn *pubnub.PubNub,
	monitor *monitoring.Monitor,
) *AuthoringService {
	return &AuthoringService{
		creatorID:  creatorID,
		validator:  validator,
		autosave:   autosave,
		store:      store,
		creator:    creator,
		automation: automation,
		pubnub:     pn,
		monitor:    monitor,
		draft:      models.NewEventDraft(creatorID),
		state:      models.PublishState{Phase: models.PublishIdle},
	}
}

// Load restores a previously persisted draft at session start. A missing
// draft is not an error; the session simply starts empty.
func (s *AuthoringService) Load(ctx context.Context) error {
	draft, err := s.store.GetDraft(ctx, s.creatorID)
	if err == status.ErrDraftNotFound {
		return nil
	} else if err != nil {
		return err
	}

	s.mu.Lock()
	s.draft = draft
	s.mu.Unlock()

	return nil
}

// Snapshot returns a deep copy of the current draft.
func (s *AuthoringService) Snapshot() *models.EventDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// State returns the current publish state.
func (s *AuthoringService) State() models.PublishState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// edit applies one field mutation: update the draft, drop the stale
// error entry for the edited field, arm the autosave, and fold a
// terminal state back to idle. Full revalidation only happens on
// publish or on explicit request.
func (s *AuthoringService) edit(field string, apply func(*models.EventDraft)) {
	s.mu.Lock()

	apply(s.draft)
	s.draft.UpdatedAt = time.Now()
	if field != "" {
		delete(s.draft.ValidationErrors, field)
	}

	switch s.state.Phase {
	case models.PublishSuccess, models.PublishError, models.PublishOptimizationsApplied, models.PublishAutoGenerated:
		s.state = models.PublishState{Phase: models.PublishIdle}
	}

	snapshot := s.draft.Clone()
	s.mu.Unlock()

	s.autosave.ScheduleSave(snapshot)
}

func (s *AuthoringService) SetTitle(title string) {
	s.edit(FieldTitle, func(d *models.EventDraft) { d.Title = title })
}

func (s *AuthoringService) SetDescription(description string) {
	s.edit(FieldDescription, func(d *models.EventDraft) { d.Description = description })
}

func (s *AuthoringService) SetCategory(category, subcategory string) {
	s.edit(FieldCategory, func(d *models.EventDraft) {
		d.Category = category
		d.Subcategory = subcategory
	})
}

func (s *AuthoringService) SetEventType(t models.EventType) {
	s.edit("", func(d *models.EventDraft) { d.Type = t })
}

func (s *AuthoringService) SetDate(startAt time.Time) {
	s.edit(FieldDate, func(d *models.EventDraft) { d.StartAt = startAt })
}

func (s *AuthoringService) SetPrice(price models.Price) {
	s.edit(FieldPrice, func(d *models.EventDraft) { d.Price = price })
}

func (s *AuthoringService) SetCapacity(maxAttendees int) {
	s.edit(FieldCapacity, func(d *models.EventDraft) { d.Capacity.MaxAttendees = maxAttendees })
}

func (s *AuthoringService) SetLocation(loc models.Location) {
	s.edit(FieldLocation, func(d *models.EventDraft) { d.Location = loc })
}

func (s *AuthoringService) SetVisibility(public bool) {
	s.edit("", func(d *models.EventDraft) { d.Public = public })
}

func (s *AuthoringService) SetPreviewMode(preview bool) {
	s.edit("", func(d *models.EventDraft) { d.PreviewMode = preview })
}

func (s *AuthoringService) SetTicketTypes(tickets []models.TicketType) {
	s.edit("", func(d *models.EventDraft) { d.TicketTypes = tickets })
}

func (s *AuthoringService) SetProducts(products []models.Product) {
	s.edit("", func(d *models.EventDraft) { d.Products = products })
}

// AppendImages merges an image batch result into the draft. Existing
// images and warnings are kept; results only ever accumulate.
func (s *AuthoringService) AppendImages(urls []string, warnings []models.ContentWarning, altTexts map[string]string) {
	s.edit(FieldImages, func(d *models.EventDraft) {
		d.Images = append(d.Images, urls...)
		d.Warnings = append(d.Warnings, warnings...)
		for url, alt := range altTexts {
			d.AltTexts[url] = alt
		}
	})
}

// AppendReel merges one processed video into the draft's reel list.
func (s *AuthoringService) AppendReel(reel models.Reel, warnings []models.ContentWarning) {
	s.edit(FieldReels, func(d *models.EventDraft) {
		d.Reels = append(d.Reels, reel)
		d.Warnings = append(d.Warnings, warnings...)
	})
}

// SetGeneratedContent overwrites description, SEO tags and hashtags with
// the generated content, replacing whatever was there before.
func (s *AuthoringService) SetGeneratedContent(content *models.GeneratedContent) {
	s.edit(FieldDescription, func(d *models.EventDraft) {
		d.Description = content.Description
		d.SEOTags = append([]string(nil), content.SEOTags...)
		d.Hashtags = append([]string(nil), content.Hashtags...)
	})
}

// ApplyOptimizations overwrites each draft field for which a suggestion
// is present; nil suggestions leave the field untouched. Fields are
// applied independently, never as an all-or-nothing batch.
func (s *AuthoringService) ApplyOptimizations(sugg *models.OptimizationSuggestions) {
	s.mu.Lock()

	if sugg.Title != nil {
		s.draft.Title = *sugg.Title
		delete(s.draft.ValidationErrors, FieldTitle)
	}
	if sugg.Description != nil {
		s.draft.Description = *sugg.Description
		delete(s.draft.ValidationErrors, FieldDescription)
	}
	if sugg.StartAt != nil {
		s.draft.StartAt = *sugg.StartAt
		delete(s.draft.ValidationErrors, FieldDate)
	}
	if sugg.Capacity != nil {
		s.draft.Capacity.MaxAttendees = *sugg.Capacity
		delete(s.draft.ValidationErrors, FieldCapacity)
	}

	s.draft.UpdatedAt = time.Now()
	s.state = models.PublishState{Phase: models.PublishOptimizationsApplied}
	snapshot := s.draft.Clone()
	s.mu.Unlock()

	s.autosave.ScheduleSave(snapshot)
	s.notifyState()
}

// ReplaceDraft swaps in a fully generated draft. This is the one
// full-overwrite merge in the subsystem; everything else is field-scoped.
func (s *AuthoringService) ReplaceDraft(draft *models.EventDraft) {
	s.mu.Lock()

	draft.CreatorID = s.creatorID
	draft.IsDraft = true
	if draft.AltTexts == nil {
		draft.AltTexts = make(map[string]string)
	}
	if draft.ValidationErrors == nil {
		draft.ValidationErrors = make(map[string]string)
	}
	draft.UpdatedAt = time.Now()

	s.draft = draft
	s.state = models.PublishState{Phase: models.PublishAutoGenerated}
	snapshot := s.draft.Clone()
	s.mu.Unlock()

	s.autosave.ScheduleSave(snapshot)
	s.notifyState()
}

// ValidateAll recomputes the full error map and stores it on the draft.
func (s *AuthoringService) ValidateAll() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft.ValidationErrors = s.validator.Validate(s.draft)

	errs := make(map[string]string, len(s.draft.ValidationErrors))
	for k, v := range s.draft.ValidationErrors {
		errs[k] = v
	}
	return errs
}

// Publish drives the publish transition: full validation, critical
// warning gate, event creation, then fire-and-forget automation setup.
// Validation failures surface per field and never reach the network.
func (s *AuthoringService) Publish(ctx context.Context) (*models.PublishedEvent, error) {
	s.mu.Lock()

	errs := s.validator.Validate(s.draft)
	s.draft.ValidationErrors = errs
	if len(errs) > 0 || !s.validator.IsPublishable(s.draft) {
		s.mu.Unlock()
		s.monitor.TrackOperation("publish", "validation_failed")
		return nil, status.ErrValidationFailed
	}

	if s.draft.HasCriticalWarnings() {
		s.mu.Unlock()
		s.monitor.TrackOperation("publish", "critical_warning")
		return nil, status.ErrCriticalWarning
	}

	s.state = models.PublishState{Phase: models.PublishLoading}
	req := buildCreateRequest(s.draft.Clone())
	s.mu.Unlock()

	s.notifyState()

	event, err := s.creator.CreateEvent(ctx, req)
	if err != nil {
		s.mu.Lock()
		s.state = models.PublishState{Phase: models.PublishError, Message: err.Error()}
		s.mu.Unlock()

		s.monitor.TrackOperation("publish", "failure")
		s.notifyState()
		return nil, err
	}

	s.mu.Lock()
	s.draft.ID = event.ID
	s.draft.IsDraft = false
	s.state = models.PublishState{Phase: models.PublishSuccess, Event: event}
	eventType := s.draft.Type
	s.mu.Unlock()

	// The working draft is superseded by the published entity; a save
	// firing now would resurrect it.
	s.autosave.Cancel()
	if err := s.store.ClearDraft(context.Background(), s.creatorID); err != nil {
		slog.Error("failed to clear persisted draft after publish", "creator_id", s.creatorID, "error", err)
	}

	// Automation is fire-and-forget: its outcome never delays or reverts
	// the success transition.
	go s.automation.Dispatch(context.Background(), event.ID, eventType)

	s.monitor.TrackOperation("publish", "success")
	s.notifyState()

	return event, nil
}

// Discard drops the working draft and any pending autosave.
func (s *AuthoringService) Discard(ctx context.Context) error {
	s.autosave.Cancel()

	if err := s.store.ClearDraft(ctx, s.creatorID); err != nil {
		return err
	}

	s.mu.Lock()
	s.draft = models.NewEventDraft(s.creatorID)
	s.state = models.PublishState{Phase: models.PublishIdle}
	s.mu.Unlock()

	return nil
}

func buildCreateRequest(draft *models.EventDraft) *models.CreateEventRequest {
	return &models.CreateEventRequest{
		CreatorID:   draft.CreatorID,
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
		Subcategory: draft.Subcategory,
		Type:        draft.Type,
		StartAt:     draft.StartAt,
		Location:    draft.Location,
		Price:       draft.Price,
		Capacity:    draft.Capacity,
		Public:      draft.Public,
		Images:      draft.Images,
		Reels:       draft.Reels,
		TicketTypes: draft.TicketTypes,
		Products:    draft.Products,
		SEOTags:     draft.SEOTags,
		Hashtags:    draft.Hashtags,
	}
}

func (s *AuthoringService) notifyState() {
	if s.pubnub == nil {
		return
	}

	state := s.State()

	payload := map[string]any{
		"type":  "authoring_state",
		"phase": state.Phase.String(),
	}
	if state.Event != nil {
		payload["event_id"] = state.Event.ID
	}
	if state.Message != "" {
		payload["message"] = state.Message
	}

	s.pubnub.Publish().
		Channel("creator-" + s.creatorID).
		Message(payload).
		Execute()
}
