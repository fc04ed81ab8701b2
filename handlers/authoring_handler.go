package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"event-studio/internal/status"
	"event-studio/models"
	"event-studio/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
)

type AuthoringHandler struct {
	app      *pocketbase.PocketBase
	sessions *services.SessionManager
	events   *services.EventStore
}

func NewAuthoringHandler(app *pocketbase.PocketBase, sessions *services.SessionManager, events *services.EventStore) *AuthoringHandler {
	return &AuthoringHandler{
		app:      app,
		sessions: sessions,
		events:   events,
	}
}

// GetDraft returns the current draft snapshot plus the three state
// machines for the creator's session.
func (h *AuthoringHandler) GetDraft(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	session, err := h.sessions.Session(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apis.NewBadRequestError("Failed to open authoring session", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"draft":         session.Authoring.Snapshot(),
		"publish_state": session.Authoring.State(),
		"media_state":   session.Media.State(),
		"content_state": session.Content.State(),
	})
}

// updateDraftRequest carries partial edits; only present fields are applied.
type updateDraftRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Category    *string              `json:"category"`
	Subcategory *string              `json:"subcategory"`
	EventType   *string              `json:"event_type"`
	StartAt     *time.Time           `json:"start_at"`
	PriceAmount *float64             `json:"price_amount"`
	Currency    *string              `json:"currency"`
	Capacity    *int                 `json:"capacity"`
	Location    *models.Location     `json:"location"`
	Public      *bool                `json:"public"`
	PreviewMode *bool                `json:"preview_mode"`
	TicketTypes *[]models.TicketType `json:"ticket_types"`
	Products    *[]models.Product    `json:"products"`
}

// UpdateDraft applies the present fields of the request as individual
// edits. Each edit arms the autosave debounce.
func (h *AuthoringHandler) UpdateDraft(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req updateDraftRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	session, err := h.sessions.Session(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apis.NewBadRequestError("Failed to open authoring session", err)
	}

	authoring := session.Authoring
	current := authoring.Snapshot()

	if req.Title != nil {
		authoring.SetTitle(*req.Title)
	}
	if req.Description != nil {
		authoring.SetDescription(*req.Description)
	}
	if req.Category != nil || req.Subcategory != nil {
		category := current.Category
		subcategory := current.Subcategory
		if req.Category != nil {
			category = *req.Category
		}
		if req.Subcategory != nil {
			subcategory = *req.Subcategory
		}
		authoring.SetCategory(category, subcategory)
	}
	if req.EventType != nil {
		authoring.SetEventType(models.EventType(*req.EventType))
	}
	if req.StartAt != nil {
		authoring.SetDate(*req.StartAt)
	}
	if req.PriceAmount != nil || req.Currency != nil {
		price := current.Price
		if req.PriceAmount != nil {
			price.Amount = decimal.NewFromFloat(*req.PriceAmount)
		}
		if req.Currency != nil {
			price.Currency = *req.Currency
		}
		authoring.SetPrice(price)
	}
	if req.Capacity != nil {
		authoring.SetCapacity(*req.Capacity)
	}
	if req.Location != nil {
		authoring.SetLocation(*req.Location)
	}
	if req.Public != nil {
		authoring.SetVisibility(*req.Public)
	}
	if req.PreviewMode != nil {
		authoring.SetPreviewMode(*req.PreviewMode)
	}
	if req.TicketTypes != nil {
		authoring.SetTicketTypes(*req.TicketTypes)
	}
	if req.Products != nil {
		authoring.SetProducts(*req.Products)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"draft":         authoring.Snapshot(),
		"publish_state": authoring.State(),
	})
}

// Validate recomputes the full validation error map on demand.
func (h *AuthoringHandler) Validate(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	session, err := h.sessions.Session(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apis.NewBadRequestError("Failed to open authoring session", err)
	}

	errs := session.Authoring.ValidateAll()

	return e.JSON(http.StatusOK, map[string]any{
		"errors": errs,
		"valid":  len(errs) == 0,
	})
}

// Publish runs the publish transition for the creator's draft.
func (h *AuthoringHandler) Publish(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	session, err := h.sessions.Session(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apis.NewBadRequestError("Failed to open authoring session", err)
	}

	event, err := session.Authoring.Publish(e.Request.Context())
	if errors.Is(err, status.ErrValidationFailed) {
		return e.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error":  "Draft is not publishable",
			"errors": session.Authoring.Snapshot().ValidationErrors,
		})
	}
	if errors.Is(err, status.ErrCriticalWarning) {
		return e.JSON(http.StatusConflict, map[string]any{
			"error": "Draft has critical content warnings",
		})
	}
	if err != nil {
		slog.Error("publish failed", "creator_id", e.Auth.Id, "error", err)
		return e.JSON(http.StatusBadGateway, map[string]any{
			"error": "Failed to publish event",
		})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"event":         event,
		"publish_state": session.Authoring.State(),
	})
}

// ListPublished returns the ids of events the creator has published.
func (h *AuthoringHandler) ListPublished(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	ids, err := h.events.ListPublishedIDs(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apis.NewBadRequestError("Failed to list published events", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"event_ids": ids})
}

// Discard drops the working draft, the persisted copy and any pending save.
func (h *AuthoringHandler) Discard(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	session, err := h.sessions.Session(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apis.NewBadRequestError("Failed to open authoring session", err)
	}

	if err := session.Authoring.Discard(e.Request.Context()); err != nil {
		return apis.NewBadRequestError("Failed to discard draft", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"message": "Draft discarded"})
}
