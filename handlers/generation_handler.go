package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"event-studio/internal/status"
	"event-studio/models"
	"event-studio/security"
	"event-studio/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type GenerationHandler struct {
	app      *pocketbase.PocketBase
	sessions *services.SessionManager
	limiter  *security.RateLimiter
}

func NewGenerationHandler(app *pocketbase.PocketBase, sessions *services.SessionManager, limiter *security.RateLimiter) *GenerationHandler {
	return &GenerationHandler{
		app:      app,
		sessions: sessions,
		limiter:  limiter,
	}
}

// GenerateDescription produces AI copy from the current draft snapshot.
func (h *GenerationHandler) GenerateDescription(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	ctx := e.Request.Context()
	if err := h.limiter.AllowGeneration(ctx, e.Auth.Id); errors.Is(err, status.ErrRateLimitExceeded) {
		return e.JSON(http.StatusTooManyRequests, map[string]string{
			"error": "Generation limit reached. Please try again later.",
		})
	}

	session, err := h.sessions.Session(ctx, e.Auth.Id)
	if err != nil {
		return apis.NewBadRequestError("Failed to open authoring session", err)
	}

	content, err := session.Content.GenerateDescription(ctx)
	if err != nil {
		slog.Error("description generation failed", "creator_id", e.Auth.Id, "error", err)
		return e.JSON(http.StatusBadGateway, map[string]any{
			"error":         "Failed to generate description",
			"content_state": session.Content.State(),
		})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"content":       content,
		"draft":         session.Authoring.Snapshot(),
		"content_state": session.Content.State(),
	})
}

// Optimize fetches field suggestions and applies the present ones.
func (h *GenerationHandler) Optimize(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	ctx := e.Request.Context()
	if err := h.limiter.AllowGeneration(ctx, e.Auth.Id); errors.Is(err, status.ErrRateLimitExceeded) {
		return e.JSON(http.StatusTooManyRequests, map[string]string{
			"error": "Generation limit reached. Please try again later.",
		})
	}

	session, err := h.sessions.Session(ctx, e.Auth.Id)
	if err != nil {
		return apis.NewBadRequestError("Failed to open authoring session", err)
	}

	suggestions, err := session.Content.GetOptimizations(ctx)
	if err != nil {
		slog.Error("optimization fetch failed", "creator_id", e.Auth.Id, "error", err)
		return e.JSON(http.StatusBadGateway, map[string]any{
			"error":         "Failed to load optimization suggestions",
			"content_state": session.Content.State(),
		})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"suggestions":   suggestions,
		"draft":         session.Authoring.Snapshot(),
		"content_state": session.Content.State(),
	})
}

// AutoGenerate bootstraps a complete draft from a minimal seed,
// replacing the current draft wholesale.
func (h *GenerationHandler) AutoGenerate(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var seed models.EventSeed
	if err := e.BindBody(&seed); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if seed.Title == "" {
		return apis.NewBadRequestError("Invalid request", errors.New("title must not be empty"))
	}

	ctx := e.Request.Context()
	if err := h.limiter.AllowGeneration(ctx, e.Auth.Id); errors.Is(err, status.ErrRateLimitExceeded) {
		return e.JSON(http.StatusTooManyRequests, map[string]string{
			"error": "Generation limit reached. Please try again later.",
		})
	}

	session, err := h.sessions.Session(ctx, e.Auth.Id)
	if err != nil {
		return apis.NewBadRequestError("Failed to open authoring session", err)
	}

	if _, err := session.Content.AutoGenerate(ctx, &seed); err != nil {
		slog.Error("auto-generate failed", "creator_id", e.Auth.Id, "error", err)
		return e.JSON(http.StatusBadGateway, map[string]any{
			"error":         "Failed to auto-generate event",
			"content_state": session.Content.State(),
		})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"draft":         session.Authoring.Snapshot(),
		"content_state": session.Content.State(),
	})
}
