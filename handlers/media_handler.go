package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"event-studio/internal/status"
	"event-studio/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type MediaHandler struct {
	app      *pocketbase.PocketBase
	sessions *services.SessionManager
}

func NewMediaHandler(app *pocketbase.PocketBase, sessions *services.SessionManager) *MediaHandler {
	return &MediaHandler{
		app:      app,
		sessions: sessions,
	}
}

// ProcessImages runs a batch of uploaded images through optimization and
// merges the results into the draft.
func (h *MediaHandler) ProcessImages(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req struct {
		Sources []string `json:"sources"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	session, err := h.sessions.Session(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apis.NewBadRequestError("Failed to open authoring session", err)
	}

	result, err := session.Media.ProcessImages(e.Request.Context(), req.Sources)
	if errors.Is(err, status.ErrEmptyImageBatch) {
		return apis.NewBadRequestError("No images in batch", err)
	}
	if err != nil {
		slog.Error("image processing failed", "creator_id", e.Auth.Id, "error", err)
		return e.JSON(http.StatusBadGateway, map[string]any{
			"error":       "Failed to process images",
			"media_state": session.Media.State(),
		})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"result":      result,
		"draft":       session.Authoring.Snapshot(),
		"media_state": session.Media.State(),
	})
}

// ProcessVideo optimizes one uploaded video and appends it as a reel.
func (h *MediaHandler) ProcessVideo(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req struct {
		Source string `json:"source"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.Source == "" {
		return apis.NewBadRequestError("Invalid request", errors.New("source must not be empty"))
	}

	session, err := h.sessions.Session(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apis.NewBadRequestError("Failed to open authoring session", err)
	}

	result, err := session.Media.ProcessVideo(e.Request.Context(), req.Source)
	if err != nil {
		slog.Error("video processing failed", "creator_id", e.Auth.Id, "error", err)
		return e.JSON(http.StatusBadGateway, map[string]any{
			"error":       "Failed to process video",
			"media_state": session.Media.State(),
		})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"result":      result,
		"draft":       session.Authoring.Snapshot(),
		"media_state": session.Media.State(),
	})
}
