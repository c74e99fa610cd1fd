package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/server/middleware"
	"github.com/usyj/makgora-client/internal/service"
)

// ProfileService defines what the profile handler needs from the service
// layer.
type ProfileService interface {
	Page(ctx context.Context, sessionID string) (service.ProfilePage, error)
	Update(ctx context.Context, sessionID string, req domain.ProfileUpdateRequest) (domain.User, error)
	ApplyItem(ctx context.Context, sessionID string, itemID int64) (domain.User, error)
	ClearFrame(ctx context.Context, sessionID string) (domain.User, error)
	ClearBadge(ctx context.Context, sessionID string) (domain.User, error)
}

// ProfileHandler serves the my-page endpoints.
type ProfileHandler struct {
	profile ProfileService
	logger  *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profile ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profile: profile, logger: logger}
}

// Page returns the aggregated my-page: profile, inventory and activity.
// GET /api/profile
func (h *ProfileHandler) Page(w http.ResponseWriter, r *http.Request) {
	page, err := h.profile.Page(r.Context(), middleware.SessionID(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Update edits mutable profile fields.
// PUT /api/profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.ProfileUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := h.profile.Update(r.Context(), middleware.SessionID(r), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ApplyItem equips an owned cosmetic item.
// POST /api/profile/items/{id}/apply
func (h *ProfileHandler) ApplyItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	user, err := h.profile.ApplyItem(r.Context(), middleware.SessionID(r), itemID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ClearFrame unequips the profile frame.
// DELETE /api/profile/frame
func (h *ProfileHandler) ClearFrame(w http.ResponseWriter, r *http.Request) {
	user, err := h.profile.ClearFrame(r.Context(), middleware.SessionID(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ClearBadge unequips the profile badge.
// DELETE /api/profile/badge
func (h *ProfileHandler) ClearBadge(w http.ResponseWriter, r *http.Request) {
	user, err := h.profile.ClearBadge(r.Context(), middleware.SessionID(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
