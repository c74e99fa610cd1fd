package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/server/middleware"
)

// CommunityService defines what the community handler needs from the service
// layer.
type CommunityService interface {
	Posts(ctx context.Context, sessionID string) ([]domain.CommunityPost, error)
	Post(ctx context.Context, sessionID string, postID int64) (domain.CommunityPost, error)
	Create(ctx context.Context, sessionID string, req domain.CommunityPostRequest) (domain.CommunityPost, error)
	Update(ctx context.Context, sessionID string, postID int64, req domain.CommunityPostRequest) (domain.CommunityPost, error)
	Delete(ctx context.Context, sessionID string, postID int64) error
	React(ctx context.Context, sessionID string, postID int64, like bool) (domain.ReactionCounts, error)
}

// CommunityHandler serves the free-board endpoints.
type CommunityHandler struct {
	community CommunityService
	logger    *slog.Logger
}

// NewCommunityHandler creates a CommunityHandler.
func NewCommunityHandler(community CommunityService, logger *slog.Logger) *CommunityHandler {
	return &CommunityHandler{community: community, logger: logger}
}

// Posts returns the board.
// GET /api/community/posts
func (h *CommunityHandler) Posts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.community.Posts(r.Context(), middleware.SessionID(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Post returns one post.
// GET /api/community/posts/{id}
func (h *CommunityHandler) Post(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	post, err := h.community.Post(r.Context(), middleware.SessionID(r), postID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Create publishes a post.
// POST /api/community/posts
func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CommunityPostRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "title and content are required")
		return
	}

	post, err := h.community.Create(r.Context(), middleware.SessionID(r), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// Update edits the caller's post.
// PUT /api/community/posts/{id}
func (h *CommunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	var req domain.CommunityPostRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.community.Update(r.Context(), middleware.SessionID(r), postID, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Delete removes the caller's post.
// DELETE /api/community/posts/{id}
func (h *CommunityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	if err := h.community.Delete(r.Context(), middleware.SessionID(r), postID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// React records a like or dislike on a post.
// POST /api/community/posts/{id}/react?like=true|false
func (h *CommunityHandler) React(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	like := r.URL.Query().Get("like") != "false"

	counts, err := h.community.React(r.Context(), middleware.SessionID(r), postID, like)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
