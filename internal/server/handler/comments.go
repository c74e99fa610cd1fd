package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/usyj/makgora-client/internal/commentview"
	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/server/middleware"
)

// CommentService defines what the comment handler needs from the service layer.
type CommentService interface {
	Thread(ctx context.Context, sessionID string, target domain.CommentTarget, targetID int64) (commentview.Thread, error)
	Add(ctx context.Context, sessionID string, target domain.CommentTarget, targetID int64, content string, parentID *int64) (commentview.Thread, error)
	React(ctx context.Context, sessionID string, commentID int64, like bool) (domain.ReactionCounts, error)
	Delete(ctx context.Context, sessionID string, target domain.CommentTarget, targetID, commentID int64) (commentview.Thread, error)
}

// CommentHandler serves the discussion threads attached to votes.
type CommentHandler struct {
	comments CommentService
	logger   *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(comments CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: logger}
}

// commentRequest is the create payload. Exactly one of voteId and
// normalVoteId selects the thread.
type commentRequest struct {
	VoteID       int64  `json:"voteId"`
	NormalVoteID int64  `json:"normalVoteId"`
	Content      string `json:"content"`
	ParentID     *int64 `json:"parentId,omitempty"`
}

func commentTarget(voteID, normalVoteID int64) (domain.CommentTarget, int64, bool) {
	switch {
	case voteID > 0 && normalVoteID == 0:
		return domain.CommentTargetVote, voteID, true
	case normalVoteID > 0 && voteID == 0:
		return domain.CommentTargetNormalVote, normalVoteID, true
	default:
		return "", 0, false
	}
}

// Thread returns the rendered comment tree for a vote.
// GET /api/comments?voteId= | ?normalVoteId=
func (h *CommentHandler) Thread(w http.ResponseWriter, r *http.Request) {
	voteID := int64(queryInt(r, "voteId", 0))
	normalVoteID := int64(queryInt(r, "normalVoteId", 0))
	target, targetID, ok := commentTarget(voteID, normalVoteID)
	if !ok {
		writeError(w, http.StatusBadRequest, "exactly one of voteId and normalVoteId is required")
		return
	}

	thread, err := h.comments.Thread(r.Context(), middleware.SessionID(r), target, targetID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, thread)
}

// Add posts a comment or reply and returns the refreshed thread.
// POST /api/comments
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	target, targetID, ok := commentTarget(req.VoteID, req.NormalVoteID)
	if !ok {
		writeError(w, http.StatusBadRequest, "exactly one of voteId and normalVoteId is required")
		return
	}

	thread, err := h.comments.Add(r.Context(), middleware.SessionID(r), target, targetID, req.Content, req.ParentID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, thread)
}

// React toggles a like or dislike and returns the backend counts.
// POST /api/comments/{id}/react?like=true|false
func (h *CommentHandler) React(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	like := r.URL.Query().Get("like") != "false"

	counts, err := h.comments.React(r.Context(), middleware.SessionID(r), commentID, like)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// Delete removes the caller's comment and returns the refreshed thread.
// DELETE /api/comments/{id}?voteId= | ?normalVoteId=
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	voteID := int64(queryInt(r, "voteId", 0))
	normalVoteID := int64(queryInt(r, "normalVoteId", 0))
	target, targetID, ok := commentTarget(voteID, normalVoteID)
	if !ok {
		writeError(w, http.StatusBadRequest, "exactly one of voteId and normalVoteId is required")
		return
	}

	thread, err := h.comments.Delete(r.Context(), middleware.SessionID(r), target, targetID, commentID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, thread)
}
