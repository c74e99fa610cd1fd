package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/usyj/makgora-client/internal/commentview"
	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/server/middleware"
	"github.com/usyj/makgora-client/internal/service"
)

// ArticleService defines what the article handler needs from the service
// layer.
type ArticleService interface {
	List(ctx context.Context, sessionID, category string, page, size int) (domain.ArticlePage, error)
	Detail(ctx context.Context, sessionID string, articleID int64) (service.ArticleDetail, error)
	React(ctx context.Context, sessionID string, articleID int64, reaction domain.Reaction) (domain.ReactionCounts, error)
	ReactToComment(ctx context.Context, sessionID string, commentID int64, reaction domain.Reaction) (domain.ReactionCounts, error)
}

// ArticleCommentService covers the article thread mutations.
type ArticleCommentService interface {
	Add(ctx context.Context, sessionID string, target domain.CommentTarget, targetID int64, content string, parentID *int64) (commentview.Thread, error)
	Delete(ctx context.Context, sessionID string, target domain.CommentTarget, targetID, commentID int64) (commentview.Thread, error)
	UpdateArticleComment(ctx context.Context, sessionID string, articleID, commentID int64, content string) (commentview.Thread, error)
}

// ArticleHandler serves the news feed.
type ArticleHandler struct {
	articles ArticleService
	comments ArticleCommentService
	logger   *slog.Logger
}

// NewArticleHandler creates an ArticleHandler.
func NewArticleHandler(articles ArticleService, comments ArticleCommentService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{articles: articles, comments: comments, logger: logger}
}

// List returns a page of articles, optionally filtered by category.
// GET /api/articles?category=&page=&size=
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.articles.List(
		r.Context(),
		middleware.SessionID(r),
		r.URL.Query().Get("category"),
		queryInt(r, "page", 0),
		queryInt(r, "size", 0),
	)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Detail returns one article with its comment thread. Fetching the detail
// also bumps the backend view counter.
// GET /api/articles/{id}
func (h *ArticleHandler) Detail(w http.ResponseWriter, r *http.Request) {
	articleID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}
	detail, err := h.articles.Detail(r.Context(), middleware.SessionID(r), articleID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

type reactionRequest struct {
	Reaction domain.Reaction `json:"reaction"`
}

func (req reactionRequest) valid() bool {
	switch req.Reaction {
	case domain.ReactionLike, domain.ReactionDislike, domain.ReactionReset:
		return true
	}
	return false
}

// React records a like/dislike/reset on an article.
// POST /api/articles/{id}/reaction
func (h *ArticleHandler) React(w http.ResponseWriter, r *http.Request) {
	articleID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}
	var req reactionRequest
	if err := decodeBody(r, &req); err != nil || !req.valid() {
		writeError(w, http.StatusBadRequest, "reaction must be LIKE, DISLIKE or RESET")
		return
	}

	counts, err := h.articles.React(r.Context(), middleware.SessionID(r), articleID, req.Reaction)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

type articleCommentRequest struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parentId,omitempty"`
}

// AddComment posts a comment on an article and returns the refreshed thread.
// POST /api/articles/{id}/comments
func (h *ArticleHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	articleID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}
	var req articleCommentRequest
	if err := decodeBody(r, &req); err != nil || req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	thread, err := h.comments.Add(r.Context(), middleware.SessionID(r), domain.CommentTargetArticle, articleID, req.Content, req.ParentID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, thread)
}

// UpdateComment edits the caller's article comment.
// PUT /api/articles/{id}/comments/{commentId}
func (h *ArticleHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	articleID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}
	commentID, ok := pathID(r, "commentId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	var req articleCommentRequest
	if err := decodeBody(r, &req); err != nil || req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	thread, err := h.comments.UpdateArticleComment(r.Context(), middleware.SessionID(r), articleID, commentID, req.Content)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, thread)
}

// DeleteComment removes the caller's article comment.
// DELETE /api/articles/{id}/comments/{commentId}
func (h *ArticleHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	articleID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}
	commentID, ok := pathID(r, "commentId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	thread, err := h.comments.Delete(r.Context(), middleware.SessionID(r), domain.CommentTargetArticle, articleID, commentID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, thread)
}

// ReactToComment records a reaction on an article comment.
// POST /api/articles/comments/{commentId}/reactions
func (h *ArticleHandler) ReactToComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(r, "commentId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	var req reactionRequest
	if err := decodeBody(r, &req); err != nil || !req.valid() {
		writeError(w, http.StatusBadRequest, "reaction must be LIKE, DISLIKE or RESET")
		return
	}

	counts, err := h.articles.ReactToComment(r.Context(), middleware.SessionID(r), commentID, req.Reaction)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
