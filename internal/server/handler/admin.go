package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/server/middleware"
)

// AdminService defines what the admin handler needs from the service layer.
// Every method enforces the admin role before touching the backend.
type AdminService interface {
	Users(ctx context.Context, sessionID, nickname string) ([]domain.User, error)
	User(ctx context.Context, sessionID string, userID int64) (domain.User, error)
	UpdateUser(ctx context.Context, sessionID string, userID int64, req domain.AdminUserUpdateRequest) (domain.User, error)
	CreateAdmin(ctx context.Context, sessionID string, req domain.RegisterRequest) (domain.User, error)
	Feeds(ctx context.Context, sessionID string) ([]domain.RSSFeed, error)
	CreateFeed(ctx context.Context, sessionID string, req domain.RSSFeedRequest) (domain.RSSFeed, error)
	UpdateFeed(ctx context.Context, sessionID string, feedID int64, req domain.RSSFeedRequest) (domain.RSSFeed, error)
	DeleteFeed(ctx context.Context, sessionID string, feedID int64) error
	FeedCategories(ctx context.Context, sessionID string) ([]string, error)
	Collect(ctx context.Context, sessionID string, feedID int64, sourceName string) (domain.BatchResult, error)
	Issues(ctx context.Context, sessionID string) ([]domain.Issue, error)
	SetIssueStatus(ctx context.Context, sessionID string, req domain.IssueStatusRequest) (domain.Issue, error)
	FinishVote(ctx context.Context, sessionID string, voteID int64, req domain.VoteResolutionRequest) (domain.Vote, error)
	ResolveAndSettleVote(ctx context.Context, sessionID string, voteID int64, req domain.VoteResolutionRequest) (domain.Vote, error)
	SettleVote(ctx context.Context, sessionID string, voteID int64) (domain.Vote, error)
	ReopenVote(ctx context.Context, sessionID string, voteID int64) (domain.Vote, error)
}

// AdminHandler serves the operator console endpoints.
type AdminHandler struct {
	admin  AdminService
	logger *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(admin AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

// Users lists users, or searches by nickname when ?nickname= is set.
// GET /api/admin/users
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.Users(r.Context(), middleware.SessionID(r), r.URL.Query().Get("nickname"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// User returns one user.
// GET /api/admin/users/{id}
func (h *AdminHandler) User(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	user, err := h.admin.User(r.Context(), middleware.SessionID(r), userID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateUser edits a user's points, level or role.
// PUT /api/admin/users/{id}
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var req domain.AdminUserUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := h.admin.UpdateUser(r.Context(), middleware.SessionID(r), userID, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// CreateAdmin provisions another admin account.
// POST /api/admin/users
func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.LoginID == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "loginId and password are required")
		return
	}
	user, err := h.admin.CreateAdmin(r.Context(), middleware.SessionID(r), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Feeds lists the registered RSS sources.
// GET /api/admin/feeds
func (h *AdminHandler) Feeds(w http.ResponseWriter, r *http.Request) {
	feeds, err := h.admin.Feeds(r.Context(), middleware.SessionID(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, feeds)
}

// CreateFeed registers an RSS source.
// POST /api/admin/feeds
func (h *AdminHandler) CreateFeed(w http.ResponseWriter, r *http.Request) {
	var req domain.RSSFeedRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	feed, err := h.admin.CreateFeed(r.Context(), middleware.SessionID(r), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, feed)
}

// UpdateFeed edits an RSS source.
// PUT /api/admin/feeds/{id}
func (h *AdminHandler) UpdateFeed(w http.ResponseWriter, r *http.Request) {
	feedID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid feed id")
		return
	}
	var req domain.RSSFeedRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	feed, err := h.admin.UpdateFeed(r.Context(), middleware.SessionID(r), feedID, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

// DeleteFeed removes an RSS source.
// DELETE /api/admin/feeds/{id}
func (h *AdminHandler) DeleteFeed(w http.ResponseWriter, r *http.Request) {
	feedID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid feed id")
		return
	}
	if err := h.admin.DeleteFeed(r.Context(), middleware.SessionID(r), feedID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// FeedCategories returns the known feed categories.
// GET /api/admin/feeds/categories
func (h *AdminHandler) FeedCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.admin.FeedCategories(r.Context(), middleware.SessionID(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// Collect triggers article collection: one feed (?feedId=), one source
// (?source=), or everything when neither is set.
// POST /api/admin/feeds/collect
func (h *AdminHandler) Collect(w http.ResponseWriter, r *http.Request) {
	feedID := int64(queryInt(r, "feedId", 0))
	source := r.URL.Query().Get("source")

	result, err := h.admin.Collect(r.Context(), middleware.SessionID(r), feedID, source)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Issues lists issues awaiting review.
// GET /api/admin/issues
func (h *AdminHandler) Issues(w http.ResponseWriter, r *http.Request) {
	issues, err := h.admin.Issues(r.Context(), middleware.SessionID(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, issues)
}

// SetIssueStatus approves or rejects an issue.
// POST /api/admin/issues/status
func (h *AdminHandler) SetIssueStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.IssueStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.IssueID <= 0 {
		writeError(w, http.StatusBadRequest, "issueId is required")
		return
	}
	issue, err := h.admin.SetIssueStatus(r.Context(), middleware.SessionID(r), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, issue)
}

// FinishVote closes betting on a vote.
// POST /api/admin/votes/{id}/finish
func (h *AdminHandler) FinishVote(w http.ResponseWriter, r *http.Request) {
	h.voteAction(w, r, h.admin.FinishVote)
}

// ResolveAndSettleVote marks the correct choice and pays rewards in one
// step.
// POST /api/admin/votes/{id}/resolve-and-settle
func (h *AdminHandler) ResolveAndSettleVote(w http.ResponseWriter, r *http.Request) {
	h.voteAction(w, r, h.admin.ResolveAndSettleVote)
}

func (h *AdminHandler) voteAction(w http.ResponseWriter, r *http.Request, fn func(context.Context, string, int64, domain.VoteResolutionRequest) (domain.Vote, error)) {
	voteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vote id")
		return
	}
	var req domain.VoteResolutionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CorrectChoiceID <= 0 {
		writeError(w, http.StatusBadRequest, "correctChoiceId is required")
		return
	}
	vote, err := fn(r.Context(), middleware.SessionID(r), voteID, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, vote)
}

// SettleVote pays rewards for an already-resolved vote.
// POST /api/admin/votes/{id}/settle
func (h *AdminHandler) SettleVote(w http.ResponseWriter, r *http.Request) {
	voteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vote id")
		return
	}
	vote, err := h.admin.SettleVote(r.Context(), middleware.SessionID(r), voteID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, vote)
}

// ReopenVote reopens a finished vote for betting.
// POST /api/admin/votes/{id}/open
func (h *AdminHandler) ReopenVote(w http.ResponseWriter, r *http.Request) {
	voteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vote id")
		return
	}
	vote, err := h.admin.ReopenVote(r.Context(), middleware.SessionID(r), voteID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, vote)
}
