package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/server/middleware"
	"github.com/usyj/makgora-client/internal/service"
	"github.com/usyj/makgora-client/internal/voteview"
)

// VoteService defines what the vote handler needs from the service layer.
type VoteService interface {
	List(ctx context.Context, sessionID string) ([]domain.Vote, error)
	Detail(ctx context.Context, sessionID string, voteID int64) (service.VoteDetail, error)
	Betslip(ctx context.Context, sessionID string, voteID, choiceID, amount int64) (voteview.Betslip, error)
	Participate(ctx context.Context, sessionID string, voteID int64, req domain.ParticipateRequest) (service.VoteDetail, error)
	Cancel(ctx context.Context, sessionID string, voteID int64) (service.VoteDetail, error)
	MyVotes(ctx context.Context, sessionID string) ([]domain.Vote, error)
	Statistics(ctx context.Context, sessionID string) (domain.VoteStatistics, error)
	ListNormal(ctx context.Context, sessionID string) ([]domain.Vote, error)
	NormalDetail(ctx context.Context, sessionID string, voteID int64) (service.VoteDetail, error)
	CreateNormal(ctx context.Context, sessionID string, req domain.NormalVoteCreateRequest) (domain.Vote, error)
	UpdateNormal(ctx context.Context, sessionID string, voteID int64, req domain.NormalVoteCreateRequest) (domain.Vote, error)
	DeleteNormal(ctx context.Context, sessionID string, voteID int64) error
	ParticipateNormal(ctx context.Context, sessionID string, voteID int64, req domain.NormalParticipateRequest) (service.VoteDetail, error)
	CancelNormal(ctx context.Context, sessionID string, voteID int64) (service.VoteDetail, error)
}

// VoteHandler serves AI vote and survey vote endpoints.
type VoteHandler struct {
	votes  VoteService
	logger *slog.Logger
}

// NewVoteHandler creates a VoteHandler.
func NewVoteHandler(votes VoteService, logger *slog.Logger) *VoteHandler {
	return &VoteHandler{votes: votes, logger: logger}
}

// List returns the open vote board.
// GET /api/votes
func (h *VoteHandler) List(w http.ResponseWriter, r *http.Request) {
	votes, err := h.votes.List(r.Context(), middleware.SessionID(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}

// Detail returns one vote with its rendered view, odds and comment thread.
// GET /api/votes/{id}
func (h *VoteHandler) Detail(w http.ResponseWriter, r *http.Request) {
	voteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vote id")
		return
	}
	detail, err := h.votes.Detail(r.Context(), middleware.SessionID(r), voteID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Betslip previews a wager: stake, odds and projected reward.
// GET /api/votes/{id}/betslip?choiceId=&amount=
func (h *VoteHandler) Betslip(w http.ResponseWriter, r *http.Request) {
	voteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vote id")
		return
	}
	choiceID := int64(queryInt(r, "choiceId", 0))
	amount := int64(queryInt(r, "amount", 0))
	if choiceID <= 0 {
		writeError(w, http.StatusBadRequest, "choiceId is required")
		return
	}

	slip, err := h.votes.Betslip(r.Context(), middleware.SessionID(r), voteID, choiceID, amount)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, slip)
}

// Participate places a wager and returns the refreshed detail.
// POST /api/votes/{id}/participate
func (h *VoteHandler) Participate(w http.ResponseWriter, r *http.Request) {
	voteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vote id")
		return
	}
	var req domain.ParticipateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ChoiceID <= 0 || req.Points <= 0 {
		writeError(w, http.StatusBadRequest, "choiceId and points must be positive")
		return
	}

	detail, err := h.votes.Participate(r.Context(), middleware.SessionID(r), voteID, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Cancel withdraws the caller's wager and returns the refreshed detail.
// PATCH /api/votes/{id}/participation
func (h *VoteHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	voteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vote id")
		return
	}
	detail, err := h.votes.Cancel(r.Context(), middleware.SessionID(r), voteID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// MyVotes returns votes the caller has participated in.
// GET /api/votes/my
func (h *VoteHandler) MyVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := h.votes.MyVotes(r.Context(), middleware.SessionID(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}

// Statistics returns the caller's betting record.
// GET /api/votes/my/statistics
func (h *VoteHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.votes.Statistics(r.Context(), middleware.SessionID(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ListNormal returns the survey vote board.
// GET /api/normal-votes
func (h *VoteHandler) ListNormal(w http.ResponseWriter, r *http.Request) {
	votes, err := h.votes.ListNormal(r.Context(), middleware.SessionID(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}

// NormalDetail returns one survey vote with its view and comment thread.
// GET /api/normal-votes/{id}
func (h *VoteHandler) NormalDetail(w http.ResponseWriter, r *http.Request) {
	voteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vote id")
		return
	}
	detail, err := h.votes.NormalDetail(r.Context(), middleware.SessionID(r), voteID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// CreateNormal opens a new survey vote.
// POST /api/normal-votes
func (h *VoteHandler) CreateNormal(w http.ResponseWriter, r *http.Request) {
	var req domain.NormalVoteCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || len(req.Options) == 0 {
		writeError(w, http.StatusBadRequest, "title and options are required")
		return
	}

	vote, err := h.votes.CreateNormal(r.Context(), middleware.SessionID(r), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, vote)
}

// UpdateNormal replaces a survey vote.
// PUT /api/normal-votes/{id}
func (h *VoteHandler) UpdateNormal(w http.ResponseWriter, r *http.Request) {
	voteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vote id")
		return
	}
	var req domain.NormalVoteCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || len(req.Options) == 0 {
		writeError(w, http.StatusBadRequest, "title and options are required")
		return
	}

	vote, err := h.votes.UpdateNormal(r.Context(), middleware.SessionID(r), voteID, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, vote)
}

// DeleteNormal removes a survey vote.
// DELETE /api/normal-votes/{id}
func (h *VoteHandler) DeleteNormal(w http.ResponseWriter, r *http.Request) {
	voteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vote id")
		return
	}
	if err := h.votes.DeleteNormal(r.Context(), middleware.SessionID(r), voteID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ParticipateNormal records a survey selection.
// POST /api/normal-votes/{id}/participate
func (h *VoteHandler) ParticipateNormal(w http.ResponseWriter, r *http.Request) {
	voteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vote id")
		return
	}
	var req domain.NormalParticipateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ChoiceID <= 0 {
		writeError(w, http.StatusBadRequest, "choiceId is required")
		return
	}

	detail, err := h.votes.ParticipateNormal(r.Context(), middleware.SessionID(r), voteID, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// CancelNormal withdraws the caller's survey selection.
// POST /api/normal-votes/{id}/cancel
func (h *VoteHandler) CancelNormal(w http.ResponseWriter, r *http.Request) {
	voteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vote id")
		return
	}
	detail, err := h.votes.CancelNormal(r.Context(), middleware.SessionID(r), voteID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
