package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/server/middleware"
)

// RankingService defines what the ranking handler needs from the service
// layer.
type RankingService interface {
	Top(ctx context.Context, sessionID string, tab domain.RankingTab) ([]domain.RankingEntry, error)
	Mine(ctx context.Context, sessionID string) (domain.RankingEntry, error)
}

// RankingHandler serves the leaderboard endpoints.
type RankingHandler struct {
	rankings RankingService
	logger   *slog.Logger
}

// NewRankingHandler creates a RankingHandler.
func NewRankingHandler(rankings RankingService, logger *slog.Logger) *RankingHandler {
	return &RankingHandler{rankings: rankings, logger: logger}
}

// Top returns the leaderboard for one tab.
// GET /api/rankings/top/{tab}
func (h *RankingHandler) Top(w http.ResponseWriter, r *http.Request) {
	tab := domain.RankingTab(r.PathValue("tab"))
	entries, err := h.rankings.Top(r.Context(), middleware.SessionID(r), tab)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Mine returns the caller's own placement.
// GET /api/rankings/me
func (h *RankingHandler) Mine(w http.ResponseWriter, r *http.Request) {
	entry, err := h.rankings.Mine(r.Context(), middleware.SessionID(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
