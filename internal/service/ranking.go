package service

import (
	"context"
	"fmt"

	"github.com/usyj/makgora-client/internal/domain"
)

// RankingService serves the leaderboard tabs.
type RankingService struct {
	clients *Clients
}

// NewRankingService wires a RankingService.
func NewRankingService(clients *Clients) *RankingService {
	return &RankingService{clients: clients}
}

// Top returns the leaderboard for one tab.
func (s *RankingService) Top(ctx context.Context, sessionID string, tab domain.RankingTab) ([]domain.RankingEntry, error) {
	if !tab.Valid() {
		return nil, fmt.Errorf("ranking: unknown tab %q", tab)
	}
	return s.clients.For(sessionID).TopRankings(ctx, tab)
}

// Mine returns the caller's own leaderboard position.
func (s *RankingService) Mine(ctx context.Context, sessionID string) (domain.RankingEntry, error) {
	return s.clients.For(sessionID).MyRanking(ctx)
}
