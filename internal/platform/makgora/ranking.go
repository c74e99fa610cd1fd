package makgora

import (
	"context"
	"fmt"

	"github.com/usyj/makgora-client/internal/domain"
)

// TopRankings returns the leaderboard for one tab (points, winRate, streak).
func (c *Client) TopRankings(ctx context.Context, tab domain.RankingTab) ([]domain.RankingEntry, error) {
	var out []domain.RankingEntry
	if err := c.get(ctx, fmt.Sprintf("/rankings/top/%s", tab), nil, &out); err != nil {
		return nil, fmt.Errorf("list %s rankings: %w", tab, err)
	}
	return out, nil
}

// MyRanking returns the caller's own position across ranking tabs.
func (c *Client) MyRanking(ctx context.Context) (domain.RankingEntry, error) {
	var out domain.RankingEntry
	if err := c.get(ctx, "/rankings/me", nil, &out); err != nil {
		return domain.RankingEntry{}, fmt.Errorf("get my ranking: %w", err)
	}
	return out, nil
}
