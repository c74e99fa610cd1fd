package makgora

import (
	"context"
	"fmt"

	"github.com/usyj/makgora-client/internal/domain"
)

// ListVotes returns all AI votes.
func (c *Client) ListVotes(ctx context.Context) ([]domain.Vote, error) {
	var out []domain.Vote
	if err := c.get(ctx, "/votes/list", nil, &out); err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	return out, nil
}

// GetVoteDetail returns the full detail payload for an AI vote, including
// options, choices, odds and the caller's participation when signed in.
func (c *Client) GetVoteDetail(ctx context.Context, voteID int64) (domain.Vote, error) {
	var out domain.Vote
	if err := c.get(ctx, fmt.Sprintf("/votes/%d/detail", voteID), nil, &out); err != nil {
		return domain.Vote{}, fmt.Errorf("get vote %d: %w", voteID, err)
	}
	return out, nil
}

// GetVoteOdds returns the backend's odds simulation for a vote. The client
// never computes odds itself; it only displays these multipliers.
func (c *Client) GetVoteOdds(ctx context.Context, voteID int64) (domain.OddsQuote, error) {
	var out domain.OddsQuote
	if err := c.get(ctx, fmt.Sprintf("/votes/%d/odds", voteID), nil, &out); err != nil {
		return domain.OddsQuote{}, fmt.Errorf("get odds for vote %d: %w", voteID, err)
	}
	return out, nil
}

// Participate places a point wager on an AI vote choice.
func (c *Client) Participate(ctx context.Context, voteID int64, req domain.ParticipateRequest) (domain.Participation, error) {
	var out domain.Participation
	if err := c.post(ctx, fmt.Sprintf("/votes/%d/participate", voteID), req, &out); err != nil {
		return domain.Participation{}, fmt.Errorf("participate in vote %d: %w", voteID, err)
	}
	return out, nil
}

// CancelParticipation cancels the caller's single wager on the given vote.
func (c *Client) CancelParticipation(ctx context.Context, voteID int64) error {
	if err := c.patch(ctx, fmt.Sprintf("/votes/%d/cancel", voteID), nil, nil); err != nil {
		return fmt.Errorf("cancel participation in vote %d: %w", voteID, err)
	}
	return nil
}

// MyVotes returns every vote the caller has participated in.
func (c *Client) MyVotes(ctx context.Context) ([]domain.Vote, error) {
	var out []domain.Vote
	if err := c.get(ctx, "/votes/my", nil, &out); err != nil {
		return nil, fmt.Errorf("list my votes: %w", err)
	}
	return out, nil
}

// MyVoteStatistics returns the caller's aggregate betting record.
func (c *Client) MyVoteStatistics(ctx context.Context) (domain.VoteStatistics, error) {
	var out domain.VoteStatistics
	if err := c.get(ctx, "/votes/my/statistics", nil, &out); err != nil {
		return domain.VoteStatistics{}, fmt.Errorf("my vote statistics: %w", err)
	}
	return out, nil
}
