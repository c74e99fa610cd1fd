package makgora

import (
	"context"
	"fmt"

	"github.com/usyj/makgora-client/internal/domain"
)

// Normal votes are the community-created polls. They share the vote shape
// with AI votes but carry no point wagers, so participation is option+choice
// only.

// CreateNormalVote creates a community poll.
func (c *Client) CreateNormalVote(ctx context.Context, req domain.NormalVoteCreateRequest) (domain.Vote, error) {
	var out domain.Vote
	if err := c.post(ctx, "/normal-votes/normal_create", req, &out); err != nil {
		return domain.Vote{}, fmt.Errorf("create normal vote: %w", err)
	}
	return out, nil
}

// ListNormalVotes returns all community polls.
func (c *Client) ListNormalVotes(ctx context.Context) ([]domain.Vote, error) {
	var out []domain.Vote
	if err := c.get(ctx, "/normal-votes/list", nil, &out); err != nil {
		return nil, fmt.Errorf("list normal votes: %w", err)
	}
	return out, nil
}

// GetNormalVote returns one community poll with its options and choices.
func (c *Client) GetNormalVote(ctx context.Context, voteID int64) (domain.Vote, error) {
	var out domain.Vote
	if err := c.get(ctx, fmt.Sprintf("/normal-votes/%d", voteID), nil, &out); err != nil {
		return domain.Vote{}, fmt.Errorf("get normal vote %d: %w", voteID, err)
	}
	return out, nil
}

// UpdateNormalVote replaces an existing poll. Only the author may call it.
func (c *Client) UpdateNormalVote(ctx context.Context, voteID int64, req domain.NormalVoteCreateRequest) (domain.Vote, error) {
	var out domain.Vote
	if err := c.put(ctx, fmt.Sprintf("/normal-votes/%d", voteID), req, &out); err != nil {
		return domain.Vote{}, fmt.Errorf("update normal vote %d: %w", voteID, err)
	}
	return out, nil
}

// DeleteNormalVote removes a poll.
func (c *Client) DeleteNormalVote(ctx context.Context, voteID int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/normal-votes/%d", voteID)); err != nil {
		return fmt.Errorf("delete normal vote %d: %w", voteID, err)
	}
	return nil
}

// ParticipateNormal records the caller's choice on a community poll.
func (c *Client) ParticipateNormal(ctx context.Context, voteID int64, req domain.NormalParticipateRequest) (domain.Participation, error) {
	var out domain.Participation
	if err := c.post(ctx, fmt.Sprintf("/normal-votes/%d/participate", voteID), req, &out); err != nil {
		return domain.Participation{}, fmt.Errorf("participate in normal vote %d: %w", voteID, err)
	}
	return out, nil
}

// CancelNormalParticipation withdraws the caller's choice from a poll.
func (c *Client) CancelNormalParticipation(ctx context.Context, voteID int64) error {
	if err := c.post(ctx, fmt.Sprintf("/normal-votes/%d/cancel", voteID), nil, nil); err != nil {
		return fmt.Errorf("cancel normal vote %d: %w", voteID, err)
	}
	return nil
}

// MyNormalVotes returns the polls the caller has answered.
func (c *Client) MyNormalVotes(ctx context.Context) ([]domain.Vote, error) {
	var out []domain.Vote
	if err := c.get(ctx, "/normal-votes/my", nil, &out); err != nil {
		return nil, fmt.Errorf("list my normal votes: %w", err)
	}
	return out, nil
}

// GetNormalVoteResult returns tallies for a finished poll.
func (c *Client) GetNormalVoteResult(ctx context.Context, voteID int64) (domain.Vote, error) {
	var out domain.Vote
	if err := c.get(ctx, fmt.Sprintf("/normal-votes/%d/result", voteID), nil, &out); err != nil {
		return domain.Vote{}, fmt.Errorf("get normal vote %d result: %w", voteID, err)
	}
	return out, nil
}
