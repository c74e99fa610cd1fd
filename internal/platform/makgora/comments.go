package makgora

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/usyj/makgora-client/internal/domain"
)

// VoteComments returns the comment tree for an AI vote.
func (c *Client) VoteComments(ctx context.Context, voteID int64) ([]domain.Comment, error) {
	q := url.Values{"voteId": {strconv.FormatInt(voteID, 10)}}
	var out []domain.Comment
	if err := c.get(ctx, "/comments", q, &out); err != nil {
		return nil, fmt.Errorf("list comments for vote %d: %w", voteID, err)
	}
	return out, nil
}

// NormalVoteComments returns the comment tree for a survey vote.
func (c *Client) NormalVoteComments(ctx context.Context, normalVoteID int64) ([]domain.Comment, error) {
	q := url.Values{"normalVoteId": {strconv.FormatInt(normalVoteID, 10)}}
	var out []domain.Comment
	if err := c.get(ctx, "/comments", q, &out); err != nil {
		return nil, fmt.Errorf("list comments for normal vote %d: %w", normalVoteID, err)
	}
	return out, nil
}

// AddComment posts a new comment or reply. The request names exactly one
// target (voteId or normalVoteId) and an optional parentId for replies.
func (c *Client) AddComment(ctx context.Context, req domain.CommentCreateRequest) (domain.Comment, error) {
	var out domain.Comment
	if err := c.post(ctx, "/comments", req, &out); err != nil {
		return domain.Comment{}, fmt.Errorf("add comment: %w", err)
	}
	return out, nil
}

// ReactToComment records a like (like=true) or dislike on a comment.
// Reacting with the same value again clears the reaction server-side.
func (c *Client) ReactToComment(ctx context.Context, commentID int64, like bool) (domain.ReactionCounts, error) {
	path := fmt.Sprintf("/comments/%d/react?like=%t", commentID, like)
	var out domain.ReactionCounts
	if err := c.post(ctx, path, nil, &out); err != nil {
		return domain.ReactionCounts{}, fmt.Errorf("react to comment %d: %w", commentID, err)
	}
	return out, nil
}

// DeleteComment soft-deletes the caller's comment. Deleted comments keep
// their place in the tree so replies stay attached.
func (c *Client) DeleteComment(ctx context.Context, commentID int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/comments/%d", commentID)); err != nil {
		return fmt.Errorf("delete comment %d: %w", commentID, err)
	}
	return nil
}
