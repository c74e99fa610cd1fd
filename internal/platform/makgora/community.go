package makgora

import (
	"context"
	"fmt"

	"github.com/usyj/makgora-client/internal/domain"
)

// ListCommunityPosts returns all community board posts.
func (c *Client) ListCommunityPosts(ctx context.Context) ([]domain.CommunityPost, error) {
	var out []domain.CommunityPost
	if err := c.get(ctx, "/community/posts", nil, &out); err != nil {
		return nil, fmt.Errorf("list community posts: %w", err)
	}
	return out, nil
}

// GetCommunityPost returns one post with its body and attachments.
func (c *Client) GetCommunityPost(ctx context.Context, postID int64) (domain.CommunityPost, error) {
	var out domain.CommunityPost
	if err := c.get(ctx, fmt.Sprintf("/community/posts/%d", postID), nil, &out); err != nil {
		return domain.CommunityPost{}, fmt.Errorf("get community post %d: %w", postID, err)
	}
	return out, nil
}

// CreateCommunityPost publishes a new board post.
func (c *Client) CreateCommunityPost(ctx context.Context, req domain.CommunityPostRequest) (domain.CommunityPost, error) {
	var out domain.CommunityPost
	if err := c.post(ctx, "/community/posts", req, &out); err != nil {
		return domain.CommunityPost{}, fmt.Errorf("create community post: %w", err)
	}
	return out, nil
}

// UpdateCommunityPost edits the caller's own post.
func (c *Client) UpdateCommunityPost(ctx context.Context, postID int64, req domain.CommunityPostRequest) (domain.CommunityPost, error) {
	var out domain.CommunityPost
	if err := c.put(ctx, fmt.Sprintf("/community/posts/%d", postID), req, &out); err != nil {
		return domain.CommunityPost{}, fmt.Errorf("update community post %d: %w", postID, err)
	}
	return out, nil
}

// DeleteCommunityPost removes the caller's own post.
func (c *Client) DeleteCommunityPost(ctx context.Context, postID int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/community/posts/%d", postID)); err != nil {
		return fmt.Errorf("delete community post %d: %w", postID, err)
	}
	return nil
}

// LikeCommunityPost toggles the caller's like on a post.
func (c *Client) LikeCommunityPost(ctx context.Context, postID int64) (domain.ReactionCounts, error) {
	var out domain.ReactionCounts
	if err := c.post(ctx, fmt.Sprintf("/community/posts/%d/like", postID), nil, &out); err != nil {
		return domain.ReactionCounts{}, fmt.Errorf("like community post %d: %w", postID, err)
	}
	return out, nil
}

// DislikeCommunityPost toggles the caller's dislike on a post.
func (c *Client) DislikeCommunityPost(ctx context.Context, postID int64) (domain.ReactionCounts, error) {
	var out domain.ReactionCounts
	if err := c.post(ctx, fmt.Sprintf("/community/posts/%d/dislike", postID), nil, &out); err != nil {
		return domain.ReactionCounts{}, fmt.Errorf("dislike community post %d: %w", postID, err)
	}
	return out, nil
}
