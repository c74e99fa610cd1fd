package makgora

import (
	"context"
	"fmt"

	"github.com/usyj/makgora-client/internal/domain"
)

// Profile returns the caller's profile page payload.
func (c *Client) Profile(ctx context.Context) (domain.User, error) {
	var out domain.User
	if err := c.get(ctx, "/profile/me", nil, &out); err != nil {
		return domain.User{}, fmt.Errorf("get profile: %w", err)
	}
	return out, nil
}

// UpdateProfile changes the caller's nickname and images.
func (c *Client) UpdateProfile(ctx context.Context, req domain.ProfileUpdateRequest) (domain.User, error) {
	var out domain.User
	if err := c.put(ctx, "/profile/update", req, &out); err != nil {
		return domain.User{}, fmt.Errorf("update profile: %w", err)
	}
	return out, nil
}

// ApplyItem equips an owned cosmetic item on the caller's profile.
func (c *Client) ApplyItem(ctx context.Context, itemID int64) (domain.User, error) {
	body := map[string]int64{"itemId": itemID}
	var out domain.User
	if err := c.post(ctx, "/profile/apply-item", body, &out); err != nil {
		return domain.User{}, fmt.Errorf("apply item %d: %w", itemID, err)
	}
	return out, nil
}

// ClearFrame removes the equipped profile frame.
func (c *Client) ClearFrame(ctx context.Context) error {
	if err := c.post(ctx, "/profile/clear-frame", nil, nil); err != nil {
		return fmt.Errorf("clear profile frame: %w", err)
	}
	return nil
}

// ClearBadge removes the equipped profile badge.
func (c *Client) ClearBadge(ctx context.Context) error {
	if err := c.post(ctx, "/profile/clear-badge", nil, nil); err != nil {
		return fmt.Errorf("clear profile badge: %w", err)
	}
	return nil
}

// VoteActivities returns the caller's recent vote history for the profile
// activity feed.
func (c *Client) VoteActivities(ctx context.Context) ([]domain.VoteActivity, error) {
	var out []domain.VoteActivity
	if err := c.get(ctx, "/profile/activities/votes", nil, &out); err != nil {
		return nil, fmt.Errorf("list vote activities: %w", err)
	}
	return out, nil
}

// CommunityActivities returns the caller's recent community posts and
// comments for the profile activity feed.
func (c *Client) CommunityActivities(ctx context.Context) ([]domain.CommunityActivity, error) {
	var out []domain.CommunityActivity
	if err := c.get(ctx, "/profile/activities/community", nil, &out); err != nil {
		return nil, fmt.Errorf("list community activities: %w", err)
	}
	return out, nil
}
