package makgora

import (
	"context"
	"fmt"
	"net/url"

	"github.com/usyj/makgora-client/internal/domain"
)

// Admin console endpoints. The backend enforces the role; the client just
// surfaces authorization failures.

// AdminListUsers returns every registered user.
func (c *Client) AdminListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.get(ctx, "/admin/users", nil, &out); err != nil {
		return nil, fmt.Errorf("admin list users: %w", err)
	}
	return out, nil
}

// AdminSearchUsers filters users by nickname substring.
func (c *Client) AdminSearchUsers(ctx context.Context, nickname string) ([]domain.User, error) {
	q := url.Values{"nickname": {nickname}}
	var out []domain.User
	if err := c.get(ctx, "/admin/users/search", q, &out); err != nil {
		return nil, fmt.Errorf("admin search users: %w", err)
	}
	return out, nil
}

// AdminGetUser returns one user by id.
func (c *Client) AdminGetUser(ctx context.Context, userID int64) (domain.User, error) {
	var out domain.User
	if err := c.get(ctx, fmt.Sprintf("/admin/users/%d", userID), nil, &out); err != nil {
		return domain.User{}, fmt.Errorf("admin get user %d: %w", userID, err)
	}
	return out, nil
}

// AdminUpdateUser edits a user's points, level or role.
func (c *Client) AdminUpdateUser(ctx context.Context, userID int64, req domain.AdminUserUpdateRequest) (domain.User, error) {
	var out domain.User
	if err := c.put(ctx, fmt.Sprintf("/admin/users/%d", userID), req, &out); err != nil {
		return domain.User{}, fmt.Errorf("admin update user %d: %w", userID, err)
	}
	return out, nil
}

// AdminCreate promotes or registers an admin account. SUPER_ADMIN only.
func (c *Client) AdminCreate(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	var out domain.User
	if err := c.post(ctx, "/admin/create", req, &out); err != nil {
		return domain.User{}, fmt.Errorf("admin create: %w", err)
	}
	return out, nil
}

// AdminListRSSFeeds returns all ingestion feeds.
func (c *Client) AdminListRSSFeeds(ctx context.Context) ([]domain.RSSFeed, error) {
	var out []domain.RSSFeed
	if err := c.get(ctx, "/admin/rss-feeds", nil, &out); err != nil {
		return nil, fmt.Errorf("admin list rss feeds: %w", err)
	}
	return out, nil
}

// AdminCreateRSSFeed registers a new feed source.
func (c *Client) AdminCreateRSSFeed(ctx context.Context, req domain.RSSFeedRequest) (domain.RSSFeed, error) {
	var out domain.RSSFeed
	if err := c.post(ctx, "/admin/rss-feeds", req, &out); err != nil {
		return domain.RSSFeed{}, fmt.Errorf("admin create rss feed: %w", err)
	}
	return out, nil
}

// AdminUpdateRSSFeed edits a feed source.
func (c *Client) AdminUpdateRSSFeed(ctx context.Context, feedID int64, req domain.RSSFeedRequest) (domain.RSSFeed, error) {
	var out domain.RSSFeed
	if err := c.put(ctx, fmt.Sprintf("/admin/rss-feeds/%d", feedID), req, &out); err != nil {
		return domain.RSSFeed{}, fmt.Errorf("admin update rss feed %d: %w", feedID, err)
	}
	return out, nil
}

// AdminDeleteRSSFeed removes a feed source.
func (c *Client) AdminDeleteRSSFeed(ctx context.Context, feedID int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/admin/rss-feeds/%d", feedID)); err != nil {
		return fmt.Errorf("admin delete rss feed %d: %w", feedID, err)
	}
	return nil
}

// AdminFeedCategories returns the known feed categories.
func (c *Client) AdminFeedCategories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.get(ctx, "/admin/rss-feeds/categories", nil, &out); err != nil {
		return nil, fmt.Errorf("admin list feed categories: %w", err)
	}
	return out, nil
}

// AdminCollectFeed triggers collection of one feed and returns the run
// summary.
func (c *Client) AdminCollectFeed(ctx context.Context, feedID int64) (domain.BatchResult, error) {
	var out domain.BatchResult
	if err := c.post(ctx, fmt.Sprintf("/admin/rss-feeds/%d/collect", feedID), nil, &out); err != nil {
		return domain.BatchResult{}, fmt.Errorf("admin collect feed %d: %w", feedID, err)
	}
	return out, nil
}

// AdminCollectFeedsBySource triggers collection for all feeds of one source.
func (c *Client) AdminCollectFeedsBySource(ctx context.Context, sourceName string) (domain.BatchResult, error) {
	var out domain.BatchResult
	if err := c.post(ctx, fmt.Sprintf("/admin/rss-feeds/collect/%s", url.PathEscape(sourceName)), nil, &out); err != nil {
		return domain.BatchResult{}, fmt.Errorf("admin collect feeds for %s: %w", sourceName, err)
	}
	return out, nil
}

// AdminCollectAllFeeds triggers collection across every active feed.
func (c *Client) AdminCollectAllFeeds(ctx context.Context) (domain.BatchResult, error) {
	var out domain.BatchResult
	if err := c.post(ctx, "/admin/rss-feeds/collect", nil, &out); err != nil {
		return domain.BatchResult{}, fmt.Errorf("admin collect all feeds: %w", err)
	}
	return out, nil
}

// AdminFinishVote closes betting and records the winning choices.
func (c *Client) AdminFinishVote(ctx context.Context, voteID int64, req domain.VoteResolutionRequest) (domain.Vote, error) {
	var out domain.Vote
	if err := c.post(ctx, fmt.Sprintf("/admin/votes/%d/finish", voteID), req, &out); err != nil {
		return domain.Vote{}, fmt.Errorf("admin finish vote %d: %w", voteID, err)
	}
	return out, nil
}

// AdminResolveAndSettleVote resolves winners and pays out rewards in one
// call.
func (c *Client) AdminResolveAndSettleVote(ctx context.Context, voteID int64, req domain.VoteResolutionRequest) (domain.Vote, error) {
	var out domain.Vote
	if err := c.post(ctx, fmt.Sprintf("/admin/votes/%d/resolve-and-settle", voteID), req, &out); err != nil {
		return domain.Vote{}, fmt.Errorf("admin resolve and settle vote %d: %w", voteID, err)
	}
	return out, nil
}

// AdminSettleVote pays out rewards for an already-resolved vote.
func (c *Client) AdminSettleVote(ctx context.Context, voteID int64) (domain.Vote, error) {
	var out domain.Vote
	if err := c.post(ctx, fmt.Sprintf("/admin/votes/%d/settle", voteID), nil, &out); err != nil {
		return domain.Vote{}, fmt.Errorf("admin settle vote %d: %w", voteID, err)
	}
	return out, nil
}

// AdminReopenVote puts a finished vote back to OPEN.
func (c *Client) AdminReopenVote(ctx context.Context, voteID int64) (domain.Vote, error) {
	var out domain.Vote
	if err := c.post(ctx, fmt.Sprintf("/admin/votes/%d/open", voteID), nil, &out); err != nil {
		return domain.Vote{}, fmt.Errorf("admin reopen vote %d: %w", voteID, err)
	}
	return out, nil
}
