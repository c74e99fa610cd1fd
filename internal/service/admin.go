package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/session"
)

// AdminService proxies the admin console. The gateway pre-checks the
// caller's role from the session profile and rejects non-admins early; the
// backend re-checks on every call and remains authoritative.
type AdminService struct {
	clients  *Clients
	sessions *session.Manager
	log      *slog.Logger
}

// NewAdminService wires an AdminService.
func NewAdminService(clients *Clients, sessions *session.Manager, logger *slog.Logger) *AdminService {
	return &AdminService{
		clients:  clients,
		sessions: sessions,
		log:      logger.With("component", "admin"),
	}
}

func (s *AdminService) requireAdmin(ctx context.Context, sessionID string) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.ErrSessionExpired
	}
	if !sess.User.Role.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// Users returns all users, or those matching a nickname filter.
func (s *AdminService) Users(ctx context.Context, sessionID, nickname string) ([]domain.User, error) {
	if err := s.requireAdmin(ctx, sessionID); err != nil {
		return nil, err
	}
	client := s.clients.For(sessionID)
	if nickname != "" {
		return client.AdminSearchUsers(ctx, nickname)
	}
	return client.AdminListUsers(ctx)
}

// User returns one user.
func (s *AdminService) User(ctx context.Context, sessionID string, userID int64) (domain.User, error) {
	if err := s.requireAdmin(ctx, sessionID); err != nil {
		return domain.User{}, err
	}
	return s.clients.For(sessionID).AdminGetUser(ctx, userID)
}

// UpdateUser edits a user's points, level or role.
func (s *AdminService) UpdateUser(ctx context.Context, sessionID string, userID int64, req domain.AdminUserUpdateRequest) (domain.User, error) {
	if err := s.requireAdmin(ctx, sessionID); err != nil {
		return domain.User{}, err
	}
	user, err := s.clients.For(sessionID).AdminUpdateUser(ctx, userID, req)
	if err != nil {
		return domain.User{}, fmt.Errorf("admin: update user %d: %w", userID, err)
	}
	s.log.Info("user updated", "user_id", userID)
	return user, nil
}

// CreateAdmin registers a new admin account.
func (s *AdminService) CreateAdmin(ctx context.Context, sessionID string, req domain.RegisterRequest) (domain.User, error) {
	if err := s.requireAdmin(ctx, sessionID); err != nil {
		return domain.User{}, err
	}
	return s.clients.For(sessionID).AdminCreate(ctx, req)
}

// Feeds returns the RSS ingestion sources.
func (s *AdminService) Feeds(ctx context.Context, sessionID string) ([]domain.RSSFeed, error) {
	if err := s.requireAdmin(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.clients.For(sessionID).AdminListRSSFeeds(ctx)
}

// CreateFeed registers a feed source.
func (s *AdminService) CreateFeed(ctx context.Context, sessionID string, req domain.RSSFeedRequest) (domain.RSSFeed, error) {
	if err := s.requireAdmin(ctx, sessionID); err != nil {
		return domain.RSSFeed{}, err
	}
	return s.clients.For(sessionID).AdminCreateRSSFeed(ctx, req)
}

// UpdateFeed edits a feed source.
func (s *AdminService) UpdateFeed(ctx context.Context, sessionID string, feedID int64, req domain.RSSFeedRequest) (domain.RSSFeed, error) {
	if err := s.requireAdmin(ctx, sessionID); err != nil {
		return domain.RSSFeed{}, err
	}
	return s.clients.For(sessionID).AdminUpdateRSSFeed(ctx, feedID, req)
}

// DeleteFeed removes a feed source.
func (s *AdminService) DeleteFeed(ctx context.Context, sessionID string, feedID int64) error {
	if err := s.requireAdmin(ctx, sessionID); err != nil {
		return err
	}
	return s.clients.For(sessionID).AdminDeleteRSSFeed(ctx, feedID)
}

// FeedCategories returns the known feed categories.
func (s *AdminService) FeedCategories(ctx context.Context, sessionID string) ([]string, error) {
	if err := s.requireAdmin(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.clients.For(sessionID).AdminFeedCategories(ctx)
}

// Collect triggers feed collection: one feed when feedID is set, one source
// when sourceName is set, every active feed otherwise.
func (s *AdminService) Collect(ctx context.Context, sessionID string, feedID int64, sourceName string) (domain.BatchResult, error) {
	if err := s.requireAdmin(ctx, sessionID); err != nil {
		return domain.BatchResult{}, err
	}
	client := s.clients.For(sessionID)
	switch {
	case feedID != 0:
		return client.AdminCollectFeed(ctx, feedID)
	case sourceName != "":
		return client.AdminCollectFeedsBySource(ctx, sourceName)
	default:
		return client.AdminCollectAllFeeds(ctx)
	}
}

// Issues lists submitted issue suggestions.
func (s *AdminService) Issues(ctx context.Context, sessionID string) ([]domain.Issue, error) {
	if err := s.requireAdmin(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.clients.For(sessionID).ListIssues(ctx)
}

// SetIssueStatus approves or rejects an issue suggestion.
func (s *AdminService) SetIssueStatus(ctx context.Context, sessionID string, req domain.IssueStatusRequest) (domain.Issue, error) {
	if err := s.requireAdmin(ctx, sessionID); err != nil {
		return domain.Issue{}, err
	}
	issue, err := s.clients.For(sessionID).UpdateIssueStatus(ctx, req)
	if err != nil {
		return domain.Issue{}, fmt.Errorf("admin: set issue %d status: %w", req.IssueID, err)
	}
	s.log.Info("issue status changed", "issue_id", req.IssueID, "status", req.Status)
	return issue, nil
}

// FinishVote closes betting on a vote with the winning choice.
func (s *AdminService) FinishVote(ctx context.Context, sessionID string, voteID int64, req domain.VoteResolutionRequest) (domain.Vote, error) {
	if err := s.requireAdmin(ctx, sessionID); err != nil {
		return domain.Vote{}, err
	}
	return s.clients.For(sessionID).AdminFinishVote(ctx, voteID, req)
}

// ResolveAndSettleVote resolves winners and pays rewards in one call.
func (s *AdminService) ResolveAndSettleVote(ctx context.Context, sessionID string, voteID int64, req domain.VoteResolutionRequest) (domain.Vote, error) {
	if err := s.requireAdmin(ctx, sessionID); err != nil {
		return domain.Vote{}, err
	}
	return s.clients.For(sessionID).AdminResolveAndSettleVote(ctx, voteID, req)
}

// SettleVote pays rewards for an already-resolved vote.
func (s *AdminService) SettleVote(ctx context.Context, sessionID string, voteID int64) (domain.Vote, error) {
	if err := s.requireAdmin(ctx, sessionID); err != nil {
		return domain.Vote{}, err
	}
	return s.clients.For(sessionID).AdminSettleVote(ctx, voteID)
}

// ReopenVote puts a finished vote back to OPEN.
func (s *AdminService) ReopenVote(ctx context.Context, sessionID string, voteID int64) (domain.Vote, error) {
	if err := s.requireAdmin(ctx, sessionID); err != nil {
		return domain.Vote{}, err
	}
	return s.clients.For(sessionID).AdminReopenVote(ctx, voteID)
}
