package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/session"
)

// ProfilePage is the aggregated profile model: the canonical user, owned
// items and both activity feeds.
type ProfilePage struct {
	User                domain.User                `json:"user"`
	Items               []domain.OwnedItem         `json:"items"`
	VoteActivities      []domain.VoteActivity      `json:"voteActivities"`
	CommunityActivities []domain.CommunityActivity `json:"communityActivities"`
}

// ProfileService serves the signed-in user's profile page and edits.
type ProfileService struct {
	clients  *Clients
	sessions *session.Manager
	log      *slog.Logger
}

// NewProfileService wires a ProfileService.
func NewProfileService(clients *Clients, sessions *session.Manager, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		clients:  clients,
		sessions: sessions,
		log:      logger.With("component", "profile"),
	}
}

// Page fetches the profile, owned items and activity feeds concurrently.
func (s *ProfileService) Page(ctx context.Context, sessionID string) (ProfilePage, error) {
	client := s.clients.For(sessionID)

	var out ProfilePage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		user, err := client.Profile(gctx)
		if err != nil {
			return err
		}
		out.User = user
		return nil
	})
	g.Go(func() error {
		items, err := client.MyItems(gctx)
		if err != nil {
			return err
		}
		out.Items = items
		return nil
	})
	g.Go(func() error {
		acts, err := client.VoteActivities(gctx)
		if err != nil {
			return err
		}
		out.VoteActivities = acts
		return nil
	})
	g.Go(func() error {
		acts, err := client.CommunityActivities(gctx)
		if err != nil {
			return err
		}
		out.CommunityActivities = acts
		return nil
	})
	if err := g.Wait(); err != nil {
		return ProfilePage{}, fmt.Errorf("profile: page: %w", err)
	}

	if err := s.sessions.UpdateUser(ctx, sessionID, out.User); err != nil {
		s.log.Warn("session profile update failed", "session_id", sessionID, "error", err)
	}
	return out, nil
}

// Update edits the profile and syncs the session's cached copy.
func (s *ProfileService) Update(ctx context.Context, sessionID string, req domain.ProfileUpdateRequest) (domain.User, error) {
	user, err := s.clients.For(sessionID).UpdateProfile(ctx, req)
	if err != nil {
		return domain.User{}, fmt.Errorf("profile: update: %w", err)
	}
	if err := s.sessions.UpdateUser(ctx, sessionID, user); err != nil {
		s.log.Warn("session profile update failed", "session_id", sessionID, "error", err)
	}
	return user, nil
}

// ApplyItem equips an owned cosmetic and syncs the session's cached copy.
func (s *ProfileService) ApplyItem(ctx context.Context, sessionID string, itemID int64) (domain.User, error) {
	user, err := s.clients.For(sessionID).ApplyItem(ctx, itemID)
	if err != nil {
		return domain.User{}, fmt.Errorf("profile: apply item %d: %w", itemID, err)
	}
	if err := s.sessions.UpdateUser(ctx, sessionID, user); err != nil {
		s.log.Warn("session profile update failed", "session_id", sessionID, "error", err)
	}
	return user, nil
}

// ClearFrame unequips the profile frame and returns the fresh profile.
func (s *ProfileService) ClearFrame(ctx context.Context, sessionID string) (domain.User, error) {
	client := s.clients.For(sessionID)
	if err := client.ClearFrame(ctx); err != nil {
		return domain.User{}, fmt.Errorf("profile: clear frame: %w", err)
	}
	return s.refetch(ctx, sessionID)
}

// ClearBadge unequips the profile badge and returns the fresh profile.
func (s *ProfileService) ClearBadge(ctx context.Context, sessionID string) (domain.User, error) {
	client := s.clients.For(sessionID)
	if err := client.ClearBadge(ctx); err != nil {
		return domain.User{}, fmt.Errorf("profile: clear badge: %w", err)
	}
	return s.refetch(ctx, sessionID)
}

func (s *ProfileService) refetch(ctx context.Context, sessionID string) (domain.User, error) {
	user, err := s.clients.For(sessionID).Me(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("profile: refetch: %w", err)
	}
	if err := s.sessions.UpdateUser(ctx, sessionID, user); err != nil {
		s.log.Warn("session profile update failed", "session_id", sessionID, "error", err)
	}
	return user, nil
}
