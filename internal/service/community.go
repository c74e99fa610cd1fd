package service

import (
	"context"
	"fmt"

	"github.com/usyj/makgora-client/internal/domain"
)

// CommunityService serves the community board.
type CommunityService struct {
	clients *Clients
}

// NewCommunityService wires a CommunityService.
func NewCommunityService(clients *Clients) *CommunityService {
	return &CommunityService{clients: clients}
}

// Posts lists all board posts.
func (s *CommunityService) Posts(ctx context.Context, sessionID string) ([]domain.CommunityPost, error) {
	return s.clients.For(sessionID).ListCommunityPosts(ctx)
}

// Post returns one board post.
func (s *CommunityService) Post(ctx context.Context, sessionID string, postID int64) (domain.CommunityPost, error) {
	return s.clients.For(sessionID).GetCommunityPost(ctx, postID)
}

// Create publishes a post.
func (s *CommunityService) Create(ctx context.Context, sessionID string, req domain.CommunityPostRequest) (domain.CommunityPost, error) {
	post, err := s.clients.For(sessionID).CreateCommunityPost(ctx, req)
	if err != nil {
		return domain.CommunityPost{}, fmt.Errorf("community: create post: %w", err)
	}
	return post, nil
}

// Update edits the caller's post and returns the canonical result.
func (s *CommunityService) Update(ctx context.Context, sessionID string, postID int64, req domain.CommunityPostRequest) (domain.CommunityPost, error) {
	post, err := s.clients.For(sessionID).UpdateCommunityPost(ctx, postID, req)
	if err != nil {
		return domain.CommunityPost{}, fmt.Errorf("community: update post %d: %w", postID, err)
	}
	return post, nil
}

// Delete removes the caller's post.
func (s *CommunityService) Delete(ctx context.Context, sessionID string, postID int64) error {
	if err := s.clients.For(sessionID).DeleteCommunityPost(ctx, postID); err != nil {
		return fmt.Errorf("community: delete post %d: %w", postID, err)
	}
	return nil
}

// React toggles the caller's like or dislike and returns the backend's
// counts.
func (s *CommunityService) React(ctx context.Context, sessionID string, postID int64, like bool) (domain.ReactionCounts, error) {
	client := s.clients.For(sessionID)

	var (
		counts domain.ReactionCounts
		err    error
	)
	if like {
		counts, err = client.LikeCommunityPost(ctx, postID)
	} else {
		counts, err = client.DislikeCommunityPost(ctx, postID)
	}
	if err != nil {
		return domain.ReactionCounts{}, fmt.Errorf("community: react to post %d: %w", postID, err)
	}
	return counts, nil
}
