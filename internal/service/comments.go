package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/usyj/makgora-client/internal/commentview"
	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/session"
)

// CommentService mediates the comment intents: create, reply, react and
// delete. Every mutation re-fetches the thread afterwards; counts and
// reaction state always come from the backend, never from local increments.
type CommentService struct {
	clients  *Clients
	sessions *session.Manager
	log      *slog.Logger
}

// NewCommentService wires a CommentService.
func NewCommentService(clients *Clients, sessions *session.Manager, logger *slog.Logger) *CommentService {
	return &CommentService{
		clients:  clients,
		sessions: sessions,
		log:      logger.With("component", "comments"),
	}
}

func (s *CommentService) viewerID(ctx context.Context, sessionID string) int64 {
	if sessionID == "" {
		return 0
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return 0
	}
	return sess.User.ID
}

func (s *CommentService) fetch(ctx context.Context, sessionID string, target domain.CommentTarget, targetID int64) ([]domain.Comment, error) {
	client := s.clients.For(sessionID)

	var (
		comments []domain.Comment
		err      error
	)
	switch target {
	case domain.CommentTargetVote:
		comments, err = client.VoteComments(ctx, targetID)
	case domain.CommentTargetNormalVote:
		comments, err = client.NormalVoteComments(ctx, targetID)
	case domain.CommentTargetArticle:
		comments, err = client.ArticleComments(ctx, targetID)
	default:
		return nil, fmt.Errorf("comments: unsupported target %q", target)
	}
	if err != nil {
		return nil, fmt.Errorf("comments: fetch %s %d: %w", target, targetID, err)
	}
	return comments, nil
}

func (s *CommentService) thread(ctx context.Context, sessionID string, target domain.CommentTarget, targetID int64) (commentview.Thread, error) {
	comments, err := s.fetch(ctx, sessionID, target, targetID)
	if err != nil {
		return commentview.Thread{}, err
	}
	return commentview.Annotate(comments, s.viewerID(ctx, sessionID)), nil
}

// requireOwn rejects edit/delete intents on someone else's comment before
// they reach the backend. A comment missing from the fetched tree is
// forwarded anyway; the backend stays authoritative on authorship either
// way.
func (s *CommentService) requireOwn(ctx context.Context, sessionID string, target domain.CommentTarget, targetID, commentID int64) error {
	viewer := s.viewerID(ctx, sessionID)
	if viewer == 0 {
		return domain.ErrUnauthorized
	}
	comments, err := s.fetch(ctx, sessionID, target, targetID)
	if err != nil {
		return err
	}
	if c, ok := commentview.Find(comments, commentID); ok && c.UserID != viewer {
		return fmt.Errorf("comments: %d not owned by viewer: %w", commentID, domain.ErrForbidden)
	}
	return nil
}

// Thread returns the annotated discussion for a vote, survey vote or
// article.
func (s *CommentService) Thread(ctx context.Context, sessionID string, target domain.CommentTarget, targetID int64) (commentview.Thread, error) {
	return s.thread(ctx, sessionID, target, targetID)
}

// Add posts a top-level comment or a reply and returns the re-fetched
// thread. On rejection the thread is left as the caller saw it.
func (s *CommentService) Add(ctx context.Context, sessionID string, target domain.CommentTarget, targetID int64, content string, parentID *int64) (commentview.Thread, error) {
	client := s.clients.For(sessionID)

	req := domain.CommentCreateRequest{Content: content, ParentID: parentID}
	var err error
	switch target {
	case domain.CommentTargetVote:
		req.VoteID = &targetID
		_, err = client.AddComment(ctx, req)
	case domain.CommentTargetNormalVote:
		req.NormalVoteID = &targetID
		_, err = client.AddComment(ctx, req)
	case domain.CommentTargetArticle:
		_, err = client.AddArticleComment(ctx, targetID, req)
	default:
		return commentview.Thread{}, fmt.Errorf("comments: unsupported target %q", target)
	}
	if err != nil {
		return commentview.Thread{}, fmt.Errorf("comments: add to %s %d: %w", target, targetID, err)
	}
	return s.thread(ctx, sessionID, target, targetID)
}

// React records an explicit like/dislike intent on a vote-thread comment
// and returns the backend's counts.
func (s *CommentService) React(ctx context.Context, sessionID string, commentID int64, like bool) (domain.ReactionCounts, error) {
	counts, err := s.clients.For(sessionID).ReactToComment(ctx, commentID, like)
	if err != nil {
		return domain.ReactionCounts{}, fmt.Errorf("comments: react to %d: %w", commentID, err)
	}
	return counts, nil
}

// Delete removes the caller's comment and returns the re-fetched thread.
// Deleting someone else's comment fails with domain.ErrForbidden without
// hitting the backend's delete endpoint.
func (s *CommentService) Delete(ctx context.Context, sessionID string, target domain.CommentTarget, targetID, commentID int64) (commentview.Thread, error) {
	if err := s.requireOwn(ctx, sessionID, target, targetID, commentID); err != nil {
		return commentview.Thread{}, err
	}
	client := s.clients.For(sessionID)

	var err error
	switch target {
	case domain.CommentTargetVote, domain.CommentTargetNormalVote:
		err = client.DeleteComment(ctx, commentID)
	case domain.CommentTargetArticle:
		err = client.DeleteArticleComment(ctx, commentID)
	default:
		return commentview.Thread{}, fmt.Errorf("comments: unsupported target %q", target)
	}
	if err != nil {
		return commentview.Thread{}, fmt.Errorf("comments: delete %d: %w", commentID, err)
	}
	return s.thread(ctx, sessionID, target, targetID)
}

// UpdateArticleComment edits the caller's article comment and returns the
// re-fetched thread. Vote-thread comments are not editable on this backend.
func (s *CommentService) UpdateArticleComment(ctx context.Context, sessionID string, articleID, commentID int64, content string) (commentview.Thread, error) {
	if err := s.requireOwn(ctx, sessionID, domain.CommentTargetArticle, articleID, commentID); err != nil {
		return commentview.Thread{}, err
	}
	if _, err := s.clients.For(sessionID).UpdateArticleComment(ctx, commentID, content); err != nil {
		return commentview.Thread{}, fmt.Errorf("comments: update %d: %w", commentID, err)
	}
	return s.thread(ctx, sessionID, domain.CommentTargetArticle, articleID)
}
