package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/usyj/makgora-client/internal/commentview"
	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/session"
)

// ArticleDetail is the aggregated news article page model.
type ArticleDetail struct {
	Article  domain.Article     `json:"article"`
	Comments commentview.Thread `json:"comments"`
}

// ArticleService serves the news pages.
type ArticleService struct {
	clients  *Clients
	sessions *session.Manager
	log      *slog.Logger
}

// NewArticleService wires an ArticleService.
func NewArticleService(clients *Clients, sessions *session.Manager, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		clients:  clients,
		sessions: sessions,
		log:      logger.With("component", "articles"),
	}
}

// List returns one page of articles, optionally filtered by category.
func (s *ArticleService) List(ctx context.Context, sessionID, category string, page, size int) (domain.ArticlePage, error) {
	if size <= 0 {
		size = 50
	}
	return s.clients.For(sessionID).ListArticles(ctx, category, page, size)
}

// Detail fetches an article and its comments concurrently and bumps the
// view counter. A failed view bump is logged, not surfaced; the page still
// renders.
func (s *ArticleService) Detail(ctx context.Context, sessionID string, articleID int64) (ArticleDetail, error) {
	client := s.clients.For(sessionID)

	var (
		out      ArticleDetail
		viewerID int64
	)
	if sessionID != "" {
		if sess, err := s.sessions.Get(ctx, sessionID); err == nil {
			viewerID = sess.User.ID
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := client.GetArticle(gctx, articleID)
		if err != nil {
			return err
		}
		out.Article = a
		return nil
	})
	g.Go(func() error {
		comments, err := client.ArticleComments(gctx, articleID)
		if err != nil {
			return err
		}
		out.Comments = commentview.Annotate(comments, viewerID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return ArticleDetail{}, fmt.Errorf("articles: detail %d: %w", articleID, err)
	}

	if err := client.IncreaseArticleView(ctx, articleID); err != nil {
		s.log.Warn("view count bump failed", "article_id", articleID, "error", err)
	}
	return out, nil
}

// React sets the caller's reaction on an article and returns the backend's
// counts.
func (s *ArticleService) React(ctx context.Context, sessionID string, articleID int64, reaction domain.Reaction) (domain.ReactionCounts, error) {
	counts, err := s.clients.For(sessionID).ReactToArticle(ctx, articleID, reaction)
	if err != nil {
		return domain.ReactionCounts{}, fmt.Errorf("articles: react to %d: %w", articleID, err)
	}
	return counts, nil
}

// ReactToComment sets the caller's reaction on an article comment.
func (s *ArticleService) ReactToComment(ctx context.Context, sessionID string, commentID int64, reaction domain.Reaction) (domain.ReactionCounts, error) {
	counts, err := s.clients.For(sessionID).ReactToArticleComment(ctx, commentID, reaction)
	if err != nil {
		return domain.ReactionCounts{}, fmt.Errorf("articles: react to comment %d: %w", commentID, err)
	}
	return counts, nil
}
