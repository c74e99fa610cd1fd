package makgora

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/usyj/makgora-client/internal/domain"
)

// ListArticles returns one page of news articles. An empty category means
// all categories.
func (c *Client) ListArticles(ctx context.Context, category string, page, size int) (domain.ArticlePage, error) {
	q := url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}
	if category != "" {
		q.Set("category", category)
	}
	var out domain.ArticlePage
	if err := c.get(ctx, "/articles", q, &out); err != nil {
		return domain.ArticlePage{}, fmt.Errorf("list articles: %w", err)
	}
	return out, nil
}

// GetArticle returns one article with its reaction counts.
func (c *Client) GetArticle(ctx context.Context, articleID int64) (domain.Article, error) {
	var out domain.Article
	if err := c.get(ctx, fmt.Sprintf("/articles/%d", articleID), nil, &out); err != nil {
		return domain.Article{}, fmt.Errorf("get article %d: %w", articleID, err)
	}
	return out, nil
}

// IncreaseArticleView bumps the article's view counter. Failures are
// reported but callers typically treat them as non-fatal.
func (c *Client) IncreaseArticleView(ctx context.Context, articleID int64) error {
	if err := c.post(ctx, fmt.Sprintf("/articles/%d/view", articleID), nil, nil); err != nil {
		return fmt.Errorf("increase view of article %d: %w", articleID, err)
	}
	return nil
}

// ReactToArticle sets the caller's reaction on an article. RESET clears it.
func (c *Client) ReactToArticle(ctx context.Context, articleID int64, reaction domain.Reaction) (domain.ReactionCounts, error) {
	body := map[string]string{"reaction": string(reaction)}
	var out domain.ReactionCounts
	if err := c.post(ctx, fmt.Sprintf("/articles/%d/reaction", articleID), body, &out); err != nil {
		return domain.ReactionCounts{}, fmt.Errorf("react to article %d: %w", articleID, err)
	}
	return out, nil
}

// ArticleComments returns the comment tree for an article.
func (c *Client) ArticleComments(ctx context.Context, articleID int64) ([]domain.Comment, error) {
	var out []domain.Comment
	if err := c.get(ctx, fmt.Sprintf("/articles/%d/comments", articleID), nil, &out); err != nil {
		return nil, fmt.Errorf("list comments for article %d: %w", articleID, err)
	}
	return out, nil
}

// AddArticleComment posts a comment or reply under an article.
func (c *Client) AddArticleComment(ctx context.Context, articleID int64, req domain.CommentCreateRequest) (domain.Comment, error) {
	var out domain.Comment
	if err := c.post(ctx, fmt.Sprintf("/articles/%d/comments", articleID), req, &out); err != nil {
		return domain.Comment{}, fmt.Errorf("add comment to article %d: %w", articleID, err)
	}
	return out, nil
}

// UpdateArticleComment edits the caller's own article comment.
func (c *Client) UpdateArticleComment(ctx context.Context, commentID int64, content string) (domain.Comment, error) {
	body := map[string]string{"content": content}
	var out domain.Comment
	if err := c.put(ctx, fmt.Sprintf("/articles/comments/%d", commentID), body, &out); err != nil {
		return domain.Comment{}, fmt.Errorf("update article comment %d: %w", commentID, err)
	}
	return out, nil
}

// DeleteArticleComment soft-deletes the caller's article comment.
func (c *Client) DeleteArticleComment(ctx context.Context, commentID int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/articles/comments/%d", commentID)); err != nil {
		return fmt.Errorf("delete article comment %d: %w", commentID, err)
	}
	return nil
}

// ReactToArticleComment sets the caller's reaction on an article comment.
func (c *Client) ReactToArticleComment(ctx context.Context, commentID int64, reaction domain.Reaction) (domain.ReactionCounts, error) {
	body := map[string]string{"reaction": string(reaction)}
	var out domain.ReactionCounts
	if err := c.post(ctx, fmt.Sprintf("/articles/comments/%d/reactions", commentID), body, &out); err != nil {
		return domain.ReactionCounts{}, fmt.Errorf("react to article comment %d: %w", commentID, err)
	}
	return out, nil
}
