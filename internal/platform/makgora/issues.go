package makgora

import (
	"context"
	"fmt"

	"github.com/usyj/makgora-client/internal/domain"
)

// ListIssues returns submitted issue suggestions. Admin-only on the backend.
func (c *Client) ListIssues(ctx context.Context) ([]domain.Issue, error) {
	var out []domain.Issue
	if err := c.get(ctx, "/issues", nil, &out); err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	return out, nil
}

// UpdateIssueStatus approves or rejects an issue suggestion. Approval
// triggers AI vote generation on the backend.
func (c *Client) UpdateIssueStatus(ctx context.Context, req domain.IssueStatusRequest) (domain.Issue, error) {
	var out domain.Issue
	if err := c.post(ctx, "/issues/status", req, &out); err != nil {
		return domain.Issue{}, fmt.Errorf("update issue %d status: %w", req.IssueID, err)
	}
	return out, nil
}
