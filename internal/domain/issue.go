package domain

import "time"

// IssueStatus is the moderation state of a user-submitted issue.
type IssueStatus string

const (
	IssueStatusPending  IssueStatus = "PENDING"
	IssueStatusApproved IssueStatus = "APPROVED"
	IssueStatusRejected IssueStatus = "REJECTED"
)

// Issue is a user-proposed topic awaiting admin review; approved issues
// become votes.
type Issue struct {
	ID        int64       `json:"issueId"`
	UserID    int64       `json:"userId"`
	Nickname  string      `json:"nickname"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Category  string      `json:"category"`
	Status    IssueStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// IssueStatusRequest is the admin approval/rejection payload.
type IssueStatusRequest struct {
	IssueID int64       `json:"issueId"`
	Status  IssueStatus `json:"status"`
}
