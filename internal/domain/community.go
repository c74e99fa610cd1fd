package domain

import "time"

// CommunityPost is a user-authored discussion post.
type CommunityPost struct {
	ID           int64     `json:"postId"`
	UserID       int64     `json:"userId"`
	Nickname     string    `json:"nickname"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	ViewCount    int       `json:"viewCount"`
	LikeCount    int       `json:"likeCount"`
	DislikeCount int       `json:"dislikeCount"`
	CommentCount int       `json:"commentCount"`
	Comments     []Comment `json:"comments,omitempty"`
	FileIDs      []int64   `json:"fileIds,omitempty"`
}

// CommunityPostRequest creates or fully updates a post.
type CommunityPostRequest struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	FileIDs []int64 `json:"fileIds,omitempty"`
}
