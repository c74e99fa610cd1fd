package domain

import "time"

// Article is a news article ingested by the backend's RSS pipeline.
type Article struct {
	ID           int64     `json:"articleId"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	Content      string    `json:"content"`
	Category     string    `json:"category"`
	SourceName   string    `json:"sourceName"`
	Link         string    `json:"link"`
	ImageURL     string    `json:"imageUrl"`
	PublishedAt  time.Time `json:"publishedAt"`
	ViewCount    int       `json:"viewCount"`
	LikeCount    int       `json:"likeCount"`
	DislikeCount int       `json:"dislikeCount"`
	MyReaction   string    `json:"myReaction,omitempty"`
}

// ArticlePage is the backend's Spring-style page envelope for article lists.
type ArticlePage struct {
	Content       []Article `json:"content"`
	TotalPages    int       `json:"totalPages"`
	TotalElements int64     `json:"totalElements"`
	Number        int       `json:"number"`
	Size          int       `json:"size"`
}

// Reaction is an explicit reaction intent. RESET clears the caller's
// previous reaction.
type Reaction string

const (
	ReactionLike    Reaction = "LIKE"
	ReactionDislike Reaction = "DISLIKE"
	ReactionReset   Reaction = "RESET"
)
