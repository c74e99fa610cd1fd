package domain

import "time"

// Comment is a single node in a discussion thread. The backend returns the
// full reply tree already shaped; the client renders whatever tree it gets
// and never re-parents nodes.
type Comment struct {
	ID           int64     `json:"commentId"`
	ParentID     *int64    `json:"parentId,omitempty"`
	UserID       int64     `json:"userId"`
	Nickname     string    `json:"nickname"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LikeCount    int       `json:"likeCount"`
	DislikeCount int       `json:"dislikeCount"`
	MyReaction   string    `json:"myReaction,omitempty"` // "LIKE", "DISLIKE" or empty
	Deleted      bool      `json:"deleted"`
	Children     []Comment `json:"children,omitempty"`
}

// CommentTarget identifies which discussion thread a comment belongs to.
type CommentTarget string

const (
	CommentTargetVote       CommentTarget = "VOTE"
	CommentTargetNormalVote CommentTarget = "NORMAL"
	CommentTargetArticle    CommentTarget = "ARTICLE"
	CommentTargetCommunity  CommentTarget = "COMMUNITY"
)

// CommentCreateRequest creates a top-level comment or, with ParentID set, a
// reply under an existing node. Exactly one of VoteID or NormalVoteID names
// the thread; article comments carry the article id in the URL instead.
type CommentCreateRequest struct {
	Content      string `json:"content"`
	ParentID     *int64 `json:"parentId,omitempty"`
	VoteID       *int64 `json:"voteId,omitempty"`
	NormalVoteID *int64 `json:"normalVoteId,omitempty"`
}

// ReactionCounts is what the backend returns after a reaction toggle. The
// displayed counts are always taken from this response, never incremented
// locally, so the UI cannot drift from ground truth.
type ReactionCounts struct {
	LikeCount    int    `json:"likeCount"`
	DislikeCount int    `json:"dislikeCount"`
	MyReaction   string `json:"myReaction,omitempty"`
}
