package domain

import "time"

// RSSFeed is an ingestion source managed through the admin console. The
// collection itself runs in the backend; the client only triggers it and
// shows the result.
type RSSFeed struct {
	ID              int64      `json:"feedId"`
	SourceName      string     `json:"sourceName"`
	URL             string     `json:"url"`
	Category        string     `json:"category"`
	Active          bool       `json:"active"`
	ArticleCount    int        `json:"articleCount"`
	LastCollectedAt *time.Time `json:"lastCollectedAt,omitempty"`
}

// RSSFeedRequest creates or updates a feed.
type RSSFeedRequest struct {
	SourceName string `json:"sourceName"`
	URL        string `json:"url"`
	Category   string `json:"category"`
	Active     bool   `json:"active"`
}

// BatchResult summarises a collection run.
type BatchResult struct {
	Fetched int `json:"fetched"`
	Saved   int `json:"saved"`
	Skipped int `json:"skipped"`
}
