package database

import (
	"time"
)

type Feed struct {
	ID            int64
	Name          string // Configuration feed identifier derived from filename
	FeedURL       string // RSS feed URL from configuration
	Title         string
	Link          string // Channel <link>, used as the base for relative image URLs
	Description   string
	LastFetchedAt *time.Time
	NextFetchAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Post is one stored item of the latest successful fetch. Position keeps
// document order.
type Post struct {
	ID           int64
	FeedID       int64
	Position     int
	Title        string
	Link         string
	Description  string
	Content      string
	Categories   []string
	PublishedRaw string // Date string exactly as the feed supplied it
	Author       string
	ImageURL     string
	CreatedAt    time.Time
}
