package database

import (
	"time"
)

type FeedPost struct {
	Title        string
	Link         string
	Description  string
	Content      string
	Categories   []string
	PublishedRaw string
	Author       string
	ImageURL     string
}

type FeedRepository interface {
	GetFeed(feedName string) (*Feed, error)
	GetFeedCount() (int, error)

	UpsertFeed(feedName, feedURL string) error
	UpdateFeedMetadata(feedName string, title string, link string, description string, nextFetch time.Time) error
	UpdateNextFetch(feedName string, nextFetch time.Time) error
}

type PostRepository interface {
	GetPosts(feedName string, limit int) ([]Post, error)
	GetPostCount(feedName string) (int, error)

	ReplacePosts(feedName string, posts []FeedPost) error
}
