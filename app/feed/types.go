package feed

import (
	"errors"
	"fmt"
)

const (
	DefaultCategory  = "Market Insights"
	DefaultAuthor    = "Editorial Team"
	DescriptionLimit = 200
)

// Extraction types

type Feed struct {
	Title       string
	Link        string
	Description string
	Items       []Item
}

type Item struct {
	Title       string
	Link        string
	Description string // Tag-free, entity-decoded, at most DescriptionLimit characters
	Content     string // Raw HTML body: content:encoded, else the description
	Categories  []string
	PublishedAt string // As supplied by the feed, parsed by the caller
	Author      string
	ImageURL    string // Empty when no image could be resolved
}

var ErrMalformedFeed = errors.New("malformed feed")

// MalformedFeedError is returned when the document has no channel element.
type MalformedFeedError struct {
	Reason string
}

func (e *MalformedFeedError) Error() string {
	return fmt.Sprintf("malformed feed: %s", e.Reason)
}

func (e *MalformedFeedError) Is(target error) bool {
	return target == ErrMalformedFeed
}

// Configuration types

type Config struct {
	Name        string         // Derived from filename (without .yml extension)
	URL         string         `yaml:"url"`
	CategoryURL string         `yaml:"category_url"` // fmt template with a single %s for the category slug
	Settings    ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Enabled         bool `yaml:"enabled"`
	RefreshInterval int  `yaml:"refresh_interval"` // seconds
	MaxItems        int  `yaml:"max_items"`
	Timeout         int  `yaml:"timeout"` // seconds
}
