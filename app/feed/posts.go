package feed

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	MinPostLimit     = 1
	MaxPostLimit     = 20
	DefaultPostLimit = 6
)

var slugUnsafePattern = regexp.MustCompile(`[^a-z0-9-]`)

// Post is the presentation record built from an Item.
type Post struct {
	Title        string     `json:"title"`
	Link         string     `json:"link"`
	Excerpt      string     `json:"excerpt"`
	Content      string     `json:"content"`
	Category     string     `json:"category"`
	Categories   []string   `json:"categories"`
	CategoryLink string     `json:"category_link,omitempty"`
	Author       string     `json:"author"`
	ImageURL     string     `json:"image_url,omitempty"`
	PublishedRaw string     `json:"published_raw"`
	PublishedAt  *time.Time `json:"published_at"`
}

// ClampLimit keeps a caller-supplied post count within MinPostLimit..MaxPostLimit.
func ClampLimit(limit int) int {
	return min(max(limit, MinPostLimit), MaxPostLimit)
}

// Slugify lower-cases s, turns spaces into hyphens and drops anything that is
// not a letter, digit or hyphen.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	return slugUnsafePattern.ReplaceAllString(s, "")
}

// CategoryLink fills the category template with the slug of category.
func CategoryLink(template, category string) string {
	if template == "" {
		return ""
	}
	slug := Slugify(category)
	if strings.Contains(template, "%s") {
		return fmt.Sprintf(template, slug)
	}
	return strings.TrimSuffix(template, "/") + "/" + slug
}

// ParsePublished parses the raw feed date. Invalid or empty dates yield nil.
func ParsePublished(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

func NewPost(item Item, categoryURL string) Post {
	categories := item.Categories
	if len(categories) == 0 {
		categories = []string{DefaultCategory}
	}

	return Post{
		Title:        item.Title,
		Link:         item.Link,
		Excerpt:      item.Description,
		Content:      item.Content,
		Category:     categories[0],
		Categories:   categories,
		CategoryLink: CategoryLink(categoryURL, categories[0]),
		Author:       item.Author,
		ImageURL:     item.ImageURL,
		PublishedRaw: item.PublishedAt,
		PublishedAt:  ParsePublished(item.PublishedAt),
	}
}

// ToPosts maps the first limit items (clamped) to posts.
func ToPosts(items []Item, limit int, categoryURL string) []Post {
	limit = ClampLimit(limit)
	if len(items) > limit {
		items = items[:limit]
	}

	posts := make([]Post, 0, len(items))
	for _, item := range items {
		posts = append(posts, NewPost(item, categoryURL))
	}
	return posts
}

// FallbackPost is shown instead of an empty list when the feed cannot be
// fetched or parsed.
func FallbackPost(link, categoryURL string) Post {
	return Post{
		Title:        "Local Market Update",
		Link:         link,
		Excerpt:      "Fresh insights on pricing, inventory and neighborhood trends are on the way. Check back soon for the latest market update.",
		Category:     DefaultCategory,
		Categories:   []string{DefaultCategory},
		CategoryLink: CategoryLink(categoryURL, DefaultCategory),
		Author:       DefaultAuthor,
	}
}
