package feed

import (
	"cmp"
	"net/url"
	"regexp"
	"strings"
)

var (
	channelPattern = regexp.MustCompile(`(?is)<channel(?:\s[^>]*)?>(.*?)</channel\s*>`)
	itemPattern    = regexp.MustCompile(`(?is)<item(?:\s[^>]*)?>(.*?)</item\s*>`)
)

// Extractor turns loosely structured RSS 2.0 text into a Feed. Missing pieces
// degrade to defaults; only a document without a channel is rejected.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Run(data []byte) (*Feed, error) {
	m := channelPattern.FindSubmatch(data)
	if m == nil {
		return nil, &MalformedFeedError{Reason: "no channel element found"}
	}
	channel := string(m[1])

	// Channel metadata is looked up with items and the image block removed so
	// that their <title> and <link> elements are not picked up.
	header := removeTags(removeTags(channel, "item"), "image")

	feed := &Feed{
		Title:       decodeEntities(textTag(header, "title")),
		Link:        textTag(header, "link"),
		Description: textTag(header, "description"),
	}

	base := channelBase(feed.Link)

	blocks := itemPattern.FindAllStringSubmatch(channel, -1)
	feed.Items = make([]Item, 0, len(blocks))
	for _, block := range blocks {
		feed.Items = append(feed.Items, e.extractItem(block[1], base))
	}

	return feed, nil
}

func (e *Extractor) extractItem(block string, base *url.URL) Item {
	description := textTag(block, "description")
	content := cmp.Or(textTag(block, "content:encoded"), description)

	item := Item{
		Title:       decodeEntities(textTag(block, "title")),
		Link:        e.extractLink(block),
		Description: plainText(content, DescriptionLimit),
		Content:     content,
		Categories:  e.extractCategories(block),
		PublishedAt: cmp.Or(textTag(block, "pubDate"), textTag(block, "dc:date")),
		Author:      cmp.Or(textTag(block, "dc:creator"), DefaultAuthor),
		ImageURL:    resolveImage(block, content, base),
	}

	return item
}

// extractLink prefers <link>; a permalink <guid> is used when the link is absent.
func (e *Extractor) extractLink(block string) string {
	if link := textTag(block, "link"); link != "" {
		return decodeEntities(link)
	}

	guid := textTag(block, "guid")
	if strings.HasPrefix(guid, "http://") || strings.HasPrefix(guid, "https://") {
		return decodeEntities(guid)
	}
	return ""
}

func (e *Extractor) extractCategories(block string) []string {
	var categories []string
	for _, body := range findAllTags(block, "category") {
		if category := strings.TrimSpace(decodeEntities(cleanText(body))); category != "" {
			categories = append(categories, category)
		}
	}

	if len(categories) == 0 {
		return []string{DefaultCategory}
	}
	return categories
}
