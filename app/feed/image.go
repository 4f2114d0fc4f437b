package feed

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

var (
	imgSrcPattern       = regexp.MustCompile(`(?is)<img\s(?:[^>]*?\s)?src\s*=\s*["']([^"']+)["']`)
	ogImagePattern      = regexp.MustCompile(`(?is)<meta\s(?:[^>]*?\s)?property\s*=\s*["']og:image["'][^>]*?\scontent\s*=\s*["']([^"']+)["']`)
	ogImageFirstPattern = regexp.MustCompile(`(?is)<meta\s(?:[^>]*?\s)?content\s*=\s*["']([^"']+)["'][^>]*?\sproperty\s*=\s*["']og:image["']`)
	bareURLPattern      = regexp.MustCompile(`(?i)(?:https?:)?//[^\s"'<>()]+`)
	imageExtPattern     = regexp.MustCompile(`(?i)\.(?:jpe?g|png|gif|webp|avif|svg)(?:\?.*)?$`)
)

// resolveImage walks the image sources of an item in priority order and
// returns the first usable URL, normalised against the channel link.
func resolveImage(block, content string, base *url.URL) string {
	candidates := []func() string{
		func() string { return attrTag(block, "media:content") },
		func() string { return attrTag(block, "media:thumbnail") },
		func() string { return enclosureImage(block) },
		func() string { return scanHTML(content) },
		func() string { return scanHTML(block) },
	}

	for _, candidate := range candidates {
		if u := candidate(); usableImage(u) {
			return normalizeImageURL(u, base)
		}
	}
	return ""
}

func attrTag(block, name string) string {
	u, _ := findAttr(block, name, "url")
	return strings.TrimSpace(u)
}

// enclosureImage accepts an enclosure when its MIME type is an image type, or,
// when no type attribute is readable, when the URL has an image extension.
func enclosureImage(block string) string {
	u := attrTag(block, "enclosure")
	if u == "" {
		return ""
	}

	mimeType, found := findAttr(block, "enclosure", "type")
	if found {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "image/") {
			return u
		}
		return ""
	}

	if imageExtPattern.MatchString(u) {
		return u
	}
	return ""
}

// scanHTML looks for an <img> tag, then an og:image meta tag, then any bare
// URL ending in an image extension.
func scanHTML(markup string) string {
	if markup == "" {
		return ""
	}

	for _, p := range []*regexp.Regexp{imgSrcPattern, ogImagePattern, ogImageFirstPattern} {
		for _, m := range p.FindAllStringSubmatch(markup, -1) {
			if u := strings.TrimSpace(m[1]); usableImage(u) {
				return u
			}
		}
	}

	// Whole URLs are matched first so that host names such as www.gifts.com
	// are not mistaken for an image extension.
	for _, u := range bareURLPattern.FindAllString(markup, -1) {
		u = strings.TrimRight(u, ".,;:!")
		if imageExtPattern.MatchString(u) && usableImage(u) {
			return u
		}
	}
	return ""
}

func usableImage(u string) bool {
	u = strings.TrimSpace(u)
	return u != "" && !strings.HasPrefix(strings.ToLower(u), "data:")
}

func normalizeImageURL(u string, base *url.URL) string {
	u = strings.TrimSpace(html.UnescapeString(u))

	switch {
	case strings.HasPrefix(u, "//"):
		return "https:" + u
	case strings.HasPrefix(u, "/") && base != nil:
		return base.Scheme + "://" + base.Host + u
	}
	return u
}

// channelBase returns the scheme and host of the channel link, or nil.
func channelBase(link string) *url.URL {
	if link == "" {
		return nil
	}
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host}
}
