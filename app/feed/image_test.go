package feed

import (
	"strings"
	"testing"
)

func wrapItem(item string) []byte {
	return []byte(`<rss xmlns:media="http://search.yahoo.com/mrss/"><channel>
<title>Blog</title>
<link>https://blog.example.com/news</link>
<item>` + item + `</item>
</channel></rss>`)
}

func TestResolveImagePriority(t *testing.T) {
	tests := []struct {
		name     string
		item     string
		expected string
	}{
		{
			name: "media content self-closing",
			item: `<media:content url="https://img.example.com/content.jpg" medium="image"/>
<media:thumbnail url="https://img.example.com/thumb.jpg"/>`,
			expected: "https://img.example.com/content.jpg",
		},
		{
			name:     "media content wrapping",
			item:     `<media:content url="https://img.example.com/wrapped.jpg"><media:title>x</media:title></media:content>`,
			expected: "https://img.example.com/wrapped.jpg",
		},
		{
			name: "thumbnail beats enclosure",
			item: `<media:thumbnail url="https://img.example.com/thumb.jpg" />
<enclosure url="https://img.example.com/enclosure.jpg" type="image/jpeg" length="100"/>`,
			expected: "https://img.example.com/thumb.jpg",
		},
		{
			name:     "image enclosure",
			item:     `<enclosure url="https://img.example.com/enclosure.png" type="image/png" length="100"/>`,
			expected: "https://img.example.com/enclosure.png",
		},
		{
			name: "non-image enclosure is skipped",
			item: `<enclosure url="https://files.example.com/brochure.pdf" type="application/pdf" length="100"/>
<description><![CDATA[<p>See <img src="https://x/y.jpg"></p>]]></description>`,
			expected: "https://x/y.jpg",
		},
		{
			name:     "enclosure without type uses extension",
			item:     `<enclosure url="https://img.example.com/photo.webp" length="100"/>`,
			expected: "https://img.example.com/photo.webp",
		},
		{
			name:     "enclosure without type or image extension",
			item:     `<enclosure url="https://files.example.com/tour.mp4"/>`,
			expected: "",
		},
		{
			name:     "data URI media content is skipped",
			item:     `<media:content url="data:image/png;base64,AAAA"/><media:thumbnail url="https://img.example.com/thumb.jpg"/>`,
			expected: "https://img.example.com/thumb.jpg",
		},
		{
			name:     "og image in content",
			item:     `<content:encoded><![CDATA[<meta property="og:image" content="https://img.example.com/og.jpg"><p>Text</p>]]></content:encoded>`,
			expected: "https://img.example.com/og.jpg",
		},
		{
			name:     "img tag beats og image",
			item:     `<content:encoded><![CDATA[<meta property="og:image" content="https://img.example.com/og.jpg"><img alt="a" src="https://img.example.com/img.jpg">]]></content:encoded>`,
			expected: "https://img.example.com/img.jpg",
		},
		{
			name:     "bare url in content",
			item:     `<content:encoded><![CDATA[<p>Photo: https://img.example.com/bare.JPEG</p>]]></content:encoded>`,
			expected: "https://img.example.com/bare.JPEG",
		},
		{
			name:     "data URI img is skipped",
			item:     `<description><![CDATA[<img src="data:image/gif;base64,R0lGOD"><img src="https://img.example.com/real.gif">]]></description>`,
			expected: "https://img.example.com/real.gif",
		},
		{
			name:     "image outside content fields",
			item:     `<title>Listing</title><custom:photo>https://img.example.com/outside.png</custom:photo>`,
			expected: "https://img.example.com/outside.png",
		},
		{
			name:     "protocol relative",
			item:     `<media:thumbnail url="//cdn.example.com/t.jpg"/>`,
			expected: "https://cdn.example.com/t.jpg",
		},
		{
			name:     "root relative",
			item:     `<media:thumbnail url="/uploads/t.jpg"/>`,
			expected: "https://blog.example.com/uploads/t.jpg",
		},
		{
			name:     "entity encoded",
			item:     `<media:thumbnail url="https://img.example.com/t.jpg?w=600&amp;h=400"/>`,
			expected: "https://img.example.com/t.jpg?w=600&h=400",
		},
		{
			name:     "lazy placeholder in data-src is skipped",
			item:     `<description><![CDATA[<img data-src="https://x/lazy.jpg" src="https://x/real.jpg">]]></description>`,
			expected: "https://x/real.jpg",
		},
		{
			name:     "numeric entities decoded",
			item:     `<media:content url="https://x/a.jpg?w=1&#038;h=2"/>`,
			expected: "https://x/a.jpg?w=1&h=2",
		},
		{
			name:     "host name containing gif",
			item:     `<description><![CDATA[<a href="https://www.gifts.com/deals">Deals</a>]]></description>`,
			expected: "",
		},
		{
			name:     "host name containing webp in text",
			item:     `<description>Tested with https://www.webpagetest.org/ today</description>`,
			expected: "",
		},
		{
			name:     "host name containing png in link",
			item:     `<title>Listing</title><link>https://www.pngmart.com/listing/123</link>`,
			expected: "",
		},
		{
			name:     "bare url with trailing punctuation",
			item:     `<description>Photo at https://img.example.com/front.png.</description>`,
			expected: "https://img.example.com/front.png",
		},
		{
			name:     "no image",
			item:     `<title>Nothing</title><description>Words only</description>`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed, err := NewExtractor().Run(wrapItem(tt.item))
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if got := feed.Items[0].ImageURL; got != tt.expected {
				t.Errorf("Expected image %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestResolveImageRootRelativeWithoutChannelLink(t *testing.T) {
	data := `<rss><channel><item><media:thumbnail url="/uploads/t.jpg"/></item></channel></rss>`

	feed, err := NewExtractor().Run([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if feed.Items[0].ImageURL != "/uploads/t.jpg" {
		t.Errorf("Expected relative URL to be kept, got: %s", feed.Items[0].ImageURL)
	}
}

func TestResolvedImagesAreClean(t *testing.T) {
	feed, err := NewExtractor().Run([]byte(sampleFeed))
	if err != nil {
		t.Fatal(err)
	}

	for _, item := range feed.Items {
		if strings.HasPrefix(item.ImageURL, "data:") {
			t.Errorf("Image URL must not be a data URI: %s", item.ImageURL)
		}
		if strings.Contains(item.ImageURL, "&amp;") || strings.Contains(item.ImageURL, "&#") {
			t.Errorf("Image URL must be entity decoded: %s", item.ImageURL)
		}
	}

	encoded := `<enclosure url="https://img.example.com/e.jpg?w=640&#038;h=480&amp;q=80" type="image/jpeg"/>`
	feed, err = NewExtractor().Run(wrapItem(encoded))
	if err != nil {
		t.Fatal(err)
	}
	if got := feed.Items[0].ImageURL; got != "https://img.example.com/e.jpg?w=640&h=480&q=80" {
		t.Errorf("Expected numeric and named entities to be decoded, got: %s", got)
	}
}

func TestChannelBase(t *testing.T) {
	if base := channelBase("https://blog.example.com/path?q=1"); base == nil || base.String() != "https://blog.example.com" {
		t.Errorf("Unexpected base: %v", base)
	}
	for _, link := range []string{"", "not a url", "/relative"} {
		if base := channelBase(link); base != nil {
			t.Errorf("Expected nil base for %q, got %v", link, base)
		}
	}
}
