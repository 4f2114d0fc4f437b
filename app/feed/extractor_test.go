package feed

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Coastal Living Blog</title>
    <link>https://blog.example.com/</link>
    <description>Market news for the coast</description>
    <image>
      <url>https://blog.example.com/logo.png</url>
      <title>Logo title</title>
      <link>https://blog.example.com/logo</link>
    </image>
    <item>
      <title><![CDATA[Hello & Welcome]]></title>
      <link>https://blog.example.com/hello</link>
      <description><![CDATA[<p>First <b>post</b> &amp; more</p>]]></description>
      <content:encoded><![CDATA[<p>Full <em>article</em> body</p><img src="https://cdn.example.com/a.jpg">]]></content:encoded>
      <category><![CDATA[ Buying ]]></category>
      <category>Selling</category>
      <category>  </category>
      <dc:creator><![CDATA[Jane Agent]]></dc:creator>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Second post</title>
      <link>https://blog.example.com/second</link>
      <description>Plain description</description>
      <pubDate>not a date</pubDate>
    </item>
  </channel>
</rss>`

func TestExtractChannelMetadata(t *testing.T) {
	feed, err := NewExtractor().Run([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if feed.Title != "Coastal Living Blog" {
		t.Errorf("Expected title 'Coastal Living Blog', got: %s", feed.Title)
	}
	if feed.Link != "https://blog.example.com/" {
		t.Errorf("Expected link 'https://blog.example.com/', got: %s", feed.Link)
	}
	if feed.Description != "Market news for the coast" {
		t.Errorf("Expected description 'Market news for the coast', got: %s", feed.Description)
	}
	if len(feed.Items) != 2 {
		t.Fatalf("Expected 2 items, got: %d", len(feed.Items))
	}
}

func TestExtractItemFields(t *testing.T) {
	feed, err := NewExtractor().Run([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	item := feed.Items[0]
	if item.Title != "Hello & Welcome" {
		t.Errorf("Expected title 'Hello & Welcome', got: %q", item.Title)
	}
	if item.Link != "https://blog.example.com/hello" {
		t.Errorf("Unexpected link: %s", item.Link)
	}
	if !strings.HasPrefix(item.Content, "<p>Full <em>article</em> body</p>") {
		t.Errorf("Expected content:encoded body as content, got: %s", item.Content)
	}
	if item.Description != "Full article body" {
		t.Errorf("Expected description 'Full article body', got: %q", item.Description)
	}
	if !reflect.DeepEqual(item.Categories, []string{"Buying", "Selling"}) {
		t.Errorf("Expected categories [Buying Selling], got: %v", item.Categories)
	}
	if item.Author != "Jane Agent" {
		t.Errorf("Expected author 'Jane Agent', got: %s", item.Author)
	}
	if item.PublishedAt != "Mon, 03 Jul 2023 10:00:00 GMT" {
		t.Errorf("Unexpected published date: %s", item.PublishedAt)
	}
	if item.ImageURL != "https://cdn.example.com/a.jpg" {
		t.Errorf("Expected image from content, got: %s", item.ImageURL)
	}

	second := feed.Items[1]
	if second.Content != "Plain description" {
		t.Errorf("Expected content to fall back to description, got: %s", second.Content)
	}
	if second.Author != DefaultAuthor {
		t.Errorf("Expected default author, got: %s", second.Author)
	}
	if second.PublishedAt != "not a date" {
		t.Errorf("Expected raw date to be kept, got: %s", second.PublishedAt)
	}
	if second.ImageURL != "" {
		t.Errorf("Expected no image, got: %s", second.ImageURL)
	}
}

func TestExtractWithoutChannel(t *testing.T) {
	inputs := []string{
		"",
		"invalid xml",
		`<feed xmlns="http://www.w3.org/2005/Atom"><title>Atom</title></feed>`,
		`<rss><channel><title>Unclosed</title></rss>`,
	}

	for _, input := range inputs {
		_, err := NewExtractor().Run([]byte(input))
		if err == nil {
			t.Errorf("Expected error for %q", input)
			continue
		}

		var malformed *MalformedFeedError
		if !errors.As(err, &malformed) {
			t.Errorf("Expected MalformedFeedError for %q, got: %T", input, err)
		}
		if !errors.Is(err, ErrMalformedFeed) || !IsMalformed(err) {
			t.Errorf("Expected error to match ErrMalformedFeed for %q", input)
		}
	}
}

func TestExtractEmptyChannel(t *testing.T) {
	feed, err := NewExtractor().Run([]byte("<rss><channel><title>T</title></channel></rss>"))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if feed.Title != "T" {
		t.Errorf("Expected title 'T', got: %s", feed.Title)
	}
	if len(feed.Items) != 0 {
		t.Errorf("Expected no items, got: %d", len(feed.Items))
	}
	if feed.Link != "" || feed.Description != "" {
		t.Errorf("Expected empty link and description, got: %q %q", feed.Link, feed.Description)
	}
}

func TestExtractDefaultCategory(t *testing.T) {
	feed, err := NewExtractor().Run([]byte(`<rss><channel><item><title>No tags</title></item></channel></rss>`))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(feed.Items[0].Categories, []string{"Market Insights"}) {
		t.Errorf("Expected default category, got: %v", feed.Items[0].Categories)
	}
}

func TestExtractDescriptionTruncation(t *testing.T) {
	body := "<p>" + strings.Repeat("word ", 100) + "</p>"
	if len(body) < 500 {
		t.Fatalf("Test body too short: %d", len(body))
	}
	data := `<rss><channel><item><description><![CDATA[` + body + `]]></description></item></channel></rss>`

	feed, err := NewExtractor().Run([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	description := feed.Items[0].Description
	if utf8.RuneCountInString(description) > DescriptionLimit {
		t.Errorf("Expected description of at most %d characters, got %d", DescriptionLimit, utf8.RuneCountInString(description))
	}
	if strings.ContainsAny(description, "<>") {
		t.Errorf("Expected tags to be stripped, got: %s", description)
	}
	if feed.Items[0].Content != body {
		t.Errorf("Expected raw HTML content to be preserved")
	}
}

func TestExtractEntityDecoding(t *testing.T) {
	data := `<rss><channel><item><description>Tom&#39;s &quot;home&quot; &lt;3&gt;&nbsp;&amp;co</description></item></channel></rss>`

	feed, err := NewExtractor().Run([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	if got := feed.Items[0].Description; got != `Tom's "home" <3> &co` {
		t.Errorf("Unexpected decoded description: %q", got)
	}
}

func TestExtractMalformedItems(t *testing.T) {
	data := `<rss><channel>
	<item><title>Broken <b>markup</title><link></item>
	<item></item>
	<item><title>Fine</title></item>
	</channel></rss>`

	feed, err := NewExtractor().Run([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	if len(feed.Items) != 3 {
		t.Fatalf("Expected every item block to yield an item, got: %d", len(feed.Items))
	}
	for i, item := range feed.Items {
		if len(item.Categories) == 0 {
			t.Errorf("Item %d has no categories", i)
		}
		if item.Author == "" {
			t.Errorf("Item %d has no author", i)
		}
	}
	if feed.Items[2].Title != "Fine" {
		t.Errorf("Expected title 'Fine', got: %s", feed.Items[2].Title)
	}
}

func TestExtractLinkFromGUID(t *testing.T) {
	data := `<rss><channel><item><guid isPermaLink="true">https://blog.example.com/p?id=1&amp;x=2</guid></item></channel></rss>`

	feed, err := NewExtractor().Run([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if feed.Items[0].Link != "https://blog.example.com/p?id=1&x=2" {
		t.Errorf("Expected link from guid, got: %s", feed.Items[0].Link)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	extractor := NewExtractor()

	first, err := extractor.Run([]byte(sampleFeed))
	if err != nil {
		t.Fatal(err)
	}
	second, err := extractor.Run([]byte(sampleFeed))
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical input to produce identical feeds")
	}
}
