package feed

import "testing"

func TestVerifierWellFormedFeed(t *testing.T) {
	d := NewVerifier(NewExtractor()).Run([]byte(sampleFeed))

	if !d.WellFormed {
		t.Errorf("Expected strict parse to succeed, got error: %s", d.StrictError)
	}
	if d.StrictItems != 2 || d.ExtractedItems != 2 {
		t.Errorf("Expected 2 strict and 2 extracted items, got %d and %d", d.StrictItems, d.ExtractedItems)
	}
	if d.MissingImages != 1 {
		t.Errorf("Expected 1 item without image, got %d", d.MissingImages)
	}
	if d.DefaultCategory != 1 {
		t.Errorf("Expected 1 item with default category, got %d", d.DefaultCategory)
	}
	if d.DefaultAuthor != 1 {
		t.Errorf("Expected 1 item with default author, got %d", d.DefaultAuthor)
	}
}

func TestVerifierLenientOnly(t *testing.T) {
	// Unescaped ampersand and an unclosed tag break strict XML parsing.
	data := `<rss version="2.0"><channel><title>Fish & Chips</title>
<item><title>One</title><description><p>unclosed</description></item>
</channel></rss>`

	d := NewVerifier(NewExtractor()).Run([]byte(data))

	if d.ExtractError != "" {
		t.Errorf("Expected lenient extraction to succeed, got: %s", d.ExtractError)
	}
	if d.ExtractedItems != 1 {
		t.Errorf("Expected 1 extracted item, got %d", d.ExtractedItems)
	}
}

func TestVerifierNoChannel(t *testing.T) {
	d := NewVerifier(NewExtractor()).Run([]byte("not a feed"))

	if d.WellFormed {
		t.Error("Expected strict parse to fail")
	}
	if d.ExtractError == "" {
		t.Error("Expected extraction error")
	}
}
