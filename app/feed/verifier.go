package feed

import (
	"bytes"
	"errors"

	"github.com/mmcdole/gofeed"
)

// Diagnostics compares the lenient extraction of a document with a strict
// parse, so an operator can see what the publisher's feed gets wrong.
type Diagnostics struct {
	WellFormed      bool   `json:"well_formed"`
	StrictError     string `json:"strict_error,omitempty"`
	StrictItems     int    `json:"strict_items"`
	ExtractError    string `json:"extract_error,omitempty"`
	ExtractedItems  int    `json:"extracted_items"`
	MissingImages   int    `json:"missing_images"`
	DefaultCategory int    `json:"default_category"`
	DefaultAuthor   int    `json:"default_author"`
}

type Verifier struct {
	gofeedParser *gofeed.Parser
	extractor    *Extractor
}

func NewVerifier(extractor *Extractor) *Verifier {
	return &Verifier{
		gofeedParser: gofeed.NewParser(),
		extractor:    extractor,
	}
}

func (v *Verifier) Run(data []byte) Diagnostics {
	var d Diagnostics

	strict, err := v.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		d.StrictError = err.Error()
	} else {
		d.WellFormed = true
		d.StrictItems = len(strict.Items)
	}

	extracted, err := v.extractor.Run(data)
	if err != nil {
		d.ExtractError = err.Error()
		return d
	}

	d.ExtractedItems = len(extracted.Items)
	for _, item := range extracted.Items {
		if item.ImageURL == "" {
			d.MissingImages++
		}
		if len(item.Categories) == 1 && item.Categories[0] == DefaultCategory {
			d.DefaultCategory++
		}
		if item.Author == DefaultAuthor {
			d.DefaultAuthor++
		}
	}

	return d
}

// IsMalformed reports whether err came from a document without a channel.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedFeed)
}
