// Package tldr loads TLDR newsletter issues and extracts their articles.
package tldr

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/PuerkitoBio/goquery"
)

// Newsletter is one dated issue of a newsletter category.
type Newsletter struct {
	Title    string     `json:"title" yaml:"title"`
	Subtitle string     `json:"subtitle" yaml:"subtitle"`
	Category string     `json:"category" yaml:"category"`
	Date     civil.Date `json:"date" yaml:"date"`
	Articles []Article  `json:"articles" yaml:"articles"`
}

// Load downloads the issue for category and date and extracts it.
func Load(ctx context.Context, category string, date civil.Date) (*Newsletter, error) {
	return NewFetcher().Load(ctx, category, date)
}

// FromHTML extracts a newsletter from an HTML document. The category and date
// are copied into the result as given; everything else comes from the markup.
func FromHTML(html, category string, date civil.Date) (*Newsletter, error) {
	return Parse(strings.NewReader(html), category, date)
}

// Parse is FromHTML for a reader.
func Parse(r io.Reader, category string, date civil.Date) (*Newsletter, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return scrape(doc, category, date)
}
