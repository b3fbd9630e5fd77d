package main

import (
	"context"
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/aktagon/tldr/tldr"
	"github.com/go-resty/resty/v2"
)

// ContentFetcher handles fetching and processing the pages articles link to
type ContentFetcher struct {
	handlers []ContentHandler
	client   *resty.Client
}

// NewContentFetcher creates a new content fetcher with default handlers
func NewContentFetcher(settings *Settings) *ContentFetcher {
	client := resty.New()
	if settings.UserAgent != "" {
		client.SetHeader("User-Agent", settings.UserAgent)
	}
	if settings.Timeout > 0 {
		client.SetTimeout(settings.Timeout)
	}

	f := &ContentFetcher{
		client: client,
	}

	// Register handlers (most specific first)
	f.AddHandler(&PlainTextHandler{})
	f.AddHandler(&HTMLHandler{converter: md.NewConverter("", true, nil)}) // fallback

	return f
}

// AddHandler adds a content handler to the chain
func (f *ContentFetcher) AddHandler(handler ContentHandler) {
	f.handlers = append(f.handlers, handler)
}

// FetchContent fetches and processes content using handler chain
func (f *ContentFetcher) FetchContent(ctx context.Context, url string) (*ContentResult, error) {
	debugLog("fetching linked content: %s", url)

	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	debugLog("linked content response: status=%d content-type=%q", resp.StatusCode(), resp.Header().Get("Content-Type"))

	if !resp.IsSuccess() {
		return nil, &tldr.Error{Kind: tldr.KindHTTP, StatusCode: resp.StatusCode(), URL: url}
	}

	// Find handler based on URL + response headers
	for _, handler := range f.handlers {
		if handler.CanHandle(url, resp) {
			return handler.Handle(url, resp)
		}
	}

	return nil, fmt.Errorf("no handler found for %s", url)
}
