package tldr

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is where newsletter issues are published.
const DefaultBaseURL = "https://tldr.tech"

// Fetcher downloads newsletter pages. It is safe for concurrent use.
type Fetcher struct {
	client  *resty.Client
	baseURL string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithBaseURL points the fetcher at another host, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(f *Fetcher) {
		f.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithClient replaces the underlying resty client. Apply it before
// WithUserAgent and WithTimeout, which modify the client in place.
func WithClient(client *resty.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(f *Fetcher) {
		if userAgent != "" {
			f.client.SetHeader("User-Agent", userAgent)
		}
	}
}

// WithTimeout bounds each request. Zero keeps the transport default.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.client.SetTimeout(timeout)
		}
	}
}

// NewFetcher creates a fetcher for DefaultBaseURL.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  resty.New(),
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the page address for a category and date, e.g.
// https://tldr.tech/ai/2024-04-11.
func (f *Fetcher) URL(category string, date civil.Date) string {
	return fmt.Sprintf("%s/%s/%s", f.baseURL, url.PathEscape(category), date)
}

// Fetch returns the raw HTML of an issue. Any non-2xx status is reported as
// a KindHTTP error carrying the status code.
func (f *Fetcher) Fetch(ctx context.Context, category string, date civil.Date) (string, error) {
	pageURL := f.URL(category, date)

	res, err := f.client.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		return "", &Error{Kind: KindTransport, URL: pageURL, Err: err}
	}
	if !res.IsSuccess() {
		return "", &Error{Kind: KindHTTP, StatusCode: res.StatusCode(), URL: pageURL}
	}

	// res.String() trims the body; keep it verbatim.
	return string(res.Body()), nil
}

// Load fetches an issue and extracts it. Errors from either step are
// returned as is.
func (f *Fetcher) Load(ctx context.Context, category string, date civil.Date) (*Newsletter, error) {
	html, err := f.Fetch(ctx, category, date)
	if err != nil {
		return nil, err
	}
	return FromHTML(html, category, date)
}
