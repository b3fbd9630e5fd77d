package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"cloud.google.com/go/civil"
	"github.com/aktagon/tldr/tldr"
)

// NewsletterProcessor handles the main workflow: load an issue, then render,
// read or digest it
type NewsletterProcessor struct {
	config  *Config
	fetcher *tldr.Fetcher
	content *ContentFetcher
}

// NewNewsletterProcessor creates a processor from the loaded configuration
func NewNewsletterProcessor(config *Config) *NewsletterProcessor {
	settings := config.Settings

	fetcher := tldr.NewFetcher(
		tldr.WithBaseURL(settings.BaseURL),
		tldr.WithUserAgent(settings.UserAgent),
		tldr.WithTimeout(settings.Timeout),
	)

	return &NewsletterProcessor{
		config:  config,
		fetcher: fetcher,
		content: NewContentFetcher(settings),
	}
}

// LoadNewsletter loads an issue from the network, or from file when it is set
func (np *NewsletterProcessor) LoadNewsletter(ctx context.Context, category string, date civil.Date, file string) (*tldr.Newsletter, error) {
	if !np.config.IsKnownCategory(category) {
		log.Printf("Warning: category %q is not one of %v", category, np.config.Settings.Categories)
	}

	if file != "" {
		return np.parseFile(category, date, file)
	}

	log.Printf("→ Fetching %s", np.fetcher.URL(category, date))
	newsletter, err := np.fetcher.Load(ctx, category, date)
	if err != nil {
		return nil, fmt.Errorf("loading newsletter: %w", err)
	}

	log.Printf("✓ Loaded %q with %d articles", oneLine(newsletter.Title), len(newsletter.Articles))
	return newsletter, nil
}

func (np *NewsletterProcessor) parseFile(category string, date civil.Date, file string) (*tldr.Newsletter, error) {
	debugLog("parsing local file %s", file)

	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", file, err)
	}
	defer f.Close()

	newsletter, err := tldr.Parse(f, category, date)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}
	return newsletter, nil
}

// Render writes the newsletter to w in the given format
func (np *NewsletterProcessor) Render(w io.Writer, newsletter *tldr.Newsletter, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, newsletter)
	case FormatYAML:
		return renderYAML(w, newsletter)
	case FormatTable:
		return renderTable(w, newsletter, np.config.Settings.Table)
	case FormatMarkdown:
		return renderMarkdown(w, newsletter, np.config.GetTemplate())
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// ReadArticle fetches the page behind the article at 1-based position index
func (np *NewsletterProcessor) ReadArticle(ctx context.Context, newsletter *tldr.Newsletter, index int) (*ContentResult, error) {
	if index < 1 || index > len(newsletter.Articles) {
		return nil, fmt.Errorf("article %d out of range: newsletter has %d articles", index, len(newsletter.Articles))
	}

	article := newsletter.Articles[index-1]
	log.Printf("→ Reading %s", article.URL)

	content, err := np.content.FetchContent(ctx, article.URL)
	if err != nil {
		return nil, fmt.Errorf("reading article %d: %w", index, err)
	}
	return content, nil
}

// Digest renders the newsletter as markdown and hands it to the agent
func (np *NewsletterProcessor) Digest(agent *DigestAgent, newsletter *tldr.Newsletter) (string, error) {
	var buf bytes.Buffer
	if err := renderMarkdown(&buf, newsletter, np.config.GetTemplate()); err != nil {
		return "", fmt.Errorf("rendering newsletter: %w", err)
	}
	return agent.Write(newsletter, buf.String())
}
