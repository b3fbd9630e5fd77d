package main

import "fmt"

// OutputFormat selects how a newsletter is written to stdout
type OutputFormat string

const (
	FormatJSON     OutputFormat = "json"
	FormatYAML     OutputFormat = "yaml"
	FormatTable    OutputFormat = "table"
	FormatMarkdown OutputFormat = "markdown"
)

var outputFormats = []OutputFormat{FormatJSON, FormatYAML, FormatTable, FormatMarkdown}

// ParseOutputFormat validates a format name from flags or settings
func ParseOutputFormat(s string) (OutputFormat, error) {
	for _, f := range outputFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want one of %v)", s, outputFormats)
}

// ContentResult represents the result of fetching a linked article
type ContentResult struct {
	URL  string
	Text string // Markdown for HTML pages, verbatim for plain text
}
