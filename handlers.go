package main

import (
	"fmt"
	"log"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/go-resty/resty/v2"
)

// ContentHandler processes URLs based on response inspection
type ContentHandler interface {
	CanHandle(url string, resp *resty.Response) bool
	Handle(url string, resp *resty.Response) (*ContentResult, error)
}

var debugEnabled bool

// SetDebugMode enables or disables debug logging
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

func debugLog(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// PlainTextHandler passes text and markdown documents through unchanged
type PlainTextHandler struct{}

func (h *PlainTextHandler) CanHandle(url string, resp *resty.Response) bool {
	path := strings.ToLower(url)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if strings.HasSuffix(path, ".txt") || strings.HasSuffix(path, ".md") {
		return true
	}

	contentType := resp.Header().Get("Content-Type")
	return strings.Contains(contentType, "text/plain") ||
		strings.Contains(contentType, "text/markdown")
}

func (h *PlainTextHandler) Handle(url string, resp *resty.Response) (*ContentResult, error) {
	return &ContentResult{URL: url, Text: string(resp.Body())}, nil
}

// HTMLHandler handles regular HTML content (fallback)
type HTMLHandler struct {
	converter *md.Converter
}

func (h *HTMLHandler) CanHandle(url string, resp *resty.Response) bool {
	return true // Always handles as fallback
}

func (h *HTMLHandler) Handle(url string, resp *resty.Response) (*ContentResult, error) {
	markdown, err := h.converter.ConvertString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}

	return &ContentResult{URL: url, Text: markdown}, nil
}
