package main

import (
	"bytes"
	"log"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
)

func responseWithContentType(contentType string) *resty.Response {
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &resty.Response{RawResponse: &http.Response{Header: header}}
}

func TestPlainTextHandlerCanHandle(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		expected    bool
	}{
		{
			name:        "text/plain content type",
			url:         "https://example.com/changelog",
			contentType: "text/plain; charset=utf-8",
			expected:    true,
		},
		{
			name:        "markdown content type",
			url:         "https://example.com/readme",
			contentType: "text/markdown",
			expected:    true,
		},
		{
			name:        "txt extension",
			url:         "https://example.com/RELEASE.TXT",
			contentType: "application/octet-stream",
			expected:    true,
		},
		{
			name:        "md extension with query",
			url:         "https://github.com/org/repo/blob/main/README.md?plain=1",
			contentType: "",
			expected:    true,
		},
		{
			name:        "html page",
			url:         "https://example.com/article",
			contentType: "text/html",
			expected:    false,
		},
	}

	h := &PlainTextHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := h.CanHandle(tt.url, responseWithContentType(tt.contentType))
			if result != tt.expected {
				t.Errorf("CanHandle(%q) = %v, want %v", tt.url, result, tt.expected)
			}
		})
	}
}

func TestHTMLHandlerCanHandle(t *testing.T) {
	h := &HTMLHandler{}
	if !h.CanHandle("https://example.com/anything.pdf", responseWithContentType("application/pdf")) {
		t.Error("HTMLHandler.CanHandle() should accept everything as fallback")
	}
}

func TestDebugLog(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	defer SetDebugMode(false)

	SetDebugMode(false)
	debugLog("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("debugLog() wrote %q with debug disabled", buf.String())
	}

	SetDebugMode(true)
	debugLog("shown %d", 2)
	if !strings.Contains(buf.String(), "[DEBUG] shown 2") {
		t.Errorf("debugLog() output = %q, want debug line", buf.String())
	}
}
