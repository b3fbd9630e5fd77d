package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"
	"github.com/aktagon/tldr/tldr"
)

// promptFunc sends one system/user prompt pair and returns the first text block
type promptFunc func(systemPrompt, userPrompt string, settings types.RequestSettings) (string, error)

// DigestAgent writes a short digest of a newsletter issue with an LLM
type DigestAgent struct {
	config *Config
	apiKey string
	prompt promptFunc
}

// NewDigestAgent creates a DigestAgent backed by the Anthropic API
func NewDigestAgent(apiKey string, config *Config) (*DigestAgent, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key required: use --api-key flag or ANTHROPIC_API_KEY environment variable")
	}

	da := &DigestAgent{
		config: config,
		apiKey: apiKey,
	}
	da.prompt = da.promptAnthropic
	return da, nil
}

func (da *DigestAgent) promptAnthropic(systemPrompt, userPrompt string, settings types.RequestSettings) (string, error) {
	response, err := anthropic.PromptWithSettings(systemPrompt, userPrompt, "", da.apiKey, settings)
	if err != nil {
		return "", err
	}
	if len(response.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}
	return response.Content[0].Text, nil
}

// Write generates a markdown digest from the rendered newsletter source
func (da *DigestAgent) Write(newsletter *tldr.Newsletter, source string) (string, error) {
	log.Printf("→ Writing digest for %s %s...", newsletter.Category, newsletter.Date)

	systemPromptTemplate := da.config.GetDigestSystemPrompt()
	if !strings.Contains(systemPromptTemplate, "{{.category}}") {
		return "", fmt.Errorf("digest system prompt template must contain {{.category}} variable")
	}
	systemPrompt := strings.ReplaceAll(systemPromptTemplate, "{{.category}}", newsletter.Category)
	systemPrompt = strings.ReplaceAll(systemPrompt, "{{.date}}", newsletter.Date.String())

	digestSettings := da.config.Settings.Digest
	userPrompt := fmt.Sprintf("Newsletter:\n%s", limitContentTokens(source, digestSettings.ContentMaxTokens))

	settings := types.RequestSettings{
		Model:       digestSettings.Model,
		MaxTokens:   digestSettings.MaxTokens,
		Temperature: digestSettings.Temperature,
	}
	text, err := da.prompt(systemPrompt, userPrompt, settings)
	if err != nil {
		return "", fmt.Errorf("digest agent failed: %w", err)
	}

	log.Printf("✓ Digest completed")
	return text, nil
}

// limitContentTokens limits content to approximately N tokens (using 4 chars ≈ 1 token)
func limitContentTokens(content string, maxTokens int) string {
	maxChars := maxTokens * 4
	if len(content) <= maxChars {
		return content
	}
	return content[:maxChars] + "..."
}
