package main

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigDir    = ".tldr"
	minTableWidth       = 10
	minContentMaxTokens = 1000
)

// ConfigOverrides allows overriding embedded defaults with file paths
type ConfigOverrides struct {
	SettingsPath     *string
	TemplatePath     *string
	DigestPromptPath *string
}

//go:embed config/settings.yaml
var defaultSettings string

//go:embed config/newsletter-template.md
var defaultTemplate string

//go:embed config/digest-system-prompt.md
var defaultDigestPrompt string

// DigestSettings configures the LLM used by the digest command
type DigestSettings struct {
	Model            string  `yaml:"model"`
	MaxTokens        int     `yaml:"max_tokens"`
	Temperature      float64 `yaml:"temperature"`
	ContentMaxTokens int     `yaml:"content_max_tokens"`
}

// TableSettings bounds column widths of the table output
type TableSettings struct {
	TitleWidth       int `yaml:"title_width"`
	DescriptionWidth int `yaml:"description_width"`
}

// Settings represents the YAML configuration structure
type Settings struct {
	BaseURL         string         `yaml:"base_url"`
	UserAgent       string         `yaml:"user_agent"`
	Timeout         time.Duration  `yaml:"timeout"`
	DefaultCategory string         `yaml:"default_category"`
	Format          OutputFormat   `yaml:"format"`
	Categories      []string       `yaml:"categories"`
	Table           TableSettings  `yaml:"table"`
	Digest          DigestSettings `yaml:"digest"`
}

// Config holds configuration and overrides
type Config struct {
	Settings  *Settings
	Overrides *ConfigOverrides
}

// NewConfig creates a new Config with settings and overrides. Without an
// explicit settings path the default config directory is created on first run.
func NewConfig(overrides *ConfigOverrides) (*Config, error) {
	var settings *Settings
	var err error

	if overrides != nil && overrides.SettingsPath != nil {
		settings, err = loadSettingsRequired(*overrides.SettingsPath)
	} else {
		if err := ensureConfigExists(defaultConfigDir); err != nil {
			return nil, fmt.Errorf("ensuring config files exist: %w", err)
		}
		settings, err = loadSettings(getConfigPath(defaultConfigDir, "settings.yaml"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return &Config{
		Settings:  settings,
		Overrides: overrides,
	}, nil
}

// GetTemplate returns the markdown template (from override file or embedded)
func (c *Config) GetTemplate() string {
	if c.Overrides != nil && c.Overrides.TemplatePath != nil {
		if content, err := os.ReadFile(*c.Overrides.TemplatePath); err == nil {
			return string(content)
		}
		log.Printf("Warning: template %s not readable, using embedded template", *c.Overrides.TemplatePath)
	}
	return defaultTemplate
}

// GetDigestSystemPrompt returns the digest system prompt (from override file or embedded)
func (c *Config) GetDigestSystemPrompt() string {
	if c.Overrides != nil && c.Overrides.DigestPromptPath != nil {
		if content, err := os.ReadFile(*c.Overrides.DigestPromptPath); err == nil {
			return string(content)
		}
		log.Printf("Warning: digest prompt %s not readable, using embedded prompt", *c.Overrides.DigestPromptPath)
	}
	return defaultDigestPrompt
}

// IsKnownCategory reports whether category is listed in the settings. An
// empty list accepts everything.
func (c *Config) IsKnownCategory(category string) bool {
	if len(c.Settings.Categories) == 0 {
		return true
	}
	return slices.Contains(c.Settings.Categories, category)
}

// loadSettings loads settings from a YAML file, falling back to the embedded
// defaults when the file does not exist
func loadSettings(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if os.IsNotExist(err) {
		return parseSettings(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", settingsPath, err)
	}
	return parseSettings(data)
}

// loadSettingsRequired loads settings from a YAML file, failing if it doesn't exist
func loadSettingsRequired(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", settingsPath, err)
	}
	return parseSettings(data)
}

// parseSettings overlays data on top of the embedded defaults
func parseSettings(data []byte) (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal([]byte(defaultSettings), &settings); err != nil {
		return nil, fmt.Errorf("failed to parse default settings: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
		}
	}

	if _, err := ParseOutputFormat(string(settings.Format)); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	if settings.Timeout < 0 {
		return nil, fmt.Errorf("invalid settings: timeout must not be negative, got %s", settings.Timeout)
	}

	if settings.Table.TitleWidth < minTableWidth {
		log.Printf("Warning: table.title_width is %d, defaulting to %d (minimum)", settings.Table.TitleWidth, minTableWidth)
		settings.Table.TitleWidth = minTableWidth
	}
	if settings.Table.DescriptionWidth < minTableWidth {
		log.Printf("Warning: table.description_width is %d, defaulting to %d (minimum)", settings.Table.DescriptionWidth, minTableWidth)
		settings.Table.DescriptionWidth = minTableWidth
	}
	if settings.Digest.ContentMaxTokens < minContentMaxTokens {
		log.Printf("Warning: digest.content_max_tokens is %d, defaulting to %d (minimum)", settings.Digest.ContentMaxTokens, minContentMaxTokens)
		settings.Digest.ContentMaxTokens = minContentMaxTokens
	}

	return &settings, nil
}

// getConfigPath returns the path to a config file in the config directory
func getConfigPath(configDir, filename string) string {
	return filepath.Join(configDir, filename)
}

// ensureConfigExists creates the config directory and writes the default
// settings if they don't exist
func ensureConfigExists(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	settingsPath := getConfigPath(configDir, "settings.yaml")
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		if err := os.WriteFile(settingsPath, []byte(defaultSettings), 0644); err != nil {
			return fmt.Errorf("writing settings.yaml: %w", err)
		}
	}

	return nil
}
