package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvCollaboratorNewsURL     = "WAYFARE_COLLABORATOR_NEWS_URL"
	EnvCollaboratorMailURL     = "WAYFARE_COLLABORATOR_MAIL_URL"
	EnvCollaboratorDocumentURL = "WAYFARE_COLLABORATOR_DOCUMENT_URL"
	EnvCollaboratorTimeout     = "WAYFARE_COLLABORATOR_TIMEOUT"
	EnvCollaboratorRunInterval = "WAYFARE_COLLABORATOR_RUN_INTERVAL"
	EnvCollaboratorSinceDays   = "WAYFARE_COLLABORATOR_SINCE_DAYS"
	EnvCollaboratorMaxArticles = "WAYFARE_COLLABORATOR_MAX_ARTICLES"
	EnvCollaboratorDisableLLM  = "WAYFARE_COLLABORATOR_DISABLE_LLM"
)

// CollaboratorsConfig holds endpoints and policy for the external collector
// services the agent runner calls: the news watcher, the mailbox agent, and
// the document extraction service.
type CollaboratorsConfig struct {
	NewsURL     string `toml:"news_url"`
	MailURL     string `toml:"mail_url"`
	DocumentURL string `toml:"document_url"`

	// Timeout bounds a single collaborator HTTP call.
	Timeout string `toml:"timeout"`

	// RunInterval controls how often the scheduled agent runner fires. Empty
	// disables scheduled runs; manual runs stay available.
	RunInterval string `toml:"run_interval"`

	// SinceDays is the lookback window passed to the news collector.
	SinceDays int `toml:"since_days"`

	// MaxArticles caps articles per news collector call.
	MaxArticles int `toml:"max_articles"`

	// DisableLLM turns off LLM relevance filtering in the news collector.
	DisableLLM bool `toml:"disable_llm"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *CollaboratorsConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// RunIntervalDuration returns RunInterval as a time.Duration. Zero means
// scheduled runs are disabled.
func (c *CollaboratorsConfig) RunIntervalDuration() time.Duration {
	if c.RunInterval == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.RunInterval)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *CollaboratorsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites fields from overlay. DisableLLM always applies; other
// fields only apply when set.
func (c *CollaboratorsConfig) Merge(overlay *CollaboratorsConfig) {
	c.DisableLLM = overlay.DisableLLM

	if overlay.NewsURL != "" {
		c.NewsURL = overlay.NewsURL
	}
	if overlay.MailURL != "" {
		c.MailURL = overlay.MailURL
	}
	if overlay.DocumentURL != "" {
		c.DocumentURL = overlay.DocumentURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.RunInterval != "" {
		c.RunInterval = overlay.RunInterval
	}
	if overlay.SinceDays != 0 {
		c.SinceDays = overlay.SinceDays
	}
	if overlay.MaxArticles != 0 {
		c.MaxArticles = overlay.MaxArticles
	}
}

func (c *CollaboratorsConfig) loadDefaults() {
	if c.Timeout == "" {
		c.Timeout = "1m"
	}
	if c.SinceDays == 0 {
		c.SinceDays = 7
	}
	if c.MaxArticles == 0 {
		c.MaxArticles = 20
	}
}

func (c *CollaboratorsConfig) loadEnv() {
	if v := os.Getenv(EnvCollaboratorNewsURL); v != "" {
		c.NewsURL = v
	}
	if v := os.Getenv(EnvCollaboratorMailURL); v != "" {
		c.MailURL = v
	}
	if v := os.Getenv(EnvCollaboratorDocumentURL); v != "" {
		c.DocumentURL = v
	}
	if v := os.Getenv(EnvCollaboratorTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvCollaboratorRunInterval); v != "" {
		c.RunInterval = v
	}
	if v := os.Getenv(EnvCollaboratorSinceDays); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SinceDays = n
		}
	}
	if v := os.Getenv(EnvCollaboratorMaxArticles); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxArticles = n
		}
	}
	if v := os.Getenv(EnvCollaboratorDisableLLM); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.DisableLLM = b
		}
	}
}

func (c *CollaboratorsConfig) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if c.RunInterval != "" {
		if _, err := time.ParseDuration(c.RunInterval); err != nil {
			return fmt.Errorf("invalid run_interval: %w", err)
		}
	}
	if c.SinceDays < 1 {
		return fmt.Errorf("since_days must be positive: %d", c.SinceDays)
	}
	if c.MaxArticles < 1 {
		return fmt.Errorf("max_articles must be positive: %d", c.MaxArticles)
	}
	return nil
}
