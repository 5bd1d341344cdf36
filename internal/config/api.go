package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/wayfare-app/wayfare/pkg/formatting"
	"github.com/wayfare-app/wayfare/pkg/middleware"
	"github.com/wayfare-app/wayfare/pkg/pagination"
)

const (
	EnvAPIBasePath      = "WAYFARE_API_BASE_PATH"
	EnvAPIMaxUploadSize = "WAYFARE_API_MAX_UPLOAD_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "WAYFARE_CORS_ENABLED",
	Origins:          "WAYFARE_CORS_ORIGINS",
	AllowedMethods:   "WAYFARE_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "WAYFARE_CORS_ALLOWED_HEADERS",
	AllowCredentials: "WAYFARE_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "WAYFARE_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "WAYFARE_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "WAYFARE_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds settings for the API module surface.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
}

// MaxUploadBytes returns MaxUploadSize as a byte count.
func (c *APIConfig) MaxUploadBytes() int64 {
	size, _ := formatting.ParseBytes(c.MaxUploadSize)
	return size
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must begin with /: %s", c.BasePath)
	}
	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "25MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
}
