package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/wayfare-app/wayfare/pkg/database"
	"github.com/wayfare-app/wayfare/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvWayfareEnv             = "WAYFARE_ENV"
	EnvWayfareShutdownTimeout = "WAYFARE_SHUTDOWN_TIMEOUT"
	EnvWayfareVersion         = "WAYFARE_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "WAYFARE_DB_HOST",
	Port:            "WAYFARE_DB_PORT",
	Name:            "WAYFARE_DB_NAME",
	User:            "WAYFARE_DB_USER",
	Password:        "WAYFARE_DB_PASSWORD",
	SSLMode:         "WAYFARE_DB_SSL_MODE",
	MaxOpenConns:    "WAYFARE_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "WAYFARE_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "WAYFARE_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "WAYFARE_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "WAYFARE_STORAGE_CONTAINER_NAME",
	ConnectionString: "WAYFARE_STORAGE_CONNECTION_STRING",
}

// Config is the root configuration for the Wayfare service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	Database        database.Config      `toml:"database"`
	Storage         storage.Config       `toml:"storage"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	API             APIConfig            `toml:"api"`
	Orchestrator    OrchestratorConfig   `toml:"orchestrator"`
	Collaborators   CollaboratorsConfig  `toml:"collaborators"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the WAYFARE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvWayfareEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and
// environment variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Orchestrator.Merge(&overlay.Orchestrator)
	c.Collaborators.Merge(&overlay.Collaborators)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Orchestrator.Finalize(); err != nil {
		return fmt.Errorf("orchestrator: %w", err)
	}
	if err := c.Collaborators.Finalize(); err != nil {
		return fmt.Errorf("collaborators: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvWayfareShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvWayfareVersion); v != "" {
		c.Version = v
	}
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvWayfareEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
