package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wayfare-app/wayfare/internal/config"
)

const baseConfig = `shutdown_timeout = "30s"
version = "0.1.0"

[server]
port = 8080
read_timeout = "15s"
write_timeout = "2m"
idle_timeout = "1m"

[database]
host = "localhost"
port = 5432
name = "wayfare"
user = "wayfare"
password = "wayfare"
ssl_mode = "disable"

[storage]
container_name = "journey-documents"
connection_string = "DefaultEndpointsProtocol=http;AccountName=wayfarestore;AccountKey=key;BlobEndpoint=http://127.0.0.1:10000/wayfarestore;"

[agent]
name = "timeline-agent"

[agent.provider]
name = "ollama"
base_url = "http://localhost:11434"

[agent.model]
name = "llama3.1:8b"

[api]
base_path = "/api"

[api.pagination]
default_page_size = 25
max_page_size = 50

[orchestrator]
confidence_threshold = 0.7
sweep_interval = "30s"
generation_timeout = "2m"

[collaborators]
news_url = "http://localhost:8090"
mail_url = "http://localhost:8091"
timeout = "1m"
since_days = 7
max_articles = 20
`

const overlayConfig = `[server]
port = 9090

[orchestrator]
confidence_threshold = 0.9
`

// minimalConfig provides the minimum fields required for validation to pass.
// Agent defaults fill in from go-agents DefaultAgentConfig().
const minimalConfig = `[database]
name = "wayfare"
user = "wayfare"

[storage]
connection_string = "conn"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "wayfare" {
		t.Errorf("database name: got %q, want wayfare", cfg.Database.Name)
	}
	if cfg.Storage.ContainerName != "journey-documents" {
		t.Errorf("container name: got %q", cfg.Storage.ContainerName)
	}
	if cfg.API.Pagination.DefaultPageSize != 25 {
		t.Errorf("default page size: got %d, want 25", cfg.API.Pagination.DefaultPageSize)
	}
	if cfg.Orchestrator.ConfidenceThreshold != 0.7 {
		t.Errorf("confidence threshold: got %g, want 0.7", cfg.Orchestrator.ConfidenceThreshold)
	}
	if cfg.Collaborators.NewsURL != "http://localhost:8090" {
		t.Errorf("news url: got %q", cfg.Collaborators.NewsURL)
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("shutdown timeout: got %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)
	t.Setenv("WAYFARE_ENV", "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want overlay 9090", cfg.Server.Port)
	}
	if cfg.Orchestrator.ConfidenceThreshold != 0.9 {
		t.Errorf("confidence threshold: got %g, want overlay 0.9", cfg.Orchestrator.ConfidenceThreshold)
	}
	if cfg.Database.Name != "wayfare" {
		t.Errorf("database name: got %q, base value should survive merge", cfg.Database.Name)
	}
	if cfg.Env() != "staging" {
		t.Errorf("env: got %q, want staging", cfg.Env())
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", minimalConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.ShutdownTimeout != "30s" {
		t.Errorf("shutdown timeout default: got %q, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server port default: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Orchestrator.ConfidenceThreshold != 0.7 {
		t.Errorf("confidence threshold default: got %g, want 0.7", cfg.Orchestrator.ConfidenceThreshold)
	}
	if cfg.Orchestrator.AllowPartialCoverage {
		t.Error("allow_partial_coverage should default to false")
	}
	if cfg.Orchestrator.SweepInterval != "30s" {
		t.Errorf("sweep interval default: got %q, want 30s", cfg.Orchestrator.SweepInterval)
	}
	if cfg.Collaborators.Timeout != "1m" {
		t.Errorf("collaborator timeout default: got %q, want 1m", cfg.Collaborators.Timeout)
	}
	if cfg.Collaborators.SinceDays != 7 {
		t.Errorf("since days default: got %d, want 7", cfg.Collaborators.SinceDays)
	}
	if cfg.Collaborators.RunIntervalDuration() != 0 {
		t.Errorf("run interval should default to disabled, got %v", cfg.Collaborators.RunIntervalDuration())
	}
	if cfg.Storage.ContainerName != "journey-documents" {
		t.Errorf("container name default: got %q", cfg.Storage.ContainerName)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("WAYFARE_DB_HOST", "envhost")
	t.Setenv("WAYFARE_ORCHESTRATOR_CONFIDENCE_THRESHOLD", "0.85")
	t.Setenv("WAYFARE_ORCHESTRATOR_ALLOW_PARTIAL_COVERAGE", "true")
	t.Setenv("WAYFARE_COLLABORATOR_RUN_INTERVAL", "15m")
	t.Setenv("WAYFARE_STORAGE_CONTAINER_NAME", "env-documents")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Database.Host != "envhost" {
		t.Errorf("database host: got %q, want envhost", cfg.Database.Host)
	}
	if cfg.Orchestrator.ConfidenceThreshold != 0.85 {
		t.Errorf("confidence threshold: got %g, want 0.85", cfg.Orchestrator.ConfidenceThreshold)
	}
	if !cfg.Orchestrator.AllowPartialCoverage {
		t.Error("allow_partial_coverage env override not applied")
	}
	if cfg.Collaborators.RunIntervalDuration() != 15*time.Minute {
		t.Errorf("run interval: got %v, want 15m", cfg.Collaborators.RunIntervalDuration())
	}
	if cfg.Storage.ContainerName != "env-documents" {
		t.Errorf("container name: got %q, want env-documents", cfg.Storage.ContainerName)
	}
}

func TestLoadValidation(t *testing.T) {
	t.Run("invalid confidence threshold rejected", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "config.toml", minimalConfig+`
[orchestrator]
confidence_threshold = 1.5
`)
		chdir(t, dir)

		_, err := config.Load()
		if err == nil || !strings.Contains(err.Error(), "confidence_threshold") {
			t.Errorf("err = %v, want confidence_threshold validation error", err)
		}
	})

	t.Run("missing database name rejected", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "config.toml", `[storage]
connection_string = "conn"
`)
		chdir(t, dir)

		_, err := config.Load()
		if err == nil {
			t.Error("expected validation error for missing database name")
		}
	})

	t.Run("invalid sweep interval rejected", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "config.toml", minimalConfig+`
[orchestrator]
sweep_interval = "often"
`)
		chdir(t, dir)

		_, err := config.Load()
		if err == nil || !strings.Contains(err.Error(), "sweep_interval") {
			t.Errorf("err = %v, want sweep_interval validation error", err)
		}
	})
}
