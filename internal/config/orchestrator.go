package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvOrchestratorConfidenceThreshold  = "WAYFARE_ORCHESTRATOR_CONFIDENCE_THRESHOLD"
	EnvOrchestratorAllowPartialCoverage = "WAYFARE_ORCHESTRATOR_ALLOW_PARTIAL_COVERAGE"
	EnvOrchestratorShiftStartDates      = "WAYFARE_ORCHESTRATOR_SHIFT_START_DATES"
	EnvOrchestratorSweepInterval        = "WAYFARE_ORCHESTRATOR_SWEEP_INTERVAL"
	EnvOrchestratorGenerationTimeout    = "WAYFARE_ORCHESTRATOR_GENERATION_TIMEOUT"
)

// OrchestratorConfig holds the policy knobs for journey event evaluation and
// timeline generation.
type OrchestratorConfig struct {
	// ConfidenceThreshold is the minimum proposal confidence required before a
	// timeline edit is applied. Proposals below the threshold are ignored.
	ConfidenceThreshold float64 `toml:"confidence_threshold"`

	// AllowPartialCoverage permits timeline generation before every required
	// process area has at least one parsed document.
	AllowPartialCoverage bool `toml:"allow_partial_coverage"`

	// ShiftStartDates extends timeline shifts to step start dates in addition
	// to end dates.
	ShiftStartDates bool `toml:"shift_start_dates"`

	// SweepInterval controls how often the background sweeper picks up pending
	// journey events. Empty disables the sweeper.
	SweepInterval string `toml:"sweep_interval"`

	// GenerationTimeout bounds a single timeline generation run.
	GenerationTimeout string `toml:"generation_timeout"`
}

// SweepIntervalDuration returns SweepInterval as a time.Duration. Zero means
// the sweeper is disabled.
func (c *OrchestratorConfig) SweepIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.SweepInterval)
	return d
}

// GenerationTimeoutDuration returns GenerationTimeout as a time.Duration.
func (c *OrchestratorConfig) GenerationTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.GenerationTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *OrchestratorConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites fields from overlay. Boolean fields always apply; other
// fields only apply when set.
func (c *OrchestratorConfig) Merge(overlay *OrchestratorConfig) {
	c.AllowPartialCoverage = overlay.AllowPartialCoverage
	c.ShiftStartDates = overlay.ShiftStartDates

	if overlay.ConfidenceThreshold != 0 {
		c.ConfidenceThreshold = overlay.ConfidenceThreshold
	}
	if overlay.SweepInterval != "" {
		c.SweepInterval = overlay.SweepInterval
	}
	if overlay.GenerationTimeout != "" {
		c.GenerationTimeout = overlay.GenerationTimeout
	}
}

func (c *OrchestratorConfig) loadDefaults() {
	if c.ConfidenceThreshold == 0 {
		c.ConfidenceThreshold = 0.7
	}
	if c.SweepInterval == "" {
		c.SweepInterval = "30s"
	}
	if c.GenerationTimeout == "" {
		c.GenerationTimeout = "2m"
	}
}

func (c *OrchestratorConfig) loadEnv() {
	if v := os.Getenv(EnvOrchestratorConfidenceThreshold); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.ConfidenceThreshold = f
		}
	}
	if v := os.Getenv(EnvOrchestratorAllowPartialCoverage); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AllowPartialCoverage = b
		}
	}
	if v := os.Getenv(EnvOrchestratorShiftStartDates); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.ShiftStartDates = b
		}
	}
	if v := os.Getenv(EnvOrchestratorSweepInterval); v != "" {
		c.SweepInterval = v
	}
	if v := os.Getenv(EnvOrchestratorGenerationTimeout); v != "" {
		c.GenerationTimeout = v
	}
}

func (c *OrchestratorConfig) validate() error {
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold must be in [0, 1]: %g", c.ConfidenceThreshold)
	}
	if _, err := time.ParseDuration(c.SweepInterval); err != nil {
		return fmt.Errorf("invalid sweep_interval: %w", err)
	}
	if _, err := time.ParseDuration(c.GenerationTimeout); err != nil {
		return fmt.Errorf("invalid generation_timeout: %w", err)
	}
	return nil
}
