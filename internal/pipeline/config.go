package pipeline

import (
	"fmt"
	"os"
	"time"

	"github.com/contractiq/console/pkg/formatting"
)

// Config holds run parameters: the upload ceiling and the pacing dwell
// budgets that keep each stage visible even when calls return instantly.
type Config struct {
	MaxUploadSize string `toml:"max_upload_size"`
	DwellUpload   string `toml:"dwell_upload"`
	DwellExtract  string `toml:"dwell_extract"`
	DwellRisk     string `toml:"dwell_risk"`
	DwellComplete string `toml:"dwell_complete"`
}

// Env maps environment variable names for pipeline configuration.
type Env struct {
	MaxUploadSize string
}

// MaxUploadBytes returns the parsed upload size ceiling.
func (c *Config) MaxUploadBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxUploadSize)
	return n
}

// Dwell durations. Invalid values were rejected in Finalize.

func (c *Config) DwellUploadDuration() time.Duration   { return duration(c.DwellUpload) }
func (c *Config) DwellExtractDuration() time.Duration  { return duration(c.DwellExtract) }
func (c *Config) DwellRiskDuration() time.Duration     { return duration(c.DwellRisk) }
func (c *Config) DwellCompleteDuration() time.Duration { return duration(c.DwellComplete) }

func duration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.DwellUpload != "" {
		c.DwellUpload = overlay.DwellUpload
	}
	if overlay.DwellExtract != "" {
		c.DwellExtract = overlay.DwellExtract
	}
	if overlay.DwellRisk != "" {
		c.DwellRisk = overlay.DwellRisk
	}
	if overlay.DwellComplete != "" {
		c.DwellComplete = overlay.DwellComplete
	}
}

func (c *Config) loadDefaults() {
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
	if c.DwellUpload == "" {
		c.DwellUpload = "1s"
	}
	if c.DwellExtract == "" {
		c.DwellExtract = "2s"
	}
	if c.DwellRisk == "" {
		c.DwellRisk = "2s"
	}
	if c.DwellComplete == "" {
		c.DwellComplete = "1s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := os.Getenv(env.MaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
}

func (c *Config) validate() error {
	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	for name, v := range map[string]string{
		"dwell_upload":   c.DwellUpload,
		"dwell_extract":  c.DwellExtract,
		"dwell_risk":     c.DwellRisk,
		"dwell_complete": c.DwellComplete,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}
