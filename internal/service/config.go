package service

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds connection parameters for the analysis service.
type Config struct {
	BaseURL        string `toml:"base_url"`
	Timeout        string `toml:"timeout"`
	ExtractTimeout string `toml:"extract_timeout"`
}

// Env maps environment variable names for service configuration.
type Env struct {
	BaseURL        string
	Timeout        string
	ExtractTimeout string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// ExtractTimeoutDuration returns ExtractTimeout as a time.Duration.
// Clause extraction is the dominant-latency call and carries its own
// ceiling, far above the general call timeout.
func (c *Config) ExtractTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ExtractTimeout)
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
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.ExtractTimeout != "" {
		c.ExtractTimeout = overlay.ExtractTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8000"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.ExtractTimeout == "" {
		c.ExtractTimeout = "5m"
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := os.Getenv(env.BaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(env.Timeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(env.ExtractTimeout); v != "" {
		c.ExtractTimeout = v
	}
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url: %q", c.BaseURL)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.ExtractTimeout); err != nil {
		return fmt.Errorf("invalid extract_timeout: %w", err)
	}
	return nil
}
