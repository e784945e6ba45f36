package chat

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds conversation parameters.
type Config struct {
	HistoryLimit   int `toml:"history_limit"`
	MaxQueryLength int `toml:"max_query_length"`
}

// Env maps environment variable names for chat configuration.
type Env struct {
	HistoryLimit   string
	MaxQueryLength string
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
	if overlay.HistoryLimit != 0 {
		c.HistoryLimit = overlay.HistoryLimit
	}
	if overlay.MaxQueryLength != 0 {
		c.MaxQueryLength = overlay.MaxQueryLength
	}
}

func (c *Config) loadDefaults() {
	if c.HistoryLimit == 0 {
		c.HistoryLimit = 10
	}
	// the service schema caps queries at 500 characters
	if c.MaxQueryLength == 0 {
		c.MaxQueryLength = 500
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := os.Getenv(env.HistoryLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.HistoryLimit = n
		}
	}
	if v := os.Getenv(env.MaxQueryLength); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxQueryLength = n
		}
	}
}

func (c *Config) validate() error {
	if c.HistoryLimit < 1 {
		return fmt.Errorf("history_limit must be positive")
	}
	if c.MaxQueryLength < 1 {
		return fmt.Errorf("max_query_length must be positive")
	}
	return nil
}
