package history

import (
	"fmt"
	"os"

	"github.com/contractiq/console/pkg/pagination"
)

// Config holds local history store parameters.
type Config struct {
	Path       string            `toml:"path"`
	Pagination pagination.Config `toml:"pagination"`
}

// Env maps environment variable names for history configuration.
type Env struct {
	Path       string
	Pagination *pagination.ConfigEnv
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	var pageEnv *pagination.ConfigEnv
	if env != nil {
		c.loadEnv(env)
		pageEnv = env.Pagination
	}
	if err := c.Pagination.Finalize(pageEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *Config) loadDefaults() {
	if c.Path == "" {
		c.Path = "history.db"
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := os.Getenv(env.Path); v != "" {
		c.Path = v
	}
}

func (c *Config) validate() error {
	if c.Path == "" {
		return fmt.Errorf("path must not be empty")
	}
	return nil
}
