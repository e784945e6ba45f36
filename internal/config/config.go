// Package config loads console configuration from TOML with environment
// overlays. Each subsystem owns its section; this package composes them
// and drives the defaults → env → validate finalization.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/contractiq/console/internal/chat"
	"github.com/contractiq/console/internal/history"
	"github.com/contractiq/console/internal/pipeline"
	"github.com/contractiq/console/internal/service"
	"github.com/contractiq/console/pkg/pagination"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvConsoleEnv             = "CONTRACTIQ_ENV"
	EnvConsoleShutdownTimeout = "CONTRACTIQ_SHUTDOWN_TIMEOUT"
	EnvConsoleVersion         = "CONTRACTIQ_VERSION"
)

var serviceEnv = &service.Env{
	BaseURL:        "CONTRACTIQ_SERVICE_BASE_URL",
	Timeout:        "CONTRACTIQ_SERVICE_TIMEOUT",
	ExtractTimeout: "CONTRACTIQ_SERVICE_EXTRACT_TIMEOUT",
}

var pipelineEnv = &pipeline.Env{
	MaxUploadSize: "CONTRACTIQ_PIPELINE_MAX_UPLOAD_SIZE",
}

var chatEnv = &chat.Env{
	HistoryLimit:   "CONTRACTIQ_CHAT_HISTORY_LIMIT",
	MaxQueryLength: "CONTRACTIQ_CHAT_MAX_QUERY_LENGTH",
}

var historyEnv = &history.Env{
	Path: "CONTRACTIQ_HISTORY_PATH",
	Pagination: &pagination.ConfigEnv{
		DefaultPageSize: "CONTRACTIQ_HISTORY_DEFAULT_PAGE_SIZE",
		MaxPageSize:     "CONTRACTIQ_HISTORY_MAX_PAGE_SIZE",
	},
}

// Config is the root configuration for the console.
type Config struct {
	Service         service.Config  `toml:"service"`
	Pipeline        pipeline.Config `toml:"pipeline"`
	Chat            chat.Config     `toml:"chat"`
	History         history.Config  `toml:"history"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the CONTRACTIQ_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvConsoleEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment
// overlay, and finalizes all values. If no config.toml exists, defaults
// and environment variables provide all configuration.
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

	if err := cfg.Finalize(); err != nil {
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
	c.Service.Merge(&overlay.Service)
	c.Pipeline.Merge(&overlay.Pipeline)
	c.Chat.Merge(&overlay.Chat)
	c.History.Merge(&overlay.History)
}

// Finalize applies defaults, environment variable overrides, and
// validation across all sections.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Service.Finalize(serviceEnv); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	if err := c.Pipeline.Finalize(pipelineEnv); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := c.Chat.Finalize(chatEnv); err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	if err := c.History.Finalize(historyEnv); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "10s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvConsoleShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvConsoleVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
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
	if env := os.Getenv(EnvConsoleEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
