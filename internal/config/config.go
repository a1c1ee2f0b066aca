// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config holds terry's settings. The CLI constructs one Config
// at process start and threads it into the tracker, cache, and
// generation constructors; nothing reads configuration ambiently.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration file. All keys are optional;
// applyDefaults fills the gaps.
type Config struct {
	Tracker TrackerConfig `yaml:"tracker"`
	Cache   CacheConfig   `yaml:"cache"`
	LLM     LLMConfig     `yaml:"llm"`
	Team    TeamConfig    `yaml:"team"`
}

// TrackerConfig configures the remote issue tracker.
type TrackerConfig struct {
	// Repo is the GitHub owner/repo issues are created in.
	Repo string `yaml:"repo"`

	// TokenEnv names the environment variable holding the API token
	// (default "GITHUB_TOKEN"). The token itself never lives in the
	// config file.
	TokenEnv string `yaml:"token_env"`

	// APIBase overrides the API endpoint, e.g. for GitHub Enterprise.
	APIBase string `yaml:"api_base,omitempty"`

	// TimeoutSeconds bounds one submission attempt (default 30).
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// CacheConfig configures the durable cache for undelivered tickets.
type CacheConfig struct {
	// Backend is "files" (one JSON file per entry) or "sqlite".
	Backend string `yaml:"backend"`

	// Dir is the entry directory for the files backend.
	Dir string `yaml:"dir"`

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `yaml:"sqlite_path"`
}

// LLMConfig configures the generation service.
type LLMConfig struct {
	// Provider is "openai" or "claude".
	Provider string `yaml:"provider"`

	// Model is the model identifier for the openai provider.
	Model string `yaml:"model"`

	// APIKey is the openai key; falls back to OPENAI_API_KEY.
	APIKey string `yaml:"api_key,omitempty"`

	// APIBase overrides the openai endpoint for compatible servers.
	APIBase string `yaml:"api_base,omitempty"`
}

// TeamConfig carries team context included in saved ticket files.
type TeamConfig struct {
	SprintFocus       string `yaml:"sprint_focus"`
	QuarterObjectives string `yaml:"quarter_objectives"`
}

// Cache backends.
const (
	BackendFiles  = "files"
	BackendSQLite = "sqlite"
)

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".terry.yaml"
	}
	return filepath.Join(home, ".terry.yaml")
}

func (c *Config) applyDefaults() {
	if c.Tracker.TokenEnv == "" {
		c.Tracker.TokenEnv = "GITHUB_TOKEN"
	}
	if c.Tracker.TimeoutSeconds == 0 {
		c.Tracker.TimeoutSeconds = 30
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendFiles
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.Team.SprintFocus == "" {
		c.Team.SprintFocus = "General Development"
	}
	if c.Team.QuarterObjectives == "" {
		c.Team.QuarterObjectives = "Improve Product Quality"
	}
}

// Default returns a Config with every default applied.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// Load reads the config file at path. A missing file yields the
// defaults without error, matching first-run behavior; the CLI then
// writes the file so the operator has something to edit.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config as YAML to path, creating parent directories.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Token resolves the tracker API token from the configured environment
// variable.
func (c Config) Token() string {
	return os.Getenv(c.Tracker.TokenEnv)
}

// Timeout returns the tracker attempt bound as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Tracker.TimeoutSeconds) * time.Second
}

// OpenAIKey resolves the generation API key: config value first, then
// the OPENAI_API_KEY environment variable.
func (c Config) OpenAIKey() string {
	if c.LLM.APIKey != "" {
		return c.LLM.APIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}

// Set updates one dotted key (e.g. "tracker.repo") to value. Unknown
// keys are an error so typos surface instead of silently vanishing.
func (c *Config) Set(key, value string) error {
	switch key {
	case "tracker.repo":
		c.Tracker.Repo = value
	case "tracker.token_env":
		c.Tracker.TokenEnv = value
	case "tracker.api_base":
		c.Tracker.APIBase = value
	case "tracker.timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("tracker.timeout_seconds must be a positive integer, got %q", value)
		}
		c.Tracker.TimeoutSeconds = n
	case "cache.backend":
		if value != BackendFiles && value != BackendSQLite {
			return fmt.Errorf("cache.backend must be %q or %q, got %q", BackendFiles, BackendSQLite, value)
		}
		c.Cache.Backend = value
	case "cache.dir":
		c.Cache.Dir = value
	case "cache.sqlite_path":
		c.Cache.SQLitePath = value
	case "llm.provider":
		c.LLM.Provider = value
	case "llm.model":
		c.LLM.Model = value
	case "llm.api_key":
		c.LLM.APIKey = value
	case "llm.api_base":
		c.LLM.APIBase = value
	case "team.sprint_focus":
		c.Team.SprintFocus = value
	case "team.quarter_objectives":
		c.Team.QuarterObjectives = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}
