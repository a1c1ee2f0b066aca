// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package cli

import (
	"path/filepath"

	"github.com/mesh-intelligence/terry/internal/config"
	"github.com/mesh-intelligence/terry/internal/logging"
	"github.com/mesh-intelligence/terry/pkg/cache"
	"github.com/mesh-intelligence/terry/pkg/generate"
	"github.com/mesh-intelligence/terry/pkg/tracker"
)

// newStore constructs the configured cache backend.
func newStore(cfg config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case config.BackendSQLite:
		path := cfg.Cache.SQLitePath
		if path == "" {
			path = filepath.Join(cache.DefaultDir(), "terry.db")
		}
		return cache.NewSQLiteStore(path)
	default:
		return cache.NewFileStore(cfg.Cache.Dir)
	}
}

// newTracker constructs the tracker client, failing fast on missing
// repo or token: submitting without credentials is always fatal, never
// retryable.
func newTracker(cfg config.Config) (tracker.Client, error) {
	if cfg.Tracker.Repo == "" {
		return nil, WrapExitError(ExitFailure,
			"no tracker repo configured: run `terry config set tracker.repo=owner/repo`", nil)
	}
	token := cfg.Token()
	if token == "" {
		return nil, WrapExitError(ExitFailure,
			"no tracker token: set the "+cfg.Tracker.TokenEnv+" environment variable", nil)
	}
	return tracker.NewGitHubClient(cfg.Tracker.Repo, token, cfg.Tracker.APIBase, cfg.Timeout()), nil
}

// newGenerator constructs the configured generation provider. An
// unknown provider falls back to openai with a logged warning.
func newGenerator(cfg config.Config) generate.Generator {
	switch cfg.LLM.Provider {
	case "claude":
		return generate.NewClaudeGenerator(nil)
	case "openai":
	default:
		logging.Logf("cli: unknown llm provider %q, defaulting to openai", cfg.LLM.Provider)
	}
	return generate.NewOpenAIGenerator(cfg.OpenAIKey(), cfg.LLM.Model, cfg.LLM.APIBase, 0)
}
