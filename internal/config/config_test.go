// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "GITHUB_TOKEN", cfg.Tracker.TokenEnv)
	assert.Equal(t, 30, cfg.Tracker.TimeoutSeconds)
	assert.Equal(t, BackendFiles, cfg.Cache.Backend)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "General Development", cfg.Team.SprintFocus)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadAppliesDefaultsOverPartialFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "terry.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tracker:\n  repo: acme/widgets\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "acme/widgets", cfg.Tracker.Repo)
	// Unspecified keys still get defaults.
	assert.Equal(t, "GITHUB_TOKEN", cfg.Tracker.TokenEnv)
	assert.Equal(t, BackendFiles, cfg.Cache.Backend)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "terry.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tracker: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Tracker.Repo = "acme/widgets"
	cfg.Cache.Backend = BackendSQLite
	cfg.Cache.SQLitePath = "/var/lib/terry/terry.db"
	cfg.LLM.Model = "gpt-4o"

	path := filepath.Join(t.TempDir(), "nested", "terry.yaml")
	require.NoError(t, cfg.Save(path))

	// Tokens may end up in here, keep it private.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestToken(t *testing.T) {
	cfg := Default()
	cfg.Tracker.TokenEnv = "TERRY_TEST_TOKEN"
	t.Setenv("TERRY_TEST_TOKEN", "hunter2")
	assert.Equal(t, "hunter2", cfg.Token())
}

func TestOpenAIKeyPrecedence(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	cfg := Default()
	assert.Equal(t, "env-key", cfg.OpenAIKey())

	cfg.LLM.APIKey = "file-key"
	assert.Equal(t, "file-key", cfg.OpenAIKey())
}

func TestSet(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Set("tracker.repo", "acme/widgets"))
	require.NoError(t, cfg.Set("tracker.timeout_seconds", "45"))
	require.NoError(t, cfg.Set("cache.backend", "sqlite"))
	require.NoError(t, cfg.Set("llm.model", "gpt-4o"))

	assert.Equal(t, "acme/widgets", cfg.Tracker.Repo)
	assert.Equal(t, 45, cfg.Tracker.TimeoutSeconds)
	assert.Equal(t, BackendSQLite, cfg.Cache.Backend)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
}

func TestSetRejectsBadValues(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Error(t, cfg.Set("tracker.timeout_seconds", "soon"))
	assert.Error(t, cfg.Set("tracker.timeout_seconds", "-5"))
	assert.Error(t, cfg.Set("cache.backend", "redis"))
	assert.Error(t, cfg.Set("tracker.typo", "x"))
	assert.Error(t, cfg.Set("", "x"))
}
