// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/terry/pkg/ticket"
)

// runTerry executes the root command with args, returning combined
// output and the command error.
func runTerry(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeTestConfig writes a config file pointing the tracker at url and
// the cache at its own directory, and returns the config path.
func writeTestConfig(t *testing.T, url string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "terry.yaml")
	content := fmt.Sprintf(`tracker:
  repo: acme/widgets
  api_base: %s
  timeout_seconds: 2
cache:
  backend: files
  dir: %s
`, url, filepath.Join(dir, "cache"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// flakyTracker serves 503 until healed, then creates issues.
type flakyTracker struct {
	mu      sync.Mutex
	healthy bool
	created int
}

func (ft *flakyTracker) heal() {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.healthy = true
}

func (ft *flakyTracker) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ft.mu.Lock()
		defer ft.mu.Unlock()
		if !ft.healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			io.WriteString(w, `{"message": "down for maintenance"}`)
			return
		}
		ft.created++
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"number": %d, "html_url": "https://github.com/acme/widgets/issues/%d"}`,
			ft.created, ft.created)
	}
}

// TestOutageToRecovery walks the full degraded-mode loop: a submission
// during an outage lands in the cache, a later retry delivers it, and
// the cache ends up empty.
func TestOutageToRecovery(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "test-token")

	ft := &flakyTracker{}
	srv := httptest.NewServer(ft.handler())
	defer srv.Close()
	cfgPath := writeTestConfig(t, srv.URL)

	// Outage: the ticket must survive as a cache entry, and the command
	// must still succeed.
	out, err := runTerry(t, "--config", cfgPath,
		"create", "Scale Aurora", "Aurora is on fire.", "--priority", "p0")
	require.NoError(t, err, "saved-for-retry is a success, not a failure")
	assert.Contains(t, out, "Tracker unavailable")
	assert.Contains(t, out, "saved for retry")

	out, err = runTerry(t, "--config", cfgPath, "cache", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Scale Aurora")
	assert.Contains(t, out, "P0")

	// Recovery: one retry pass drains the cache.
	ft.heal()
	out, err = runTerry(t, "--config", cfgPath, "cache", "retry", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "delivered")
	assert.Contains(t, out, "1 delivered, 0 pending, 0 need intervention")

	out, err = runTerry(t, "--config", cfgPath, "cache", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No cached tickets.")
}

func TestCreateDeliversWhenTrackerHealthy(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "test-token")

	ft := &flakyTracker{}
	ft.heal()
	srv := httptest.NewServer(ft.handler())
	defer srv.Close()
	cfgPath := writeTestConfig(t, srv.URL)

	out, err := runTerry(t, "--config", cfgPath, "create", "Scale Aurora")
	require.NoError(t, err)
	assert.Contains(t, out, "Issue created")
	assert.Contains(t, out, "issues/1")

	// Nothing cached on a clean delivery.
	out, err = runTerry(t, "--config", cfgPath, "cache", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No cached tickets.")
}

func TestCreateFatalIsNotCached(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "bad-token")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message": "Bad credentials"}`)
	}))
	defer srv.Close()
	cfgPath := writeTestConfig(t, srv.URL)

	_, err := runTerry(t, "--config", cfgPath, "create", "Scale Aurora")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out, err := runTerry(t, "--config", cfgPath, "cache", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No cached tickets.", "fatal failures are never cached")
}

func TestCreateNoTrackerJSON(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "unused")
	cfgPath := writeTestConfig(t, "http://127.0.0.1:0")

	out, err := runTerry(t, "--config", cfgPath, "--format", "json",
		"create", "Scale Aurora", "Aurora is on fire.",
		"--priority", "p1",
		"--impact-area", "Infrastructure",
		"--criterion", "Cluster survives 10x load",
		"--no-tracker")
	require.NoError(t, err)

	var rec ticket.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "Scale Aurora", rec.Title)
	assert.Equal(t, ticket.PriorityP1, rec.Priority)
	assert.Equal(t, []string{"Infrastructure"}, rec.ImpactAreas)
	assert.Equal(t, []string{"Cluster survives 10x load"}, rec.AcceptanceCriteria)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestCreateDerivesPriorityFromScores(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "unused")
	cfgPath := writeTestConfig(t, "http://127.0.0.1:0")

	out, err := runTerry(t, "--config", cfgPath, "--format", "json",
		"create", "Print more money",
		"--revenue", "100", "--user-impact", "100",
		"--complexity", "0", "--alignment", "100",
		"--no-tracker")
	require.NoError(t, err)

	var rec ticket.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, ticket.PriorityP0, rec.Priority)
	assert.Equal(t, []string{ticket.AreaCoreProduct}, rec.ImpactAreas)
}

func TestRetryRequiresExactlyOneSelector(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "unused")
	cfgPath := writeTestConfig(t, "http://127.0.0.1:0")

	_, err := runTerry(t, "--config", cfgPath, "cache", "retry")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = runTerry(t, "--config", cfgPath, "cache", "retry", "--id", "x", "--all")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRetryUnknownEntry(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "test-token")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()
	cfgPath := writeTestConfig(t, srv.URL)

	out, err := runTerry(t, "--config", cfgPath, "cache", "retry", "--id", "no-such-entry")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "not found in cache")
}

func TestInvalidFormatFlag(t *testing.T) {
	cfgPath := writeTestConfig(t, "http://127.0.0.1:0")

	_, err := runTerry(t, "--config", cfgPath, "--format", "xml", "cache", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestMissingRepoConfiguration(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "test-token")

	// A config with no tracker repo: submission must fail fast with
	// guidance, not reach the network.
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "terry.yaml")
	require.NoError(t, os.WriteFile(cfgPath,
		[]byte("cache:\n  dir: "+filepath.Join(dir, "cache")+"\n"), 0o600))

	_, err := runTerry(t, "--config", cfgPath, "create", "Scale Aurora")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "tracker.repo")
}

func TestConfigSetAndView(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "terry.yaml")

	_, err := runTerry(t, "--config", cfgPath,
		"config", "set", "tracker.repo=acme/widgets", "cache.backend=sqlite")
	require.NoError(t, err)

	out, err := runTerry(t, "--config", cfgPath, "config", "view")
	require.NoError(t, err)
	assert.Contains(t, out, "repo: acme/widgets")
	assert.Contains(t, out, "backend: sqlite")
}

func TestConfigSetRejectsUnknownKey(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "terry.yaml")

	_, err := runTerry(t, "--config", cfgPath, "config", "set", "tracker.typo=x")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestFirstRunWritesConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "terry.yaml")

	_, err := runTerry(t, "--config", cfgPath, "config", "view")
	require.NoError(t, err)

	_, statErr := os.Stat(cfgPath)
	assert.NoError(t, statErr, "first run persists the defaults")
}

func TestLogFileFlagCapturesDiagnostics(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "test-token")
	cfgPath := writeTestConfig(t, "http://127.0.0.1:0")
	logPath := filepath.Join(t.TempDir(), "terry.log")

	// An empty-cache retry pass exercises the coordinator's logging
	// without touching the network.
	_, err := runTerry(t, "--config", cfgPath, "--log-file", logPath,
		"cache", "retry", "--all")
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "retryAll: 0 pending")
}

func TestCreateWritesTicketFile(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "unused")
	cfgPath := writeTestConfig(t, "http://127.0.0.1:0")
	outPath := filepath.Join(t.TempDir(), "ticket.yaml")

	_, err := runTerry(t, "--config", cfgPath,
		"create", "Scale Aurora", "--priority", "p2", "--no-tracker",
		"--output", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: Scale Aurora")
	assert.Contains(t, string(data), "team_context:")
}
