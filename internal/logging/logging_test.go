// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkReceivesLinesRegardlessOfVerbosity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terry.log")
	require.NoError(t, OpenSink(path))
	defer CloseSink()

	SetVerbose(false)
	Logf("cache: stored entry %s", "abc-123")
	Logf("retry: %d pending", 2)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "terry: cache: stored entry abc-123")
	assert.Contains(t, string(data), "terry: retry: 2 pending")
}

func TestOpenSinkReplacesPrevious(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	require.NoError(t, OpenSink(first))
	Logf("goes to first")
	require.NoError(t, OpenSink(second))
	Logf("goes to second")
	CloseSink()

	firstData, err := os.ReadFile(first)
	require.NoError(t, err)
	secondData, err := os.ReadFile(second)
	require.NoError(t, err)

	assert.Contains(t, string(firstData), "goes to first")
	assert.NotContains(t, string(firstData), "goes to second")
	assert.Contains(t, string(secondData), "goes to second")
}
