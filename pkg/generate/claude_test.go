// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStreamResult(t *testing.T) {
	t.Parallel()

	output := `{"type": "system", "subtype": "init"}
{"type": "assistant", "message": {"content": "working on it"}}
{"type": "result", "result": "{\"title\": \"Scale Aurora\"}"}`

	result, err := parseStreamResult([]byte(output))
	require.NoError(t, err)
	assert.Equal(t, `{"title": "Scale Aurora"}`, result)
}

func TestParseStreamResultTakesLastResultLine(t *testing.T) {
	t.Parallel()

	output := `{"type": "result", "result": "stale"}
{"type": "result", "result": "final"}`

	result, err := parseStreamResult([]byte(output))
	require.NoError(t, err)
	assert.Equal(t, "final", result)
}

func TestParseStreamResultToleratesGarbageLines(t *testing.T) {
	t.Parallel()

	output := "warning: something on stderr leaked\n" +
		`{"type": "result", "result": "ok"}` + "\n" +
		"trailing garbage"

	result, err := parseStreamResult([]byte(output))
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
}

func TestParseStreamResultNoResult(t *testing.T) {
	t.Parallel()

	_, err := parseStreamResult([]byte(`{"type": "assistant"}`))
	assert.Error(t, err)

	_, err = parseStreamResult(nil)
	assert.Error(t, err)
}

func TestNewClaudeGeneratorDefaults(t *testing.T) {
	t.Parallel()

	gen := NewClaudeGenerator(nil)
	assert.Equal(t, defaultClaudeArgs, gen.args)

	custom := NewClaudeGenerator([]string{"-p"})
	assert.Equal(t, []string{"-p"}, custom.args)
}
