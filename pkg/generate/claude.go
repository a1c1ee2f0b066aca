// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mesh-intelligence/terry/internal/logging"
	"github.com/mesh-intelligence/terry/pkg/ticket"
)

const binClaude = "claude"

// defaultClaudeArgs run claude non-interactively with machine-readable
// output. The final stream-json line carries the result text.
var defaultClaudeArgs = []string{
	"-p",
	"--output-format", "stream-json",
	"--verbose",
}

// ClaudeGenerator extracts ticket fields by invoking the claude CLI as
// a subprocess, for operators without an API key but with a local
// claude install.
type ClaudeGenerator struct {
	args []string
}

// NewClaudeGenerator returns a generator. args may be nil for the
// default automated flags.
func NewClaudeGenerator(args []string) *ClaudeGenerator {
	if len(args) == 0 {
		args = defaultClaudeArgs
	}
	return &ClaudeGenerator{args: args}
}

// Generate runs claude with the extraction prompt on stdin and parses
// the ticket JSON out of the final result line.
func (g *ClaudeGenerator) Generate(ctx context.Context, text string) (ticket.RawFields, error) {
	if _, err := exec.LookPath(binClaude); err != nil {
		return ticket.RawFields{}, fmt.Errorf("claude binary not found: %w", err)
	}

	cmd := exec.CommandContext(ctx, binClaude, g.args...)
	cmd.Stdin = strings.NewReader(buildPrompt(text))

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	logging.Logf("generate: exec %s %v", binClaude, g.args)
	if err := cmd.Run(); err != nil {
		return ticket.RawFields{}, fmt.Errorf("running claude: %w", err)
	}

	result, err := parseStreamResult(stdout.Bytes())
	if err != nil {
		return ticket.RawFields{}, err
	}
	obj, err := extractJSON(result)
	if err != nil {
		return ticket.RawFields{}, err
	}
	return parseResponse([]byte(obj))
}

// parseStreamResult scans claude's stream-json output backwards for
// the line with "type":"result" and returns its result text.
func parseStreamResult(output []byte) (string, error) {
	lines := bytes.Split(bytes.TrimSpace(output), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		var msg struct {
			Type   string `json:"type"`
			Result string `json:"result"`
		}
		if err := json.Unmarshal(lines[i], &msg); err != nil {
			continue
		}
		if msg.Type == "result" {
			return msg.Result, nil
		}
	}
	return "", fmt.Errorf("no result line in claude output")
}
