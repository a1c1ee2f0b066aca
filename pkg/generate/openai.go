// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mesh-intelligence/terry/pkg/ticket"
)

// Defaults for the OpenAI-compatible chat-completions endpoint.
const (
	DefaultOpenAIBase  = "https://api.openai.com"
	DefaultOpenAIModel = "gpt-4o-mini"
)

const systemPrompt = "You are an expert software development project manager who excels at " +
	"analyzing and structuring development tickets. Your responses must always be valid JSON."

// OpenAIGenerator extracts ticket fields via an OpenAI-compatible
// chat-completions API.
type OpenAIGenerator struct {
	apiKey  string
	model   string
	apiBase string
	client  *http.Client
}

// NewOpenAIGenerator returns a generator. model and apiBase may be
// empty for the defaults.
func NewOpenAIGenerator(apiKey, model, apiBase string, timeout time.Duration) *OpenAIGenerator {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if apiBase == "" {
		apiBase = DefaultOpenAIBase
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIGenerator{
		apiKey:  apiKey,
		model:   model,
		apiBase: strings.TrimRight(apiBase, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

// Generate performs one chat-completions call and parses the returned
// JSON ticket fields.
func (g *OpenAIGenerator) Generate(ctx context.Context, text string) (ticket.RawFields, error) {
	reqBody := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(text)},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	}
	reqBody.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(reqBody)
	if err != nil {
		return ticket.RawFields{}, fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.apiBase+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return ticket.RawFields{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return ticket.RawFields{}, fmt.Errorf("generation request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return ticket.RawFields{}, fmt.Errorf("reading generation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return ticket.RawFields{}, fmt.Errorf("generation API returned %d: %s", resp.StatusCode, errorSnippet(respBody))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return ticket.RawFields{}, fmt.Errorf("parsing generation response: %w", err)
	}
	if len(result.Choices) == 0 {
		return ticket.RawFields{}, fmt.Errorf("generation response contained no choices")
	}

	return parseResponse([]byte(result.Choices[0].Message.Content))
}

// errorSnippet truncates a response body for error messages.
func errorSnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
