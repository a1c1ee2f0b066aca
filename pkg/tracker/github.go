// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/mesh-intelligence/terry/pkg/ticket"
)

// DefaultAPIBase is the public GitHub REST endpoint. Overridable for
// GitHub Enterprise and for tests.
const DefaultAPIBase = "https://api.github.com"

// DefaultTimeout bounds a single submission attempt. A timeout is
// classified as retryable.
const DefaultTimeout = 30 * time.Second

// GitHubClient creates issues via the GitHub REST API. One outbound
// request per Submit call, no internal retries.
//
// The issues API has no idempotency-key support, so a retry after a
// lost response can create a duplicate issue. The cache entry id is
// embedded in the body as an HTML comment so duplicates can be found;
// beyond that the risk is accepted.
type GitHubClient struct {
	repo    string // owner/repo
	token   string
	apiBase string
	client  *http.Client
	pick    func(n int) int // opener selection for body rendering
}

// NewGitHubClient returns a client for the given owner/repo. apiBase
// may be empty for the public API; timeout zero means DefaultTimeout.
func NewGitHubClient(repo, token, apiBase string, timeout time.Duration) *GitHubClient {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GitHubClient{
		repo:    repo,
		token:   token,
		apiBase: strings.TrimRight(apiBase, "/"),
		client:  &http.Client{Timeout: timeout},
		pick:    rand.Intn,
	}
}

// issueRequest is the GitHub issue-creation payload.
type issueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels,omitempty"`
}

// issueResponse is the subset of the created-issue response we use.
type issueResponse struct {
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
}

// Submit performs exactly one issue-creation attempt. Outcomes:
// a Delivery on 2xx; *RetryableError on transport errors, timeouts,
// 429, and 5xx; *FatalError on auth and other 4xx responses.
func (c *GitHubClient) Submit(ctx context.Context, rec ticket.Record, entryID string) (Delivery, error) {
	body := ticket.RenderBody(rec, c.pick)
	if entryID != "" {
		body += fmt.Sprintf("\n<!-- terry:%s -->\n", entryID)
	}

	payload, err := json.Marshal(issueRequest{
		Title:  rec.Title,
		Body:   body,
		Labels: ticket.Labels(rec),
	})
	if err != nil {
		return Delivery{}, &FatalError{Reason: fmt.Sprintf("marshalling request: %v", err)}
	}

	url := fmt.Sprintf("%s/repos/%s/issues", c.apiBase, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Delivery{}, &FatalError{Reason: fmt.Sprintf("creating request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		// Connection failures and timeouts are transient by policy.
		return Delivery{}, &RetryableError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Delivery{}, &RetryableError{Reason: fmt.Sprintf("reading response: %v", err), Status: resp.StatusCode}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var created issueResponse
		if err := json.Unmarshal(respBody, &created); err != nil {
			return Delivery{}, &RetryableError{
				Reason: fmt.Sprintf("parsing created-issue response: %v", err),
				Status: resp.StatusCode,
			}
		}
		return Delivery{RemoteID: fmt.Sprintf("%d", created.Number), URL: created.HTMLURL}, nil

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return Delivery{}, &RetryableError{Reason: errorReason(respBody), Status: resp.StatusCode}

	default:
		// 401/403 and remaining 4xx: never succeeds on blind retry.
		return Delivery{}, &FatalError{Reason: errorReason(respBody), Status: resp.StatusCode}
	}
}

// errorReason extracts the API error message from a response body,
// falling back to a truncated raw body.
func errorReason(body []byte) string {
	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
