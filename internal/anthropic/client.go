// Package anthropic is a minimal client for the Anthropic messages API,
// normalizing provider response shapes into a single Completion result.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	// DefaultModel is used when no model is configured.
	DefaultModel   = "claude-3-5-sonnet-20241022"
	apiVersion     = "2023-06-01"
	defaultTimeout = 60 * time.Second
)

// Client communicates with the Anthropic messages endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient creates a client with the given API key and model. An empty
// model falls back to DefaultModel.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// NewClientWithBaseURL creates a client pointing at a custom base URL
// (for testing).
func NewClientWithBaseURL(apiKey, model, baseURL string) *Client {
	c := NewClient(apiKey, model)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// CompletionParams holds the inputs for a single completion round trip.
type CompletionParams struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Complete sends the prompt as the sole user turn and returns the normalized
// result. Exactly one outbound request per call: no retry, no backoff. Any
// transport failure, non-2xx status, or malformed payload is returned as an
// error; a 2xx response with no usable text block yields Completion{Empty: true}.
func (c *Client) Complete(ctx context.Context, p CompletionParams) (Completion, error) {
	body, err := json.Marshal(messagesRequest{
		Model:       c.model,
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
		Messages:    []Message{{Role: "user", Content: p.Prompt}},
	})
	if err != nil {
		return Completion{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return Completion{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Anthropic-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Completion{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Completion{}, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var parsed messagesResponse
		if json.Unmarshal(respBody, &parsed) == nil && parsed.Error != nil {
			return Completion{}, fmt.Errorf("provider error (HTTP %d, %s): %s", resp.StatusCode, parsed.Error.Type, parsed.Error.Message)
		}
		return Completion{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed messagesResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return Completion{}, fmt.Errorf("decoding response: %w", err)
	}

	// First textual content block wins; anything else is an empty result,
	// not an error — the request succeeded at the transport level.
	for _, block := range parsed.Content {
		if block.Type == "text" && block.Text != "" {
			return Completion{Text: block.Text, Model: parsed.Model}, nil
		}
	}
	return Completion{Empty: true, Model: parsed.Model}, nil
}
