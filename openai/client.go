package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fwojciec/eli5"
	"github.com/tidwall/gjson"
)

// Interface compliance check.
var _ eli5.Completer = (*Client)(nil)

// Client implements [eli5.Completer] for OpenAI-compatible endpoints.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithModel sets the model used when a request does not name one.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// New creates a new [Client]. An empty apiKey is accepted; the endpoint
// rejects the request and the error reaches the caller like any other.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Complete sends the conversation and returns choices[0].message.content
// exactly as received.
func (c *Client) Complete(ctx context.Context, req eli5.Request) (string, error) {
	body, err := c.buildRequestBody(req)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", parseHTTPError(resp.StatusCode, data)
	}
	return parseReply(data)
}

func (c *Client) buildRequestBody(req eli5.Request) ([]byte, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	apiReq := apiRequest{
		Model:    model,
		Messages: make([]apiMessage, len(req.Messages)),
	}
	for i, m := range req.Messages {
		apiReq.Messages[i] = apiMessage{Role: string(m.Role), Content: m.Content}
	}
	return json.Marshal(apiReq)
}

func parseReply(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("openai: %w: %s", eli5.ErrMalformedResponse, truncate(string(data), maxErrorBody))
	}
	reply := gjson.GetBytes(data, replyPath)
	if !reply.Exists() {
		return "", fmt.Errorf("openai: %w: missing %s", eli5.ErrMalformedResponse, replyPath)
	}
	if reply.Type != gjson.String {
		return "", fmt.Errorf("openai: %w: %s is %s", eli5.ErrEmptyReply, replyPath, reply.Type)
	}
	return reply.Str, nil
}

// parseHTTPError prefers the API's error.message and falls back to the raw
// body, truncated.
func parseHTTPError(status int, body []byte) error {
	if msg := gjson.GetBytes(body, errorPath); msg.Type == gjson.String && msg.Str != "" {
		return fmt.Errorf("openai: HTTP %d: %s", status, msg.Str)
	}
	text := strings.TrimSpace(truncate(string(body), maxErrorBody))
	if text == "" {
		return fmt.Errorf("openai: HTTP %d: %s", status, http.StatusText(status))
	}
	return fmt.Errorf("openai: HTTP %d: %s", status, text)
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
