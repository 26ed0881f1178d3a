package anthropic

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

// Client implements [eli5.Completer] for the Anthropic Messages API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
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

// WithMaxTokens sets the reply length limit.
func WithMaxTokens(n int) Option {
	return func(c *Client) { c.maxTokens = n }
}

// New creates a new Anthropic [Client] with the given API key and options.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      DefaultModel,
		maxTokens:  defaultMaxTokens,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Complete sends the conversation to the Messages API and returns the text
// of the reply.
func (c *Client) Complete(ctx context.Context, req eli5.Request) (string, error) {
	body, err := c.buildRequestBody(req)
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("anthropic: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", parseHTTPError(resp.StatusCode, data)
	}
	return parseReply(data)
}

func (c *Client) buildRequestBody(req eli5.Request) ([]byte, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	system, msgs := convertMessages(req.Messages)
	apiReq := apiRequest{
		Model:     model,
		MaxTokens: c.maxTokens,
		System:    system,
		Messages:  msgs,
	}
	return json.Marshal(apiReq)
}

// convertMessages splits system messages into the top-level system field and
// maps the rest to API messages. Assistant messages before the first user
// message are dropped: the API requires the conversation to open with the
// user, and the only such message is the seeded greeting.
func convertMessages(msgs []eli5.Message) ([]apiContentBlock, []apiMessage) {
	var (
		system []apiContentBlock
		result []apiMessage
	)
	for _, m := range msgs {
		switch m.Role {
		case eli5.RoleSystem:
			system = append(system, apiContentBlock{Type: "text", Text: m.Content})
		case eli5.RoleUser, eli5.RoleAssistant:
			if len(result) == 0 && m.Role == eli5.RoleAssistant {
				continue
			}
			result = append(result, apiMessage{
				Role:    string(m.Role),
				Content: []apiContentBlock{{Type: "text", Text: m.Content}},
			})
		}
	}
	if len(system) > 0 {
		system[len(system)-1].CacheControl = &apiCacheControl{Type: "ephemeral"}
	}
	return system, result
}

func parseReply(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("anthropic: %w", eli5.ErrMalformedResponse)
	}
	content := gjson.GetBytes(data, "content")
	if !content.IsArray() {
		return "", fmt.Errorf("anthropic: %w: missing content", eli5.ErrMalformedResponse)
	}
	var (
		b     strings.Builder
		found bool
	)
	for _, block := range content.Array() {
		if block.Get("type").Str != "text" {
			continue
		}
		found = true
		b.WriteString(block.Get("text").Str)
	}
	if !found {
		return "", fmt.Errorf("anthropic: %w", eli5.ErrEmptyReply)
	}
	return b.String(), nil
}

func parseHTTPError(status int, body []byte) error {
	msg := gjson.GetBytes(body, "error.message").Str
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("anthropic: HTTP %d: %s", status, msg)
}
