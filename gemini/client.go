package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/fwojciec/eli5"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ eli5.Completer = (*Client)(nil)

// Client implements [eli5.Completer] for the Google Gemini API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client

	once    sync.Once
	client  *genai.Client
	initErr error
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model ID used when a request does not name one.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithBaseURL overrides the API endpoint. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a new Gemini [Client]. No network or SDK setup happens here.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey: apiKey,
		model:  DefaultModel,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Complete sends the conversation to the Gemini API and returns the text of
// the first candidate.
func (c *Client) Complete(ctx context.Context, req eli5.Request) (string, error) {
	gc, err := c.sdk(ctx)
	if err != nil {
		return "", err
	}

	model := req.Model
	if model == "" {
		model = c.model
	}
	system, contents := ConvertMessages(req.Messages)
	var config *genai.GenerateContentConfig
	if system != nil {
		config = &genai.GenerateContentConfig{SystemInstruction: system}
	}

	resp, err := gc.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return extractReply(resp)
}

func (c *Client) sdk(ctx context.Context) (*genai.Client, error) {
	c.once.Do(func() {
		cfg := &genai.ClientConfig{
			APIKey:     c.apiKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: c.httpClient,
		}
		if c.baseURL != "" {
			cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
		}
		c.client, c.initErr = genai.NewClient(ctx, cfg)
		if c.initErr != nil {
			c.initErr = fmt.Errorf("gemini: %w", c.initErr)
		}
	})
	return c.client, c.initErr
}

// ConvertMessages converts eli5 messages to a genai system instruction and
// contents. Assistant messages use the "model" role. Exported for testing.
func ConvertMessages(msgs []eli5.Message) (*genai.Content, []*genai.Content) {
	var (
		system   *genai.Content
		contents []*genai.Content
	)
	for _, m := range msgs {
		switch m.Role {
		case eli5.RoleSystem:
			if system == nil {
				system = &genai.Content{}
			}
			system.Parts = append(system.Parts, &genai.Part{Text: m.Content})
		case eli5.RoleUser:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: m.Content}},
			})
		case eli5.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{Text: m.Content}},
			})
		}
	}
	return system, contents
}

func extractReply(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini: %w: no candidates", eli5.ErrMalformedResponse)
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", fmt.Errorf("gemini: %w", eli5.ErrEmptyReply)
	}
	var (
		b     strings.Builder
		found bool
	)
	for _, p := range content.Parts {
		if p == nil || p.Thought || p.Text == "" {
			continue
		}
		found = true
		b.WriteString(p.Text)
	}
	if !found {
		return "", fmt.Errorf("gemini: %w", eli5.ErrEmptyReply)
	}
	return b.String(), nil
}
