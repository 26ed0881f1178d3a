package eli5

import "fmt"

// Provider names accepted in configuration.
const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Renderer names accepted in configuration.
const (
	RendererGoldmark = "goldmark"
	RendererGlamour  = "glamour"
)

// Config holds the non-secret settings of the program. Credentials are never
// part of Config; they are read from the environment at startup.
type Config struct {
	Provider     string // provider name; empty = ProviderOpenAI
	Model        string // model ID, provider-specific; empty = provider default
	BaseURL      string // endpoint override; empty = provider default
	Renderer     string // markdown renderer name; empty = RendererGoldmark
	GlamourStyle string // glamour standard style; empty = "dark"
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Provider:     ProviderOpenAI,
		Renderer:     RendererGoldmark,
		GlamourStyle: "dark",
	}
}

// Merge returns c with every non-empty field of o applied on top.
func (c Config) Merge(o Config) Config {
	if o.Provider != "" {
		c.Provider = o.Provider
	}
	if o.Model != "" {
		c.Model = o.Model
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.Renderer != "" {
		c.Renderer = o.Renderer
	}
	if o.GlamourStyle != "" {
		c.GlamourStyle = o.GlamourStyle
	}
	return c
}

// Validate checks that named choices are known.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown provider %q: must be %q, %q or %q",
			c.Provider, ProviderOpenAI, ProviderGemini, ProviderAnthropic)
	}
	switch c.Renderer {
	case RendererGoldmark, RendererGlamour:
	default:
		return fmt.Errorf("unknown renderer %q: must be %q or %q",
			c.Renderer, RendererGoldmark, RendererGlamour)
	}
	return nil
}
