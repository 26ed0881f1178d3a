package main

import (
	"fmt"

	"github.com/fwojciec/eli5"
	"github.com/fwojciec/eli5/anthropic"
	"github.com/fwojciec/eli5/gemini"
	"github.com/fwojciec/eli5/glamour"
	"github.com/fwojciec/eli5/goldmark"
	"github.com/fwojciec/eli5/openai"
)

// provider is a constructed completer plus what the UI shows about it.
type provider struct {
	completer eli5.Completer
	model     string // effective model ID
	hint      string // env var named in the failure message
}

// resolveCompleter constructs the completer for cfg.Provider. A missing key
// is not an error: requests fail and the session shows the failure message.
// All env values come from e; env is only read in main().
func resolveCompleter(cfg eli5.Config, e env) (provider, error) {
	switch cfg.Provider {
	case eli5.ProviderOpenAI:
		key, hint := e.GroqKey, "GROQ_API_KEY"
		if key == "" && e.OpenAIKey != "" {
			key, hint = e.OpenAIKey, "OPENAI_API_KEY"
		}
		var opts []openai.Option
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		return provider{
			completer: openai.New(key, opts...),
			model:     firstNonEmpty(cfg.Model, openai.DefaultModel),
			hint:      hint,
		}, nil
	case eli5.ProviderGemini:
		var opts []gemini.Option
		if cfg.BaseURL != "" {
			opts = append(opts, gemini.WithBaseURL(cfg.BaseURL))
		}
		if cfg.Model != "" {
			opts = append(opts, gemini.WithModel(cfg.Model))
		}
		return provider{
			completer: gemini.New(e.GeminiKey, opts...),
			model:     firstNonEmpty(cfg.Model, gemini.DefaultModel),
			hint:      "GEMINI_API_KEY",
		}, nil
	case eli5.ProviderAnthropic:
		var opts []anthropic.Option
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		if cfg.Model != "" {
			opts = append(opts, anthropic.WithModel(cfg.Model))
		}
		return provider{
			completer: anthropic.New(e.AnthropicKey, opts...),
			model:     firstNonEmpty(cfg.Model, anthropic.DefaultModel),
			hint:      "ANTHROPIC_API_KEY",
		}, nil
	default:
		return provider{}, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// resolveRenderer selects the markdown renderer for assistant replies.
func resolveRenderer(cfg eli5.Config, theme eli5.Theme) eli5.Renderer {
	if cfg.Renderer == eli5.RendererGlamour {
		return glamour.New(cfg.GlamourStyle)
	}
	return goldmark.New(theme)
}
