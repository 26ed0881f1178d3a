// Command eli5 is a terminal chat that explains everything like you're 5.
//
// Usage:
//
//	GROQ_API_KEY=gsk-...      eli5 [flags]
//	GEMINI_API_KEY=...        eli5 --provider gemini
//	ANTHROPIC_API_KEY=sk-...  eli5 --provider anthropic
//
// Settings are layered: built-in defaults, then ~/.config/eli5/config.toml
// (or --config), then flags. API keys are only read from the environment.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/fwojciec/eli5"
	bt "github.com/fwojciec/eli5/bubbletea"
	eli5json "github.com/fwojciec/eli5/json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := newRootCmd(envFromOS()).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "eli5: %v\n", err)
		os.Exit(1)
	}
}

// env carries the environment values the program uses. It is filled in main
// and passed down as values.
type env struct {
	GroqKey      string
	OpenAIKey    string
	GeminiKey    string
	AnthropicKey string
	DebugLog     string
}

func envFromOS() env {
	return env{
		GroqKey:      os.Getenv("GROQ_API_KEY"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		GeminiKey:    os.Getenv("GEMINI_API_KEY"),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		DebugLog:     os.Getenv("ELI5_DEBUG_LOG"),
	}
}

// options holds the command-line flags.
type options struct {
	provider     string
	model        string
	baseURL      string
	renderer     string
	glamourStyle string
	configPath   string
	transcript   string
	debugLog     string
}

func newRootCmd(e env) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "eli5",
		Short: "Ask anything, get it explained like you're 5",
		Long: `eli5 is a terminal chat that sends your questions to a hosted
chat-completion model and answers in simple words, silly analogies and
lots of emoji.

Examples:
  eli5                                  Chat using Groq (GROQ_API_KEY)
  eli5 --provider gemini                Chat using Gemini (GEMINI_API_KEY)
  eli5 --renderer glamour               Render answers with glamour
  eli5 --transcript chat.json           Save the conversation on exit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, e)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.provider, "provider", "p", "", "Provider: openai, gemini, anthropic (default openai)")
	f.StringVarP(&opts.model, "model", "m", "", "Model ID (default: provider default)")
	f.StringVar(&opts.baseURL, "base-url", "", "API base URL override")
	f.StringVar(&opts.renderer, "renderer", "", "Markdown renderer: goldmark, glamour (default goldmark)")
	f.StringVar(&opts.glamourStyle, "glamour-style", "", "Glamour style: dark, light, dracula, notty (default dark)")
	f.StringVarP(&opts.configPath, "config", "c", "", "Path to config file (default ~/.config/eli5/config.toml)")
	f.StringVarP(&opts.transcript, "transcript", "o", "", "Write the conversation to this JSON file on exit")
	f.StringVar(&opts.debugLog, "debug-log", "", "Write debug logs to this file (or set ELI5_DEBUG_LOG)")
	return cmd
}

func run(ctx context.Context, opts options, e env) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	closeLog, err := setupLogging(firstNonEmpty(opts.debugLog, e.DebugLog))
	if err != nil {
		return err
	}
	defer closeLog()

	fileCfg, err := loadConfigFile(opts.configPath)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(fileCfg, opts)
	if err != nil {
		return err
	}

	p, err := resolveCompleter(cfg, e)
	if err != nil {
		return err
	}
	log.Printf("provider=%s model=%s renderer=%s", cfg.Provider, p.model, cfg.Renderer)

	session := eli5.NewSession(logCompleter(p.completer),
		eli5.WithModel(cfg.Model),
		eli5.WithFailureHint(p.hint),
		eli5.WithObserver(logState()),
	)

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("eli5 needs an interactive terminal")
	}

	started := time.Now()
	theme := eli5.DefaultTheme()
	tuiModel := bt.New(session, resolveRenderer(cfg, theme), theme, bt.Config{ModelName: p.model})
	if err := bt.Run(ctx, tuiModel); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}

	if opts.transcript != "" {
		t := newTranscript(uuid.NewString(), cfg.Provider, p.model, started, session.History())
		if err := eli5json.Save(opts.transcript, t); err != nil {
			return fmt.Errorf("save transcript: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Transcript saved to %s\n", opts.transcript)
	}
	return nil
}

func newTranscript(id, provider, model string, created time.Time, history []eli5.Message) eli5.Transcript {
	return eli5.Transcript{
		ID:        id,
		Model:     model,
		Provider:  provider,
		CreatedAt: created,
		Messages:  history,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
